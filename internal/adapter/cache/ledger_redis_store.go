package cache

import (
	"context"
	"errors"
	"strconv"

	"webcharge_api/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const DefaultLedgerKeyPrefix = "jwins_cash_"

// LedgerRedisStore keeps the web-store currency total per player under
// "<prefix><player_id>". INCRBY is atomic on the server.
type LedgerRedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ interfaces.ILedgerStore = (*LedgerRedisStore)(nil)

func NewLedgerRedisStore(rdb redis.UniversalClient, prefix string) *LedgerRedisStore {
	if prefix == "" {
		prefix = DefaultLedgerKeyPrefix
	}
	return &LedgerRedisStore{rdb: rdb, prefix: prefix}
}

func (s *LedgerRedisStore) key(playerID int64) string {
	return s.prefix + strconv.FormatInt(playerID, 10)
}

func (s *LedgerRedisStore) IncrementBy(ctx context.Context, playerID int64, amount int64) (int64, error) {
	return s.rdb.IncrBy(ctx, s.key(playerID), amount).Result()
}

func (s *LedgerRedisStore) Get(ctx context.Context, playerID int64) (int64, error) {
	n, err := s.rdb.Get(ctx, s.key(playerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
