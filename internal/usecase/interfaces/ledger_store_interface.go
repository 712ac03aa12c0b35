package interfaces

import "context"

// ILedgerStore is the cache-backed running total of granted currency.
//
// IncrementBy must be a single atomic increment on the store side (no
// read-then-write) and returns the new total. Get returns 0 for players
// without an entry.

type ILedgerStore interface {
	IncrementBy(ctx context.Context, playerID int64, amount int64) (int64, error)
	Get(ctx context.Context, playerID int64) (int64, error)
}
