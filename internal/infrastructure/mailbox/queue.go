package mailbox

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"

	"github.com/cenkalti/backoff/v4"
)

var (
	ErrQueueFull   = errors.New("mailbox queue is full")
	ErrQueueClosed = errors.New("mailbox queue is closed")
)

type QueueConfig struct {
	Workers    int
	QueueSize  int
	MaxElapsed time.Duration
}

// Queue hands reward messages to a pool of workers that deliver them with
// exponential backoff. Enqueue never waits on the delivery system.
type Queue struct {
	delivery interfaces.IMailboxDelivery
	jobs     chan entities.MailboxMessage
	wg       sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	ctx    context.Context
	cancel context.CancelFunc

	newBackOff func() backoff.BackOff
}

var _ interfaces.IRewardNotifier = (*Queue)(nil)

func NewQueue(delivery interfaces.IMailboxDelivery, cfg QueueConfig) *Queue {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	maxElapsed := cfg.MaxElapsed
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		delivery: delivery,
		jobs:     make(chan entities.MailboxMessage, cfg.QueueSize),
		ctx:      ctx,
		cancel:   cancel,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.MaxElapsedTime = maxElapsed
			return b
		},
	}
	for i := 0; i < cfg.Workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	return q
}

func (q *Queue) Enqueue(_ context.Context, msg entities.MailboxMessage) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.jobs <- msg:
		return nil
	default:
		log.Printf("[mailbox][queue] queue full message_id=%s player_id=%d", msg.ID, msg.PlayerID)
		return ErrQueueFull
	}
}

func (q *Queue) work() {
	defer q.wg.Done()
	for msg := range q.jobs {
		q.deliver(msg)
	}
}

func (q *Queue) deliver(msg entities.MailboxMessage) {
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		return q.delivery.Deliver(q.ctx, msg)
	}, backoff.WithContext(q.newBackOff(), q.ctx))
	if err != nil {
		log.Printf("[mailbox][queue] delivery abandoned message_id=%s player_id=%d attempts=%d err=%v", msg.ID, msg.PlayerID, attempt, err)
		return
	}
	log.Printf("[mailbox][queue] delivered message_id=%s player_id=%d amount=%d attempts=%d", msg.ID, msg.PlayerID, msg.Amount, attempt)
}

// Close stops accepting messages and waits for queued ones to be delivered.
// When ctx ends first, in-flight retries are cancelled.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		q.cancel()
		return nil
	case <-ctx.Done():
		q.cancel()
		<-done
		return ctx.Err()
	}
}
