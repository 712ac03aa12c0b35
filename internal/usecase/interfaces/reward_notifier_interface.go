package interfaces

import (
	"context"
	"webcharge_api/internal/domain/entities"
)

// IRewardNotifier accepts a reward notification for later delivery. It must
// not block on the delivery system itself.
type IRewardNotifier interface {
	Enqueue(ctx context.Context, msg entities.MailboxMessage) error
}

// IMailboxDelivery writes a reward notification into the in-game mailbox.
type IMailboxDelivery interface {
	Deliver(ctx context.Context, msg entities.MailboxMessage) error
}
