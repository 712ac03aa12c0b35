package mailbox

import (
	"context"
	"log"

	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"
)

// LogDelivery only logs messages. Used when no inbox store is configured.
type LogDelivery struct{}

var _ interfaces.IMailboxDelivery = LogDelivery{}

func (LogDelivery) Deliver(_ context.Context, msg entities.MailboxMessage) error {
	log.Printf("[mailbox][log] message_id=%s player_id=%d amount=%d reason=%q", msg.ID, msg.PlayerID, msg.Amount, msg.Reason)
	return nil
}
