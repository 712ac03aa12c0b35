package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const inboxNeverExpires = -1

// InboxDelivery writes a reward mail and its audit row in one transaction.
// A message id that was already delivered is skipped.
type InboxDelivery struct {
	db *gorm.DB
}

var _ interfaces.IMailboxDelivery = (*InboxDelivery)(nil)

func NewInboxDelivery(db *gorm.DB) *InboxDelivery {
	return &InboxDelivery{db: db}
}

func (d *InboxDelivery) Deliver(ctx context.Context, msg entities.MailboxMessage) error {
	extra, err := json.Marshal(map[string]any{"attach_list": msg.Attachments})
	if err != nil {
		return err
	}
	content := msg.Reason
	sender := msg.Sender

	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mail := Inbox{
			MessageID:    msg.ID,
			UserID:       msg.PlayerID,
			Type:         msg.Kind,
			Count:        1,
			TS:           msg.CreatedAt,
			ValidTimeSec: inboxNeverExpires,
			Msg:          &content,
			ExtraData:    datatypes.JSON(extra),
		}
		if err := tx.Create(&mail).Error; err != nil {
			return err
		}
		return tx.Create(&InboxLog{
			UserID:   msg.PlayerID,
			Type:     msg.Kind,
			Count:    1,
			CreateTS: msg.CreatedAt,
			GMName:   &sender,
		}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		log.Printf("[mailbox][sql] message already delivered message_id=%s", msg.ID)
		return nil
	}
	return err
}
