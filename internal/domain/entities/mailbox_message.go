package entities

import "time"

const (
	// MailboxKindPurchaseReward is the inbox type the game client renders as a purchase reward.
	MailboxKindPurchaseReward = 101
	// MailboxAttachmentCash is the attachment resource id of the granted currency.
	MailboxAttachmentCash = 18
	MailboxSender         = "WebStore"
)

// MailboxMessage is a reward notification queued toward the in-game mailbox.
//
// Attachments follow the game's attach_list layout: [resource, amount, count].
type MailboxMessage struct {
	ID          string    `json:"id"`
	PlayerID    int64     `json:"player_id"`
	Amount      int64     `json:"amount"`
	Reason      string    `json:"reason"`
	Kind        int       `json:"kind"`
	Sender      string    `json:"sender"`
	Attachments [][]int64 `json:"attach_list"`
	CreatedAt   time.Time `json:"created_at"`
}
