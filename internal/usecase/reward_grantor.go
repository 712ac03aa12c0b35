package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var ErrInvalidGrantAmount = errors.New("invalid grant amount")

// RewardGrantor turns a computed token amount into a ledger increment plus a
// reward notification.
//
// The ledger increment is the durable part and its failure is returned. The
// notification only has to be accepted by the outbound queue; when that fails
// the grant still counts and the failure is reported in GrantOutcome.
type RewardGrantor struct {
	ledger   interfaces.ILedgerStore
	notifier interfaces.IRewardNotifier
	now      func() time.Time
}

func NewRewardGrantor(ledger interfaces.ILedgerStore, notifier interfaces.IRewardNotifier) *RewardGrantor {
	return &RewardGrantor{ledger: ledger, notifier: notifier, now: time.Now}
}

func (g *RewardGrantor) Grant(ctx context.Context, playerID int64, amount int64, reason string) (entities.GrantOutcome, error) {
	if amount <= 0 {
		return entities.GrantOutcome{}, ErrInvalidGrantAmount
	}
	if g.ledger == nil {
		return entities.GrantOutcome{}, errors.New("ledger store not configured")
	}

	balance, err := g.ledger.IncrementBy(ctx, playerID, amount)
	if err != nil {
		log.Printf("[payment][grantor] ledger increment failed player_id=%d amount=%d err=%v", playerID, amount, err)
		return entities.GrantOutcome{}, fmt.Errorf("ledger increment: %w", err)
	}
	out := entities.GrantOutcome{LedgerUpdated: true, Balance: balance}
	log.Printf("[payment][grantor] ledger updated player_id=%d amount=%d balance=%d", playerID, amount, balance)

	if g.notifier == nil {
		out.NotificationErr = errors.New("reward notifier not configured")
		log.Printf("[payment][grantor] notifier not configured player_id=%d", playerID)
		return out, nil
	}

	msg := g.rewardMessage(playerID, amount, reason)
	if err := g.notifier.Enqueue(ctx, msg); err != nil {
		out.NotificationErr = err
		log.Printf("[payment][grantor] reward notification not queued player_id=%d message_id=%s err=%v", playerID, msg.ID, err)
		return out, nil
	}
	out.NotificationSent = true
	return out, nil
}

func (g *RewardGrantor) rewardMessage(playerID int64, amount int64, reason string) entities.MailboxMessage {
	return entities.MailboxMessage{
		ID:          uuid.NewString(),
		PlayerID:    playerID,
		Amount:      amount,
		Reason:      reason,
		Kind:        entities.MailboxKindPurchaseReward,
		Sender:      entities.MailboxSender,
		Attachments: [][]int64{{entities.MailboxAttachmentCash, amount, 1}},
		CreatedAt:   g.now().UTC(),
	}
}

// RewardReason is the mailbox text for a purchase reward.
func RewardReason(itemID int, firstPurchase bool) string {
	reason := fmt.Sprintf("Reward for purchasing item %d", itemID)
	if firstPurchase {
		reason += " (First charge bonus)"
	}
	return reason
}
