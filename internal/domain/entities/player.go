package entities

import (
	"fmt"
	"time"
)

// Player is the game account a payment is credited to.
//
// The account-management system owns players; the payment pipeline only
// creates a minimal record when a webhook references an id it has never seen.
// Balance is the in-game coin balance and is never decremented here.

type Player struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FacebookID    string    `json:"facebook_id,omitempty"`
	Balance       int64     `json:"balance"`
	Level         float64   `json:"level"`
	VIPLevel      int       `json:"vip_level"`
	PurchaseCount int       `json:"purchase_count"`
	FirstLogin    time.Time `json:"first_login"`
	LastLogin     time.Time `json:"last_login"`
}

func (p Player) Exists() bool {
	return p.ID != 0
}

// NewProvisionalPlayer builds the record created for an unknown player id
// referenced by a payment event.
func NewProvisionalPlayer(id int64, now time.Time) Player {
	return Player{
		ID:         id,
		Name:       fmt.Sprintf("Player %d", id),
		Level:      1,
		VIPLevel:   1,
		FirstLogin: now,
		LastLogin:  now,
	}
}

// PlayerProfile is what login and refresh hand back: the player plus the
// ledger total of granted web-store currency.
type PlayerProfile struct {
	Player Player
	Cash   int64
}
