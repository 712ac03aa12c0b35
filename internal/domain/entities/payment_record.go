package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the outcome stored on a payment attempt.
//
// A given order id moves from absent to exactly one terminal status for
// success records. Failure records may repeat for the same order id.

type PaymentStatus string

const (
	PaymentStatusSuccess   PaymentStatus = "success"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

const DefaultPaymentChannel = "appcharge"

// PaymentRecord is one immutable row per payment attempt.
//
// Storage model:
//   - SQL: unique success_key (set to the order id on success rows only),
//     index order_id, index (player_id, item_id), index (player_id, created_at).
//   - DynamoDB: PK record_id ("success#<order>" or "failed#<order>#<uuid>"),
//     GSI order_id-index, GSI player_id-index (sort: created_at), GSI player_item-index.
//
// GrantConfirmed stays false until the ledger increment for the record has
// been applied. GrantState tells who owns an unconfirmed grant; see GrantState.

type PaymentRecord struct {
	ID       uint   `json:"id"`
	OrderID  string `json:"order_id"`
	PlayerID int64  `json:"player_id"`
	ItemID   int    `json:"item_id"`

	Price    decimal.NullDecimal `json:"price"`
	Currency string              `json:"currency,omitempty"`

	IP             string  `json:"ip"`
	Country        string  `json:"country"`
	PaymentChannel string  `json:"payment_channel"`
	PaymentMethod  string  `json:"payment_method"`
	Email          *string `json:"email,omitempty"`

	Status PaymentStatus `json:"status"`

	WebLang     *string `json:"web_lang,omitempty"`
	BrowserLang *string `json:"browser_lang,omitempty"`
	ErrorCode   *string `json:"error_code,omitempty"`

	Ext PaymentExt `json:"ext"`

	TokensGranted  int64 `json:"tokens_granted"`
	FirstPurchase  bool  `json:"first_purchase"`
	GrantConfirmed bool  `json:"grant_confirmed"`

	GrantState GrantState `json:"grant_state,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GrantState is the ownership of the ledger grant of a success record.
//
// The webhook that inserts the record owns it while in flight. A failed grant
// is released to pending, and a reconciliation run must claim it (retrying)
// before touching the ledger. Claims are conditional writes, so at most one
// caller owns a grant at a time.
type GrantState string

const (
	GrantStateInFlight  GrantState = "in_flight"
	GrantStatePending   GrantState = "pending"
	GrantStateRetrying  GrantState = "retrying"
	GrantStateConfirmed GrantState = "confirmed"
)

// Reconcilable reports whether a reconciliation run may claim the grant of r.
// In-flight and retrying grants become claimable once their owner has not
// touched the record since staleBefore.
func (r PaymentRecord) Reconcilable(staleBefore time.Time) bool {
	if r.Status != PaymentStatusSuccess || r.GrantConfirmed {
		return false
	}
	switch r.GrantState {
	case GrantStatePending:
		return true
	case GrantStateInFlight, GrantStateRetrying:
		return r.UpdatedAt.Before(staleBefore)
	default:
		return false
	}
}

// PaymentExt is the typed side-channel carried on a record. Decoding ignores
// unknown keys so older or newer writers can share the column.
type PaymentExt struct {
	CouponID    *int64 `json:"coupon_id,omitempty"`
	CouponValue *int64 `json:"coupon_value,omitempty"`
}

func (e PaymentExt) IsZero() bool {
	return e.CouponID == nil && e.CouponValue == nil
}

// ParsePaymentExt decodes a stored ext blob. Empty input and "null" decode to
// the zero value.
func ParsePaymentExt(raw []byte) (PaymentExt, error) {
	var ext PaymentExt
	if len(raw) == 0 || string(raw) == "null" {
		return ext, nil
	}
	if err := json.Unmarshal(raw, &ext); err != nil {
		return PaymentExt{}, err
	}
	return ext, nil
}

// Order history statuses as shown to players.
const (
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
)

// OrderSummary is one line of a player's order history.
type OrderSummary struct {
	OrderID   string              `json:"order_id"`
	ItemName  string              `json:"item_name"`
	OrderTime time.Time           `json:"order_time"`
	Status    string              `json:"order_status"`
	Price     decimal.NullDecimal `json:"price"`
	Currency  string              `json:"currency"`
}
