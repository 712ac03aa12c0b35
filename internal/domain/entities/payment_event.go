package entities

import "github.com/shopspring/decimal"

// PaymentSuccessEvent is the validated payload of a payment-success webhook.
type PaymentSuccessEvent struct {
	OrderID        string
	PlayerID       int64
	ItemID         int
	Price          decimal.Decimal
	Currency       string
	IP             string
	Country        string
	PaymentChannel string
	PaymentMethod  string
	Email          *string
	Ext            PaymentExt
}

// PaymentFailureEvent is the validated payload of a payment-failure webhook.
type PaymentFailureEvent struct {
	OrderID        string
	PlayerID       int64
	ItemID         int
	IP             string
	Country        string
	PaymentChannel string
	PaymentMethod  string
	ErrorCode      string
	WebLang        *string
	BrowserLang    *string
}
