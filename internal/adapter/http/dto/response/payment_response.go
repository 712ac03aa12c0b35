package response

import (
	"fmt"

	"webcharge_api/internal/domain/entities"
)

// PaymentResponse answers both payment webhooks. return_code is 1 on success.
type PaymentResponse struct {
	ReturnCode    int    `json:"return_code"`
	ErrCode       int    `json:"err_code,omitempty"`
	Msg           string `json:"msg"`
	OrderID       string `json:"order_id,omitempty"`
	TokensGranted int64  `json:"tokens_granted,omitempty"`
	FirstPurchase bool   `json:"first_purchase,omitempty"`
	PurchaseCount int    `json:"purchase_count,omitempty"`
	Stage         string `json:"stage,omitempty"`
}

func FromSuccessOutcome(o entities.PaymentOutcome) PaymentResponse {
	msg := fmt.Sprintf("Payment successful, rewards distributed! Received %d tokens", o.Granted)
	if o.FirstPurchase {
		msg += " (First charge bonus)"
	}
	return PaymentResponse{
		ReturnCode:    1,
		Msg:           msg,
		OrderID:       o.Record.OrderID,
		TokensGranted: o.Granted,
		FirstPurchase: o.FirstPurchase,
		PurchaseCount: o.PurchaseCount,
		Stage:         string(o.Stage),
	}
}

func FailureRecorded(orderID string) PaymentResponse {
	return PaymentResponse{ReturnCode: 1, Msg: "Payment failure recorded", OrderID: orderID}
}

// FromRejectedOutcome reports a business rejection with the HTTP status as err_code.
func FromRejectedOutcome(o entities.PaymentOutcome, status int) PaymentResponse {
	return PaymentResponse{
		ReturnCode: 0,
		ErrCode:    status,
		Msg:        o.Reason,
		Stage:      string(o.Stage),
	}
}

// PendingGrantResponse lists success records whose ledger grant is unconfirmed.
type PendingGrantResponse struct {
	ReturnCode int                      `json:"return_code"`
	Data       []entities.PaymentRecord `json:"data"`
}
