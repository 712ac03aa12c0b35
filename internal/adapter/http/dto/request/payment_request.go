package request

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"webcharge_api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var ErrInvalidUID = errors.New("invalid uid")

// ClientInfo is what the handler learns about the caller from the request
// itself rather than from the body.
type ClientInfo struct {
	IP      string
	Country string
}

// ParseUID accepts the uid as a JSON number or a numeric string.
func ParseUID(n json.Number) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidUID
	}
	return id, nil
}

// PaymentSuccessRequest is the body of the payment-success webhook.
//
// provider_payment_id is optional; when present and provider verification is
// enabled the payment is checked with Mercado Pago before it is processed.
// String limits follow the payment log columns.
type PaymentSuccessRequest struct {
	OrderID           string              `json:"order_id" binding:"required,max=64"`
	UID               json.Number         `json:"uid" binding:"required"`
	ItemID            int                 `json:"item_id" binding:"required"`
	Price             decimal.Decimal     `json:"price"`
	Currency          string              `json:"currency" binding:"omitempty,len=3,alpha"`
	PaymentChannel    string              `json:"payment_channel" binding:"max=32"`
	PaymentMethod     string              `json:"payment_method" binding:"max=32"`
	Email             string              `json:"email" binding:"max=255"`
	CustomParam       string              `json:"custom_param"`
	ProviderPaymentID string              `json:"provider_payment_id"`
	Ext               entities.PaymentExt `json:"ext"`
}

func (r PaymentSuccessRequest) ToEvent(client ClientInfo) (entities.PaymentSuccessEvent, error) {
	uid, err := ParseUID(r.UID)
	if err != nil {
		return entities.PaymentSuccessEvent{}, err
	}
	var email *string
	if v := strings.TrimSpace(r.Email); v != "" {
		email = &v
	}
	return entities.PaymentSuccessEvent{
		OrderID:        strings.TrimSpace(r.OrderID),
		PlayerID:       uid,
		ItemID:         r.ItemID,
		Price:          r.Price,
		Currency:       strings.ToUpper(strings.TrimSpace(r.Currency)),
		IP:             client.IP,
		Country:        client.Country,
		PaymentChannel: r.PaymentChannel,
		PaymentMethod:  r.PaymentMethod,
		Email:          email,
		Ext:            r.Ext,
	}, nil
}

// PaymentFailureRequest is the body of the payment-failure webhook.
type PaymentFailureRequest struct {
	OrderID         string      `json:"order_id" binding:"required,max=64"`
	UID             json.Number `json:"uid" binding:"required"`
	ItemID          int         `json:"item_id"`
	PaymentChannel  string      `json:"payment_channel" binding:"max=32"`
	PaymentMethod   string      `json:"payment_method" binding:"max=32"`
	WebPayErrorCode string      `json:"web_pay_error_code" binding:"required"`
	WebLang         string      `json:"web_lang" binding:"max=10"`
	BrowserLang     string      `json:"browser_lang" binding:"max=10"`
}

func (r PaymentFailureRequest) ToEvent(client ClientInfo) (entities.PaymentFailureEvent, error) {
	uid, err := ParseUID(r.UID)
	if err != nil {
		return entities.PaymentFailureEvent{}, err
	}
	return entities.PaymentFailureEvent{
		OrderID:        strings.TrimSpace(r.OrderID),
		PlayerID:       uid,
		ItemID:         r.ItemID,
		IP:             client.IP,
		Country:        client.Country,
		PaymentChannel: r.PaymentChannel,
		PaymentMethod:  r.PaymentMethod,
		ErrorCode:      r.WebPayErrorCode,
		WebLang:        optional(r.WebLang),
		BrowserLang:    optional(r.BrowserLang),
	}, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
