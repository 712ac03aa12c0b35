package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"webcharge_api/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoVerifierNotConfigured = errors.New("mercado pago verifier not configured")
var ErrInvalidProviderPaymentID = errors.New("invalid provider payment id")

const statusApproved = "approved"

type paymentLookup interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// MercadoPagoVerifier asks Mercado Pago whether a payment reported by the
// web-store webhook is approved. Mock mode approves every id.
type MercadoPagoVerifier struct {
	client   paymentLookup
	mockMode bool
}

var _ interfaces.IPaymentVerifier = (*MercadoPagoVerifier)(nil)

func NewMercadoPagoVerifier(accessToken string) (*MercadoPagoVerifier, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][verifier] mock mode enabled")
		return &MercadoPagoVerifier{mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][verifier] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][verifier] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][verifier] Mercado Pago client initialized")

	return &MercadoPagoVerifier{client: payment.NewClient(cfg)}, nil
}

func (v *MercadoPagoVerifier) VerifyApproved(ctx context.Context, providerPaymentID string) (bool, error) {
	if v != nil && v.mockMode {
		log.Printf("[payment][verifier] mock approve provider_payment_id=%s", providerPaymentID)
		return true, nil
	}
	if v == nil || v.client == nil {
		return false, ErrMercadoPagoVerifierNotConfigured
	}

	id, err := strconv.Atoi(strings.TrimSpace(providerPaymentID))
	if err != nil || id <= 0 {
		return false, fmt.Errorf("%w: %q", ErrInvalidProviderPaymentID, providerPaymentID)
	}

	resp, err := v.client.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][verifier] sdk get failed provider_payment_id=%d err=%v", id, err)
		return false, err
	}
	log.Printf("[payment][verifier] lookup provider_payment_id=%d provider_status=%s", id, resp.Status)
	return resp.Status == statusApproved, nil
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
