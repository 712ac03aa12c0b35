package interfaces

import "context"

// IPaymentVerifier confirms with the payment provider that a payment reported
// by a webhook was really approved.
type IPaymentVerifier interface {
	VerifyApproved(ctx context.Context, providerPaymentID string) (bool, error)
}
