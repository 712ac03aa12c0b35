package interfaces

import (
	"context"
	"errors"
	"time"
	"webcharge_api/internal/domain/entities"
)

// ErrDuplicateOrder is returned by Create when a success record already
// exists for the order id.
var ErrDuplicateOrder = errors.New("duplicate order id")

// IPaymentLogRepository abstracts persistence for PaymentRecord.
//
// Create must reject a second success record for the same order id with
// ErrDuplicateOrder; that rejection is the canonical duplicate signal.
// GetByOrderID returns the success record when one exists, otherwise the most
// recent attempt, and a zero record (empty OrderID) when there is none.
//
// Grant ownership moves only through conditional writes on the success record:
//   - ClaimGrant moves a reconcilable grant to retrying and reports whether
//     this caller won it (see PaymentRecord.Reconcilable)
//   - ReleaseGrant hands an in-flight or retrying grant back to pending
//   - MarkGrantConfirmed closes the grant
//
// ListUnconfirmedGrants returns only the grants ClaimGrant would accept.

type IPaymentLogRepository interface {
	Create(ctx context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.PaymentRecord, error)
	CountSuccessByPlayerItem(ctx context.Context, playerID int64, itemID int) (int, error)
	ListByPlayer(ctx context.Context, playerID int64, limit int) ([]entities.PaymentRecord, error)
	MarkGrantConfirmed(ctx context.Context, orderID string) error
	ClaimGrant(ctx context.Context, orderID string, staleBefore time.Time) (bool, error)
	ReleaseGrant(ctx context.Context, orderID string) error
	ListUnconfirmedGrants(ctx context.Context, staleBefore time.Time, limit int) ([]entities.PaymentRecord, error)
}
