package usecase

import (
	"context"
	"log"
	"strings"
	"time"
	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// PaymentLogWriter persists one immutable record per payment attempt and
// answers the queries the pipeline and the order history need.
type PaymentLogWriter struct {
	repo interfaces.IPaymentLogRepository
	now  func() time.Time
}

func NewPaymentLogWriter(repo interfaces.IPaymentLogRepository) *PaymentLogWriter {
	return &PaymentLogWriter{repo: repo, now: time.Now}
}

// RecordSuccess inserts the success record for ev. A concurrent insert of the
// same order id surfaces as interfaces.ErrDuplicateOrder.
func (w *PaymentLogWriter) RecordSuccess(ctx context.Context, ev entities.PaymentSuccessEvent, res entities.Resolution) (entities.PaymentRecord, error) {
	now := w.now().UTC()
	currency := strings.ToUpper(strings.TrimSpace(ev.Currency))
	if currency == "" {
		currency = "USD"
	}
	r := entities.PaymentRecord{
		OrderID:        ev.OrderID,
		PlayerID:       ev.PlayerID,
		ItemID:         ev.ItemID,
		Price:          decimal.NewNullDecimal(ev.Price),
		Currency:       currency,
		IP:             ev.IP,
		Country:        ev.Country,
		PaymentChannel: channelOrDefault(ev.PaymentChannel),
		PaymentMethod:  methodOrDefault(ev.PaymentMethod),
		Email:          ev.Email,
		Status:         entities.PaymentStatusSuccess,
		Ext:            ev.Ext,
		TokensGranted:  res.GrantAmount,
		FirstPurchase:  res.FirstPurchase,
		GrantState:     entities.GrantStateInFlight,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := w.repo.Create(ctx, r)
	if err != nil {
		log.Printf("[payment][log] success insert failed order_id=%s err=%v", ev.OrderID, err)
		return entities.PaymentRecord{}, err
	}
	log.Printf("[payment][log] success recorded order_id=%s record_id=%d player_id=%d item_id=%d", created.OrderID, created.ID, created.PlayerID, created.ItemID)
	return created, nil
}

// RecordFailure inserts a failed record. Price is left NULL and currency empty.
func (w *PaymentLogWriter) RecordFailure(ctx context.Context, ev entities.PaymentFailureEvent) (entities.PaymentRecord, error) {
	now := w.now().UTC()
	code := strings.TrimSpace(ev.ErrorCode)
	if code == "" {
		code = "UNKNOWN_ERROR"
	}
	r := entities.PaymentRecord{
		OrderID:        ev.OrderID,
		PlayerID:       ev.PlayerID,
		ItemID:         ev.ItemID,
		IP:             ev.IP,
		Country:        ev.Country,
		PaymentChannel: channelOrDefault(ev.PaymentChannel),
		PaymentMethod:  methodOrDefault(ev.PaymentMethod),
		Status:         entities.PaymentStatusFailed,
		WebLang:        ev.WebLang,
		BrowserLang:    ev.BrowserLang,
		ErrorCode:      &code,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := w.repo.Create(ctx, r)
	if err != nil {
		log.Printf("[payment][log] failure insert failed order_id=%s err=%v", ev.OrderID, err)
		return entities.PaymentRecord{}, err
	}
	log.Printf("[payment][log] failure recorded order_id=%s record_id=%d error_code=%s", created.OrderID, created.ID, code)
	return created, nil
}

// FindByOrderID reports the record of orderID, if any.
func (w *PaymentLogWriter) FindByOrderID(ctx context.Context, orderID string) (entities.PaymentRecord, bool, error) {
	r, err := w.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return entities.PaymentRecord{}, false, err
	}
	return r, r.OrderID != "", nil
}

// History returns the newest records of playerID first.
func (w *PaymentLogWriter) History(ctx context.Context, playerID int64, limit int) ([]entities.PaymentRecord, error) {
	return w.repo.ListByPlayer(ctx, playerID, clampHistoryLimit(limit))
}

func (w *PaymentLogWriter) CountSuccessfulPurchases(ctx context.Context, playerID int64, itemID int) (int, error) {
	return w.repo.CountSuccessByPlayerItem(ctx, playerID, itemID)
}

func (w *PaymentLogWriter) ConfirmGrant(ctx context.Context, orderID string) error {
	return w.repo.MarkGrantConfirmed(ctx, orderID)
}

// ClaimGrant reports whether this caller now owns the grant of orderID.
func (w *PaymentLogWriter) ClaimGrant(ctx context.Context, orderID string, staleBefore time.Time) (bool, error) {
	return w.repo.ClaimGrant(ctx, orderID, staleBefore)
}

func (w *PaymentLogWriter) ReleaseGrant(ctx context.Context, orderID string) error {
	return w.repo.ReleaseGrant(ctx, orderID)
}

func (w *PaymentLogWriter) PendingGrants(ctx context.Context, staleBefore time.Time, limit int) ([]entities.PaymentRecord, error) {
	return w.repo.ListUnconfirmedGrants(ctx, staleBefore, clampHistoryLimit(limit))
}

func clampHistoryLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

func channelOrDefault(v string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return entities.DefaultPaymentChannel
}

func methodOrDefault(v string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return "unknown"
}
