package sqlstore

import (
	"context"
	"errors"
	"time"

	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("record not found")

// PaymentLogRepository persists PaymentRecord entities through gorm.
//
// Pipeline reads go to the read-write handle so a just-committed success is
// visible to the duplicate check. History listings use the read-only handle.
// The *gorm.DB must be opened with TranslateError so unique violations
// surface as gorm.ErrDuplicatedKey.

type PaymentLogRepository struct {
	rw  *gorm.DB
	ro  *gorm.DB
	now func() time.Time
}

var _ interfaces.IPaymentLogRepository = (*PaymentLogRepository)(nil)

func NewPaymentLogRepository(rw, ro *gorm.DB) *PaymentLogRepository {
	if ro == nil {
		ro = rw
	}
	return &PaymentLogRepository{rw: rw, ro: ro, now: time.Now}
}

func (r *PaymentLogRepository) Create(ctx context.Context, rec entities.PaymentRecord) (entities.PaymentRecord, error) {
	m := toPaymentLog(rec)
	if err := r.rw.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.PaymentRecord{}, interfaces.ErrDuplicateOrder
		}
		return entities.PaymentRecord{}, err
	}
	return fromPaymentLog(m), nil
}

func (r *PaymentLogRepository) GetByOrderID(ctx context.Context, orderID string) (entities.PaymentRecord, error) {
	var m PaymentLog
	err := r.rw.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("success_key IS NULL").
		Order("created_at DESC").
		Order("id DESC").
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.PaymentRecord{}, nil
	}
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentLog(m), nil
}

func (r *PaymentLogRepository) CountSuccessByPlayerItem(ctx context.Context, playerID int64, itemID int) (int, error) {
	var n int64
	err := r.rw.WithContext(ctx).
		Model(&PaymentLog{}).
		Where("uid = ? AND item_id = ? AND status = ?", playerID, itemID, string(entities.PaymentStatusSuccess)).
		Count(&n).Error
	return int(n), err
}

func (r *PaymentLogRepository) ListByPlayer(ctx context.Context, playerID int64, limit int) ([]entities.PaymentRecord, error) {
	var rows []PaymentLog
	err := r.ro.WithContext(ctx).
		Where("uid = ?", playerID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromPaymentLogs(rows), nil
}

func (r *PaymentLogRepository) MarkGrantConfirmed(ctx context.Context, orderID string) error {
	res := r.rw.WithContext(ctx).
		Model(&PaymentLog{}).
		Where("success_key = ?", orderID).
		Updates(map[string]any{
			"grant_confirmed": true,
			"grant_state":     string(entities.GrantStateConfirmed),
			"updated_at":      r.now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// reconcilable restricts a query to grants a reconciliation run may claim.
func reconcilable(db *gorm.DB, staleBefore time.Time) *gorm.DB {
	return db.Where("grant_confirmed = ?", false).
		Where("grant_state = ? OR (grant_state IN ? AND updated_at < ?)",
			string(entities.GrantStatePending),
			[]string{string(entities.GrantStateInFlight), string(entities.GrantStateRetrying)},
			staleBefore.UTC())
}

// ClaimGrant is a single conditional UPDATE; the row count tells whether this
// caller won the grant.
func (r *PaymentLogRepository) ClaimGrant(ctx context.Context, orderID string, staleBefore time.Time) (bool, error) {
	res := reconcilable(r.rw.WithContext(ctx).Model(&PaymentLog{}).Where("success_key = ?", orderID), staleBefore).
		Updates(map[string]any{
			"grant_state": string(entities.GrantStateRetrying),
			"updated_at":  r.now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PaymentLogRepository) ReleaseGrant(ctx context.Context, orderID string) error {
	res := r.rw.WithContext(ctx).
		Model(&PaymentLog{}).
		Where("success_key = ? AND grant_state IN ?", orderID,
			[]string{string(entities.GrantStateInFlight), string(entities.GrantStateRetrying)}).
		Updates(map[string]any{
			"grant_state": string(entities.GrantStatePending),
			"updated_at":  r.now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *PaymentLogRepository) ListUnconfirmedGrants(ctx context.Context, staleBefore time.Time, limit int) ([]entities.PaymentRecord, error) {
	var rows []PaymentLog
	err := reconcilable(r.rw.WithContext(ctx).Where("status = ?", string(entities.PaymentStatusSuccess)), staleBefore).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromPaymentLogs(rows), nil
}

func toPaymentLog(p entities.PaymentRecord) PaymentLog {
	m := PaymentLog{
		ID:             p.ID,
		OrderID:        p.OrderID,
		UID:            p.PlayerID,
		ItemID:         p.ItemID,
		Price:          p.Price,
		Currency:       p.Currency,
		IP:             p.IP,
		Country:        p.Country,
		PaymentChannel: p.PaymentChannel,
		PaymentMethod:  p.PaymentMethod,
		Email:          p.Email,
		Status:         string(p.Status),
		WebLang:        p.WebLang,
		BrowserLang:    p.BrowserLang,
		WebPayError:    p.ErrorCode,
		Ext:            datatypes.NewJSONType(p.Ext),
		TokensGranted:  p.TokensGranted,
		FirstPurchase:  p.FirstPurchase,
		GrantConfirmed: p.GrantConfirmed,
		GrantState:     string(p.GrantState),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.Status == entities.PaymentStatusSuccess {
		key := p.OrderID
		m.SuccessKey = &key
		switch {
		case p.GrantConfirmed:
			m.GrantState = string(entities.GrantStateConfirmed)
		case p.GrantState == "":
			m.GrantState = string(entities.GrantStateInFlight)
		}
	}
	return m
}

func fromPaymentLog(m PaymentLog) entities.PaymentRecord {
	return entities.PaymentRecord{
		ID:             m.ID,
		OrderID:        m.OrderID,
		PlayerID:       m.UID,
		ItemID:         m.ItemID,
		Price:          m.Price,
		Currency:       m.Currency,
		IP:             m.IP,
		Country:        m.Country,
		PaymentChannel: m.PaymentChannel,
		PaymentMethod:  m.PaymentMethod,
		Email:          m.Email,
		Status:         entities.PaymentStatus(m.Status),
		WebLang:        m.WebLang,
		BrowserLang:    m.BrowserLang,
		ErrorCode:      m.WebPayError,
		Ext:            m.Ext.Data(),
		TokensGranted:  m.TokensGranted,
		FirstPurchase:  m.FirstPurchase,
		GrantConfirmed: m.GrantConfirmed,
		GrantState:     entities.GrantState(m.GrantState),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromPaymentLogs(rows []PaymentLog) []entities.PaymentRecord {
	out := make([]entities.PaymentRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromPaymentLog(m))
	}
	return out
}
