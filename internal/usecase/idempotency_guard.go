package usecase

import (
	"context"
	"log"
	"strings"
	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"
)

// IdempotencyGuard answers whether an order id already has a success record.
//
// The check is not atomic with the later insert. Two concurrent deliveries can
// both pass it; the storage uniqueness constraint decides the race.
type IdempotencyGuard struct {
	repo interfaces.IPaymentLogRepository
}

func NewIdempotencyGuard(repo interfaces.IPaymentLogRepository) *IdempotencyGuard {
	return &IdempotencyGuard{repo: repo}
}

func (g *IdempotencyGuard) CheckDuplicate(ctx context.Context, orderID string) (entities.DuplicateCheck, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.NotYetProcessed, ErrInvalidOrderID
	}

	existing, err := g.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		log.Printf("[payment][idempotency] lookup failed order_id=%s err=%v", orderID, err)
		return entities.NotYetProcessed, err
	}
	if existing.OrderID != "" && existing.Status == entities.PaymentStatusSuccess {
		log.Printf("[payment][idempotency] order already processed order_id=%s record_id=%d", orderID, existing.ID)
		return entities.AlreadyProcessed, nil
	}
	return entities.NotYetProcessed, nil
}
