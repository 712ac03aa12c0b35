package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"
)

var (
	ErrInvalidOrderID        = errors.New("invalid order_id")
	ErrInvalidPlayerID       = errors.New("invalid player id")
	ErrTransient             = errors.New("transient storage failure")
	ErrGrantNotConfirmed     = errors.New("reward grant not confirmed")
	ErrPaymentRecordNotFound = errors.New("payment record not found")
	ErrDependencyMissing     = errors.New("payment pipeline dependency not configured")
)

// IPaymentOrchestrator drives payment webhooks to a terminal outcome.
//
// Every call returns an outcome; errors never escape unclassified:
//   - success events: duplicate check, player resolution, eligibility,
//     token calculation, log insert, reward grant, completion
//   - failure events: one log insert, no deduplication
//   - RetryGrant: reconciliation of success records whose grant was not confirmed
type IPaymentOrchestrator interface {
	ProcessSuccess(ctx context.Context, ev entities.PaymentSuccessEvent) entities.PaymentOutcome
	ProcessFailure(ctx context.Context, ev entities.PaymentFailureEvent) entities.PaymentOutcome
	RetryGrant(ctx context.Context, orderID string) entities.PaymentOutcome
	PendingGrants(ctx context.Context, limit int) ([]entities.PaymentRecord, error)
}

// OrchestratorDeps are the collaborators of the pipeline, injected at
// construction time.
type OrchestratorDeps struct {
	Players    interfaces.IPlayerRepository
	PaymentLog interfaces.IPaymentLogRepository
	Ledger     interfaces.ILedgerStore
	Notifier   interfaces.IRewardNotifier
	Catalog    ICatalogResolver
}

// DefaultGrantTimeout bounds the ledger phase once the success record is
// committed. DefaultGrantClaimTimeout is how long an in-flight or retrying
// grant is left to its owner before reconciliation may claim it; it must stay
// well above DefaultGrantTimeout.
const (
	DefaultGrantTimeout      = 30 * time.Second
	DefaultGrantClaimTimeout = 10 * time.Minute
)

type PaymentOrchestrator struct {
	players      interfaces.IPlayerRepository
	catalog      ICatalogResolver
	guard        *IdempotencyGuard
	writer       *PaymentLogWriter
	grantor      *RewardGrantor
	now          func() time.Time
	grantTimeout time.Duration
	claimTimeout time.Duration
}

var _ IPaymentOrchestrator = (*PaymentOrchestrator)(nil)

func NewPaymentOrchestrator(deps OrchestratorDeps) *PaymentOrchestrator {
	catalog := deps.Catalog
	if catalog == nil {
		catalog = NewCatalogResolver(nil, false)
	}
	return &PaymentOrchestrator{
		players:      deps.Players,
		catalog:      catalog,
		guard:        NewIdempotencyGuard(deps.PaymentLog),
		writer:       NewPaymentLogWriter(deps.PaymentLog),
		grantor:      NewRewardGrantor(deps.Ledger, deps.Notifier),
		now:          time.Now,
		grantTimeout: DefaultGrantTimeout,
		claimTimeout: DefaultGrantClaimTimeout,
	}
}

func transient(err error) error {
	return fmt.Errorf("%w: %w", ErrTransient, err)
}

// grantContext detaches the ledger phase from the caller. Once a record is
// committed its grant runs to an outcome even if the webhook sender goes away.
func (o *PaymentOrchestrator) grantContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), o.grantTimeout)
}

func (o *PaymentOrchestrator) staleBefore() time.Time {
	return o.now().UTC().Add(-o.claimTimeout)
}

func (o *PaymentOrchestrator) ProcessSuccess(ctx context.Context, ev entities.PaymentSuccessEvent) entities.PaymentOutcome {
	ev.OrderID = strings.TrimSpace(ev.OrderID)
	log.Printf("[payment][orchestrator] success start order_id=%s player_id=%d item_id=%d", ev.OrderID, ev.PlayerID, ev.ItemID)
	if ev.OrderID == "" {
		return entities.Failed(entities.StageReceived, ErrInvalidOrderID)
	}
	if ev.PlayerID <= 0 {
		return entities.Failed(entities.StageReceived, ErrInvalidPlayerID)
	}
	if o.players == nil || o.guard.repo == nil {
		return entities.Failed(entities.StageReceived, ErrDependencyMissing)
	}

	dup, err := o.guard.CheckDuplicate(ctx, ev.OrderID)
	if err != nil {
		return entities.Failed(entities.StageDuplicateCheck, transient(err))
	}
	if dup == entities.AlreadyProcessed {
		return entities.Rejected(entities.StageDuplicateCheck, entities.RejectAlreadyProcessed)
	}

	player, known, err := o.findPlayer(ctx, ev.PlayerID)
	if err != nil {
		log.Printf("[payment][orchestrator] player resolution failed order_id=%s player_id=%d err=%v", ev.OrderID, ev.PlayerID, err)
		return entities.Failed(entities.StagePlayerResolution, transient(err))
	}
	if !known {
		player = entities.NewProvisionalPlayer(ev.PlayerID, o.now().UTC())
	}

	if !o.catalog.Resolve(ev.ItemID, player, 0).Eligible {
		log.Printf("[payment][orchestrator] tier restricted order_id=%s player_id=%d item_id=%d", ev.OrderID, player.ID, ev.ItemID)
		return entities.Rejected(entities.StageEligibilityCheck, entities.RejectTierRestricted)
	}

	prior, err := o.writer.CountSuccessfulPurchases(ctx, player.ID, ev.ItemID)
	if err != nil {
		log.Printf("[payment][orchestrator] purchase count failed order_id=%s err=%v", ev.OrderID, err)
		return entities.Failed(entities.StageTokenCalculation, transient(err))
	}
	res := o.catalog.Resolve(ev.ItemID, player, prior)
	log.Printf("[payment][orchestrator] tokens calculated order_id=%s item_id=%d tokens=%d bonus_percent=%d first_purchase=%t known_item=%t",
		ev.OrderID, ev.ItemID, res.GrantAmount, res.BonusRatePercent, res.FirstPurchase, res.Known)

	if !known {
		if player, err = o.provisionPlayer(ctx, player); err != nil {
			log.Printf("[payment][orchestrator] player provisioning failed order_id=%s player_id=%d err=%v", ev.OrderID, ev.PlayerID, err)
			return entities.Failed(entities.StagePlayerResolution, transient(err))
		}
	}

	record, err := o.writer.RecordSuccess(ctx, ev, res)
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicateOrder) {
			log.Printf("[payment][orchestrator] duplicate insert rejected order_id=%s", ev.OrderID)
			return entities.Rejected(entities.StagePersistLog, entities.RejectAlreadyProcessed)
		}
		return entities.Failed(entities.StagePersistLog, transient(err))
	}

	gctx, cancel := o.grantContext(ctx)
	defer cancel()

	grant, err := o.grantor.Grant(gctx, player.ID, res.GrantAmount, RewardReason(ev.ItemID, res.FirstPurchase))
	if err != nil {
		log.Printf("[payment][orchestrator] grant failed, record needs reconciliation order_id=%s record_id=%d err=%v", ev.OrderID, record.ID, err)
		record.GrantState = o.releaseGrant(gctx, ev.OrderID, record.GrantState)
		out := entities.Failed(entities.StageGrantReward, fmt.Errorf("%w: order_id=%s: %w", ErrGrantNotConfirmed, ev.OrderID, err))
		out.Record = record
		return out
	}

	if err := o.writer.ConfirmGrant(gctx, ev.OrderID); err != nil {
		log.Printf("[payment][orchestrator] grant applied but confirmation write failed order_id=%s err=%v", ev.OrderID, err)
	} else {
		record.GrantConfirmed = true
		record.GrantState = entities.GrantStateConfirmed
	}

	log.Printf("[payment][orchestrator] success done order_id=%s tokens=%d first_purchase=%t balance=%d notification_sent=%t",
		ev.OrderID, res.GrantAmount, res.FirstPurchase, grant.Balance, grant.NotificationSent)
	return entities.PaymentOutcome{
		Status:           entities.OutcomeSuccess,
		Stage:            entities.StageNotifyAndComplete,
		Record:           record,
		Granted:          res.GrantAmount,
		FirstPurchase:    res.FirstPurchase,
		PurchaseCount:    prior + 1,
		Balance:          grant.Balance,
		NotificationSent: grant.NotificationSent,
	}
}

// findPlayer reports whether the player exists. Unknown players are only
// written by provisionPlayer, once the event is known to produce a record.
func (o *PaymentOrchestrator) findPlayer(ctx context.Context, id int64) (entities.Player, bool, error) {
	p, err := o.players.FindByID(ctx, id)
	if err != nil {
		return entities.Player{}, false, err
	}
	return p, p.Exists(), nil
}

// provisionPlayer stores a minimal player record. A lost creation race falls
// back to reading the winner's record.
func (o *PaymentOrchestrator) provisionPlayer(ctx context.Context, p entities.Player) (entities.Player, error) {
	created, err := o.players.Create(ctx, p)
	if err == nil {
		log.Printf("[payment][orchestrator] provisioned player player_id=%d", p.ID)
		return created, nil
	}
	again, findErr := o.players.FindByID(ctx, p.ID)
	if findErr == nil && again.Exists() {
		return again, nil
	}
	return entities.Player{}, err
}

// releaseGrant hands a failed grant back to pending. When the release itself
// fails the grant keeps its state and becomes claimable after the claim timeout.
func (o *PaymentOrchestrator) releaseGrant(ctx context.Context, orderID string, current entities.GrantState) entities.GrantState {
	if err := o.writer.ReleaseGrant(ctx, orderID); err != nil {
		log.Printf("[payment][orchestrator] grant release failed order_id=%s err=%v", orderID, err)
		return current
	}
	return entities.GrantStatePending
}

func (o *PaymentOrchestrator) ProcessFailure(ctx context.Context, ev entities.PaymentFailureEvent) entities.PaymentOutcome {
	ev.OrderID = strings.TrimSpace(ev.OrderID)
	log.Printf("[payment][orchestrator] failure start order_id=%s player_id=%d error_code=%s", ev.OrderID, ev.PlayerID, ev.ErrorCode)
	if ev.OrderID == "" {
		return entities.Failed(entities.StageReceived, ErrInvalidOrderID)
	}
	if o.writer.repo == nil {
		return entities.Failed(entities.StageReceived, ErrDependencyMissing)
	}

	record, err := o.writer.RecordFailure(ctx, ev)
	if err != nil {
		return entities.Failed(entities.StagePersistLog, transient(err))
	}
	return entities.PaymentOutcome{Status: entities.OutcomeSuccess, Stage: entities.StagePersistLog, Record: record}
}

// RetryGrant applies the ledger increment of a success record whose grant was
// never confirmed. The grant is claimed with a conditional write first, so
// concurrent retries and a webhook still granting the same order cannot both
// reach the ledger. A confirmation write failing after a successful increment
// leaves the record retrying; once it goes stale it can be claimed again.
func (o *PaymentOrchestrator) RetryGrant(ctx context.Context, orderID string) entities.PaymentOutcome {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Failed(entities.StageReceived, ErrInvalidOrderID)
	}
	if o.writer.repo == nil {
		return entities.Failed(entities.StageReceived, ErrDependencyMissing)
	}
	record, found, err := o.writer.FindByOrderID(ctx, orderID)
	if err != nil {
		return entities.Failed(entities.StageDuplicateCheck, transient(err))
	}
	if !found {
		return entities.Failed(entities.StageDuplicateCheck, ErrPaymentRecordNotFound)
	}
	if record.Status != entities.PaymentStatusSuccess || record.GrantConfirmed || record.TokensGranted <= 0 {
		log.Printf("[payment][orchestrator] retry refused order_id=%s status=%s confirmed=%t", orderID, record.Status, record.GrantConfirmed)
		return entities.Rejected(entities.StageGrantReward, entities.RejectNotReconcilable)
	}

	claimed, err := o.writer.ClaimGrant(ctx, orderID, o.staleBefore())
	if err != nil {
		return entities.Failed(entities.StageGrantReward, transient(err))
	}
	if !claimed {
		log.Printf("[payment][orchestrator] retry refused, grant owned elsewhere order_id=%s state=%s", orderID, record.GrantState)
		return entities.Rejected(entities.StageGrantReward, entities.RejectGrantInProgress)
	}
	record.GrantState = entities.GrantStateRetrying

	gctx, cancel := o.grantContext(ctx)
	defer cancel()

	grant, err := o.grantor.Grant(gctx, record.PlayerID, record.TokensGranted, RewardReason(record.ItemID, record.FirstPurchase))
	if err != nil {
		record.GrantState = o.releaseGrant(gctx, orderID, record.GrantState)
		out := entities.Failed(entities.StageGrantReward, fmt.Errorf("%w: order_id=%s: %w", ErrGrantNotConfirmed, orderID, err))
		out.Record = record
		return out
	}
	if err := o.writer.ConfirmGrant(gctx, orderID); err != nil {
		log.Printf("[payment][orchestrator] retry applied but confirmation write failed order_id=%s err=%v", orderID, err)
	} else {
		record.GrantConfirmed = true
		record.GrantState = entities.GrantStateConfirmed
	}
	log.Printf("[payment][orchestrator] retry done order_id=%s tokens=%d balance=%d", orderID, record.TokensGranted, grant.Balance)
	return entities.PaymentOutcome{
		Status:           entities.OutcomeSuccess,
		Stage:            entities.StageNotifyAndComplete,
		Record:           record,
		Granted:          record.TokensGranted,
		FirstPurchase:    record.FirstPurchase,
		Balance:          grant.Balance,
		NotificationSent: grant.NotificationSent,
	}
}

// PendingGrants lists the grants RetryGrant would accept: released ones and
// in-flight or retrying ones whose owner went silent.
func (o *PaymentOrchestrator) PendingGrants(ctx context.Context, limit int) ([]entities.PaymentRecord, error) {
	if o.writer.repo == nil {
		return nil, ErrDependencyMissing
	}
	return o.writer.PendingGrants(ctx, o.staleBefore(), limit)
}
