package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"
	mock_interfaces "webcharge_api/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

// memPaymentLog enforces success-record uniqueness the way the storage
// backends do, so concurrent deliveries race on Create.
type memPaymentLog struct {
	mu      sync.Mutex
	records []entities.PaymentRecord
	nextID  uint
}

func (m *memPaymentLog) Create(_ context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.Status == entities.PaymentStatusSuccess {
		for _, existing := range m.records {
			if existing.OrderID == r.OrderID && existing.Status == entities.PaymentStatusSuccess {
				return entities.PaymentRecord{}, interfaces.ErrDuplicateOrder
			}
		}
	}
	m.nextID++
	r.ID = m.nextID
	m.records = append(m.records, r)
	return r, nil
}

func (m *memPaymentLog) GetByOrderID(_ context.Context, orderID string) (entities.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest entities.PaymentRecord
	for _, r := range m.records {
		if r.OrderID != orderID {
			continue
		}
		if r.Status == entities.PaymentStatusSuccess {
			return r, nil
		}
		latest = r
	}
	return latest, nil
}

func (m *memPaymentLog) CountSuccessByPlayerItem(_ context.Context, playerID int64, itemID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.records {
		if r.PlayerID == playerID && r.ItemID == itemID && r.Status == entities.PaymentStatusSuccess {
			n++
		}
	}
	return n, nil
}

func (m *memPaymentLog) ListByPlayer(_ context.Context, playerID int64, limit int) ([]entities.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entities.PaymentRecord{}
	for _, r := range m.records {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memPaymentLog) successIndex(orderID string) int {
	for i := range m.records {
		if m.records[i].OrderID == orderID && m.records[i].Status == entities.PaymentStatusSuccess {
			return i
		}
	}
	return -1
}

func (m *memPaymentLog) MarkGrantConfirmed(_ context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.successIndex(orderID); i >= 0 {
		m.records[i].GrantConfirmed = true
		m.records[i].GrantState = entities.GrantStateConfirmed
	}
	return nil
}

func (m *memPaymentLog) ClaimGrant(_ context.Context, orderID string, staleBefore time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.successIndex(orderID)
	if i < 0 || !m.records[i].Reconcilable(staleBefore) {
		return false, nil
	}
	m.records[i].GrantState = entities.GrantStateRetrying
	m.records[i].UpdatedAt = time.Now().UTC()
	return true, nil
}

func (m *memPaymentLog) ReleaseGrant(_ context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.successIndex(orderID)
	if i < 0 {
		return errors.New("record not found")
	}
	switch m.records[i].GrantState {
	case entities.GrantStateInFlight, entities.GrantStateRetrying:
		m.records[i].GrantState = entities.GrantStatePending
		return nil
	default:
		return errors.New("grant not owned")
	}
}

func (m *memPaymentLog) ListUnconfirmedGrants(_ context.Context, staleBefore time.Time, limit int) ([]entities.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entities.PaymentRecord{}
	for _, r := range m.records {
		if r.Reconcilable(staleBefore) && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

type memPlayers struct {
	mu      sync.Mutex
	players map[int64]entities.Player
}

func newMemPlayers(ps ...entities.Player) *memPlayers {
	m := &memPlayers{players: map[int64]entities.Player{}}
	for _, p := range ps {
		m.players[p.ID] = p
	}
	return m
}

func (m *memPlayers) FindByID(_ context.Context, id int64) (entities.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.players[id], nil
}

func (m *memPlayers) Create(_ context.Context, p entities.Player) (entities.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[p.ID]; ok {
		return entities.Player{}, errors.New("player exists")
	}
	m.players[p.ID] = p
	return p, nil
}

type memLedger struct {
	mu         sync.Mutex
	totals     map[int64]int64
	increments int
	err        error
}

func newMemLedger() *memLedger { return &memLedger{totals: map[int64]int64{}} }

func (m *memLedger) IncrementBy(_ context.Context, playerID int64, amount int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.increments++
	m.totals[playerID] += amount
	return m.totals[playerID], nil
}

func (m *memLedger) Get(_ context.Context, playerID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals[playerID], nil
}

type memNotifier struct {
	mu   sync.Mutex
	msgs []entities.MailboxMessage
	err  error
}

func (m *memNotifier) Enqueue(_ context.Context, msg entities.MailboxMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msg)
	return nil
}

type pipeline struct {
	log      *memPaymentLog
	players  *memPlayers
	ledger   *memLedger
	notifier *memNotifier
	uc       *PaymentOrchestrator
}

func newPipeline(players ...entities.Player) *pipeline {
	p := &pipeline{
		log:      &memPaymentLog{},
		players:  newMemPlayers(players...),
		ledger:   newMemLedger(),
		notifier: &memNotifier{},
	}
	p.uc = NewPaymentOrchestrator(OrchestratorDeps{
		Players:    p.players,
		PaymentLog: p.log,
		Ledger:     p.ledger,
		Notifier:   p.notifier,
	})
	return p
}

func successEvent(orderID string, playerID int64, itemID int) entities.PaymentSuccessEvent {
	return entities.PaymentSuccessEvent{
		OrderID:        orderID,
		PlayerID:       playerID,
		ItemID:         itemID,
		Price:          decimal.RequireFromString("19.99"),
		Currency:       "usd",
		PaymentChannel: "appcharge",
		PaymentMethod:  "card",
	}
}

func TestPaymentOrchestrator_ProcessSuccess_Validations(t *testing.T) {
	t.Run("empty order id", func(t *testing.T) {
		uc := NewPaymentOrchestrator(OrchestratorDeps{})
		out := uc.ProcessSuccess(context.Background(), successEvent("  ", 1, 1))
		if out.Status != entities.OutcomeFailed || !errors.Is(out.Err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %+v", out)
		}
	})

	t.Run("invalid player id", func(t *testing.T) {
		uc := NewPaymentOrchestrator(OrchestratorDeps{})
		out := uc.ProcessSuccess(context.Background(), successEvent("o-1", 0, 1))
		if !errors.Is(out.Err, ErrInvalidPlayerID) {
			t.Fatalf("expected ErrInvalidPlayerID, got %+v", out)
		}
	})

	t.Run("dependencies missing", func(t *testing.T) {
		uc := NewPaymentOrchestrator(OrchestratorDeps{})
		out := uc.ProcessSuccess(context.Background(), successEvent("o-1", 1, 1))
		if !errors.Is(out.Err, ErrDependencyMissing) {
			t.Fatalf("expected ErrDependencyMissing, got %+v", out)
		}
	})
}

func TestPaymentOrchestrator_ProcessSuccess_FirstAndRepeatPurchase(t *testing.T) {
	p := newPipeline(entities.Player{ID: 42, Name: "ana", Level: 10})
	ctx := context.Background()

	first := p.uc.ProcessSuccess(ctx, successEvent("o-1", 42, 1))
	if !first.Succeeded() {
		t.Fatalf("expected success, got %+v", first)
	}
	if first.Granted != 22 || !first.FirstPurchase || first.PurchaseCount != 1 {
		t.Fatalf("unexpected first outcome: %+v", first)
	}
	if !first.Record.GrantConfirmed || first.Record.Currency != "USD" {
		t.Fatalf("unexpected record: %+v", first.Record)
	}
	if !first.NotificationSent || len(p.notifier.msgs) != 1 {
		t.Fatalf("expected one notification, got %d", len(p.notifier.msgs))
	}
	msg := p.notifier.msgs[0]
	if msg.Reason != "Reward for purchasing item 1 (First charge bonus)" || msg.Attachments[0][1] != 22 {
		t.Fatalf("unexpected message: %+v", msg)
	}

	second := p.uc.ProcessSuccess(ctx, successEvent("o-2", 42, 1))
	if second.Granted != 20 || second.FirstPurchase || second.PurchaseCount != 2 {
		t.Fatalf("unexpected second outcome: %+v", second)
	}
	if bal, _ := p.ledger.Get(ctx, 42); bal != 42 {
		t.Fatalf("expected ledger 42, got %d", bal)
	}
}

func TestPaymentOrchestrator_ProcessSuccess_Idempotent(t *testing.T) {
	p := newPipeline(entities.Player{ID: 7, Level: 1})
	ctx := context.Background()

	if out := p.uc.ProcessSuccess(ctx, successEvent("dup-1", 7, 3)); !out.Succeeded() {
		t.Fatalf("expected success, got %+v", out)
	}
	out := p.uc.ProcessSuccess(ctx, successEvent("dup-1", 7, 3))
	if out.Status != entities.OutcomeRejected || out.Reason != entities.RejectAlreadyProcessed {
		t.Fatalf("expected already processed, got %+v", out)
	}
	if out.Stage != entities.StageDuplicateCheck {
		t.Fatalf("expected rejection at duplicate check, got %s", out.Stage)
	}
	if p.ledger.increments != 1 || len(p.log.records) != 1 {
		t.Fatalf("expected single grant and record, got increments=%d records=%d", p.ledger.increments, len(p.log.records))
	}
}

func TestPaymentOrchestrator_ProcessSuccess_ConcurrentDuplicates(t *testing.T) {
	p := newPipeline(entities.Player{ID: 9, Level: 1})
	ctx := context.Background()

	const deliveries = 8
	outcomes := make([]entities.PaymentOutcome, deliveries)
	var wg sync.WaitGroup
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = p.uc.ProcessSuccess(ctx, successEvent("race-1", 9, 2))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, out := range outcomes {
		switch {
		case out.Succeeded():
			succeeded++
		case out.Status == entities.OutcomeRejected && out.Reason == entities.RejectAlreadyProcessed:
		default:
			t.Fatalf("unexpected outcome: %+v", out)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one success, got %d", succeeded)
	}
	if p.ledger.increments != 1 {
		t.Fatalf("expected one ledger increment, got %d", p.ledger.increments)
	}
	if bal, _ := p.ledger.Get(ctx, 9); bal != 33 {
		t.Fatalf("expected balance 33, got %d", bal)
	}
}

func TestPaymentOrchestrator_ProcessSuccess_ProvisionsUnknownPlayer(t *testing.T) {
	p := newPipeline()
	ctx := context.Background()

	out := p.uc.ProcessSuccess(ctx, successEvent("o-new", 555, 1))
	if !out.Succeeded() {
		t.Fatalf("expected success, got %+v", out)
	}
	created, _ := p.players.FindByID(ctx, 555)
	if !created.Exists() || created.Name != "Player 555" || created.VIPLevel != 1 {
		t.Fatalf("expected provisional player, got %+v", created)
	}
	if bal, _ := p.ledger.Get(ctx, 555); bal != 22 {
		t.Fatalf("expected balance 22, got %d", bal)
	}
}

func TestPaymentOrchestrator_ProcessSuccess_NoProvisioningWithoutRecord(t *testing.T) {
	t.Run("tier restricted", func(t *testing.T) {
		p := newPipeline()
		out := p.uc.ProcessSuccess(context.Background(), successEvent("np-1", 900, 8))
		if out.Reason != entities.RejectTierRestricted {
			t.Fatalf("expected tier restricted, got %+v", out)
		}
		if got, _ := p.players.FindByID(context.Background(), 900); got.Exists() {
			t.Fatalf("rejected payment must not create a player, got %+v", got)
		}
	})

	t.Run("purchase count failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentLogRepository(ctrl)
		players := newMemPlayers()
		uc := NewPaymentOrchestrator(OrchestratorDeps{Players: players, PaymentLog: repo})

		repo.EXPECT().GetByOrderID(gomock.Any(), "np-2").Return(entities.PaymentRecord{}, nil)
		repo.EXPECT().CountSuccessByPlayerItem(gomock.Any(), int64(901), 1).Return(0, errors.New("db"))

		out := uc.ProcessSuccess(context.Background(), successEvent("np-2", 901, 1))
		if !errors.Is(out.Err, ErrTransient) {
			t.Fatalf("expected transient failure, got %+v", out)
		}
		if got, _ := players.FindByID(context.Background(), 901); got.Exists() {
			t.Fatalf("failed payment must not create a player, got %+v", got)
		}
	})
}

// ctxLedger fails like a network-backed ledger once its context is done.
type ctxLedger struct{ *memLedger }

func (l ctxLedger) IncrementBy(ctx context.Context, playerID int64, amount int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return l.memLedger.IncrementBy(ctx, playerID, amount)
}

// cancelAfterCreate cancels the caller's context as soon as the record is
// committed, like a webhook sender hanging up mid-request.
type cancelAfterCreate struct {
	*memPaymentLog
	cancel context.CancelFunc
}

func (c *cancelAfterCreate) Create(ctx context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
	rec, err := c.memPaymentLog.Create(ctx, r)
	c.cancel()
	return rec, err
}

func TestPaymentOrchestrator_ProcessSuccess_CallerGoneAfterCommit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := &memPaymentLog{}
	ledger := newMemLedger()
	uc := NewPaymentOrchestrator(OrchestratorDeps{
		Players:    newMemPlayers(entities.Player{ID: 12, Level: 1}),
		PaymentLog: &cancelAfterCreate{memPaymentLog: log, cancel: cancel},
		Ledger:     ctxLedger{ledger},
		Notifier:   &memNotifier{},
	})

	out := uc.ProcessSuccess(ctx, successEvent("c-1", 12, 1))
	if ctx.Err() == nil {
		t.Fatalf("caller context should be cancelled by now")
	}
	if !out.Succeeded() || out.Granted != 22 {
		t.Fatalf("committed payment must still be granted, got %+v", out)
	}
	if ledger.increments != 1 || !log.records[0].GrantConfirmed {
		t.Fatalf("expected one confirmed grant, got increments=%d record=%+v", ledger.increments, log.records[0])
	}
}

func TestPaymentOrchestrator_ProcessSuccess_TierGating(t *testing.T) {
	highTier := entities.Player{ID: 77, Balance: 50000, Level: 120}

	t.Run("gated item rejected while toggle is off", func(t *testing.T) {
		p := newPipeline(highTier)
		out := p.uc.ProcessSuccess(context.Background(), successEvent("g-1", 77, 8))
		if out.Status != entities.OutcomeRejected || out.Reason != entities.RejectTierRestricted {
			t.Fatalf("expected tier restricted, got %+v", out)
		}
		if len(p.log.records) != 0 || p.ledger.increments != 0 {
			t.Fatalf("rejected payment must not write anything")
		}
	})

	t.Run("gated item allowed for high tier when toggle is on", func(t *testing.T) {
		p := newPipeline(highTier)
		p.uc.catalog = NewCatalogResolver(nil, true)
		out := p.uc.ProcessSuccess(context.Background(), successEvent("g-2", 77, 8))
		if !out.Succeeded() || out.Granted != 1250 {
			t.Fatalf("expected 1250 tokens, got %+v", out)
		}
	})

	t.Run("gated item rejected for low tier when toggle is on", func(t *testing.T) {
		p := newPipeline(entities.Player{ID: 78, Balance: 10, Level: 5})
		p.uc.catalog = NewCatalogResolver(nil, true)
		out := p.uc.ProcessSuccess(context.Background(), successEvent("g-3", 78, 7))
		if out.Reason != entities.RejectTierRestricted {
			t.Fatalf("expected tier restricted, got %+v", out)
		}
	})
}

func TestPaymentOrchestrator_ProcessSuccess_UnknownItem(t *testing.T) {
	p := newPipeline(entities.Player{ID: 3, Level: 1})
	out := p.uc.ProcessSuccess(context.Background(), successEvent("u-1", 3, 999))
	if !out.Succeeded() || out.Granted != DefaultGrantAmount {
		t.Fatalf("expected default grant, got %+v", out)
	}
	if out.Record.TokensGranted != DefaultGrantAmount {
		t.Fatalf("record should carry the granted amount, got %d", out.Record.TokensGranted)
	}
}

func TestPaymentOrchestrator_ProcessSuccess_Failures(t *testing.T) {
	player := entities.Player{ID: 5, Level: 1}

	t.Run("duplicate lookup error is transient", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentLogRepository(ctrl)
		players := mock_interfaces.NewMockIPlayerRepository(ctrl)
		ledger := mock_interfaces.NewMockILedgerStore(ctrl)
		uc := NewPaymentOrchestrator(OrchestratorDeps{Players: players, PaymentLog: repo, Ledger: ledger})

		repo.EXPECT().GetByOrderID(gomock.Any(), "o-1").Return(entities.PaymentRecord{}, errors.New("db down"))

		out := uc.ProcessSuccess(context.Background(), successEvent("o-1", 5, 1))
		if out.Status != entities.OutcomeFailed || !errors.Is(out.Err, ErrTransient) {
			t.Fatalf("expected transient failure, got %+v", out)
		}
	})

	t.Run("player lookup error is transient", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentLogRepository(ctrl)
		players := mock_interfaces.NewMockIPlayerRepository(ctrl)
		uc := NewPaymentOrchestrator(OrchestratorDeps{Players: players, PaymentLog: repo})

		repo.EXPECT().GetByOrderID(gomock.Any(), "o-1").Return(entities.PaymentRecord{}, nil)
		players.EXPECT().FindByID(gomock.Any(), int64(5)).Return(entities.Player{}, errors.New("timeout"))

		out := uc.ProcessSuccess(context.Background(), successEvent("o-1", 5, 1))
		if out.Stage != entities.StagePlayerResolution || !errors.Is(out.Err, ErrTransient) {
			t.Fatalf("expected transient failure at player resolution, got %+v", out)
		}
	})

	t.Run("lost provisioning race reads the winner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentLogRepository(ctrl)
		players := mock_interfaces.NewMockIPlayerRepository(ctrl)
		ledger := mock_interfaces.NewMockILedgerStore(ctrl)
		uc := NewPaymentOrchestrator(OrchestratorDeps{Players: players, PaymentLog: repo, Ledger: ledger})

		gomock.InOrder(
			players.EXPECT().FindByID(gomock.Any(), int64(5)).Return(entities.Player{}, nil),
			players.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Player{}, errors.New("duplicate key")),
			players.EXPECT().FindByID(gomock.Any(), int64(5)).Return(player, nil),
		)
		repo.EXPECT().GetByOrderID(gomock.Any(), "o-1").Return(entities.PaymentRecord{}, nil)
		repo.EXPECT().CountSuccessByPlayerItem(gomock.Any(), int64(5), 1).Return(0, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
				r.ID = 1
				return r, nil
			},
		)
		ledger.EXPECT().IncrementBy(gomock.Any(), int64(5), int64(22)).Return(int64(22), nil)
		repo.EXPECT().MarkGrantConfirmed(gomock.Any(), "o-1").Return(nil)

		out := uc.ProcessSuccess(context.Background(), successEvent("o-1", 5, 1))
		if !out.Succeeded() {
			t.Fatalf("expected success, got %+v", out)
		}
		if out.NotificationSent {
			t.Fatalf("no notifier configured, notification must not be reported as sent")
		}
	})

	t.Run("count error is transient", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentLogRepository(ctrl)
		uc := NewPaymentOrchestrator(OrchestratorDeps{Players: newMemPlayers(player), PaymentLog: repo})

		repo.EXPECT().GetByOrderID(gomock.Any(), "o-1").Return(entities.PaymentRecord{}, nil)
		repo.EXPECT().CountSuccessByPlayerItem(gomock.Any(), int64(5), 1).Return(0, errors.New("db"))

		out := uc.ProcessSuccess(context.Background(), successEvent("o-1", 5, 1))
		if out.Stage != entities.StageTokenCalculation || !errors.Is(out.Err, ErrTransient) {
			t.Fatalf("expected transient failure, got %+v", out)
		}
	})

	t.Run("duplicate insert is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentLogRepository(ctrl)
		ledger := mock_interfaces.NewMockILedgerStore(ctrl)
		uc := NewPaymentOrchestrator(OrchestratorDeps{Players: newMemPlayers(player), PaymentLog: repo, Ledger: ledger})

		repo.EXPECT().GetByOrderID(gomock.Any(), "o-1").Return(entities.PaymentRecord{}, nil)
		repo.EXPECT().CountSuccessByPlayerItem(gomock.Any(), int64(5), 1).Return(0, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, interfaces.ErrDuplicateOrder)

		out := uc.ProcessSuccess(context.Background(), successEvent("o-1", 5, 1))
		if out.Status != entities.OutcomeRejected || out.Stage != entities.StagePersistLog {
			t.Fatalf("expected rejection at persist, got %+v", out)
		}
	})

	t.Run("insert error is transient", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentLogRepository(ctrl)
		uc := NewPaymentOrchestrator(OrchestratorDeps{Players: newMemPlayers(player), PaymentLog: repo})

		repo.EXPECT().GetByOrderID(gomock.Any(), "o-1").Return(entities.PaymentRecord{}, nil)
		repo.EXPECT().CountSuccessByPlayerItem(gomock.Any(), int64(5), 1).Return(0, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, errors.New("disk full"))

		out := uc.ProcessSuccess(context.Background(), successEvent("o-1", 5, 1))
		if !errors.Is(out.Err, ErrTransient) {
			t.Fatalf("expected transient failure, got %+v", out)
		}
	})

	t.Run("ledger failure leaves record unconfirmed", func(t *testing.T) {
		p := newPipeline(player)
		p.ledger.err = errors.New("redis down")

		out := p.uc.ProcessSuccess(context.Background(), successEvent("o-1", 5, 1))
		if out.Status != entities.OutcomeFailed || !errors.Is(out.Err, ErrGrantNotConfirmed) {
			t.Fatalf("expected grant not confirmed, got %+v", out)
		}
		if out.Record.OrderID != "o-1" {
			t.Fatalf("failed outcome should carry the committed record")
		}
		if out.Record.GrantState != entities.GrantStatePending {
			t.Fatalf("failed grant should be released to pending, got %s", out.Record.GrantState)
		}
		pending, _ := p.uc.PendingGrants(context.Background(), 10)
		if len(pending) != 1 || pending[0].GrantConfirmed {
			t.Fatalf("expected one pending grant, got %+v", pending)
		}
	})

	t.Run("notification failure is soft", func(t *testing.T) {
		p := newPipeline(player)
		p.notifier.err = errors.New("queue full")

		out := p.uc.ProcessSuccess(context.Background(), successEvent("o-1", 5, 1))
		if !out.Succeeded() || out.NotificationSent {
			t.Fatalf("expected success without notification, got %+v", out)
		}
	})

	t.Run("confirmation failure does not fail the payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentLogRepository(ctrl)
		uc := NewPaymentOrchestrator(OrchestratorDeps{Players: newMemPlayers(player), PaymentLog: repo, Ledger: newMemLedger()})

		repo.EXPECT().GetByOrderID(gomock.Any(), "o-1").Return(entities.PaymentRecord{}, nil)
		repo.EXPECT().CountSuccessByPlayerItem(gomock.Any(), int64(5), 1).Return(2, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) { return r, nil },
		)
		repo.EXPECT().MarkGrantConfirmed(gomock.Any(), "o-1").Return(errors.New("db"))

		out := uc.ProcessSuccess(context.Background(), successEvent("o-1", 5, 1))
		if !out.Succeeded() || out.Record.GrantConfirmed {
			t.Fatalf("expected success with unconfirmed record, got %+v", out)
		}
		if out.PurchaseCount != 3 || out.Granted != 20 {
			t.Fatalf("unexpected outcome: %+v", out)
		}
	})
}

func TestPaymentOrchestrator_ProcessFailure(t *testing.T) {
	t.Run("records every attempt", func(t *testing.T) {
		p := newPipeline()
		ev := entities.PaymentFailureEvent{OrderID: "f-1", PlayerID: 4, ItemID: 2, ErrorCode: "CARD_DECLINED"}
		for i := 0; i < 2; i++ {
			out := p.uc.ProcessFailure(context.Background(), ev)
			if !out.Succeeded() || out.Record.Status != entities.PaymentStatusFailed {
				t.Fatalf("unexpected outcome: %+v", out)
			}
		}
		if len(p.log.records) != 2 || p.ledger.increments != 0 {
			t.Fatalf("expected two failure records and no grant")
		}
		if *p.log.records[0].ErrorCode != "CARD_DECLINED" || p.log.records[0].Price.Valid {
			t.Fatalf("unexpected failure record: %+v", p.log.records[0])
		}
	})

	t.Run("failure does not block a later success", func(t *testing.T) {
		p := newPipeline(entities.Player{ID: 4, Level: 1})
		p.uc.ProcessFailure(context.Background(), entities.PaymentFailureEvent{OrderID: "f-2", PlayerID: 4, ItemID: 1})
		out := p.uc.ProcessSuccess(context.Background(), successEvent("f-2", 4, 1))
		if !out.Succeeded() {
			t.Fatalf("expected success after failure, got %+v", out)
		}
		if *p.log.records[0].ErrorCode != "UNKNOWN_ERROR" {
			t.Fatalf("expected default error code")
		}
	})

	t.Run("empty order id", func(t *testing.T) {
		p := newPipeline()
		out := p.uc.ProcessFailure(context.Background(), entities.PaymentFailureEvent{})
		if !errors.Is(out.Err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %+v", out)
		}
	})

	t.Run("insert error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentLogRepository(ctrl)
		uc := NewPaymentOrchestrator(OrchestratorDeps{PaymentLog: repo})
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, errors.New("db"))

		out := uc.ProcessFailure(context.Background(), entities.PaymentFailureEvent{OrderID: "f-3"})
		if !errors.Is(out.Err, ErrTransient) {
			t.Fatalf("expected transient, got %+v", out)
		}
	})
}

func TestPaymentOrchestrator_RetryGrant(t *testing.T) {
	t.Run("applies a pending grant once", func(t *testing.T) {
		p := newPipeline(entities.Player{ID: 6, Level: 1})
		p.ledger.err = errors.New("redis down")
		p.uc.ProcessSuccess(context.Background(), successEvent("r-1", 6, 1))
		p.ledger.err = nil

		out := p.uc.RetryGrant(context.Background(), "r-1")
		if !out.Succeeded() || out.Granted != 22 || !out.Record.GrantConfirmed {
			t.Fatalf("unexpected retry outcome: %+v", out)
		}
		again := p.uc.RetryGrant(context.Background(), "r-1")
		if again.Reason != entities.RejectNotReconcilable {
			t.Fatalf("expected not reconcilable, got %+v", again)
		}
		if p.ledger.increments != 1 {
			t.Fatalf("expected single increment, got %d", p.ledger.increments)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		p := newPipeline()
		out := p.uc.RetryGrant(context.Background(), "missing")
		if !errors.Is(out.Err, ErrPaymentRecordNotFound) {
			t.Fatalf("expected not found, got %+v", out)
		}
	})

	t.Run("failed record is not reconcilable", func(t *testing.T) {
		p := newPipeline()
		p.uc.ProcessFailure(context.Background(), entities.PaymentFailureEvent{OrderID: "r-2", PlayerID: 1})
		out := p.uc.RetryGrant(context.Background(), "r-2")
		if out.Reason != entities.RejectNotReconcilable {
			t.Fatalf("expected not reconcilable, got %+v", out)
		}
	})

	t.Run("ledger still failing", func(t *testing.T) {
		p := newPipeline(entities.Player{ID: 6, Level: 1})
		p.ledger.err = errors.New("redis down")
		p.uc.ProcessSuccess(context.Background(), successEvent("r-3", 6, 1))

		out := p.uc.RetryGrant(context.Background(), " r-3 ")
		if !errors.Is(out.Err, ErrGrantNotConfirmed) {
			t.Fatalf("expected grant not confirmed, got %+v", out)
		}
	})
}

func TestPaymentOrchestrator_RetryGrant_ConcurrentRetries(t *testing.T) {
	p := newPipeline(entities.Player{ID: 6, Level: 1})
	ctx := context.Background()
	p.ledger.err = errors.New("redis down")
	p.uc.ProcessSuccess(ctx, successEvent("r-1", 6, 1))
	p.ledger.err = nil

	const retries = 4
	outcomes := make([]entities.PaymentOutcome, retries)
	var wg sync.WaitGroup
	for i := 0; i < retries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = p.uc.RetryGrant(ctx, "r-1")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, out := range outcomes {
		switch {
		case out.Succeeded():
			succeeded++
		case out.Reason == entities.RejectGrantInProgress, out.Reason == entities.RejectNotReconcilable:
		default:
			t.Fatalf("unexpected outcome: %+v", out)
		}
	}
	if succeeded != 1 || p.ledger.increments != 1 {
		t.Fatalf("expected one granted retry, got succeeded=%d increments=%d", succeeded, p.ledger.increments)
	}
	if bal, _ := p.ledger.Get(ctx, 6); bal != 22 {
		t.Fatalf("expected balance 22, got %d", bal)
	}
}

// blockingLedger parks the first increment until released.
type blockingLedger struct {
	*memLedger
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (l *blockingLedger) IncrementBy(ctx context.Context, playerID int64, amount int64) (int64, error) {
	l.once.Do(func() {
		close(l.entered)
		<-l.release
	})
	return l.memLedger.IncrementBy(ctx, playerID, amount)
}

func TestPaymentOrchestrator_RetryGrant_WhileWebhookGranting(t *testing.T) {
	p := newPipeline(entities.Player{ID: 11, Level: 1})
	ctx := context.Background()
	ledger := &blockingLedger{memLedger: p.ledger, entered: make(chan struct{}), release: make(chan struct{})}
	p.uc.grantor = NewRewardGrantor(ledger, p.notifier)

	done := make(chan entities.PaymentOutcome, 1)
	go func() { done <- p.uc.ProcessSuccess(ctx, successEvent("w-1", 11, 1)) }()
	<-ledger.entered

	if pending, _ := p.uc.PendingGrants(ctx, 10); len(pending) != 0 {
		t.Fatalf("an in-flight grant must not be listed, got %+v", pending)
	}
	retry := p.uc.RetryGrant(ctx, "w-1")
	if retry.Status != entities.OutcomeRejected || retry.Reason != entities.RejectGrantInProgress {
		t.Fatalf("expected grant in progress, got %+v", retry)
	}

	close(ledger.release)
	if out := <-done; !out.Succeeded() {
		t.Fatalf("expected webhook success, got %+v", out)
	}
	if p.ledger.increments != 1 {
		t.Fatalf("expected one increment, got %d", p.ledger.increments)
	}
	if bal, _ := p.ledger.Get(ctx, 11); bal != 22 {
		t.Fatalf("expected balance 22, got %d", bal)
	}
}

func TestPaymentOrchestrator_RetryGrant_AbandonedInFlight(t *testing.T) {
	p := newPipeline()
	ctx := context.Background()
	now := time.Now().UTC()
	inFlight := func(orderID string, touched time.Time) entities.PaymentRecord {
		return entities.PaymentRecord{
			OrderID: orderID, PlayerID: 6, ItemID: 1, Status: entities.PaymentStatusSuccess,
			TokensGranted: 22, GrantState: entities.GrantStateInFlight, CreatedAt: touched, UpdatedAt: touched,
		}
	}
	_, _ = p.log.Create(ctx, inFlight("a-1", now.Add(-time.Hour)))
	_, _ = p.log.Create(ctx, inFlight("a-2", now))

	pending, _ := p.uc.PendingGrants(ctx, 10)
	if len(pending) != 1 || pending[0].OrderID != "a-1" {
		t.Fatalf("only the stale grant should be listed, got %+v", pending)
	}
	if out := p.uc.RetryGrant(ctx, "a-1"); !out.Succeeded() || out.Record.GrantState != entities.GrantStateConfirmed {
		t.Fatalf("stale in-flight grant should be reclaimed, got %+v", out)
	}
	if out := p.uc.RetryGrant(ctx, "a-2"); out.Reason != entities.RejectGrantInProgress {
		t.Fatalf("fresh in-flight grant must stay with its owner, got %+v", out)
	}
	if p.ledger.increments != 1 {
		t.Fatalf("expected one increment, got %d", p.ledger.increments)
	}
}

func TestPaymentOrchestrator_RetryGrant_ClaimError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentLogRepository(ctrl)
	ledger := mock_interfaces.NewMockILedgerStore(ctrl)
	uc := NewPaymentOrchestrator(OrchestratorDeps{PaymentLog: repo, Ledger: ledger})

	repo.EXPECT().GetByOrderID(gomock.Any(), "e-1").Return(entities.PaymentRecord{
		OrderID: "e-1", Status: entities.PaymentStatusSuccess, TokensGranted: 10, GrantState: entities.GrantStatePending,
	}, nil)
	repo.EXPECT().ClaimGrant(gomock.Any(), "e-1", gomock.Any()).Return(false, errors.New("db"))

	out := uc.RetryGrant(context.Background(), "e-1")
	if !errors.Is(out.Err, ErrTransient) {
		t.Fatalf("expected transient failure, got %+v", out)
	}
}

func TestPaymentOrchestrator_RecordTimestamps(t *testing.T) {
	p := newPipeline(entities.Player{ID: 1, Level: 1})
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p.uc.writer.now = func() time.Time { return fixed }

	out := p.uc.ProcessSuccess(context.Background(), successEvent("t-1", 1, 1))
	if !out.Record.CreatedAt.Equal(fixed) || !out.Record.UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected timestamps: %+v", out.Record)
	}
}
