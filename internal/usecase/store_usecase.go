package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrInvalidLogin      = errors.New("invalid login parameters")
	ErrStoreNotAvailable = errors.New("store dependencies not configured")
)

// IStoreUseCase exposes the player-facing store operations.
//
// These operations back the web-store pages:
//   - GET /login and POST /refresh => Login(), Refresh()
//   - POST /store/items => StoreItems()
//   - POST /orders/history => OrderHistory()

type IStoreUseCase interface {
	Login(ctx context.Context, loginType entities.LoginType, loginID, loginCode string) (entities.PlayerProfile, error)
	Refresh(ctx context.Context, playerID int64) (entities.PlayerProfile, error)
	StoreItems(ctx context.Context, playerID int64) ([]entities.StoreListing, error)
	OrderHistory(ctx context.Context, playerID int64, limit int) ([]entities.OrderSummary, error)
}

type StoreDeps struct {
	Players    interfaces.IPlayerRepository
	Identity   interfaces.IIdentityResolver
	PaymentLog interfaces.IPaymentLogRepository
	Ledger     interfaces.ILedgerStore
	Catalog    ICatalogResolver
}

type StoreUseCase struct {
	players  interfaces.IPlayerRepository
	identity interfaces.IIdentityResolver
	writer   *PaymentLogWriter
	ledger   interfaces.ILedgerStore
	catalog  ICatalogResolver
}

var _ IStoreUseCase = (*StoreUseCase)(nil)

func NewStoreUseCase(deps StoreDeps) *StoreUseCase {
	catalog := deps.Catalog
	if catalog == nil {
		catalog = NewCatalogResolver(nil, false)
	}
	var writer *PaymentLogWriter
	if deps.PaymentLog != nil {
		writer = NewPaymentLogWriter(deps.PaymentLog)
	}
	return &StoreUseCase{
		players:  deps.Players,
		identity: deps.Identity,
		writer:   writer,
		ledger:   deps.Ledger,
		catalog:  catalog,
	}
}

func (u *StoreUseCase) Login(ctx context.Context, loginType entities.LoginType, loginID, loginCode string) (entities.PlayerProfile, error) {
	loginID = strings.TrimSpace(loginID)
	if !loginType.Valid() || loginID == "" {
		return entities.PlayerProfile{}, ErrInvalidLogin
	}
	if loginType.RequiresCode() && strings.TrimSpace(loginCode) == "" {
		return entities.PlayerProfile{}, ErrInvalidLogin
	}
	if u.identity == nil {
		return entities.PlayerProfile{}, ErrStoreNotAvailable
	}

	p, err := u.identity.FindByLogin(ctx, loginType, loginID)
	if err != nil {
		return entities.PlayerProfile{}, err
	}
	if !p.Exists() {
		log.Printf("[store][usecase] login unknown identity login_type=%d", loginType)
		return entities.PlayerProfile{}, ErrPlayerNotFound
	}
	log.Printf("[store][usecase] login ok player_id=%d login_type=%d", p.ID, loginType)
	return u.profile(ctx, p), nil
}

func (u *StoreUseCase) Refresh(ctx context.Context, playerID int64) (entities.PlayerProfile, error) {
	if playerID <= 0 {
		return entities.PlayerProfile{}, ErrInvalidPlayerID
	}
	if u.players == nil {
		return entities.PlayerProfile{}, ErrStoreNotAvailable
	}
	p, err := u.players.FindByID(ctx, playerID)
	if err != nil {
		return entities.PlayerProfile{}, err
	}
	if !p.Exists() {
		return entities.PlayerProfile{}, ErrPlayerNotFound
	}
	return u.profile(ctx, p), nil
}

// profile attaches the ledger total. A ledger outage shows zero cash rather
// than failing the login.
func (u *StoreUseCase) profile(ctx context.Context, p entities.Player) entities.PlayerProfile {
	out := entities.PlayerProfile{Player: p}
	if u.ledger == nil {
		return out
	}
	cash, err := u.ledger.Get(ctx, p.ID)
	if err != nil {
		log.Printf("[store][usecase] ledger read failed player_id=%d err=%v", p.ID, err)
		return out
	}
	out.Cash = cash
	return out
}

// StoreItems lists the catalog for playerID. Unknown players see the listing
// of a new player.
func (u *StoreUseCase) StoreItems(ctx context.Context, playerID int64) ([]entities.StoreListing, error) {
	if playerID <= 0 {
		return nil, ErrInvalidPlayerID
	}
	if u.players == nil || u.writer == nil {
		return nil, ErrStoreNotAvailable
	}

	p, err := u.players.FindByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	known := p.Exists()
	purchases := map[int]int{}
	if known {
		for _, it := range u.catalog.Items() {
			n, err := u.writer.CountSuccessfulPurchases(ctx, p.ID, it.ID)
			if err != nil {
				return nil, err
			}
			purchases[it.ID] = n
		}
	} else {
		p = entities.Player{ID: playerID, Level: 1}
	}

	items := u.catalog.Listing(p, purchases)
	log.Printf("[store][usecase] store items player_id=%d known_player=%t count=%d", playerID, known, len(items))
	return items, nil
}

func (u *StoreUseCase) OrderHistory(ctx context.Context, playerID int64, limit int) ([]entities.OrderSummary, error) {
	if playerID <= 0 {
		return nil, ErrInvalidPlayerID
	}
	if u.writer == nil {
		return nil, ErrStoreNotAvailable
	}
	records, err := u.writer.History(ctx, playerID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]entities.OrderSummary, 0, len(records))
	for _, r := range records {
		status := entities.OrderStatusFailed
		if r.Status == entities.PaymentStatusSuccess {
			status = entities.OrderStatusCompleted
		}
		out = append(out, entities.OrderSummary{
			OrderID:   r.OrderID,
			ItemName:  u.catalog.ItemName(r.ItemID),
			OrderTime: r.CreatedAt,
			Status:    status,
			Price:     r.Price,
			Currency:  r.Currency,
		})
	}
	return out, nil
}
