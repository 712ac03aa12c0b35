package usecase

import (
	"fmt"
	"webcharge_api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

const (
	// DefaultGrantAmount is granted for item ids missing from the catalog so an
	// unknown item never stops a payment.
	DefaultGrantAmount int64 = 100

	HighTierMinBalance int64   = 10000
	HighTierMinLevel   float64 = 99.99
)

// DefaultCatalog is the built-in store table, ordered from the highest tier down.
func DefaultCatalog() []entities.CatalogItem {
	return []entities.CatalogItem{
		catalogItem(8, "999.99", "Mythic Pack", 1000, "0.06", "0.25", true),
		catalogItem(7, "599.99", "Legend Pack", 600, "0.05", "0.25", true),
		catalogItem(6, "399.99", "Deluxe Pack", 400, "0.04", "0.25", false),
		catalogItem(5, "199.99", "Premium Pack", 200, "0.02", "0.15", false),
		catalogItem(4, "99.99", "Elite Pack", 100, "0.01", "0.15", false),
		catalogItem(3, "49.99", "Advanced Pack", 50, "0", "0.1", false),
		catalogItem(2, "29.99", "Growth Pack", 30, "0", "0.1", false),
		catalogItem(1, "19.99", "Starter Pack", 20, "0", "0.1", false),
	}
}

func catalogItem(id int, price, name string, base int64, normal, first string, gated bool) entities.CatalogItem {
	return entities.CatalogItem{
		ID:              id,
		Price:           decimal.RequireFromString(price),
		Name:            name,
		BaseGrant:       base,
		NormalBonusRate: decimal.RequireFromString(normal),
		FirstBonusRate:  decimal.RequireFromString(first),
		Gated:           gated,
	}
}

// IsHighTierPlayer is the documented threshold that unlocks gated items.
func IsHighTierPlayer(balance int64, level float64) bool {
	return balance >= HighTierMinBalance && level >= HighTierMinLevel
}

// CalculateGrant returns base + floor(base*rate).
func CalculateGrant(base int64, rate decimal.Decimal) int64 {
	bonus := decimal.NewFromInt(base).Mul(rate).Floor()
	return base + bonus.IntPart()
}

// ICatalogResolver maps an item and a player's purchase history to a grant.
type ICatalogResolver interface {
	Resolve(itemID int, player entities.Player, priorPurchases int) entities.Resolution
	Items() []entities.CatalogItem
	ItemName(itemID int) string
	Listing(p entities.Player, purchases map[int]int) []entities.StoreListing
	HighTierEnabled() bool
}

// CatalogResolver is a pure function of the catalog table, the high-tier toggle
// and the inputs of Resolve. The table is never mutated after construction.
type CatalogResolver struct {
	items           []entities.CatalogItem
	byID            map[int]entities.CatalogItem
	highTierEnabled bool
}

var _ ICatalogResolver = (*CatalogResolver)(nil)

// NewCatalogResolver builds a resolver over items. When highTierEnabled is
// false the high-tier predicate is never consulted and gated items are
// unavailable to everyone, which is how the store currently runs.
func NewCatalogResolver(items []entities.CatalogItem, highTierEnabled bool) *CatalogResolver {
	if len(items) == 0 {
		items = DefaultCatalog()
	}
	byID := make(map[int]entities.CatalogItem, len(items))
	copied := make([]entities.CatalogItem, len(items))
	for i, it := range items {
		copied[i] = it
		byID[it.ID] = it
	}
	return &CatalogResolver{items: copied, byID: byID, highTierEnabled: highTierEnabled}
}

func (r *CatalogResolver) HighTierEnabled() bool {
	return r.highTierEnabled
}

func (r *CatalogResolver) isHighTier(p entities.Player) bool {
	if !r.highTierEnabled {
		return false
	}
	return IsHighTierPlayer(p.Balance, p.Level)
}

// CanPurchase reports the tier-gating decision alone.
func (r *CatalogResolver) CanPurchase(item entities.CatalogItem, p entities.Player) bool {
	return !item.Gated || r.isHighTier(p)
}

func (r *CatalogResolver) Resolve(itemID int, player entities.Player, priorPurchases int) entities.Resolution {
	item, ok := r.byID[itemID]
	if !ok {
		return entities.Resolution{
			ItemID:      itemID,
			ItemName:    fmt.Sprintf("unknown item %d", itemID),
			Known:       false,
			Eligible:    true,
			GrantAmount: DefaultGrantAmount,
			BaseGrant:   DefaultGrantAmount,
		}
	}

	if !r.CanPurchase(item, player) {
		return entities.Resolution{
			ItemID:   itemID,
			ItemName: fmt.Sprintf("unavailable item %d", itemID),
			Known:    true,
			Eligible: false,
		}
	}

	first := priorPurchases <= 0
	rate := item.NormalBonusRate
	if first {
		rate = item.FirstBonusRate
	}
	return entities.Resolution{
		ItemID:           itemID,
		ItemName:         item.Name,
		Known:            true,
		Eligible:         true,
		GrantAmount:      CalculateGrant(item.BaseGrant, rate),
		BaseGrant:        item.BaseGrant,
		BonusRatePercent: int(rate.Mul(decimal.NewFromInt(100)).IntPart()),
		FirstPurchase:    first,
	}
}

func (r *CatalogResolver) Items() []entities.CatalogItem {
	out := make([]entities.CatalogItem, len(r.items))
	copy(out, r.items)
	return out
}

func (r *CatalogResolver) ItemName(itemID int) string {
	if it, ok := r.byID[itemID]; ok {
		return it.Name
	}
	return fmt.Sprintf("unknown item %d", itemID)
}

// Listing returns the items offered to p, gated ones only when p may buy them.
// purchases maps item id to the player's prior successful purchases of it.
func (r *CatalogResolver) Listing(p entities.Player, purchases map[int]int) []entities.StoreListing {
	out := make([]entities.StoreListing, 0, len(r.items))
	for _, it := range r.items {
		if !r.CanPurchase(it, p) {
			continue
		}
		count := purchases[it.ID]
		res := r.Resolve(it.ID, p, count)
		firstRate := decimal.Zero
		if res.FirstPurchase {
			firstRate = it.FirstBonusRate
		}
		out = append(out, entities.StoreListing{
			ID:        it.ID,
			Name:      it.Name,
			Price:     it.Price,
			Tokens:    res.GrantAmount,
			BaseGrant: it.BaseGrant,
			BonusRate: it.NormalBonusRate,
			FirstRate: firstRate,
		})
	}
	return out
}
