package entities

import "github.com/shopspring/decimal"

// CatalogItem is one purchasable bundle of the web store.
//
// Domain notes:
//   - The catalog is a fixed table ordered by tier; lower ids are cheaper.
//   - Gated items are only sold to high-tier players.
//   - Rates are fractions (0.25 = 25%), kept as decimals so grant math is exact.
//
type CatalogItem struct {
	ID              int             `json:"id"`
	Price           decimal.Decimal `json:"price"`
	Name            string          `json:"name"`
	BaseGrant       int64           `json:"base_tokens"`
	NormalBonusRate decimal.Decimal `json:"normal_bonus"`
	FirstBonusRate  decimal.Decimal `json:"first_bonus"`
	Gated           bool            `json:"gated"`
}

// Resolution is what the catalog decides for one item, player and purchase history.
type Resolution struct {
	ItemID           int    `json:"item_id"`
	ItemName         string `json:"item_name"`
	Known            bool   `json:"known"`
	Eligible         bool   `json:"eligible"`
	GrantAmount      int64  `json:"grant_amount"`
	BaseGrant        int64  `json:"base_grant"`
	BonusRatePercent int    `json:"bonus_rate_percent"`
	FirstPurchase    bool   `json:"first_purchase"`
}

// StoreListing is a catalog item as offered to a given player.
type StoreListing struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Tokens    int64           `json:"tokens"`
	BaseGrant int64           `json:"base_tokens"`
	BonusRate decimal.Decimal `json:"bonus_rate"`
	FirstRate decimal.Decimal `json:"first_rate"`
}
