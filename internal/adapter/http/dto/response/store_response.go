package response

import (
	"strconv"

	"webcharge_api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ProfileResponse is shared by login and refresh.
type ProfileResponse struct {
	StatusCode int     `json:"status_code"`
	UID        string  `json:"uid,omitempty"`
	UserName   string  `json:"user_name,omitempty"`
	Level      float64 `json:"level,omitempty"`
	Coins      string  `json:"coins,omitempty"`
	Cash       string  `json:"cash,omitempty"`
	Msg        string  `json:"msg"`
}

// displayCoins undoes the game's overflow encoding: negative balances are
// stored in units of one billion.
func displayCoins(coins int64) string {
	if coins < 0 {
		return decimal.NewFromInt(-coins).Mul(decimal.NewFromInt(1_000_000_000)).String()
	}
	return strconv.FormatInt(coins, 10)
}

func FromProfile(p entities.PlayerProfile, msg string) ProfileResponse {
	name := p.Player.Name
	if name == "" {
		name = "User_" + strconv.FormatInt(p.Player.ID, 10)
	}
	return ProfileResponse{
		StatusCode: 1,
		UID:        strconv.FormatInt(p.Player.ID, 10),
		UserName:   name,
		Level:      p.Player.Level,
		Coins:      displayCoins(p.Player.Balance),
		Cash:       strconv.FormatInt(p.Cash, 10),
		Msg:        msg,
	}
}

func ProfileFailure(msg string) ProfileResponse {
	return ProfileResponse{StatusCode: 0, Msg: msg}
}

type ActItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Num  int    `json:"num"`
}

type StoreItem struct {
	entities.StoreListing
	ActItems []ActItem `json:"act_items"`
}

type StoreItemsResponse struct {
	ReturnCode int         `json:"return_code"`
	IsFirstPay int         `json:"is_first_pay"`
	Items      []StoreItem `json:"items"`
}

func FromListings(listings []entities.StoreListing) StoreItemsResponse {
	items := make([]StoreItem, 0, len(listings))
	for _, l := range listings {
		items = append(items, StoreItem{StoreListing: l, ActItems: []ActItem{}})
	}
	return StoreItemsResponse{ReturnCode: 1, Items: items}
}

type OrderHistoryResponse struct {
	StatusCode int                     `json:"status_code"`
	Data       []entities.OrderSummary `json:"data"`
	Msg        string                  `json:"msg,omitempty"`
}

func FromOrders(orders []entities.OrderSummary) OrderHistoryResponse {
	if orders == nil {
		orders = []entities.OrderSummary{}
	}
	return OrderHistoryResponse{StatusCode: 1, Data: orders}
}

type TokenResponse struct {
	ReturnCode int    `json:"return_code"`
	Token      string `json:"token,omitempty"`
	Msg        string `json:"msg"`
}
