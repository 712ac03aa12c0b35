package catalog

import (
	"errors"
	"fmt"
	"os"

	"webcharge_api/internal/domain/entities"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrEmptyCatalog = errors.New("catalog has no items")

type fileItem struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	BaseTokens  int64  `yaml:"base_tokens"`
	NormalBonus string `yaml:"normal_bonus"`
	FirstBonus  string `yaml:"first_bonus"`
	Gated       bool   `yaml:"gated"`
}

type file struct {
	Items []fileItem `yaml:"items"`
}

// LoadFile reads a store table from YAML. Prices and rates are strings so
// they parse into exact decimals.
func LoadFile(path string) ([]entities.CatalogItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

func Parse(raw []byte) ([]entities.CatalogItem, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[int]bool, len(f.Items))
	items := make([]entities.CatalogItem, 0, len(f.Items))
	for _, it := range f.Items {
		if it.ID <= 0 {
			return nil, fmt.Errorf("catalog item %q: id must be positive", it.Name)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("catalog item %d: duplicate id", it.ID)
		}
		seen[it.ID] = true
		if it.BaseTokens <= 0 {
			return nil, fmt.Errorf("catalog item %d: base_tokens must be positive", it.ID)
		}

		price, err := parseDecimal(it.Price, "price", it.ID)
		if err != nil {
			return nil, err
		}
		normal, err := parseDecimal(it.NormalBonus, "normal_bonus", it.ID)
		if err != nil {
			return nil, err
		}
		first, err := parseDecimal(it.FirstBonus, "first_bonus", it.ID)
		if err != nil {
			return nil, err
		}
		if normal.IsNegative() || first.IsNegative() {
			return nil, fmt.Errorf("catalog item %d: bonus rates must not be negative", it.ID)
		}

		items = append(items, entities.CatalogItem{
			ID:              it.ID,
			Price:           price,
			Name:            it.Name,
			BaseGrant:       it.BaseTokens,
			NormalBonusRate: normal,
			FirstBonusRate:  first,
			Gated:           it.Gated,
		})
	}
	return items, nil
}

func parseDecimal(v, field string, id int) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("catalog item %d: %s: %w", id, field, err)
	}
	return d, nil
}
