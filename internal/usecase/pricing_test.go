package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uezdny/konditer/internal/domain"
)

func TestPriceFullConfiguration(t *testing.T) {
	catalog := &domain.Catalog{
		Types:   []domain.Option{{Name: "Cake", Price: 1000}},
		Weights: []domain.Option{{Name: "1kg", Price: 0}},
		Fillings: []domain.Option{
			{Name: "A", Price: 100},
		},
	}
	cfg := domain.CakeConfig{
		Type:     "Cake",
		Weight:   "1kg",
		Tiers:    2,
		Fillings: []string{"A", "B"}, // B missing from catalog, priced at fallback
	}

	// 1000 base + 0 weight + 500 extra tier + 100 + 100 fillings
	assert.Equal(t, 1700, Price(cfg, catalog))
}

func TestPriceDeterministic(t *testing.T) {
	catalog := domain.DefaultCatalog()
	cfg := domain.CakeConfig{
		Type:       "Cake",
		Weight:     "2 kg",
		Tiers:      3,
		Decoration: "flowers",
		Coating:    "glaze",
		Fillings:   []string{"Crème brûlée", "Vanilla with fruit"},
	}
	first := Price(cfg, catalog)
	assert.Equal(t, first, Price(cfg, catalog))
}

func TestPriceMonotonicInFillings(t *testing.T) {
	catalog := domain.DefaultCatalog()
	cfg := domain.CakeConfig{Type: "Cake", Weight: "1 kg", Tiers: 1}

	prev := Price(cfg, catalog)
	for _, f := range []string{"Vanilla with fruit", "Nut and honey", "no-such-filling"} {
		cfg.Fillings = append(cfg.Fillings, f)
		cur := Price(cfg, catalog)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestPriceEmptyCatalogFallsBack(t *testing.T) {
	cfg := domain.CakeConfig{
		Type:       "Cake",
		Weight:     "3 kg",
		Tiers:      2,
		Decoration: "flowers",
		Coating:    "glaze",
		Fillings:   []string{"A"},
	}

	// base 1000 + tier 500 + filling 100, every lookup unmatched
	assert.Equal(t, 1600, Price(cfg, &domain.Catalog{}))
	assert.Equal(t, 1600, Price(cfg, nil))
}

func TestPriceUnsetFieldsAddNothing(t *testing.T) {
	catalog := domain.DefaultCatalog()
	cfg := domain.CakeConfig{Tiers: 1}

	assert.Equal(t, domain.FallbackBase, Price(cfg, catalog))
}
