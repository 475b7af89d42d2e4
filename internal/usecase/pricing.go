package usecase

import "github.com/uezdny/konditer/internal/domain"

// Price derives the total for a builder configuration from the option
// catalog. It is a pure function: no side effects, same inputs same result.
// A nil or still-loading catalog prices every term at its fallback, so the
// builder keeps quoting while the option source is down.
func Price(cfg domain.CakeConfig, catalog *domain.Catalog) int {
	if catalog == nil {
		catalog = &domain.Catalog{}
	}

	price := domain.FallbackBase
	if opt := domain.Find(catalog.Types, cfg.Type); opt != nil {
		price = opt.Price
	}

	if opt := domain.Find(catalog.Weights, cfg.Weight); opt != nil {
		price += opt.Price
	}

	if cfg.Tiers > 1 {
		price += domain.TierSurcharge * (cfg.Tiers - 1)
	}

	if opt := domain.Find(catalog.Decorations, cfg.Decoration); opt != nil {
		price += opt.Price
	}

	if opt := domain.Find(catalog.Coatings, cfg.Coating); opt != nil {
		price += opt.Price
	}

	for _, f := range cfg.Fillings {
		if opt := domain.Find(catalog.Fillings, f); opt != nil {
			price += opt.Price
		} else {
			price += domain.FallbackFilling
		}
	}

	return price
}
