package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/uezdny/konditer/internal/domain"
)

// CatalogUC supplies the option catalog. The external source is read once
// and cached; while it is unavailable the built-in defaults are served, so
// consumers never see an error from here.
type CatalogUC struct {
	Options domain.OptionRepo

	sfg    singleflight.Group
	mu     sync.RWMutex
	cached *domain.Catalog
}

// Catalog returns the current option lists, falling back to the defaults
// whenever the source cannot be reached. Concurrent cold loads collapse
// into a single repo call.
func (uc *CatalogUC) Catalog(ctx context.Context) *domain.Catalog {
	uc.mu.RLock()
	cached := uc.cached
	uc.mu.RUnlock()
	if cached != nil {
		return cached
	}

	if uc.Options == nil {
		return domain.DefaultCatalog()
	}

	v, err, _ := uc.sfg.Do("catalog", func() (interface{}, error) {
		cat, err := uc.Options.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		uc.mu.Lock()
		uc.cached = cat
		uc.mu.Unlock()
		return cat, nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("catalog load failed, serving defaults")
		return domain.DefaultCatalog()
	}
	return v.(*domain.Catalog)
}

// Invalidate drops the cached catalog so the next read hits the source.
func (uc *CatalogUC) Invalidate() {
	uc.mu.Lock()
	uc.cached = nil
	uc.mu.Unlock()
}
