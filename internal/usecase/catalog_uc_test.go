package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uezdny/konditer/internal/domain"
)

func TestCatalogServedFromSource(t *testing.T) {
	repo := &mockOptionRepo{catalog: &domain.Catalog{
		Types: []domain.Option{{Name: "Cake", Price: 1234}},
	}}
	uc := &CatalogUC{Options: repo}

	cat := uc.Catalog(context.Background())
	require.Len(t, cat.Types, 1)
	assert.Equal(t, 1234, cat.Types[0].Price)

	// cached after the first load
	uc.Catalog(context.Background())
	assert.Equal(t, 1, repo.calls)
}

func TestCatalogFallsBackWhenSourceFails(t *testing.T) {
	uc := &CatalogUC{Options: &mockOptionRepo{err: errors.New("db down")}}

	cat := uc.Catalog(context.Background())
	require.NotNil(t, cat)
	assert.NotEmpty(t, cat.Types, "defaults must be served while the source is down")
	assert.NotNil(t, domain.Find(cat.Types, "Cake"))
}

func TestCatalogWithoutSourceUsesDefaults(t *testing.T) {
	uc := &CatalogUC{}

	cat := uc.Catalog(context.Background())
	assert.Len(t, cat.Fillings, 12)
	assert.Len(t, cat.Coatings, 5)
}

func TestCatalogInvalidate(t *testing.T) {
	repo := &mockOptionRepo{catalog: &domain.Catalog{}}
	uc := &CatalogUC{Options: repo}

	uc.Catalog(context.Background())
	uc.Invalidate()
	uc.Catalog(context.Background())
	assert.Equal(t, 2, repo.calls)
}
