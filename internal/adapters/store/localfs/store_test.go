package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uezdny/konditer/internal/domain"
)

func TestLoadMissingFileIsEmptyCart(t *testing.T) {
	s := New(t.TempDir())
	cart, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	cfg := domain.NewCakeConfig()
	cfg.Type = "Cake"
	cfg.Fillings = []string{"Vanilla with fruit"}
	original := domain.Cart{
		{ID: "a", ProductID: 3, Name: "Napoleon", UnitPrice: 1600, Quantity: 2},
		{ID: "b", Name: "Custom Cake", UnitPrice: 1700, Quantity: 1, Category: "custom", CakeConfig: &cfg},
	}

	require.NoError(t, s.Save(ctx, original))
	loaded, err := s.Load(ctx)
	require.NoError(t, err)

	require.Len(t, loaded, 2)
	assert.Equal(t, original[0], loaded[0])
	assert.Equal(t, "b", loaded[1].ID)
	assert.Equal(t, 1700, loaded[1].UnitPrice)
	require.NotNil(t, loaded[1].CakeConfig)
	assert.Equal(t, cfg.Fillings, loaded[1].CakeConfig.Fillings)
}

func TestCorruptStateRecovery(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	ctx := context.Background()

	path := filepath.Join(dir, domain.CartStorageKey+".json")
	require.NoError(t, os.WriteFile(path, []byte("definitely }{ not json"), 0644))

	cart, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)

	// the corrupt value is gone and a save overwrites it with valid data
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	require.NoError(t, s.Save(ctx, domain.Cart{{ID: "x", Name: "ok", UnitPrice: 1, Quantity: 1}}))
	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "x", loaded[0].ID)
}

func TestNonArrayValueDiscarded(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	path := filepath.Join(dir, domain.CartStorageKey+".json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":"json object, not an array"}`), 0644))

	cart, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestClearIsIdempotent(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Save(ctx, domain.Cart{{ID: "x", Name: "ok", UnitPrice: 1, Quantity: 1}}))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	cart, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
}
