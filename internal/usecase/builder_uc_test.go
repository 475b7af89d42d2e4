package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uezdny/konditer/internal/domain"
)

type mockOptionRepo struct {
	catalog *domain.Catalog
	err     error
	calls   int
}

func (m *mockOptionRepo) LoadCatalog(context.Context) (*domain.Catalog, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog, nil
}

func (m *mockOptionRepo) SaveOptions(context.Context, domain.OptionCategory, []domain.Option) error {
	return nil
}

type mockGateway struct {
	mu        sync.Mutex
	submitted []*domain.CustomOrder
	sketchURL string
	err       error
}

func (m *mockGateway) Submit(_ context.Context, o *domain.CustomOrder) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.submitted = append(m.submitted, o)
	return m.sketchURL, nil
}

type mockOrderRepo struct {
	mu     sync.Mutex
	orders []*domain.CustomOrder
}

func (m *mockOrderRepo) Save(_ context.Context, o *domain.CustomOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, o)
	return nil
}

func (m *mockOrderRepo) List(context.Context, int) ([]domain.CustomOrder, error) {
	return nil, nil
}

func newTestBuilder(t *testing.T) (*BuilderUC, *CartUC, *mockGateway, *mockOrderRepo) {
	t.Helper()
	cart, _, _ := newTestCart(t)
	catalog := &CatalogUC{Options: &mockOptionRepo{catalog: domain.DefaultCatalog()}}
	gw := &mockGateway{}
	orders := &mockOrderRepo{}
	b := NewBuilderUC(catalog, cart, gw, orders)
	b.now = func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	}
	return b, cart, gw, orders
}

// fill walks the builder through every step with a complete selection.
func fill(t *testing.T, b *BuilderUC) {
	t.Helper()
	b.SetEvent("Birthday")
	require.NoError(t, b.Next())
	b.SetType("Cake")
	require.NoError(t, b.Next())
	b.SetShape("Round")
	require.NoError(t, b.Next())
	b.SetWeight("1 kg")
	require.NoError(t, b.Next())
	require.NoError(t, b.ToggleFilling("Vanilla with fruit"))
	require.NoError(t, b.Next())
	require.NoError(t, b.SetTiers(2))
	require.NoError(t, b.Next())
	b.SetDecoration("flowers")
	require.NoError(t, b.Next())
	b.SetCoating("cream")
	require.NoError(t, b.Next())
	require.NoError(t, b.ToggleColor("#FFFFFF"))
	require.NoError(t, b.Next())
	require.NoError(t, b.SetDate("2026-08-10"))
	require.NoError(t, b.Next())
	require.NoError(t, b.Next()) // sketch is optional
	require.Equal(t, StepComment, b.Step())
}

func TestNextRefusedWithoutSelection(t *testing.T) {
	b, _, _, _ := newTestBuilder(t)

	assert.ErrorIs(t, b.Next(), ErrIncompleteStep)
	b.SetEvent("Wedding")
	require.NoError(t, b.Next())
	assert.Equal(t, StepType, b.Step())
	assert.ErrorIs(t, b.Next(), ErrIncompleteStep)
}

func TestPrevIsUnconditional(t *testing.T) {
	b, _, _, _ := newTestBuilder(t)

	b.Prev()
	assert.Equal(t, StepEvent, b.Step())

	b.SetEvent("Birthday")
	require.NoError(t, b.Next())
	b.Prev()
	assert.Equal(t, StepEvent, b.Step())
}

func TestFillingCapHeldAtSelection(t *testing.T) {
	b, _, _, _ := newTestBuilder(t)

	require.NoError(t, b.ToggleFilling("a"))
	require.NoError(t, b.ToggleFilling("b"))
	require.NoError(t, b.ToggleFilling("c"))
	assert.ErrorIs(t, b.ToggleFilling("d"), domain.ErrTooManyFillings)
	assert.Len(t, b.Config().Fillings, 3)

	// toggling one off makes room again
	require.NoError(t, b.ToggleFilling("b"))
	require.NoError(t, b.ToggleFilling("d"))
	assert.Equal(t, []string{"a", "c", "d"}, b.Config().Fillings)
}

func TestColorCapHeldAtSelection(t *testing.T) {
	b, _, _, _ := newTestBuilder(t)

	require.NoError(t, b.ToggleColor("#111111"))
	require.NoError(t, b.ToggleColor("#222222"))
	assert.ErrorIs(t, b.ToggleColor("#333333"), domain.ErrTooManyColors)
	assert.Len(t, b.Config().Colors, 2)
}

func TestTiersRange(t *testing.T) {
	b, _, _, _ := newTestBuilder(t)

	assert.ErrorIs(t, b.SetTiers(0), domain.ErrBadTiers)
	assert.ErrorIs(t, b.SetTiers(4), domain.ErrBadTiers)
	require.NoError(t, b.SetTiers(3))
	assert.Equal(t, 3, b.Config().Tiers)
}

func TestDateLeadTime(t *testing.T) {
	b, _, _, _ := newTestBuilder(t)

	// now is fixed at 2026-08-01; lead time is three days
	assert.ErrorIs(t, b.SetDate("2026-08-03"), domain.ErrDateTooSoon)
	assert.ErrorIs(t, b.SetDate("not-a-date"), domain.ErrDateTooSoon)
	require.NoError(t, b.SetDate("2026-08-04"))
	require.NoError(t, b.SetDate(""))
}

func TestCommentLength(t *testing.T) {
	b, _, _, _ := newTestBuilder(t)

	long := make([]rune, domain.MaxCommentRunes+1)
	for i := range long {
		long[i] = 'x'
	}
	assert.ErrorIs(t, b.SetComment(string(long)), domain.ErrCommentTooLong)
	require.NoError(t, b.SetComment(string(long[:domain.MaxCommentRunes])))
}

func TestSubmitOnlyFromLastStep(t *testing.T) {
	b, _, _, _ := newTestBuilder(t)

	_, err := b.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotLastStep)
}

func TestSubmitAddsPricedItemAndResets(t *testing.T) {
	b, cart, gw, orders := newTestBuilder(t)
	fill(t, b)
	require.NoError(t, b.SetComment("no sugar flowers please"))

	want := b.Price(context.Background())
	item, err := b.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Custom Cake", item.Name)
	assert.Equal(t, want, item.UnitPrice)
	assert.Equal(t, "custom", item.Category)
	require.NotNil(t, item.CakeConfig)
	assert.Equal(t, "no sugar flowers please", item.CakeConfig.Comment)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, want, cart.TotalPrice())

	require.Len(t, gw.submitted, 1)
	assert.Equal(t, want, gw.submitted[0].TotalPrice)
	require.Len(t, orders.orders, 1)

	// the builder is back at the beginning with a clean slate
	assert.Equal(t, StepEvent, b.Step())
	assert.Empty(t, b.Config().Event)
	assert.Empty(t, b.Config().Fillings)
	assert.Equal(t, 1, b.Config().Tiers)
}

func TestSubmitGatewayFailureLeavesCartAlone(t *testing.T) {
	b, cart, gw, _ := newTestBuilder(t)
	fill(t, b)
	gw.err = errors.New("bakery unreachable")

	_, err := b.Submit(context.Background())
	require.Error(t, err)
	assert.Empty(t, cart.Items())
	// configuration is kept so the customer can retry
	assert.Equal(t, StepComment, b.Step())
	assert.Equal(t, "Cake", b.Config().Type)
}

func TestTwoSubmissionsNeverMerge(t *testing.T) {
	b, cart, _, _ := newTestBuilder(t)

	for i := 0; i < 2; i++ {
		fill(t, b)
		_, err := b.Submit(context.Background())
		require.NoError(t, err)
	}

	items := cart.Items()
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}
