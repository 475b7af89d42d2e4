package usecase

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/uezdny/konditer/internal/domain"
)

// Step names one stage of the cake builder.
type Step string

const (
	StepEvent      Step = "event"
	StepType       Step = "type"
	StepShape      Step = "shape"
	StepWeight     Step = "weight"
	StepFillings   Step = "fillings"
	StepTiers      Step = "tiers"
	StepDecoration Step = "decoration"
	StepCoating    Step = "coating"
	StepColors     Step = "colors"
	StepDate       Step = "date"
	StepSketch     Step = "sketch"
	StepComment    Step = "comment"
)

// Steps is the fixed builder order. Sketch and comment are the only steps a
// customer may skip.
var Steps = []Step{
	StepEvent, StepType, StepShape, StepWeight, StepFillings, StepTiers,
	StepDecoration, StepCoating, StepColors, StepDate, StepSketch, StepComment,
}

var (
	ErrIncompleteStep = errors.New("current step has no selection")
	ErrNotLastStep    = errors.New("submit is available from the last step only")
)

// BuilderUC walks a customer through the configuration steps, keeps every
// invariant true while fields change, and on submit turns the finished
// configuration into a priced cart line.
type BuilderUC struct {
	Catalog *CatalogUC
	Cart    *CartUC
	Gateway domain.OrderGateway
	Orders  domain.OrderRepo

	now func() time.Time

	idx int
	cfg domain.CakeConfig
}

func NewBuilderUC(catalog *CatalogUC, cart *CartUC, gw domain.OrderGateway, orders domain.OrderRepo) *BuilderUC {
	return &BuilderUC{
		Catalog: catalog,
		Cart:    cart,
		Gateway: gw,
		Orders:  orders,
		now:     time.Now,
		cfg:     domain.NewCakeConfig(),
	}
}

func (b *BuilderUC) Step() Step               { return Steps[b.idx] }
func (b *BuilderUC) Config() domain.CakeConfig { return b.cfg }

// Price quotes the configuration as it stands, partial or complete.
func (b *BuilderUC) Price(ctx context.Context) int {
	return Price(b.cfg, b.Catalog.Catalog(ctx))
}

// Next advances one step. Every step except sketch and comment must have a
// selection before the builder moves past it.
func (b *BuilderUC) Next() error {
	if b.idx >= len(Steps)-1 {
		return ErrNotLastStep
	}
	if !b.stepComplete(Steps[b.idx]) {
		return ErrIncompleteStep
	}
	b.idx++
	return nil
}

// Prev moves one step back. At the first step it does nothing.
func (b *BuilderUC) Prev() {
	if b.idx > 0 {
		b.idx--
	}
}

func (b *BuilderUC) stepComplete(s Step) bool {
	switch s {
	case StepEvent:
		return b.cfg.Event != ""
	case StepType:
		return b.cfg.Type != ""
	case StepShape:
		return b.cfg.Shape != ""
	case StepWeight:
		return b.cfg.Weight != ""
	case StepFillings:
		return len(b.cfg.Fillings) > 0
	case StepTiers:
		return b.cfg.Tiers >= 1
	case StepDecoration:
		return b.cfg.Decoration != ""
	case StepCoating:
		return b.cfg.Coating != ""
	case StepColors:
		return len(b.cfg.Colors) > 0
	case StepDate:
		return b.cfg.Date != ""
	case StepSketch, StepComment:
		return true
	}
	return true
}

func (b *BuilderUC) SetEvent(v string)      { b.cfg.Event = v }
func (b *BuilderUC) SetType(v string)       { b.cfg.Type = v }
func (b *BuilderUC) SetShape(v string)      { b.cfg.Shape = v }
func (b *BuilderUC) SetWeight(v string)     { b.cfg.Weight = v }
func (b *BuilderUC) SetDecoration(v string) { b.cfg.Decoration = v }
func (b *BuilderUC) SetCoating(v string)    { b.cfg.Coating = v }

// ToggleFilling adds or removes one filling. A fourth selection is refused
// outright so the cap holds at the point of selection, never later.
func (b *BuilderUC) ToggleFilling(name string) error {
	for i, f := range b.cfg.Fillings {
		if f == name {
			b.cfg.Fillings = append(b.cfg.Fillings[:i], b.cfg.Fillings[i+1:]...)
			return nil
		}
	}
	if len(b.cfg.Fillings) >= domain.MaxFillings {
		return domain.ErrTooManyFillings
	}
	b.cfg.Fillings = append(b.cfg.Fillings, name)
	return nil
}

// ToggleColor adds or removes one color, refusing a third selection.
func (b *BuilderUC) ToggleColor(color string) error {
	for i, c := range b.cfg.Colors {
		if c == color {
			b.cfg.Colors = append(b.cfg.Colors[:i], b.cfg.Colors[i+1:]...)
			return nil
		}
	}
	if len(b.cfg.Colors) >= domain.MaxColors {
		return domain.ErrTooManyColors
	}
	b.cfg.Colors = append(b.cfg.Colors, color)
	return nil
}

func (b *BuilderUC) SetTiers(n int) error {
	if n < 1 || n > domain.MaxTiers {
		return domain.ErrBadTiers
	}
	b.cfg.Tiers = n
	return nil
}

// SetDate accepts an empty string or a date at least the lead time ahead.
func (b *BuilderUC) SetDate(date string) error {
	if !domain.ValidEventDate(date, b.now()) {
		return domain.ErrDateTooSoon
	}
	b.cfg.Date = date
	return nil
}

func (b *BuilderUC) SetSketch(s *domain.Sketch) { b.cfg.Sketch = s }

func (b *BuilderUC) SetComment(comment string) error {
	if utf8.RuneCountInString(comment) > domain.MaxCommentRunes {
		return domain.ErrCommentTooLong
	}
	b.cfg.Comment = comment
	return nil
}

// Submit finalizes the configuration: the order is transmitted to the
// bakery, recorded, and the priced line handed to the cart. The builder
// then resets to an empty configuration on the first step. Only the
// transmission step may fail in a way the customer sees.
func (b *BuilderUC) Submit(ctx context.Context) (*domain.LineItem, error) {
	if Steps[b.idx] != StepComment {
		return nil, ErrNotLastStep
	}

	cfg := b.cfg
	total := Price(cfg, b.Catalog.Catalog(ctx))

	order := &domain.CustomOrder{
		ID:         uuid.New(),
		Status:     domain.OrderStatusNew,
		Config:     cfg,
		TotalPrice: total,
		Source:     "website",
	}

	sketchURL, err := b.Gateway.Submit(ctx, order)
	if err != nil {
		return nil, err
	}
	order.SketchURL = sketchURL

	if b.Orders != nil {
		if err := b.Orders.Save(ctx, order); err != nil {
			log.Error().Err(err).Str("order", order.ID.String()).Msg("record custom order failed")
		}
	}

	name := "Custom cake"
	if cfg.Type != "" {
		name = "Custom " + cfg.Type
	}
	image := sketchURL
	if image == "" {
		image = "/images/custom-cake.jpg"
	}
	description := cfg.Comment
	if description == "" {
		description = "Custom cake assembled in the builder"
	}

	item := domain.LineItem{
		ID:          uuid.NewString(),
		Name:        name,
		UnitPrice:   total,
		Image:       image,
		Description: description,
		Category:    "custom",
		CakeConfig:  &cfg,
	}
	if err := b.Cart.AddItem(ctx, item); err != nil {
		return nil, err
	}

	b.cfg = domain.NewCakeConfig()
	b.idx = 0
	return &item, nil
}
