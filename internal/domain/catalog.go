package domain

import "context"

// OptionCategory names one of the priced option lists the builder offers.
type OptionCategory string

const (
	CategoryEvents      OptionCategory = "events"
	CategoryTypes       OptionCategory = "types"
	CategoryShapes      OptionCategory = "shapes"
	CategoryWeights     OptionCategory = "weights"
	CategoryFillings    OptionCategory = "fillings"
	CategoryDecorations OptionCategory = "decorations"
	CategoryCoatings    OptionCategory = "coatings"
)

// Option is a single entry of a priced option list. Price is in minor units
// with no fractional part (whole rubles in the original shop).
type Option struct {
	ID          uint           `gorm:"primaryKey" json:"-"`
	Category    OptionCategory `gorm:"size:20;index:idx_options_category_name,unique" json:"-"`
	Name        string         `gorm:"size:140;index:idx_options_category_name,unique" json:"name"`
	Label       string         `gorm:"size:140" json:"label,omitempty"`
	Icon        string         `gorm:"size:16" json:"icon,omitempty"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Portions    string         `gorm:"size:40" json:"portions,omitempty"`
	Price       int            `gorm:"default:0" json:"price,omitempty"`
	Position    int            `gorm:"default:0" json:"-"`
}

// Catalog holds every option list the builder and the pricing engine consume.
// It is read-only input for the core: nothing here is ever mutated after load.
type Catalog struct {
	Events      []Option `json:"events"`
	Types       []Option `json:"types"`
	Shapes      []Option `json:"shapes"`
	Weights     []Option `json:"weights"`
	Fillings    []Option `json:"fillings"`
	Decorations []Option `json:"decorations"`
	Coatings    []Option `json:"coatings"`
}

// Find returns the option with the given name, or nil. An empty name never
// matches, so unset config fields price at their fallbacks.
func Find(opts []Option, name string) *Option {
	if name == "" {
		return nil
	}
	for i := range opts {
		if opts[i].Name == name {
			return &opts[i]
		}
	}
	return nil
}

func (c Catalog) ByCategory(cat OptionCategory) []Option {
	switch cat {
	case CategoryEvents:
		return c.Events
	case CategoryTypes:
		return c.Types
	case CategoryShapes:
		return c.Shapes
	case CategoryWeights:
		return c.Weights
	case CategoryFillings:
		return c.Fillings
	case CategoryDecorations:
		return c.Decorations
	case CategoryCoatings:
		return c.Coatings
	}
	return nil
}

type OptionRepo interface {
	LoadCatalog(ctx context.Context) (*Catalog, error)
	SaveOptions(ctx context.Context, cat OptionCategory, opts []Option) error
}

// BuilderColors is the palette offered on the colors step.
var BuilderColors = []string{
	"#FF69B4", "#FF1493", "#FF6347", "#FF4500", "#FFD700", "#FFA500",
	"#ADFF2F", "#32CD32", "#00FF7F", "#00CED1", "#1E90FF", "#4169E1",
	"#8A2BE2", "#9370DB", "#FFB6C1", "#F5DEB3", "#FFFFFF", "#000000",
}

// DefaultCatalog is the built-in option set used whenever the catalog source
// is unavailable or still loading. Prices mirror the shop's standing offer.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Events: []Option{
			{Name: "Birthday"},
			{Name: "Wedding"},
			{Name: "Anniversary"},
			{Name: "Corporate"},
			{Name: "Women's Day"},
			{Name: "Kids party"},
		},
		Types: []Option{
			{Name: "Cake", Icon: "🎂", Price: 1000},
			{Name: "Bento cake", Icon: "🍱", Price: 500},
			{Name: "Cupcakes", Icon: "🧁", Price: 100},
			{Name: "Macaron", Icon: "🍪", Price: 50},
			{Name: "Pastry", Icon: "🍰", Price: 300},
			{Name: "Muffin", Icon: "🥮", Price: 200},
		},
		Shapes: []Option{
			{Name: "Round", Icon: "⭕"},
			{Name: "Square", Icon: "⬜"},
			{Name: "Heart", Icon: "❤️"},
			{Name: "Rectangle", Icon: "▭"},
			{Name: "Diamond", Icon: "💎"},
			{Name: "Star", Icon: "⭐"},
			{Name: "Oval", Icon: "🥚"},
			{Name: "Freeform", Icon: "✏️"},
		},
		Weights: []Option{
			{Name: "0.5 kg", Portions: "4 portions", Price: 0},
			{Name: "1 kg", Portions: "8 portions", Price: 0},
			{Name: "1.5 kg", Portions: "12 portions", Price: 500},
			{Name: "2 kg", Portions: "16 portions", Price: 1000},
			{Name: "2.5 kg", Portions: "20 portions", Price: 1500},
			{Name: "3 kg", Portions: "24 portions", Price: 2000},
		},
		Fillings: []Option{
			{Name: "Chocolate with peanut and caramel", Price: 100},
			{Name: "Cottage cheese and berries", Price: 100},
			{Name: "Vanilla with fruit", Price: 100},
			{Name: "Nut and honey", Price: 100},
			{Name: "Crème brûlée", Price: 100},
			{Name: "Raspberry and poppy seed", Price: 100},
			{Name: "Coffee and chocolate", Price: 100},
			{Name: "Lemon and raspberry", Price: 100},
			{Name: "Banana and caramel", Price: 100},
			{Name: "Strawberry and cream", Price: 100},
			{Name: "Orange and chocolate", Price: 100},
			{Name: "Pistachio and raspberry", Price: 100},
		},
		Decorations: []Option{
			{Name: "flowers", Label: "Flowers", Icon: "🌸", Price: 300},
			{Name: "fruits", Label: "Fruits", Icon: "🍓", Price: 200},
			{Name: "chocolate", Label: "Chocolate", Icon: "🍫", Price: 250},
			{Name: "berries", Label: "Berries", Icon: "🫐", Price: 150},
			{Name: "nuts", Label: "Nuts", Icon: "🥜", Price: 100},
			{Name: "confetti", Label: "Confetti", Icon: "🎉", Price: 50},
			{Name: "inscription", Label: "Inscription", Icon: "✍️", Price: 200},
			{Name: "figurines", Label: "Figurines", Icon: "🧸", Price: 400},
		},
		Coatings: []Option{
			{Name: "cream", Label: "Cream", Description: "Classic butter cream", Price: 0},
			{Name: "marzipan", Label: "Fondant", Description: "Smooth coat for crisp shapes", Price: 200},
			{Name: "glaze", Label: "Glaze", Description: "Glossy mirror coat", Price: 150},
			{Name: "chocolate", Label: "Chocolate", Description: "Ganache or tempered chocolate", Price: 300},
			{Name: "meringue", Label: "Meringue", Description: "Airy Italian meringue", Price: 100},
		},
	}
}
