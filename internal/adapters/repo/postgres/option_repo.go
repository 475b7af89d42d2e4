package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/uezdny/konditer/internal/domain"
)

type OptionRepo struct{ db *gorm.DB }

func NewOptionRepo(db *gorm.DB) *OptionRepo { return &OptionRepo{db: db} }

func (r *OptionRepo) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	var opts []domain.Option
	if err := r.db.WithContext(ctx).Order("category, position, id").Find(&opts).Error; err != nil {
		return nil, err
	}

	cat := &domain.Catalog{}
	for _, o := range opts {
		switch o.Category {
		case domain.CategoryEvents:
			cat.Events = append(cat.Events, o)
		case domain.CategoryTypes:
			cat.Types = append(cat.Types, o)
		case domain.CategoryShapes:
			cat.Shapes = append(cat.Shapes, o)
		case domain.CategoryWeights:
			cat.Weights = append(cat.Weights, o)
		case domain.CategoryFillings:
			cat.Fillings = append(cat.Fillings, o)
		case domain.CategoryDecorations:
			cat.Decorations = append(cat.Decorations, o)
		case domain.CategoryCoatings:
			cat.Coatings = append(cat.Coatings, o)
		}
	}
	return cat, nil
}

func (r *OptionRepo) SaveOptions(ctx context.Context, cat domain.OptionCategory, opts []domain.Option) error {
	if len(opts) == 0 {
		return nil
	}
	for i := range opts {
		opts[i].Category = cat
		opts[i].Position = i
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "name"}},
		UpdateAll: true,
	}).Create(&opts).Error
}

// SeedDefaults loads the built-in catalog into an empty options table.
func (r *OptionRepo) SeedDefaults(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Option{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	def := domain.DefaultCatalog()
	for _, cat := range []domain.OptionCategory{
		domain.CategoryEvents, domain.CategoryTypes, domain.CategoryShapes,
		domain.CategoryWeights, domain.CategoryFillings,
		domain.CategoryDecorations, domain.CategoryCoatings,
	} {
		if err := r.SaveOptions(ctx, cat, def.ByCategory(cat)); err != nil {
			return err
		}
	}
	return nil
}
