package usecase

import (
	"context"
	"errors"

	"github.com/uezdny/konditer/internal/domain"
)

type ProductUC struct {
	Products domain.ProductRepo
}

func (uc *ProductUC) List(ctx context.Context) ([]domain.Product, error) {
	if uc.Products == nil {
		return []domain.Product{}, nil
	}
	return uc.Products.List(ctx)
}

func (uc *ProductUC) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if id == 0 {
		return nil, errors.New("empty product id")
	}
	if uc.Products == nil {
		return nil, domain.ErrNotFound
	}
	return uc.Products.FindByID(ctx, id)
}

// QuickAdd puts one unit of a catalog product into the cart. Repeated adds
// of the same product merge into a single line.
func (uc *ProductUC) QuickAdd(ctx context.Context, cart *CartUC, id int64) (*domain.Product, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item := domain.LineItem{
		ProductID:   p.ID,
		Name:        p.Name,
		UnitPrice:   p.BasePrice,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
	}
	if err := cart.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return p, nil
}
