package domain

import (
	"context"
	"time"
)

// Product is a ready-made catalog item available for quick add. Custom
// builder cakes never reference a Product.
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Type        string    `gorm:"size:20;index" json:"type,omitempty"`
	BasePrice   int       `gorm:"not null" json:"price"`
	Image       string    `gorm:"size:255" json:"image,omitempty"`
	Category    string    `gorm:"size:100;index" json:"category,omitempty"`
	Fillings    []string  `gorm:"type:jsonb;serializer:json" json:"fillings,omitempty"`
	IsAvailable bool      `gorm:"default:true" json:"isAvailable"`
	CreatedAt   time.Time `json:"-"`
}

type ProductRepo interface {
	FindByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, p *Product) error
}
