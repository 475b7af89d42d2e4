package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusBaking     OrderStatus = "baking"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// CustomOrder is the payload handed to the order-submission collaborator
// when a builder configuration is finalized, and the record kept locally
// for the admin export.
type CustomOrder struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Status     OrderStatus `gorm:"type:varchar(20);index;default:new" json:"status"`
	Config     CakeConfig  `gorm:"type:jsonb;serializer:json" json:"config"`
	TotalPrice int         `gorm:"not null" json:"totalPrice"`
	SketchURL  string      `gorm:"size:255" json:"sketchUrl,omitempty"`
	Source     string      `gorm:"size:20;default:website" json:"source"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// OrderGateway transmits a finalized order to the bakery. Submit returns
// the stored sketch URL when an attachment was uploaded. Transmission
// failures are the only user-visible errors in the whole flow.
type OrderGateway interface {
	Submit(ctx context.Context, order *CustomOrder) (sketchURL string, err error)
}

type OrderRepo interface {
	Save(ctx context.Context, order *CustomOrder) error
	List(ctx context.Context, limit int) ([]CustomOrder, error)
}
