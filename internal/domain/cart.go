package domain

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrNotFound = errors.New("not found")

// CartStorageKey is the single key the whole cart lives under. Other
// components never touch the store directly, only through CartStore.
const CartStorageKey = "cart"

// LineItem is one priced, quantified entry of the cart. ID is generated at
// add time and never reused; ProductID is zero for fully custom items.
type LineItem struct {
	ID          string      `json:"id"`
	ProductID   int64       `json:"productId,omitempty"`
	Name        string      `json:"name"`
	UnitPrice   int         `json:"price"`
	Quantity    int         `json:"quantity"`
	Image       string      `json:"image,omitempty"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	CakeConfig  *CakeConfig `json:"customCakeConfig,omitempty"`
}

// Cart is the whole persisted collection. Insertion order matters for
// display only; identity is carried by the items themselves.
type Cart []LineItem

func (c Cart) TotalItems() int {
	sum := 0
	for _, it := range c {
		sum += it.Quantity
	}
	return sum
}

func (c Cart) TotalPrice() int {
	total := 0
	for _, it := range c {
		total += it.UnitPrice * it.Quantity
	}
	return total
}

// Clone returns a deep-enough copy for handing to subscribers: the slice is
// copied, item values with it. CakeConfig pointers are shared and treated as
// immutable once an item is in the cart.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// ParseCart decodes a serialized cart. Anything that is not a well formed
// line-item array is an error; callers decide whether to fail soft.
func ParseCart(data []byte) (Cart, error) {
	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// CartStore persists the serialized cart under CartStorageKey.
//
// Load never fails on corrupt data: a value that does not parse as a line
// item array is discarded, the key cleared, and an empty cart returned.
// Save overwrites the whole value; readers in the same context never observe
// a partial write.
type CartStore interface {
	Load(ctx context.Context) (Cart, error)
	Save(ctx context.Context, cart Cart) error
	Clear(ctx context.Context) error
}

// CartEvent mirrors a storage change notification. NewValue nil is the
// cleared sentinel.
type CartEvent struct {
	Key      string `json:"key"`
	NewValue []byte `json:"newValue,omitempty"`
}

// CartNotifier broadcasts change events to every context observing the same
// key, including the publishing one. Delivery order is whatever the
// underlying transport gives; the last event wins.
type CartNotifier interface {
	Publish(ctx context.Context, ev CartEvent) error
	Subscribe(ctx context.Context, handler func(CartEvent)) error
	Close() error
}
