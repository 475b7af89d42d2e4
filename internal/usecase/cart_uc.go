package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/uezdny/konditer/internal/domain"
)

// CartUC owns the canonical in-memory cart for this context. Every mutation
// persists the whole cart first and notifies afterwards, so no observer ever
// sees a notification for state that is not durable yet.
//
// Other contexts holding their own CartUC converge through the notifier:
// last write wins, concurrent edits from two contexts are not merged.
type CartUC struct {
	store    domain.CartStore
	notifier domain.CartNotifier

	mu    sync.Mutex
	items domain.Cart

	subMu   sync.Mutex
	subs    map[int]func(domain.Cart)
	nextSub int
}

func NewCartUC(store domain.CartStore, notifier domain.CartNotifier) *CartUC {
	return &CartUC{
		store:    store,
		notifier: notifier,
		items:    domain.Cart{},
		subs:     map[int]func(domain.Cart){},
	}
}

// Start loads the persisted cart and begins observing change events from
// every context, this one included.
func (uc *CartUC) Start(ctx context.Context) error {
	cart, err := uc.store.Load(ctx)
	if err != nil {
		return err
	}
	uc.mu.Lock()
	uc.items = cart
	uc.mu.Unlock()

	return uc.notifier.Subscribe(ctx, uc.HandleChange)
}

// Items returns a snapshot of the current line items.
func (uc *CartUC) Items() domain.Cart {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.items.Clone()
}

func (uc *CartUC) TotalItems() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.items.TotalItems()
}

func (uc *CartUC) TotalPrice() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.items.TotalPrice()
}

// AddItem appends item with quantity 1, or bumps the quantity of the line
// already holding the same catalog product. Custom-configured items always
// get a fresh line: two identical cakes are never silently combined.
func (uc *CartUC) AddItem(ctx context.Context, item domain.LineItem) error {
	return uc.mutate(ctx, func(cart domain.Cart) (domain.Cart, bool) {
		if item.ProductID != 0 && item.CakeConfig == nil {
			for i := range cart {
				if cart[i].ProductID == item.ProductID && cart[i].CakeConfig == nil {
					cart[i].Quantity++
					return cart, true
				}
			}
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.Quantity = 1
		return append(cart, item), true
	})
}

// RemoveItem deletes the line with the given id. Unknown ids are a no-op.
func (uc *CartUC) RemoveItem(ctx context.Context, id string) error {
	return uc.mutate(ctx, func(cart domain.Cart) (domain.Cart, bool) {
		for i := range cart {
			if cart[i].ID == id {
				return append(cart[:i], cart[i+1:]...), true
			}
		}
		return cart, false
	})
}

// SetQuantity sets the quantity of the line with the given id. Anything at
// or below zero removes the line; unknown ids are a no-op.
func (uc *CartUC) SetQuantity(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return uc.RemoveItem(ctx, id)
	}
	return uc.mutate(ctx, func(cart domain.Cart) (domain.Cart, bool) {
		for i := range cart {
			if cart[i].ID == id {
				cart[i].Quantity = quantity
				return cart, true
			}
		}
		return cart, false
	})
}

// Clear empties the cart and broadcasts the cleared sentinel.
func (uc *CartUC) Clear(ctx context.Context) error {
	uc.mu.Lock()
	uc.items = domain.Cart{}
	uc.mu.Unlock()

	if err := uc.store.Clear(ctx); err != nil {
		return err
	}
	uc.fanout(domain.Cart{})
	if err := uc.notifier.Publish(ctx, domain.CartEvent{Key: domain.CartStorageKey}); err != nil {
		log.Error().Err(err).Msg("cart clear notify failed")
	}
	return nil
}

// Subscribe registers fn to run with a cart snapshot after every applied
// change, local or remote. The returned func unsubscribes.
func (uc *CartUC) Subscribe(fn func(domain.Cart)) func() {
	uc.subMu.Lock()
	id := uc.nextSub
	uc.nextSub++
	uc.subs[id] = fn
	uc.subMu.Unlock()
	return func() {
		uc.subMu.Lock()
		delete(uc.subs, id)
		uc.subMu.Unlock()
	}
}

// HandleChange applies one change event. Events for other keys are ignored.
// A nil NewValue resets to empty; a payload that parses as a line-item array
// replaces the local contents wholesale; malformed payloads are dropped.
// Events are applied in arrival order, the last one wins.
func (uc *CartUC) HandleChange(ev domain.CartEvent) {
	if ev.Key != domain.CartStorageKey {
		return
	}

	var next domain.Cart
	if ev.NewValue == nil {
		next = domain.Cart{}
	} else {
		cart, err := domain.ParseCart(ev.NewValue)
		if err != nil {
			log.Warn().Err(err).Msg("ignoring malformed cart event")
			return
		}
		next = cart
	}

	uc.mu.Lock()
	uc.items = next
	uc.mu.Unlock()
	uc.fanout(next.Clone())
}

func (uc *CartUC) mutate(ctx context.Context, fn func(domain.Cart) (domain.Cart, bool)) error {
	uc.mu.Lock()
	next, changed := fn(uc.items)
	if !changed {
		uc.mu.Unlock()
		return nil
	}
	uc.items = next
	snapshot := next.Clone()
	uc.mu.Unlock()

	if err := uc.store.Save(ctx, snapshot); err != nil {
		return err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	uc.fanout(snapshot)
	if err := uc.notifier.Publish(ctx, domain.CartEvent{Key: domain.CartStorageKey, NewValue: data}); err != nil {
		log.Error().Err(err).Msg("cart change notify failed")
	}
	return nil
}

func (uc *CartUC) fanout(snapshot domain.Cart) {
	uc.subMu.Lock()
	fns := make([]func(domain.Cart), 0, len(uc.subs))
	for _, fn := range uc.subs {
		fns = append(fns, fn)
	}
	uc.subMu.Unlock()
	for _, fn := range fns {
		fn(snapshot)
	}
}
