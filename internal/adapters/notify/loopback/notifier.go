package loopback

import (
	"context"
	"sync"

	"github.com/uezdny/konditer/internal/domain"
)

// Notifier delivers cart events synchronously inside one process. It backs
// single-node deployments without Redis and keeps tests hermetic.
type Notifier struct {
	mu       sync.Mutex
	handlers []func(domain.CartEvent)
}

func New() *Notifier { return &Notifier{} }

func (n *Notifier) Publish(ctx context.Context, ev domain.CartEvent) error {
	n.mu.Lock()
	handlers := make([]func(domain.CartEvent), len(n.handlers))
	copy(handlers, n.handlers)
	n.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
	return nil
}

func (n *Notifier) Subscribe(ctx context.Context, handler func(domain.CartEvent)) error {
	n.mu.Lock()
	n.handlers = append(n.handlers, handler)
	n.mu.Unlock()
	return nil
}

func (n *Notifier) Close() error { return nil }
