package redispub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/uezdny/konditer/internal/domain"
)

const defaultChannel = "konditer:cart"

// Notifier broadcasts cart change events over a Redis pub/sub channel.
// Redis delivers a published message back to the publisher's own
// subscription as well, so local and remote changes reach the handler
// through one path, in arrival order.
type Notifier struct {
	client  *redis.Client
	channel string
	pubsub  *redis.PubSub
}

func New(client *redis.Client) *Notifier {
	return &Notifier{client: client, channel: defaultChannel}
}

func (n *Notifier) Publish(ctx context.Context, ev domain.CartEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal cart event: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

// Subscribe starts a goroutine feeding every event on the channel to
// handler. Payloads that do not decode are dropped.
func (n *Notifier) Subscribe(ctx context.Context, handler func(domain.CartEvent)) error {
	n.pubsub = n.client.Subscribe(ctx, n.channel)
	if _, err := n.pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe failed: %w", err)
	}

	ch := n.pubsub.Channel()
	go func() {
		for msg := range ch {
			var ev domain.CartEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Warn().Err(err).Msg("dropping undecodable cart event")
				continue
			}
			handler(ev)
		}
	}()
	return nil
}

func (n *Notifier) Close() error {
	if n.pubsub != nil {
		return n.pubsub.Close()
	}
	return nil
}
