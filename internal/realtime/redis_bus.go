package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/bookswipe/bookswipe-server/internal/pkg/logger"
)

type redisBus struct {
	rdb     *redis.Client
	channel string
	log     *logger.Logger
}

// NewRedisBus wraps a redis client as the chat event bus, broadcasting
// on a single pub/sub channel.
func NewRedisBus(rdb *redis.Client, channel string, log *logger.Logger) Bus {
	return &redisBus{
		rdb:     rdb,
		channel: channel,
		log:     log.With("component", "redis_bus"),
	}
}

func (b *redisBus) Publish(ctx context.Context, ev Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (b *redisBus) Subscribe(ctx context.Context, onEvent func(Event)) (<-chan struct{}, error) {
	sub := b.rdb.Subscribe(ctx, b.channel)

	// Receive blocks until redis acknowledges the subscription, so a
	// nil return really means "subscribed".
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					// go-redis closes the channel when the subscription
					// cannot be kept alive; closing done tells the
					// consumer to fall back.
					b.log.Warn("subscription channel closed")
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
					b.log.Warn("dropping malformed bus payload", "error", err)
					continue
				}
				onEvent(ev)
			}
		}
	}()

	return done, nil
}

// Close is a no-op: the redis client is owned by the container, and
// subscriptions shut down with their contexts.
func (b *redisBus) Close() error {
	return nil
}
