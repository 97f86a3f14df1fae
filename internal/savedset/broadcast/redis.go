package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobboard/internal/savedset"
	"github.com/redis/go-redis/v9"
)

// Redis broadcasts events over a Redis pub/sub channel
type Redis struct {
	client  redis.UniversalClient
	channel string
	logger  *slog.Logger
}

// NewRedis creates a pub/sub broadcaster on channel, DefaultChannel when empty
func NewRedis(client redis.UniversalClient, channel string, logger *slog.Logger) *Redis {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{client: client, channel: channel, logger: logger}
}

// Publish sends e to the channel
func (r *Redis) Publish(ctx context.Context, e savedset.Event) error {
	body, err := encodeEvent(e)
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, r.channel, body).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Listen subscribes to the channel and calls fn per event until ctx is done
func (r *Redis) Listen(ctx context.Context, fn func(savedset.Event)) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	// wait for the subscription confirmation so no publish after this point is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	r.logger.Info("Subscribed to saved set events",
		slog.String("channel", r.channel),
	)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				return errors.New("redis subscription closed")
			}

			e, err := decodeEvent([]byte(msg.Payload))
			if err != nil {
				r.logger.Warn("Dropping malformed saved set event",
					slog.String("payload", msg.Payload),
					slog.Any("error", err),
				)
				continue
			}
			fn(e)
		}
	}
}

// Close is a no-op; the Redis client is owned by the caller
func (r *Redis) Close() error {
	return nil
}
