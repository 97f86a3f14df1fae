package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobboard/internal/savedset"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPClient is the subset of the shared RabbitMQ client the broadcaster needs
type AMQPClient interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
	Close() error
}

// RabbitMQ broadcasts events through a fanout exchange. Each process consumes
// from its own exclusive queue bound to that exchange.
type RabbitMQ struct {
	client      AMQPClient
	consumerTag string
	logger      *slog.Logger
}

// NewRabbitMQ creates a broadcaster over client. consumerTag names this process on the queue.
func NewRabbitMQ(client AMQPClient, consumerTag string, logger *slog.Logger) *RabbitMQ {
	if logger == nil {
		logger = slog.Default()
	}
	return &RabbitMQ{client: client, consumerTag: consumerTag, logger: logger}
}

// Publish sends e to the exchange, retrying per the client config
func (r *RabbitMQ) Publish(ctx context.Context, e savedset.Event) error {
	body, err := encodeEvent(e)
	if err != nil {
		return err
	}
	return r.client.PublishWithRetry(ctx, body, contentType)
}

// Listen consumes events until ctx is done or the delivery channel closes
func (r *RabbitMQ) Listen(ctx context.Context, fn func(savedset.Event)) error {
	deliveries, err := r.client.Consume(r.consumerTag)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	r.logger.Info("Consuming saved set events",
		slog.String("consumer_tag", r.consumerTag),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}

			e, err := decodeEvent(delivery.Body)
			if err != nil {
				r.logger.Warn("Dropping malformed saved set event",
					slog.String("body", string(delivery.Body)),
					slog.Any("error", err),
				)
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					r.logger.Error("Failed to NACK malformed event",
						slog.Any("error", nackErr),
					)
				}
				continue
			}

			fn(e)

			if ackErr := delivery.Ack(false); ackErr != nil {
				r.logger.Error("Failed to ACK event",
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
					slog.Any("error", ackErr),
				)
			}
		}
	}
}

// Close closes the underlying client
func (r *RabbitMQ) Close() error {
	return r.client.Close()
}
