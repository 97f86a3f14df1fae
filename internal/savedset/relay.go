package savedset

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// a listener that stayed up this long resets the retry delay
const stableListen = time.Minute

// Broadcaster carries change events between processes sharing the same persisted set
type Broadcaster interface {
	Publish(ctx context.Context, e Event) error
	// Listen blocks, calling fn for each event, until ctx is done or the transport fails
	Listen(ctx context.Context, fn func(Event)) error
	Close() error
}

// Relay republishes events from other processes into the local Hub
type Relay struct {
	broadcaster Broadcaster
	hub         *Hub
	key         string
	origin      string
	logger      *slog.Logger

	backOff func() backoff.BackOff
}

// NewRelay creates a relay from b into hub for the set under key
func NewRelay(b Broadcaster, hub *Hub, key, origin string, logger *slog.Logger) *Relay {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		broadcaster: b,
		hub:         hub,
		key:         key,
		origin:      origin,
		logger:      logger,
		backOff:     newRetryBackOff,
	}
}

func newRetryBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Run listens until ctx is done. Events sent by this process or for another key are dropped.
func (r *Relay) Run(ctx context.Context) error {
	r.logger.Info("Saved set relay started",
		slog.String("key", r.key),
		slog.String("origin", r.origin),
	)

	err := r.broadcaster.Listen(ctx, r.handle)
	if ctx.Err() != nil {
		r.logger.Info("Saved set relay stopped")
		return nil
	}
	return err
}

// Serve keeps the relay listening until ctx is done. A failed listener is
// logged and restarted with exponential backoff. It returns an error only if
// the backoff gives up, which the default policy never does.
func (r *Relay) Serve(ctx context.Context) error {
	retry := r.backOff()

	for {
		started := time.Now()
		err := r.Run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			err = errors.New("listener stopped")
		}
		if time.Since(started) >= stableListen {
			retry.Reset()
		}

		wait := retry.NextBackOff()
		if wait == backoff.Stop {
			return err
		}
		r.logger.Warn("Saved set relay disconnected, retrying",
			slog.Any("error", err),
			slog.Duration("retry_after", wait),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("Saved set relay stopped")
			return nil
		case <-timer.C:
		}
	}
}

func (r *Relay) handle(e Event) {
	if e.Origin == r.origin || e.Key != r.key {
		return
	}
	n := r.hub.Publish(e)
	r.logger.Debug("Relayed saved set change",
		slog.String("origin", e.Origin),
		slog.Int("subscribers", n),
	)
}
