package savedset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StoreConfig wires a Store to its repository and notification channels
type StoreConfig struct {
	Repository  Repository
	Key         string
	Hub         *Hub
	Broadcaster Broadcaster
	// Origin identifies this process on the broadcaster. Generated when empty.
	Origin string
	Logger *slog.Logger
}

// Store is the single entry point for reading and mutating the saved set.
// Every successful mutation is persisted before the change event goes out.
type Store struct {
	repo        Repository
	key         string
	hub         *Hub
	broadcaster Broadcaster
	origin      string
	logger      *slog.Logger

	// serialises read-modify-write within this process; never held while notifying
	mu  sync.Mutex
	now func() time.Time
}

// NewStore creates a Store. Unset fields fall back to an in-memory repository,
// DefaultKey, a fresh Hub and a generated origin.
func NewStore(cfg *StoreConfig) *Store {
	s := &Store{
		repo:        cfg.Repository,
		key:         cfg.Key,
		hub:         cfg.Hub,
		broadcaster: cfg.Broadcaster,
		origin:      cfg.Origin,
		logger:      cfg.Logger,
		now:         time.Now,
	}
	if s.repo == nil {
		s.repo = NewMemoryRepository()
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.hub == nil {
		s.hub = NewHub()
	}
	if s.origin == "" {
		s.origin = uuid.NewString()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Key returns the name the set is persisted under
func (s *Store) Key() string { return s.key }

// Origin returns the id this process stamps on its change events
func (s *Store) Origin() string { return s.origin }

// Hub returns the in-process hub change events are published to
func (s *Store) Hub() *Hub { return s.hub }

// Subscribe is shorthand for Hub().Subscribe
func (s *Store) Subscribe(buffer int) *Subscription {
	return s.hub.Subscribe(buffer)
}

// Load returns the saved ids. Missing, corrupt or unreadable data yields an empty set.
func (s *Store) Load(ctx context.Context) []string {
	ids, err := s.repo.Load(ctx)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
		case errors.Is(err, ErrCorrupt):
			s.logger.Warn("Saved set is corrupt, treating as empty",
				slog.String("key", s.key),
				slog.Any("error", err),
			)
		default:
			s.logger.Error("Failed to load saved set, treating as empty",
				slog.String("key", s.key),
				slog.Any("error", err),
			)
		}
		return []string{}
	}
	return ids
}

// Save replaces the whole set
func (s *Store) Save(ctx context.Context, ids []string) error {
	s.mu.Lock()
	err := s.persist(ctx, Normalize(ids))
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify(ctx)
	return nil
}

// Add bookmarks id. Adding an id already present still emits a change event.
func (s *Store) Add(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}

	count, err := s.mutate(ctx, func(ids []string) []string {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
		return ids
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Job saved", slog.String("job_id", id), slog.Int("count", count))
	s.notify(ctx)
	return nil
}

// Remove drops id. Removing an absent id still emits a change event.
func (s *Store) Remove(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}

	count, err := s.mutate(ctx, func(ids []string) []string {
		return slices.DeleteFunc(ids, func(v string) bool { return v == id })
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Job unsaved", slog.String("job_id", id), slog.Int("count", count))
	s.notify(ctx)
	return nil
}

// Clear empties the set
func (s *Store) Clear(ctx context.Context) error {
	return s.Save(ctx, nil)
}

// Contains reports whether id is saved
func (s *Store) Contains(ctx context.Context, id string) bool {
	return slices.Contains(s.Load(ctx), id)
}

// Count returns the number of saved ids
func (s *Store) Count(ctx context.Context) int {
	return len(s.Load(ctx))
}

// mutate runs a read-modify-write under the lock and returns the new size.
// Callers notify after it returns.
func (s *Store) mutate(ctx context.Context, fn func([]string) []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.current(ctx)
	if err != nil {
		return 0, err
	}
	ids = fn(ids)
	if err := s.persist(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// current reads the set for a mutation. Missing or corrupt data starts from empty,
// any other read failure aborts so the stored value is not overwritten blindly.
func (s *Store) current(ctx context.Context) ([]string, error) {
	ids, err := s.repo.Load(ctx)
	if err == nil {
		return ids, nil
	}
	if errors.Is(err, ErrNotFound) {
		return []string{}, nil
	}
	if errors.Is(err, ErrCorrupt) {
		s.logger.Warn("Overwriting corrupt saved set",
			slog.String("key", s.key),
			slog.Any("error", err),
		)
		return []string{}, nil
	}
	return nil, fmt.Errorf("failed to load saved set: %w", err)
}

func (s *Store) persist(ctx context.Context, ids []string) error {
	if err := s.repo.Save(ctx, ids); err != nil {
		return fmt.Errorf("failed to save saved set: %w", err)
	}
	return nil
}

// notify signals local subscribers, then other processes. A broadcast failure
// is logged only: the write has already landed.
func (s *Store) notify(ctx context.Context) {
	e := Event{Key: s.key, Origin: s.origin, At: s.now().UTC()}
	s.hub.Publish(e)

	if s.broadcaster == nil {
		return
	}
	if err := s.broadcaster.Publish(ctx, e); err != nil {
		s.logger.Warn("Failed to broadcast saved set change",
			slog.String("key", s.key),
			slog.Any("error", err),
		)
	}
}
