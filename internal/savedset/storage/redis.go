package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/cuongbtq/jobboard/internal/savedset"
	"github.com/redis/go-redis/v9"
)

// Redis stores the saved set as a JSON array under a plain string key
type Redis struct {
	client redis.Cmdable
	key    string
}

// NewRedis creates a repository for the set stored under key
func NewRedis(client redis.Cmdable, key string) *Redis {
	if key == "" {
		key = savedset.DefaultKey
	}
	return &Redis{client: client, key: key}
}

// Load reads the stored set. A missing key is ErrNotFound.
func (r *Redis) Load(ctx context.Context) ([]string, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, savedset.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get saved set: %w", err)
	}

	return savedset.Decode(data)
}

// Save overwrites the key without expiry
func (r *Redis) Save(ctx context.Context, ids []string) error {
	data, err := savedset.Encode(ids)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set saved set: %w", err)
	}
	return nil
}
