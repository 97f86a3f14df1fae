// Package savedset keeps the persisted set of bookmarked job ids and tells
// every live view when it changes.
package savedset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DefaultKey is the storage key the saved set lives under
const DefaultKey = "savedJobs"

// ChangeEvent is the name of the change signal
const ChangeEvent = "savedJobsChanged"

var (
	// ErrNotFound is returned by a Repository when nothing has been stored yet
	ErrNotFound = errors.New("saved set not found")

	// ErrCorrupt is returned by a Repository when the stored value cannot be decoded
	ErrCorrupt = errors.New("saved set data is corrupt")

	// ErrEmptyID is returned when adding or removing a blank id
	ErrEmptyID = errors.New("job id is required")
)

// Repository persists the saved set under one fixed key
type Repository interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
}

// Event is a change signal. Consumers re-read the set; the fields only identify the sender.
type Event struct {
	Key    string    `json:"key"`
	Origin string    `json:"origin"`
	At     time.Time `json:"at"`
}

// Encode serialises ids as a JSON array of strings
func Encode(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to encode saved set: %w", err)
	}
	return data, nil
}

// Decode parses a stored value. Anything other than a JSON array of strings is ErrCorrupt.
func Decode(raw []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return Normalize(ids), nil
}

// Normalize drops blank and repeated ids, keeping first-seen order
func Normalize(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
