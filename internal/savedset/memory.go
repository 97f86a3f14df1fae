package savedset

import (
	"context"
	"sync"
)

// MemoryRepository keeps the serialised set in process memory
type MemoryRepository struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Load decodes the stored value. Nothing stored yet is ErrNotFound.
func (r *MemoryRepository) Load(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.raw == nil {
		return nil, ErrNotFound
	}
	return Decode(r.raw)
}

// Save replaces the stored value
func (r *MemoryRepository) Save(_ context.Context, ids []string) error {
	data, err := Encode(ids)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.raw = data
	r.mu.Unlock()
	return nil
}

// SetRaw replaces the stored value verbatim, bypassing encoding
func (r *MemoryRepository) SetRaw(raw []byte) {
	r.mu.Lock()
	r.raw = raw
	r.mu.Unlock()
}

// Raw returns the stored value verbatim
func (r *MemoryRepository) Raw() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.raw
}
