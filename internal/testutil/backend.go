package testutil

import (
	"context"
	"sync"

	"github.com/dtroode/rostersync/internal/model"
)

// MemoryBackend is an in-memory model.SnapshotBackend for tests.
type MemoryBackend struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	SaveErr error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (b *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, ok := b.data[key]
	if !ok {
		return nil, model.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (b *MemoryBackend) Save(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.SaveErr != nil {
		return b.SaveErr
	}
	b.data[key] = append([]byte(nil), data...)
	b.saves++
	return nil
}

// Saves returns how many successful saves happened.
func (b *MemoryBackend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

// Raw returns the stored bytes for key.
func (b *MemoryBackend) Raw(key string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.data[key]...)
}
