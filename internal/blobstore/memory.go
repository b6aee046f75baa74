package blobstore

import (
	"context"
	"slices"
	"sync"
)

// Memory keeps blobs in process memory. It is the default backend for local
// development and tests; state does not survive a restart.
type Memory struct {
	mu    sync.RWMutex
	blobs map[memoryKey][]byte
}

type memoryKey struct {
	scope string
	name  string
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[memoryKey][]byte)}
}

func (m *Memory) Get(ctx context.Context, scope, name string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.blobs[memoryKey{scope, name}]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(blob), true, nil
}

func (m *Memory) Set(ctx context.Context, scope, name string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[memoryKey{scope, name}] = slices.Clone(blob)
	return nil
}

// Len reports the number of stored blobs.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
