package storage

import (
	"context"
	"sync"
)

type MemoryBackend struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
	saves   int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (b *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (b *MemoryBackend) Save(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return b.saveErr
	}
	b.data[key] = append([]byte(nil), data...)
	b.saves++
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

// Put seeds a raw value, bypassing any injected save error.
func (b *MemoryBackend) Put(key string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = append([]byte(nil), data...)
}

// FailSaves makes every following Save return err; nil restores normal
// behaviour.
func (b *MemoryBackend) FailSaves(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saveErr = err
}

// Saves counts successful writes.
func (b *MemoryBackend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}
