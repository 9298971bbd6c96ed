package cache

import (
	"context"
	"sync"
	"time"
	"vendepass-client/internal/ports"
)

var _ ports.ListCache[struct{}] = (*MemoryListCache[struct{}])(nil)

type memoryEntry[T any] struct {
	items     []T
	expiresAt time.Time
}

// In-process ListCache. Entries expire after ttl; a zero ttl keeps them until
// invalidated.
type MemoryListCache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry[T]
}

func NewMemoryListCache[T any](ttl time.Duration) *MemoryListCache[T] {
	return &MemoryListCache[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry[T]),
	}
}

// Return a copy of the cached list for key.
func (c *MemoryListCache[T]) Get(ctx context.Context, key string) ([]T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}

	return append([]T{}, e.items...), true, nil
}

// Store a copy of items under key.
func (c *MemoryListCache[T]) Set(ctx context.Context, key string, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := memoryEntry[T]{items: append([]T{}, items...)}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.entries[key] = e
	return nil
}

func (c *MemoryListCache[T]) Invalidate(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}
