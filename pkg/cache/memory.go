package cache

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryOption configures the in-memory store.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	ttl time.Duration
	now func() time.Time
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		ttl: 0, // 0 = never expires
		now: time.Now,
	}
}

// WithTTL sets how long a saved list stays valid.
// Zero or negative means lists never expire.
// Default: 0.
func WithTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.ttl = d
	}
}

// WithClock overrides the time source used for expiry. Intended for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// memoryEntry holds a stored list with its expiration time.
type memoryEntry struct {
	expiresAt time.Time // zero value = never expires
	list      []string
}

// Memory is a mutex-guarded in-memory Store.
type Memory struct {
	items  map[string]memoryEntry
	opts   *memoryOptions
	mu     sync.RWMutex
	closed bool
}

// NewMemory creates an in-memory store.
//
// Example:
//
//	s := cache.NewMemory(cache.WithTTL(time.Hour))
func NewMemory(opts ...MemoryOption) *Memory {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Memory{
		items: make(map[string]memoryEntry),
		opts:  o,
	}
}

// Get returns a copy of the list stored under key.
func (m *Memory) Get(_ context.Context, key string) ([]string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, ErrClosed
	}

	e, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && m.opts.now().After(e.expiresAt) {
		return nil, false, nil
	}

	return slices.Clone(e.list), true, nil
}

// Save stores a copy of list under key. A nil list is stored as empty.
func (m *Memory) Save(_ context.Context, key string, list []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	e := memoryEntry{list: slices.Clone(list)}
	if e.list == nil {
		e.list = []string{}
	}
	if m.opts.ttl > 0 {
		e.expiresAt = m.opts.now().Add(m.opts.ttl)
	}
	m.items[key] = e

	return nil
}

// Close marks the store as closed. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = nil

	return nil
}

var _ Store = (*Memory)(nil)
