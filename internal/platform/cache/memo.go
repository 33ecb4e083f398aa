// Package cache holds short-lived lookup caches owned by a single unit of work.
package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Memo remembers loaded values for the lifetime of one batch run. It has no expiry;
// callers create a fresh Memo per run and drop it afterwards. Failed loads are not stored.
type Memo struct {
	mu      sync.RWMutex
	entries map[string]any
	flight  singleflight.Group
	loads   atomic.Int64
}

func NewMemo() *Memo {
	return &Memo{entries: make(map[string]any)}
}

func (m *Memo) Get(key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	m.mu.RLock()
	value, ok := m.entries[key]
	m.mu.RUnlock()
	return value, ok
}

func (m *Memo) Set(key string, value any) {
	if key == "" {
		return
	}

	m.mu.Lock()
	m.entries[key] = value
	m.mu.Unlock()
}

// Len reports how many keys are stored.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Loads reports how many times a loader actually ran.
func (m *Memo) Loads() int64 {
	return m.loads.Load()
}

// GetOrLoad returns the stored value for key or runs loader once, even when many
// goroutines ask for the same key at the same time. aliases receive the loaded value too.
func (m *Memo) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error), aliases ...string) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		m.loads.Add(1)
		return loader(ctx)
	}

	if value, ok := m.Get(key); ok {
		return value, nil
	}

	value, err, _ := m.flight.Do(key, func() (any, error) {
		if cached, ok := m.Get(key); ok {
			return cached, nil
		}

		m.loads.Add(1)
		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}

		m.mu.Lock()
		m.entries[key] = loaded
		for _, alias := range aliases {
			if alias != "" {
				m.entries[alias] = loaded
			}
		}
		m.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Load is the typed form of GetOrLoad.
func Load[T any](ctx context.Context, m *Memo, key string, loader func(context.Context) (T, error), aliases ...string) (T, error) {
	value, err := m.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	}, aliases...)
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cached value for %q has type %T", key, value)
	}
	return typed, nil
}
