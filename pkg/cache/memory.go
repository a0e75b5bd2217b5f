package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	data     []byte
	expireAt time.Time
	accessAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return now.After(e.expireAt)
}

// Memory is an in-process Store with TTL expiry and LRU eviction.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	maxSize int
	janitor *time.Ticker
	done    chan struct{}
}

// MemoryOption configures Memory.
type MemoryOption func(*Memory)

// WithMaxEntries caps the number of stored entries.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) { m.maxSize = n }
}

// NewMemory creates an in-memory cache and starts its cleanup loop.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]*memoryEntry),
		maxSize: 1024,
		janitor: time.NewTicker(time.Minute),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	go m.sweep()
	return m
}

func (m *Memory) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; !ok && len(m.entries) >= m.maxSize {
		m.evictOldest()
	}

	now := time.Now()
	m.entries[key] = &memoryEntry{data: data, expireAt: now.Add(ttl), accessAt: now}
	return nil
}

func (m *Memory) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	now := time.Now()
	if !ok || e.expired(now) {
		if ok {
			delete(m.entries, key)
		}
		return ErrMiss
	}

	e.accessAt = now
	return json.Unmarshal(e.data, dest)
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	return ok && !e.expired(time.Now()), nil
}

func (m *Memory) TryLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if e, ok := m.entries[key]; ok && !e.expired(now) {
		return false, nil
	}
	m.entries[key] = &memoryEntry{data: []byte("1"), expireAt: now.Add(ttl), accessAt: now}
	return true, nil
}

func (m *Memory) Unlock(ctx context.Context, key string) error {
	return m.Delete(ctx, key)
}

// Close stops the cleanup loop.
func (m *Memory) Close() error {
	m.janitor.Stop()
	close(m.done)
	return nil
}

func (m *Memory) evictOldest() {
	var oldestKey string
	var oldestAt time.Time

	for key, e := range m.entries {
		if oldestKey == "" || e.accessAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.accessAt
		}
	}
	if oldestKey != "" {
		delete(m.entries, oldestKey)
	}
}

func (m *Memory) sweep() {
	for {
		select {
		case <-m.done:
			return
		case <-m.janitor.C:
			m.mu.Lock()
			now := time.Now()
			for key, e := range m.entries {
				if e.expired(now) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		}
	}
}
