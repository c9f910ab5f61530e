package cache

import (
	"sync"
	"time"
)

type memoryEntry struct {
	value   string
	expires time.Time
}

// Memory is an in-process Cache, used where no redis server is configured.
type Memory struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{now: time.Now, entries: map[string]memoryEntry{}}
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", ErrMiss
	}
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		delete(m.entries, key)
		return "", ErrMiss
	}

	return entry.value, nil
}

func (m *Memory) SetWithTtl(key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expires = m.now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *Memory) SetKeepTtl(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := m.entries[key]
	entry.value = value
	// an expired key is gone, so there is no ttl left to keep
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		entry.expires = time.Time{}
	}
	m.entries[key] = entry
	return nil
}
