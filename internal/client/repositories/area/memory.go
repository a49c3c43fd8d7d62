package area

import (
	"fmt"
	"maps"
	"sync"
)

// MemoryArea keeps entries in process memory. Nothing survives a restart.
type MemoryArea struct {
	mu    sync.RWMutex
	items map[string]string
	used  int64
	quota int64
}

// NewMemoryArea returns an empty area limited to quota bytes; quota <= 0
// disables the limit.
func NewMemoryArea(quota int64) *MemoryArea {
	return &MemoryArea{items: make(map[string]string), quota: quota}
}

func (m *MemoryArea) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryArea) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used + entrySize(key, value)
	if old, ok := m.items[key]; ok {
		used -= entrySize(key, old)
	}
	if m.quota > 0 && used > m.quota {
		return fmt.Errorf("set %q: %w", key, ErrQuotaExceeded)
	}

	m.items[key] = value
	m.used = used
	return nil
}

func (m *MemoryArea) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.items[key]; ok {
		m.used -= entrySize(key, old)
		delete(m.items, key)
	}
	return nil
}

func (m *MemoryArea) Items() (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.items), nil
}

func (m *MemoryArea) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.items)
	m.used = 0
	return nil
}
