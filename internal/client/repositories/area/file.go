//go:build !(js && wasm)

package area

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/eldercare/internal/filex"
)

const fileFormatVersion = 1

// FileArea emulates browser origin storage on hosts without a browser: the
// whole area lives in memory and is rewritten atomically to a single JSON
// document after every mutation.
type FileArea struct {
	path  string
	quota int64

	mu     sync.RWMutex
	items  map[string]string
	used   int64
	closed bool
}

type fileDocument struct {
	Version int         `json:"version"`
	Items   []fileEntry `json:"items"`
}

// fileEntry holds text as-is when it is valid UTF-8 and base64 otherwise, so
// arbitrary Go strings survive the JSON round trip.
type fileEntry struct {
	Key      string `json:"k,omitempty"`
	KeyRaw   []byte `json:"kb,omitempty"`
	Value    string `json:"v"`
	ValueRaw []byte `json:"vb,omitempty"`
}

// OpenFileArea loads the area stored at path, creating an empty one when the
// file does not exist yet. quota <= 0 disables the limit.
func OpenFileArea(path string, quota int64) (*FileArea, error) {
	a := &FileArea{path: path, quota: quota, items: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return a, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read area %s: %w", path, err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode area %s: %w", path, err)
	}
	if doc.Version != fileFormatVersion {
		return nil, fmt.Errorf("area %s: unsupported format version %d", path, doc.Version)
	}

	for _, e := range doc.Items {
		key, value := e.Key, e.Value
		if e.KeyRaw != nil {
			key = string(e.KeyRaw)
		}
		if e.ValueRaw != nil {
			value = string(e.ValueRaw)
		}
		a.items[key] = value
		a.used += entrySize(key, value)
	}
	return a, nil
}

func (a *FileArea) GetItem(key string) (string, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return "", false, ErrClosed
	}
	v, ok := a.items[key]
	return v, ok, nil
}

func (a *FileArea) SetItem(key, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}

	used := a.used + entrySize(key, value)
	if old, ok := a.items[key]; ok {
		used -= entrySize(key, old)
	}
	if a.quota > 0 && used > a.quota {
		return fmt.Errorf("set %q: %w", key, ErrQuotaExceeded)
	}

	next := maps.Clone(a.items)
	next[key] = value
	if err := a.persist(next); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}

	a.items = next
	a.used = used
	return nil
}

func (a *FileArea) RemoveItem(key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}

	old, ok := a.items[key]
	if !ok {
		return nil
	}

	next := maps.Clone(a.items)
	delete(next, key)
	if err := a.persist(next); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}

	a.items = next
	a.used -= entrySize(key, old)
	return nil
}

func (a *FileArea) Items() (map[string]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return nil, ErrClosed
	}
	return maps.Clone(a.items), nil
}

func (a *FileArea) Clear() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}

	next := make(map[string]string)
	if err := a.persist(next); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	a.items = next
	a.used = 0
	return nil
}

// Close makes further calls fail with ErrClosed. The file is already up to
// date, so nothing is flushed.
func (a *FileArea) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	return nil
}

func (a *FileArea) persist(items map[string]string) error {
	doc := fileDocument{Version: fileFormatVersion, Items: make([]fileEntry, 0, len(items))}
	for k, v := range items {
		var e fileEntry
		if utf8.ValidString(k) {
			e.Key = k
		} else {
			e.KeyRaw = []byte(k)
		}
		if utf8.ValidString(v) {
			e.Value = v
		} else {
			e.ValueRaw = []byte(v)
		}
		doc.Items = append(doc.Items, e)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode area: %w", err)
	}
	return filex.WriteFileAtomic(a.path, data, 0o600)
}
