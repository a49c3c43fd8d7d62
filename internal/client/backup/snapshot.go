// Package backup copies the whole key/value store to and from snapshots kept
// on local disk or in an S3-compatible bucket.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eldercare/internal/client/storage"
)

// SnapshotVersion is the snapshot document layout written by Export.
const SnapshotVersion = 1

var (
	ErrNoSnapshot      = errors.New("no snapshot found")
	ErrBadSnapshot     = errors.New("invalid snapshot")
	ErrListUnsupported = errors.New("adapter cannot enumerate entries")
)

type Snapshot struct {
	Version   int               `json:"version"`
	Backend   storage.Backend   `json:"backend"`
	CreatedAt time.Time         `json:"created_at"`
	Entries   map[string]string `json:"entries"`
}

// Store persists snapshots somewhere outside the adapter.
type Store interface {
	Save(ctx context.Context, s Snapshot) (location string, err error)
	Latest(ctx context.Context) (Snapshot, error)
}

// Export copies every entry of a. The adapter must implement storage.Lister.
func Export(ctx context.Context, a storage.Adapter, now time.Time) (Snapshot, error) {
	l, ok := a.(storage.Lister)
	if !ok {
		return Snapshot{}, ErrListUnsupported
	}
	entries, err := l.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("export: %w", err)
	}
	return Snapshot{
		Version:   SnapshotVersion,
		Backend:   a.Backend(),
		CreatedAt: now.UTC(),
		Entries:   entries,
	}, nil
}

// Import writes every snapshot entry into a, overwriting current values.
// Keys absent from the snapshot are left alone.
func Import(ctx context.Context, a storage.Adapter, s Snapshot) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	n := 0
	for k, v := range s.Entries {
		if err := a.Set(ctx, k, v); err != nil {
			return n, fmt.Errorf("import %s: %w", k, err)
		}
		n++
	}
	return n, nil
}

// Restore makes the snapshot the complete content of a.
func Restore(ctx context.Context, a storage.Adapter, s Snapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}
	l, ok := a.(storage.Lister)
	if !ok {
		return ErrListUnsupported
	}
	if err := l.Replace(ctx, s.Entries); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

func (s Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, s.Version)
	}
	if s.Entries == nil {
		return fmt.Errorf("%w: missing entries", ErrBadSnapshot)
	}
	return nil
}

func encode(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func decode(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// objectName is the sortable file or object name for a snapshot taken at t.
func objectName(t time.Time) string {
	return t.UTC().Format("20060102T150405.000Z") + ".json"
}
