package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/eldercare/internal/client/storage"
)

// loadJSON decodes the document under key into dst. found is false when the
// key is absent; dst is left untouched in that case.
func loadJSON(ctx context.Context, store storage.Adapter, key string, dst any) (found bool, err error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrCorruptValue, key, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, store storage.Adapter, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// idSource hands out creation-time IDs in Unix milliseconds, bumped when two
// calls land in the same millisecond so IDs stay unique.
type idSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func newIDSource(now func() time.Time) *idSource {
	if now == nil {
		now = time.Now
	}
	return &idSource{now: now}
}

func (s *idSource) next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
