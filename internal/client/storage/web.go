package storage

import (
	"context"
	"io"

	"github.com/dmitrijs2005/eldercare/internal/client/repositories/area"
	"github.com/dmitrijs2005/eldercare/internal/logging"
)

// webAdapter exposes a synchronous area through the Adapter contract. Calls
// finish before they return; a context that is already done is rejected
// before the area is touched.
type webAdapter struct {
	area area.Area
	log  logging.Logger
}

func newWebAdapter(a area.Area, log logging.Logger) *webAdapter {
	return &webAdapter{area: a, log: log}
}

// NewWebAdapter wraps an existing area, e.g. a MemoryArea in tests.
func NewWebAdapter(a area.Area, log logging.Logger) Adapter {
	return newWebAdapter(a, log)
}

func (w *webAdapter) Backend() Backend { return BackendWeb }

func (w *webAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, unavailable(BackendWeb, "get", key, err)
	}
	v, ok, err := w.area.GetItem(key)
	if err != nil {
		w.log.Warn(ctx, "storage get failed", "key", key, "err", err)
		return "", false, unavailable(BackendWeb, "get", key, err)
	}
	w.log.Debug(ctx, "storage get", "key", key, "found", ok)
	return v, ok, nil
}

func (w *webAdapter) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return unavailable(BackendWeb, "set", key, err)
	}
	if err := w.area.SetItem(key, value); err != nil {
		w.log.Warn(ctx, "storage set failed", "key", key, "err", err)
		return unavailable(BackendWeb, "set", key, err)
	}
	w.log.Debug(ctx, "storage set", "key", key, "len", len(value))
	return nil
}

func (w *webAdapter) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return unavailable(BackendWeb, "remove", key, err)
	}
	if err := w.area.RemoveItem(key); err != nil {
		w.log.Warn(ctx, "storage remove failed", "key", key, "err", err)
		return unavailable(BackendWeb, "remove", key, err)
	}
	w.log.Debug(ctx, "storage remove", "key", key)
	return nil
}

func (w *webAdapter) List(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(BackendWeb, "list", "", err)
	}
	items, err := w.area.Items()
	if err != nil {
		return nil, unavailable(BackendWeb, "list", "", err)
	}
	return items, nil
}

func (w *webAdapter) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return unavailable(BackendWeb, "clear", "", err)
	}
	if err := w.area.Clear(); err != nil {
		return unavailable(BackendWeb, "clear", "", err)
	}
	return nil
}

// Replace clears the area and writes items one by one. A failure part way
// leaves the entries written so far.
func (w *webAdapter) Replace(ctx context.Context, items map[string]string) error {
	if err := w.Clear(ctx); err != nil {
		return err
	}
	for k, v := range items {
		if err := w.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

func (w *webAdapter) Close() error {
	if c, ok := w.area.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
