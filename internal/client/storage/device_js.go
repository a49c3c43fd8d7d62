//go:build js && wasm

package storage

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/eldercare/internal/logging"
)

// SQLite is not available to js/wasm builds; the browser only has the web
// backend.
func openDevice(ctx context.Context, opts Options, log logging.Logger) (Adapter, error) {
	return nil, errors.New("device backend is not supported in the browser")
}
