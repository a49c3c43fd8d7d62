package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eldercare/internal/logging"
)

const (
	webAreaFile    = "web-area.json"
	deviceDBFile   = "device.db"
	defaultQueueSz = 64
)

// Options selects and configures the backend.
type Options struct {
	Backend Backend
	// DataDir holds the backend files (web-area.json / device.db).
	DataDir string
	// WebQuota limits the web area in bytes; <= 0 means no limit.
	WebQuota int64
	// Ephemeral keeps the web area in memory only.
	Ephemeral bool
	// QueueSize bounds pending device requests.
	QueueSize int
}

// Open creates the adapter for opts.Backend. The choice holds for the
// adapter's whole lifetime.
func Open(ctx context.Context, opts Options, log logging.Logger) (Adapter, error) {
	log = log.With("backend", string(opts.Backend))

	switch opts.Backend {
	case BackendWeb:
		a, err := openWebArea(opts)
		if err != nil {
			return nil, unavailable(BackendWeb, "open", "", err)
		}
		log.Info(ctx, "storage opened")
		return newWebAdapter(a, log), nil

	case BackendDevice:
		a, err := openDevice(ctx, opts, log)
		if err != nil {
			return nil, unavailable(BackendDevice, "open", "", err)
		}
		log.Info(ctx, "storage opened")
		return a, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
