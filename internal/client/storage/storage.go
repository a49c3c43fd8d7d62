// Package storage is the key/value persistence adapter every client feature
// loads and saves its state through.
//
// One of two backends is chosen once, at Open, from configuration:
//
//   - web: a synchronous browser-style area (localStorage in js/wasm builds,
//     a JSON origin file on other hosts);
//   - device: an asynchronous on-device store, SQLite behind a single worker
//     goroutine.
//
// Both are exposed through the same Adapter contract. Values are opaque
// strings; callers encode and decode their own JSON. A missing key is the
// normal "absent" outcome (ok == false), never an error. Every backend failure
// matches ErrStorageUnavailable via errors.Is.
//
// The adapter does not retry, validate values, or fall back to another store.
// Each Set is atomic for its own key only; concurrent writers to one key race
// and the last completed write wins.
package storage

import (
	"context"
	"errors"
	"fmt"
)

type Backend string

const (
	BackendWeb    Backend = "web"
	BackendDevice Backend = "device"
)

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrUnknownBackend     = errors.New("unknown storage backend")
	ErrClosed             = errors.New("adapter closed")
)

// Adapter is the three-operation persistence contract. Every failure,
// including a context that is already done when the call is issued, matches
// ErrStorageUnavailable and unwraps to its cause.
type Adapter interface {
	// Get returns the value stored under key. ok is false when the key has no
	// value.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key; removing a missing key succeeds.
	Remove(ctx context.Context, key string) error
	// Backend reports which physical store is active.
	Backend() Backend
	Close() error
}

// Lister is implemented by adapters that can enumerate and bulk-replace their
// entries. Both built-in backends implement it.
type Lister interface {
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
	// Replace makes items the complete content of the store.
	Replace(ctx context.Context, items map[string]string) error
}

// Error describes a failed backend call. It matches ErrStorageUnavailable
// and unwraps to the backend's own error.
type Error struct {
	Backend Backend
	Op      string
	Key     string
	Err     error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s %s: %v", ErrStorageUnavailable, e.Backend, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s %s %q: %v", ErrStorageUnavailable, e.Backend, e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrStorageUnavailable }

func unavailable(b Backend, op, key string, err error) error {
	return &Error{Backend: b, Op: op, Key: key, Err: err}
}

// ParseBackend validates a configured backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendWeb, BackendDevice:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}
