// Package area implements the synchronous, browser-style string stores used
// by the web storage backend. The Area contract follows the Web Storage API:
// every call completes before it returns, keys and values are strings, and
// removing a missing key is a no-op.
package area

import (
	"errors"
	"unicode/utf16"
)

// DefaultQuota mirrors the common browser localStorage limit of 5 MiB.
const DefaultQuota = 5 << 20

var (
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrClosed        = errors.New("storage area closed")
)

// Area is a synchronous key/value string store.
type Area interface {
	// GetItem returns the stored value and ok == true, or ok == false when
	// the key has no value.
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Items() (map[string]string, error)
	Clear() error
}

// entrySize is the byte cost of one entry as browsers account for it: both
// key and value counted as UTF-16 code units of two bytes each.
func entrySize(key, value string) int64 {
	return 2 * (utf16Len(key) + utf16Len(value))
}

func utf16Len(s string) int64 {
	var n int64
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += int64(l)
		} else {
			n++
		}
	}
	return n
}
