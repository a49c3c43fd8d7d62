//go:build js && wasm

package storage

import (
	"github.com/dmitrijs2005/eldercare/internal/client/repositories/area"
)

func openWebArea(opts Options) (area.Area, error) {
	if opts.Ephemeral {
		return area.NewMemoryArea(opts.WebQuota), nil
	}
	return area.OpenLocalStorage()
}
