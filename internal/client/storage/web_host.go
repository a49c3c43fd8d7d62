//go:build !(js && wasm)

package storage

import (
	"path/filepath"

	"github.com/dmitrijs2005/eldercare/internal/client/repositories/area"
	"github.com/dmitrijs2005/eldercare/internal/filex"
)

func openWebArea(opts Options) (area.Area, error) {
	if opts.Ephemeral {
		return area.NewMemoryArea(opts.WebQuota), nil
	}

	dir, err := filex.EnsureDir(opts.DataDir)
	if err != nil {
		return nil, err
	}
	return area.OpenFileArea(filepath.Join(dir, webAreaFile), opts.WebQuota)
}
