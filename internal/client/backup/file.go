package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/eldercare/internal/filex"
)

// FileStore keeps snapshots as JSON files in one directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) Save(ctx context.Context, s Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, err := filex.EnsureDir(f.dir)
	if err != nil {
		return "", err
	}
	b, err := encode(s)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	path := filepath.Join(dir, objectName(s.CreatedAt))
	if err := filex.WriteFileAtomic(path, b, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Latest reads the newest snapshot in the directory.
func (f *FileStore) Latest(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	des, err := os.ReadDir(f.dir)
	if os.IsNotExist(err) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", f.dir, err)
	}

	var names []string
	for _, de := range des {
		if de.Type().IsRegular() && strings.HasSuffix(de.Name(), ".json") {
			names = append(names, de.Name())
		}
	}
	if len(names) == 0 {
		return Snapshot{}, ErrNoSnapshot
	}

	path := filepath.Join(f.dir, slices.Max(names))
	b, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	return decode(b)
}
