package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/eldercare/internal/filex"
	"github.com/google/uuid"
)

const installIDFile = "install-id"

// InstallID returns the installation id stored in dataDir, creating it on
// first use.
func InstallID(dataDir string) (string, error) {
	dir, err := filex.EnsureDir(dataDir)
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, installIDFile)

	b, err := os.ReadFile(p)
	if err == nil {
		if id, perr := uuid.Parse(strings.TrimSpace(string(b))); perr == nil {
			return id.String(), nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read install id: %w", err)
	}

	id := uuid.NewString()
	if err := filex.WriteFileAtomic(p, []byte(id+"\n"), 0o600); err != nil {
		return "", err
	}
	return id, nil
}
