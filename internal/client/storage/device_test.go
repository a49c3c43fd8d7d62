//go:build !(js && wasm)

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/eldercare/internal/client/database"
	"github.com/dmitrijs2005/eldercare/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDevice_FailedReplaceKeepsPreviousContents(t *testing.T) {
	ctx := context.Background()

	db, err := database.InitDatabase(ctx, filepath.Join(t.TempDir(), deviceDBFile))
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `CREATE TRIGGER reject_bad BEFORE INSERT ON kv
		WHEN NEW.key = 'bad'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)

	a := newDeviceAdapter(db, 0, logging.Discard())
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, a.Set(ctx, "keep", "1"))

	err = a.Replace(ctx, map[string]string{"bad": "x", "other": "y"})
	require.ErrorIs(t, err, ErrStorageUnavailable)

	got, err := a.List(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(map[string]string{"keep": "1"}, got); diff != "" {
		t.Fatalf("contents after failed replace (-want +got):\n%s", diff)
	}
}
