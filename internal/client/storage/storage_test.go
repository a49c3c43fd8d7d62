package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/eldercare/internal/client/repositories/area"
	"github.com/dmitrijs2005/eldercare/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBackend(t *testing.T, opts Options) Adapter {
	t.Helper()
	if opts.DataDir == "" {
		opts.DataDir = t.TempDir()
	}
	a, err := Open(context.Background(), opts, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func backends() map[string]Options {
	return map[string]Options{
		"web-memory": {Backend: BackendWeb, Ephemeral: true},
		"web-file":   {Backend: BackendWeb, WebQuota: area.DefaultQuota},
		"device":     {Backend: BackendDevice},
	}
}

func TestAdapter_Contract(t *testing.T) {
	for name, opts := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("round trip", func(t *testing.T) {
				a := openBackend(t, opts)
				require.NoError(t, a.Set(ctx, "medicines", "[]"))
				v, ok, err := a.Get(ctx, "medicines")
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, "[]", v)
			})

			t.Run("last write wins", func(t *testing.T) {
				a := openBackend(t, opts)
				require.NoError(t, a.Set(ctx, "userProfile", `{"name":"Jane"}`))
				require.NoError(t, a.Set(ctx, "userProfile", `{"name":"Jane","age":"70"}`))
				v, ok, err := a.Get(ctx, "userProfile")
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, `{"name":"Jane","age":"70"}`, v)
			})

			t.Run("never set is absent", func(t *testing.T) {
				a := openBackend(t, opts)
				v, ok, err := a.Get(ctx, "appointments")
				require.NoError(t, err)
				assert.False(t, ok)
				assert.Empty(t, v)
			})

			t.Run("remove of never-set key succeeds", func(t *testing.T) {
				a := openBackend(t, opts)
				require.NoError(t, a.Remove(ctx, "userToken"))
				_, ok, err := a.Get(ctx, "userToken")
				require.NoError(t, err)
				assert.False(t, ok)
			})

			t.Run("remove then get is absent", func(t *testing.T) {
				a := openBackend(t, opts)
				require.NoError(t, a.Set(ctx, "userToken", "demo_token"))
				require.NoError(t, a.Remove(ctx, "userToken"))
				_, ok, err := a.Get(ctx, "userToken")
				require.NoError(t, err)
				assert.False(t, ok)
			})

			t.Run("empty string differs from absent", func(t *testing.T) {
				a := openBackend(t, opts)
				require.NoError(t, a.Set(ctx, "userEmail", ""))
				v, ok, err := a.Get(ctx, "userEmail")
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, "", v)
			})

			t.Run("malformed text stored verbatim", func(t *testing.T) {
				a := openBackend(t, opts)
				raw := `{"2026-10-19": [ {"id": 1,`
				require.NoError(t, a.Set(ctx, "appointments", raw))
				v, _, err := a.Get(ctx, "appointments")
				require.NoError(t, err)
				assert.Equal(t, raw, v)
			})

			t.Run("list clear replace", func(t *testing.T) {
				a := openBackend(t, opts)
				l, ok := a.(Lister)
				require.True(t, ok, "backend must implement Lister")

				require.NoError(t, a.Set(ctx, "a", "1"))
				require.NoError(t, a.Set(ctx, "b", "2"))
				items, err := l.List(ctx)
				require.NoError(t, err)
				assert.Equal(t, map[string]string{"a": "1", "b": "2"}, items)

				require.NoError(t, l.Replace(ctx, map[string]string{"c": "3"}))
				items, err = l.List(ctx)
				require.NoError(t, err)
				assert.Equal(t, map[string]string{"c": "3"}, items)

				require.NoError(t, l.Clear(ctx))
				items, err = l.List(ctx)
				require.NoError(t, err)
				assert.Empty(t, items)
			})

			t.Run("cancelled context rejected before issue", func(t *testing.T) {
				a := openBackend(t, opts)
				cctx, cancel := context.WithCancel(ctx)
				cancel()

				err := a.Set(cctx, "k", "v")
				require.ErrorIs(t, err, context.Canceled)
				require.ErrorIs(t, err, ErrStorageUnavailable)
				_, _, err = a.Get(cctx, "k")
				require.ErrorIs(t, err, ErrStorageUnavailable)
				_, ok, err := a.Get(ctx, "k")
				require.NoError(t, err)
				assert.False(t, ok, "rejected set must not be applied")
			})

			t.Run("backend reported", func(t *testing.T) {
				a := openBackend(t, opts)
				assert.Equal(t, opts.Backend, a.Backend())
			})
		})
	}
}

func TestAdapter_PersistsAcrossReopen(t *testing.T) {
	for _, b := range []Backend{BackendWeb, BackendDevice} {
		t.Run(string(b), func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()

			a, err := Open(ctx, Options{Backend: b, DataDir: dir}, logging.Discard())
			require.NoError(t, err)
			require.NoError(t, a.Set(ctx, "hasLaunched", "true"))
			require.NoError(t, a.Close())

			a, err = Open(ctx, Options{Backend: b, DataDir: dir}, logging.Discard())
			require.NoError(t, err)
			defer a.Close()

			v, ok, err := a.Get(ctx, "hasLaunched")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "true", v)
		})
	}
}

func TestAdapter_BackendsAreIsolated(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	web := openBackend(t, Options{Backend: BackendWeb, DataDir: dir})
	device := openBackend(t, Options{Backend: BackendDevice, DataDir: dir})

	require.NoError(t, web.Set(ctx, "k", "1"))

	_, ok, err := device.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entries written under web must not be visible under device")
}

func TestDevice_ClosedAdapterIsUnavailable(t *testing.T) {
	ctx := context.Background()
	a, err := Open(ctx, Options{Backend: BackendDevice, DataDir: t.TempDir()}, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, a.Close())
	require.NoError(t, a.Close(), "second close is a no-op")

	err = a.Set(ctx, "k", "v")
	require.ErrorIs(t, err, ErrStorageUnavailable)
	require.ErrorIs(t, err, ErrClosed)

	_, _, err = a.Get(ctx, "k")
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestDevice_ConcurrentCallersAreSerialized(t *testing.T) {
	ctx := context.Background()
	a := openBackend(t, Options{Backend: BackendDevice, QueueSize: 4})

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, a.Set(ctx, fmt.Sprintf("k%02d", i), fmt.Sprint(i)))
		}(i)
	}
	wg.Wait()

	items, err := a.(Lister).List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, n)
	assert.Equal(t, "7", items["k07"])
}

func TestDevice_SameKeyRaceKeepsOneWrite(t *testing.T) {
	ctx := context.Background()
	a := openBackend(t, Options{Backend: BackendDevice})

	var wg sync.WaitGroup
	for _, v := range []string{"1", "2", "3"} {
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			assert.NoError(t, a.Set(ctx, "k", v))
		}(v)
	}
	wg.Wait()

	v, ok, err := a.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, []string{"1", "2", "3"}, v)
}

type failingArea struct {
	area.Area
	err error
}

func (f failingArea) GetItem(string) (string, bool, error) { return "", false, f.err }
func (f failingArea) SetItem(string, string) error         { return f.err }
func (f failingArea) RemoveItem(string) error              { return f.err }

func TestWeb_BackendErrorsAreUnavailable(t *testing.T) {
	ctx := context.Background()
	a := NewWebAdapter(failingArea{err: area.ErrQuotaExceeded}, logging.Discard())

	err := a.Set(ctx, "medicines", "[]")
	require.ErrorIs(t, err, ErrStorageUnavailable)
	require.ErrorIs(t, err, area.ErrQuotaExceeded)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, BackendWeb, se.Backend)
	assert.Equal(t, "set", se.Op)
	assert.Equal(t, "medicines", se.Key)
	assert.Contains(t, err.Error(), `web set "medicines"`)

	_, _, err = a.Get(ctx, "medicines")
	require.ErrorIs(t, err, ErrStorageUnavailable)
	require.ErrorIs(t, a.Remove(ctx, "medicines"), ErrStorageUnavailable)
}

func TestWeb_QuotaExceededSurfaces(t *testing.T) {
	ctx := context.Background()
	a := openBackend(t, Options{Backend: BackendWeb, Ephemeral: true, WebQuota: 32})

	require.NoError(t, a.Set(ctx, "k", "small"))
	err := a.Set(ctx, "k", "a value that is definitely too large")
	require.ErrorIs(t, err, ErrStorageUnavailable)
	require.ErrorIs(t, err, area.ErrQuotaExceeded)

	v, _, err := a.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "small", v)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "cloud"}, logging.Discard())
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpen_UnusableDataDirIsUnavailable(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	for _, b := range []Backend{BackendWeb, BackendDevice} {
		_, err := Open(context.Background(), Options{Backend: b, DataDir: file}, logging.Discard())
		require.ErrorIs(t, err, ErrStorageUnavailable, string(b))
	}
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("web")
	require.NoError(t, err)
	assert.Equal(t, BackendWeb, b)

	b, err = ParseBackend("device")
	require.NoError(t, err)
	assert.Equal(t, BackendDevice, b)

	_, err = ParseBackend("ios")
	require.ErrorIs(t, err, ErrUnknownBackend)
}
