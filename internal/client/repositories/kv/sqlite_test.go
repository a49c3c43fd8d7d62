package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every new connection to :memory: is a fresh database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_RoundTrip(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "medicines", "[]"))

	v, ok, err := r.Get(ctx, "medicines")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", v)
}

func TestGet_NotExists_ReportsAbsent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, ok, err := r.Get(context.Background(), "userToken")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestSet_EmptyStringIsNotAbsent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "userEmail", ""))

	v, ok, err := r.Get(ctx, "userEmail")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "", v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "userProfile", `{"name":"Jane"}`))
	require.NoError(t, r.Set(ctx, "userProfile", `{"name":"Jane","age":"70"}`))

	v, ok, err := r.Get(ctx, "userProfile")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"name":"Jane","age":"70"}`, v)
}

func TestSet_StoresMalformedTextVerbatim(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	raw := "{not json é tail"
	require.NoError(t, r.Set(ctx, "appointments", raw))

	v, ok, err := r.Get(ctx, "appointments")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, raw, v)
}

func TestSet_RecordsUpdatedAt(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	fixed := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	require.NoError(t, r.Set(context.Background(), "hasLaunched", "true"))

	var ts string
	require.NoError(t, db.QueryRow(`SELECT updated_at FROM kv WHERE key = 'hasLaunched'`).Scan(&ts))
	assert.Equal(t, fixed.Format(time.RFC3339Nano), ts)
}

func TestList_ReturnsAllPairs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", "1"))
	require.NoError(t, r.Set(ctx, "b", "2"))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, m)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "userToken", "demo_token"))
	require.NoError(t, r.Delete(ctx, "userToken"))

	_, ok, err := r.Get(ctx, "userToken")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.Delete(ctx, "userToken"))
	require.NoError(t, r.Delete(ctx, "never-set"))
}

func TestClear_RemovesAllKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", "1"))
	require.NoError(t, r.Set(ctx, "b", "2"))
	require.NoError(t, r.Clear(ctx))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestOperations_ClosedDBErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, _, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	require.ErrorContains(t, r.Set(ctx, "k", "v"), "failed to set kv[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete kv[k]")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear kv")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list kv")
}

func newRepoWithMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), mock
}

func TestGet_DriverErrorIsWrapped(t *testing.T) {
	r, mock := newRepoWithMock(t)
	boom := errors.New("disk I/O error")

	mock.ExpectQuery(`(?s)^SELECT\s+value\s+FROM\s+kv\s+WHERE\s+key\s*=\s*\?$`).
		WithArgs("medicines").
		WillReturnError(boom)

	_, ok, err := r.Get(context.Background(), "medicines")
	require.ErrorIs(t, err, boom)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_PassesKeyValueAndTimestamp(t *testing.T) {
	r, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+kv.*ON\s+CONFLICT\(key\)\s+DO\s+UPDATE`).
		WithArgs("userEmail", "demo@eldercare.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Set(context.Background(), "userEmail", "demo@eldercare.com"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_ScanErrorIsWrapped(t *testing.T) {
	r, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"key", "value"}).AddRow("a", nil)
	mock.ExpectQuery(`SELECT key, value FROM kv`).WillReturnRows(rows)

	_, err := r.List(context.Background())
	require.ErrorContains(t, err, "failed to scan kv row")
}

func TestList_RowsErrorIsWrapped(t *testing.T) {
	r, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("a", "1").
		AddRow("b", "2").
		RowError(1, errors.New("corrupted page"))
	mock.ExpectQuery(`SELECT key, value FROM kv`).WillReturnRows(rows)

	_, err := r.List(context.Background())
	require.ErrorContains(t, err, "failed to iterate kv rows")
}
