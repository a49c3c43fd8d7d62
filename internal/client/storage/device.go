//go:build !(js && wasm)

package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/eldercare/internal/client/database"
	"github.com/dmitrijs2005/eldercare/internal/client/repositories/kv"
	"github.com/dmitrijs2005/eldercare/internal/dbx"
	"github.com/dmitrijs2005/eldercare/internal/filex"
	"github.com/dmitrijs2005/eldercare/internal/logging"
)

type opKind int

const (
	opGet opKind = iota
	opSet
	opRemove
	opList
	opClear
	opReplace
)

func (o opKind) String() string {
	switch o {
	case opGet:
		return "get"
	case opSet:
		return "set"
	case opRemove:
		return "remove"
	case opList:
		return "list"
	case opClear:
		return "clear"
	case opReplace:
		return "replace"
	}
	return "unknown"
}

type deviceRequest struct {
	ctx   context.Context
	op    opKind
	key   string
	value string
	items map[string]string
	reply chan deviceResult
}

type deviceResult struct {
	value string
	ok    bool
	items map[string]string
	err   error
}

// deviceAdapter is the asynchronous backend. Requests are queued to one
// worker goroutine that executes them against SQLite in arrival order.
// A request that made it into the queue always runs to completion; the
// caller's context only matters up to that point.
type deviceAdapter struct {
	db   *sql.DB
	repo kv.Repository
	log  logging.Logger

	mu     sync.RWMutex
	closed bool
	reqs   chan deviceRequest
	wg     sync.WaitGroup
}

func openDevice(ctx context.Context, opts Options, log logging.Logger) (*deviceAdapter, error) {
	dir, err := filex.EnsureDir(opts.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := database.InitDatabase(ctx, filepath.Join(dir, deviceDBFile))
	if err != nil {
		return nil, err
	}
	return newDeviceAdapter(db, opts.QueueSize, log), nil
}

func newDeviceAdapter(db *sql.DB, queueSize int, log logging.Logger) *deviceAdapter {
	if queueSize <= 0 {
		queueSize = defaultQueueSz
	}
	a := &deviceAdapter{
		db:   db,
		repo: kv.NewSQLiteRepository(db),
		log:  log,
		reqs: make(chan deviceRequest, queueSize),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *deviceAdapter) Backend() Backend { return BackendDevice }

func (a *deviceAdapter) run() {
	defer a.wg.Done()
	for req := range a.reqs {
		req.reply <- a.execute(req)
	}
}

func (a *deviceAdapter) execute(req deviceRequest) deviceResult {
	ctx := context.WithoutCancel(req.ctx)

	var res deviceResult
	switch req.op {
	case opGet:
		res.value, res.ok, res.err = a.repo.Get(ctx, req.key)
	case opSet:
		res.err = a.repo.Set(ctx, req.key, req.value)
	case opRemove:
		res.err = a.repo.Delete(ctx, req.key)
	case opList:
		res.items, res.err = a.repo.List(ctx)
	case opClear:
		res.err = a.repo.Clear(ctx)
	case opReplace:
		res.err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := kv.NewSQLiteRepository(tx)
			if err := repo.Clear(ctx); err != nil {
				return err
			}
			for k, v := range req.items {
				if err := repo.Set(ctx, k, v); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if res.err != nil {
		a.log.Warn(ctx, "storage "+req.op.String()+" failed", "key", req.key, "err", res.err)
		res.err = unavailable(BackendDevice, req.op.String(), req.key, res.err)
	} else {
		a.log.Debug(ctx, "storage "+req.op.String(), "key", req.key)
	}
	return res
}

func (a *deviceAdapter) submit(ctx context.Context, req deviceRequest) deviceResult {
	if err := ctx.Err(); err != nil {
		return deviceResult{err: unavailable(BackendDevice, req.op.String(), req.key, err)}
	}

	req.ctx = ctx
	req.reply = make(chan deviceResult, 1)

	a.mu.RLock()
	if a.closed {
		a.mu.RUnlock()
		return deviceResult{err: unavailable(BackendDevice, req.op.String(), req.key, ErrClosed)}
	}
	a.reqs <- req
	a.mu.RUnlock()

	return <-req.reply
}

func (a *deviceAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	res := a.submit(ctx, deviceRequest{op: opGet, key: key})
	return res.value, res.ok, res.err
}

func (a *deviceAdapter) Set(ctx context.Context, key, value string) error {
	return a.submit(ctx, deviceRequest{op: opSet, key: key, value: value}).err
}

func (a *deviceAdapter) Remove(ctx context.Context, key string) error {
	return a.submit(ctx, deviceRequest{op: opRemove, key: key}).err
}

func (a *deviceAdapter) List(ctx context.Context) (map[string]string, error) {
	res := a.submit(ctx, deviceRequest{op: opList})
	return res.items, res.err
}

func (a *deviceAdapter) Clear(ctx context.Context) error {
	return a.submit(ctx, deviceRequest{op: opClear}).err
}

// Replace swaps the whole content in one SQLite transaction.
func (a *deviceAdapter) Replace(ctx context.Context, items map[string]string) error {
	return a.submit(ctx, deviceRequest{op: opReplace, items: items}).err
}

// Close lets queued requests finish, stops the worker and closes the
// database. Calls after Close fail with ErrStorageUnavailable.
func (a *deviceAdapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.reqs)
	a.mu.Unlock()

	a.wg.Wait()
	return a.db.Close()
}
