// Package kv is the SQLite-backed key/value repository behind the device
// storage backend.
//
// Table layout (created by the embedded migrations):
//
//	CREATE TABLE kv (
//	  key        TEXT PRIMARY KEY,
//	  value      TEXT NOT NULL,
//	  updated_at TEXT NOT NULL
//	);
//
// A missing key is reported as ok == false with a nil error. Values are
// stored verbatim; the repository never interprets them.
package kv
