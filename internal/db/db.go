// Package db owns the embedded single-file store behind the database tools.
//
// The store lives in memory on one pinned SQLite connection. It is loaded from the
// snapshot file on first use and the whole database is written back to that file
// after every mutating statement.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"modernc.org/sqlite"

	"github.com/hazyhaar/toolhost/internal/metrics"
	"github.com/hazyhaar/toolhost/pkg/trace"
)

// ErrNoSerializer is returned when the driver connection cannot snapshot itself.
var ErrNoSerializer = errors.New("sqlite driver does not support serialize/restore")

// serializer is implemented by modernc.org/sqlite driver connections.
type serializer interface {
	Serialize() ([]byte, error)
	NewRestore(srcURI string) (*sqlite.Backup, error)
}

// identRe matches everything that may not appear in an interpolated identifier.
var identRe = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SanitizeIdentifier strips every character outside [a-zA-Z0-9_].
func SanitizeIdentifier(s string) string {
	return identRe.ReplaceAllString(s, "")
}

// Handle is the process-wide database resource. Create it once and pass it to
// whoever needs it; it opens itself on first use.
type Handle struct {
	path   string
	tracer *trace.Recorder

	once  sync.Once
	sqlDB *sql.DB
	err   error

	// mu serializes mutations with their snapshot write.
	mu sync.Mutex
}

type Option func(*Handle)

// WithTracer records every statement through r.
func WithTracer(r *trace.Recorder) Option {
	return func(h *Handle) { h.tracer = r }
}

func New(path string, opts ...Option) *Handle {
	h := &Handle{path: path}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Path returns the snapshot file location.
func (h *Handle) Path() string { return h.path }

// Open initializes the store once and returns it. Concurrent first callers share
// the same initialization; an init failure is returned to every later caller.
func (h *Handle) Open(ctx context.Context) (*sql.DB, error) {
	h.once.Do(func() {
		h.sqlDB, h.err = h.open(context.WithoutCancel(ctx))
	})
	return h.sqlDB, h.err
}

func (h *Handle) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every new connection to :memory: is a fresh empty database, so the pool
	// must hold exactly one connection for the life of the process.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	info, err := os.Stat(h.path)
	switch {
	case err == nil && info.Size() > 0:
		// The snapshot pages are copied into the connection's own memory; the
		// file is closed again once the copy finishes.
		if err := withSerializer(ctx, sqlDB, func(s serializer) error {
			return restore(s, h.path)
		}); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("loading snapshot %s: %w", h.path, err)
		}
	case err == nil, os.IsNotExist(err):
		// empty store
	default:
		sqlDB.Close()
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	return sqlDB, nil
}

// Close releases the in-memory store. Unsaved state does not exist: every
// mutation has already been written to disk.
func (h *Handle) Close() error {
	if h.sqlDB == nil {
		return nil
	}
	return h.sqlDB.Close()
}

// Query runs a read-only statement and returns every row. The connection is
// switched to query_only for the duration, so a statement that tries to write
// fails instead of diverging from the snapshot on disk.
func (h *Handle) Query(ctx context.Context, query string, args ...any) (rows []Row, err error) {
	sqlDB, err := h.Open(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { h.tracer.Record(ctx, trace.OpQuery, query, time.Since(start), err) }()

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("query_only: %w", err)
	}
	defer conn.ExecContext(context.WithoutCancel(ctx), "PRAGMA query_only = OFF")

	r, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer r.Close()
	return scanRows(r)
}

// Result describes a completed mutation.
type Result struct {
	RowsAffected  int64 `json:"rows_affected"`
	LastInsertID  int64 `json:"last_insert_id"`
	SnapshotBytes int   `json:"snapshot_bytes"`
}

// Execute runs a side-effecting statement, then rewrites the snapshot file with
// the entire store. The statement and the write happen under one lock.
func (h *Handle) Execute(ctx context.Context, stmt string, args ...any) (res Result, err error) {
	sqlDB, err := h.Open(ctx)
	if err != nil {
		return Result{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	r, err := sqlDB.ExecContext(ctx, stmt, args...)
	h.tracer.Record(ctx, trace.OpExec, stmt, time.Since(start), err)
	if err != nil {
		return Result{}, fmt.Errorf("statement failed: %w", err)
	}
	if n, e := r.RowsAffected(); e == nil {
		res.RowsAffected = n
	}
	if id, e := r.LastInsertId(); e == nil {
		res.LastInsertID = id
	}

	size, err := h.snapshot(ctx, sqlDB)
	if err != nil {
		return res, err
	}
	res.SnapshotBytes = size
	return res, nil
}

// snapshot serializes the store and replaces the backing file. Callers hold mu.
func (h *Handle) snapshot(ctx context.Context, sqlDB *sql.DB) (int, error) {
	var pages int64
	if err := sqlDB.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pages); err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}

	var data []byte
	if pages > 0 {
		if err := withSerializer(ctx, sqlDB, func(s serializer) error {
			var err error
			data, err = s.Serialize()
			return err
		}); err != nil {
			return 0, fmt.Errorf("serializing store: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(h.path), filepath.Base(h.path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), h.path); err != nil {
		return 0, fmt.Errorf("replacing snapshot: %w", err)
	}

	metrics.RecordSnapshot(len(data))
	return len(data), nil
}

func restore(s serializer, path string) error {
	b, err := s.NewRestore(path)
	if err != nil {
		return err
	}
	for {
		more, err := b.Step(-1)
		if err != nil {
			b.Finish()
			return err
		}
		if !more {
			break
		}
	}
	return b.Finish()
}

func withSerializer(ctx context.Context, sqlDB *sql.DB, fn func(serializer) error) error {
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return conn.Raw(func(driverConn any) error {
		s, ok := driverConn.(serializer)
		if !ok {
			return ErrNoSerializer
		}
		return fn(s)
	})
}

// Tables lists user tables in name order.
func (h *Handle) Tables(ctx context.Context) ([]Row, error) {
	return h.Query(ctx, `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
}

// Describe returns PRAGMA table_info for table after sanitizing the name. The
// sanitized name is quoted so keywords and names starting with a digit resolve
// as identifiers.
func (h *Handle) Describe(ctx context.Context, table string) ([]Row, error) {
	name := SanitizeIdentifier(table)
	if name == "" {
		return nil, fmt.Errorf("empty table name")
	}
	return h.Query(ctx, fmt.Sprintf(`PRAGMA table_info("%s")`, name))
}
