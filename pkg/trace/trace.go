// Package trace records SQL statements run against the embedded store.
//
// Traces go to slog only. They are never written into the traced database itself,
// since that store is user-visible through the table listing tools.
//
// Usage:
//
//	rec := trace.New(slog.Default(), 100*time.Millisecond)
//	start := time.Now()
//	_, err := db.ExecContext(ctx, q)
//	rec.Record(ctx, trace.OpExec, q, time.Since(start), err)
package trace

import (
	"context"
	"log/slog"
	"time"
)

const (
	OpQuery = "Query"
	OpExec  = "Exec"
)

// DefaultSlowThreshold is the duration above which a statement is logged at Warn.
const DefaultSlowThreshold = 100 * time.Millisecond

// maxQueryLen caps how much statement text ends up in a log line.
const maxQueryLen = 500

// Recorder logs SQL operations with timing and optional error.
type Recorder struct {
	logger *slog.Logger
	slow   time.Duration
}

func New(logger *slog.Logger, slow time.Duration) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	if slow <= 0 {
		slow = DefaultSlowThreshold
	}
	return &Recorder{logger: logger, slow: slow}
}

// Record logs one statement. Level is Debug, Warn when slower than the
// threshold, Error when err is non-nil. A nil Recorder is a no-op.
func (r *Recorder) Record(ctx context.Context, op, query string, d time.Duration, err error) {
	if r == nil {
		return
	}

	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelError
	} else if d > r.slow {
		level = slog.LevelWarn
	}
	if !r.logger.Enabled(ctx, level) {
		return
	}

	if len(query) > maxQueryLen {
		query = query[:maxQueryLen] + "..."
	}
	attrs := []slog.Attr{
		slog.String("component", "sql"),
		slog.String("op", op),
		slog.String("query", query),
		slog.Duration("duration", d),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	r.logger.LogAttrs(ctx, level, "SQL", attrs...)
}
