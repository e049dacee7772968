package audit

import (
	"context"
	"time"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Entry records a single tool call.
type Entry struct {
	CallID     string    `json:"call_id"`
	Timestamp  time.Time `json:"ts"`
	Tool       string    `json:"tool"`
	Status     string    `json:"status"` // "ok" or "error"
	DurationMs int64     `json:"duration_ms"`
	Args       any       `json:"args"`
	Error      string    `json:"error,omitempty"`
}

// Logger writes call entries to a sink.
type Logger interface {
	Log(ctx context.Context, entry *Entry) error
}
