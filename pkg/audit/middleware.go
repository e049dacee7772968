package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/hazyhaar/pkg/kit"
)

// Middleware wraps an Endpoint: measures duration, captures the request and
// the error message, and writes one Entry. The endpoint's response and error
// are returned unchanged whatever happens to the log write.
func Middleware(logger Logger, tool string) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()

			resp, err := next(ctx, request)

			entry := &Entry{
				Timestamp:  start.UTC(),
				Tool:       tool,
				DurationMs: time.Since(start).Milliseconds(),
				Args:       request,
				Status:     StatusOK,
			}
			if err != nil {
				entry.Status = StatusError
				entry.Error = err.Error()
			}

			if logErr := logger.Log(ctx, entry); logErr != nil {
				slog.Error("call log write failed", "tool", tool, "error", logErr)
			}
			return resp, err
		}
	}
}
