package metrics

import (
	"context"
	"time"

	"github.com/hazyhaar/pkg/kit"
)

// Middleware counts and times calls to a tool endpoint.
func Middleware(tool string) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			status := "ok"
			if err != nil {
				status = "error"
			}
			RecordToolCall(tool, status, time.Since(start))
			return resp, err
		}
	}
}
