// CLAUDE:SUMMARY HTTP surface — health, server identity, SSE session endpoints and Prometheus metrics on one ServeMux
package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// Endpoint paths.
const (
	PathSSE     = "/sse"
	PathMessage = "/message"
	PathHealth  = "/health"
	PathMetrics = "/metrics"
)

// API serves the HTTP side of the tool server.
type API struct {
	name         string
	version      string
	analysisRoot string
	sse          http.Handler
	message      http.Handler
	metrics      http.Handler
	limiter      *RateLimiter
	now          func() time.Time
}

// Option configures an API.
type Option func(*API)

// WithMetrics exposes h on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(a *API) { a.metrics = h }
}

// WithMessageRateLimit limits POST /message to perMinute requests per client
// IP. Zero or less disables the limit.
func WithMessageRateLimit(perMinute int) Option {
	return func(a *API) {
		if perMinute > 0 {
			a.limiter = NewRateLimiter(perMinute, time.Minute)
		}
	}
}

// WithAnalysisRoot reports root in the server identity document.
func WithAnalysisRoot(root string) Option {
	return func(a *API) { a.analysisRoot = root }
}

// New creates the API. sse opens a session stream; message accepts the
// client's JSON-RPC posts for a session.
func New(name, version string, sse, message http.Handler, opts ...Option) *API {
	a := &API{
		name:    name,
		version: version,
		sse:     sse,
		message: message,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+PathHealth, a.handleHealth)
	mux.HandleFunc("GET /{$}", a.handleRoot)

	// MCP sessions
	mux.Handle("GET "+PathSSE, a.sse)
	mux.Handle("POST "+PathMessage, RateLimitMiddleware(a.limiter, a.message))

	if a.metrics != nil {
		mux.Handle("GET "+PathMetrics, a.metrics)
	}
}

// Handler returns the full middleware-wrapped handler.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	a.RegisterRoutes(mux)
	return CORS(SecurityHeaders(mux))
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": a.now().UTC().Format(time.RFC3339Nano),
	})
}

type identity struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Env       map[string]string `json:"env,omitempty"`
}

func (a *API) handleRoot(w http.ResponseWriter, r *http.Request) {
	doc := identity{
		Name:    a.name,
		Version: a.version,
		Endpoints: map[string]string{
			"sse":     PathSSE,
			"message": PathMessage,
			"health":  PathHealth,
		},
	}
	if a.metrics != nil {
		doc.Endpoints["metrics"] = PathMetrics
	}
	if a.analysisRoot != "" {
		doc.Env = map[string]string{"analysis_root": a.analysisRoot}
	}
	jsonResp(w, http.StatusOK, doc)
}

func jsonResp(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
