package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	toolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolhost_tool_calls_total",
			Help: "Total number of tool calls",
		},
		[]string{"tool", "status"},
	)

	toolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toolhost_tool_call_duration_seconds",
			Help:    "Tool call duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"tool"},
	)

	dbSnapshotsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "toolhost_db_snapshots_total",
			Help: "Total number of database snapshots written to disk",
		},
	)

	dbSnapshotBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "toolhost_db_snapshot_bytes",
			Help: "Size in bytes of the last database snapshot",
		},
	)
)

// RecordToolCall records one finished tool call. status is "ok" or "error".
func RecordToolCall(tool, status string, d time.Duration) {
	toolCallsTotal.WithLabelValues(tool, status).Inc()
	toolCallDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// RecordSnapshot records a snapshot of size bytes written to disk.
func RecordSnapshot(size int) {
	dbSnapshotsTotal.Inc()
	dbSnapshotBytes.Set(float64(size))
}

// Handler returns the Prometheus metrics handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
