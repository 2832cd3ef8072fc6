// Package metrics defines and registers all custom Prometheus metrics for the
// property API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry through
// promauto when the package is imported.
package metrics

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "property"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts authenticate calls by result.
// Label:
//   - outcome: "login", "provisioned", "wrong_password", "locked_out", "unknown_user", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AuthDuration measures authenticate latency, dominated by bcrypt.
var AuthDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_duration_seconds",
		Help:      "Duration of authentication requests including password hashing.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1},
	},
)

// UsersCreatedTotal counts new accounts.
// Label:
//   - source: "provisioned" (first sign-in) or "registered" (explicit)
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created, by source.",
	},
	[]string{"source"},
)

// AuditEventsDroppedTotal counts audit events discarded because the queue was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of authentication audit events dropped on a full queue.",
	},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// TimeEntriesTotal counts clock actions.
// Labels:
//   - action: "clock_in" or "clock_out"
//   - offsite: "true" or "false"
var TimeEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "time_entries_total",
		Help:      "Total number of clock-in and clock-out actions.",
	},
	[]string{"action", "offsite"},
)

// LedgerTransactionsTotal counts recorded ledger lines.
// Label:
//   - side: "debit" or "credit"
var LedgerTransactionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_transactions_total",
		Help:      "Total number of ledger transactions recorded, by side.",
	},
	[]string{"side"},
)

// RegisterAuditQueueDepth exposes the current audit backlog through fn.
// Call it at most once.
func RegisterAuditQueueDepth(fn func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of authentication audit events waiting to be persisted.",
	}, func() float64 { return float64(fn()) })
}

// ── HTTP metrics ──────────────────────────────────────────────────────────────

var (
	httpOnce       sync.Once
	httpMiddleware echo.MiddlewareFunc
)

// HTTPMiddleware returns the echoprometheus request instrumentation
// (property_requests_total, property_request_duration_seconds and the size
// histograms). Collectors register with the default registry on first use;
// every later router shares them.
func HTTPMiddleware() echo.MiddlewareFunc {
	httpOnce.Do(func() {
		httpMiddleware = echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:                 namespace,
			DoNotUseRequestPathFor404: true,
			AfterNext:                 renderError,
			StatusCodeResolver:        sentStatus,
		})
	})
	return httpMiddleware
}

// renderError runs the error handler before the status is read so that
// domain errors are labelled with the code actually sent.
func renderError(c echo.Context, err error) {
	if err != nil {
		c.Error(err)
	}
}

func sentStatus(c echo.Context, _ error) int {
	return c.Response().Status
}
