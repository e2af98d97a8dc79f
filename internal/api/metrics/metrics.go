// Package metrics defines the custom Prometheus metrics of the taskboard
// backend. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskboard"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendCallsTotal counts calls to the task store.
// Labels:
//   - operation: list, insert, update or delete
//   - result: "ok" or "error"
var BackendCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_calls_total",
		Help:      "Total number of task store calls, by operation and result.",
	},
	[]string{"operation", "result"},
)

// BackendCallDuration measures task store round trips.
var BackendCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_call_duration_seconds",
		Help:      "Duration of task store calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts identity changes of the session module.
// Label:
//   - to: "authenticated" or "anonymous"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of identity changes, by resulting state.",
	},
	[]string{"to"},
)

// TasksCached tracks the size of the local task cache.
var TasksCached = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tasks_cached",
		Help:      "Number of tasks currently held in the local cache.",
	},
)
