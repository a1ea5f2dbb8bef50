// Package metrics defines and registers all custom Prometheus metrics for
// the auth API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry
// at package init; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// Result label values shared by the operation counters.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultConflict = "conflict"
	ResultError    = "error"
)

// SignupsTotal counts signup attempts by outcome.
// Label:
//   - result: "success", "conflict" (email taken), or "error" (storage)
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, labelled by result.",
	},
	[]string{"result"},
)

// SigninsTotal counts signin attempts by outcome.
// Label:
//   - result: "success", "rejected" (bad credentials), or "error" (storage)
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of signin attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh attempts by outcome.
// Label:
//   - result: "success" or "rejected" (invalid token or wrong purpose)
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh-token exchanges, labelled by result.",
	},
	[]string{"result"},
)

// PasswordHashDuration measures how long a single password hash takes.
// Watch this when tuning the bcrypt cost factor.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt password hashing.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// AuditQueueDepth tracks the number of audit events waiting in each worker
// channel of the audit dispatcher.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events dropped because a worker
// channel was full. The request path never blocks on auditing.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to full worker channels.",
	},
)
