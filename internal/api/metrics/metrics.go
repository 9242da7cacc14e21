// Package metrics defines and registers all custom Prometheus metrics for the
// StudentVue gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto; the /metrics route serves that registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "svue"

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts PXP calls made to district endpoints.
// Labels:
//   - method: the PXP method name (e.g. "Gradebook")
//   - outcome: "ok", "rt_error", "maintenance", "network", "status", "parse", "version_key"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of StudentVue web service calls, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// UpstreamDuration measures the round trip of a single PXP call.
var UpstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_duration_seconds",
		Help:      "Duration of StudentVue web service calls.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	},
	[]string{"method"},
)

// ── Gateway metrics ───────────────────────────────────────────────────────────

// CacheLookupsTotal counts response cache decisions.
// Label:
//   - result: "hit", "miss" or "error"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of response cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts Set-Token headers emitted after a session refresh.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of refreshed bearer tokens handed back to callers.",
	},
)

// TokenRejectionsTotal counts bearer tokens that failed to authenticate.
// Label:
//   - reason: "decrypt", "expired", "malformed", "empty"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of rejected Authorization headers, by reason.",
	},
	[]string{"reason"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// UsageQueueDepth tracks pending usage events per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var UsageQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "usage_queue_depth",
		Help:      "Current number of usage events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// UsageDroppedTotal counts usage events discarded because a worker was full.
var UsageDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "usage_dropped_total",
		Help:      "Total number of usage events dropped due to a full queue.",
	},
)

// UsagePersistErrorsTotal counts usage events that failed to persist.
var UsagePersistErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "usage_persist_errors_total",
		Help:      "Total number of usage events that could not be written.",
	},
)
