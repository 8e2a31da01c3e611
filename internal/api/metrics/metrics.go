// Package metrics defines and registers all custom Prometheus metrics for
// the auth service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authservice"

// LoginsTotal counts credential authentication attempts.
// Label:
//   - result: "success", "failure", or "disabled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of credential authentication attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts signed tokens handed out.
// Label:
//   - kind: "user_access", "user_refresh", or "service_access"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by token kind.",
	},
	[]string{"kind"},
)

// TokenRejectionsTotal counts bearer tokens the middleware refused.
// Label:
//   - reason: "missing", "expired", "invalid", "stale_subject", or "disabled"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of bearer tokens rejected by the authentication middleware.",
	},
	[]string{"reason"},
)

// PolicyDenialsTotal counts authorization engine denials.
// Label:
//   - path: the request path whose operation was denied
var PolicyDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_denials_total",
		Help:      "Total number of operations denied by the authorization policy engine.",
	},
	[]string{"path"},
)

// OutboundEventsTotal counts fire-and-forget side effects by outcome.
// Labels:
//   - kind: event kind (e.g. "password_reset_email")
//   - result: "delivered", "failed", or "dropped" (rejected at enqueue)
var OutboundEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbound_events_total",
		Help:      "Total number of outbound email/telemetry events, by kind and result.",
	},
	[]string{"kind", "result"},
)

// OutboundQueueDepth tracks pending events per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var OutboundQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "outbound_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
