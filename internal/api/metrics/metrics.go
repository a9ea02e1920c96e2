// Package metrics defines the custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names,
// labels, and help strings; promauto registers everything with the
// default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success", "invalid_credentials", "suspended", "throttled", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SignupsTotal counts account registrations by requested role.
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created via signup, by role.",
	},
	[]string{"role"},
)

// AuthRejectionsTotal counts requests rejected before reaching a handler.
// Label:
//   - reason: "unauthenticated" (missing/invalid/expired session)
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the route guard.",
	},
	[]string{"reason"},
)

// AuthzDenialsTotal counts authorization denials for authenticated callers.
// Label:
//   - rule: "role" (coarse RBAC gate) or "ownership" (resource-level check)
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of forbidden responses, by rule kind.",
	},
	[]string{"rule"},
)

// LoginDuration measures end-to-end login handling. The bcrypt cost
// factor targets ~100ms per verification, which dominates this
// histogram; a drift in the upper buckets means the cost needs retuning.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login requests from receipt to response.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
)
