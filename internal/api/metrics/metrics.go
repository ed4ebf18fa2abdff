// Package metrics defines and registers all custom Prometheus metrics for
// the order management API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "orders"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts orders successfully created.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of orders created.",
	},
)

// OrdersCancelledTotal counts orders cancelled at the owner's request.
var OrdersCancelledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cancelled_total",
		Help:      "Total number of orders cancelled by their owner.",
	},
)

// ── Sweep metrics ─────────────────────────────────────────────────────────────

// SweepAdvancedTotal counts orders advanced by the background sweep
// (both pending -> processing and processing -> completed).
var SweepAdvancedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_advanced_total",
		Help:      "Total number of orders advanced by the background sweep.",
	},
)

// SweepErrorsTotal counts sweeps that failed with a storage error.
var SweepErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_errors_total",
		Help:      "Total number of background sweeps that failed.",
	},
)

// SweepDuration measures how long one full sweep takes.
var SweepDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sweep_duration_seconds",
		Help:      "Duration of one background sweep over all eligible orders.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful user registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	},
)
