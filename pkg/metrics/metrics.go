// Package metrics exposes Prometheus instrumentation for a matching
// engine deployment. Like pkg/journal and pkg/marketdata, it observes the
// core purely from the outside — through the values AddOrder/CancelOrder/
// ModifyOrder already return — and is never imported by pkg/matchcore.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry bundles the counters and gauges a running engine reports.
type Registry struct {
	OrdersAdmitted  prometheus.Counter
	OrdersRejected  prometheus.Counter
	TradesMatched   prometheus.Counter
	OrdersCancelled prometheus.Counter
	OrdersPruned    prometheus.Counter
	RestingOrders   prometheus.Gauge
}

// NewRegistry builds and registers a fresh set of collectors against reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		OrdersAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore",
			Name:      "orders_admitted_total",
			Help:      "Orders accepted by the book (rested, matched, or both).",
		}),
		OrdersRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore",
			Name:      "orders_rejected_total",
			Help:      "Orders rejected at admission (duplicate id, FAK/FOK/Market that could not proceed).",
		}),
		TradesMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore",
			Name:      "trades_matched_total",
			Help:      "Trades produced by the matching loop.",
		}),
		OrdersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore",
			Name:      "orders_cancelled_total",
			Help:      "Orders explicitly cancelled by a caller.",
		}),
		OrdersPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore",
			Name:      "orders_pruned_total",
			Help:      "GoodForDay orders cancelled by the session-close pruner.",
		}),
		RestingOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "matchcore",
			Name:      "resting_orders",
			Help:      "Current count of resting orders in the book.",
		}),
	}

	reg.MustRegister(
		r.OrdersAdmitted,
		r.OrdersRejected,
		r.TradesMatched,
		r.OrdersCancelled,
		r.OrdersPruned,
		r.RestingOrders,
	)

	return r
}
