// Package stats exposes the Prometheus collectors tracking the trade
// lifecycle and the HTTP interface traffic.
package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// TradesCreated counts trades registered since startup.
	TradesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "escrowd",
		Name:      "trades_created_total",
		Help:      "Number of trades created.",
	})
	// TradesExecuted counts trades that reached the Executed state.
	TradesExecuted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "escrowd",
		Name:      "trades_executed_total",
		Help:      "Number of trades executed.",
	})
	// TradesCancelled counts trades that reached the Cancelled state.
	TradesCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "escrowd",
		Name:      "trades_cancelled_total",
		Help:      "Number of trades cancelled.",
	})
	// AssetsDeposited counts single asset deposits taken into custody.
	AssetsDeposited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "escrowd",
		Name:      "assets_deposited_total",
		Help:      "Number of assets deposited into custody.",
	})
	// AssetsReclaimed counts assets returned by reclaim operations.
	AssetsReclaimed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "escrowd",
		Name:      "assets_reclaimed_total",
		Help:      "Number of assets reclaimed by their depositors.",
	})
	// FeesCollected accumulates the fee amounts collected at first deposit.
	FeesCollected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "escrowd",
		Name:      "fees_collected_total",
		Help:      "Total fee amount collected.",
	})
	// HTTPRequests counts requests served by the HTTP interface.
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escrowd",
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests served, by route and status.",
	}, []string{"route", "status"})
)

func init() {
	prometheus.MustRegister(
		TradesCreated, TradesExecuted, TradesCancelled,
		AssetsDeposited, AssetsReclaimed, FeesCollected, HTTPRequests,
	)
}
