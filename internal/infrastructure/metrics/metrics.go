package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Settlement metrics
	SettlementsTotal  *prometheus.CounterVec
	SettlementRetries *prometheus.CounterVec
	SettlementAmount  prometheus.Histogram

	// Account metrics
	AccountsCreated prometheus.Counter

	// Ticket metrics
	TicketsIssued prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Settlement metrics
		SettlementsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farebox_settlements_total",
				Help: "Total settlement operations by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		SettlementRetries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farebox_settlement_retries_total",
				Help: "Total settlement retries caused by balance contention",
			},
			[]string{"kind"},
		),
		SettlementAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "farebox_settlement_amount",
			Help:    "Settled amounts in minor units",
			Buckets: []float64{10, 100, 500, 1000, 5000, 10000, 100000},
		}),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "farebox_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		// Ticket metrics
		TicketsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "farebox_tickets_issued_total",
			Help: "Total number of one-off tickets issued",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farebox_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "farebox_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// RecordSettlement counts a completed settlement attempt by outcome.
func (m *Metrics) RecordSettlement(kind, outcome string) {
	m.SettlementsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordRetry counts a settlement retry after a balance conflict.
func (m *Metrics) RecordRetry(kind string) {
	m.SettlementRetries.WithLabelValues(kind).Inc()
}
