package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Registry metrics
	RegistrationsTotal *prometheus.CounterVec
	AccountsLinked     *prometheus.CounterVec
	BalanceOperations  *prometheus.CounterVec
	InsufficientFunds  prometheus.Counter
	VpaVerifications   *prometheus.CounterVec
	VpaCacheHits       *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics against the given registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := prometheus.WrapRegistererWith(nil, reg)

	m := &Metrics{
		RegistrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registrations_total",
				Help:      "Total number of entity registrations by type and status",
			},
			[]string{"entity", "status"},
		),
		AccountsLinked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "accounts_linked_total",
				Help:      "Total number of bank accounts linked by account type",
			},
			[]string{"account_type"},
		),
		BalanceOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "balance_operations_total",
				Help:      "Total number of credit and debit operations by status",
			},
			[]string{"operation", "status"},
		),
		InsufficientFunds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "insufficient_funds_total",
				Help:      "Total number of debits rejected for insufficient balance",
			},
		),
		VpaVerifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "vpa_verifications_total",
				Help:      "Total number of VPA verification lookups by result",
			},
			[]string{"result"},
		),
		VpaCacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "vpa_cache_requests_total",
				Help:      "Total number of VPA verification cache lookups by outcome",
			},
			[]string{"outcome"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	// Register all collectors
	factory.MustRegister(
		m.RegistrationsTotal,
		m.AccountsLinked,
		m.BalanceOperations,
		m.InsufficientFunds,
		m.VpaVerifications,
		m.VpaCacheHits,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}
