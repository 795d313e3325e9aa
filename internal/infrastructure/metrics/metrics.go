package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the business-level Prometheus metrics. HTTP request metrics
// live in the HTTP middleware.
type Metrics struct {
	// Funding ledger metrics
	FundingsCreated prometheus.Counter
	FundingsAmended prometheus.Counter
	FundingDuration prometheus.Histogram
	FundingAmount   prometheus.Histogram
	FundingErrors   *prometheus.CounterVec

	// Merchant metrics
	MerchantsCreated prometheus.Counter
	MerchantBalance  *prometheus.GaugeVec

	// Consistency metrics
	LedgerDrift      *prometheus.GaugeVec
	DriftChecks      prometheus.Counter
	DriftedMerchants prometheus.Gauge

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Outbox metrics
	EventsPublished prometheus.Counter

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all business metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		FundingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendicore_fundings_created_total",
			Help: "Total number of funding entries created",
		}),
		FundingsAmended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendicore_fundings_amended_total",
			Help: "Total number of funding entries amended",
		}),
		FundingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vendicore_funding_duration_seconds",
			Help:    "Duration of funding operations",
			Buckets: prometheus.DefBuckets,
		}),
		FundingAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vendicore_funding_amount",
			Help:    "Funding entry amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		FundingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendicore_funding_errors_total",
				Help: "Total number of funding errors by type",
			},
			[]string{"error_type"},
		),

		MerchantsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendicore_merchants_created_total",
			Help: "Total number of merchants created",
		}),
		MerchantBalance: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vendicore_merchant_balance",
				Help: "Current merchant live balance",
			},
			[]string{"merchant_id"},
		),

		LedgerDrift: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vendicore_ledger_drift",
				Help: "Difference between merchant live balance and summed funding amounts",
			},
			[]string{"merchant_id"},
		),
		DriftChecks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendicore_drift_checks_total",
			Help: "Total number of consistency checks run",
		}),
		DriftedMerchants: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "vendicore_drifted_merchants",
			Help: "Merchants found inconsistent by the last report",
		}),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendicore_auth_attempts_total",
				Help: "Total authentication attempts by outcome",
			},
			[]string{"outcome"},
		),

		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendicore_events_published_total",
			Help: "Total outbox events published",
		}),

		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendicore_audit_logs_created_total",
				Help: "Total audit logs created by action",
			},
			[]string{"action"},
		),
	}
}
