package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring intake health and throughput
var (
	EmailsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_emails_processed_total",
			Help: "Total number of uploaded emails processed, by outcome",
		},
		[]string{"outcome"},
	)

	EmailProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "intake_email_processing_duration_seconds",
			Help:    "Duration of the upload-to-draft pipeline",
			Buckets: prometheus.DefBuckets,
		},
	)

	OrderTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_order_transitions_total",
			Help: "Total number of order workflow transitions, by action and result",
		},
		[]string{"action", "result"},
	)

	ExportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_exports_total",
			Help: "Total number of order exports rendered, by format",
		},
		[]string{"format"},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(EmailsProcessedTotal)
	prometheus.MustRegister(EmailProcessingDuration)
	prometheus.MustRegister(OrderTransitionsTotal)
	prometheus.MustRegister(ExportsTotal)
}
