package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	MailSentCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_sent_count",
			Help: "Total number of mails sent",
		},
		[]string{"kind", "status"}, // kind: verification, password_reset
	)

	ProjectMutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_mutation_count",
			Help: "Total number of project and milestone mutations",
		},
		[]string{"operation"},
	)
)

// RecordHTTPRequestDuration records the latency of one handled request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementMailSent counts an outgoing mail attempt by kind and outcome.
func IncrementMailSent(kind, status string) {
	MailSentCount.WithLabelValues(kind, status).Inc()
}

// IncrementProjectMutation counts a successful write operation.
func IncrementProjectMutation(operation string) {
	ProjectMutationCount.WithLabelValues(operation).Inc()
}
