package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level Prometheus collectors. All
// collectors are registered on the default registry and exposed via
// the /metrics endpoint.
type Metrics struct {
	DocumentsParsed  prometheus.Counter
	ParseFailures    prometheus.Counter
	ReportsGenerated *prometheus.CounterVec
	ExportFailures   *prometheus.CounterVec
	ReportDuration   prometheus.Histogram
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// NewMetrics registers and returns the application collectors.
// Call once at startup; duplicate registration panics.
func NewMetrics() *Metrics {
	return &Metrics{
		DocumentsParsed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_documents_parsed_total",
			Help: "Total number of attendance documents parsed successfully.",
		}),
		ParseFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_parse_failures_total",
			Help: "Total number of attendance documents skipped due to parse errors.",
		}),
		ReportsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_reports_generated_total",
			Help: "Total number of report generation runs, by scope.",
		}, []string{"scope"}),
		ExportFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_export_failures_total",
			Help: "Total number of failed export attempts, by format.",
		}, []string{"format"}),
		ReportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rollcall_report_duration_seconds",
			Help:    "Duration of end-to-end report generation runs.",
			Buckets: prometheus.DefBuckets,
		}),
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_http_requests_total",
			Help: "Total number of HTTP requests, by method, path and status.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rollcall_http_request_duration_seconds",
			Help:    "Duration of HTTP requests, by method and path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}
