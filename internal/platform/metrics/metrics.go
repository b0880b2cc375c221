package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "credit_tracker"

// Metrics holds every collector the service exports. Each instance owns its registry,
// so tests can build a fresh one.
type Metrics struct {
	registry *prometheus.Registry

	HTTPInFlight        prometheus.Gauge
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	IngestedRows    *prometheus.CounterVec // label: outcome (processed|skipped)
	IngestedUploads *prometheus.CounterVec // label: result (ok|rejected)

	ReportCacheLookups *prometheus.CounterVec // label: result (hit|miss)

	OutstandingAccounts *prometheus.GaugeVec // label: status
	OutstandingTotal    prometheus.Gauge
}

// New creates the collectors and registers them, plus the Go and process collectors,
// in a new registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		IngestedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingested_rows_total",
			Help:      "Workbook rows seen by ingestion.",
		}, []string{"outcome"}),
		IngestedUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingested_uploads_total",
			Help:      "Workbook uploads by result.",
		}, []string{"result"}),
		ReportCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_lookups_total",
			Help:      "Report cache lookups by result.",
		}, []string{"result"}),
		OutstandingAccounts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outstanding_accounts",
			Help:      "Customers with a positive balance by aging status, as of the last aging run.",
		}, []string{"status"}),
		OutstandingTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outstanding_amount",
			Help:      "Sum of positive customer balances as of the last aging run.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPInFlight,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.IngestedRows,
		m.IngestedUploads,
		m.ReportCacheLookups,
		m.OutstandingAccounts,
		m.OutstandingTotal,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CacheHit and CacheMiss record report cache lookups. Both are nil-safe.
func (m *Metrics) CacheHit() {
	if m != nil {
		m.ReportCacheLookups.WithLabelValues("hit").Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.ReportCacheLookups.WithLabelValues("miss").Inc()
	}
}

// ObserveIngest records the outcome of one upload. Nil-safe.
func (m *Metrics) ObserveIngest(processed, skipped int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.IngestedUploads.WithLabelValues("rejected").Inc()
		return
	}
	m.IngestedUploads.WithLabelValues("ok").Inc()
	m.IngestedRows.WithLabelValues("processed").Add(float64(processed))
	m.IngestedRows.WithLabelValues("skipped").Add(float64(skipped))
}
