package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/user/snap-site/internal/entity"
)

// Metrics holds all Prometheus metrics for one run. Each instance owns its
// registry so runs and tests never collide on registration.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	InputsResolved      prometheus.Gauge
	CapturesTotal       *prometheus.CounterVec
	NavigateDuration    prometheus.Histogram
	ScreenshotDuration  prometheus.Histogram
	OutputBytes         prometheus.Histogram
	RenderedHeight      prometheus.Histogram
}

// New registers the metric set on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapsite_http_requests_total",
				Help: "Total number of HTTP requests to the status server.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "snapsite_http_request_duration_seconds",
				Help:    "Duration of HTTP requests to the status server.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		InputsResolved: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "snapsite_inputs_resolved",
				Help: "Number of pages selected for capture in this run.",
			},
		),
		CapturesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapsite_captures_total",
				Help: "Total number of capture attempts.",
			},
			[]string{"status", "error_type"}, // status: success, failure
		),
		NavigateDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "snapsite_navigate_duration_seconds",
				Help:    "Time until the page load event fired.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),
		ScreenshotDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "snapsite_screenshot_duration_seconds",
				Help:    "Time to capture and write a full page screenshot.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),
		OutputBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "snapsite_output_bytes",
				Help:    "Size of written PNG files.",
				Buckets: prometheus.ExponentialBuckets(16*1024, 4, 8),
			},
		),
		RenderedHeight: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "snapsite_rendered_height_pixels",
				Help:    "document.body.clientHeight of captured pages.",
				Buckets: prometheus.ExponentialBuckets(300, 2, 8),
			},
		),
	}
}

// ObserveCapture records a successful capture.
func (m *Metrics) ObserveCapture(r entity.CaptureResult) {
	m.CapturesTotal.WithLabelValues("success", "").Inc()
	m.NavigateDuration.Observe(r.NavigateDuration.Seconds())
	m.ScreenshotDuration.Observe(r.ScreenshotDuration.Seconds())
	m.OutputBytes.Observe(float64(r.OutputFileSizeBytes))
	m.RenderedHeight.Observe(float64(r.RenderedHeightPx))
}

// IncFailure records a failed capture attempt.
func (m *Metrics) IncFailure(errorType string) {
	m.CapturesTotal.WithLabelValues("failure", errorType).Inc()
}

// WriteTextfile writes the current state of the registry in the node_exporter
// textfile collector format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
