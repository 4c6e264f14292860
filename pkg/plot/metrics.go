package plot

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// renderMetrics instruments one chart. Each chart owns its registry so
// several charts can live in one process.
type renderMetrics struct {
	registry *prometheus.Registry
	renders  prometheus.Counter
	overlays *prometheus.CounterVec // labels: kind, status
	points   *prometheus.CounterVec // labels: kind
	duration prometheus.Histogram
}

func newRenderMetrics(clients func() float64) *renderMetrics {
	m := &renderMetrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plotkit_renders_total",
			Help: "Charts rendered",
		}),
		overlays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plotkit_overlays_total",
			Help: "Overlays rendered, by kind and outcome",
		}, []string{"kind", "status"}),
		points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plotkit_points_total",
			Help: "Series points produced, by overlay kind",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "plotkit_render_duration_seconds",
			Help:    "Time to render a whole chart",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}

	m.registry.MustRegister(
		m.renders,
		m.overlays,
		m.points,
		m.duration,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "plotkit_websocket_clients",
			Help: "Browsers waiting for render notifications",
		}, clients),
	)

	return m
}

func (m *renderMetrics) observe(summary OverlaySummary) {
	kind := summary.Kind.String()
	m.overlays.WithLabelValues(kind, summary.Status).Inc()
	m.points.WithLabelValues(kind).Add(float64(summary.Points))
}

func (m *renderMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
