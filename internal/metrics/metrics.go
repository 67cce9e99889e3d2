package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the map service. Each instance
// owns its registry so tests can build as many as they like.
type Metrics struct {
	registry     *prometheus.Registry
	ViewsCreated *prometheus.CounterVec
	ViewsClosed  prometheus.Counter
	Clicks       *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		ViewsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lawmap_views_created_total",
			Help: "Total number of map views created, by mode",
		}, []string{"mode"}),
		ViewsClosed: factory.NewCounter(prometheus.CounterOpts{
			Name: "lawmap_views_closed_total",
			Help: "Total number of map views torn down or expired",
		}),
		Clicks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lawmap_clicks_total",
			Help: "Selection transitions, by mode, action and outcome",
		}, []string{"mode", "action", "outcome"}),
	}
}

// TrackActiveViews exposes a gauge backed by fn.
func (m *Metrics) TrackActiveViews(fn func() float64) {
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "lawmap_views_active",
		Help: "Number of live map views",
	}, fn)
}

func (m *Metrics) IncrementViewsCreated(mode string) {
	m.ViewsCreated.WithLabelValues(mode).Inc()
}

func (m *Metrics) IncrementViewsClosed() {
	m.ViewsClosed.Inc()
}

func (m *Metrics) ObserveClick(mode, action, outcome string) {
	m.Clicks.WithLabelValues(mode, action, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
