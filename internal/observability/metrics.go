package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the map service.
type Metrics struct {
	// Feed metrics.
	FeedFetches       *prometheus.CounterVec // labels: outcome={success,fetch_error,malformed}
	FeedFetchDuration prometheus.Histogram

	// Render cycle metrics.
	Renders          *prometheus.CounterVec // labels: outcome={success,error}
	RenderDuration   prometheus.Histogram
	EventsRendered   prometheus.Counter
	LastRenderEvents prometheus.Gauge
	PlatesLoaded     prometheus.Gauge

	// Marker publishing metrics.
	MarkersPublished prometheus.Counter
	PublishErrors    prometheus.Counter

	// Base layer provider: 1 when Mapbox tiles are in use, 0 for the defaults.
	MapboxTilesEnabled prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "feed_fetches_total",
			Help:      "Earthquake feed fetches by outcome.",
		}, []string{"outcome"}),
		FeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quakemap",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of a single earthquake feed fetch and decode.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "renders_total",
			Help:      "Map render cycles by outcome.",
		}, []string{"outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quakemap",
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete fetch-style-assemble render cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EventsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "events_rendered_total",
			Help:      "Total event markers produced across all renders.",
		}),
		LastRenderEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quakemap",
			Name:      "last_render_events",
			Help:      "Number of event markers in the most recent successful render.",
		}),
		PlatesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quakemap",
			Name:      "plate_boundaries_loaded",
			Help:      "Number of plate boundary features loaded at startup.",
		}),
		MarkersPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "markers_published_total",
			Help:      "Total marker messages written to the marker topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "publish_errors_total",
			Help:      "Total failed marker publish attempts.",
		}),
		MapboxTilesEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quakemap",
			Name:      "mapbox_tiles_enabled",
			Help:      "1 when base layers use Mapbox tiles, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.FeedFetches,
		m.FeedFetchDuration,
		m.Renders,
		m.RenderDuration,
		m.EventsRendered,
		m.LastRenderEvents,
		m.PlatesLoaded,
		m.MarkersPublished,
		m.PublishErrors,
		m.MapboxTilesEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FeedFetches:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quakemap", Name: "feed_fetches_total"}, []string{"outcome"}),
		FeedFetchDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quakemap", Name: "feed_fetch_duration_seconds"}),
		Renders:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quakemap", Name: "renders_total"}, []string{"outcome"}),
		RenderDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quakemap", Name: "render_duration_seconds"}),
		EventsRendered:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quakemap", Name: "events_rendered_total"}),
		LastRenderEvents:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quakemap", Name: "last_render_events"}),
		PlatesLoaded:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quakemap", Name: "plate_boundaries_loaded"}),
		MarkersPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quakemap", Name: "markers_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quakemap", Name: "publish_errors_total"}),
		MapboxTilesEnabled: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quakemap", Name: "mapbox_tiles_enabled"}),
	}
}
