package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "disaster_map"

// Metrics holds the Prometheus counters, histograms, and gauges for loading
// and rendering.
type Metrics struct {
	// Loading metrics.
	RowsRead      *prometheus.CounterVec   // labels: source
	RowsRejected  *prometheus.CounterVec   // labels: source
	LoadFailures  *prometheus.CounterVec   // labels: source
	EventsLoaded  *prometheus.GaugeVec     // labels: category
	LoadDuration  *prometheus.HistogramVec // labels: category
	LoaderRunning prometheus.Gauge

	// Rendering metrics.
	MarkersDrawn prometheus.Gauge
	Redraws      prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	prometheus.NewRegistry().MustRegister(m.collectors()...)
	return m
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Rows read from each snapshot file.",
		}, []string{"source"}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_rejected_total",
			Help:      "Rows dropped because severity or coordinates did not parse.",
		}, []string{"source"}),
		LoadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_failures_total",
			Help:      "Snapshot files that could not be retrieved.",
		}, []string{"source"}),
		EventsLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events_loaded",
			Help:      "Normalized events held per category.",
		}, []string{"category"}),
		LoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time from load start until a category settled.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}, []string{"category"}),
		LoaderRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loader_running",
			Help:      "1 while snapshot files are loading, 0 otherwise.",
		}),
		MarkersDrawn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "markers_drawn",
			Help:      "Markers currently on the map.",
		}),
		Redraws: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redraws_total",
			Help:      "Marker set rebuilds after a year or category change.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RowsRead,
		m.RowsRejected,
		m.LoadFailures,
		m.EventsLoaded,
		m.LoadDuration,
		m.LoaderRunning,
		m.MarkersDrawn,
		m.Redraws,
	}
}
