// Package obsmetrics exposes run counters for a classification run as
// Prometheus metrics. Serving them is optional: Handler returns the
// promhttp handler for the caller to mount, for a run long enough
// that an operator wants a liveness probe while it is still going.
package obsmetrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder tracks per-run counters for the ingest and classification stages.
type Recorder struct {
	tradesIngested  prometheus.Counter
	tradesFiltered  *prometheus.CounterVec
	batchesEmitted  *prometheus.CounterVec
	childrenEmitted *prometheus.CounterVec
	violations      *prometheus.CounterVec
	ingestErrors    *prometheus.CounterVec
	classifyLatency prometheus.Histogram
}

// New creates a Recorder registered against the default registry.
func New() *Recorder {
	return &Recorder{
		tradesIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "copytrace_trades_ingested_total",
			Help: "Total number of trade records decoded from the input stream.",
		}),
		tradesFiltered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "copytrace_trades_filtered_total",
			Help: "Total number of trades dropped by the pre-filter, by reason.",
		}, []string{"reason"}),
		batchesEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "copytrace_batches_emitted_total",
			Help: "Total number of non-empty batches emitted, by pattern kind.",
		}, []string{"kind"}),
		childrenEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "copytrace_children_emitted_total",
			Help: "Total number of (parent, child) pairs emitted, by pattern kind.",
		}, []string{"kind"}),
		violations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "copytrace_violations_total",
			Help: "Total number of Mode B same-user violations, by pattern kind.",
		}, []string{"kind"}),
		ingestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "copytrace_ingest_errors_total",
			Help: "Total number of fatal ingest errors, by kind.",
		}, []string{"kind"}),
		classifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "copytrace_classify_latency_seconds",
			Help:    "Time spent classifying one trade against all three pattern kinds.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}
}

func (r *Recorder) TradeIngested() { r.tradesIngested.Inc() }

func (r *Recorder) TradeFiltered(reason string) { r.tradesFiltered.WithLabelValues(reason).Inc() }

func (r *Recorder) BatchEmitted(kind string, children int, violations int) {
	r.batchesEmitted.WithLabelValues(kind).Inc()
	r.childrenEmitted.WithLabelValues(kind).Add(float64(children))
	if violations > 0 {
		r.violations.WithLabelValues(kind).Add(float64(violations))
	}
}

func (r *Recorder) IngestError(kind string) { r.ingestErrors.WithLabelValues(kind).Inc() }

// ClassifyLatency records how long one trade took to classify against
// all three pattern kinds.
func (r *Recorder) ClassifyLatency(d time.Duration) { r.classifyLatency.Observe(d.Seconds()) }

// Handler returns the promhttp handler for the default registry.
func Handler() http.Handler { return promhttp.Handler() }
