package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics the bake pipeline and harness
// expose on /metrics (spec's telemetry ambient stack). Retargeted from
// the teacher's request/index/cache metrics to the distance-field
// domain: meshes baked, bricks produced per mip, brick-task latency, and
// degenerate-triangle diagnostics.
type Metrics struct {
	MeshesBaked  prometheus.Counter
	MeshesFailed *prometheus.CounterVec // labeled by failure reason
	BakeDuration prometheus.Histogram

	BricksGenerated  *prometheus.CounterVec // labeled by mip index
	BricksRetained   *prometheus.CounterVec // labeled by mip index (non-empty only)
	BrickTaskLatency prometheus.Histogram

	DegenerateTriangles prometheus.Counter

	OutputBytes *prometheus.GaugeVec // labeled by buffer (always_loaded, streamable)
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		MeshesBaked: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sdfbake_meshes_baked_total",
				Help: "Total number of meshes successfully baked into a VolumeData",
			},
		),
		MeshesFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sdfbake_meshes_failed_total",
				Help: "Total number of bake attempts that failed, by reason",
			},
			[]string{"reason"},
		),
		BakeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sdfbake_bake_duration_seconds",
				Help:    "Wall-clock duration of a full Generate call",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		BricksGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sdfbake_bricks_generated_total",
				Help: "Total number of brick tasks executed, by mip",
			},
			[]string{"mip"},
		),
		BricksRetained: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sdfbake_bricks_retained_total",
				Help: "Total number of non-empty bricks retained after compaction, by mip",
			},
			[]string{"mip"},
		),
		BrickTaskLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sdfbake_brick_task_latency_seconds",
				Help:    "Latency of a single brick task's Execute call",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25},
			},
		),
		DegenerateTriangles: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sdfbake_degenerate_triangles_total",
				Help: "Total number of closest-point-on-triangle calls that hit the impossible Voronoi mask",
			},
		),
		OutputBytes: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sdfbake_output_bytes",
				Help: "Size in bytes of the most recent VolumeData's output buffers, by buffer name",
			},
			[]string{"buffer"},
		),
	}
}

// RecordBake records a completed bake attempt.
func (m *Metrics) RecordBake(duration time.Duration, err error) {
	m.BakeDuration.Observe(duration.Seconds())
	if err != nil {
		m.MeshesFailed.WithLabelValues(classifyBakeError(err)).Inc()
		return
	}
	m.MeshesBaked.Inc()
}

func classifyBakeError(err error) string {
	if err == nil {
		return "none"
	}
	return "acceleration_structure"
}

// RecordMip records the brick counts for one mip level after compaction.
func (m *Metrics) RecordMip(mip int, generated, retained int) {
	label := mipLabel(mip)
	m.BricksGenerated.WithLabelValues(label).Add(float64(generated))
	m.BricksRetained.WithLabelValues(label).Add(float64(retained))
}

// RecordBrickTask records one brick task's execution latency.
func (m *Metrics) RecordBrickTask(duration time.Duration) {
	m.BrickTaskLatency.Observe(duration.Seconds())
}

// RecordDegenerateTriangle increments the degenerate-triangle counter.
func (m *Metrics) RecordDegenerateTriangle() {
	m.DegenerateTriangles.Inc()
}

// RecordOutputBytes records the final size of the two output buffers.
func (m *Metrics) RecordOutputBytes(alwaysLoaded, streamable int) {
	m.OutputBytes.WithLabelValues("always_loaded").Set(float64(alwaysLoaded))
	m.OutputBytes.WithLabelValues("streamable").Set(float64(streamable))
}

func mipLabel(mip int) string {
	switch mip {
	case 0:
		return "0"
	case 1:
		return "1"
	case 2:
		return "2"
	default:
		return "n"
	}
}
