package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/agbru/pitaylor/internal/series"
)

const namespace = "pitaylor"

var runLabels = []string{"mode", "partition", "summation", "precision"}

// RunMetrics holds the collectors for one process. It uses a private
// registry so that tests and repeated runs never collide on the default one.
type RunMetrics struct {
	reg    *prometheus.Registry
	memory *MemoryCollector

	runs           *prometheus.CounterVec
	failures       *prometheus.CounterVec
	terms          prometheus.Counter
	workers        prometheus.Gauge
	runDuration    *prometheus.HistogramVec
	workerDuration *prometheus.HistogramVec
	absError       *prometheus.GaugeVec
	heapAlloc      prometheus.Gauge
	gcCycles       prometheus.Gauge
}

// NewRunMetrics creates and registers the run collectors, plus the Go
// runtime collector.
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		reg:    prometheus.NewRegistry(),
		memory: NewMemoryCollector(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed series evaluations by policy.",
		}, runLabels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_failures_total",
			Help:      "Failed series evaluations by policy.",
		}, runLabels),
		terms: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terms_total",
			Help:      "Series terms summed across all workers.",
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Number of workers used by the last run.",
		}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a series evaluation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs .. ~26s
		}, runLabels),
		workerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "duration_seconds",
			Help:      "Duration of a single worker's partial sum.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"partition"}),
		absError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "abs_error",
			Help:      "Absolute error |pi - math.Pi| of the last run per policy.",
		}, runLabels),
		heapAlloc: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Heap bytes in use after the last run.",
		}),
		gcCycles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gc_cycles",
			Help:      "Completed GC cycles after the last run.",
		}),
	}

	m.reg.MustRegister(
		m.runs, m.failures, m.terms, m.workers,
		m.runDuration, m.workerDuration, m.absError,
		m.heapAlloc, m.gcCycles,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the registry backing the collectors.
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.reg
}

// Observe records a successful run.
func (m *RunMetrics) Observe(res series.Result) {
	labels := resultLabels(res.Sequential, res.Partition, res.Summation, res.Precision)
	m.runs.With(labels).Inc()
	m.runDuration.With(labels).Observe(res.Duration.Seconds())
	m.absError.With(labels).Set(res.AbsError())
	m.terms.Add(float64(res.TotalTerms()))
	m.workers.Set(float64(len(res.Workers)))

	partition := labels["partition"]
	for _, w := range res.Workers {
		m.workerDuration.WithLabelValues(partition).Observe(w.Duration.Seconds())
	}

	snap := m.memory.Snapshot()
	m.heapAlloc.Set(float64(snap.HeapAlloc))
	m.gcCycles.Set(float64(snap.NumGC))
}

// ObserveFailure records a run that returned an error.
func (m *RunMetrics) ObserveFailure(cfg series.Config, sequential bool) {
	m.failures.With(resultLabels(sequential, cfg.Partition, cfg.Summation, cfg.Precision)).Inc()
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, atomically.
func (m *RunMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}

func resultLabels(sequential bool, p series.PartitionPolicy, s series.SummationPolicy, prec series.Precision) prometheus.Labels {
	mode, partition := "parallel", p.String()
	if sequential {
		mode, partition = "sequential", "none"
	}
	return prometheus.Labels{
		"mode":      mode,
		"partition": partition,
		"summation": s.String(),
		"precision": prec.String(),
	}
}
