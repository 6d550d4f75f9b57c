// Package metrics collects run-level measurements: Prometheus instruments
// for runs, workers and merges, process CPU time, and Go memory statistics.
package metrics

import (
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

const namespace = "threadbench"

// Recorder owns a private Prometheus registry. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry       *prometheus.Registry
	runs           *prometheus.CounterVec
	runDuration    *prometheus.HistogramVec
	workerDuration *prometheus.HistogramVec
	lockWait       *prometheus.HistogramVec
	merges         *prometheus.CounterVec
	activeWorkers  prometheus.Gauge
}

// NewRecorder creates a Recorder with its instruments and the Go runtime
// collector registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Benchmark runs by workload and outcome.",
		}, []string{"workload", "status"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a benchmark run.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		}, []string{"workload", "threads"}),
		workerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "worker_duration_seconds",
			Help:      "Time a worker spent reducing its range and merging.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 18),
		}, []string{"workload"}),
		lockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "merge_lock_wait_seconds",
			Help:      "Time spent waiting to acquire the shared result lock.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, []string{"workload"}),
		merges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merges_total",
			Help:      "Local results merged into the shared result.",
		}, []string{"workload"}),
		activeWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_workers",
			Help:      "Workers currently running.",
		}),
	}
	r.registry.MustRegister(
		r.runs, r.runDuration, r.workerDuration, r.lockWait, r.merges, r.activeWorkers,
		collectors.NewGoCollector(),
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WorkerStarted increments the active worker gauge.
func (r *Recorder) WorkerStarted() {
	if r == nil {
		return
	}
	r.activeWorkers.Inc()
}

// WorkerFinished decrements the active worker gauge and observes elapsed.
func (r *Recorder) WorkerFinished(workload string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.activeWorkers.Dec()
	r.workerDuration.WithLabelValues(workload).Observe(elapsed.Seconds())
}

// Merged records one merge and the lock wait that preceded it.
func (r *Recorder) Merged(workload string, wait time.Duration) {
	if r == nil {
		return
	}
	r.merges.WithLabelValues(workload).Inc()
	r.lockWait.WithLabelValues(workload).Observe(wait.Seconds())
}

// RunFinished records the outcome and duration of a run.
func (r *Recorder) RunFinished(workload string, threads int, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	r.runs.WithLabelValues(workload, status).Inc()
	r.runDuration.WithLabelValues(workload, strconv.Itoa(threads)).Observe(elapsed.Seconds())
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	if r == nil {
		return nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
