// Package metrics is a small, backend-agnostic facade for operational
// metrics: step outcomes and durations, row counts, loaded chunks and
// per-month download outcomes.
//
// The global backend defaults to a no-op, so instrumentation is always safe
// to call. Concrete systems live in subpackages (prompush, datadog) and are
// installed with SetBackend by the binaries.
package metrics

import "time"

// Metric names shared by every backend.
const (
	StepTotal           = "nytaxi_step_total"
	StepDurationSeconds = "nytaxi_step_duration_seconds"
	RowsTotal           = "nytaxi_rows_total"
	ChunksTotal         = "nytaxi_chunks_total"
	MonthsTotal         = "nytaxi_months_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep counts one execution of a named step (zones, trips, verify, a
// DAG task) and records its duration.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordRows adds delta rows of the given kind, e.g. "loaded" for rows
// written to a table or "counted" for downloaded CSV data lines.
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordChunks counts chunks written by the trip loader.
func RecordChunks(job string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(ChunksTotal, float64(delta), Labels{
		"job": job,
	})
}

// RecordMonth counts one monthly download outcome ("counted" or "skipped").
func RecordMonth(taxiType, status string) {
	backend.IncCounter(MonthsTotal, 1, Labels{
		"taxi_type": taxiType,
		"status":    status,
	})
}
