package orchestration

import (
	"io"
	"time"

	"github.com/agbru/threadbench/internal/metrics"
	"github.com/agbru/threadbench/internal/partition"
	"github.com/agbru/threadbench/internal/reduction"
	"github.com/agbru/threadbench/internal/sysmon"
)

// Task is one benchmark workload: a dataset of Size indices, a pure local
// reduction over a range of it, and the combiner that merges local results.
type Task[R any] interface {
	reduction.Combiner[R]

	// Name identifies the workload (e.g. "nearest-neighbor").
	Name() string
	// Size is the number of indices to partition.
	Size() int
	// Reduce computes the local result of one range. It must not mutate
	// shared inputs. An empty range yields Identity().
	Reduce(r partition.Range) (R, error)
	// Summarize renders a merged result for humans.
	Summarize(result R) string
	// Equivalent reports whether two merged results agree, ignoring fields
	// that legitimately depend on the thread count.
	Equivalent(a, b R) bool
}

// Observer receives lifecycle events of a run. WorkerStarted and
// WorkerFinished are called from worker goroutines, concurrently, outside of
// the merge lock; implementations must be safe for concurrent use.
//
//go:generate mockgen -source=interfaces.go -destination=mocks/mock_observer.go -package=mocks Observer
type Observer interface {
	// Partitioned is called once with the ranges, before any worker starts.
	Partitioned(runID string, ranges []partition.Range)
	// PhaseChanged is called by the coordinator goroutine on each transition.
	PhaseChanged(runID string, phase Phase)
	WorkerStarted(runID string, worker int)
	WorkerFinished(runID string, worker int, elapsed time.Duration, err error)
}

// NullObserver ignores every event.
type NullObserver struct{}

func (NullObserver) Partitioned(string, []partition.Range) {}
func (NullObserver) PhaseChanged(string, Phase) {}
func (NullObserver) WorkerStarted(string, int) {}
func (NullObserver) WorkerFinished(string, int, time.Duration, error) {}

// WorkerStat describes one worker of a finished run.
type WorkerStat struct {
	ID    int
	Range partition.Range
	// Elapsed covers the local reduction and the merge.
	Elapsed time.Duration
	// LockWait is the time spent waiting for the merge lock.
	LockWait time.Duration
	// Err is non-nil when the worker failed; its result was not merged.
	Err error
}

// RunResult is the type-erased outcome of one run, shared by the
// orchestration and presentation layers.
type RunResult struct {
	RunID   string
	Name    string
	Size    int
	Threads int
	Merge   MergeMode

	// Summary is the human-readable merged result; empty when Err is set.
	Summary string
	Elapsed time.Duration
	Workers []WorkerStat
	Merges  int

	CPU          metrics.CPUUsage
	CPUAvailable bool
	System       sysmon.Stats
	Memory       metrics.MemoryDelta

	// Speedup and Efficiency are relative to the sweep baseline.
	Speedup    float64
	Efficiency float64
	// Consistent is false when the result disagrees with the baseline.
	Consistent bool

	Err error

	value any
}

// Value returns the merged result, nil when the run failed.
func (r RunResult) Value() any { return r.value }

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Details bool
	Quiet   bool
}

// ResultPresenter defines the interface for presenting run results.
type ResultPresenter interface {
	// PresentComparisonTable displays the sweep summary table.
	PresentComparisonTable(results []RunResult, out io.Writer)
	// PresentResult displays one successful run.
	PresentResult(result RunResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler reports a failed run and returns the exit code.
type ErrorHandler interface {
	HandleError(err error, out io.Writer) int
}
