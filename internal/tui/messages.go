package tui

import (
	"time"

	"github.com/agbru/threadbench/internal/orchestration"
	"github.com/agbru/threadbench/internal/partition"
)

// Messages that carry a Generation come from a sweep goroutine; the model
// drops them once a reset has started a newer sweep.

// TickMsg drives the periodic sampling of memory and system statistics.
type TickMsg time.Time

// PartitionedMsg announces a new run and its worker ranges.
type PartitionedMsg struct {
	RunID      string
	Ranges     []partition.Range
	Generation uint64
}

// PhaseMsg reports a coordinator phase transition.
type PhaseMsg struct {
	RunID      string
	Phase      orchestration.Phase
	Generation uint64
}

// WorkerStartedMsg reports that a worker began reducing its range.
type WorkerStartedMsg struct {
	Worker     int
	Generation uint64
}

// WorkerFinishedMsg reports that a worker returned.
type WorkerFinishedMsg struct {
	Worker     int
	Elapsed    time.Duration
	Err        error
	Generation uint64
}

// SweepResultsMsg carries every run of a sweep once it has been compared to
// the baseline.
type SweepResultsMsg struct {
	Results    []orchestration.RunResult
	Generation uint64
}

// RunResultMsg carries the run presented as the final result.
type RunResultMsg struct {
	Result     orchestration.RunResult
	Generation uint64
}

// ErrorMsg carries the error of a failed run.
type ErrorMsg struct {
	Err        error
	Generation uint64
}

// SweepCompleteMsg signals that the sweep finished with ExitCode.
type SweepCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the sweep context was canceled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
