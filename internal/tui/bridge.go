package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/threadbench/internal/errors"
	"github.com/agbru/threadbench/internal/orchestration"
	"github.com/agbru/threadbench/internal/partition"
)

// sender is the part of *tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the sweep goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program sender
}

// SetProgram sets the program reference (thread-safe).
func (r *programRef) SetProgram(p sender) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the program. It is a no-op until SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIObserver implements orchestration.Observer by forwarding coordinator
// events to the dashboard. Workers call it concurrently; Send is safe for
// that.
type TUIObserver struct {
	ref        *programRef
	generation uint64
}

// Verify interface compliance.
var _ orchestration.Observer = (*TUIObserver)(nil)

func (o *TUIObserver) Partitioned(runID string, ranges []partition.Range) {
	o.ref.Send(PartitionedMsg{RunID: runID, Ranges: ranges, Generation: o.generation})
}

func (o *TUIObserver) PhaseChanged(runID string, phase orchestration.Phase) {
	o.ref.Send(PhaseMsg{RunID: runID, Phase: phase, Generation: o.generation})
}

func (o *TUIObserver) WorkerStarted(_ string, worker int) {
	o.ref.Send(WorkerStartedMsg{Worker: worker, Generation: o.generation})
}

func (o *TUIObserver) WorkerFinished(_ string, worker int, elapsed time.Duration, err error) {
	o.ref.Send(WorkerFinishedMsg{Worker: worker, Elapsed: elapsed, Err: err, Generation: o.generation})
}

// TUIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler. It sends results to the dashboard instead of
// writing to stdout.
type TUIResultPresenter struct {
	ref        *programRef
	generation uint64
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends the sweep results to the dashboard.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.RunResult, _ io.Writer) {
	t.ref.Send(SweepResultsMsg{Results: results, Generation: t.generation})
}

// PresentResult sends the final result to the dashboard.
func (t *TUIResultPresenter) PresentResult(result orchestration.RunResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(RunResultMsg{Result: result, Generation: t.generation})
}

// HandleError sends the error to the dashboard and returns the exit code.
func (t *TUIResultPresenter) HandleError(err error, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Generation: t.generation})
	return apperrors.ExitCodeFor(err)
}
