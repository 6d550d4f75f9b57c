package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/threadbench/internal/config"
	apperrors "github.com/agbru/threadbench/internal/errors"
	"github.com/agbru/threadbench/internal/orchestration"
	"github.com/agbru/threadbench/internal/partition"
	"github.com/agbru/threadbench/internal/workload"
)

// recorder is a sender that keeps every message; workers send concurrently.
type recorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recorder) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) count(match func(tea.Msg) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.msgs {
		if match(m) {
			n++
		}
	}
	return n
}

func newTestModel(t *testing.T, threads ...int) Model {
	t.Helper()
	bench, err := workload.New(workload.CPUBurnName, 200, 1)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.AppConfig{Threads: 2, Merge: "lock", Workload: workload.CPUBurnName, ThreadCounts: threads}
	m := NewModel(context.Background(), bench, cfg, "v1.0.0")
	t.Cleanup(m.cancel)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := newTestModel(t)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q before the first WindowSizeMsg", got)
	}
}

func TestModel_TracksWorkers(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	ranges := []partition.Range{{Start: 0, End: 100}, {Start: 100, End: 200}}
	m, _ = update(t, m, PartitionedMsg{RunID: "run", Ranges: ranges})
	m, _ = update(t, m, PhaseMsg{RunID: "run", Phase: orchestration.PhaseRunning})
	m, _ = update(t, m, WorkerStartedMsg{Worker: 0})
	m, _ = update(t, m, WorkerStartedMsg{Worker: 1})
	m, _ = update(t, m, WorkerFinishedMsg{Worker: 0, Elapsed: time.Millisecond})
	m, _ = update(t, m, WorkerFinishedMsg{Worker: 1, Elapsed: 2 * time.Millisecond, Err: errors.New("malformed")})

	finished, failed := m.workers.Counts()
	if finished != 2 || failed != 1 {
		t.Errorf("Counts() = %d finished, %d failed; want 2, 1", finished, failed)
	}
	if m.workers.phase != orchestration.PhaseRunning {
		t.Errorf("phase = %v, want RUNNING", m.workers.phase)
	}
	if m.header.run != 1 {
		t.Errorf("header run = %d, want 1", m.header.run)
	}

	view := m.View()
	for _, want := range []string{"threadbench v1.0.0", "cpu-burn", "[100, 200)", "failed", "malformed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestModel_IgnoresStaleGeneration(t *testing.T) {
	m := newTestModel(t)
	m.generation = 2

	m, _ = update(t, m, PartitionedMsg{RunID: "old", Ranges: []partition.Range{{Start: 0, End: 1}}, Generation: 1})
	m, _ = update(t, m, SweepCompleteMsg{ExitCode: apperrors.ExitErrorGeneric, Generation: 1})
	m, cmd := update(t, m, ContextCancelledMsg{Err: context.Canceled, Generation: 1})

	if len(m.workers.rows) != 0 {
		t.Error("stale PartitionedMsg should be ignored")
	}
	if m.done || m.exitCode != apperrors.ExitSuccess {
		t.Errorf("stale completion applied: done=%v exit=%d", m.done, m.exitCode)
	}
	if cmd != nil {
		t.Error("stale cancellation should not quit")
	}
}

func TestModel_SweepComplete(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, SweepCompleteMsg{ExitCode: apperrors.ExitErrorMismatch})
	if !m.done || m.exitCode != apperrors.ExitErrorMismatch {
		t.Errorf("done=%v exit=%d, want true %d", m.done, m.exitCode, apperrors.ExitErrorMismatch)
	}
	if _, cmd := update(t, m, TickMsg(time.Now())); cmd != nil {
		t.Error("ticks should stop once the sweep is done")
	}
}

func TestModel_ContextCancelledQuits(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, ContextCancelledMsg{Err: context.Canceled})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exit = %d, want %d", m.exitCode, apperrors.ExitErrorCanceled)
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, keyMsg('q'))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.ctx.Err() == nil {
		t.Error("quit should cancel the sweep context")
	}
	if m.exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("quitting a running sweep: exit = %d", m.exitCode)
	}
}

func TestModel_PauseAndReset(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyMsg('p'))
	if !m.paused {
		t.Fatal("p should pause")
	}
	m, _ = update(t, m, SweepResultsMsg{Results: []orchestration.RunResult{{Threads: 1}}})
	m, _ = update(t, m, SweepCompleteMsg{ExitCode: apperrors.ExitSuccess})

	oldCtx := m.ctx
	m, cmd := update(t, m, keyMsg('r'))
	if cmd == nil {
		t.Fatal("reset should restart the sweep")
	}
	if oldCtx.Err() == nil {
		t.Error("reset should cancel the previous sweep")
	}
	if m.generation != 1 || m.done || m.paused || len(m.results.sweep) != 0 {
		t.Errorf("state not reset: gen=%d done=%v paused=%v results=%d", m.generation, m.done, m.paused, len(m.results.sweep))
	}
}

func TestStartSweepCmd(t *testing.T) {
	bench, err := workload.New(workload.CPUBurnName, 300, 1)
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	ref := &programRef{}
	ref.SetProgram(rec)
	cfg := config.AppConfig{Threads: 1, Merge: "slots", ThreadCounts: []int{1, 3}}

	msg := startSweepCmd(ref, context.Background(), bench, cfg, 7)()
	done, ok := msg.(SweepCompleteMsg)
	if !ok {
		t.Fatalf("got %T, want SweepCompleteMsg", msg)
	}
	if done.ExitCode != apperrors.ExitSuccess || done.Generation != 7 {
		t.Errorf("SweepCompleteMsg = %+v", done)
	}

	partitioned := rec.count(func(m tea.Msg) bool { _, ok := m.(PartitionedMsg); return ok })
	finished := rec.count(func(m tea.Msg) bool { f, ok := m.(WorkerFinishedMsg); return ok && f.Generation == 7 })
	sweeps := rec.count(func(m tea.Msg) bool { s, ok := m.(SweepResultsMsg); return ok && len(s.Results) == 2 })
	finals := rec.count(func(m tea.Msg) bool { r, ok := m.(RunResultMsg); return ok && r.Result.Threads == 3 })
	if partitioned != 2 || finished != 4 || sweeps != 1 || finals != 1 {
		t.Errorf("partitioned=%d finished=%d sweeps=%d finals=%d, want 2 4 1 1", partitioned, finished, sweeps, finals)
	}
}

func TestStartSweepCmd_InvalidMerge(t *testing.T) {
	bench, err := workload.New(workload.CPUBurnName, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	ref := &programRef{}
	ref.SetProgram(rec)

	msg := startSweepCmd(ref, context.Background(), bench, config.AppConfig{Threads: 1, Merge: "atomic"}, 0)()
	if done := msg.(SweepCompleteMsg); done.ExitCode != apperrors.ExitErrorConfig {
		t.Errorf("exit = %d, want %d", done.ExitCode, apperrors.ExitErrorConfig)
	}
	if rec.count(func(m tea.Msg) bool { _, ok := m.(ErrorMsg); return ok }) != 1 {
		t.Error("the invalid merge mode should be reported")
	}
}

func TestProgramRef_SendWithoutProgram(t *testing.T) {
	ref := &programRef{}
	ref.Send(TickMsg(time.Now()))
	obs := &TUIObserver{ref: ref}
	obs.WorkerStarted("run", 0)
}

func TestWorkersModel_Scroll(t *testing.T) {
	var w WorkersModel
	w.SetSize(60, 10) // six visible rows
	w.Reset("run", make([]partition.Range, 20))

	w.Scroll(-3)
	if w.offset != 0 {
		t.Errorf("offset = %d after scrolling above the top", w.offset)
	}
	w.Scroll(100)
	if w.offset != 14 {
		t.Errorf("offset = %d, want 14", w.offset)
	}
	w.Finished(99, time.Second, nil)
	w.Started(-1)
	if finished, _ := w.Counts(); finished != 0 {
		t.Error("out of range worker ids should be ignored")
	}
}

func TestResultsModel_Status(t *testing.T) {
	tests := []struct {
		exitCode int
		done     bool
		want     string
	}{
		{0, false, "Running"},
		{apperrors.ExitSuccess, true, "Success"},
		{apperrors.ExitErrorMismatch, true, "Results differ"},
		{apperrors.ExitErrorCanceled, true, "Canceled"},
		{apperrors.ExitErrorGeneric, true, "Failure"},
	}
	for _, tc := range tests {
		var r ResultsModel
		if tc.done {
			r.SetDone(tc.exitCode)
		}
		if got := r.Status(); !strings.Contains(got, tc.want) {
			t.Errorf("Status() with exit %d = %q, want %q", tc.exitCode, got, tc.want)
		}
	}
}
