package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/threadbench/internal/format"
	"github.com/agbru/threadbench/internal/orchestration"
	"github.com/agbru/threadbench/internal/partition"
)

type workerStatus int

const (
	statusPending workerStatus = iota
	statusRunning
	statusDone
	statusFailed
)

func (s workerStatus) String() string {
	switch s {
	case statusRunning:
		return "running"
	case statusDone:
		return "done"
	case statusFailed:
		return "failed"
	default:
		return "pending"
	}
}

type workerRow struct {
	rng     partition.Range
	status  workerStatus
	elapsed time.Duration
	err     error
}

// WorkersModel shows one row per worker of the current run.
type WorkersModel struct {
	runID  string
	phase  orchestration.Phase
	rows   []workerRow
	offset int
	width  int
	height int
}

// SetSize updates dimensions.
func (w *WorkersModel) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// Reset starts tracking a new run over ranges.
func (w *WorkersModel) Reset(runID string, ranges []partition.Range) {
	w.runID = runID
	w.phase = orchestration.PhaseIdle
	w.offset = 0
	w.rows = make([]workerRow, len(ranges))
	for i, r := range ranges {
		w.rows[i] = workerRow{rng: r}
	}
}

// Clear forgets the current run.
func (w *WorkersModel) Clear() {
	w.Reset("", nil)
}

// SetPhase records a phase transition of run runID.
func (w *WorkersModel) SetPhase(runID string, phase orchestration.Phase) {
	if runID == w.runID {
		w.phase = phase
	}
}

// Started marks worker id as running.
func (w *WorkersModel) Started(id int) {
	if id >= 0 && id < len(w.rows) {
		w.rows[id].status = statusRunning
	}
}

// Finished records the outcome of worker id.
func (w *WorkersModel) Finished(id int, elapsed time.Duration, err error) {
	if id < 0 || id >= len(w.rows) {
		return
	}
	row := &w.rows[id]
	row.elapsed, row.err = elapsed, err
	row.status = statusDone
	if err != nil {
		row.status = statusFailed
	}
}

// Counts returns how many workers finished and how many of them failed.
func (w WorkersModel) Counts() (finished, failed int) {
	for _, r := range w.rows {
		switch r.status {
		case statusDone:
			finished++
		case statusFailed:
			finished++
			failed++
		}
	}
	return finished, failed
}

// visibleRows is the number of worker rows that fit the panel.
func (w WorkersModel) visibleRows() int {
	// border, title and column header
	return max(w.height-4, 1)
}

// Scroll moves the first visible row by delta, clamped to the row count.
func (w *WorkersModel) Scroll(delta int) {
	maxOffset := max(len(w.rows)-w.visibleRows(), 0)
	w.offset = min(max(w.offset+delta, 0), maxOffset)
}

// View renders the worker table.
func (w WorkersModel) View() string {
	var b strings.Builder
	finished, failed := w.Counts()
	title := fmt.Sprintf("Workers  %s  %d/%d done", w.phase, finished, len(w.rows))
	if failed > 0 {
		title += errorStyle.Render(fmt.Sprintf(", %d failed", failed))
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-6s %-22s %-8s %s", "ID", "Range", "Status", "Elapsed")))

	var slowest time.Duration
	for _, r := range w.rows {
		slowest = max(slowest, r.elapsed)
	}

	end := min(w.offset+w.visibleRows(), len(w.rows))
	for id := w.offset; id < end; id++ {
		r := w.rows[id]
		rng := fmt.Sprintf("[%d, %d)", r.rng.Start, r.rng.End)
		status := fmt.Sprintf("%-8s", r.status)
		switch r.status {
		case statusPending:
			status = pendingStyle.Render(status)
		case statusRunning:
			status = runningStyle.Render(status)
		case statusDone:
			status = successStyle.Render(status)
		case statusFailed:
			status = errorStyle.Render(status)
		}
		line := fmt.Sprintf("\n%-6d %-22s %s", id, rng, status)
		if r.status == statusDone || r.status == statusFailed {
			line += " " + format.FormatExecutionDuration(r.elapsed) + " " +
				accentStyle.Render(Sparkline([]float64{float64(r.elapsed)}, float64(slowest)))
		}
		if r.err != nil {
			line += " " + errorStyle.Render(r.err.Error())
		}
		b.WriteString(line)
	}
	if len(w.rows) == 0 {
		b.WriteString("\n" + dimStyle.Render("Waiting for the next run..."))
	}

	return panelStyle.Width(max(w.width-2, 0)).Height(max(w.height-2, 0)).Render(b.String())
}
