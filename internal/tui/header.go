package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/threadbench/internal/format"
)

// HeaderModel renders the top bar: title, workload, sweep position and
// elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	workload  string
	size      int
	run       int
	runs      int
	width     int
}

// NewHeaderModel creates a header for a sweep of the given number of runs.
func NewHeaderModel(version, workload string, size, runs int) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		workload:  workload,
		size:      size,
		runs:      runs,
	}
}

// NextRun advances the sweep position shown in the header.
func (h *HeaderModel) NextRun() {
	h.run = min(h.run+1, h.runs)
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer and the sweep position.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
	h.run = 0
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

func (h HeaderModel) elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "threadbench"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")

	row := titleStyle.Render(titleText) + pipe +
		accentStyle.Render(fmt.Sprintf("%s (%d elements)", h.workload, h.size)) + pipe +
		accentStyle.Render(fmt.Sprintf("Run %d/%d", h.run, h.runs)) + pipe +
		accentStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.elapsed()))

	gap := max(h.width-2-lipgloss.Width(row), 0)
	return headerStyle.Width(h.width).Render(row + spaces(gap))
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
