package tui

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/threadbench/internal/errors"
	"github.com/agbru/threadbench/internal/format"
	"github.com/agbru/threadbench/internal/orchestration"
)

// ResultsModel shows the sweep comparison, the presented run and the
// outcome of the sweep.
type ResultsModel struct {
	sweep    []orchestration.RunResult
	final    *orchestration.RunResult
	err      error
	done     bool
	exitCode int
	width    int
	height   int
}

// SetSize updates dimensions.
func (r *ResultsModel) SetSize(w, h int) {
	r.width = w
	r.height = h
}

// SetSweep stores the compared runs of a sweep.
func (r *ResultsModel) SetSweep(results []orchestration.RunResult) {
	r.sweep = results
}

// SetFinal stores the run presented as the result.
func (r *ResultsModel) SetFinal(result orchestration.RunResult) {
	r.final = &result
}

// SetError stores the error reported for a failed sweep.
func (r *ResultsModel) SetError(err error) {
	r.err = err
}

// SetDone records the sweep exit code.
func (r *ResultsModel) SetDone(exitCode int) {
	r.done = true
	r.exitCode = exitCode
}

// Reset clears every result.
func (r *ResultsModel) Reset() {
	*r = ResultsModel{width: r.width, height: r.height}
}

// Status describes the sweep outcome in one line.
func (r ResultsModel) Status() string {
	if !r.done {
		return runningStyle.Render("Running")
	}
	switch r.exitCode {
	case apperrors.ExitSuccess:
		return successStyle.Render("Success")
	case apperrors.ExitErrorMismatch:
		return warningStyle.Render("Results differ between thread counts")
	case apperrors.ExitErrorCanceled:
		return warningStyle.Render("Canceled")
	default:
		return errorStyle.Render("Failure")
	}
}

// View renders the results panel.
func (r ResultsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Results") + "  " + r.Status())

	if len(r.sweep) > 0 {
		b.WriteString("\n" + labelStyle.Render(fmt.Sprintf("%-8s %-10s %-8s %-10s %s", "Threads", "Elapsed", "Speedup", "Efficiency", "Status")))
		for _, res := range r.sweep {
			speedup, efficiency, status := "-", "-", successStyle.Render("ok")
			switch {
			case res.Err != nil:
				status = errorStyle.Render("failed")
			case !res.Consistent:
				status = warningStyle.Render("differs")
			}
			if res.Err == nil {
				speedup, efficiency = format.FormatRatio(res.Speedup), format.FormatPercent(res.Efficiency)
			}
			fmt.Fprintf(&b, "\n%-8d %-10s %-8s %-10s %s", res.Threads, format.FormatSeconds(res.Elapsed)+"s", speedup, efficiency, status)
		}
	}

	if r.final != nil {
		fmt.Fprintf(&b, "\n\n%s %s",
			labelStyle.Render(fmt.Sprintf("%d threads, %ss:", r.final.Threads, format.FormatSeconds(r.final.Elapsed))),
			successStyle.Render(r.final.Summary))
	}
	if r.err != nil {
		b.WriteString("\n\n" + errorStyle.Render(r.err.Error()))
	}

	return panelStyle.
		Width(max(r.width-2, 0)).
		Height(max(r.height-2, 0)).
		Render(b.String())
}
