package cli

import (
	"fmt"
	"io"
	"strconv"

	apperrors "github.com/agbru/threadbench/internal/errors"
	"github.com/agbru/threadbench/internal/format"
	"github.com/agbru/threadbench/internal/orchestration"
	"github.com/agbru/threadbench/internal/ui"
)

// CLIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler for terminal output.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// CLIColorProvider supplies theme colors to apperrors.HandleRunError.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// PresentComparisonTable displays one row per run of a sweep: thread count,
// elapsed time, speedup and efficiency against the baseline, and status.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Sweep Summary ---\n")

	headers := []string{"Threads", "Elapsed", "Speedup", "Efficiency"}
	rows := make([][]string, len(results))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for i, res := range results {
		elapsed, speedup, efficiency := format.FormatSeconds(res.Elapsed)+"s", "-", "-"
		if res.Err == nil {
			speedup = format.FormatRatio(res.Speedup)
			efficiency = format.FormatPercent(res.Efficiency)
		}
		rows[i] = []string{strconv.Itoa(res.Threads), elapsed, speedup, efficiency}
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], len(cell))
		}
	}

	for i, h := range headers {
		fmt.Fprintf(out, "%s%s%s%s   ", ui.ColorUnderline(), h, ui.ColorReset(), padRight("", widths[i]-len(h)))
	}
	fmt.Fprintf(out, "%sStatus%s\n", ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		var status string
		switch {
		case res.Err != nil:
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		case !res.Consistent:
			status = fmt.Sprintf("%s⚠ Result differs from baseline%s", ui.ColorYellow(), ui.ColorReset())
		default:
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		for j, cell := range rows[i] {
			color := ui.ColorYellow()
			if j == 0 {
				color = ui.ColorBlue()
			}
			fmt.Fprintf(out, "%s%s%s%s   ", color, cell, ui.ColorReset(), padRight("", widths[j]-len(cell)))
		}
		fmt.Fprintf(out, "%s\n", status)
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the elapsed time and the merged result, followed by
// the run details when requested.
func (CLIResultPresenter) PresentResult(result orchestration.RunResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietResult(out, result)
		return
	}
	DisplayResult(result, out)
	if opts.Details {
		DisplayRunDetails(result, out)
	}
}

// HandleError reports a failed run and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	return apperrors.HandleRunError(err, out, CLIColorProvider{})
}

// DisplayResult prints the elapsed time and the summary of a successful run.
func DisplayResult(result orchestration.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\nElapsed time: %s%s%s seconds\n",
		ui.ColorYellow(), format.FormatSeconds(result.Elapsed), ui.ColorReset())
	fmt.Fprintf(out, "    -> %s%s%s\n", ui.ColorGreen(), result.Summary, ui.ColorReset())
}

// DisplayRunDetails prints per-worker timings, merge statistics, CPU usage
// and memory statistics of a run.
func DisplayRunDetails(result orchestration.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Run Details ---\n")
	fmt.Fprintf(out, "Run ID:    %s\n", result.RunID)
	fmt.Fprintf(out, "Workload:  %s, %d elements, %d threads, %s merge\n",
		result.Name, result.Size, result.Threads, result.Merge)
	fmt.Fprintf(out, "Merges:    %d\n", result.Merges)

	fmt.Fprintf(out, "\n%sWorker   Range                  Elapsed     Lock wait%s\n", ui.ColorUnderline(), ui.ColorReset())
	for _, w := range result.Workers {
		rng := fmt.Sprintf("[%d, %d)", w.Range.Start, w.Range.End)
		fmt.Fprintf(out, "%-8d %-22s %-11s %s\n",
			w.ID, rng, format.FormatExecutionDuration(w.Elapsed), format.FormatExecutionDuration(w.LockWait))
	}

	if result.CPUAvailable {
		fmt.Fprintf(out, "\nCPU time:  %s user, %s system\n",
			format.FormatExecutionDuration(result.CPU.User), format.FormatExecutionDuration(result.CPU.System))
		fmt.Fprintf(out, "Effective parallelism: %.2f of %d threads\n",
			result.CPU.Parallelism(result.Elapsed), result.Threads)
	}
	fmt.Fprintf(out, "System:    %.1f%% CPU, %.1f%% memory\n", result.System.CPUPercent, result.System.MemPercent)
	DisplayMemoryStats(result, out)
}

// DisplayMemoryStats shows Go heap statistics accumulated during a run.
func DisplayMemoryStats(result orchestration.RunResult, out io.Writer) {
	m := result.Memory
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(m.PeakHeap))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(m.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", m.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(m.PauseTotalNs)/1e6)
}
