package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/agbru/threadbench/internal/config"
	"github.com/agbru/threadbench/internal/ui"
)

// PrintExecutionConfig displays the benchmark configuration: workload, size,
// thread counts, merge strategy and the machine it runs on.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Benchmark Configuration ---\n")
	fmt.Fprintf(out, "Workload %s%s%s over %s%d%s elements",
		ui.ColorMagenta(), cfg.Workload, ui.ColorReset(), ui.ColorYellow(), cfg.Size, ui.ColorReset())
	if cfg.Workload == config.DefaultWorkload {
		fmt.Fprintf(out, " (seed %d)", cfg.Seed)
	}
	fmt.Fprintf(out, ".\n")
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	for _, t := range cfg.RunThreadCounts() {
		if config.Oversubscribed(t) {
			fmt.Fprintf(out, "%sNote: %d threads exceed the %d that can run in parallel.%s\n",
				ui.ColorYellow(), t, config.EstimateMaxThreads(), ui.ColorReset())
			break
		}
	}
}

// PrintExecutionMode displays whether a single run or a sweep is starting.
func PrintExecutionMode(cfg config.AppConfig, out io.Writer) {
	counts := cfg.RunThreadCounts()
	var modeDesc string
	if len(counts) > 1 {
		parts := make([]string, len(counts))
		for i, c := range counts {
			parts[i] = strconv.Itoa(c)
		}
		modeDesc = fmt.Sprintf("Sweep over %s%s%s threads", ui.ColorGreen(), strings.Join(parts, ", "), ui.ColorReset())
	} else {
		modeDesc = fmt.Sprintf("Single run with %s%d%s threads", ui.ColorGreen(), counts[0], ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s, %s merge.\n", modeDesc, cfg.Merge)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
