package orchestration

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/threadbench/internal/errors"
)

// Benchmark is a Task with its result type erased, so that callers which do
// not know R (the CLI, the TUI) can run and compare it.
type Benchmark interface {
	Name() string
	Size() int
	// Run executes one run. A failed run has Err set and no Summary.
	Run(ctx context.Context, opts RunOptions) RunResult
	// Equivalent reports whether two successful runs merged to the same
	// result.
	Equivalent(a, b RunResult) bool
}

// Bind adapts a typed Task to the Benchmark interface.
func Bind[R any](task Task[R]) Benchmark {
	return boundTask[R]{task: task}
}

type boundTask[R any] struct {
	task Task[R]
}

func (b boundTask[R]) Name() string { return b.task.Name() }
func (b boundTask[R]) Size() int    { return b.task.Size() }

func (b boundTask[R]) Run(ctx context.Context, opts RunOptions) RunResult {
	out, err := Execute(ctx, b.task, opts)
	res := RunResult{
		RunID:        out.RunID,
		Name:         out.Workload,
		Size:         out.Size,
		Threads:      out.Threads,
		Merge:        out.Merge,
		Elapsed:      out.Elapsed,
		Workers:      out.Workers,
		Merges:       out.Merges,
		CPU:          out.CPU,
		CPUAvailable: out.CPUAvailable,
		System:       out.System,
		Memory:       out.Memory,
		Speedup:      1,
		Efficiency:   1,
		Consistent:   true,
		Err:          err,
	}
	if err == nil {
		res.Summary = b.task.Summarize(out.Value)
		res.value = out.Value
	}
	return res
}

func (b boundTask[R]) Equivalent(x, y RunResult) bool {
	xv, okX := x.value.(R)
	yv, okY := y.value.(R)
	return okX && okY && b.task.Equivalent(xv, yv)
}

// ExecuteSweep runs bench once per thread count, one run at a time so that
// runs do not compete for cores. Each successful result is compared against
// the baseline (the smallest successful thread count): Speedup is the
// baseline time over the run's time, Efficiency is the speedup per thread
// added relative to the baseline, and Consistent is false when the merged
// result differs from the baseline's. Once ctx is done the remaining runs are
// not started and carry ctx.Err().
func ExecuteSweep(ctx context.Context, bench Benchmark, threadCounts []int, opts RunOptions) []RunResult {
	ctx, span := tracer.Start(ctx, "benchmark.sweep", trace.WithAttributes(
		attribute.String("benchmark.workload", bench.Name()),
		attribute.IntSlice("benchmark.thread_counts", threadCounts),
	))
	defer span.End()

	results := make([]RunResult, 0, len(threadCounts))
	for _, threads := range threadCounts {
		if err := ctx.Err(); err != nil {
			results = append(results, RunResult{Name: bench.Name(), Size: bench.Size(), Threads: threads, Merge: opts.Merge, Err: err})
			continue
		}
		runOpts := opts
		runOpts.Threads = threads
		results = append(results, bench.Run(ctx, runOpts))
	}
	compareToBaseline(bench, results)
	return results
}

func compareToBaseline(bench Benchmark, results []RunResult) {
	base := -1
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if base < 0 || results[i].Threads < results[base].Threads {
			base = i
		}
	}
	if base < 0 {
		return
	}
	baseline := results[base]
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			r.Speedup, r.Efficiency, r.Consistent = 0, 0, false
			continue
		}
		if r.Elapsed > 0 {
			r.Speedup = float64(baseline.Elapsed) / float64(r.Elapsed)
		}
		if r.Threads > 0 {
			r.Efficiency = r.Speedup * float64(baseline.Threads) / float64(r.Threads)
		}
		r.Consistent = bench.Equivalent(baseline, *r)
	}
}

// AnalyzeSweepResults presents the results of one or more runs and returns
// the process exit code.
//
// A single run is presented on its own. Several runs get a comparison table
// followed by the details of the run with the most threads. A run whose
// result disagrees with the baseline yields ExitErrorMismatch; failed runs
// are reported through handler and yield its exit code.
func AnalyzeSweepResults(results []RunResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	if len(results) == 0 {
		return apperrors.ExitSuccess
	}
	if len(results) == 1 {
		if results[0].Err != nil {
			return handler.HandleError(results[0].Err, out)
		}
		presenter.PresentResult(results[0], opts, out)
		return apperrors.ExitSuccess
	}

	presenter.PresentComparisonTable(results, out)

	var last *RunResult
	var firstErr error
	mismatch := false
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		if !r.Consistent {
			mismatch = true
		}
		if last == nil || r.Threads >= last.Threads {
			last = r
		}
	}

	if last == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No run completed.\n")
		return handler.HandleError(firstErr, out)
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Results differ between thread counts.\n")
		return apperrors.ExitErrorMismatch
	}
	if firstErr != nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. Some runs did not complete.\n")
		return handler.HandleError(firstErr, out)
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All results are consistent.\n")
	presenter.PresentResult(*last, opts, out)
	return apperrors.ExitSuccess
}
