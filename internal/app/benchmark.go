package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/threadbench/internal/cli"
	apperrors "github.com/agbru/threadbench/internal/errors"
	"github.com/agbru/threadbench/internal/logging"
	"github.com/agbru/threadbench/internal/metrics"
	"github.com/agbru/threadbench/internal/orchestration"
	"github.com/agbru/threadbench/internal/workload"
)

// withSignals derives a context canceled on SIGINT or SIGTERM.
func withSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// benchmark builds the configured workload.
func (a *Application) benchmark() (orchestration.Benchmark, error) {
	return workload.New(a.Config.Workload, a.Config.Size, a.Config.Seed)
}

// runBenchmark orchestrates a single run or a sweep from the command line.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := withSignals(ctx)
	defer stopSignals()

	bench, err := a.benchmark()
	if err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter, cli.CLIColorProvider{})
	}
	merge, err := orchestration.ParseMergeMode(a.Config.Merge)
	if err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter, cli.CLIColorProvider{})
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(a.Config, out)
	}

	var observer orchestration.Observer = orchestration.NullObserver{}
	if !a.Config.Quiet {
		observer = cli.NewSpinnerObserver(out)
	}
	rec := metrics.NewRecorder()
	opts := orchestration.RunOptions{
		Merge:    merge,
		Observer: observer,
		Logger:   logging.NewDefaultLogger(),
		Metrics:  rec,
	}

	results := orchestration.ExecuteSweep(ctx, bench, a.Config.RunThreadCounts(), opts)

	presOpts := orchestration.PresentationOptions{
		Details: a.Config.Details,
		Quiet:   a.Config.Quiet,
	}
	presenter := cli.CLIResultPresenter{}
	exitCode := orchestration.AnalyzeSweepResults(results, presOpts, presenter, presenter, out)

	if a.Config.MetricsOut != "" {
		if err := cli.WriteMetrics(a.Config.MetricsOut, rec, out); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitErrorGeneric
			}
		}
	}
	return exitCode
}
