package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/threadbench/internal/cli"
	"github.com/agbru/threadbench/internal/config"
	apperrors "github.com/agbru/threadbench/internal/errors"
	"github.com/agbru/threadbench/internal/logging"
	"github.com/agbru/threadbench/internal/tui"
	"github.com/agbru/threadbench/internal/ui"
	"github.com/agbru/threadbench/internal/workload"
)

// Application represents the threadbench application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "threadbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, workload.Catalog{})
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(logging.ParseLevel(a.Config.LogLevel))
	ui.InitTheme(a.Config.NoColor)

	if a.Config.TUI {
		return a.runTUI(ctx)
	}
	return a.runBenchmark(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, workload.Names()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := withSignals(ctx)
	defer stopSignals()

	bench, err := a.benchmark()
	if err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter, cli.CLIColorProvider{})
	}
	return tui.Run(ctx, bench, a.Config, Version)
}

// IsUsageError reports whether err is a flag syntax error that was already
// printed with the usage text.
func IsUsageError(err error) bool {
	return errors.Is(err, config.ErrUsage)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
