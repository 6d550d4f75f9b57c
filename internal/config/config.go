// Package config parses and validates the threadbench command line.
//
// Values are resolved with the priority CLI flags > THREADBENCH_* environment
// variables > defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/agbru/threadbench/internal/errors"
	"github.com/agbru/threadbench/internal/logging"
	"github.com/agbru/threadbench/internal/orchestration"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "THREADBENCH_"

// ErrUsage marks flag syntax errors. The flag package has already written
// them to the error writer together with the usage text.
var ErrUsage = errors.New("usage error")

// sizeUnset marks --size as not given; the workload default then applies.
const sizeUnset = -1

// WorkloadCatalog describes the workloads the binary offers.
type WorkloadCatalog interface {
	Names() []string
	DefaultSize(name string) (int, error)
}

// AppConfig is the resolved configuration of one invocation.
type AppConfig struct {
	// Threads is the worker count of a single run.
	Threads int
	// Size is the problem size; the workload default when not given.
	Size     int
	Workload string
	Merge    string
	// Seed drives dataset generation for nearest-neighbor.
	Seed uint64
	// Sweep is the raw --sweep value; ThreadCounts its parsed form.
	Sweep        string
	ThreadCounts []int

	Details    bool
	Quiet      bool
	TUI        bool
	NoColor    bool
	LogLevel   string
	MetricsOut string
	Completion string
}

// IsSweep reports whether several thread counts were requested.
func (c AppConfig) IsSweep() bool { return len(c.ThreadCounts) > 1 }

// RunThreadCounts returns the thread counts to run, in order.
func (c AppConfig) RunThreadCounts() []int {
	if len(c.ThreadCounts) > 0 {
		return c.ThreadCounts
	}
	return []int{c.Threads}
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applies environment overrides and validates the result. Usage and parse
// errors are written to errWriter. A --help request returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer, catalog WorkloadCatalog) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var cfg AppConfig
	workloads := catalog.Names()

	fs.IntVar(&cfg.Threads, "threads", DefaultThreads, "Number of worker goroutines.")
	fs.IntVar(&cfg.Threads, "t", DefaultThreads, "Number of worker goroutines (shorthand).")
	fs.IntVar(&cfg.Size, "size", sizeUnset, "Problem size (default depends on the workload).")
	fs.IntVar(&cfg.Size, "n", sizeUnset, "Problem size (shorthand).")
	fs.StringVar(&cfg.Workload, "workload", DefaultWorkload, "Workload to run: "+strings.Join(workloads, ", ")+".")
	fs.StringVar(&cfg.Workload, "w", DefaultWorkload, "Workload to run (shorthand).")
	fs.StringVar(&cfg.Merge, "merge", string(orchestration.MergeLock), "Merge strategy: "+strings.Join(orchestration.MergeModes(), ", ")+".")
	fs.Uint64Var(&cfg.Seed, "seed", DefaultSeed, "Seed of the generated nearest-neighbor dataset.")
	fs.StringVar(&cfg.Sweep, "sweep", "", "Comma-separated thread counts to compare, or \"auto\".")
	fs.BoolVar(&cfg.Details, "details", false, "Show per-worker timings, CPU and memory statistics.")
	fs.BoolVar(&cfg.Details, "d", false, "Show details (shorthand).")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the elapsed time and the result.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&cfg.TUI, "tui", false, "Run in the interactive dashboard.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable ANSI colors.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error, off.")
	fs.StringVar(&cfg.MetricsOut, "metrics-out", "", "Write Prometheus metrics to this file after the run (\"-\" for stdout).")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\nBenchmark a parallel reduction with a configurable number of workers.\n\nOptions:\n", programName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, fmt.Errorf("%w: %w", ErrUsage, apperrors.ConfigError{Message: err.Error()})
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	applyEnvOverrides(&cfg, fs, logging.NewConsoleLogger(errWriter))

	if cfg.Completion != "" {
		return cfg, nil
	}
	if cfg.Size == sizeUnset && !isFlagSetAny(fs, "size", "n") {
		size, err := catalog.DefaultSize(cfg.Workload)
		if err != nil {
			return AppConfig{}, err
		}
		cfg.Size = size
	}
	if err := cfg.resolveSweep(); err != nil {
		return AppConfig{}, err
	}
	if err := cfg.Validate(workloads); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for semantic errors.
func (c AppConfig) Validate(workloads []string) error {
	if c.Threads < 1 {
		return apperrors.NewInvalidArgument("threads", c.Threads, "must be at least 1")
	}
	if c.Size < 0 {
		return apperrors.NewInvalidArgument("size", c.Size, "must not be negative")
	}
	if !slices.Contains(workloads, c.Workload) {
		return apperrors.NewInvalidArgument("workload", c.Workload, "must be one of "+strings.Join(workloads, ", "))
	}
	if _, err := orchestration.ParseMergeMode(c.Merge); err != nil {
		return err
	}
	for _, t := range c.ThreadCounts {
		if t < 1 {
			return apperrors.NewInvalidArgument("sweep", t, "thread counts must be at least 1")
		}
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("--quiet and --tui cannot be combined")
	}
	if _, ok := logging.LevelFromString(c.LogLevel); !ok {
		return apperrors.NewInvalidArgument("log-level", c.LogLevel, "must be debug, info, warn, error or off")
	}
	return nil
}

func (c *AppConfig) resolveSweep() error {
	switch strings.TrimSpace(c.Sweep) {
	case "":
		return nil
	case "auto":
		c.ThreadCounts = SuggestedSweep()
		return nil
	}
	counts, err := ParseThreadCounts(c.Sweep)
	if err != nil {
		return err
	}
	c.ThreadCounts = counts
	return nil
}

// ParseThreadCounts parses a comma-separated list of thread counts,
// dropping duplicates while keeping the first occurrence order.
func ParseThreadCounts(s string) ([]int, error) {
	var counts []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, apperrors.NewInvalidArgument("sweep", field, "not an integer")
		}
		if n < 1 {
			return nil, apperrors.NewInvalidArgument("sweep", n, "thread counts must be at least 1")
		}
		if !slices.Contains(counts, n) {
			counts = append(counts, n)
		}
	}
	if len(counts) == 0 {
		return nil, apperrors.NewInvalidArgument("sweep", s, "no thread count given")
	}
	return counts, nil
}
