package config

import (
	"bytes"
	"errors"
	"flag"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/agbru/threadbench/internal/errors"
)

type stubCatalog struct{}

func (stubCatalog) Names() []string { return []string{"nearest-neighbor", "cpu-burn"} }
func (stubCatalog) DefaultSize(name string) (int, error) {
	switch name {
	case "nearest-neighbor":
		return 1000, nil
	case "cpu-burn":
		return 50, nil
	}
	return 0, apperrors.NewInvalidArgument("workload", name, "unknown")
}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	return ParseConfig("threadbench", args, &bytes.Buffer{}, stubCatalog{})
}

func TestParseConfig_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Threads != DefaultThreads || cfg.Workload != DefaultWorkload || cfg.Seed != DefaultSeed {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Size != 1000 {
		t.Errorf("Size = %d, want the workload default 1000", cfg.Size)
	}
	if cfg.Merge != "lock" || cfg.LogLevel != "warn" {
		t.Errorf("unexpected merge/log level: %q %q", cfg.Merge, cfg.LogLevel)
	}
	if cfg.IsSweep() || !reflect.DeepEqual(cfg.RunThreadCounts(), []int{DefaultThreads}) {
		t.Errorf("default run should be a single run with %d threads", DefaultThreads)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		args  []string
		check func(AppConfig) bool
	}{
		{"short threads", []string{"-t", "8"}, func(c AppConfig) bool { return c.Threads == 8 }},
		{"long size", []string{"--size", "12"}, func(c AppConfig) bool { return c.Size == 12 }},
		{"zero size", []string{"-n", "0"}, func(c AppConfig) bool { return c.Size == 0 }},
		{"workload default size", []string{"-w", "cpu-burn"}, func(c AppConfig) bool { return c.Size == 50 }},
		{"slots merge", []string{"--merge", "slots"}, func(c AppConfig) bool { return c.Merge == "slots" }},
		{"sweep", []string{"--sweep", "1, 2,4,2"}, func(c AppConfig) bool {
			return reflect.DeepEqual(c.ThreadCounts, []int{1, 2, 4}) && c.IsSweep()
		}},
		{"details and quiet", []string{"-d", "-q"}, func(c AppConfig) bool { return c.Details && c.Quiet }},
		{"completion skips validation", []string{"--completion", "zsh", "-t", "0"}, func(c AppConfig) bool {
			return c.Completion == "zsh"
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := parse(t, tc.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.check(cfg) {
				t.Errorf("unexpected config for %v: %+v", tc.args, cfg)
			}
		})
	}
}

func TestParseConfig_InvalidArguments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"zero threads", []string{"-t", "0"}, "threads"},
		{"negative threads", []string{"--threads", "-2"}, "threads"},
		{"negative size", []string{"-n", "-1"}, "size"},
		{"unknown workload", []string{"-w", "matrix"}, "workload"},
		{"unknown merge", []string{"--merge", "atomic"}, "merge"},
		{"bad sweep", []string{"--sweep", "1,x"}, "sweep"},
		{"zero in sweep", []string{"--sweep", "0,2"}, "sweep"},
		{"bad log level", []string{"--log-level", "loud"}, "log-level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := parse(t, tc.args...)
			var invalid apperrors.InvalidArgumentError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidArgumentError, got %v", err)
			}
			if invalid.Field != tc.field {
				t.Errorf("field = %q, want %q", invalid.Field, tc.field)
			}
			if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d, want %d", apperrors.ExitCodeFor(err), apperrors.ExitErrorConfig)
			}
		})
	}
}

func TestParseConfig_MalformedFlags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
	}{
		{"non-numeric threads", []string{"--threads", "abc"}},
		{"non-numeric size", []string{"-n", "x"}},
		{"unknown flag", []string{"--bogus"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var errOut bytes.Buffer
			_, err := ParseConfig("threadbench", tc.args, &errOut, stubCatalog{})
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("expected ErrUsage, got %v", err)
			}
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected a ConfigError, got %T", err)
			}
			if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d, want %d", apperrors.ExitCodeFor(err), apperrors.ExitErrorConfig)
			}
			if !strings.Contains(errOut.String(), "Usage: threadbench") {
				t.Errorf("usage text should be printed, got %q", errOut.String())
			}
		})
	}
}

func TestParseConfig_ConfigErrors(t *testing.T) {
	t.Parallel()
	if _, err := parse(t, "-q", "--tui"); !apperrors.IsInvalidArgument(err) {
		t.Errorf("--quiet --tui: got %v, want a config error", err)
	}
	if _, err := parse(t, "extra"); !apperrors.IsInvalidArgument(err) {
		t.Errorf("positional argument: got %v, want a config error", err)
	}
}

func TestParseConfig_Help(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	_, err := ParseConfig("threadbench", []string{"-h"}, &buf, stubCatalog{})
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	for _, want := range []string{"Usage: threadbench", "-threads", "-workload", "-sweep"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage should mention %q", want)
		}
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"THREADS", "6")
	t.Setenv(EnvPrefix+"WORKLOAD", "cpu-burn")
	t.Setenv(EnvPrefix+"DETAILS", "yes")
	t.Setenv(EnvPrefix+"SIZE", "not-a-number")
	t.Setenv("NO_COLOR", "1")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Threads != 6 || cfg.Workload != "cpu-burn" || !cfg.Details || !cfg.NoColor {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Size != 50 {
		t.Errorf("malformed SIZE should be ignored, got %d", cfg.Size)
	}

	var errOut bytes.Buffer
	t.Setenv(EnvPrefix+"THREADS", "abc")
	cfg, err = ParseConfig("threadbench", nil, &errOut, stubCatalog{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Threads != DefaultThreads {
		t.Errorf("malformed THREADS should be ignored, got %d", cfg.Threads)
	}
	if !strings.Contains(errOut.String(), "THREADBENCH_THREADS") || !strings.Contains(errOut.String(), "abc") {
		t.Errorf("malformed THREADS should be reported, got %q", errOut.String())
	}
	t.Setenv(EnvPrefix+"THREADS", "6")

	cfg, err = parse(t, "-t", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Threads != 2 {
		t.Errorf("flag should win over env, got %d threads", cfg.Threads)
	}
}

func TestParseThreadCounts(t *testing.T) {
	t.Parallel()
	got, err := ParseThreadCounts("8,1,,4,8")
	if err != nil || !reflect.DeepEqual(got, []int{8, 1, 4}) {
		t.Errorf("ParseThreadCounts = %v, %v", got, err)
	}
	if _, err := ParseThreadCounts(" , "); !apperrors.IsInvalidArgument(err) {
		t.Errorf("empty list: got %v", err)
	}
}

func TestSuggestedSweep(t *testing.T) {
	t.Parallel()
	counts := SuggestedSweep()
	if counts[0] != 1 || counts[len(counts)-1] != EstimateMaxThreads() {
		t.Errorf("SuggestedSweep() = %v, want 1..%d", counts, EstimateMaxThreads())
	}
	for i := 1; i < len(counts); i++ {
		if counts[i] <= counts[i-1] {
			t.Errorf("SuggestedSweep() = %v is not increasing", counts)
		}
	}
	if Oversubscribed(1) {
		t.Error("one thread is never oversubscribed")
	}
}
