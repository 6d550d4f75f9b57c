// This file contains environment variable overrides for configuration.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/agbru/threadbench/internal/logging"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags may be given in either the short or long form.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an env key (without the THREADBENCH_ prefix) to the CLI
// flag name(s) it corresponds to and a function that applies its value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

// envOverrides is the declarative table of all environment variable overrides.
// Numeric values that fail to parse are ignored with a warning.
var envOverrides = []envOverride{
	// Numeric overrides
	{"THREADS", []string{"threads", "t"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.Atoi(v)
		if err == nil {
			c.Threads = parsed
		}
		return err
	}},
	{"SIZE", []string{"size", "n"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.Atoi(v)
		if err == nil {
			c.Size = parsed
		}
		return err
	}},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err == nil {
			c.Seed = parsed
		}
		return err
	}},

	// String overrides
	{"WORKLOAD", []string{"workload", "w"}, func(c *AppConfig, v string) error {
		c.Workload = v
		return nil
	}},
	{"MERGE", []string{"merge"}, func(c *AppConfig, v string) error {
		c.Merge = v
		return nil
	}},
	{"SWEEP", []string{"sweep"}, func(c *AppConfig, v string) error {
		c.Sweep = v
		return nil
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) error {
		c.LogLevel = v
		return nil
	}},
	{"METRICS_OUT", []string{"metrics-out"}, func(c *AppConfig, v string) error {
		c.MetricsOut = v
		return nil
	}},

	// Boolean overrides
	{"DETAILS", []string{"d", "details"}, func(c *AppConfig, v string) error {
		c.Details = parseBoolEnv(v, c.Details)
		return nil
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) error {
		c.Quiet = parseBoolEnv(v, c.Quiet)
		return nil
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) error {
		c.TUI = parseBoolEnv(v, c.TUI)
		return nil
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) error {
		c.NoColor = parseBoolEnv(v, c.NoColor)
		return nil
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
//
// Supported environment variables (all prefixed with THREADBENCH_):
//   - THREADS, SIZE, SEED, WORKLOAD, MERGE, SWEEP, LOG_LEVEL, METRICS_OUT,
//     DETAILS, QUIET, TUI, NO_COLOR
//
// The conventional NO_COLOR variable is honoured as well.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet, logger logging.Logger) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		val := os.Getenv(EnvPrefix + o.envKey)
		if val == "" {
			continue
		}
		if err := o.apply(config, val); err != nil {
			logger.Warn("ignoring malformed environment override",
				logging.String("variable", EnvPrefix+o.envKey),
				logging.String("value", val))
		}
	}
	if !isFlagSet(fs, "no-color") && os.Getenv("NO_COLOR") != "" {
		config.NoColor = true
	}
}
