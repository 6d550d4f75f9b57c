// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files on the filesystem.

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agbru/threadbench/internal/format"
	"github.com/agbru/threadbench/internal/metrics"
	"github.com/agbru/threadbench/internal/orchestration"
)

// FormatQuietResult formats a run as a single line suitable for scripting:
// elapsed seconds, a tab, then the summary.
func FormatQuietResult(result orchestration.RunResult) string {
	return format.FormatSeconds(result.Elapsed) + "\t" + result.Summary
}

// DisplayQuietResult outputs a run in quiet mode.
func DisplayQuietResult(out io.Writer, result orchestration.RunResult) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// WriteMetrics writes the recorder's metrics in the Prometheus text format
// to path, or to stdout when path is "-".
func WriteMetrics(path string, rec *metrics.Recorder, stdout io.Writer) error {
	if path == "-" {
		return rec.WriteText(stdout)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	if err := rec.WriteText(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return file.Close()
}
