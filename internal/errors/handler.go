package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ColorProvider supplies the ANSI sequences used when rendering errors.
// A nil provider renders plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case IsInvalidArgument(err):
		return ExitErrorConfig
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

// HandleRunError writes a user-facing description of err and returns the
// matching exit code. Worker failures are listed one worker per line.
func HandleRunError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	var failure *WorkerFailureError
	var invalid InvalidArgumentError
	var cfgErr ConfigError
	switch {
	case errors.As(err, &failure):
		fmt.Fprintf(out, "%sBenchmark failed: %d of %d workers failed; no result is reported.%s\n",
			red, len(failure.Failures), failure.Workers, reset)
		for _, f := range failure.Failures {
			fmt.Fprintf(out, "  %sworker %d%s range [%d, %d): %v\n", yellow, f.WorkerID, reset, f.Start, f.End, f.Cause)
		}
	case errors.As(err, &invalid):
		fmt.Fprintf(out, "%sInvalid argument:%s %s=%v (%s)\n", red, reset, invalid.Field, invalid.Value, invalid.Message)
	case errors.As(err, &cfgErr):
		fmt.Fprintf(out, "%sConfiguration error:%s %s\n", red, reset, cfgErr.Message)
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled by user.%s\n", yellow, reset)
	default:
		fmt.Fprintf(out, "%sStatus: Failure. %v%s\n", red, err, reset)
	}
	return ExitCodeFor(err)
}
