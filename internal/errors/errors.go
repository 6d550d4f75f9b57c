package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error or a failed worker.
	ExitErrorMismatch = 3   // Indicates inconsistent results across a thread sweep.
	ExitErrorConfig   = 4   // Indicates a configuration or argument error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrInvalidArgument is the sentinel matched by every InvalidArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InvalidArgumentError reports a rejected benchmark parameter, such as a
// non-positive thread count or a negative problem size. It is raised before
// any worker is started and is never retried.
type InvalidArgumentError struct {
	// Field is the name of the offending parameter.
	Field string
	// Value is the rejected value.
	Value any
	// Message explains the constraint that was violated.
	Message string
}

// Error returns a formatted message describing the rejected argument.
func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%v: %s", e.Field, e.Value, e.Message)
}

// Is reports whether target is ErrInvalidArgument.
func (e InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewInvalidArgument builds an InvalidArgumentError.
func NewInvalidArgument(field string, value any, message string) error {
	return InvalidArgumentError{Field: field, Value: value, Message: message}
}

// WorkerError captures the failure of a single worker. The worker's
// contribution is absent from the shared result.
type WorkerError struct {
	// WorkerID is the index of the failed worker.
	WorkerID int
	// Start and End delimit the index range the worker was reducing.
	Start, End int
	// Cause is the underlying error.
	Cause error
}

// Error returns the worker id, its range and the cause.
func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d [%d, %d): %v", e.WorkerID, e.Start, e.End, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *WorkerError) Unwrap() error { return e.Cause }

// WorkerFailureError aggregates every failed worker of a run. It is only
// produced after all workers have been joined.
type WorkerFailureError struct {
	// Failures lists the failed workers ordered by worker id.
	Failures []*WorkerError
	// Workers is the total number of workers in the run.
	Workers int
}

// NewWorkerFailure builds a WorkerFailureError from the given failures,
// sorted by worker id. It returns nil when failures is empty.
func NewWorkerFailure(workers int, failures []*WorkerError) error {
	if len(failures) == 0 {
		return nil
	}
	sorted := make([]*WorkerError, len(failures))
	copy(sorted, failures)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].WorkerID < sorted[j].WorkerID })
	return &WorkerFailureError{Failures: sorted, Workers: workers}
}

// Error lists each failed worker on its own clause.
func (e *WorkerFailureError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("%d of %d workers failed: %s", len(e.Failures), e.Workers, strings.Join(parts, "; "))
}

// Unwrap exposes every worker error to errors.Is and errors.As.
func (e *WorkerFailureError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsInvalidArgument reports whether err is, or wraps, an invalid argument or
// configuration error.
func IsInvalidArgument(err error) bool {
	var cfgErr ConfigError
	return errors.Is(err, ErrInvalidArgument) || errors.As(err, &cfgErr)
}
