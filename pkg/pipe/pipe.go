package pipe

import (
	"errors"

	"github.com/macpack/macpack/pkg/context"
)

// Piper defines the interface for all pipeline steps.
// Each pipe represents a distinct phase of the packaging process and is
// executed sequentially by the pipeline. Pipes should be independent and
// idempotent.
type Piper interface {
	// String returns the pipe name for logging and identification.
	// This is displayed to users as the pipe executes.
	String() string

	// Run executes the pipe's logic. The context provides access to
	// configuration, artifacts, logging, and cancellation signals. To
	// indicate an intentional skip (not an error), return a SkipError
	// via pipe.Skip().
	Run(ctx *context.Context) error
}

// Skipper is implemented by errors that indicate an intentional skip.
// A skip is not an error condition but a normal part of pipeline execution.
type Skipper interface {
	IsSkip() bool
}

// IsSkip reports whether err marks an intentionally skipped pipe.
func IsSkip(err error) bool {
	var s Skipper
	return errors.As(err, &s) && s.IsSkip()
}

// SkipError represents an intentional skip of a pipeline step.
// Unlike regular errors, skips do not fail the pipeline but instead
// cause the pipeline to continue with the next pipe.
type SkipError struct {
	Reason string
}

func (e SkipError) Error() string { return e.Reason }
func (e SkipError) IsSkip() bool  { return true }

// Skip creates a new skip error with the given reason.
// Use this when a pipe determines it should not run (e.g., configuration disabled).
func Skip(reason string) SkipError {
	return SkipError{Reason: reason}
}
