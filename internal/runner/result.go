// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"fmt"
)

// Result is the outcome of running a child process.
type Result struct {
	// ExitCode is the child's exit status, or ExitFailure when Error is set.
	ExitCode ExitCode
	// Error is set when the child could not be resolved or started. A child
	// that ran and exited non-zero is not an error.
	Error error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than launch failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Failed reports whether the child could not be run at all.
func (r *Result) Failed() bool { return r.Error != nil }

// ErrNonZeroExit is the sentinel error wrapped by ExitStatusError.
var ErrNonZeroExit = errors.New("process exited with non-zero status")

// ExitStatusError reports a child that ran and exited non-zero.
// It wraps ErrNonZeroExit for errors.Is() compatibility.
type ExitStatusError struct {
	Code ExitCode
}

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns ErrNonZeroExit so callers can use errors.Is for programmatic detection.
func (e *ExitStatusError) Unwrap() error { return ErrNonZeroExit }

// Err returns nil for a successful run, the launch error for a failed one,
// and an *ExitStatusError for a child that exited non-zero.
func (r *Result) Err() error {
	switch {
	case r.Error != nil:
		return r.Error
	case !r.ExitCode.IsSuccess():
		return &ExitStatusError{Code: r.ExitCode}
	default:
		return nil
	}
}
