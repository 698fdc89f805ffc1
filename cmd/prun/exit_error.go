// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/peterpypan/prun/internal/runner"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
// Err has already been reported to the user when set.
type ExitError struct {
	Code runner.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps the result of a command to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return int(runner.ExitFailure)
}
