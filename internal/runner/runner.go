// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/peterpypan/prun/internal/execpath"
)

// ErrChildProcessLaunch is the sentinel error wrapped by LaunchError.
var ErrChildProcessLaunch = errors.New("child process could not be launched")

// ErrNoCommand is returned when Run is given an empty argument vector.
var ErrNoCommand = errors.New("no command to run")

type (
	// Runner runs child processes with a fixed environment and stdio.
	Runner struct {
		env    []string
		dir    string
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}

	// Option configures a Runner.
	Option func(*Runner)

	// LaunchError is returned when a resolved executable could not be
	// started, e.g. because permission was denied.
	// It wraps ErrChildProcessLaunch for errors.Is() compatibility.
	LaunchError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("launching %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrChildProcessLaunch so callers can use errors.Is for programmatic detection.
func (e *LaunchError) Unwrap() error { return ErrChildProcessLaunch }

// WithEnv sets the child's environment. The default is the current process
// environment.
func WithEnv(env []string) Option {
	return func(r *Runner) { r.env = env }
}

// WithDir sets the child's working directory. The default is prun's own.
func WithDir(dir string) Option {
	return func(r *Runner) { r.dir = dir }
}

// WithStdio replaces the standard streams handed to the child.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdin, r.stdout, r.stderr = stdin, stdout, stderr
	}
}

// New returns a Runner that inherits the process environment and stdio
// unless overridden by opts.
func New(opts ...Option) *Runner {
	r := &Runner{
		env:    os.Environ(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Env returns the environment handed to children.
func (r *Runner) Env() []string { return r.env }

// SearchPath returns the PATH children see.
func (r *Runner) SearchPath() string {
	v, _ := LookupEnv(r.env, PathVar)
	return v
}

// Run starts argv and waits for it. A bare first token is resolved against
// the runner's PATH, so the environment's executables take precedence.
//
// A child that exits non-zero yields its exit code and no error. Resolution
// and launch failures yield ExitFailure with an *execpath.NotFoundError or
// a *LaunchError.
func (r *Runner) Run(ctx context.Context, argv []string) *Result {
	if len(argv) == 0 {
		return NewErrorResult(ExitFailure, ErrNoCommand)
	}

	exe, err := execpath.Find(argv[0], r.SearchPath())
	if err != nil {
		return NewErrorResult(ExitFailure, err)
	}

	cmd := exec.CommandContext(ctx, exe, argv[1:]...)
	cmd.Env = r.env
	cmd.Dir = r.dir
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := ExitCode(exitErr.ExitCode())
			// Killed by a signal.
			if code < 0 {
				code = ExitFailure
			}
			return NewExitCodeResult(code)
		}
		return NewErrorResult(ExitFailure, &LaunchError{Path: exe, Err: err})
	}

	return NewSuccessResult()
}
