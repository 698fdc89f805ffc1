// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/peterpypan/prun/internal/execpath"
	"github.com/peterpypan/prun/internal/runner"
)

type (
	// Executor runs the external commands of a bootstrap.
	Executor interface {
		// Run executes argv in dir and waits for it. A non-zero exit is an
		// error.
		Run(ctx context.Context, dir string, argv []string) error

		// LookPath searches the host PATH for an executable.
		LookPath(name string) (string, error)
	}

	processExecutor struct {
		stdout io.Writer
		stderr io.Writer
		path   string
	}
)

// NewExecutor returns an Executor that streams subprocess output to stdout
// and stderr and resolves commands on the current PATH.
func NewExecutor(stdout, stderr io.Writer) Executor {
	return &processExecutor{stdout: stdout, stderr: stderr, path: os.Getenv(runner.PathVar)}
}

func (e *processExecutor) Run(ctx context.Context, dir string, argv []string) error {
	r := runner.New(
		runner.WithDir(dir),
		runner.WithStdio(nil, e.stdout, e.stderr),
	)
	err := r.Run(ctx, argv).Err()
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	return err
}

func (e *processExecutor) LookPath(name string) (string, error) {
	return execpath.Find(name, e.path)
}
