// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/peterpypan/prun/internal/activate"
	"github.com/peterpypan/prun/internal/config"
	"github.com/peterpypan/prun/internal/execpath"
	"github.com/peterpypan/prun/internal/issue"
	"github.com/peterpypan/prun/internal/resolve"
	"github.com/peterpypan/prun/internal/runner"
	"github.com/peterpypan/prun/internal/style"
	"github.com/peterpypan/prun/internal/venv"
	"github.com/peterpypan/prun/pkg/pathconv"
	"github.com/peterpypan/prun/pkg/platform"
)

// app holds the process state prun works with, so tests can replace it.
type app struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	environ []string
	// dir is where the environment search starts.
	dir        string
	configOpts config.LoadOptions
	configs    config.Provider
}

// Execute runs prun with args and returns the process exit status.
func Execute(ctx context.Context, args []string) int {
	// The child receives terminal interrupts itself; prun stays alive to
	// report its exit status.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, style.For(os.Stderr).Error.Render("Error: ")+err.Error())
		return int(runner.ExitFailure)
	}

	a := &app{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		environ:    os.Environ(),
		dir:        wd,
		configOpts: config.OptionsFromEnv(),
		configs:    config.NewProvider(),
	}
	return exitCode(a.execute(ctx, args))
}

func (a *app) execute(ctx context.Context, args []string) error {
	cmd := a.newRootCmd()
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd.ExecuteContext(ctx)
}

// newRootCmd returns the prun command. Flag parsing is disabled: every
// argument belongs to the command being run.
func (a *app) newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "prun [command] [args...]",
		Short:              "Run commands inside the nearest Python virtual environment",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args)
		},
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	profile, err := platform.HostProfile()
	if err != nil {
		return a.fail(err)
	}

	req, err := resolve.Classify(args, profile)
	if err != nil {
		return a.fail(err)
	}
	if req.Kind == resolve.KindHelp {
		printUsage(a.stdout)
		return nil
	}

	cfg, err := a.configs.Load(ctx, a.configOpts)
	if err != nil {
		return a.fail(err)
	}

	locator := venv.NewLocator(profile,
		venv.WithEnvDir(cfg.EnvDir),
		venv.WithMaxDepth(cfg.MaxSearchDepth),
	)
	loc, err := locator.Find(a.dir)
	if err != nil {
		return a.fail(err)
	}

	hostPath, _ := runner.LookupEnv(a.environ, runner.PathVar)

	if req.Kind == resolve.KindActivate {
		argv, err := activate.NewBuilder(profile.ID(), hostPath).Build(loc, req.Target)
		if err != nil {
			return a.failNotFound(profile, err)
		}
		_, _ = io.WriteString(a.stdout, activate.Line(argv))
		return nil
	}

	r := runner.New(
		runner.WithEnv(runner.PrependPath(a.environ, loc.ExecDir)),
		runner.WithStdio(a.stdin, a.stdout, a.stderr),
	)
	req, err = req.Lookup(r.SearchPath())
	if err != nil {
		return a.failNotFound(profile, err)
	}

	res := r.Run(ctx, req.Argv)
	if res.Failed() {
		return a.failNotFound(profile, res.Error)
	}
	if !res.ExitCode.IsSuccess() {
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}

// failNotFound reports lookup and launch failures with the host's native
// "command not found" phrasing and falls back to fail for anything else.
func (a *app) failNotFound(profile platform.Profile, err error) error {
	var notFound *execpath.NotFoundError
	var launch *runner.LaunchError
	switch {
	case errors.As(err, &notFound):
		fmt.Fprintln(a.stderr, profile.NotFound(notFound.Name))
	case errors.As(err, &launch):
		fmt.Fprintln(a.stderr, profile.NotFound(launch.Path))
		fmt.Fprintln(a.stderr, style.For(a.stderr).Subtitle.Render(launch.Err.Error()))
	default:
		return a.fail(err)
	}
	return &ExitError{Code: runner.ExitFailure, Err: err}
}

// fail prints err once, with suggestions when prun knows a remedy.
func (a *app) fail(err error) error {
	err = explain(err)
	msg := err.Error()
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		msg = ae.Format(false)
	}
	fmt.Fprintln(a.stderr, style.For(a.stderr).Error.Render("Error: ")+msg)
	return &ExitError{Code: runner.ExitFailure, Err: err}
}

// explain attaches the issue and suggestions matching err's kind.
func explain(err error) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}

	ec := issue.NewErrorContext().Wrap(err)
	var envErr *venv.EnvironmentNotFoundError
	switch {
	case errors.As(err, &envErr):
		ec.WithOperation("find a virtual environment").
			WithResource(envErr.Start).
			WithSuggestion("Create one with 'pvenv' in your project folder").
			WithSuggestion("Set " + venv.EnvDirVar + " if your environment folder is not named " + envErr.EnvDir).
			WithIssue(issue.EnvironmentNotFoundId)
	case errors.Is(err, resolve.ErrInvalidPlatform), errors.Is(err, resolve.ErrTooManyArguments),
		errors.Is(err, platform.ErrUnsupportedPlatform):
		ec.WithOperation("parse activate arguments").
			WithSuggestion("Run 'prun -help' for the list of platforms").
			WithIssue(issue.InvalidPlatformId)
	case errors.Is(err, pathconv.ErrConversionNotSupported):
		ec.WithOperation("build the activation command").
			WithSuggestion("Windows paths can only be produced on a Windows host").
			WithIssue(issue.ConversionNotSupportedId)
	default:
		return err
	}
	return ec.BuildError()
}
