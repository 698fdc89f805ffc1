// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/peterpypan/prun/internal/bootstrap"
	"github.com/peterpypan/prun/internal/config"
	"github.com/peterpypan/prun/internal/issue"
	"github.com/peterpypan/prun/internal/runner"
	"github.com/peterpypan/prun/internal/style"
	"github.com/peterpypan/prun/pkg/platform"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// app holds what pvenv needs from the process, so tests can replace it.
	app struct {
		stdout      io.Writer
		stderr      io.Writer
		configOpts  config.LoadOptions
		configs     config.Provider
		newExecutor func(stdout, stderr io.Writer) bootstrap.Executor
	}

	flags struct {
		venvDir    string
		projectDir string
		clear      bool
		verbose    bool
	}
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs pvenv and exits the process on failure.
func Execute() {
	a := &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		configOpts:  config.OptionsFromEnv(),
		configs:     config.NewProvider(),
		newExecutor: bootstrap.NewExecutor,
	}

	if err := a.execute(context.Background(), os.Args[1:]); err != nil {
		os.Exit(exitCode(err))
	}
}

func (a *app) execute(ctx context.Context, args []string) error {
	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	return fang.Execute(
		ctx,
		cmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(reportUnhandled),
	)
}

// reportUnhandled prints errors that did not go through fail, such as
// flag parsing errors.
func reportUnhandled(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

func (a *app) newRootCmd() *cobra.Command {
	var f flags
	s := style.For(a.stdout)

	cmd := &cobra.Command{
		Use:   "pvenv",
		Short: "Create or update the Python environment of a project",
		Long: s.Title.Render("pvenv") + s.Subtitle.Render(" - create or update the Python environment of a project") + `

pvenv looks at the project folder and picks how to build its environment:

  ` + bootstrap.CondaEnvFile + `      conda env create/update --prefix <project>/<venv-dir>
  ` + bootstrap.RequirementsFile + `     python -m venv, then pip install -r requirements.txt

If the project has a ` + bootstrap.PreCommitConfig + `, the pre-commit hooks are
installed from the new environment.

` + s.Subtitle.Render("Examples:") + `
  pvenv                          Set up the project in the current folder
  pvenv --project-dir ../api     Set up another project
  pvenv --clear                  Recreate the environment from scratch`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, f)
		},
	}

	bindFlags(cmd.Flags(), &f)
	return cmd
}

func bindFlags(fs *pflag.FlagSet, f *flags) {
	fs.StringVar(&f.venvDir, "venv-dir", "", "environment folder name (default from config, "+config.DefaultEnvDir+")")
	fs.StringVar(&f.projectDir, "project-dir", "", "project folder (default is the current directory)")
	fs.BoolVarP(&f.clear, "clear", "c", false, "recreate a standard environment or prune a conda one")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose output")
}

func (a *app) run(cmd *cobra.Command, f flags) error {
	ctx := cmd.Context()

	cfg, err := a.configs.Load(ctx, a.configOpts)
	if err != nil {
		return a.fail(err, f.verbose)
	}

	if f.venvDir != "" {
		cfg.EnvDir = f.venvDir
	}
	if valid, errs := cfg.IsValidForBootstrap(); !valid {
		return a.fail(errs[0], f.verbose)
	}

	level := cfg.LogLevel.Level()
	if f.verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: "pvenv", Level: level})

	profile, err := platform.HostProfile()
	if err != nil {
		return a.fail(err, f.verbose)
	}

	b := bootstrap.New(a.newExecutor(a.stdout, a.stderr), logger, profile)
	res, err := b.Run(ctx, bootstrap.Options{
		ProjectDir: f.projectDir,
		EnvDir:     cfg.EnvDir,
		Python:     cfg.Python,
		Clear:      f.clear,
	})
	if err != nil {
		return a.fail(err, f.verbose)
	}

	logger.Info("Environment ready.", "path", res.EnvPath, "type", res.Strategy)
	return nil
}

// fail prints err with its suggestions and, when one exists, the guide for
// its kind. The returned ExitError marks err as reported.
func (a *app) fail(err error, verbose bool) error {
	s := style.For(a.stderr)

	msg := err.Error()
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		msg = ae.Format(verbose)
	}
	fmt.Fprintln(a.stderr, s.Error.Render("Error: ")+msg)

	if guide := issue.GuideFor(err); guide != nil {
		rendered, renderErr := guide.Render(style.GlamourStyle(a.stderr))
		if renderErr == nil {
			fmt.Fprint(a.stderr, rendered)
		}
	}

	return &ExitError{Code: runner.ExitFailure, Err: err}
}
