// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/peterpypan/prun/internal/issue"
	"github.com/peterpypan/prun/internal/venv"
	"github.com/peterpypan/prun/pkg/platform"
)

// Executables run by a bootstrap.
const (
	CondaExec     = "conda"
	PreCommitExec = "pre-commit"
)

var (
	// defaultPythons are tried in order when no interpreter is configured.
	defaultPythons = []string{"python3", "python"}

	// ErrBrokenEnvironment is returned when an existing environment folder
	// holds no interpreter.
	ErrBrokenEnvironment = errors.New("the existing virtual environment seems to be broken")
	// ErrPythonNotFound is returned when no interpreter can create the environment.
	ErrPythonNotFound = errors.New("no Python interpreter found")
	// ErrCondaNotFound is returned when a conda project meets a host without conda.
	ErrCondaNotFound = errors.New("the conda executable could not be found")
	// ErrPreCommitNotFound is returned when hooks are configured but the
	// environment lacks pre-commit.
	ErrPreCommitNotFound = errors.New("the pre-commit executable could not be found in the environment")
	// ErrStepFailed is the sentinel error wrapped by StepError.
	ErrStepFailed = errors.New("bootstrap step failed")
)

type (
	// Options selects what a bootstrap works on.
	Options struct {
		// ProjectDir is the project folder; empty means the working directory.
		ProjectDir string
		// EnvDir is the environment folder name inside the project.
		EnvDir string
		// Python is the interpreter that creates standard environments.
		// Empty selects python3 or python from PATH.
		Python string
		// Clear recreates a standard environment and prunes a conda one.
		Clear bool
		// LockTimeout bounds the wait for a concurrent bootstrap.
		// Zero means DefaultLockTimeout.
		LockTimeout time.Duration
	}

	// Result describes a finished bootstrap.
	Result struct {
		ProjectDir string
		EnvPath    string
		Strategy   Strategy
		// HooksInstalled is set when pre-commit hooks were installed.
		HooksInstalled bool
	}

	// Bootstrapper builds project environments.
	Bootstrapper struct {
		exec    Executor
		logger  *log.Logger
		profile platform.Profile
		getenv  func(string) string
	}

	// StepError is returned when a subprocess of a step fails.
	// It wraps both ErrStepFailed and the subprocess error.
	StepError struct {
		Step string
		Argv []string
		Err  error
	}
)

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s: %v", strings.ToLower(e.Step), strings.Join(e.Argv, " "), e.Err)
}

// Unwrap exposes ErrStepFailed and the subprocess error to errors.Is/As.
func (e *StepError) Unwrap() []error { return []error{ErrStepFailed, e.Err} }

// New returns a Bootstrapper for the host described by profile.
func New(exec Executor, logger *log.Logger, profile platform.Profile) *Bootstrapper {
	return &Bootstrapper{exec: exec, logger: logger, profile: profile, getenv: os.Getenv}
}

// Run prepares the environment of the project selected by opts.
func (b *Bootstrapper) Run(ctx context.Context, opts Options) (*Result, error) {
	projectDir, err := ResolveProjectDir(opts.ProjectDir)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("resolve project directory").
			WithIssue(issue.ProjectDirNotFoundId).
			Wrap(err).
			BuildError()
	}

	strategy, descriptor, err := DetectStrategy(projectDir)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("detect project type").
			WithResource(projectDir).
			WithSuggestion("Add a " + RequirementsFile + " or an " + CondaEnvFile).
			WithIssue(issue.NoProjectDescriptorId).
			Wrap(err).
			BuildError()
	}

	envDir := opts.EnvDir
	if envDir == "" {
		envDir = venv.DefaultEnvDir
	}
	envPath := venv.RootFor(projectDir, envDir)

	timeout := opts.LockTimeout
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	lockPath := lockPathFor(projectDir, b.getenv)
	b.logger.Debug("Acquiring project lock", "path", lockPath)
	unlock, err := acquireProjectLock(ctx, lockPath, projectDir, timeout)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("lock project").
			WithResource(projectDir).
			WithIssue(issue.BootstrapLockedId).
			Wrap(err).
			BuildError()
	}
	defer func() {
		if err := unlock(); err != nil {
			b.logger.Debug("Releasing project lock failed", "err", err)
		}
	}()

	switch strategy {
	case StrategyConda:
		b.logger.Infof("Detected conda %s file, assuming conda project.", CondaEnvFile)
		err = b.setupConda(ctx, projectDir, envPath, descriptor, opts.Clear)
	default:
		b.logger.Infof("Detected pip %s file, assuming standard venv project.", RequirementsFile)
		err = b.setupVenv(ctx, projectDir, envPath, descriptor, opts)
	}
	if err != nil {
		return nil, err
	}

	installed, err := b.installHooks(ctx, projectDir, envPath)
	if err != nil {
		return nil, err
	}

	return &Result{
		ProjectDir:     projectDir,
		EnvPath:        envPath,
		Strategy:       strategy,
		HooksInstalled: installed,
	}, nil
}

// setupVenv ensures a standard environment, upgrades pip and wheel and
// installs the requirements.
func (b *Bootstrapper) setupVenv(ctx context.Context, projectDir, envPath, requirements string, opts Options) error {
	if err := b.step(ctx, "Ensuring venv", func() error {
		return b.ensureVenv(ctx, projectDir, envPath, opts)
	}); err != nil {
		return err
	}

	python, err := venv.FindExecutable(b.profile, envPath, b.profile.Interpreter())
	if err != nil {
		return b.brokenEnv(envPath, err)
	}

	pipInstall := func(args ...string) []string {
		return append([]string{python, "-m", "pip", "install"}, args...)
	}
	steps := []struct {
		name string
		argv []string
	}{
		{"Upgrading pip", pipInstall("--upgrade", "pip")},
		{"Installing core pip packages", pipInstall("--upgrade", "wheel")},
		{"Installing requirements", pipInstall("-r", requirements)},
	}
	for _, s := range steps {
		if err := b.step(ctx, s.name, func() error {
			return b.run(ctx, s.name, projectDir, s.argv)
		}); err != nil {
			return err
		}
	}
	return nil
}

// ensureVenv creates envPath when it is missing or clear is set, and
// otherwise checks that it holds an interpreter.
func (b *Bootstrapper) ensureVenv(ctx context.Context, projectDir, envPath string, opts Options) error {
	if exists(envPath) && !opts.Clear {
		if _, err := venv.FindExecutable(b.profile, envPath, b.profile.Interpreter()); err != nil {
			return b.brokenEnv(envPath, err)
		}
		b.logger.Debug("Reusing existing venv", "path", envPath)
		return nil
	}

	python, err := b.findPython(opts.Python)
	if err != nil {
		return err
	}
	argv := []string{python, "-m", "venv"}
	if opts.Clear {
		argv = append(argv, "--clear")
	}
	return b.run(ctx, "Creating venv", projectDir, append(argv, envPath))
}

func (b *Bootstrapper) findPython(configured string) (string, error) {
	candidates := defaultPythons
	if configured != "" {
		candidates = []string{configured}
	}
	for _, name := range candidates {
		if p, err := b.exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", issue.NewErrorContext().
		WithOperation("find Python").
		WithResource(strings.Join(candidates, ", ")).
		WithIssue(issue.PythonNotFoundId).
		Wrap(ErrPythonNotFound).
		BuildError()
}

// setupConda creates the conda environment at envPath, or updates it when
// it exists. Updates prune packages no longer listed when clear is set.
func (b *Bootstrapper) setupConda(ctx context.Context, projectDir, envPath, envFile string, clear bool) error {
	conda, err := b.exec.LookPath(CondaExec)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("find conda").
			WithSuggestion("To use conda, it must be added to your system path").
			WithIssue(issue.CondaNotFoundId).
			Wrap(fmt.Errorf("%w: %w", ErrCondaNotFound, err)).
			BuildError()
	}

	command, verb := "create", "Creating"
	var extra []string
	if exists(envPath) {
		command, verb = "update", "Updating"
		if clear {
			extra = append(extra, "--prune")
		}
	}

	name := verb + " conda env"
	argv := append([]string{conda, "env", command, "--file", envFile, "--prefix", envPath}, extra...)
	return b.step(ctx, name, func() error {
		return b.run(ctx, name, projectDir, argv)
	})
}

// installHooks runs `pre-commit install` from the environment when the
// project configures hooks.
func (b *Bootstrapper) installHooks(ctx context.Context, projectDir, envPath string) (bool, error) {
	if !exists(filepath.Join(projectDir, PreCommitConfig)) {
		b.logger.Info("Skip installing pre-commit hooks.")
		return false, nil
	}

	preCommit, err := venv.FindExecutable(b.profile, envPath, PreCommitExec)
	if err != nil {
		return false, issue.NewErrorContext().
			WithOperation("install pre-commit hooks").
			WithResource(envPath).
			WithSuggestion("Make sure that you added a pre-commit requirement to your requirements file").
			WithIssue(issue.PreCommitNotFoundId).
			Wrap(fmt.Errorf("%w: %w", ErrPreCommitNotFound, err)).
			BuildError()
	}

	const name = "Installing pre-commit hooks"
	if err := b.step(ctx, name, func() error {
		return b.run(ctx, name, projectDir, []string{preCommit, "install"})
	}); err != nil {
		return false, err
	}
	return true, nil
}

// step logs the start and end of fn.
func (b *Bootstrapper) step(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.logger.Info(name + "...")
	if err := fn(); err != nil {
		return err
	}
	b.logger.Info(name + " done.")
	return nil
}

func (b *Bootstrapper) run(ctx context.Context, step, dir string, argv []string) error {
	b.logger.Debug("Running", "cmd", strings.Join(argv, " "), "dir", dir)
	if err := b.exec.Run(ctx, dir, argv); err != nil {
		return &StepError{Step: step, Argv: argv, Err: err}
	}
	return nil
}

func (b *Bootstrapper) brokenEnv(envPath string, cause error) error {
	return issue.NewErrorContext().
		WithOperation("use existing environment").
		WithResource(envPath).
		WithSuggestion("Run 'pvenv --clear' to recreate it").
		WithIssue(issue.BrokenEnvironmentId).
		Wrap(fmt.Errorf("%w: %w", ErrBrokenEnvironment, cause)).
		BuildError()
}
