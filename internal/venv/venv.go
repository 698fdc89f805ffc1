// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterpypan/prun/internal/execpath"
	"github.com/peterpypan/prun/pkg/platform"
)

const (
	// DefaultEnvDir is the environment folder name searched for when no
	// override is configured.
	DefaultEnvDir = ".venv"
	// EnvDirVar names the environment variable overriding DefaultEnvDir.
	EnvDirVar = "PVENV_ENV_DIR"
	// DefaultMaxDepth bounds the number of directories visited by a search.
	DefaultMaxDepth = 100
	// CondaMetaDir is the metadata folder that marks a conda environment.
	CondaMetaDir = "conda-meta"
)

// ErrEnvironmentNotFound is the sentinel error wrapped by EnvironmentNotFoundError.
var ErrEnvironmentNotFound = errors.New("no virtual environment was found")

type (
	// Location describes a located environment. All paths are absolute.
	Location struct {
		// Root is the environment folder, e.g. /work/proj/.venv.
		Root string
		// ExecDir is the executables directory inside Root.
		ExecDir string
		// Interpreter is the Python interpreter that identified the environment.
		Interpreter string
	}

	// Locator searches upward for an environment folder.
	Locator struct {
		envDir   string
		maxDepth int
		profile  platform.Profile
	}

	// Option configures a Locator.
	Option func(*Locator)

	// EnvironmentNotFoundError is returned when the search ends without a match.
	// It wraps ErrEnvironmentNotFound for errors.Is() compatibility.
	EnvironmentNotFoundError struct {
		Start  string
		EnvDir string
	}
)

// Error implements the error interface.
func (e *EnvironmentNotFoundError) Error() string {
	return fmt.Sprintf("%s (searched for %q from %s upwards)", ErrEnvironmentNotFound.Error(), e.EnvDir, e.Start)
}

// Unwrap returns ErrEnvironmentNotFound so callers can use errors.Is for programmatic detection.
func (e *EnvironmentNotFoundError) Unwrap() error { return ErrEnvironmentNotFound }

// WithEnvDir sets the environment folder name. Empty values are ignored.
func WithEnvDir(name string) Option {
	return func(l *Locator) {
		if name != "" {
			l.envDir = name
		}
	}
}

// WithMaxDepth bounds the number of directories visited. Values below one
// are ignored.
func WithMaxDepth(n int) Option {
	return func(l *Locator) {
		if n > 0 {
			l.maxDepth = n
		}
	}
}

// NewLocator creates a Locator using the conventions of profile.
func NewLocator(profile platform.Profile, opts ...Option) *Locator {
	l := &Locator{
		envDir:   DefaultEnvDir,
		maxDepth: DefaultMaxDepth,
		profile:  profile,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Find walks from startDir towards the filesystem root and returns the first
// environment that contains an interpreter. The walk stops at the root or
// after the configured number of directories.
func (l *Locator) Find(startDir string) (*Location, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving start directory: %w", err)
	}
	start := dir

	if filepath.IsAbs(l.envDir) {
		if loc, ok := l.Probe(dir); ok {
			return loc, nil
		}
		return nil, &EnvironmentNotFoundError{Start: start, EnvDir: l.envDir}
	}

	for range l.maxDepth {
		if loc, ok := l.Probe(dir); ok {
			return loc, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, &EnvironmentNotFoundError{Start: start, EnvDir: l.envDir}
}

// Probe checks a single directory for an environment folder.
func (l *Locator) Probe(dir string) (*Location, bool) {
	root := RootFor(dir, l.envDir)
	execDir := filepath.Join(root, l.profile.ExecutablesDir())

	interpreter, err := execpath.Find(l.profile.Interpreter(), execpath.JoinList(execDir, root))
	if err != nil {
		return nil, false
	}
	return &Location{Root: root, ExecDir: execDir, Interpreter: interpreter}, true
}

// RootFor returns the environment folder envDir names for dir. An absolute
// envDir names one shared environment and is returned unchanged.
func RootFor(dir, envDir string) string {
	if filepath.IsAbs(envDir) {
		return filepath.Clean(envDir)
	}
	return filepath.Join(dir, envDir)
}

// FindExecutable looks up name inside the environment rooted at root, in its
// executables directory first and then in root itself.
func FindExecutable(profile platform.Profile, root, name string) (string, error) {
	execDir := filepath.Join(root, profile.ExecutablesDir())
	return execpath.Find(name, execpath.JoinList(execDir, root))
}

// IsConda reports whether the environment carries conda metadata.
func (loc *Location) IsConda() bool {
	info, err := os.Stat(filepath.Join(loc.Root, CondaMetaDir))
	return err == nil && info.IsDir()
}
