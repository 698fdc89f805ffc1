// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Project descriptor and hook files.
const (
	RequirementsFile = "requirements.txt"
	CondaEnvFile     = "environment.yml"
	PreCommitConfig  = ".pre-commit-config.yaml"
)

// Strategies.
const (
	// StrategyVenv creates a standard virtual environment from requirements.txt.
	StrategyVenv Strategy = iota + 1
	// StrategyConda creates or updates a conda environment from environment.yml.
	StrategyConda
)

var (
	// ErrProjectDirNotFound is the sentinel error wrapped by ProjectDirError.
	ErrProjectDirNotFound = errors.New("project directory could not be resolved")
	// ErrNoProjectDescriptor is the sentinel error wrapped by NoProjectDescriptorError.
	ErrNoProjectDescriptor = errors.New("no requirements.txt or environment.yml in project")
)

type (
	// Strategy selects how an environment is built.
	Strategy int

	// ProjectDirError is returned when the project directory does not exist
	// or is not a directory.
	// It wraps ErrProjectDirNotFound for errors.Is() compatibility.
	ProjectDirError struct {
		Path string
	}

	// NoProjectDescriptorError is returned when the project has neither
	// descriptor file.
	// It wraps ErrNoProjectDescriptor for errors.Is() compatibility.
	NoProjectDescriptorError struct {
		ProjectDir string
	}
)

// Error implements the error interface.
func (e *ProjectDirError) Error() string {
	return fmt.Sprintf("the project directory could not be resolved: %s", e.Path)
}

// Unwrap returns ErrProjectDirNotFound so callers can use errors.Is for programmatic detection.
func (e *ProjectDirError) Unwrap() error { return ErrProjectDirNotFound }

// Error implements the error interface.
func (e *NoProjectDescriptorError) Error() string {
	return fmt.Sprintf("cannot set up an environment without a %s or %s file in %s",
		RequirementsFile, CondaEnvFile, e.ProjectDir)
}

// Unwrap returns ErrNoProjectDescriptor so callers can use errors.Is for programmatic detection.
func (e *NoProjectDescriptorError) Unwrap() error { return ErrNoProjectDescriptor }

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyVenv:
		return "venv"
	case StrategyConda:
		return "conda"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ResolveProjectDir returns dir as an absolute path, defaulting to the
// working directory when dir is empty. The directory must exist.
func ResolveProjectDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &ProjectDirError{Path: dir}
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", &ProjectDirError{Path: abs}
	}
	return abs, nil
}

// DetectStrategy picks the strategy for projectDir and returns the
// descriptor file it is based on. environment.yml wins over requirements.txt.
func DetectStrategy(projectDir string) (Strategy, string, error) {
	condaFile := filepath.Join(projectDir, CondaEnvFile)
	if exists(condaFile) {
		return StrategyConda, condaFile, nil
	}
	reqFile := filepath.Join(projectDir, RequirementsFile)
	if exists(reqFile) {
		return StrategyVenv, reqFile, nil
	}
	return 0, "", &NoProjectDescriptorError{ProjectDir: projectDir}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
