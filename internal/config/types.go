// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/peterpypan/prun/pkg/platform"
)

const (
	// LogLevelDebug logs every subprocess and decision.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs bootstrap steps.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs skipped steps and problems only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs failures only.
	LogLevelError LogLevel = "error"

	// DefaultEnvDir is the environment folder name used when none is configured.
	DefaultEnvDir = ".venv"
	// DefaultMaxSearchDepth bounds prun's upward search.
	DefaultMaxSearchDepth = 100
)

var (
	// ErrInvalidLogLevel is the sentinel error wrapped by InvalidLogLevelError.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidEnvDir is the sentinel error wrapped by InvalidEnvDirError.
	ErrInvalidEnvDir = errors.New("invalid environment folder name")
	// ErrInvalidSearchDepth is the sentinel error wrapped by InvalidSearchDepthError.
	ErrInvalidSearchDepth = errors.New("invalid search depth")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is a pvenv log level name.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidEnvDirError is returned when the environment folder name is
	// blank or uses a Windows device name.
	// It wraps ErrInvalidEnvDir for errors.Is() compatibility.
	InvalidEnvDirError struct {
		Value string
	}

	// InvalidSearchDepthError is returned when the search depth is below one.
	// It wraps ErrInvalidSearchDepth for errors.Is() compatibility.
	InvalidSearchDepthError struct {
		Value int
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// EnvDir is the environment folder name, relative to a project.
		// An absolute path names one environment shared by every project.
		EnvDir string `json:"env_dir" mapstructure:"env_dir"`
		// MaxSearchDepth is the number of directories prun visits.
		MaxSearchDepth int `json:"max_search_depth" mapstructure:"max_search_depth"`
		// Python is the interpreter pvenv creates environments with.
		// Empty selects python3 or python from PATH.
		Python string `json:"python" mapstructure:"python"`
		// LogLevel is pvenv's log level.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
	}
)

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel so callers can use errors.Is for programmatic detection.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Error implements the error interface.
func (e *InvalidEnvDirError) Error() string {
	return fmt.Sprintf("invalid env_dir %q (must be a non-empty path without device names)", e.Value)
}

// Unwrap returns ErrInvalidEnvDir so callers can use errors.Is for programmatic detection.
func (e *InvalidEnvDirError) Unwrap() error { return ErrInvalidEnvDir }

// Error implements the error interface.
func (e *InvalidSearchDepthError) Error() string {
	return fmt.Sprintf("invalid max_search_depth %d (must be at least 1)", e.Value)
}

// Unwrap returns ErrInvalidSearchDepth so callers can use errors.Is for programmatic detection.
func (e *InvalidSearchDepthError) Unwrap() error { return ErrInvalidSearchDepth }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig and the field errors, so errors.Is matches
// both the config sentinel and the failing field's.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// String returns the level name.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is a known level,
// and a list of validation errors if it is not.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts the name to a charmbracelet/log level. Unknown names map
// to info.
func (l LogLevel) Level() log.Level {
	switch l {
	case LogLevelDebug:
		return log.DebugLevel
	case LogLevelWarn:
		return log.WarnLevel
	case LogLevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// IsValid returns whether the environment search settings of the Config
// are valid, and the field errors if not. LogLevel only matters to pvenv,
// which checks it with IsValidForBootstrap.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.EnvDir) == "" || platform.IsReservedName(c.EnvDir) {
		errs = append(errs, &InvalidEnvDirError{Value: c.EnvDir})
	}
	if c.MaxSearchDepth < 1 {
		errs = append(errs, &InvalidSearchDepthError{Value: c.MaxSearchDepth})
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// IsValidForBootstrap extends IsValid with the settings pvenv reads.
func (c Config) IsValidForBootstrap() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.IsValid(); !valid {
		var cfgErr *InvalidConfigError
		if errors.As(fieldErrs[0], &cfgErr) {
			errs = append(errs, cfgErr.FieldErrors...)
		}
	}
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		EnvDir:         DefaultEnvDir,
		MaxSearchDepth: DefaultMaxSearchDepth,
		Python:         "",
		LogLevel:       LogLevelInfo,
	}
}
