// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/peterpypan/prun/internal/issue"
	"github.com/peterpypan/prun/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "prun"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes the environment variables that override settings,
	// e.g. PVENV_ENV_DIR for env_dir.
	EnvPrefix = "PVENV"
	// ConfigPathVar names an explicit config file.
	ConfigPathVar = "PRUN_CONFIG"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the prun configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions loads the configuration and returns it with the path of
// the file it was read from ("" when only defaults and environment apply).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("env_dir", defaults.EnvDir)
	v.SetDefault("max_search_depth", defaults.MaxSearchDepth)
	v.SetDefault("python", defaults.Python)
	v.SetDefault("log_level", string(defaults.LogLevel))

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Unset " + ConfigPathVar + " to use the default location").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}
		if p := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt); fileExists(p) {
			resolvedPath = p
		}
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the documented settings").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment variables bypass the CUE schema, so the decoded values
	// are checked again.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check the " + EnvPrefix + "_* environment variables").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against the #Config schema and
// merges its fields into v, keeping defaults and environment overrides.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	settings, err := cueutil.DecodeMap(configSchema, data, "#Config", cueutil.WithFilename(path))
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(settings); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
