// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value LogLevel
		want  bool
	}{
		{LogLevelDebug, true},
		{LogLevelInfo, true},
		{LogLevelWarn, true},
		{LogLevelError, true},
		{"", false},
		{"INFO", false},
		{"trace", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.value.IsValid()
			if valid != tt.want {
				t.Fatalf("LogLevel(%q).IsValid() = %v, want %v", tt.value, valid, tt.want)
			}
			if !valid && !errors.Is(errs[0], ErrInvalidLogLevel) {
				t.Errorf("error does not wrap ErrInvalidLogLevel: %v", errs[0])
			}
		})
	}
}

func TestLogLevel_Level(t *testing.T) {
	t.Parallel()

	tests := map[LogLevel]log.Level{
		LogLevelDebug: log.DebugLevel,
		LogLevelInfo:  log.InfoLevel,
		LogLevelWarn:  log.WarnLevel,
		LogLevelError: log.ErrorLevel,
		"bogus":       log.InfoLevel,
	}
	for in, want := range tests {
		if got := in.Level(); got != want {
			t.Errorf("LogLevel(%q).Level() = %v, want %v", in, got, want)
		}
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "nested env dir", mutate: func(c *Config) { c.EnvDir = "envs/py" }},
		{name: "blank env dir", mutate: func(c *Config) { c.EnvDir = "  " }, wantErr: ErrInvalidEnvDir},
		{name: "absolute env dir", mutate: func(c *Config) { c.EnvDir = "/opt/venv" }},
		{name: "device name env dir", mutate: func(c *Config) { c.EnvDir = "nul" }, wantErr: ErrInvalidEnvDir},
		{name: "zero depth", mutate: func(c *Config) { c.MaxSearchDepth = 0 }, wantErr: ErrInvalidSearchDepth},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "x" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			valid, errs := cfg.IsValid()
			if tt.wantErr == nil {
				if !valid {
					t.Errorf("IsValid() = false, %v", errs)
				}
				return
			}
			if valid {
				t.Fatal("IsValid() = true, want false")
			}
			var cfgErr *InvalidConfigError
			if !errors.As(errs[0], &cfgErr) {
				t.Fatalf("error %T is not *InvalidConfigError", errs[0])
			}
			if !errors.Is(cfgErr.FieldErrors[0], tt.wantErr) {
				t.Errorf("field error = %v, want %v", cfgErr.FieldErrors[0], tt.wantErr)
			}
		})
	}
}

func TestConfig_IsValidForBootstrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: []error{ErrInvalidLogLevel}},
		{
			name:    "bad level and depth",
			mutate:  func(c *Config) { c.LogLevel = "loud"; c.MaxSearchDepth = 0 },
			wantErr: []error{ErrInvalidSearchDepth, ErrInvalidLogLevel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			valid, errs := cfg.IsValidForBootstrap()
			if valid != (len(tt.wantErr) == 0) {
				t.Fatalf("IsValidForBootstrap() = %v, %v", valid, errs)
			}
			for _, want := range tt.wantErr {
				if !errors.Is(errs[0], want) {
					t.Errorf("error %v does not wrap %v", errs[0], want)
				}
			}
		})
	}
}
