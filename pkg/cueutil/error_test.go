// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "test.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is wrapped with filepath", func(t *testing.T) {
		t.Parallel()

		original := errors.New("some error")
		err := FormatError(original, "test.cue")
		if !errors.Is(err, original) {
			t.Errorf("error should wrap the original, got: %v", err)
		}
		if !strings.HasPrefix(err.Error(), "test.cue: ") {
			t.Errorf("error should start with the file, got: %v", err)
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{name: "empty path", path: nil, expected: ""},
		{name: "single element", path: []string{"env_dir"}, expected: "env_dir"},
		{name: "nested path", path: []string{"a", "b"}, expected: "a.b"},
		{name: "array index", path: []string{"hooks", "0", "name"}, expected: "hooks[0].name"},
		{name: "nested arrays", path: []string{"items", "0", "values", "1"}, expected: "items[0].values[1]"},
		{name: "leading digits stay a field", path: []string{"0", "x"}, expected: "0.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatPath(tt.path); got != tt.expected {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestDocumentError(t *testing.T) {
	t.Parallel()

	single := &DocumentError{File: "config.cue", Problems: []Problem{{Path: "env_dir", Message: "invalid value"}}}
	if got := single.Error(); got != "config.cue: env_dir: invalid value" {
		t.Errorf("Error() = %q", got)
	}

	multi := &DocumentError{File: "config.cue", Problems: []Problem{{Message: "syntax error"}, {Path: "a", Message: "b"}}}
	if got := multi.Error(); got != "config.cue: validation failed:\n  syntax error\n  a: b" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(multi, ErrInvalidDocument) {
		t.Error("DocumentError should wrap ErrInvalidDocument")
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 100), 100, "test.cue"); err != nil {
		t.Errorf("data at exact limit: %v", err)
	}
	err := CheckFileSize(make([]byte, 101), 100, "test.cue")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"test.cue", "101", "100"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should contain %q", err, want)
		}
	}
}
