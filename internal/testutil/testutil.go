// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MustChdir changes the current working directory to dir.
// It returns a cleanup function that restores the original directory.
// The test fails immediately if the directory change fails.
func MustChdir(t testing.TB, dir string) func() {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory to %s: %v", dir, err)
	}
	return func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Errorf("failed to restore directory to %s: %v", originalWd, err)
		}
	}
}

// MustSetenv sets the environment variable key to value.
// It returns a cleanup function that restores the original value (or unsets it).
// The test fails immediately if the operation fails.
func MustSetenv(t testing.TB, key, value string) func() {
	t.Helper()
	originalValue, hadValue := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	return func() {
		if hadValue {
			if err := os.Setenv(key, originalValue); err != nil {
				t.Errorf("failed to restore env %s: %v", key, err)
			}
		} else {
			if err := os.Unsetenv(key); err != nil {
				t.Errorf("failed to unset env %s: %v", key, err)
			}
		}
	}
}

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(path, perm); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFile writes content to path, creating parent directories.
// The test fails immediately if the operation fails.
func MustWriteFile(t testing.TB, path, content string, perm os.FileMode) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
