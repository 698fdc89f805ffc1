// SPDX-License-Identifier: MPL-2.0

package execpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is the sentinel error wrapped by NotFoundError.
var ErrNotFound = errors.New("executable not found")

// NotFoundError is returned when no executable matches a name.
// It wraps ErrNotFound for errors.Is() compatibility.
type NotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, ErrNotFound.Error())
}

// Unwrap returns ErrNotFound so callers can use errors.Is for programmatic detection.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Find searches the directories of searchPath, in order, for an executable
// called name and returns its absolute path. A name containing a path
// separator is checked directly and searchPath is ignored.
func Find(name, searchPath string) (string, error) {
	return find(name, searchPath, isExecutable)
}

// FindFile is like Find but only requires the file to exist. It is used for
// scripts that are sourced rather than executed, such as a virtual
// environment's activate script, which carries no execute bit on POSIX.
func FindFile(name, searchPath string) (string, error) {
	return find(name, searchPath, isRegularFile)
}

func find(name, searchPath string, accept func(string) bool) (string, error) {
	if name == "" {
		return "", &NotFoundError{Name: name}
	}

	if strings.ContainsAny(name, separators) {
		for _, candidate := range candidates(name) {
			if accept(candidate) {
				return filepath.Abs(candidate)
			}
		}
		return "", &NotFoundError{Name: name}
	}

	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			continue
		}
		for _, candidate := range candidates(name) {
			p := filepath.Join(dir, candidate)
			if accept(p) {
				return filepath.Abs(p)
			}
		}
	}
	return "", &NotFoundError{Name: name}
}

// JoinList joins directories into a search path, skipping empty entries.
func JoinList(dirs ...string) string {
	kept := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d != "" {
			kept = append(kept, d)
		}
	}
	return strings.Join(kept, string(os.PathListSeparator))
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
