// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrInvalidDocument is the sentinel error wrapped by DocumentError.
var ErrInvalidDocument = errors.New("invalid document")

type (
	// Problem is one offending field of a document.
	Problem struct {
		// Path is the field's path in JSON notation, e.g. "hooks[0].name".
		// Empty for problems not tied to a field, such as syntax errors.
		Path string
		// Message describes the problem.
		Message string
	}

	// DocumentError lists the problems found in one document.
	// It wraps ErrInvalidDocument for errors.Is() compatibility.
	DocumentError struct {
		File     string
		Problems []Problem
	}
)

// String renders the problem as "<path>: <message>".
func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", e.File, e.Problems[0])
	}
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.File, strings.Join(lines, "\n  "))
}

// Unwrap returns ErrInvalidDocument so callers can use errors.Is for programmatic detection.
func (e *DocumentError) Unwrap() error { return ErrInvalidDocument }

// FormatError converts a CUE error into a *DocumentError for file. Errors
// that do not come from CUE are wrapped with the file name.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", file, err)
	}

	docErr := &DocumentError{File: file}
	for _, e := range cueErrs {
		path := formatPath(cueerrors.Path(e))
		msg := e.Error()
		// CUE sometimes repeats the path in the message.
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		docErr.Problems = append(docErr.Problems, Problem{Path: path, Message: msg})
	}
	return docErr
}

// formatPath converts a CUE error path such as ["hooks", "0", "name"] to
// JSON-path notation: hooks[0].name.
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize verifies that data does not exceed maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
