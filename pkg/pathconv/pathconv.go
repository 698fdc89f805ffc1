// SPDX-License-Identifier: MPL-2.0

// Package pathconv rewrites filesystem path strings from the host platform's
// syntax into the syntax of a target platform.
//
// Translation is pure string work: no filesystem access takes place, and the
// result depends only on the input path, the target, the quote flag and the
// host the Translator was created for.
package pathconv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peterpypan/prun/pkg/platform"
)

// ErrConversionNotSupported is the sentinel error wrapped by ConversionNotSupportedError.
var ErrConversionNotSupported = errors.New("path conversion not supported")

type (
	// Translator converts paths written on one host platform.
	Translator struct {
		host platform.ID
	}

	// ConversionNotSupportedError is returned when paths cannot be rewritten
	// from the host's syntax to the target's. Only POSIX to Windows is
	// affected.
	ConversionNotSupportedError struct {
		From platform.ID
		To   platform.ID
	}

	// windowsPath is a path split according to Windows rules.
	windowsPath struct {
		unc      string // "server/share" for \\server\share paths
		drive    string // "C:"
		rooted   bool
		segments []string
	}
)

// Error implements the error interface.
func (e *ConversionNotSupportedError) Error() string {
	return fmt.Sprintf("conversion of paths from %s to %s is not implemented", e.From, e.To)
}

// Unwrap returns ErrConversionNotSupported so callers can use errors.Is for programmatic detection.
func (e *ConversionNotSupportedError) Unwrap() error { return ErrConversionNotSupported }

// NewTranslator returns a Translator for paths produced on host.
func NewTranslator(host platform.ID) Translator {
	return Translator{host: host}
}

// Translate rewrites path for the target platform.
//
// Surrounding single or double quotes are stripped first. A Windows drive
// root such as C:\Users is written as C:/Users for a POSIX target, keeping
// the drive prefix for shells layered over Windows (git-bash, MSYS). When
// quote is set the result is wrapped in the target's quote character.
func (t Translator) Translate(path string, target platform.ID, quote bool) (string, error) {
	hostProfile, err := platform.Lookup(t.host)
	if err != nil {
		return "", err
	}
	targetProfile, err := platform.Lookup(target)
	if err != nil {
		return "", err
	}

	path = stripQuotes(path)

	var out string
	switch {
	case hostProfile.Syntax() == platform.SyntaxWindows && targetProfile.Syntax() == platform.SyntaxWindows:
		out = parseWindows(path).String()
	case hostProfile.Syntax() == platform.SyntaxWindows:
		out = parseWindows(path).POSIX()
	case targetProfile.Syntax() == platform.SyntaxWindows:
		return "", &ConversionNotSupportedError{From: t.host, To: target}
	default:
		out = cleanPOSIX(path)
	}

	if quote {
		out = targetProfile.Quote(out)
	}
	return out, nil
}

// stripQuotes removes surrounding double quotes, then surrounding single quotes.
func stripQuotes(s string) string {
	return strings.Trim(strings.Trim(s, `"`), "'")
}

// splitSegments splits on any of seps, dropping empty and "." segments.
func splitSegments(s, seps string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})
	segments := fields[:0]
	for _, f := range fields {
		if f != "." {
			segments = append(segments, f)
		}
	}
	return segments
}

func isSep(b byte) bool { return b == '\\' || b == '/' }

func isDriveLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// parseWindows splits a path written with Windows syntax. Both separators
// are accepted, as Windows itself accepts them.
func parseWindows(s string) windowsPath {
	var w windowsPath

	switch {
	case len(s) >= 2 && isSep(s[0]) && isSep(s[1]):
		parts := splitSegments(s[2:], `\/`)
		if len(parts) >= 2 {
			w.unc = parts[0] + "/" + parts[1]
			w.rooted = true
			w.segments = parts[2:]
			return w
		}
		w.rooted = true
		w.segments = parts
		return w
	case len(s) >= 2 && isDriveLetter(s[0]) && s[1] == ':':
		w.drive = s[:2]
		s = s[2:]
	}

	if len(s) > 0 && isSep(s[0]) {
		w.rooted = true
	}
	w.segments = splitSegments(s, `\/`)
	return w
}

// String renders the path with Windows syntax.
func (w windowsPath) String() string {
	rest := strings.Join(w.segments, `\`)
	switch {
	case w.unc != "":
		anchor := `\\` + strings.ReplaceAll(w.unc, "/", `\`) + `\`
		return anchor + rest
	case w.rooted:
		return w.drive + `\` + rest
	case w.drive != "":
		return w.drive + rest
	case rest == "":
		return "."
	default:
		return rest
	}
}

// POSIX renders the path with forward slashes. A drive is kept as a bare
// "C:" prefix, the form POSIX shells on Windows accept.
func (w windowsPath) POSIX() string {
	rest := strings.Join(w.segments, "/")
	var anchor string
	switch {
	case w.unc != "":
		anchor = "//" + w.unc
	case w.drive != "":
		anchor = w.drive
	case w.rooted:
		return "/" + rest
	}

	switch {
	case anchor == "" && rest == "":
		return "."
	case anchor == "":
		return rest
	case rest == "":
		return anchor
	default:
		return anchor + "/" + rest
	}
}

// cleanPOSIX collapses repeated separators and "." segments. ".." is kept
// because resolving it would need the filesystem.
func cleanPOSIX(s string) string {
	rest := strings.Join(splitSegments(s, "/"), "/")
	if strings.HasPrefix(s, "/") {
		return "/" + rest
	}
	if rest == "" {
		return "."
	}
	return rest
}
