// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Platform identifiers. The values match runtime.GOOS so the host platform
// can be derived without a translation table.
const (
	Windows ID = "windows"
	Darwin  ID = "darwin"
	Linux   ID = "linux"
)

// ErrUnsupportedPlatform is the sentinel error wrapped by UnsupportedPlatformError.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

type (
	// ID identifies a platform, e.g. "windows" or "linux".
	ID string

	// UnsupportedPlatformError is returned when an ID has no profile.
	// It wraps ErrUnsupportedPlatform for errors.Is() compatibility.
	UnsupportedPlatformError struct {
		Value ID
	}
)

// aliases maps alternative spellings accepted on the command line to their
// canonical identifier.
var aliases = map[string]ID{
	"macos": Darwin,
	"osx":   Darwin,
	"win32": Windows,
}

// Error implements the error interface.
func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %q (supported: %s)", e.Value, strings.Join(SupportedNames(), ", "))
}

// Unwrap returns ErrUnsupportedPlatform so callers can use errors.Is for programmatic detection.
func (e *UnsupportedPlatformError) Unwrap() error { return ErrUnsupportedPlatform }

// String returns the identifier as a string.
func (id ID) String() string { return string(id) }

// IsWindows reports whether the identifier names the Windows platform.
func (id ID) IsWindows() bool { return id == Windows }

// IsSupported reports whether the identifier has a profile.
func (id ID) IsSupported() bool {
	switch id {
	case Windows, Linux, Darwin:
		return true
	default:
		return false
	}
}

// Parse converts user input into a supported platform identifier.
// Matching is case-insensitive and accepts the aliases "macos", "osx" and "win32".
func Parse(s string) (ID, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := aliases[key]; ok {
		return alias, nil
	}
	id := ID(key)
	if !id.IsSupported() {
		return "", &UnsupportedPlatformError{Value: ID(s)}
	}
	return id, nil
}

// Supported returns the supported platform identifiers in a stable order.
func Supported() []ID {
	return []ID{Windows, Linux, Darwin}
}

// SupportedNames returns the supported identifiers as strings, for messages.
func SupportedNames() []string {
	ids := Supported()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return names
}

// Host returns the identifier of the platform the process runs on.
func Host() ID {
	return ID(runtime.GOOS)
}
