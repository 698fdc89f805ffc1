// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"fmt"
	"slices"
)

// Path syntax kinds.
const (
	// SyntaxPOSIX separates path segments with forward slashes.
	SyntaxPOSIX PathSyntax = iota
	// SyntaxWindows separates path segments with backslashes and allows a
	// leading drive letter.
	SyntaxWindows
)

// PathSyntax identifies how a platform writes filesystem paths.
type PathSyntax int

// Profile holds the conventions of one platform. The zero value is not a
// valid profile; obtain profiles through Lookup or HostProfile.
//
// Profile fields are unexported so a profile handed to a component can
// never be modified by it.
type Profile struct {
	id             ID
	executablesDir string
	interpreter    string
	notFound       string
	showCommand    string
	pathQuote      string
	activatePrefix []string
	syntax         PathSyntax
}

var (
	windowsProfile = Profile{
		id:             Windows,
		executablesDir: "Scripts",
		interpreter:    "python.exe",
		notFound:       "'%s' is not recognized as an internal or external command, operable program or batch file.",
		showCommand:    "where",
		pathQuote:      `"`,
		activatePrefix: nil,
		syntax:         SyntaxWindows,
	}

	posixProfile = Profile{
		executablesDir: "bin",
		interpreter:    "python",
		notFound:       "%s: command not found",
		showCommand:    "which",
		pathQuote:      "",
		activatePrefix: []string{"source"},
		syntax:         SyntaxPOSIX,
	}
)

// Lookup returns the profile of a platform.
func Lookup(id ID) (Profile, error) {
	switch id {
	case Windows:
		return windowsProfile, nil
	case Linux, Darwin:
		p := posixProfile
		p.id = id
		return p, nil
	default:
		return Profile{}, &UnsupportedPlatformError{Value: id}
	}
}

// HostProfile returns the profile of the platform the process runs on.
func HostProfile() (Profile, error) {
	return Lookup(Host())
}

// ID returns the platform identifier of the profile.
func (p Profile) ID() ID { return p.id }

// ExecutablesDir returns the name of the directory inside a virtual
// environment that holds its executables ("Scripts" or "bin").
func (p Profile) ExecutablesDir() string { return p.executablesDir }

// Interpreter returns the file name of the Python interpreter.
func (p Profile) Interpreter() string { return p.interpreter }

// ShowCommand returns the command that prints where an executable lives.
func (p Profile) ShowCommand() string { return p.showCommand }

// PathQuote returns the character used to quote paths, possibly empty.
func (p Profile) PathQuote() string { return p.pathQuote }

// Syntax returns the path syntax of the platform.
func (p Profile) Syntax() PathSyntax { return p.syntax }

// ActivatePrefix returns the tokens that precede the path of an activation
// script. The returned slice is a copy.
func (p Profile) ActivatePrefix() []string { return slices.Clone(p.activatePrefix) }

// NotFound formats the platform's native "command not found" message.
func (p Profile) NotFound(name string) string {
	return fmt.Sprintf(p.notFound, name)
}

// Quote wraps s in the platform's path quote character.
func (p Profile) Quote(s string) string {
	return p.pathQuote + s + p.pathQuote
}
