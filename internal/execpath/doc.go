// SPDX-License-Identifier: MPL-2.0

// Package execpath locates executables on an explicit search path using the
// host's rules: the execute permission bit on POSIX systems, PATHEXT
// extensions on Windows.
//
// Unlike os/exec.LookPath, the search path is a parameter, so callers can
// search a virtual environment's directories or an augmented PATH without
// mutating the process environment.
package execpath
