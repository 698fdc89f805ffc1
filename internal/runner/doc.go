// SPDX-License-Identifier: MPL-2.0

// Package runner starts the child process prun hands control to.
//
// The child inherits prun's environment with the located environment's
// executables directory prepended to PATH, inherits the standard streams and
// blocks the caller until it exits. Its exit status becomes prun's own.
package runner
