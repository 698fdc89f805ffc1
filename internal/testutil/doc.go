// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that fail the test
// immediately on setup errors.
//
// Besides filesystem and environment helpers (MustWriteFile, MustChdir,
// MustSetenv, SetHomeDir) it builds fake Python environments on disk
// (MustCreateEnv, MustAddActivate, MustMarkConda) whose executables are
// small shell scripts.
package testutil
