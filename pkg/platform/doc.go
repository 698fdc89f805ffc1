// SPDX-License-Identifier: MPL-2.0

// Package platform describes the shell and filesystem conventions of the
// platforms prun knows how to target.
//
// Each supported platform identifier maps to exactly one immutable Profile.
// Profiles answer every platform-specific question the rest of prun asks:
// where a virtual environment keeps its executables, how a missing command is
// reported, which command shows an executable's location, how paths are
// quoted and written, and which tokens precede an activation script.
package platform
