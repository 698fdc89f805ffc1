// SPDX-License-Identifier: MPL-2.0

// Package config handles prun and pvenv configuration using Viper with CUE as
// the file format.
//
// Settings come from, in increasing precedence: built-in defaults, the
// config file, and PVENV_* environment variables. The file is
// ~/.config/prun/config.cue (or the XDG equivalent) on Linux,
// ~/Library/Application Support/prun/config.cue on macOS and
// %APPDATA%\prun\config.cue on Windows; PRUN_CONFIG names another file.
// Files are validated against an embedded CUE schema.
package config
