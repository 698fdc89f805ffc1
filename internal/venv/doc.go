// SPDX-License-Identifier: MPL-2.0

// Package venv finds the project-local Python environment that prun runs
// commands in.
//
// The search starts in a directory (normally the working directory) and
// walks towards the filesystem root. In every directory it looks for an
// environment folder (".venv" unless configured otherwise) holding a Python
// interpreter, first in the folder's executables directory ("bin" or
// "Scripts") and then in the folder itself, which is where conda places the
// interpreter on Windows. The nearest match wins.
package venv
