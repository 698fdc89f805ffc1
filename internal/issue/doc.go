// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and the Markdown remediation
// guides shown for well-known failures of prun and pvenv.
//
// Guides are rendered for the terminal with glamour. An ActionableError may
// point at a guide through its Issue field so that the command layer can
// print the guide below the error message.
package issue
