// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package execpath

import "os"

const separators = "/"

// candidates returns the file names tried for name. POSIX systems have no
// executable extensions.
func candidates(name string) []string {
	return []string{name}
}

// isExecutable reports whether path is a regular file with any execute bit set.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode()&0o111 != 0
}
