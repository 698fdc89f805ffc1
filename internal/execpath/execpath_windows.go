// SPDX-License-Identifier: MPL-2.0

//go:build windows

package execpath

import (
	"os"
	"path/filepath"
	"strings"
)

const separators = `\/:`

// defaultExts is used when PATHEXT is unset.
var defaultExts = []string{".com", ".exe", ".bat", ".cmd"}

// pathExts returns the lower-cased executable extensions from PATHEXT.
func pathExts() []string {
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		return defaultExts
	}
	var exts []string
	for _, e := range filepath.SplitList(strings.ToLower(pathext)) {
		if e == "" {
			continue
		}
		if e[0] != '.' {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}

// candidates returns the file names tried for name. A name that already
// carries an executable extension is tried as is; otherwise every PATHEXT
// extension is appended in order.
func candidates(name string) []string {
	exts := pathExts()
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return []string{name}
		}
	}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		out = append(out, name+e)
	}
	return out
}

// isExecutable reports whether path is a regular file; the extension check
// already happened when building candidates.
func isExecutable(path string) bool {
	return isRegularFile(path)
}
