// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"slices"
	"strings"

	"github.com/peterpypan/prun/internal/execpath"
	"github.com/peterpypan/prun/pkg/platform"
)

// PathVar is the search path variable.
const PathVar = "PATH"

// foldEnvKeys is set on hosts whose environment keys are case-insensitive.
var foldEnvKeys = platform.Host().IsWindows()

// LookupEnv returns the value of key in environ, a list of KEY=VALUE
// entries. The last entry wins, as it does for the process environment.
func LookupEnv(environ []string, key string) (string, bool) {
	return lookupEnv(environ, key, foldEnvKeys)
}

// PrependPath returns a copy of environ whose PATH starts with dirs. Empty
// dirs are skipped and an empty or missing PATH is not left dangling.
// On Windows the existing key (often "Path") is matched case-insensitively
// and kept.
func PrependPath(environ []string, dirs ...string) []string {
	return prependPath(environ, foldEnvKeys, dirs...)
}

func lookupEnv(environ []string, key string, fold bool) (string, bool) {
	for i := len(environ) - 1; i >= 0; i-- {
		k, v, ok := strings.Cut(environ[i], "=")
		if ok && keyEqual(k, key, fold) {
			return v, true
		}
	}
	return "", false
}

func prependPath(environ []string, fold bool, dirs ...string) []string {
	out := make([]string, 0, len(environ)+1)
	key := PathVar
	current := ""
	for _, entry := range environ {
		k, v, ok := strings.Cut(entry, "=")
		if ok && keyEqual(k, PathVar, fold) {
			key, current = k, v
			continue
		}
		out = append(out, entry)
	}

	value := execpath.JoinList(append(slices.Clone(dirs), current)...)
	return append(out, key+"="+value)
}

func keyEqual(a, b string, fold bool) bool {
	if fold {
		return strings.EqualFold(a, b)
	}
	return a == b
}
