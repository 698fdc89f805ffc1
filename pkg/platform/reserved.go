// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"strings"
)

// reservedNames are device names Windows refuses as file or folder names,
// whatever the extension.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsReservedName reports whether any element of the path name is
// a Windows device name (nul, con.txt, ...). Such folders cannot be
// created on Windows.
func IsReservedName(name string) bool {
	for _, elem := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		base := strings.ToUpper(elem)
		if ext := filepath.Ext(base); ext != "" {
			base = strings.TrimSuffix(base, ext)
		}
		if reservedNames[base] {
			return true
		}
	}
	return false
}
