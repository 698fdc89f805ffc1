// SPDX-License-Identifier: MPL-2.0

package style

import (
	"bytes"
	"testing"
)

func TestFor_NonTerminalIsPlain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := For(&buf)
	for name, st := range map[string]interface{ Render(...string) string }{
		"title":    s.Title,
		"subtitle": s.Subtitle,
		"error":    s.Error,
		"cmd":      s.Cmd,
	} {
		if got := st.Render("prun"); got != "prun" {
			t.Errorf("%s.Render() = %q, want plain text for a buffer", name, got)
		}
	}
}

func TestGlamourStyle_NonTerminal(t *testing.T) {
	t.Parallel()

	if got := GlamourStyle(&bytes.Buffer{}); got != "notty" {
		t.Errorf("GlamourStyle(buffer) = %q, want notty", got)
	}
}
