// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrependPath(t *testing.T) {
	t.Parallel()

	sep := string(os.PathListSeparator)
	tests := []struct {
		name    string
		environ []string
		fold    bool
		dirs    []string
		want    []string
	}{
		{
			name:    "prepends to existing PATH",
			environ: []string{"HOME=/home/me", "PATH=/usr/bin" + sep + "/bin"},
			dirs:    []string{"/p/.venv/bin"},
			want:    []string{"HOME=/home/me", "PATH=/p/.venv/bin" + sep + "/usr/bin" + sep + "/bin"},
		},
		{
			name:    "missing PATH",
			environ: []string{"HOME=/home/me"},
			dirs:    []string{"/p/.venv/bin"},
			want:    []string{"HOME=/home/me", "PATH=/p/.venv/bin"},
		},
		{
			name:    "empty PATH leaves no trailing separator",
			environ: []string{"PATH="},
			dirs:    []string{"/p/.venv/bin"},
			want:    []string{"PATH=/p/.venv/bin"},
		},
		{
			name:    "empty dirs skipped",
			environ: []string{"PATH=/bin"},
			dirs:    []string{"", "/a"},
			want:    []string{"PATH=/a" + sep + "/bin"},
		},
		{
			name:    "case-insensitive key keeps its spelling",
			environ: []string{`Path=C:\Windows`, "OTHER=1"},
			fold:    true,
			dirs:    []string{`C:\p\.venv\Scripts`},
			want:    []string{"OTHER=1", `Path=C:\p\.venv\Scripts` + sep + `C:\Windows`},
		},
		{
			name:    "case-sensitive host treats Path as unrelated",
			environ: []string{"Path=/x"},
			dirs:    []string{"/a"},
			want:    []string{"Path=/x", "PATH=/a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := prependPath(tt.environ, tt.fold, tt.dirs...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("prependPath() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrependPath_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	environ := []string{"PATH=/bin", "A=1"}
	_ = PrependPath(environ, "/x")
	if diff := cmp.Diff([]string{"PATH=/bin", "A=1"}, environ); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}

func TestLookupEnv(t *testing.T) {
	t.Parallel()

	environ := []string{"A=1", "PATH=/first", "B=x=y", "PATH=/second"}

	if v, ok := lookupEnv(environ, "PATH", false); !ok || v != "/second" {
		t.Errorf("lookupEnv(PATH) = %q, %v; want last entry", v, ok)
	}
	if v, ok := lookupEnv(environ, "B", false); !ok || v != "x=y" {
		t.Errorf("lookupEnv(B) = %q, %v", v, ok)
	}
	if _, ok := lookupEnv(environ, "path", false); ok {
		t.Error("lookupEnv(path) matched without case folding")
	}
	if _, ok := lookupEnv(environ, "path", true); !ok {
		t.Error("lookupEnv(path) did not match with case folding")
	}
}
