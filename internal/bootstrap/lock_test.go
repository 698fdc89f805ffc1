// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLockPathFor(t *testing.T) {
	t.Parallel()

	runtimeDir := t.TempDir()
	withRuntime := func(key string) string {
		if key == "XDG_RUNTIME_DIR" {
			return runtimeDir
		}
		return ""
	}
	noRuntime := func(string) string { return "" }

	a := lockPathFor("/work/a", withRuntime)
	if filepath.Dir(a) != runtimeDir {
		t.Errorf("lockPathFor() = %q, want it under %q", a, runtimeDir)
	}
	if base := filepath.Base(a); !strings.HasPrefix(base, "pvenv-") || !strings.HasSuffix(base, ".lock") {
		t.Errorf("lockPathFor() base = %q", base)
	}
	if again := lockPathFor("/work/a", withRuntime); again != a {
		t.Errorf("lockPathFor() not stable: %q != %q", again, a)
	}
	if b := lockPathFor("/work/b", withRuntime); b == a {
		t.Errorf("lockPathFor() collides for different projects: %q", b)
	}
	if fallback := lockPathFor("/work/a", noRuntime); filepath.Dir(fallback) != os.TempDir() {
		t.Errorf("lockPathFor() fallback = %q, want it under %q", fallback, os.TempDir())
	}
}

func TestAcquireProjectLock(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "project.lock")
	ctx := context.Background()

	unlock, err := acquireProjectLock(ctx, path, "/work/a", time.Second)
	if err != nil {
		t.Fatalf("first acquire error = %v", err)
	}

	_, err = acquireProjectLock(ctx, path, "/work/a", 150*time.Millisecond)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("second acquire error = %v, want ErrLocked", err)
	}
	var lockedErr *LockedError
	if !errors.As(err, &lockedErr) || lockedErr.LockPath != path {
		t.Errorf("LockedError = %+v", lockedErr)
	}

	if err := unlock(); err != nil {
		t.Fatalf("unlock error = %v", err)
	}

	unlock, err = acquireProjectLock(ctx, path, "/work/a", time.Second)
	if err != nil {
		t.Fatalf("acquire after release error = %v", err)
	}
	_ = unlock()
}
