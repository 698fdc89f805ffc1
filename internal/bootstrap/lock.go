// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	// DefaultLockTimeout is how long a bootstrap waits for another one on
	// the same project.
	DefaultLockTimeout = 30 * time.Second

	lockRetryDelay = 100 * time.Millisecond
)

// ErrLocked is the sentinel error wrapped by LockedError.
var ErrLocked = errors.New("another pvenv is working on this project")

// LockedError is returned when the project lock was not acquired in time.
// It wraps ErrLocked for errors.Is() compatibility.
type LockedError struct {
	ProjectDir string
	LockPath   string
}

// Error implements the error interface.
func (e *LockedError) Error() string {
	return fmt.Sprintf("%s: %s (lock %s)", ErrLocked, e.ProjectDir, e.LockPath)
}

// Unwrap returns ErrLocked so callers can use errors.Is for programmatic detection.
func (e *LockedError) Unwrap() error { return ErrLocked }

// lockPathFor returns the lock file for projectDir. Lock files live in
// $XDG_RUNTIME_DIR (per-user tmpfs) with a fallback to os.TempDir().
func lockPathFor(projectDir string, getenv func(string) string) string {
	dir := getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	sum := sha256.Sum256([]byte(projectDir))
	return filepath.Join(dir, "pvenv-"+hex.EncodeToString(sum[:8])+".lock")
}

// acquireProjectLock takes the exclusive lock at path, waiting up to
// timeout. The returned function releases it.
func acquireProjectLock(ctx context.Context, path, projectDir string, timeout time.Duration) (func() error, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fl := flock.New(path)
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	if !locked {
		return nil, &LockedError{ProjectDir: projectDir, LockPath: path}
	}
	return fl.Unlock, nil
}
