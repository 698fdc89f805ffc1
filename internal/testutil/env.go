// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

// FakeEnv describes a fake Python environment created on disk for tests.
type FakeEnv struct {
	// Root is the environment folder.
	Root string
	// ExecDir is the executables directory inside Root.
	ExecDir string
	// Interpreter is the fake interpreter's path.
	Interpreter string
}

// ExecDirName returns the executables directory name used on the host.
func ExecDirName() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

// ExeName returns the on-disk file name of an executable on the host.
func ExeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// MustWriteExecutable writes an executable shell script to path.
// On Windows the content is written unchanged; only the file's presence
// matters there.
func MustWriteExecutable(t testing.TB, path, script string) {
	t.Helper()
	MustWriteFile(t, path, "#!/bin/sh\n"+script+"\n", 0o755)
}

// MustCreateEnv creates a fake environment named envDir inside projectDir,
// holding an executable Python interpreter.
func MustCreateEnv(t testing.TB, projectDir, envDir string) FakeEnv {
	t.Helper()
	root := filepath.Join(projectDir, envDir)
	execDir := filepath.Join(root, ExecDirName())
	interpreter := filepath.Join(execDir, ExeName("python"))
	MustWriteExecutable(t, interpreter, `echo "python $*"`)
	return FakeEnv{Root: root, ExecDir: execDir, Interpreter: interpreter}
}

// MustAddActivate writes an activate script into the environment.
func MustAddActivate(t testing.TB, env FakeEnv, script string) string {
	t.Helper()
	name := "activate"
	if runtime.GOOS == "windows" {
		name = "activate.bat"
	}
	path := filepath.Join(env.ExecDir, name)
	MustWriteFile(t, path, script+"\n", 0o644)
	return path
}

// MustMarkConda turns the environment into a conda environment by adding
// the conda-meta folder.
func MustMarkConda(t testing.TB, env FakeEnv) {
	t.Helper()
	MustMkdirAll(t, filepath.Join(env.Root, "conda-meta"), 0o755)
}
