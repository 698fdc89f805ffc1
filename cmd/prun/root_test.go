// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/peterpypan/prun/internal/config"
	"github.com/peterpypan/prun/internal/issue"
	"github.com/peterpypan/prun/internal/runner"
	"github.com/peterpypan/prun/internal/testutil"
)

type testApp struct {
	*app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestApp returns an app searching from dir with a minimal PATH and an
// empty config dir. PVENV_* variables are blanked so the host cannot leak
// into the configuration.
func newTestApp(t *testing.T, dir string) *testApp {
	t.Helper()
	for _, key := range []string{"ENV_DIR", "MAX_SEARCH_DEPTH", "PYTHON", "LOG_LEVEL"} {
		t.Setenv(config.EnvPrefix+"_"+key, "")
	}

	ta := &testApp{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ta.app = &app{
		stdin:      strings.NewReader(""),
		stdout:     ta.stdout,
		stderr:     ta.stderr,
		environ:    []string{"PATH=/usr/bin:/bin", "PRUN_TEST=1"},
		dir:        dir,
		configOpts: config.LoadOptions{ConfigDirPath: t.TempDir()},
		configs:    config.NewProvider(),
	}
	return ta
}

func (ta *testApp) exec(args ...string) int {
	return exitCode(ta.execute(context.Background(), args))
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell scripts")
	}
}

// newProject creates a project with an environment and returns the project
// dir and a directory nested a few levels inside it.
func newProject(t *testing.T) (testutil.FakeEnv, string) {
	t.Helper()
	project := t.TempDir()
	env := testutil.MustCreateEnv(t, project, ".venv")
	nested := filepath.Join(project, "src", "pkg", "deep")
	testutil.MustMkdirAll(t, nested, 0o755)
	return env, nested
}

func TestHelp(t *testing.T) {
	for _, marker := range []string{"-h", "-help"} {
		t.Run(marker, func(t *testing.T) {
			ta := newTestApp(t, t.TempDir())

			if code := ta.exec(marker); code != 0 {
				t.Fatalf("exit code = %d, want 0; stderr: %s", code, ta.stderr)
			}
			out := ta.stdout.String()
			for _, want := range []string{"prun script.py", "prun activate [platform]", "source $(prun activate)", "PVENV_ENV_DIR"} {
				if !strings.Contains(out, want) {
					t.Errorf("usage missing %q:\n%s", want, out)
				}
			}
			if ta.stderr.Len() != 0 {
				t.Errorf("stderr = %q, want empty", ta.stderr)
			}
		})
	}
}

func TestNoEnvironment(t *testing.T) {
	ta := newTestApp(t, t.TempDir())

	code := ta.exec("python", "-c", "print(1)")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	errOut := ta.stderr.String()
	if !strings.Contains(errOut, "no virtual environment was found") {
		t.Errorf("stderr = %q, want the not-found message", errOut)
	}
	if !strings.Contains(errOut, "pvenv") {
		t.Errorf("stderr = %q, want the pvenv suggestion", errOut)
	}
	if ta.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing run", ta.stdout)
	}
}

func TestNoEnvironment_IssueAttached(t *testing.T) {
	ta := newTestApp(t, t.TempDir())

	err := ta.execute(context.Background(), nil)
	if g := issue.GuideFor(err); g == nil || g.Id() != issue.EnvironmentNotFoundId {
		t.Errorf("GuideFor() = %v, want the environment guide", g)
	}
}

func TestRunScript(t *testing.T) {
	skipOnWindows(t)
	_, nested := newProject(t)
	ta := newTestApp(t, nested)

	if code := ta.exec("script.py", "a", "b c"); code != 0 {
		t.Fatalf("exit code = %d; stderr: %s", code, ta.stderr)
	}
	if got, want := ta.stdout.String(), "python script.py a b c\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRunInterpreter(t *testing.T) {
	skipOnWindows(t)
	_, nested := newProject(t)
	ta := newTestApp(t, nested)

	if code := ta.exec(); code != 0 {
		t.Fatalf("exit code = %d; stderr: %s", code, ta.stderr)
	}
	if got := ta.stdout.String(); got != "python \n" {
		t.Errorf("stdout = %q, want the bare interpreter", got)
	}
}

func TestShow(t *testing.T) {
	skipOnWindows(t)
	env, nested := newProject(t)
	testutil.MustWriteExecutable(t, filepath.Join(env.ExecDir, "which"), `echo "which $*"`)
	ta := newTestApp(t, nested)

	if code := ta.exec("-show", "ignored"); code != 0 {
		t.Fatalf("exit code = %d; stderr: %s", code, ta.stderr)
	}
	if got := ta.stdout.String(); got != "which python\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRunCommand_SeesEnvironmentFirstOnPath(t *testing.T) {
	skipOnWindows(t)
	env, nested := newProject(t)
	testutil.MustWriteExecutable(t, filepath.Join(env.ExecDir, "tool"), `echo "$PATH|$PRUN_TEST|$1"`)
	ta := newTestApp(t, nested)

	if code := ta.exec("tool", "--flag"); code != 0 {
		t.Fatalf("exit code = %d; stderr: %s", code, ta.stderr)
	}
	want := env.ExecDir + ":/usr/bin:/bin|1|--flag\n"
	if got := ta.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRunCommand_PropagatesExitCode(t *testing.T) {
	skipOnWindows(t)
	env, nested := newProject(t)
	testutil.MustWriteExecutable(t, filepath.Join(env.ExecDir, "fails"), `exit 7`)
	ta := newTestApp(t, nested)

	err := ta.execute(context.Background(), []string{"fails"})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 7 {
		t.Fatalf("execute() error = %v, want exit code 7", err)
	}
	if exitCode(err) != 7 {
		t.Errorf("exitCode() = %d, want 7", exitCode(err))
	}
	if ta.stderr.Len() != 0 {
		t.Errorf("stderr = %q, want the child's own output only", ta.stderr)
	}
}

func TestRunCommand_NotFound(t *testing.T) {
	skipOnWindows(t)
	_, nested := newProject(t)
	ta := newTestApp(t, nested)

	if code := ta.exec("no-such-tool", "x"); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if got := ta.stderr.String(); got != "no-such-tool: command not found\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestRunCommand_LaunchFailure(t *testing.T) {
	skipOnWindows(t)
	env, nested := newProject(t)
	broken := filepath.Join(env.ExecDir, "broken")
	testutil.MustWriteFile(t, broken, "\x00\x01garbage", 0o755)
	ta := newTestApp(t, nested)

	err := ta.execute(context.Background(), []string{"broken"})
	if exitCode(err) != 1 {
		t.Fatalf("exitCode() = %d, want 1", exitCode(err))
	}
	if !errors.Is(err, runner.ErrChildProcessLaunch) {
		t.Errorf("execute() error = %v, want a launch failure", err)
	}
	if got := ta.stderr.String(); !strings.HasPrefix(got, broken+": command not found\n") {
		t.Errorf("stderr = %q", got)
	}
}

func TestActivate(t *testing.T) {
	skipOnWindows(t)
	env, nested := newProject(t)
	testutil.MustAddActivate(t, env, "# activate")
	ta := newTestApp(t, nested)

	if code := ta.exec("activate"); code != 0 {
		t.Fatalf("exit code = %d; stderr: %s", code, ta.stderr)
	}
	want := "source " + filepath.Join(env.ExecDir, "activate")
	if got := ta.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q (no trailing newline)", got, want)
	}
}

func TestActivate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantInErr string
		wantIssue issue.Id
	}{
		{name: "invalid platform", args: []string{"activate", "bogus"}, wantInErr: "bogus", wantIssue: issue.InvalidPlatformId},
		{name: "too many arguments", args: []string{"activate", "linux", "extra"}, wantInErr: "at most one", wantIssue: issue.InvalidPlatformId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No environment exists: argument errors come first.
			ta := newTestApp(t, t.TempDir())

			err := ta.execute(context.Background(), tt.args)
			if exitCode(err) != 1 {
				t.Fatalf("exitCode() = %d, want 1", exitCode(err))
			}
			if !strings.Contains(ta.stderr.String(), tt.wantInErr) {
				t.Errorf("stderr = %q, want it to mention %q", ta.stderr, tt.wantInErr)
			}
			if g := issue.GuideFor(err); g == nil || g.Id() != tt.wantIssue {
				t.Errorf("GuideFor() = %v, want issue %d", g, tt.wantIssue)
			}
		})
	}
}

func TestActivate_WindowsTargetOnPosixHost(t *testing.T) {
	skipOnWindows(t)
	env, nested := newProject(t)
	testutil.MustAddActivate(t, env, "# activate")
	ta := newTestApp(t, nested)

	err := ta.execute(context.Background(), []string{"activate", "windows"})
	if exitCode(err) != 1 {
		t.Fatalf("exitCode() = %d, want 1", exitCode(err))
	}
	if g := issue.GuideFor(err); g == nil || g.Id() != issue.ConversionNotSupportedId {
		t.Errorf("GuideFor() = %v, want the conversion guide", g)
	}
	if ta.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing printed", ta.stdout)
	}
}

func TestActivate_MissingScript(t *testing.T) {
	skipOnWindows(t)
	_, nested := newProject(t)
	ta := newTestApp(t, nested)

	if code := ta.exec("activate"); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if got := ta.stderr.String(); got != "activate: command not found\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestEnvDirFromConfig(t *testing.T) {
	skipOnWindows(t)
	project := t.TempDir()
	testutil.MustCreateEnv(t, project, "venv")
	ta := newTestApp(t, project)

	// The default name finds nothing.
	if code := ta.exec("script.py"); code != 1 {
		t.Fatalf("exit code with default env dir = %d, want 1", code)
	}

	t.Setenv(config.EnvPrefix+"_ENV_DIR", "venv")
	ta.stdout.Reset()
	if code := ta.exec("script.py"); code != 0 {
		t.Fatalf("exit code = %d; stderr: %s", code, ta.stderr)
	}
	if got := ta.stdout.String(); got != "python script.py\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestAbsoluteEnvDir(t *testing.T) {
	skipOnWindows(t)
	env := testutil.MustCreateEnv(t, t.TempDir(), "shared")
	ta := newTestApp(t, t.TempDir())
	t.Setenv(config.EnvPrefix+"_ENV_DIR", env.Root)

	if code := ta.exec("script.py"); code != 0 {
		t.Fatalf("exit code = %d; stderr: %s", code, ta.stderr)
	}
	if got := ta.stdout.String(); got != "python script.py\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestIgnoresBootstrapSettings(t *testing.T) {
	skipOnWindows(t)
	_, nested := newProject(t)
	ta := newTestApp(t, nested)
	t.Setenv(config.EnvPrefix+"_LOG_LEVEL", "loud")

	if code := ta.exec("script.py"); code != 0 {
		t.Fatalf("exit code = %d; stderr: %s", code, ta.stderr)
	}
}

func TestInvalidConfig(t *testing.T) {
	skipOnWindows(t)
	_, nested := newProject(t)
	ta := newTestApp(t, nested)
	testutil.MustWriteFile(t, filepath.Join(ta.configOpts.ConfigDirPath, "config.cue"), "max_search_depth: 0\n", 0o644)

	err := ta.execute(context.Background(), []string{"script.py"})
	if exitCode(err) != 1 {
		t.Fatalf("exitCode() = %d, want 1", exitCode(err))
	}
	if g := issue.GuideFor(err); g == nil || g.Id() != issue.ConfigLoadFailedId {
		t.Errorf("GuideFor() = %v, want the config guide", g)
	}
	if ta.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing run", ta.stdout)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", want: 0},
		{name: "exit error", err: &ExitError{Code: 3}, want: 3},
		{name: "wrapped exit error", err: errors.Join(errors.New("x"), &ExitError{Code: 9}), want: 9},
		{name: "plain error", err: errors.New("boom"), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
