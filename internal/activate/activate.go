// SPDX-License-Identifier: MPL-2.0

// Package activate builds the shell command that activates a located
// environment. prun prints the command rather than running it, so that a
// shell can evaluate it, e.g. `source $(prun activate)`.
package activate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/peterpypan/prun/internal/execpath"
	"github.com/peterpypan/prun/internal/venv"
	"github.com/peterpypan/prun/pkg/pathconv"
	"github.com/peterpypan/prun/pkg/platform"
)

const (
	// CondaExec is the conda management executable.
	CondaExec = "conda"
	// ScriptName is the activation script of a standard environment, without
	// any platform extension.
	ScriptName = "activate"
)

// Builder composes activation commands for a host platform.
type Builder struct {
	host       platform.ID
	searchPath string
	translator pathconv.Translator
}

// NewBuilder returns a Builder for host. searchPath is the host's own PATH,
// where the conda executable must be found.
func NewBuilder(host platform.ID, searchPath string) *Builder {
	return &Builder{
		host:       host,
		searchPath: searchPath,
		translator: pathconv.NewTranslator(host),
	}
}

// Build returns the activation command for loc. target selects the platform
// whose shell will evaluate the command; empty means the host.
//
// A conda environment is activated with `conda activate <root>`. A standard
// environment is activated by the target's prefix tokens followed by the
// path to its activate script.
func (b *Builder) Build(loc *venv.Location, target platform.ID) ([]string, error) {
	if target == "" {
		target = b.host
	}
	targetProfile, err := platform.Lookup(target)
	if err != nil {
		return nil, err
	}

	if loc.IsConda() {
		if _, err := execpath.Find(CondaExec, b.searchPath); err != nil {
			return nil, err
		}
		root, err := b.translator.Translate(loc.Root, target, true)
		if err != nil {
			return nil, fmt.Errorf("translating %s: %w", loc.Root, err)
		}
		return []string{CondaExec, ScriptName, root}, nil
	}

	if _, err := execpath.FindFile(ScriptName, loc.ExecDir); err != nil {
		return nil, err
	}
	// The extensionless name lets the target shell pick its own variant
	// (activate, activate.bat, ...).
	scriptPath := filepath.Join(loc.ExecDir, ScriptName)
	script, err := b.translator.Translate(scriptPath, target, true)
	if err != nil {
		return nil, fmt.Errorf("translating %s: %w", scriptPath, err)
	}
	return append(targetProfile.ActivatePrefix(), script), nil
}

// Line joins an activation command into the single line prun prints.
func Line(argv []string) string {
	return strings.Join(argv, " ")
}
