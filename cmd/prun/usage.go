// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterpypan/prun/internal/config"
	"github.com/peterpypan/prun/internal/style"
	"github.com/peterpypan/prun/internal/venv"
	"github.com/peterpypan/prun/pkg/platform"
)

// usageForms lists each invocation with its description.
var usageForms = [][2]string{
	{"prun", "start the environment's interpreter"},
	{"prun script.py [args...]", "run a script with the interpreter"},
	{"prun <command> [args...]", "run a command from the environment"},
	{"prun -show", "show where the interpreter lives"},
	{"prun activate [platform]", "print the command that activates the environment"},
	{"prun -h, -help", "show this help"},
}

func printUsage(w io.Writer) {
	s := style.For(w)
	var b strings.Builder

	b.WriteString(s.Title.Render("prun") + s.Subtitle.Render(" - run commands inside the nearest Python virtual environment") + "\n\n")

	b.WriteString(s.Subtitle.Render("Usage:") + "\n")
	for _, f := range usageForms {
		fmt.Fprintf(&b, "  %s  %s\n", s.Cmd.Render(fmt.Sprintf("%-26s", f[0])), f[1])
	}

	b.WriteString("\n" + s.Subtitle.Render("Activation:") + "\n")
	fmt.Fprintf(&b, "  %s  POSIX shells\n", s.Cmd.Render(fmt.Sprintf("%-26s", "source $(prun activate)")))
	fmt.Fprintf(&b, "  %s  git-bash on Windows\n", s.Cmd.Render(fmt.Sprintf("%-26s", "source $(prun activate linux)")))
	fmt.Fprintf(&b, "  Platforms: %s\n", strings.Join(platform.SupportedNames(), ", "))

	b.WriteString("\n" + s.Subtitle.Render("Environment:") + "\n")
	fmt.Fprintf(&b, "  %-24s environment folder name (default %s)\n", venv.EnvDirVar, config.DefaultEnvDir)
	fmt.Fprintf(&b, "  %-24s maximum number of folders searched\n", config.EnvPrefix+"_MAX_SEARCH_DEPTH")
	fmt.Fprintf(&b, "  %-24s configuration file\n", config.ConfigPathVar)

	_, _ = io.WriteString(w, b.String())
}
