// SPDX-License-Identifier: MPL-2.0

// Package bootstrap prepares a project's Python environment for pvenv.
//
// The project directory decides the strategy: an environment.yml selects a
// conda environment, otherwise a requirements.txt selects a standard
// virtual environment. File contents are never parsed. After the
// environment is ready, pre-commit hooks are installed when the project has
// a .pre-commit-config.yaml.
//
// Every step runs as a subprocess in the project directory through an
// Executor, and only one bootstrap runs per project at a time.
package bootstrap
