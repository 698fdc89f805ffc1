// SPDX-License-Identifier: MPL-2.0

// Command pvenv creates or updates the Python environment of a project.
//
// A project with an environment.yml gets a conda environment; a project
// with a requirements.txt gets a standard virtual environment with its
// requirements installed. When the project configures pre-commit, the
// hooks are installed from the new environment.
package main

func main() {
	Execute()
}
