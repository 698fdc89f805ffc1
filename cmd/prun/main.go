// SPDX-License-Identifier: MPL-2.0

// Command prun runs a command inside the nearest Python virtual environment.
//
// prun walks up from the working directory until it finds an environment
// folder (.venv by default), prepends the environment's executables
// directory to PATH and runs the requested command with it. Without
// arguments it starts the environment's interpreter.
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(Execute(context.Background(), os.Args[1:]))
}
