// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Issue identifiers. The zero value means "no guide".
const (
	EnvironmentNotFoundId Id = iota + 1
	ExecutableNotFoundId
	InvalidPlatformId
	ConversionNotSupportedId
	ConfigLoadFailedId
	ProjectDirNotFoundId
	NoProjectDescriptorId
	PythonNotFoundId
	CondaNotFoundId
	BrokenEnvironmentId
	PreCommitNotFoundId
	BootstrapLockedId
)

type (
	// Id identifies a guide.
	Id int

	// MarkdownMsg is the guide body.
	MarkdownMsg string

	// HttpLink is a link listed under a guide.
	HttpLink string

	// Issue is a remediation guide for one kind of failure.
	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		extLinks []HttpLink  // external links that might be useful for the user
	}
)

// Id returns the guide's identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the unrendered guide.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// ExtLinks returns a copy of the guide's external links.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guide for the terminal with the given glamour style
// ("dark", "light", "notty", ... or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	environmentNotFoundIssue = &Issue{
		id: EnvironmentNotFoundId,
		mdMsg: `
# No virtual environment found!

prun looked for an environment folder in the current directory and in each
of its parents, and none of them held a Python interpreter.

## Things you can try:
- Create the environment for your project:
~~~
$ pvenv --project-dir /path/to/project
~~~

- If your environment folder has another name, tell prun about it:
~~~
$ export PVENV_ENV_DIR=venv
~~~`,
	}

	executableNotFoundIssue = &Issue{
		id: ExecutableNotFoundId,
		mdMsg: `
# Command not found!

The command is not installed in the environment and is not on your PATH.

## Things you can try:
- Install the package that provides it:
~~~
$ prun python -m pip install <package>
~~~

- List what the environment provides:
~~~
$ prun python -m pip list
~~~`,
	}

	invalidPlatformIssue = &Issue{
		id: InvalidPlatformId,
		mdMsg: `
# Unknown platform!

` + "`prun activate`" + ` accepts at most one platform name: one of
windows, linux or darwin (macos).

## Example:
~~~
$ source $(prun activate linux)
~~~`,
	}

	conversionNotSupportedIssue = &Issue{
		id: ConversionNotSupportedId,
		mdMsg: `
# Cannot write Windows paths here!

Paths of this host cannot be rewritten into Windows syntax. Activation
commands for Windows must be generated on Windows.

## Things you can try:
- Run ` + "`prun activate`" + ` without a platform to target this host`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or did not match the expected schema.

## Example config.cue:
~~~cue
env_dir:          ".venv"
max_search_depth: 100
python:           "python3"
log_level:        "info"
~~~

## Things you can try:
- Fix or remove the file named in the error
- Point PRUN_CONFIG at another file`,
	}

	projectDirNotFoundIssue = &Issue{
		id: ProjectDirNotFoundId,
		mdMsg: `
# Project directory not found!

The project directory does not exist or is not a directory.

## Things you can try:
- Check the value passed to ` + "`--project-dir`" + `
- Run pvenv from inside the project`,
	}

	noProjectDescriptorIssue = &Issue{
		id: NoProjectDescriptorId,
		mdMsg: `
# Nothing to install!

pvenv needs one of these files in the project directory:

- ` + "`environment.yml`" + ` creates a conda environment
- ` + "`requirements.txt`" + ` creates a standard virtual environment

## Example requirements.txt:
~~~
requests>=2.31
~~~`,
	}

	pythonNotFoundIssue = &Issue{
		id: PythonNotFoundId,
		mdMsg: `
# Python not found!

pvenv needs a Python interpreter to create the environment.

## Things you can try:
- Install Python 3 and make sure it is on your PATH
- Choose an interpreter explicitly:
~~~
$ export PVENV_PYTHON=/usr/bin/python3.12
~~~`,
	}

	condaNotFoundIssue = &Issue{
		id: CondaNotFoundId,
		mdMsg: `
# conda not found!

The project has an ` + "`environment.yml`" + `, which requires conda.

## Things you can try:
- Install Miniconda or Miniforge and open a new shell
- Check that ` + "`conda`" + ` is on your PATH:
~~~
$ conda --version
~~~`,
		extLinks: []HttpLink{"https://docs.conda.io/projects/miniconda/"},
	}

	brokenEnvironmentIssue = &Issue{
		id: BrokenEnvironmentId,
		mdMsg: `
# Broken environment!

The environment folder exists but holds no Python interpreter.

## Things you can try:
- Recreate it from scratch:
~~~
$ pvenv --clear
~~~`,
	}

	preCommitNotFoundIssue = &Issue{
		id: PreCommitNotFoundId,
		mdMsg: `
# pre-commit not installed!

The project has a ` + "`.pre-commit-config.yaml`" + ` but the environment does
not provide the pre-commit executable.

## Things you can try:
- Add ` + "`pre-commit`" + ` to requirements.txt or environment.yml and run pvenv again`,
		extLinks: []HttpLink{"https://pre-commit.com/"},
	}

	bootstrapLockedIssue = &Issue{
		id: BootstrapLockedId,
		mdMsg: `
# Another pvenv is running!

Only one pvenv may work on a project at a time.

## Things you can try:
- Wait for the other run to finish and try again`,
	}

	issues = map[Id]*Issue{
		environmentNotFoundIssue.Id():    environmentNotFoundIssue,
		executableNotFoundIssue.Id():     executableNotFoundIssue,
		invalidPlatformIssue.Id():        invalidPlatformIssue,
		conversionNotSupportedIssue.Id(): conversionNotSupportedIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		projectDirNotFoundIssue.Id():     projectDirNotFoundIssue,
		noProjectDescriptorIssue.Id():    noProjectDescriptorIssue,
		pythonNotFoundIssue.Id():         pythonNotFoundIssue,
		condaNotFoundIssue.Id():          condaNotFoundIssue,
		brokenEnvironmentIssue.Id():      brokenEnvironmentIssue,
		preCommitNotFoundIssue.Id():      preCommitNotFoundIssue,
		bootstrapLockedIssue.Id():        bootstrapLockedIssue,
	}
)

// Values returns every guide ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

// Get returns the guide for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
