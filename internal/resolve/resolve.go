// SPDX-License-Identifier: MPL-2.0

// Package resolve interprets prun's raw argument vector.
//
// prun does not use flag parsing for its own arguments: everything after the
// program name belongs to the command being run. A few leading tokens have a
// special meaning and are classified here, in order:
//
//	(nothing)            run the interpreter
//	script.py args...    run the interpreter with the script
//	-show                show where the interpreter lives
//	-h, -help            print usage
//	activate [platform]  print an activation command
//	command args...      run command from the environment's search path
package resolve

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/peterpypan/prun/internal/execpath"
	"github.com/peterpypan/prun/pkg/platform"
)

// Special tokens.
const (
	ScriptSuffix   = ".py"
	ShowMarker     = "-show"
	ActivateMarker = "activate"
)

// Request kinds.
const (
	// KindRun executes Argv.
	KindRun Kind = iota
	// KindShow executes Argv, the host's show command for the interpreter.
	KindShow
	// KindHelp prints usage; Argv is empty.
	KindHelp
	// KindActivate prints an activation command; Argv is the marker token.
	KindActivate
)

var (
	// helpMarkers are the tokens that request usage output.
	helpMarkers = []string{"-h", "-help"}

	// ErrInvalidPlatform is the sentinel error wrapped by InvalidPlatformError.
	ErrInvalidPlatform = errors.New("invalid platform")
	// ErrTooManyArguments is the sentinel error wrapped by TooManyArgumentsError.
	ErrTooManyArguments = errors.New("too many arguments")
)

type (
	// Kind classifies a Request.
	Kind int

	// Request is the classified form of prun's arguments. It is built once
	// and not modified afterwards.
	Request struct {
		Kind Kind
		// Argv is the command to execute. For KindRun the first element is
		// an absolute path once Lookup has run.
		Argv []string
		// Target is the platform an activation command is generated for.
		// Empty means the host platform.
		Target platform.ID

		// external marks a command named by the user, as opposed to the
		// interpreter forms that prun fills in itself.
		external bool
	}

	// InvalidPlatformError is returned when the platform given to activate is
	// not recognized. It wraps ErrInvalidPlatform for errors.Is() compatibility.
	InvalidPlatformError struct {
		Value string
	}

	// TooManyArgumentsError is returned when activate gets more than one
	// argument. It wraps ErrTooManyArguments for errors.Is() compatibility.
	TooManyArgumentsError struct {
		Args []string
	}
)

// Error implements the error interface.
func (e *InvalidPlatformError) Error() string {
	return fmt.Sprintf("the provided platform (%s) is invalid; possible values are: %s",
		e.Value, strings.Join(platform.SupportedNames(), ", "))
}

// Unwrap returns ErrInvalidPlatform so callers can use errors.Is for programmatic detection.
func (e *InvalidPlatformError) Unwrap() error { return ErrInvalidPlatform }

// Error implements the error interface.
func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("%s accepts at most one platform argument, got %d: %s",
		ActivateMarker, len(e.Args), strings.Join(e.Args, " "))
}

// Unwrap returns ErrTooManyArguments so callers can use errors.Is for programmatic detection.
func (e *TooManyArgumentsError) Unwrap() error { return ErrTooManyArguments }

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRun:
		return "run"
	case KindShow:
		return "show"
	case KindHelp:
		return "help"
	case KindActivate:
		return "activate"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Classify applies the classification rules to args without touching the
// filesystem. The arguments of a KindRun request are left as given; see
// Lookup.
func Classify(args []string, profile platform.Profile) (*Request, error) {
	args = slices.Clone(args)

	if len(args) == 0 {
		return &Request{Kind: KindRun, Argv: []string{profile.Interpreter()}}, nil
	}

	first := args[0]
	switch {
	case strings.HasSuffix(first, ScriptSuffix):
		return &Request{Kind: KindRun, Argv: append([]string{profile.Interpreter()}, args...)}, nil
	case first == ShowMarker:
		return &Request{Kind: KindShow, Argv: []string{profile.ShowCommand(), profile.Interpreter()}}, nil
	case slices.Contains(helpMarkers, first):
		return &Request{Kind: KindHelp}, nil
	case first == ActivateMarker:
		return classifyActivate(args[1:])
	default:
		return &Request{Kind: KindRun, Argv: args, external: true}, nil
	}
}

func classifyActivate(rest []string) (*Request, error) {
	req := &Request{Kind: KindActivate, Argv: []string{ActivateMarker}}
	switch len(rest) {
	case 0:
		return req, nil
	case 1:
		id, err := platform.Parse(rest[0])
		if err != nil {
			return nil, &InvalidPlatformError{Value: rest[0]}
		}
		req.Target = id
		return req, nil
	default:
		return nil, &TooManyArgumentsError{Args: rest}
	}
}

// Lookup resolves a user-named command against searchPath and returns a
// request whose first argument is the executable's absolute path. The
// interpreter forms and the other kinds are returned unchanged; their first
// token is resolved when the process starts.
func (r *Request) Lookup(searchPath string) (*Request, error) {
	if !r.external {
		return r, nil
	}
	exe, err := execpath.Find(r.Argv[0], searchPath)
	if err != nil {
		return nil, err
	}
	argv := slices.Clone(r.Argv)
	argv[0] = exe
	return &Request{Kind: r.Kind, Argv: argv, Target: r.Target, external: true}, nil
}

// Resolve classifies args and resolves the command against searchPath.
// An unresolvable command yields an *execpath.NotFoundError.
func Resolve(args []string, searchPath string, profile platform.Profile) (*Request, error) {
	req, err := Classify(args, profile)
	if err != nil {
		return nil, err
	}
	return req.Lookup(searchPath)
}
