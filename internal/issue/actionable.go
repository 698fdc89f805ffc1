// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a failure reported to the user as
	// "failed to <operation>: <resource>: <cause>", followed by suggestions
	// and, when Issue is set, the matching guide.
	ActionableError struct {
		// Operation is a verb phrase, e.g. "create environment".
		Operation string
		// Resource is the path or name the operation worked on.
		Resource    string
		Suggestions []string
		Issue       Id
		Cause       error
	}

	// ErrorContext collects the fields of an ActionableError.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		issue       Id
		cause       error
	}
)

// NewErrorContext returns an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// GuideFor returns the guide attached to the first ActionableError in err's
// chain, or nil.
func GuideFor(err error) *Issue {
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Issue == 0 {
		return nil
	}
	return Get(ae.Issue)
}

// Error implements the error interface.
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the cause.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message with one bulleted line per suggestion. In
// verbose mode the numbered cause chain follows.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for depth, err := 1, e.Cause; err != nil; depth, err = depth+1, errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, err)
		}
	}
	return b.String()
}

// WithOperation sets the operation.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the resource.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends a suggestion.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithIssue attaches a guide.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

// Wrap sets the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// BuildError returns the collected ActionableError, or nil when no
// operation was set.
func (c *ErrorContext) BuildError() error {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Issue:       c.issue,
		Cause:       c.cause,
	}
}
