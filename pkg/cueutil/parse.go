// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds the documents accepted by Compile.
const DefaultMaxFileSize int64 = 1 << 20

type (
	// Option configures Compile.
	Option func(*options)

	options struct {
		filename    string
		maxFileSize int64
	}
)

// WithFilename names the document in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

// Compile unifies data with the schema definition at schemaPath and
// validates the result.
func Compile(schema, data []byte, schemaPath string, opts ...Option) (cue.Value, error) {
	o := options{filename: "<input>", maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	root := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if root.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, root.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if userValue.Err() != nil {
		return cue.Value{}, FormatError(userValue.Err(), o.filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(); err != nil {
		return cue.Value{}, FormatError(err, o.filename)
	}
	return unified, nil
}

// DecodeMap compiles data against the schema and returns the fields the
// document sets, keyed as in the document. The map is suitable for merging
// into a viper instance.
func DecodeMap(schema, data []byte, schemaPath string, opts ...Option) (map[string]any, error) {
	v, err := Compile(schema, data, schemaPath, opts...)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := v.Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	return out, nil
}
