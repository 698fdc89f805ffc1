// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema.
//
// Loading follows three steps:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with a schema definition
//  3. Validate and decode to a Go value
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	settings, err := cueutil.DecodeMap(schema, data, "#Config",
//	    cueutil.WithFilename("config.cue"))
//	if err != nil {
//	    return err // lists every offending field
//	}
package cueutil
