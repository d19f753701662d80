// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package glsl

import "github.com/shaderwright/shaderwright/ir"

// WriterFlags control output formatting.
type WriterFlags uint32

const (
	WriterFlagNone WriterFlags = 0
	// WriterFlagExplicitTypes requests a cast on every composite
	// constructor argument. Emit does not read Options.Flags, so setting
	// it leaves the output unchanged.
	WriterFlagExplicitTypes WriterFlags = 1 << iota
)

// Options configures one GLSL emission.
type Options struct {
	Version    Version
	Stage      ir.ShaderStage
	EntryPoint string // function name of the entry point to emit; "" picks the shader's first
	Flags      WriterFlags
}

// DefaultOptions returns desktop GL 4.50 core settings.
func DefaultOptions() Options {
	return Options{Version: Version450}
}
