// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package hlsl

import "github.com/shaderwright/shaderwright/ir"

// BindTarget is a concrete HLSL register assignment: `register(bN,
// spaceM)`, `register(tN, spaceM)`, etc — the letter is chosen from
// the resource's kind at emission time.
type BindTarget struct {
	Register uint32
	Space    uint32
}

// Options configures one HLSL emission.
type Options struct {
	ShaderModel ShaderModel
	Stage       ir.ShaderStage
	EntryPoint  string

	// BindingMap maps source (set, binding) pairs to HLSL register
	// targets. Entries missing here fall back to FakeMissingBindings.
	BindingMap map[ir.ResourceBinding]BindTarget

	// FakeMissingBindings auto-assigns registers in declaration order
	// for any resource absent from BindingMap, rather than failing.
	FakeMissingBindings bool
}

// DefaultOptions targets Shader Model 5.1 with automatic bindings.
func DefaultOptions() Options {
	return Options{
		ShaderModel:         ShaderModel5_1,
		BindingMap:          make(map[ir.ResourceBinding]BindTarget),
		FakeMissingBindings: true,
	}
}
