// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"sort"

	"github.com/shaderwright/shaderwright"
	"github.com/shaderwright/shaderwright/ir"
)

// fixture builds a demo *ir.Shader the CLI can compile, validate, or
// batch — a stand-in for the real front-end this repository does not
// build (spec.md's explicit non-goal: the DSL value-wrapper layer that
// would normally call ShaderBuilder remains an external collaborator).
type fixture func() *ir.Shader

var fixtures = map[string]fixture{
	"solid-vertex":   solidVertexFixture,
	"solid-fragment": solidFragmentFixture,
}

func fixtureNames() []string {
	names := make([]string, 0, len(fixtures))
	for n := range fixtures {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func loadFixture(name string) (*ir.Shader, error) {
	f, ok := fixtures[name]
	if !ok {
		return nil, fmt.Errorf("unknown fixture %q (available: %v)", name, fixtureNames())
	}
	return f(), nil
}

// solidVertexFixture builds a vertex shader whose entry point writes a
// fixed clip-space position, exercising RegisterBuiltin/Assign/Return.
func solidVertexFixture() *ir.Shader {
	b := shaderwright.NewShader()
	vec4 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec4, Kind: ir.ScalarF32})

	pos := b.RegisterBuiltin("position", vec4, ir.BuiltinPosition, ir.FlagShaderOutput)

	b.BeginFunction("main", nil, b.Shader.Types.GetBasic(ir.VoidType{}), ir.FnEntryPoint, ir.StageVertex)
	zero := b.Lit(ir.ScalarF32, ir.LitF32(0))
	one := b.Lit(ir.ScalarF32, ir.LitF32(1))
	clip := b.CompositeConstruct([]ir.ExprHandle{zero, zero, zero, one}, vec4)
	b.Assign(ir.AssignSet, b.Ref(pos), clip)
	b.Return(nil)
	b.EndFunction()

	return b.Shader
}

// solidFragmentFixture builds a fragment shader whose entry point
// writes a fixed opaque red to its single output, exercising
// RegisterOutput/CompositeConstruct/Assign.
func solidFragmentFixture() *ir.Shader {
	b := shaderwright.NewShader()
	vec4 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec4, Kind: ir.ScalarF32})

	const entry = "main"
	outColor := b.RegisterOutput(entry, "fragColor", vec4, 0, ir.InterpPerspective)

	b.BeginFunction(entry, nil, b.Shader.Types.GetBasic(ir.VoidType{}), ir.FnEntryPoint, ir.StageFragment)
	one := b.Lit(ir.ScalarF32, ir.LitF32(1))
	zero := b.Lit(ir.ScalarF32, ir.LitF32(0))
	red := b.CompositeConstruct([]ir.ExprHandle{one, zero, zero, one}, vec4)
	b.Assign(ir.AssignSet, b.Ref(outColor), red)
	b.Return(nil)
	b.EndFunction()

	return b.Shader
}
