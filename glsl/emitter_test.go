// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strings"
	"testing"

	"github.com/shaderwright/shaderwright/builder"
	"github.com/shaderwright/shaderwright/ir"
)

// A minimal fragment shader writing a constant color emits a
// `#version` directive, the output variable's declaration, and an
// assignment inside main.
func TestEmitFragmentShader(t *testing.T) {
	b := builder.New()
	vec4 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec4, Kind: ir.ScalarF32})
	outColor := b.RegisterOutput("main", "fragColor", vec4, 0, ir.InterpPerspective)

	b.BeginFunction("main", nil, b.Shader.Types.GetBasic(ir.VoidType{}), ir.FnEntryPoint, ir.StageFragment)
	one := b.Lit(ir.ScalarF32, ir.LitF32(1))
	zero := b.Lit(ir.ScalarF32, ir.LitF32(0))
	color := b.CompositeConstruct([]ir.ExprHandle{one, zero, zero, one}, vec4)
	b.Assign(ir.AssignSet, b.Ref(outColor), color)
	b.Return(nil)
	b.EndFunction()

	src, err := Emit(b.Shader, DefaultOptions())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	if !strings.HasPrefix(src, "#version 450") {
		t.Errorf("output does not start with the GL 4.50 version directive:\n%s", src)
	}
	if !strings.Contains(src, "fragColor") {
		t.Errorf("output does not mention the declared output variable:\n%s", src)
	}
	if !strings.Contains(src, "main") {
		t.Errorf("output does not contain a main entry point:\n%s", src)
	}
}

// Requesting an entry point name the shader doesn't define is an
// error, not a silently empty emission.
func TestEmitUnknownEntryPointErrors(t *testing.T) {
	b := builder.New()
	vec4 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec4, Kind: ir.ScalarF32})
	b.BeginFunction("main", nil, b.Shader.Types.GetBasic(ir.VoidType{}), ir.FnEntryPoint, ir.StageFragment)
	b.Return(nil)
	b.EndFunction()
	_ = vec4

	opts := DefaultOptions()
	opts.EntryPoint = "nope"
	if _, err := Emit(b.Shader, opts); err == nil {
		t.Fatal("Emit with an unknown entry point name should error, got nil")
	}
}
