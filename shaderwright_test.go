// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package shaderwright

import (
	"strings"
	"testing"

	"github.com/shaderwright/shaderwright/builder"
	"github.com/shaderwright/shaderwright/glsl"
	"github.com/shaderwright/shaderwright/hlsl"
	"github.com/shaderwright/shaderwright/ir"
	"github.com/shaderwright/shaderwright/spirv"
)

func buildTriangleFragment(b *builder.ShaderBuilder) {
	vec4 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec4, Kind: ir.ScalarF32})
	outColor := b.RegisterOutput("main", "fragColor", vec4, 0, ir.InterpPerspective)

	b.BeginFunction("main", nil, b.Shader.Types.GetBasic(ir.VoidType{}), ir.FnEntryPoint, ir.StageFragment)
	one := b.Lit(ir.ScalarF32, ir.LitF32(1))
	zero := b.Lit(ir.ScalarF32, ir.LitF32(0))
	color := b.CompositeConstruct([]ir.ExprHandle{one, zero, zero, one}, vec4)
	b.Assign(ir.AssignSet, b.Ref(outColor), color)
	b.Return(nil)
	b.EndFunction()
}

// CompileGLSL/CompileHLSL/CompileSPIRV all successfully emit the same
// minimal fragment shader through the shared public API (spec.md's
// end-to-end "build once, emit to any backend" requirement).
func TestCompileAllBackends(t *testing.T) {
	glslShader := NewShader()
	buildTriangleFragment(glslShader)
	src, diags, err := CompileGLSL(glslShader.Shader, glsl.DefaultOptions())
	if err != nil {
		t.Fatalf("CompileGLSL: %v", err)
	}
	if !strings.Contains(src, "fragColor") {
		t.Errorf("GLSL output missing fragColor:\n%s", src)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics from a well-formed shader: %+v", diags)
	}

	hlslShader := NewShader()
	buildTriangleFragment(hlslShader)
	hsrc, _, err := CompileHLSL(hlslShader.Shader, hlsl.DefaultOptions())
	if err != nil {
		t.Fatalf("CompileHLSL: %v", err)
	}
	if !strings.Contains(hsrc, "fragColor") {
		t.Errorf("HLSL output missing fragColor:\n%s", hsrc)
	}

	spirvShader := NewShader()
	buildTriangleFragment(spirvShader)
	mod, _, err := CompileSPIRV(spirvShader.Shader, spirv.DefaultOptions())
	if err != nil {
		t.Fatalf("CompileSPIRV: %v", err)
	}
	if len(mod) == 0 {
		t.Error("CompileSPIRV returned an empty module")
	}
	if _, err := spirv.Deserialize(mod); err != nil {
		t.Errorf("CompileSPIRV's output does not deserialize: %v", err)
	}
}

// A fragment shader that reassigns a local variable (spec.md §8
// scenario 6's `int i=0; i=i+1; i=i+2;`) must still emit valid,
// compilable GLSL and HLSL: TransformSSA's renamed variables have to
// surface as real declarations with underscore-separated identifiers,
// never a bare reassignment to an undeclared, dotted name.
func buildLocaleReassignmentFragment(b *builder.ShaderBuilder) {
	vec4 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec4, Kind: ir.ScalarF32})
	i32 := b.Shader.Types.GetBasic(ir.ScalarType{Kind: ir.ScalarI32})
	f32 := b.Shader.Types.GetBasic(ir.ScalarType{Kind: ir.ScalarF32})
	outColor := b.RegisterOutput("main", "fragColor", vec4, 0, ir.InterpPerspective)

	b.BeginFunction("main", nil, b.Shader.Types.GetBasic(ir.VoidType{}), ir.FnEntryPoint, ir.StageFragment)

	zero := b.Lit(ir.ScalarI32, ir.LitI32(0))
	iID := b.VariableDecl("i", i32, &zero)

	one := b.Lit(ir.ScalarI32, ir.LitI32(1))
	sum1 := b.BinOp(ir.OpAdd, b.Ref(iID), one, i32)
	b.Assign(ir.AssignSet, b.Ref(iID), sum1)

	two := b.Lit(ir.ScalarI32, ir.LitI32(2))
	sum2 := b.BinOp(ir.OpAdd, b.Ref(iID), two, i32)
	b.Assign(ir.AssignSet, b.Ref(iID), sum2)

	shade := b.Cast(b.Ref(iID), f32)
	color := b.CompositeConstruct([]ir.ExprHandle{shade, shade, shade, one}, vec4)
	b.Assign(ir.AssignSet, b.Ref(outColor), color)
	b.Return(nil)
	b.EndFunction()
}

// No test exercised TransformSSA through to GLSL/HLSL emission on a
// locale reassignment before this: every other emitter test only ever
// assigns to a non-locale output variable.
func TestCompileLocaleReassignmentEmitsValidIdentifiers(t *testing.T) {
	for _, tc := range []struct {
		name string
		run  func(*ir.Shader) (string, error)
	}{
		{"glsl", func(s *ir.Shader) (string, error) {
			src, _, err := CompileGLSL(s, glsl.DefaultOptions())
			return src, err
		}},
		{"hlsl", func(s *ir.Shader) (string, error) {
			src, _, err := CompileHLSL(s, hlsl.DefaultOptions())
			return src, err
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := NewShader()
			buildLocaleReassignmentFragment(b)
			src, err := tc.run(b.Shader)
			if err != nil {
				t.Fatalf("compiling: %v", err)
			}
			if strings.Contains(src, "i.1") || strings.Contains(src, "i.2") {
				t.Errorf("%s output contains a dotted (illegal) identifier:\n%s", tc.name, src)
			}
			if !strings.Contains(src, "i_1") || !strings.Contains(src, "i_2") {
				t.Errorf("%s output missing declared SSA-renamed variables i_1/i_2:\n%s", tc.name, src)
			}
		})
	}
}

// A malformed emission (an entry point name the shader doesn't
// define) surfaces as an error return, never a panic escaping the
// public API.
func TestCompileGLSLUnknownEntryPointIsError(t *testing.T) {
	b := NewShader()
	buildTriangleFragment(b)
	opts := glsl.DefaultOptions()
	opts.EntryPoint = "nonexistent"
	if _, _, err := CompileGLSL(b.Shader, opts); err == nil {
		t.Fatal("CompileGLSL with an unknown entry point should error, got nil")
	}
}
