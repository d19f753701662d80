// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

// Package shaderwright is a pure-Go shader compiler: it builds a
// typed, arena-based intermediate representation from the ShaderBuilder
// front-end and emits GLSL, HLSL, or SPIR-V from it.
//
// Example usage (SPIR-V):
//
//	b := shaderwright.NewShader()
//	// ... register inputs/outputs/functions on b ...
//	spirvBytes, diags, err := shaderwright.CompileSPIRV(b.Shader, spirv.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For GLSL or HLSL output, use CompileGLSL or CompileHLSL instead; all
// three share the same transform pipeline and differ only in their
// final emitter.
package shaderwright

import (
	"fmt"

	"github.com/shaderwright/shaderwright/builder"
	"github.com/shaderwright/shaderwright/diag"
	"github.com/shaderwright/shaderwright/glsl"
	"github.com/shaderwright/shaderwright/hlsl"
	"github.com/shaderwright/shaderwright/ir"
	"github.com/shaderwright/shaderwright/spirv"
	"github.com/shaderwright/shaderwright/transform"
)

// NewShader returns a fresh ShaderBuilder over an empty shader, ready
// for the Register*/Begin*/End* construction calls (spec.md §4.2). Its
// Shader field is the *ir.Shader that CompileGLSL/CompileHLSL/
// CompileSPIRV consume once construction is finished.
func NewShader() *builder.ShaderBuilder { return builder.New() }

// CompileGLSL runs shader through the transform pipeline for
// transform.TargetGLSL and emits GLSL source for opts.EntryPoint (or
// the shader's first entry point if empty).
//
// Internal invariant violations (an unsupported construct, a
// malformed IR tree) are recovered here as a *diag.Fault wrapped into
// the returned error; they never escape as a raw panic across this
// boundary. Diagnostics accumulated on the shader (e.g. a duplicate
// input/output location warning from the builder) are returned
// alongside the source so library callers can render or ignore them
// without any terminal dependency.
func CompileGLSL(shader *ir.Shader, opts glsl.Options) (src string, diags []diag.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = diag.Recover(r)
		}
	}()
	transformed := transform.Run(shader, transform.Config{Target: transform.TargetGLSL})
	src, err = glsl.Emit(transformed, opts)
	if err != nil {
		return "", nil, fmt.Errorf("glsl emission error: %w", err)
	}
	return src, collectDiagnostics(transformed, opts.EntryPoint), nil
}

// CompileHLSL is CompileGLSL's HLSL counterpart.
func CompileHLSL(shader *ir.Shader, opts hlsl.Options) (src string, diags []diag.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = diag.Recover(r)
		}
	}()
	transformed := transform.Run(shader, transform.Config{Target: transform.TargetHLSL})
	src, err = hlsl.Emit(transformed, opts)
	if err != nil {
		return "", nil, fmt.Errorf("hlsl emission error: %w", err)
	}
	return src, collectDiagnostics(transformed, opts.EntryPoint), nil
}

// CompileSPIRV is CompileGLSL's SPIR-V counterpart; it returns a
// binary module rather than source text.
func CompileSPIRV(shader *ir.Shader, opts spirv.Options) (module []byte, diags []diag.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = diag.Recover(r)
		}
	}()
	transformed := transform.Run(shader, transform.Config{Target: transform.TargetSPIRV})
	module, err = spirv.Emit(transformed, opts.EntryPoint, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("spirv emission error: %w", err)
	}
	return module, collectDiagnostics(transformed, opts.EntryPoint), nil
}

func collectDiagnostics(shader *ir.Shader, tag string) []diag.Diagnostic {
	if len(shader.Diagnostics) == 0 {
		return nil
	}
	sink := diag.NewSink()
	sink.AdoptIR(tag, shader.Diagnostics)
	return sink.Entries()
}
