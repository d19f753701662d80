// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shaderwright/shaderwright/glsl"
	"github.com/shaderwright/shaderwright/hlsl"
	"github.com/shaderwright/shaderwright/ir"
	"github.com/shaderwright/shaderwright/spirv"
)

func writeProject(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shaderwright.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture project file: %v", err)
	}
	return path
}

func TestLoadValidProject(t *testing.T) {
	path := writeProject(t, `
[package]
name = "demo"

[[target]]
name = "frag-glsl"
backend = "glsl"
entry_point = "main"
stage = "fragment"
glsl_version = "450"

[[target]]
name = "frag-hlsl"
backend = "hlsl"
entry_point = "main"
stage = "fragment"
shader_model = "6.0"

[[target]]
name = "frag-spirv"
backend = "spirv"
entry_point = "main"
stage = "fragment"
spirv_version = "1.5"
debug = true
`)

	proj, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if proj.Package.Name != "demo" {
		t.Errorf("package name = %q, want %q", proj.Package.Name, "demo")
	}
	if len(proj.Target) != 3 {
		t.Fatalf("target count = %d, want 3", len(proj.Target))
	}

	glslOpts := proj.Target[0].ResolveGLSL()
	if glslOpts.Version != glsl.Version450 {
		t.Errorf("glsl version = %v, want Version450", glslOpts.Version)
	}
	if glslOpts.Stage != ir.StageFragment {
		t.Errorf("glsl stage = %v, want StageFragment", glslOpts.Stage)
	}

	hlslOpts := proj.Target[1].ResolveHLSL()
	if hlslOpts.ShaderModel != hlsl.ShaderModel6_0 {
		t.Errorf("hlsl shader model = %v, want ShaderModel6_0", hlslOpts.ShaderModel)
	}

	spirvOpts := proj.Target[2].ResolveSPIRV()
	if spirvOpts.Version != spirv.Version1_5 {
		t.Errorf("spirv version = %v, want Version1_5", spirvOpts.Version)
	}
	if !spirvOpts.Debug {
		t.Error("spirv Debug = false, want true")
	}
}

func TestLoadMissingPackageName(t *testing.T) {
	path := writeProject(t, `
[[target]]
name = "x"
backend = "glsl"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load with no [package].name should error, got nil")
	}
}

func TestLoadNoTargets(t *testing.T) {
	path := writeProject(t, `
[package]
name = "demo"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load with zero [[target]] entries should error, got nil")
	}
}

func TestLoadUnknownBackend(t *testing.T) {
	path := writeProject(t, `
[package]
name = "demo"

[[target]]
name = "x"
backend = "metal"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load with an unknown backend should error, got nil")
	}
}

// A target that omits a backend-specific field falls back to that
// backend's own DefaultOptions, rather than a zero value.
func TestResolveGLSLFallsBackToDefaultVersion(t *testing.T) {
	tc := TargetConfig{EntryPoint: "main"}
	opts := tc.ResolveGLSL()
	if opts.Version != glsl.DefaultOptions().Version {
		t.Errorf("unset glsl_version did not fall back to glsl.DefaultOptions(): got %v", opts.Version)
	}
}
