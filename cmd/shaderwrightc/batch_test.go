// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shaderwright/shaderwright/config"
)

func TestOutputNameUsesTargetNameAndBackendExtension(t *testing.T) {
	cases := []struct {
		target config.TargetConfig
		want   string
	}{
		{config.TargetConfig{Name: "frag", Backend: "glsl"}, "frag.glsl"},
		{config.TargetConfig{Name: "frag", Backend: "hlsl"}, "frag.hlsl"},
		{config.TargetConfig{Name: "frag", Backend: "spirv"}, "frag.spv"},
		{config.TargetConfig{Backend: "glsl"}, "glsl.glsl"},
	}
	for _, tc := range cases {
		if got := outputName(tc.target); got != tc.want {
			t.Errorf("outputName(%+v) = %q, want %q", tc.target, got, tc.want)
		}
	}
}

// `shaderwrightc batch` compiles every [[target]] in a project file
// for one fixture, one goroutine per target, and writes each target's
// output under -out-dir (spec.md §5's concurrent-emission scenario).
func TestRunBatchCompilesEveryTarget(t *testing.T) {
	wireRoot()

	projectPath := filepath.Join(t.TempDir(), "shaderwright.toml")
	const toml = `
[package]
name = "demo"

[[target]]
name = "frag-glsl"
backend = "glsl"
entry_point = "main"

[[target]]
name = "frag-spirv"
backend = "spirv"
entry_point = "main"
`
	if err := os.WriteFile(projectPath, []byte(toml), 0o644); err != nil {
		t.Fatalf("writing project file: %v", err)
	}

	outDir := t.TempDir()
	rootCmd.SetArgs([]string{"batch", "--config", projectPath, "--fixture", "solid-fragment", "--out-dir", outDir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("batch: %v", err)
	}

	for _, name := range []string{"frag-glsl.glsl", "frag-spirv.spv"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
