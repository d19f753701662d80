// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// wireRootOnce mirrors main()'s command-tree assembly (AddCommand,
// the -no-color persistent flag) without calling os.Exit — main()
// itself is untestable directly since it terminates the process.
var wireRootOnce sync.Once

func wireRoot() {
	wireRootOnce.Do(func() {
		rootCmd.AddCommand(compileCmd)
		rootCmd.AddCommand(validateCmd)
		rootCmd.AddCommand(dumpCmd)
		rootCmd.AddCommand(batchCmd)
		rootCmd.PersistentFlags().Bool("no-color", false, "disable colored diagnostic output")
	})
}

// `shaderwrightc compile` writes GLSL/HLSL/SPIR-V output to a file
// when -o is given, for each backend (spec.md's CLI compile-to-file
// path).
func TestRunCompileWritesEachBackendToFile(t *testing.T) {
	wireRoot()

	for _, backend := range []string{"glsl", "hlsl", "spirv"} {
		dir := t.TempDir()
		out := filepath.Join(dir, "out.bin")
		rootCmd.SetArgs([]string{"compile", "--fixture", "solid-fragment", "--backend", backend, "-o", out})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("compile -backend %s: %v", backend, err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading output for backend %s: %v", backend, err)
		}
		if len(data) == 0 {
			t.Errorf("backend %s produced an empty output file", backend)
		}
	}
}

func TestRunCompileUnknownBackendErrors(t *testing.T) {
	wireRoot()
	dir := t.TempDir()
	out := filepath.Join(dir, "out.bin")
	rootCmd.SetArgs([]string{"compile", "--fixture", "solid-fragment", "--backend", "metal", "-o", out})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("compile -backend metal should error, got nil")
	}
}

func TestRunCompileUnknownFixtureErrors(t *testing.T) {
	wireRoot()
	dir := t.TempDir()
	out := filepath.Join(dir, "out.bin")
	rootCmd.SetArgs([]string{"compile", "--fixture", "nope", "--backend", "glsl", "-o", out})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("compile -fixture nope should error, got nil")
	}
}
