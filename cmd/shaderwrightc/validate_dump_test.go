// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shaderwright/shaderwright"
	"github.com/shaderwright/shaderwright/spirv"
)

func TestRunValidateAcceptsWellFormedFixtures(t *testing.T) {
	wireRoot()
	for _, name := range []string{"solid-vertex", "solid-fragment"} {
		rootCmd.SetArgs([]string{"validate", "--fixture", name})
		if err := rootCmd.Execute(); err != nil {
			t.Errorf("validate --fixture %s: %v", name, err)
		}
	}
}

func TestRunValidateUnknownFixtureErrors(t *testing.T) {
	wireRoot()
	rootCmd.SetArgs([]string{"validate", "--fixture", "nope"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("validate --fixture nope should error, got nil")
	}
}

// `shaderwrightc dump` decodes a SPIR-V binary a separate compile step
// produced, without needing to reconstruct typed IR.
func TestRunDumpDecodesCompiledModule(t *testing.T) {
	wireRoot()

	shader, err := loadFixture("solid-fragment")
	if err != nil {
		t.Fatalf("loadFixture: %v", err)
	}
	data, _, err := shaderwright.CompileSPIRV(shader, spirv.DefaultOptions())
	if err != nil {
		t.Fatalf("CompileSPIRV: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.spv")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture module: %v", err)
	}

	rootCmd.SetArgs([]string{"dump", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("dump: %v", err)
	}
}

func TestRunDumpMissingFileErrors(t *testing.T) {
	wireRoot()
	rootCmd.SetArgs([]string{"dump", filepath.Join(t.TempDir(), "does-not-exist.spv")})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("dump of a missing file should error, got nil")
	}
}
