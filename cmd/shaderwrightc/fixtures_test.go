// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package main

import "testing"

func TestFixtureNamesSorted(t *testing.T) {
	names := fixtureNames()
	if len(names) != 2 {
		t.Fatalf("fixtureNames() has %d entries, want 2", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("fixtureNames() not sorted: %v", names)
			break
		}
	}
}

func TestLoadFixtureKnownNames(t *testing.T) {
	for _, name := range []string{"solid-vertex", "solid-fragment"} {
		shader, err := loadFixture(name)
		if err != nil {
			t.Fatalf("loadFixture(%q): %v", name, err)
		}
		if shader == nil {
			t.Fatalf("loadFixture(%q) returned a nil shader", name)
		}
	}
}

func TestLoadFixtureUnknownNameErrors(t *testing.T) {
	if _, err := loadFixture("does-not-exist"); err == nil {
		t.Fatal("loadFixture with an unknown name should error, got nil")
	}
}

// Each call to loadFixture builds a fresh *ir.Shader: two loads of the
// same fixture must not alias the same underlying shader, since
// runBatch relies on this to compile targets concurrently without
// sharing mutable IR across goroutines.
func TestLoadFixtureReturnsFreshShaderEachCall(t *testing.T) {
	a, err := loadFixture("solid-fragment")
	if err != nil {
		t.Fatalf("loadFixture: %v", err)
	}
	b, err := loadFixture("solid-fragment")
	if err != nil {
		t.Fatalf("loadFixture: %v", err)
	}
	if a == b {
		t.Fatal("loadFixture returned the same *ir.Shader pointer on two calls")
	}
}
