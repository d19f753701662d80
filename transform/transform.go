// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

// Package transform implements the five-stage pipeline spec.md §4.4
// runs a built shader through before any backend emits it:
//
//	TransformSSA -> Simplify -> ResolveConstants -> Adapt(target) -> Simplify
//
// Each stage consumes one *ir.Shader and produces a fresh one (per
// ir.Shader.Clone's contract, the input tree is never mutated), so a
// caller can keep the pre-transform shader around (e.g. to re-run the
// pipeline for a second backend target) without it being disturbed by
// an earlier target's Adapt pass.
package transform

import "github.com/shaderwright/shaderwright/ir"

// Target names the backend a shader is being adapted for; Adapt's
// behavior differs per target (spec.md §4.6/§4.7).
type Target uint8

const (
	TargetGLSL Target = iota
	TargetHLSL
	TargetSPIRV
)

// Config carries the per-target knobs Adapt consults — primarily the
// preprocessor `#define`-equivalent map ShaderBuilder.Adapt's source
// counterpart threads through to enable/disable feature branches
// ahead of Simplify folding them away (spec.md §4.4).
type Config struct {
	Target  Target
	Defines map[string]bool
}

// Run executes the full pipeline for one target and returns the
// resulting shader, ready for that target's emitter.
func Run(s *ir.Shader, cfg Config) *ir.Shader {
	s = TransformSSA(s)
	s = Simplify(s)
	s = ResolveConstants(s)
	s = Adapt(s, cfg)
	s = Simplify(s)
	return s
}
