// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package glsl

import "github.com/shaderwright/shaderwright/ir"

// IntrinsicsConfig is the result of a pre-emission scan of the
// shader's function bodies for intrinsic calls and resource kinds that
// require an explicit `#extension` line under the target Version
// (spec.md §4.6: the GLSL backend performs an "intrinsics pre-scan"
// before writing the version/extension header, since extensions must
// precede any other declaration in the source file).
type IntrinsicsConfig struct {
	NeedsTextureGatherExt  bool
	NeedsShaderBallotExt   bool
	NeedsExplicitLocation  bool
}

var extensionTriggers = map[ir.IntrinsicOp]string{
	"textureGather": "GL_ARB_texture_gather",
	"subgroupBallot": "GL_ARB_shader_ballot",
}

// ScanIntrinsics walks every expression in s and records which GLSL
// extensions emission will need.
func ScanIntrinsics(s *ir.Shader, v Version) IntrinsicsConfig {
	var cfg IntrinsicsConfig
	for h := ir.ExprHandle(0); int(h) < s.Exprs.Count(); h++ {
		e, ok := s.Exprs.Get(h)
		if !ok {
			continue
		}
		call, ok := e.Kind.(ir.ExprIntrinsicCall)
		if !ok {
			continue
		}
		switch call.Op {
		case "textureGather":
			cfg.NeedsTextureGatherExt = v.numeric() < 400
		case "subgroupBallot":
			cfg.NeedsShaderBallotExt = true
		}
	}
	cfg.NeedsExplicitLocation = !v.SupportsExplicitUniformLocation()
	return cfg
}

// extensionLines renders the `#extension` directives cfg calls for, in
// lexicographic order of extension name.
func (cfg IntrinsicsConfig) extensionLines() []string {
	var lines []string
	if cfg.NeedsShaderBallotExt {
		lines = append(lines, "#extension "+extensionTriggers["subgroupBallot"]+" : require")
	}
	if cfg.NeedsTextureGatherExt {
		lines = append(lines, "#extension "+extensionTriggers["textureGather"]+" : require")
	}
	return lines
}
