// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package transform

import "github.com/shaderwright/shaderwright/ir"

// intrinsicAliases maps a canonical IntrinsicOp name to the spelling a
// given target expects, for the handful of GLSL/HLSL intrinsics that
// differ only in name (spec.md §4.6/§4.7: "Adapt resolves
// target-specific naming and feature differences ahead of emission").
var intrinsicAliases = map[Target]map[ir.IntrinsicOp]ir.IntrinsicOp{
	TargetHLSL: {
		"mix":       "lerp",
		"fract":     "frac",
		"mod":       "fmod",
		"dFdx":      "ddx",
		"dFdy":      "ddy",
		"inversesqrt": "rsqrt",
	},
}

// Adapt clones s and applies target-specific rewrites: intrinsic
// renaming, and pruning of `#ifdef`-guarded global declarations whose
// guard name is not set in cfg.Defines, so a single ShaderBuilder
// program can describe optional feature branches that Adapt resolves
// per target before emission (spec.md §4.4's ModuleConfig/defines
// map).
func Adapt(s *ir.Shader, cfg Config) *ir.Shader {
	out := s.Clone()

	aliases := intrinsicAliases[cfg.Target]
	if len(aliases) > 0 {
		for h := ir.ExprHandle(0); int(h) < out.Exprs.Count(); h++ {
			e := out.Exprs.MustGet(h)
			call, ok := e.Kind.(ir.ExprIntrinsicCall)
			if !ok {
				continue
			}
			if alias, ok := aliases[call.Op]; ok {
				call.Op = alias
				out.Exprs.Set(h, call, e.Type)
			}
		}
	}

	root := out.Stmts.MustGet(out.Root).Kind.(ir.StmtContainer)
	filtered := root.Body[:0:0]
	guard := "" // name of the ifdef currently suppressing statements, "" if none
	skipping := false
	for _, h := range root.Body {
		st := out.Stmts.MustGet(h)
		if pp, ok := st.Kind.(ir.StmtPreproc); ok {
			switch pp.Kind {
			case ir.PreprocIfdef:
				guard = pp.Name
				skipping = !cfg.Defines[pp.Name]
				continue
			case ir.PreprocEndif:
				guard = ""
				skipping = false
				continue
			case ir.PreprocElse:
				if guard != "" {
					skipping = cfg.Defines[guard]
				}
				continue
			}
		}
		if skipping {
			continue
		}
		filtered = append(filtered, h)
	}
	root.Body = filtered
	out.Stmts.Set(out.Root, root)

	return out
}
