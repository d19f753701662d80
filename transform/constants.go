// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package transform

import "github.com/shaderwright/shaderwright/ir"

// ResolveConstants clones s and replaces every reference to a
// module-scope `const` variable (FlagConstant|FlagStatic) whose
// initializer has already folded to a literal with that literal
// directly, the way naga's `ir/resolve.go` propagates named constants
// into their use sites before backend emission (spec.md §4.4: this
// stage runs after Simplify so folded literals are available).
// Specialization constants (FlagSpecConstant) are deliberately left as
// identifier references: their value is only fixed at pipeline-creation
// time, not compile time, so inlining them would be incorrect.
func ResolveConstants(s *ir.Shader) *ir.Shader {
	out := s.Clone()

	values := make(map[ir.VarID]ir.LiteralValue)
	root := out.Stmts.MustGet(out.Root).Kind.(ir.StmtContainer)
	for _, h := range root.Body {
		decl, ok := out.Stmts.MustGet(h).Kind.(ir.StmtVariableDecl)
		if !ok || decl.Init == nil {
			continue
		}
		v := out.MustVar(decl.Var)
		if !v.Has(ir.FlagConstant | ir.FlagStatic) {
			continue
		}
		lit, ok := out.Exprs.MustGet(*decl.Init).Kind.(ir.ExprLiteral)
		if !ok {
			continue
		}
		values[decl.Var] = lit.Value
	}

	for h := ir.ExprHandle(0); int(h) < out.Exprs.Count(); h++ {
		e := out.Exprs.MustGet(h)
		id, ok := e.Kind.(ir.ExprIdentifier)
		if !ok {
			continue
		}
		if val, ok := values[id.Var]; ok {
			out.Exprs.Set(h, ir.ExprLiteral{Value: val}, e.Type)
		}
	}

	return out
}
