// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"strconv"

	"github.com/shaderwright/shaderwright/ir"
)

// ssaRenamer threads a per-variable version counter through a
// function body, replacing each reassignment of a local ("locale")
// variable with a fresh VarID and rewriting subsequent reads to
// reference it — the single-assignment property GLSL/HLSL source
// emission does not require but SPIR-V's def-before-use register model
// rewards (spec.md §4.4).
type ssaRenamer struct {
	s       *ir.Shader
	current map[ir.VarID]ir.VarID // original id -> currently-live id
	version map[ir.VarID]int      // original id -> next suffix to use
}

// TransformSSA clones s and renames every reassigned local variable to
// a fresh SSA-form id. A statement-level reassignment becomes a
// declaration of the fresh variable; a reassignment nested inside a
// larger expression has its RHS wrapped in an ExprCopy.
func TransformSSA(s *ir.Shader) *ir.Shader {
	out := s.Clone()
	r := &ssaRenamer{s: out, current: make(map[ir.VarID]ir.VarID), version: make(map[ir.VarID]int)}

	root := out.Stmts.MustGet(out.Root).Kind.(ir.StmtContainer)
	for _, h := range root.Body {
		r.walkStmt(h)
	}
	return out
}

func (r *ssaRenamer) walkStmt(h ir.StmtHandle) {
	st := r.s.Stmts.MustGet(h)
	switch k := st.Kind.(type) {
	case ir.StmtFunctionDecl:
		// Each function body renames independently; parameters are
		// never reassigned through this pass (spec.md only SSA-renames
		// locals), so no seeding is needed.
		r.walkStmt(k.Body)
	case ir.StmtContainer:
		for _, c := range k.Body {
			r.walkStmt(c)
		}
	case ir.StmtCompound:
		for _, c := range k.Body {
			r.walkStmt(c)
		}
	case ir.StmtVariableDecl:
		if k.Init != nil {
			ne := r.rename(*k.Init)
			k.Init = &ne
		}
		r.s.Stmts.Set(h, k)
	case ir.StmtSimple:
		if decl, ok := r.tryAssignToDecl(k.Expr); ok {
			r.s.Stmts.Set(h, decl)
			return
		}
		k.Expr = r.rename(k.Expr)
		r.s.Stmts.Set(h, k)
	case ir.StmtReturn:
		if k.Value != nil {
			nv := r.rename(*k.Value)
			k.Value = &nv
		}
		r.s.Stmts.Set(h, k)
	case ir.StmtIf:
		k.Cond = r.rename(k.Cond)
		r.walkStmt(k.Then)
		for i := range k.Chain {
			if k.Chain[i].Cond != nil {
				c := r.rename(*k.Chain[i].Cond)
				k.Chain[i].Cond = &c
			}
			r.walkStmt(k.Chain[i].Body)
		}
		r.s.Stmts.Set(h, k)
	case ir.StmtSwitch:
		k.Selector = r.rename(k.Selector)
		r.s.Stmts.Set(h, k)
		for _, c := range k.Cases {
			r.walkStmt(c)
		}
	case ir.StmtSwitchCase:
		r.walkStmt(k.Body)
	case ir.StmtFor:
		if k.HasInit {
			r.walkStmt(k.Init)
		}
		if k.Cond != nil {
			c := r.rename(*k.Cond)
			k.Cond = &c
		}
		if k.Post != nil {
			p := r.rename(*k.Post)
			k.Post = &p
		}
		r.s.Stmts.Set(h, k)
		r.walkStmt(k.Body)
	case ir.StmtWhile:
		k.Cond = r.rename(k.Cond)
		r.s.Stmts.Set(h, k)
		r.walkStmt(k.Body)
	case ir.StmtDoWhile:
		r.walkStmt(k.Body)
		k.Cond = r.rename(k.Cond)
		r.s.Stmts.Set(h, k)
	default:
		// Declarations with no nested expressions/bodies: nothing to rename.
	}
}

// rename rewrites e's subtree according to the current version map,
// and — if e is itself an assignment to a locale variable — mints a
// fresh version for the target, wrapping the previous value in an
// ExprCopy so the materialisation is explicit.
func (r *ssaRenamer) rename(e ir.ExprHandle) ir.ExprHandle {
	expr := r.s.Exprs.MustGet(e)
	switch k := expr.Kind.(type) {
	case ir.ExprIdentifier:
		if live, ok := r.current[k.Var]; ok {
			k.Var = live
			r.s.Exprs.Set(e, k, expr.Type)
		}
		return e
	case ir.ExprAssign:
		k.RHS = r.rename(k.RHS)
		target := r.s.Exprs.MustGet(k.Target)
		if id, ok := target.Kind.(ir.ExprIdentifier); ok {
			if v := r.s.MustVar(id.Var); v.Has(ir.FlagLocale) {
				fresh := r.freshVersion(id.Var)
				copyH := r.s.Exprs.New(ir.ExprCopy{Source: k.RHS}, expr.Type)
				k.RHS = copyH
				newTarget := r.s.Exprs.New(ir.ExprIdentifier{Var: fresh}, target.Type)
				k.Target = newTarget
				r.s.Exprs.Set(e, k, expr.Type)
				return e
			}
		}
		k.Target = r.rename(k.Target)
		r.s.Exprs.Set(e, k, expr.Type)
		return e
	case ir.ExprMemberSelect:
		k.Base = r.rename(k.Base)
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprSwizzle:
		k.Base = r.rename(k.Base)
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprArrayAccess:
		k.Base = r.rename(k.Base)
		k.Index = r.rename(k.Index)
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprBinary:
		k.Left = r.rename(k.Left)
		k.Right = r.rename(k.Right)
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprUnary:
		k.Operand = r.rename(k.Operand)
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprCast:
		k.Operand = r.rename(k.Operand)
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprQuestion:
		k.Cond = r.rename(k.Cond)
		k.Then = r.rename(k.Then)
		k.Else = r.rename(k.Else)
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprAggregateInit:
		for i := range k.Fields {
			k.Fields[i] = r.rename(k.Fields[i])
		}
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprCompositeConstruct:
		for i := range k.Components {
			k.Components[i] = r.rename(k.Components[i])
		}
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprInit:
		k.Value = r.rename(k.Value)
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprFnCall:
		for i := range k.Args {
			k.Args[i] = r.rename(k.Args[i])
		}
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprIntrinsicCall:
		for i := range k.Args {
			k.Args[i] = r.rename(k.Args[i])
		}
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprImageAccessCall:
		k.Image = r.rename(k.Image)
		k.Coordinate = r.rename(k.Coordinate)
		for i := range k.Extra {
			k.Extra[i] = r.rename(k.Extra[i])
		}
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprCombinedImageAccessCall:
		k.CombinedImg = r.rename(k.CombinedImg)
		k.Coordinate = r.rename(k.Coordinate)
		for i := range k.Extra {
			k.Extra[i] = r.rename(k.Extra[i])
		}
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprCopy:
		k.Source = r.rename(k.Source)
		r.s.Exprs.Set(e, k, expr.Type)
	case ir.ExprStreamAppend:
		k.Value = r.rename(k.Value)
		r.s.Exprs.Set(e, k, expr.Type)
	}
	return e
}

func (r *ssaRenamer) freshVersion(orig ir.VarID) ir.VarID {
	n := r.version[orig]
	r.version[orig] = n + 1
	base := r.s.MustVar(orig)
	name := base.Name + "_" + strconv.Itoa(n+1)
	id := r.s.AllocVarID()
	id = r.s.DefineVariable(ir.Variable{ID: id, Name: name, Type: base.Type, Flags: base.Flags})
	r.current[orig] = id
	return id
}

// liveID returns orig's currently-live renamed id, or orig itself if
// it has not been reassigned yet.
func (r *ssaRenamer) liveID(orig ir.VarID) ir.VarID {
	if live, ok := r.current[orig]; ok {
		return live
	}
	return orig
}

// compoundBinaryOp maps a compound assignment operator to the binary
// operator it implicitly applies; AssignSet has no such operator.
func compoundBinaryOp(op ir.AssignOp) (ir.BinaryOp, bool) {
	switch op {
	case ir.AssignAdd:
		return ir.OpAdd, true
	case ir.AssignSub:
		return ir.OpSub, true
	case ir.AssignMul:
		return ir.OpMul, true
	case ir.AssignDiv:
		return ir.OpDiv, true
	case ir.AssignMod:
		return ir.OpMod, true
	case ir.AssignBitAnd:
		return ir.OpBitAnd, true
	case ir.AssignBitOr:
		return ir.OpBitOr, true
	case ir.AssignBitXor:
		return ir.OpBitXor, true
	case ir.AssignShl:
		return ir.OpShl, true
	case ir.AssignShr:
		return ir.OpShr, true
	default:
		return 0, false
	}
}

// tryAssignToDecl implements spec.md §4.4's "assignment expressions
// become initialised variable declarations when possible": a
// statement-level assignment to a locale variable turns into a fresh
// StmtVariableDecl rather than a renamed-in-place ExprAssign, so the
// SSA-versioned variable is actually declared before it is read
// instead of being assigned through an undeclared identifier. Compound
// assignments (`i += 1`) get their implicit read of the old value made
// explicit as a binary expression over the prior live version.
func (r *ssaRenamer) tryAssignToDecl(e ir.ExprHandle) (ir.StmtVariableDecl, bool) {
	expr := r.s.Exprs.MustGet(e)
	assign, ok := expr.Kind.(ir.ExprAssign)
	if !ok {
		return ir.StmtVariableDecl{}, false
	}
	targetExpr := r.s.Exprs.MustGet(assign.Target)
	ident, ok := targetExpr.Kind.(ir.ExprIdentifier)
	if !ok {
		return ir.StmtVariableDecl{}, false
	}
	if v := r.s.MustVar(ident.Var); !v.Has(ir.FlagLocale) {
		return ir.StmtVariableDecl{}, false
	}

	rhs := r.rename(assign.RHS)
	if binOp, isCompound := compoundBinaryOp(assign.Op); isCompound {
		oldRead := r.s.Exprs.New(ir.ExprIdentifier{Var: r.liveID(ident.Var)}, targetExpr.Type)
		rhs = r.s.Exprs.New(ir.ExprBinary{Op: binOp, Left: oldRead, Right: rhs}, expr.Type)
	}

	fresh := r.freshVersion(ident.Var)
	return ir.StmtVariableDecl{Var: fresh, Init: &rhs}, true
}
