// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"strings"
	"testing"

	"github.com/shaderwright/shaderwright/builder"
	"github.com/shaderwright/shaderwright/ir"
)

// SSA rename (spec.md §8 scenario 6): `int i=0; i=i+1; i=i+2;` produces,
// after TransformSSA, three distinct variables whose ids are consecutive
// starting from the original. Per spec.md §4.4 ("assignment expressions
// become initialised variable declarations when possible"), the two
// reassignments themselves become StmtVariableDecl statements, each
// naming its fresh variable with a valid, emittable identifier — never
// the original renamed-in-place ExprAssign the naive SSA form would
// otherwise produce.
func TestTransformSSARename(t *testing.T) {
	b := builder.New()
	i32 := b.Shader.Types.GetBasic(ir.ScalarType{Kind: ir.ScalarI32})

	zero := b.Lit(ir.ScalarI32, ir.LitI32(0))
	iID := b.VariableDecl("i", i32, &zero)

	one := b.Lit(ir.ScalarI32, ir.LitI32(1))
	sum1 := b.BinOp(ir.OpAdd, b.Ref(iID), one, i32)
	b.Assign(ir.AssignSet, b.Ref(iID), sum1)

	two := b.Lit(ir.ScalarI32, ir.LitI32(2))
	sum2 := b.BinOp(ir.OpAdd, b.Ref(iID), two, i32)
	b.Assign(ir.AssignSet, b.Ref(iID), sum2)

	out := TransformSSA(b.Shader)

	root := out.Stmts.MustGet(out.Root).Kind.(ir.StmtContainer)
	if len(root.Body) != 3 {
		t.Fatalf("root container has %d statements, want 3 (decl + 2 reassignment decls)", len(root.Body))
	}

	firstDecl := out.Stmts.MustGet(root.Body[1]).Kind.(ir.StmtVariableDecl)
	if firstDecl.Var != iID+1 {
		t.Errorf("first reassignment declares var %d, want %d", firstDecl.Var, iID+1)
	}
	if firstDecl.Init == nil {
		t.Fatal("first reassignment decl has no initializer")
	}

	secondDecl := out.Stmts.MustGet(root.Body[2]).Kind.(ir.StmtVariableDecl)
	thirdID := secondDecl.Var
	if thirdID != iID+2 {
		t.Errorf("second reassignment declares var %d, want %d (original %d + 2)", thirdID, iID+2, iID)
	}
	if secondDecl.Init == nil {
		t.Fatal("second reassignment decl has no initializer")
	}

	// The three ids (original, +1, +2) must all resolve to distinct,
	// valid-identifier-named variables — no dotted suffix.
	v0 := out.MustVar(iID)
	v1 := out.MustVar(iID + 1)
	v2 := out.MustVar(iID + 2)
	if v0.Name == v1.Name || v1.Name == v2.Name || v0.Name == v2.Name {
		t.Errorf("expected three distinctly-named variables, got %q, %q, %q", v0.Name, v1.Name, v2.Name)
	}
	for _, v := range []ir.Variable{v1, v2} {
		if strings.ContainsAny(v.Name, ".") {
			t.Errorf("SSA-renamed variable %q is not a valid GLSL/HLSL identifier (contains '.')", v.Name)
		}
	}

	// No variable id is the left-hand side of two distinct declarations
	// along this (single, straight-line) control-flow path.
	seen := map[ir.VarID]bool{}
	for _, target := range []ir.VarID{firstDecl.Var, thirdID} {
		if seen[target] {
			t.Errorf("variable id %d declared twice after SSA renaming", target)
		}
		seen[target] = true
	}
}

// TransformSSA does not mutate its input: the original shader's
// assignment targets still both reference the pre-SSA variable id.
func TestTransformSSADoesNotMutateInput(t *testing.T) {
	b := builder.New()
	i32 := b.Shader.Types.GetBasic(ir.ScalarType{Kind: ir.ScalarI32})
	zero := b.Lit(ir.ScalarI32, ir.LitI32(0))
	iID := b.VariableDecl("i", i32, &zero)
	one := b.Lit(ir.ScalarI32, ir.LitI32(1))
	sum := b.BinOp(ir.OpAdd, b.Ref(iID), one, i32)
	assignH := b.Assign(ir.AssignSet, b.Ref(iID), sum)

	_ = TransformSSA(b.Shader)

	assign := b.Shader.Exprs.MustGet(assignH).Kind.(ir.ExprAssign)
	target := b.Shader.Exprs.MustGet(assign.Target).Kind.(ir.ExprIdentifier)
	if target.Var != iID {
		t.Errorf("input shader's assignment target mutated: var = %d, want original %d", target.Var, iID)
	}
}
