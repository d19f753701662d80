// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package builder

import (
	"testing"

	"github.com/shaderwright/shaderwright/ir"
)

// Locale declaration (spec.md §8 scenario 1): declaring `int x;` at the
// top level produces a single VariableDecl in the root container, for a
// variable flagged locale with type int.
func TestLocaleDeclaration(t *testing.T) {
	b := New()
	i32 := b.Shader.Types.GetBasic(ir.ScalarType{Kind: ir.ScalarI32})
	b.VariableDecl("x", i32, nil)

	root := b.Shader.Stmts.MustGet(b.Shader.Root).Kind.(ir.StmtContainer)
	if len(root.Body) != 1 {
		t.Fatalf("root container has %d statements, want 1", len(root.Body))
	}

	decl, ok := b.Shader.Stmts.MustGet(root.Body[0]).Kind.(ir.StmtVariableDecl)
	if !ok {
		t.Fatalf("root statement is %T, want ir.StmtVariableDecl", b.Shader.Stmts.MustGet(root.Body[0]).Kind)
	}
	v := b.Shader.MustVar(decl.Var)
	if v.Type != i32 {
		t.Errorf("declared variable type = %v, want %v", v.Type, i32)
	}
	if v.Flags&ir.FlagLocale == 0 {
		t.Errorf("declared variable flags = %v, missing FlagLocale", v.Flags)
	}
}

// If/else balance (spec.md §8 scenario 2): BeginIf/addStmt(A)/BeginElse/
// addStmt(B)/EndIf produces one If statement with two branch containers
// holding exactly A and B respectively.
func TestIfElseBalance(t *testing.T) {
	b := New()
	cond := b.Lit(ir.ScalarBool, ir.LitBool(true))

	b.BeginIf(cond)
	aID := b.VariableDecl("A", b.Shader.Types.GetBasic(ir.ScalarType{Kind: ir.ScalarI32}), nil)
	b.BeginElse()
	bID := b.VariableDecl("B", b.Shader.Types.GetBasic(ir.ScalarType{Kind: ir.ScalarI32}), nil)
	b.EndIf()

	root := b.Shader.Stmts.MustGet(b.Shader.Root).Kind.(ir.StmtContainer)
	if len(root.Body) != 1 {
		t.Fatalf("root container has %d statements, want 1", len(root.Body))
	}
	ifStmt, ok := b.Shader.Stmts.MustGet(root.Body[0]).Kind.(ir.StmtIf)
	if !ok {
		t.Fatalf("root statement is %T, want ir.StmtIf", b.Shader.Stmts.MustGet(root.Body[0]).Kind)
	}
	if len(ifStmt.Chain) != 1 || ifStmt.Chain[0].Cond != nil {
		t.Fatalf("if chain = %#v, want a single trailing else link", ifStmt.Chain)
	}

	then := b.Shader.Stmts.MustGet(ifStmt.Then).Kind.(ir.StmtCompound)
	els := b.Shader.Stmts.MustGet(ifStmt.Chain[0].Body).Kind.(ir.StmtCompound)
	if len(then.Body) != 1 {
		t.Fatalf("then branch has %d statements, want 1", len(then.Body))
	}
	if len(els.Body) != 1 {
		t.Fatalf("else branch has %d statements, want 1", len(els.Body))
	}

	thenDecl := b.Shader.Stmts.MustGet(then.Body[0]).Kind.(ir.StmtVariableDecl)
	elseDecl := b.Shader.Stmts.MustGet(els.Body[0]).Kind.(ir.StmtVariableDecl)
	if thenDecl.Var != aID {
		t.Errorf("then branch declares var %d, want %d", thenDecl.Var, aID)
	}
	if elseDecl.Var != bID {
		t.Errorf("else branch declares var %d, want %d", elseDecl.Var, bID)
	}
}

// Scope-stack depth must be restored after every begin/end pair (spec.md
// §8's builder scope-balance invariant), across every construct that
// pushes a frame.
func TestScopeBalance(t *testing.T) {
	b := New()
	boolT := ir.ScalarBool
	cond := b.Lit(boolT, ir.LitBool(true))
	base := len(b.stack)

	b.BeginIf(cond)
	b.BeginElseIf(cond)
	b.BeginElse()
	b.EndIf()
	if got := len(b.stack); got != base {
		t.Errorf("after if/elseIf/else: stack depth = %d, want %d", got, base)
	}

	b.BeginSwitch(cond)
	b.BeginCase(ir.LitI32(1), false)
	b.EndCase()
	b.BeginDefault(false)
	b.EndCase()
	b.EndSwitch()
	if got := len(b.stack); got != base {
		t.Errorf("after switch/case/default: stack depth = %d, want %d", got, base)
	}

	b.BeginFor(0, false, nil, nil)
	b.EndFor()
	if got := len(b.stack); got != base {
		t.Errorf("after for: stack depth = %d, want %d", got, base)
	}

	b.BeginWhile(cond)
	b.EndWhile()
	if got := len(b.stack); got != base {
		t.Errorf("after while: stack depth = %d, want %d", got, base)
	}

	body := b.BeginDoWhile()
	b.EndDoWhile(body, cond)
	if got := len(b.stack); got != base {
		t.Errorf("after do-while: stack depth = %d, want %d", got, base)
	}
}
