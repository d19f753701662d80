// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package visit

import (
	"testing"

	"github.com/shaderwright/shaderwright/builder"
	"github.com/shaderwright/shaderwright/ir"
)

// noopStmtVisitor implements StmtVisitor with an empty body for every
// kind, so a test-local visitor can embed it and override only the
// handful of kinds it cares about.
type noopStmtVisitor struct{}

func (noopStmtVisitor) VisitContainer(*ir.Shader, ir.StmtHandle, ir.StmtContainer)                 {}
func (noopStmtVisitor) VisitCompound(*ir.Shader, ir.StmtHandle, ir.StmtCompound)                    {}
func (noopStmtVisitor) VisitSimple(*ir.Shader, ir.StmtHandle, ir.StmtSimple)                        {}
func (noopStmtVisitor) VisitVariableDecl(*ir.Shader, ir.StmtHandle, ir.StmtVariableDecl)            {}
func (noopStmtVisitor) VisitInOutVariableDecl(*ir.Shader, ir.StmtHandle, ir.StmtInOutVariableDecl)  {}
func (noopStmtVisitor) VisitSamplerDecl(*ir.Shader, ir.StmtHandle, ir.StmtSamplerDecl)              {}
func (noopStmtVisitor) VisitImageDecl(*ir.Shader, ir.StmtHandle, ir.StmtImageDecl)                  {}
func (noopStmtVisitor) VisitSampledImageDecl(*ir.Shader, ir.StmtHandle, ir.StmtSampledImageDecl)    {}
func (noopStmtVisitor) VisitShaderBufferDecl(*ir.Shader, ir.StmtHandle, ir.StmtShaderBufferDecl)    {}
func (noopStmtVisitor) VisitConstantBufferDecl(*ir.Shader, ir.StmtHandle, ir.StmtConstantBufferDecl) {
}
func (noopStmtVisitor) VisitPushConstantsBufferDecl(*ir.Shader, ir.StmtHandle, ir.StmtPushConstantsBufferDecl) {
}
func (noopStmtVisitor) VisitShaderStructBufferDecl(*ir.Shader, ir.StmtHandle, ir.StmtShaderStructBufferDecl) {
}
func (noopStmtVisitor) VisitSpecialisationConstantDecl(*ir.Shader, ir.StmtHandle, ir.StmtSpecialisationConstantDecl) {
}
func (noopStmtVisitor) VisitStructureDecl(*ir.Shader, ir.StmtHandle, ir.StmtStructureDecl) {}
func (noopStmtVisitor) VisitFunctionDecl(*ir.Shader, ir.StmtHandle, ir.StmtFunctionDecl)   {}
func (noopStmtVisitor) VisitReturn(*ir.Shader, ir.StmtHandle, ir.StmtReturn)               {}
func (noopStmtVisitor) VisitDiscard(*ir.Shader, ir.StmtHandle, ir.StmtDiscard)             {}
func (noopStmtVisitor) VisitIf(*ir.Shader, ir.StmtHandle, ir.StmtIf)                       {}
func (noopStmtVisitor) VisitSwitch(*ir.Shader, ir.StmtHandle, ir.StmtSwitch)               {}
func (noopStmtVisitor) VisitSwitchCase(*ir.Shader, ir.StmtHandle, ir.StmtSwitchCase)       {}
func (noopStmtVisitor) VisitFor(*ir.Shader, ir.StmtHandle, ir.StmtFor)                     {}
func (noopStmtVisitor) VisitWhile(*ir.Shader, ir.StmtHandle, ir.StmtWhile)                 {}
func (noopStmtVisitor) VisitDoWhile(*ir.Shader, ir.StmtHandle, ir.StmtDoWhile)             {}
func (noopStmtVisitor) VisitPerVertexDecl(*ir.Shader, ir.StmtHandle, ir.StmtPerVertexDecl) {}
func (noopStmtVisitor) VisitInputComputeLayout(*ir.Shader, ir.StmtHandle, ir.StmtInputComputeLayout) {
}
func (noopStmtVisitor) VisitInputGeometryLayout(*ir.Shader, ir.StmtHandle, ir.StmtInputGeometryLayout) {
}
func (noopStmtVisitor) VisitOutputGeometryLayout(*ir.Shader, ir.StmtHandle, ir.StmtOutputGeometryLayout) {
}
func (noopStmtVisitor) VisitInOutRayPayloadVariableDecl(*ir.Shader, ir.StmtHandle, ir.StmtInOutRayPayloadVariableDecl) {
}
func (noopStmtVisitor) VisitPreproc(*ir.Shader, ir.StmtHandle, ir.StmtPreproc) {}

// reachVisitor collects every StmtHandle reachable from a root via the
// child-of relationship WalkStmt exposes, recursing into every nested
// body a kind carries. Used to check spec.md §8's "parent-links (if
// any) agree with child-of relationship" invariant: since this IR has
// no explicit parent pointers, the property under test is that the
// statement tree really is a tree — every reachable node is visited
// exactly once, never through two different parents.
type reachVisitor struct {
	noopStmtVisitor
	shader *ir.Shader
	seen   map[ir.StmtHandle]int
	order  []ir.StmtHandle
}

func newReachVisitor(s *ir.Shader) *reachVisitor {
	return &reachVisitor{shader: s, seen: map[ir.StmtHandle]int{}}
}

func (v *reachVisitor) visit(h ir.StmtHandle) {
	v.seen[h]++
	v.order = append(v.order, h)
	WalkStmt(v, v.shader, h)
}

func (v *reachVisitor) VisitContainer(s *ir.Shader, h ir.StmtHandle, k ir.StmtContainer) {
	for _, c := range k.Body {
		v.visit(c)
	}
}

func (v *reachVisitor) VisitCompound(s *ir.Shader, h ir.StmtHandle, k ir.StmtCompound) {
	for _, c := range k.Body {
		v.visit(c)
	}
}

func (v *reachVisitor) VisitIf(s *ir.Shader, h ir.StmtHandle, k ir.StmtIf) {
	v.visit(k.Then)
	for _, e := range k.Chain {
		v.visit(e.Body)
	}
}

func (v *reachVisitor) VisitSwitch(s *ir.Shader, h ir.StmtHandle, k ir.StmtSwitch) {
	for _, c := range k.Cases {
		v.visit(c)
	}
}

func (v *reachVisitor) VisitSwitchCase(s *ir.Shader, h ir.StmtHandle, k ir.StmtSwitchCase) {
	v.visit(k.Body)
}

func (v *reachVisitor) VisitFor(s *ir.Shader, h ir.StmtHandle, k ir.StmtFor) { v.visit(k.Body) }

func (v *reachVisitor) VisitWhile(s *ir.Shader, h ir.StmtHandle, k ir.StmtWhile) { v.visit(k.Body) }

func (v *reachVisitor) VisitDoWhile(s *ir.Shader, h ir.StmtHandle, k ir.StmtDoWhile) {
	v.visit(k.Body)
}

func (v *reachVisitor) VisitFunctionDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtFunctionDecl) {
	v.visit(k.Body)
}

// Every statement reachable from the root is reached through exactly
// one parent: no handle appears twice in the traversal, and the
// traversal never revisits the root itself mid-walk.
func TestStmtTreeReachabilityIsSingleParent(t *testing.T) {
	b := builder.New()
	i32 := b.Shader.Types.GetBasic(ir.ScalarType{Kind: ir.ScalarI32})
	boolT := ir.ScalarBool

	b.VariableDecl("x", i32, nil)
	cond := b.Lit(boolT, ir.LitBool(true))
	b.BeginIf(cond)
	b.VariableDecl("a", i32, nil)
	b.BeginElseIf(cond)
	b.VariableDecl("b", i32, nil)
	b.BeginElse()
	b.VariableDecl("c", i32, nil)
	b.EndIf()

	b.BeginFor(0, false, nil, nil)
	b.VariableDecl("i", i32, nil)
	b.EndFor()

	v := newReachVisitor(b.Shader)
	v.visit(b.Shader.Root)

	if len(v.order) != len(v.seen) {
		t.Fatalf("traversal order has %d entries but %d distinct handles", len(v.order), len(v.seen))
	}
	for h, count := range v.seen {
		if count != 1 {
			t.Errorf("statement %d reached %d times, want exactly 1 (two parents claiming the same child)", h, count)
		}
	}
	// Sanity: the walk actually descended into every nested scope, not
	// just the root container.
	if len(v.order) < 7 {
		t.Errorf("traversal visited only %d statements, expected to descend into if/elseIf/else/for bodies", len(v.order))
	}
}
