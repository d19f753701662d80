// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

// Package visit provides the double-dispatch Expr/Stmt walkers every
// transform and emitter is built on (spec.md §4.3).
package visit

import "github.com/shaderwright/shaderwright/ir"

// ExprVisitor has one method per Expr kind. Implementations that only
// care about a handful of kinds typically embed a local no-op base
// type covering every method and override the ones they need.
type ExprVisitor interface {
	VisitLiteral(s *ir.Shader, h ir.ExprHandle, k ir.ExprLiteral)
	VisitIdentifier(s *ir.Shader, h ir.ExprHandle, k ir.ExprIdentifier)
	VisitMemberSelect(s *ir.Shader, h ir.ExprHandle, k ir.ExprMemberSelect)
	VisitSwizzle(s *ir.Shader, h ir.ExprHandle, k ir.ExprSwizzle)
	VisitArrayAccess(s *ir.Shader, h ir.ExprHandle, k ir.ExprArrayAccess)
	VisitBinary(s *ir.Shader, h ir.ExprHandle, k ir.ExprBinary)
	VisitUnary(s *ir.Shader, h ir.ExprHandle, k ir.ExprUnary)
	VisitAssign(s *ir.Shader, h ir.ExprHandle, k ir.ExprAssign)
	VisitCast(s *ir.Shader, h ir.ExprHandle, k ir.ExprCast)
	VisitQuestion(s *ir.Shader, h ir.ExprHandle, k ir.ExprQuestion)
	VisitAggregateInit(s *ir.Shader, h ir.ExprHandle, k ir.ExprAggregateInit)
	VisitCompositeConstruct(s *ir.Shader, h ir.ExprHandle, k ir.ExprCompositeConstruct)
	VisitInit(s *ir.Shader, h ir.ExprHandle, k ir.ExprInit)
	VisitFnCall(s *ir.Shader, h ir.ExprHandle, k ir.ExprFnCall)
	VisitIntrinsicCall(s *ir.Shader, h ir.ExprHandle, k ir.ExprIntrinsicCall)
	VisitImageAccessCall(s *ir.Shader, h ir.ExprHandle, k ir.ExprImageAccessCall)
	VisitCombinedImageAccessCall(s *ir.Shader, h ir.ExprHandle, k ir.ExprCombinedImageAccessCall)
	VisitSwitchTest(s *ir.Shader, h ir.ExprHandle, k ir.ExprSwitchTest)
	VisitSwitchCase(s *ir.Shader, h ir.ExprHandle, k ir.ExprSwitchCase)
	VisitCopy(s *ir.Shader, h ir.ExprHandle, k ir.ExprCopy)
	VisitStreamAppend(s *ir.Shader, h ir.ExprHandle, k ir.ExprStreamAppend)
	VisitDummy(s *ir.Shader, h ir.ExprHandle, k ir.ExprDummy)
}

// WalkExpr dispatches h's current kind to the matching ExprVisitor
// method. Unknown kinds are a programmer bug: the emitter/transform
// layer panics rather than silently skipping the node (spec.md §7).
func WalkExpr(v ExprVisitor, s *ir.Shader, h ir.ExprHandle) {
	e := s.Exprs.MustGet(h)
	switch k := e.Kind.(type) {
	case ir.ExprLiteral:
		v.VisitLiteral(s, h, k)
	case ir.ExprIdentifier:
		v.VisitIdentifier(s, h, k)
	case ir.ExprMemberSelect:
		v.VisitMemberSelect(s, h, k)
	case ir.ExprSwizzle:
		v.VisitSwizzle(s, h, k)
	case ir.ExprArrayAccess:
		v.VisitArrayAccess(s, h, k)
	case ir.ExprBinary:
		v.VisitBinary(s, h, k)
	case ir.ExprUnary:
		v.VisitUnary(s, h, k)
	case ir.ExprAssign:
		v.VisitAssign(s, h, k)
	case ir.ExprCast:
		v.VisitCast(s, h, k)
	case ir.ExprQuestion:
		v.VisitQuestion(s, h, k)
	case ir.ExprAggregateInit:
		v.VisitAggregateInit(s, h, k)
	case ir.ExprCompositeConstruct:
		v.VisitCompositeConstruct(s, h, k)
	case ir.ExprInit:
		v.VisitInit(s, h, k)
	case ir.ExprFnCall:
		v.VisitFnCall(s, h, k)
	case ir.ExprIntrinsicCall:
		v.VisitIntrinsicCall(s, h, k)
	case ir.ExprImageAccessCall:
		v.VisitImageAccessCall(s, h, k)
	case ir.ExprCombinedImageAccessCall:
		v.VisitCombinedImageAccessCall(s, h, k)
	case ir.ExprSwitchTest:
		v.VisitSwitchTest(s, h, k)
	case ir.ExprSwitchCase:
		v.VisitSwitchCase(s, h, k)
	case ir.ExprCopy:
		v.VisitCopy(s, h, k)
	case ir.ExprStreamAppend:
		v.VisitStreamAppend(s, h, k)
	case ir.ExprDummy:
		v.VisitDummy(s, h, k)
	default:
		panic("visit: unknown expression kind")
	}
}

// StmtVisitor has one method per Stmt kind.
type StmtVisitor interface {
	VisitContainer(s *ir.Shader, h ir.StmtHandle, k ir.StmtContainer)
	VisitCompound(s *ir.Shader, h ir.StmtHandle, k ir.StmtCompound)
	VisitSimple(s *ir.Shader, h ir.StmtHandle, k ir.StmtSimple)
	VisitVariableDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtVariableDecl)
	VisitInOutVariableDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtInOutVariableDecl)
	VisitSamplerDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtSamplerDecl)
	VisitImageDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtImageDecl)
	VisitSampledImageDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtSampledImageDecl)
	VisitShaderBufferDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtShaderBufferDecl)
	VisitConstantBufferDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtConstantBufferDecl)
	VisitPushConstantsBufferDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtPushConstantsBufferDecl)
	VisitShaderStructBufferDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtShaderStructBufferDecl)
	VisitSpecialisationConstantDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtSpecialisationConstantDecl)
	VisitStructureDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtStructureDecl)
	VisitFunctionDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtFunctionDecl)
	VisitReturn(s *ir.Shader, h ir.StmtHandle, k ir.StmtReturn)
	VisitDiscard(s *ir.Shader, h ir.StmtHandle, k ir.StmtDiscard)
	VisitIf(s *ir.Shader, h ir.StmtHandle, k ir.StmtIf)
	VisitSwitch(s *ir.Shader, h ir.StmtHandle, k ir.StmtSwitch)
	VisitSwitchCase(s *ir.Shader, h ir.StmtHandle, k ir.StmtSwitchCase)
	VisitFor(s *ir.Shader, h ir.StmtHandle, k ir.StmtFor)
	VisitWhile(s *ir.Shader, h ir.StmtHandle, k ir.StmtWhile)
	VisitDoWhile(s *ir.Shader, h ir.StmtHandle, k ir.StmtDoWhile)
	VisitPerVertexDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtPerVertexDecl)
	VisitInputComputeLayout(s *ir.Shader, h ir.StmtHandle, k ir.StmtInputComputeLayout)
	VisitInputGeometryLayout(s *ir.Shader, h ir.StmtHandle, k ir.StmtInputGeometryLayout)
	VisitOutputGeometryLayout(s *ir.Shader, h ir.StmtHandle, k ir.StmtOutputGeometryLayout)
	VisitInOutRayPayloadVariableDecl(s *ir.Shader, h ir.StmtHandle, k ir.StmtInOutRayPayloadVariableDecl)
	VisitPreproc(s *ir.Shader, h ir.StmtHandle, k ir.StmtPreproc)
}

// WalkStmt dispatches h's current kind to the matching StmtVisitor
// method.
func WalkStmt(v StmtVisitor, s *ir.Shader, h ir.StmtHandle) {
	st := s.Stmts.MustGet(h)
	switch k := st.Kind.(type) {
	case ir.StmtContainer:
		v.VisitContainer(s, h, k)
	case ir.StmtCompound:
		v.VisitCompound(s, h, k)
	case ir.StmtSimple:
		v.VisitSimple(s, h, k)
	case ir.StmtVariableDecl:
		v.VisitVariableDecl(s, h, k)
	case ir.StmtInOutVariableDecl:
		v.VisitInOutVariableDecl(s, h, k)
	case ir.StmtSamplerDecl:
		v.VisitSamplerDecl(s, h, k)
	case ir.StmtImageDecl:
		v.VisitImageDecl(s, h, k)
	case ir.StmtSampledImageDecl:
		v.VisitSampledImageDecl(s, h, k)
	case ir.StmtShaderBufferDecl:
		v.VisitShaderBufferDecl(s, h, k)
	case ir.StmtConstantBufferDecl:
		v.VisitConstantBufferDecl(s, h, k)
	case ir.StmtPushConstantsBufferDecl:
		v.VisitPushConstantsBufferDecl(s, h, k)
	case ir.StmtShaderStructBufferDecl:
		v.VisitShaderStructBufferDecl(s, h, k)
	case ir.StmtSpecialisationConstantDecl:
		v.VisitSpecialisationConstantDecl(s, h, k)
	case ir.StmtStructureDecl:
		v.VisitStructureDecl(s, h, k)
	case ir.StmtFunctionDecl:
		v.VisitFunctionDecl(s, h, k)
	case ir.StmtReturn:
		v.VisitReturn(s, h, k)
	case ir.StmtDiscard:
		v.VisitDiscard(s, h, k)
	case ir.StmtIf:
		v.VisitIf(s, h, k)
	case ir.StmtSwitch:
		v.VisitSwitch(s, h, k)
	case ir.StmtSwitchCase:
		v.VisitSwitchCase(s, h, k)
	case ir.StmtFor:
		v.VisitFor(s, h, k)
	case ir.StmtWhile:
		v.VisitWhile(s, h, k)
	case ir.StmtDoWhile:
		v.VisitDoWhile(s, h, k)
	case ir.StmtPerVertexDecl:
		v.VisitPerVertexDecl(s, h, k)
	case ir.StmtInputComputeLayout:
		v.VisitInputComputeLayout(s, h, k)
	case ir.StmtInputGeometryLayout:
		v.VisitInputGeometryLayout(s, h, k)
	case ir.StmtOutputGeometryLayout:
		v.VisitOutputGeometryLayout(s, h, k)
	case ir.StmtInOutRayPayloadVariableDecl:
		v.VisitInOutRayPayloadVariableDecl(s, h, k)
	case ir.StmtPreproc:
		v.VisitPreproc(s, h, k)
	default:
		panic("visit: unknown statement kind")
	}
}
