// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

// Package builder implements ShaderBuilder, the scope-stack DSL
// front-end used to construct a shader's IR (spec.md §4.2). It is the
// only package that mutates a *ir.Shader's statement tree during
// construction; transform and emitter packages read that tree but
// never call back into a builder.
package builder

import (
	"fmt"

	"github.com/shaderwright/shaderwright/ir"
)

// frame is one entry of the scope stack: the statement handle whose
// Body slice new statements are appended to, and (for If/Switch) the
// bookkeeping needed to close it correctly.
type frame struct {
	kind  frameKind
	body  ir.StmtHandle // the StmtContainer/StmtCompound collecting Body
	ifH   ir.StmtHandle // the owning StmtIf, for elseIf/else bodies
	swH   ir.StmtHandle // the owning StmtSwitch, for case bodies
}

type frameKind uint8

const (
	frameRoot frameKind = iota
	frameCompound
	frameIfThen
	frameIfElse
	frameSwitchCase
)

// ShaderBuilder accumulates IR into a single *ir.Shader through a
// scope-stack discipline: push makes a block the current frame and pop
// leaves it; the statement owning the block (an If, a loop, a function)
// is attached to its parent when it is opened, not by pop (spec.md
// §4.2, "Block frames").
type ShaderBuilder struct {
	Shader *ir.Shader

	stack []frame

	// savedExpr/armed implement saveNextExpr/loadExpr: the next
	// expression built is captured, and never appended as a StmtSimple
	// even if it is an assignment, so it can be threaded into an
	// enclosing construct (e.g. a for-loop's condition) instead of
	// becoming its own statement (spec.md §4.2).
	armed     bool
	savedExpr ir.ExprHandle

	nextLocation map[string]uint32 // per entry point, next free location

	ifStack     []ifBuild
	switchStack []switchBuild
	fnStack     []ir.StmtHandle
}

// New creates a builder over a fresh shader, with the root Container
// already pushed as the base frame.
func New() *ShaderBuilder {
	s := ir.NewShader()
	return &ShaderBuilder{
		Shader:       s,
		stack:        []frame{{kind: frameRoot, body: s.Root}},
		nextLocation: make(map[string]uint32),
	}
}

// current returns the frame new statements are appended to.
func (b *ShaderBuilder) current() *frame { return &b.stack[len(b.stack)-1] }

// addStmt allocates a new statement of kind and appends its handle to
// the current frame's body.
func (b *ShaderBuilder) addStmt(kind ir.StmtKind) ir.StmtHandle {
	h := b.Shader.Stmts.New(kind)
	b.appendToCurrentBody(h)
	return h
}

// addGlobalStmt appends h directly to the shader's root container,
// bypassing any nested scope — used for declarations (structs,
// buffers, functions) that always live at module scope regardless of
// where in the DSL call sequence they were declared.
func (b *ShaderBuilder) addGlobalStmt(h ir.StmtHandle) {
	root := b.Shader.Stmts.MustGet(b.Shader.Root).Kind.(ir.StmtContainer)
	root.Body = append(root.Body, h)
	b.Shader.Stmts.Set(b.Shader.Root, root)
}

func (b *ShaderBuilder) appendToCurrentBody(h ir.StmtHandle) {
	f := b.current()
	body := b.Shader.Stmts.MustGet(f.body)
	switch k := body.Kind.(type) {
	case ir.StmtContainer:
		k.Body = append(k.Body, h)
		b.Shader.Stmts.Set(f.body, k)
	case ir.StmtCompound:
		k.Body = append(k.Body, h)
		b.Shader.Stmts.Set(f.body, k)
	default:
		panic(fmt.Sprintf("builder: frame body %d is not a Container/Compound", f.body))
	}
}

// pushScope opens a fresh StmtCompound as the new current frame,
// without attaching it to any parent yet; the caller attaches it (as
// an If/For/While/etc body) when it calls popScope.
func (b *ShaderBuilder) pushScope(kind frameKind) ir.StmtHandle {
	h := b.Shader.Stmts.New(ir.StmtCompound{})
	b.stack = append(b.stack, frame{kind: kind, body: h})
	return h
}

// popScope closes the current frame and returns its compound handle.
func (b *ShaderBuilder) popScope() ir.StmtHandle {
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return f.body
}

// push enters an already-allocated compound/container handle as the
// current frame (used when a statement's body was allocated up front,
// e.g. a function's top-level block).
func (b *ShaderBuilder) push(h ir.StmtHandle, kind frameKind) {
	b.stack = append(b.stack, frame{kind: kind, body: h})
}

// pop is push's inverse.
func (b *ShaderBuilder) pop() { b.stack = b.stack[:len(b.stack)-1] }

// saveNextExpr arms one-shot capture: the next expression built via
// Lit/Ref/BinOp/Assign/etc is NOT appended as a StmtSimple, but instead
// held for retrieval via loadExpr (spec.md §4.2).
func (b *ShaderBuilder) saveNextExpr() { b.armed = true }

// captureOrEmit is called by every expression-building DSL method: if
// saveNextExpr armed capture, the handle is stashed and no statement
// is emitted. Otherwise an expression that stands as a statement on its
// own (an assignment, an increment/decrement, or a void-typed call) is
// wrapped in a StmtSimple; any other expression is only returned, to be
// used as an operand.
func (b *ShaderBuilder) captureOrEmit(h ir.ExprHandle) ir.ExprHandle {
	if b.armed {
		b.savedExpr = h
		b.armed = false
		return h
	}
	e := b.Shader.Exprs.MustGet(h)
	switch k := e.Kind.(type) {
	case ir.ExprAssign:
	case ir.ExprUnary:
		if k.Op != ir.OpPreInc && k.Op != ir.OpPreDec && k.Op != ir.OpPostInc && k.Op != ir.OpPostDec {
			return h
		}
	default:
		if t, ok := b.Shader.Types.Lookup(e.Type); !ok {
			return h
		} else if _, void := t.Inner.(ir.VoidType); !void {
			return h
		}
	}
	b.addStmt(ir.StmtSimple{Expr: h})
	return h
}

// loadExpr returns the most recently captured expression, or a fresh
// ExprDummy if saveNextExpr was never armed (spec.md §4.2: "the DSL
// always has a non-nil handle to chain off of").
func (b *ShaderBuilder) loadExpr() ir.ExprHandle {
	if b.savedExpr != 0 || b.armed {
		h := b.savedExpr
		b.savedExpr = 0
		return h
	}
	return b.Shader.Exprs.New(ir.ExprDummy{}, b.Shader.Types.GetBasic(ir.VoidType{}))
}

// --- expression building -----------------------------------------------------

// Lit builds a literal expression of the given value, typed by kind.
func (b *ShaderBuilder) Lit(kind ir.ScalarKind, v ir.LiteralValue) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprLiteral{Value: v}, b.Shader.Types.GetBasic(ir.ScalarType{Kind: kind}))
	return b.captureOrEmit(h)
}

// Ref builds an identifier expression referencing an already-defined
// variable.
func (b *ShaderBuilder) Ref(id ir.VarID) ir.ExprHandle {
	v := b.Shader.MustVar(id)
	h := b.Shader.Exprs.New(ir.ExprIdentifier{Var: id}, v.Type)
	return b.captureOrEmit(h)
}

// Member builds a member-select expression (`base.member`), typed by
// the struct member's declared type.
func (b *ShaderBuilder) Member(base ir.ExprHandle, member string, resultType ir.TypeHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprMemberSelect{Base: base, Member: member}, resultType)
	return b.captureOrEmit(h)
}

// Swizzle builds a component-swizzle expression.
func (b *ShaderBuilder) Swizzle(base ir.ExprHandle, components []uint8, resultType ir.TypeHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprSwizzle{Base: base, Components: components}, resultType)
	return b.captureOrEmit(h)
}

// Index builds a dynamic array/vector access expression.
func (b *ShaderBuilder) Index(base, index ir.ExprHandle, resultType ir.TypeHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprArrayAccess{Base: base, Index: index}, resultType)
	return b.captureOrEmit(h)
}

// BinOp builds a binary operator expression.
func (b *ShaderBuilder) BinOp(op ir.BinaryOp, left, right ir.ExprHandle, resultType ir.TypeHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprBinary{Op: op, Left: left, Right: right}, resultType)
	return b.captureOrEmit(h)
}

// UnOp builds a unary operator expression.
func (b *ShaderBuilder) UnOp(op ir.UnaryOp, operand ir.ExprHandle, resultType ir.TypeHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprUnary{Op: op, Operand: operand}, resultType)
	return b.captureOrEmit(h)
}

// Assign builds a (possibly compound) assignment expression.
func (b *ShaderBuilder) Assign(op ir.AssignOp, target, rhs ir.ExprHandle) ir.ExprHandle {
	t := b.Shader.Exprs.MustGet(target)
	h := b.Shader.Exprs.New(ir.ExprAssign{Op: op, Target: target, RHS: rhs}, t.Type)
	return b.captureOrEmit(h)
}

// Cast builds a type-conversion expression.
func (b *ShaderBuilder) Cast(operand ir.ExprHandle, to ir.TypeHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprCast{Operand: operand}, to)
	return b.captureOrEmit(h)
}

// Question builds a ternary conditional expression.
func (b *ShaderBuilder) Question(cond, then, els ir.ExprHandle, resultType ir.TypeHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprQuestion{Cond: cond, Then: then, Else: els}, resultType)
	return b.captureOrEmit(h)
}

// CompositeConstruct builds a vector/matrix/array constructor call.
func (b *ShaderBuilder) CompositeConstruct(components []ir.ExprHandle, resultType ir.TypeHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprCompositeConstruct{Components: components}, resultType)
	return b.captureOrEmit(h)
}

// AggregateInit builds a field-by-field struct initializer.
func (b *ShaderBuilder) AggregateInit(fields []ir.ExprHandle, resultType ir.TypeHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprAggregateInit{Fields: fields}, resultType)
	return b.captureOrEmit(h)
}

// Call builds a user-defined function call.
func (b *ShaderBuilder) Call(fn ir.VarID, args []ir.ExprHandle) ir.ExprHandle {
	v := b.Shader.MustVar(fn)
	ft := b.Shader.Types.MustLookup(v.Type).Inner.(ir.FunctionType)
	h := b.Shader.Exprs.New(ir.ExprFnCall{Function: fn, Args: args}, ft.Result)
	return b.captureOrEmit(h)
}

// Intrinsic builds a built-in function call.
func (b *ShaderBuilder) Intrinsic(op ir.IntrinsicOp, args []ir.ExprHandle, resultType ir.TypeHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprIntrinsicCall{Op: op, Args: args}, resultType)
	return b.captureOrEmit(h)
}

// ImageAccess builds a standalone image/texture access call.
func (b *ShaderBuilder) ImageAccess(op ir.ImageOp, image, coord ir.ExprHandle, extra []ir.ExprHandle, resultType ir.TypeHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprImageAccessCall{Op: op, Image: image, Coordinate: coord, Extra: extra}, resultType)
	return b.captureOrEmit(h)
}

// CombinedImageAccess builds a combined image+sampler access call.
func (b *ShaderBuilder) CombinedImageAccess(op ir.ImageOp, combined, coord ir.ExprHandle, extra []ir.ExprHandle, resultType ir.TypeHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprCombinedImageAccessCall{Op: op, CombinedImg: combined, Coordinate: coord, Extra: extra}, resultType)
	return b.captureOrEmit(h)
}

// StreamAppend builds a geometry-shader EmitStreamVertex-equivalent
// expression.
func (b *ShaderBuilder) StreamAppend(stream ir.VarID, value ir.ExprHandle) ir.ExprHandle {
	h := b.Shader.Exprs.New(ir.ExprStreamAppend{Stream: stream, Value: value}, b.Shader.Types.GetBasic(ir.VoidType{}))
	return b.captureOrEmit(h)
}

// --- statement building -------------------------------------------------------

// VariableDecl declares a local variable with an optional initializer.
func (b *ShaderBuilder) VariableDecl(name string, typ ir.TypeHandle, init *ir.ExprHandle) ir.VarID {
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: ir.FlagLocale})
	b.addStmt(ir.StmtVariableDecl{Var: id, Init: init})
	return id
}

// Return closes the current function with an optional value.
func (b *ShaderBuilder) Return(value *ir.ExprHandle) {
	b.addStmt(ir.StmtReturn{Value: value})
}

// Discard emits a fragment-discard statement.
func (b *ShaderBuilder) Discard() {
	b.addStmt(ir.StmtDiscard{})
}

// --- if/elseIf/else state machine --------------------------------------------

// ifBuild tracks the StmtIf under construction while beginIf/
// beginElseIf/beginElse/endIf calls are nested; builders never nest
// two unrelated If statements inside each other's header (only inside
// each other's bodies), so a single pointer per active If suffices,
// kept on a stack to support nested ifs in nested bodies.
type ifBuild struct {
	handle ir.StmtHandle
	stmt   ir.StmtIf
}

// BeginIf opens a new `if (cond) { ... }` and pushes its Then body as
// the current frame (spec.md §4.8).
func (b *ShaderBuilder) BeginIf(cond ir.ExprHandle) {
	then := b.Shader.Stmts.New(ir.StmtCompound{})
	h := b.addStmt(ir.StmtIf{Cond: cond, Then: then})
	b.ifStack = append(b.ifStack, ifBuild{handle: h, stmt: ir.StmtIf{Cond: cond, Then: then}})
	b.push(then, frameIfThen)
}

// BeginElseIf closes the previous branch's body and opens an `else if
// (cond) { ... }` link in the chain.
func (b *ShaderBuilder) BeginElseIf(cond ir.ExprHandle) {
	b.pop()
	body := b.Shader.Stmts.New(ir.StmtCompound{})
	top := &b.ifStack[len(b.ifStack)-1]
	c := cond
	top.stmt.Chain = append(top.stmt.Chain, ir.ElseIf{Cond: &c, Body: body})
	b.Shader.Stmts.Set(top.handle, top.stmt)
	b.push(body, frameIfElse)
}

// BeginElse closes the previous branch's body and opens the trailing
// plain `else { ... }`.
func (b *ShaderBuilder) BeginElse() {
	b.pop()
	body := b.Shader.Stmts.New(ir.StmtCompound{})
	top := &b.ifStack[len(b.ifStack)-1]
	top.stmt.Chain = append(top.stmt.Chain, ir.ElseIf{Cond: nil, Body: body})
	b.Shader.Stmts.Set(top.handle, top.stmt)
	b.push(body, frameIfElse)
}

// EndIf closes the current branch's body and finishes the If.
func (b *ShaderBuilder) EndIf() {
	b.pop()
	b.ifStack = b.ifStack[:len(b.ifStack)-1]
}

// --- switch/case/default state machine ---------------------------------------

type switchBuild struct {
	handle ir.StmtHandle
	stmt   ir.StmtSwitch
}

// BeginSwitch opens a `switch (selector) { ... }`.
func (b *ShaderBuilder) BeginSwitch(selector ir.ExprHandle) {
	h := b.addStmt(ir.StmtSwitch{Selector: selector})
	b.switchStack = append(b.switchStack, switchBuild{handle: h, stmt: ir.StmtSwitch{Selector: selector}})
}

// BeginCase opens a `case value:` arm and pushes its body as the
// current frame.
func (b *ShaderBuilder) BeginCase(value ir.LiteralValue, fallThrough bool) {
	body := b.Shader.Stmts.New(ir.StmtCompound{})
	v := value
	caseH := b.Shader.Stmts.New(ir.StmtSwitchCase{Value: &v, Body: body, FallThrough: fallThrough})
	top := &b.switchStack[len(b.switchStack)-1]
	top.stmt.Cases = append(top.stmt.Cases, caseH)
	b.Shader.Stmts.Set(top.handle, top.stmt)
	b.push(body, frameSwitchCase)
}

// BeginDefault opens the `default:` arm.
func (b *ShaderBuilder) BeginDefault(fallThrough bool) {
	body := b.Shader.Stmts.New(ir.StmtCompound{})
	caseH := b.Shader.Stmts.New(ir.StmtSwitchCase{Value: nil, Body: body, FallThrough: fallThrough})
	top := &b.switchStack[len(b.switchStack)-1]
	top.stmt.Cases = append(top.stmt.Cases, caseH)
	b.Shader.Stmts.Set(top.handle, top.stmt)
	b.push(body, frameSwitchCase)
}

// EndCase closes the current case/default body, without closing the
// enclosing switch.
func (b *ShaderBuilder) EndCase() { b.pop() }

// EndSwitch finishes the current switch statement.
func (b *ShaderBuilder) EndSwitch() {
	b.switchStack = b.switchStack[:len(b.switchStack)-1]
}

// --- loops ---------------------------------------------------------------

// BeginFor opens a C-style counted loop and pushes its body.
func (b *ShaderBuilder) BeginFor(init ir.StmtHandle, hasInit bool, cond, post *ir.ExprHandle) {
	body := b.Shader.Stmts.New(ir.StmtCompound{})
	b.addStmt(ir.StmtFor{Init: init, HasInit: hasInit, Cond: cond, Post: post, Body: body})
	b.push(body, frameCompound)
}

// EndFor closes the current for-loop body.
func (b *ShaderBuilder) EndFor() { b.pop() }

// BeginWhile opens a pre-tested loop and pushes its body.
func (b *ShaderBuilder) BeginWhile(cond ir.ExprHandle) {
	body := b.Shader.Stmts.New(ir.StmtCompound{})
	b.addStmt(ir.StmtWhile{Cond: cond, Body: body})
	b.push(body, frameCompound)
}

// EndWhile closes the current while-loop body.
func (b *ShaderBuilder) EndWhile() { b.pop() }

// BeginDoWhile opens a post-tested loop body; the condition is
// supplied at EndDoWhile time, since it is only known after the body
// is written in source order but the IR node needs it up front.
func (b *ShaderBuilder) BeginDoWhile() ir.StmtHandle {
	body := b.Shader.Stmts.New(ir.StmtCompound{})
	b.push(body, frameCompound)
	return body
}

// EndDoWhile closes the body and emits the StmtDoWhile with its
// trailing condition.
func (b *ShaderBuilder) EndDoWhile(body ir.StmtHandle, cond ir.ExprHandle) {
	b.pop()
	b.addStmt(ir.StmtDoWhile{Body: body, Cond: cond})
}
