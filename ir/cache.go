// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package ir

// ShaderAllocatorBlock is the arena backing a single shader's Expr and
// Stmt nodes. Per spec.md §3, all Expr/Stmt nodes are allocated from a
// per-shader arena whose lifetime equals the shader's; there is no
// per-node destruction, so an entire intermediate tree can be dropped
// by simply discarding the arena (spec.md §5).
type ShaderAllocatorBlock struct {
	exprs []Expr
	stmts []Stmt
}

// NewShaderAllocatorBlock creates an empty arena.
func NewShaderAllocatorBlock() *ShaderAllocatorBlock {
	return &ShaderAllocatorBlock{
		exprs: make([]Expr, 0, 64),
		stmts: make([]Stmt, 0, 64),
	}
}

// ExprCache hands out exclusive handles to freshly built Expr nodes,
// owning the slice of the arena that backs them.
type ExprCache struct {
	block *ShaderAllocatorBlock
}

// NewExprCache creates an ExprCache backed by block.
func NewExprCache(block *ShaderAllocatorBlock) *ExprCache { return &ExprCache{block: block} }

// New allocates a fresh Expr node and returns its handle.
func (c *ExprCache) New(kind ExprKind, typ TypeHandle) ExprHandle {
	h := ExprHandle(len(c.block.exprs))
	c.block.exprs = append(c.block.exprs, Expr{Kind: kind, Type: typ})
	return h
}

// MustGet returns the Expr at h, panicking if h is out of range (an
// invariant violation per spec.md §7).
func (c *ExprCache) MustGet(h ExprHandle) Expr {
	if int(h) >= len(c.block.exprs) {
		panic("ir: expression handle out of range")
	}
	return c.block.exprs[h]
}

// Get is the non-panicking form of MustGet.
func (c *ExprCache) Get(h ExprHandle) (Expr, bool) {
	if int(h) >= len(c.block.exprs) {
		return Expr{}, false
	}
	return c.block.exprs[h], true
}

// Set overwrites the Expr at h in place, keeping its handle stable.
func (c *ExprCache) Set(h ExprHandle, kind ExprKind, typ TypeHandle) {
	c.block.exprs[h] = Expr{Kind: kind, Type: typ}
}

// Count returns the number of allocated expressions.
func (c *ExprCache) Count() int { return len(c.block.exprs) }

// StmtCache hands out exclusive handles to freshly built Stmt nodes.
type StmtCache struct {
	block *ShaderAllocatorBlock
}

// NewStmtCache creates a StmtCache backed by block.
func NewStmtCache(block *ShaderAllocatorBlock) *StmtCache { return &StmtCache{block: block} }

// New allocates a fresh Stmt node and returns its handle.
func (c *StmtCache) New(kind StmtKind) StmtHandle {
	h := StmtHandle(len(c.block.stmts))
	c.block.stmts = append(c.block.stmts, Stmt{Kind: kind})
	return h
}

// MustGet returns the Stmt at h, panicking if h is out of range.
func (c *StmtCache) MustGet(h StmtHandle) Stmt {
	if int(h) >= len(c.block.stmts) {
		panic("ir: statement handle out of range")
	}
	return c.block.stmts[h]
}

// Get is the non-panicking form of MustGet.
func (c *StmtCache) Get(h StmtHandle) (Stmt, bool) {
	if int(h) >= len(c.block.stmts) {
		return Stmt{}, false
	}
	return c.block.stmts[h], true
}

// Set overwrites the Stmt at h in place; used by transforms that
// rewrite a node's kind without reallocating its handle (e.g.
// TransformSSA turning a statement-level assignment into a variable
// declaration).
func (c *StmtCache) Set(h StmtHandle, kind StmtKind) {
	c.block.stmts[h] = Stmt{Kind: kind}
}

// Count returns the number of allocated statements.
func (c *StmtCache) Count() int { return len(c.block.stmts) }
