// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

// Package ir defines the typed intermediate representation that sits at
// the core of the shaderwright compiler.
//
// A front-end (a DSL value layer, not part of this module) builds an IR
// tree by calling into package builder, which in turn allocates nodes
// from the per-shader arenas defined here: TypeCache for Type, ExprCache
// for Expr, StmtCache for Stmt. Every handle (TypeHandle, ExprHandle,
// StmtHandle, VarID) is a plain arena index, never a pointer, so that a
// transform stage can clone an entire shader cheaply before rewriting
// it.
//
// The type hierarchy that the original C++ source expressed with ~40
// Expr subclasses and ~30 Stmt subclasses is represented here as tagged
// sums: ExprKind and StmtKind are marker interfaces implemented by one
// small struct per variant, with shared shapes (all binary operators,
// all unary operators) factored into a single parameterized struct.
package ir
