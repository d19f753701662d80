// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package transform

import "github.com/shaderwright/shaderwright/ir"

// Simplify clones s and folds constant arithmetic: a binary/unary
// expression whose operands are already literals is replaced in place
// by the literal result, so later stages (and the emitters) never
// have to special-case `1 + 2` vs a pre-folded `3` (spec.md §4.4).
// Expression handles are allocated in builder order, operands always
// before their consumers, so a single increasing pass sees every
// operand already folded by the time it reaches a node that uses it.
func Simplify(s *ir.Shader) *ir.Shader {
	out := s.Clone()
	for h := ir.ExprHandle(0); int(h) < out.Exprs.Count(); h++ {
		foldExpr(out, h)
	}
	return out
}

func foldExpr(s *ir.Shader, h ir.ExprHandle) {
	e := s.Exprs.MustGet(h)
	switch k := e.Kind.(type) {
	case ir.ExprUnary:
		lit, ok := s.Exprs.MustGet(k.Operand).Kind.(ir.ExprLiteral)
		if !ok {
			return
		}
		if folded, ok := foldUnary(k.Op, lit.Value); ok {
			s.Exprs.Set(h, ir.ExprLiteral{Value: folded}, e.Type)
		}
	case ir.ExprBinary:
		lhs, lok := s.Exprs.MustGet(k.Left).Kind.(ir.ExprLiteral)
		rhs, rok := s.Exprs.MustGet(k.Right).Kind.(ir.ExprLiteral)
		if !lok || !rok {
			return
		}
		if folded, ok := foldBinary(k.Op, lhs.Value, rhs.Value); ok {
			s.Exprs.Set(h, ir.ExprLiteral{Value: folded}, e.Type)
		}
	}
}

func foldUnary(op ir.UnaryOp, v ir.LiteralValue) (ir.LiteralValue, bool) {
	switch op {
	case ir.OpUnaryMinus:
		switch n := v.(type) {
		case ir.LitI32:
			return ir.LitI32(-n), true
		case ir.LitF32:
			return ir.LitF32(-n), true
		case ir.LitF64:
			return ir.LitF64(-n), true
		case ir.LitI64:
			return ir.LitI64(-n), true
		}
	case ir.OpUnaryNot:
		if b, ok := v.(ir.LitBool); ok {
			return ir.LitBool(!b), true
		}
	case ir.OpUnaryPlus:
		return v, true
	}
	return nil, false
}

func foldBinary(op ir.BinaryOp, l, r ir.LiteralValue) (ir.LiteralValue, bool) {
	switch a := l.(type) {
	case ir.LitI32:
		b, ok := r.(ir.LitI32)
		if !ok {
			return nil, false
		}
		return foldI32(op, a, b)
	case ir.LitF32:
		b, ok := r.(ir.LitF32)
		if !ok {
			return nil, false
		}
		return foldF32(op, a, b)
	}
	return nil, false
}

func foldI32(op ir.BinaryOp, a, b ir.LitI32) (ir.LiteralValue, bool) {
	switch op {
	case ir.OpAdd:
		return a + b, true
	case ir.OpSub:
		return a - b, true
	case ir.OpMul:
		return a * b, true
	case ir.OpDiv:
		if b == 0 {
			return nil, false
		}
		return a / b, true
	case ir.OpMod:
		if b == 0 {
			return nil, false
		}
		return a % b, true
	case ir.OpBitAnd:
		return a & b, true
	case ir.OpBitOr:
		return a | b, true
	case ir.OpBitXor:
		return a ^ b, true
	case ir.OpEqual:
		return ir.LitBool(a == b), true
	case ir.OpNotEqual:
		return ir.LitBool(a != b), true
	case ir.OpLess:
		return ir.LitBool(a < b), true
	case ir.OpLessEqual:
		return ir.LitBool(a <= b), true
	case ir.OpGreater:
		return ir.LitBool(a > b), true
	case ir.OpGreaterEqual:
		return ir.LitBool(a >= b), true
	}
	return nil, false
}

func foldF32(op ir.BinaryOp, a, b ir.LitF32) (ir.LiteralValue, bool) {
	switch op {
	case ir.OpAdd:
		return a + b, true
	case ir.OpSub:
		return a - b, true
	case ir.OpMul:
		return a * b, true
	case ir.OpDiv:
		if b == 0 {
			return nil, false
		}
		return a / b, true
	case ir.OpEqual:
		return ir.LitBool(a == b), true
	case ir.OpNotEqual:
		return ir.LitBool(a != b), true
	case ir.OpLess:
		return ir.LitBool(a < b), true
	case ir.OpLessEqual:
		return ir.LitBool(a <= b), true
	case ir.OpGreater:
		return ir.LitBool(a > b), true
	case ir.OpGreaterEqual:
		return ir.LitBool(a >= b), true
	}
	return nil, false
}
