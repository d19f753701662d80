// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package ir

import "testing"

// For every Expr e: typeOf(e) is non-null and operand count matches
// e.kind's arity (spec.md §8's third quantified invariant). Fixed-arity
// kinds carry their count as a literal; variable-arity kinds (calls,
// composite constructs) derive it from the length of their operand
// slice, so this exercises both shapes.
func TestExprArityMatchesKind(t *testing.T) {
	s := NewShader()
	f32 := s.Types.GetBasic(ScalarType{Kind: ScalarF32})
	vec3 := s.Types.GetBasic(VectorType{Size: Vec3, Kind: ScalarF32})

	a := s.Exprs.New(ExprLiteral{Value: LitF32(1)}, f32)
	b := s.Exprs.New(ExprLiteral{Value: LitF32(2)}, f32)
	c := s.Exprs.New(ExprLiteral{Value: LitF32(3)}, f32)

	cases := []struct {
		name      string
		kind      ExprKind
		wantArity int
	}{
		{"literal", ExprLiteral{Value: LitF32(0)}, 0},
		{"binary", ExprBinary{Op: OpAdd, Left: a, Right: b}, 2},
		{"unary", ExprUnary{Op: OpUnaryMinus, Operand: a}, 1},
		{"assign", ExprAssign{Op: AssignSet, Target: a, RHS: b}, 2},
		{"cast", ExprCast{Operand: a}, 1},
		{"question", ExprQuestion{Cond: a, Then: b, Else: c}, 3},
		{"composite-3", ExprCompositeConstruct{Components: []ExprHandle{a, b, c}}, 3},
		{"composite-0", ExprCompositeConstruct{Components: nil}, 0},
		{"aggregate-2", ExprAggregateInit{Fields: []ExprHandle{a, b}}, 2},
		{"image-access", ExprImageAccessCall{Op: ImageSample, Image: a, Coordinate: b, Extra: []ExprHandle{c}}, 3},
		{"intrinsic-2", ExprIntrinsicCall{Op: "dot", Args: []ExprHandle{a, b}}, 2},
	}

	for _, tc := range cases {
		h := s.Exprs.New(tc.kind, vec3)
		e := s.Exprs.MustGet(h)

		if got := e.Kind.Arity(); got != tc.wantArity {
			t.Errorf("%s: Arity() = %d, want %d", tc.name, got, tc.wantArity)
		}
		if _, ok := s.Types.Lookup(e.Type); !ok {
			t.Errorf("%s: typeOf(e) = %v does not resolve in the type cache", tc.name, e.Type)
		}
	}
}

// Every expression allocated through ExprCache.New carries the type it
// was given, regardless of allocation order — handles are stable arena
// indices, not aliases into a shared mutable slot.
func TestExprHandlesAreStable(t *testing.T) {
	s := NewShader()
	f32 := s.Types.GetBasic(ScalarType{Kind: ScalarF32})
	boolT := s.Types.GetBasic(ScalarType{Kind: ScalarBool})

	h1 := s.Exprs.New(ExprLiteral{Value: LitF32(1)}, f32)
	h2 := s.Exprs.New(ExprLiteral{Value: LitBool(true)}, boolT)

	e1 := s.Exprs.MustGet(h1)
	e2 := s.Exprs.MustGet(h2)

	if e1.Type != f32 {
		t.Errorf("h1 type = %v, want %v", e1.Type, f32)
	}
	if e2.Type != boolT {
		t.Errorf("h2 type = %v, want %v", e2.Type, boolT)
	}
	if lit, ok := e1.Kind.(ExprLiteral); !ok || lit.Value != LiteralValue(LitF32(1)) {
		t.Errorf("h1 kind = %#v, want ExprLiteral{LitF32(1)}", e1.Kind)
	}
}
