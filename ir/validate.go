// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package ir

import "fmt"

// ValidationError reports one violated invariant found by Validate.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string { return e.Message }

// Validate checks a shader against the quantified invariants of
// spec.md §8: every expression has a non-null type, every expression's
// operand count matches its kind's arity, and every struct's member
// offsets are non-decreasing and alignment-satisfying under their
// layout. It does not re-check memory-layout arithmetic itself (that
// is proven by construction in layout.go); it checks that the IR
// graph built on top of the type cache is internally consistent.
func Validate(s *Shader) []ValidationError {
	var errs []ValidationError

	for h := ExprHandle(0); int(h) < s.Exprs.Count(); h++ {
		e := s.Exprs.MustGet(h)
		if e.Kind == nil {
			errs = append(errs, ValidationError{fmt.Sprintf("expression %d has a nil kind", h)})
			continue
		}
		if _, ok := s.Types.Lookup(e.Type); !ok {
			errs = append(errs, ValidationError{fmt.Sprintf("expression %d has type %d that does not resolve", h, e.Type)})
		}
		if want, got := e.Kind.Arity(), operandCount(e.Kind); want != got {
			errs = append(errs, ValidationError{
				fmt.Sprintf("expression %d (%T): arity %d does not match %d operands", h, e.Kind, want, got),
			})
		}
	}

	for th := TypeHandle(0); int(th) < s.Types.Count(); th++ {
		typ, _ := s.Types.Lookup(th)
		st, ok := typ.Inner.(*StructType)
		if !ok {
			continue
		}
		var cursor uint32
		for i, m := range st.Members {
			if m.Offset < cursor {
				errs = append(errs, ValidationError{
					fmt.Sprintf("struct %q member %d (%s): offset %d is less than preceding member's end %d", st.Name, i, m.Name, m.Offset, cursor),
				})
			}
			if align := s.Types.alignOf(m.Type, st.Layout); align > 0 && m.Offset%align != 0 {
				errs = append(errs, ValidationError{
					fmt.Sprintf("struct %q member %d (%s): offset %d is not a multiple of alignment %d", st.Name, i, m.Name, m.Offset, align),
				})
			}
			cursor = m.Offset + m.Size
		}
	}

	return errs
}

// operandCount returns the number of operand handles actually embedded
// in kind's payload; kept distinct from Arity() so Validate checks the
// two against each other instead of trusting a single source.
func operandCount(kind ExprKind) int {
	switch k := kind.(type) {
	case ExprLiteral, ExprIdentifier, ExprDummy, ExprSwitchCase:
		return 0
	case ExprMemberSelect, ExprSwizzle, ExprCast, ExprInit, ExprUnary, ExprCopy, ExprStreamAppend, ExprSwitchTest:
		return 1
	case ExprArrayAccess, ExprBinary, ExprAssign:
		return 2
	case ExprQuestion:
		return 3
	case ExprAggregateInit:
		return len(k.Fields)
	case ExprCompositeConstruct:
		return len(k.Components)
	case ExprFnCall:
		return len(k.Args)
	case ExprIntrinsicCall:
		return len(k.Args)
	case ExprImageAccessCall:
		return 2 + len(k.Extra)
	case ExprCombinedImageAccessCall:
		return 2 + len(k.Extra)
	default:
		return kind.Arity()
	}
}
