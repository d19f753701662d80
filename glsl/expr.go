// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shaderwright/shaderwright/ir"
)

var binaryOpText = map[ir.BinaryOp]string{
	ir.OpAdd: "+", ir.OpSub: "-", ir.OpMul: "*", ir.OpDiv: "/", ir.OpMod: "%",
	ir.OpBitAnd: "&", ir.OpBitOr: "|", ir.OpBitXor: "^", ir.OpShl: "<<", ir.OpShr: ">>",
	ir.OpLogicalAnd: "&&", ir.OpLogicalOr: "||",
	ir.OpEqual: "==", ir.OpNotEqual: "!=",
	ir.OpLess: "<", ir.OpLessEqual: "<=", ir.OpGreater: ">", ir.OpGreaterEqual: ">=",
}

var unaryOpText = map[ir.UnaryOp]string{
	ir.OpUnaryPlus: "+", ir.OpUnaryMinus: "-", ir.OpUnaryNot: "!", ir.OpUnaryBitNot: "~",
}

var assignOpText = map[ir.AssignOp]string{
	ir.AssignSet: "=", ir.AssignAdd: "+=", ir.AssignSub: "-=", ir.AssignMul: "*=",
	ir.AssignDiv: "/=", ir.AssignMod: "%=", ir.AssignBitAnd: "&=", ir.AssignBitOr: "|=",
	ir.AssignBitXor: "^=", ir.AssignShl: "<<=", ir.AssignShr: ">>=",
}

var swizzleLetters = "xyzw"

func literalString(v ir.LiteralValue) string {
	switch n := v.(type) {
	case ir.LitBool:
		return strconv.FormatBool(bool(n))
	case ir.LitI32:
		return strconv.FormatInt(int64(n), 10)
	case ir.LitU32:
		return strconv.FormatUint(uint64(n), 10) + "u"
	case ir.LitI64:
		return strconv.FormatInt(int64(n), 10) + "l"
	case ir.LitU64:
		return strconv.FormatUint(uint64(n), 10) + "ul"
	case ir.LitF32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32)
	case ir.LitF64:
		return strconv.FormatFloat(float64(n), 'g', -1, 64) + "lf"
	default:
		return "0"
	}
}

// expr renders h as a fully-parenthesized GLSL expression. GLSL's
// operator precedence matches C's, but this emitter deliberately never
// relies on it: every binary/unary/ternary subexpression is wrapped so
// output is unambiguous regardless of future operator additions.
func (e *Emitter) expr(h ir.ExprHandle) string {
	ex := e.shader.Exprs.MustGet(h)
	switch k := ex.Kind.(type) {
	case ir.ExprLiteral:
		return literalString(k.Value)
	case ir.ExprIdentifier:
		return e.shader.MustVar(k.Var).Name
	case ir.ExprMemberSelect:
		return e.expr(k.Base) + "." + k.Member
	case ir.ExprSwizzle:
		var sb strings.Builder
		for _, c := range k.Components {
			sb.WriteByte(swizzleLetters[c])
		}
		return e.expr(k.Base) + "." + sb.String()
	case ir.ExprArrayAccess:
		return e.expr(k.Base) + "[" + e.expr(k.Index) + "]"
	case ir.ExprBinary:
		return fmt.Sprintf("(%s %s %s)", e.expr(k.Left), binaryOpText[k.Op], e.expr(k.Right))
	case ir.ExprUnary:
		switch k.Op {
		case ir.OpPreInc:
			return "(++" + e.expr(k.Operand) + ")"
		case ir.OpPreDec:
			return "(--" + e.expr(k.Operand) + ")"
		case ir.OpPostInc:
			return "(" + e.expr(k.Operand) + "++)"
		case ir.OpPostDec:
			return "(" + e.expr(k.Operand) + "--)"
		default:
			return "(" + unaryOpText[k.Op] + e.expr(k.Operand) + ")"
		}
	case ir.ExprAssign:
		return fmt.Sprintf("(%s %s %s)", e.expr(k.Target), assignOpText[k.Op], e.expr(k.RHS))
	case ir.ExprCast:
		return e.typeName(ex.Type) + "(" + e.expr(k.Operand) + ")"
	case ir.ExprQuestion:
		return fmt.Sprintf("(%s ? %s : %s)", e.expr(k.Cond), e.expr(k.Then), e.expr(k.Else))
	case ir.ExprAggregateInit:
		return e.typeName(ex.Type) + "(" + e.exprList(k.Fields) + ")"
	case ir.ExprCompositeConstruct:
		return e.typeName(ex.Type) + "(" + e.exprList(k.Components) + ")"
	case ir.ExprInit:
		return e.expr(k.Value)
	case ir.ExprFnCall:
		return e.shader.MustVar(k.Function).Name + "(" + e.exprList(k.Args) + ")"
	case ir.ExprIntrinsicCall:
		return string(k.Op) + "(" + e.exprList(k.Args) + ")"
	case ir.ExprImageAccessCall:
		return e.imageAccess(k.Op, e.expr(k.Image), k.Coordinate, k.Extra)
	case ir.ExprCombinedImageAccessCall:
		return e.imageAccess(k.Op, e.expr(k.CombinedImg), k.Coordinate, k.Extra)
	case ir.ExprSwitchTest:
		return e.expr(k.Selector)
	case ir.ExprSwitchCase:
		return literalString(k.Value)
	case ir.ExprCopy:
		return e.expr(k.Source)
	case ir.ExprStreamAppend:
		return "EmitStreamVertex(" + e.expr(k.Value) + ")"
	case ir.ExprDummy:
		return "/* dummy */ 0"
	default:
		return "/* unknown expr */ 0"
	}
}

func (e *Emitter) exprList(hs []ir.ExprHandle) string {
	parts := make([]string, len(hs))
	for i, h := range hs {
		parts[i] = e.expr(h)
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) imageAccess(op ir.ImageOp, resource string, coord ir.ExprHandle, extra []ir.ExprHandle) string {
	args := append([]string{resource, e.expr(coord)}, func() []string {
		s := make([]string, len(extra))
		for i, h := range extra {
			s[i] = e.expr(h)
		}
		return s
	}()...)
	name := map[ir.ImageOp]string{
		ir.ImageSample: "texture", ir.ImageFetch: "texelFetch", ir.ImageLoad: "imageLoad",
		ir.ImageStore: "imageStore", ir.ImageGather: "textureGather",
		ir.ImageQuerySize: "textureSize", ir.ImageQueryLevels: "textureQueryLevels",
	}[op]
	return name + "(" + strings.Join(args, ", ") + ")"
}
