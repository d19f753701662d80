// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package hlsl

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
		return strconv.FormatFloat(float64(n), 'g', -1, 64) + "L"
	default:
		return "0"
	}
}

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
		return "(" + e.typeName(ex.Type) + ")" + e.expr(k.Operand)
	case ir.ExprQuestion:
		return fmt.Sprintf("(%s ? %s : %s)", e.expr(k.Cond), e.expr(k.Then), e.expr(k.Else))
	case ir.ExprAggregateInit:
		parts := make([]string, len(k.Fields))
		for i, f := range k.Fields {
			parts[i] = e.expr(f)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case ir.ExprCompositeConstruct:
		return e.typeName(ex.Type) + "(" + e.exprList(k.Components) + ")"
	case ir.ExprInit:
		return e.expr(k.Value)
	case ir.ExprFnCall:
		return e.shader.MustVar(k.Function).Name + "(" + e.exprList(k.Args) + ")"
	case ir.ExprIntrinsicCall:
		return string(k.Op) + "(" + e.exprList(k.Args) + ")"
	case ir.ExprImageAccessCall:
		return e.imageAccess(k.Op, e.shader.Exprs.MustGet(k.Image), k.Image, k.Coordinate, k.Extra)
	case ir.ExprCombinedImageAccessCall:
		return e.imageAccess(k.Op, e.shader.Exprs.MustGet(k.CombinedImg), k.CombinedImg, k.Coordinate, k.Extra)
	case ir.ExprSwitchTest:
		return e.expr(k.Selector)
	case ir.ExprSwitchCase:
		return literalString(k.Value)
	case ir.ExprCopy:
		return e.expr(k.Source)
	case ir.ExprStreamAppend:
		return "/* stream append unsupported in HLSL */ 0"
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

// imageAccess renders a texture/sampler method call. HLSL methods are
// invoked on the resource object itself (`tex.Sample(samp, uv)`)
// rather than passed as a leading argument the way GLSL's free
// functions take it, so this mirrors GLSL's imageAccess in shape but
// not in call convention.
func (e *Emitter) imageAccess(op ir.ImageOp, resourceExpr ir.Expr, resource ir.ExprHandle, coord ir.ExprHandle, extra []ir.ExprHandle) string {
	resourceText := e.expr(resource)
	switch op {
	case ir.ImageSample:
		return fmt.Sprintf("%s.Sample(%s_samp, %s)", resourceText, resourceText, e.expr(coord))
	case ir.ImageFetch, ir.ImageLoad:
		return fmt.Sprintf("%s.Load(%s)", resourceText, e.expr(coord))
	case ir.ImageStore:
		if len(extra) == 0 {
			return fmt.Sprintf("%s[%s] = 0", resourceText, e.expr(coord))
		}
		return fmt.Sprintf("%s[%s] = %s", resourceText, e.expr(coord), e.expr(extra[0]))
	case ir.ImageGather:
		return fmt.Sprintf("%s.Gather(%s_samp, %s)", resourceText, resourceText, e.expr(coord))
	case ir.ImageQuerySize:
		return fmt.Sprintf("/* GetDimensions */ 0")
	default:
		return fmt.Sprintf("%s.Load(%s)", resourceText, e.expr(coord))
	}
}
