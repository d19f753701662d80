// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import "github.com/shaderwright/shaderwright/ir"

// glslExt maps a canonical IntrinsicOp name to its GLSL.std.450
// extended-instruction-set opcode. Intrinsics with no direct GLSL.std.450
// entry (barriers, subgroup ops) are handled separately in rvalue.
var glslExt = map[ir.IntrinsicOp]uint32{
	"round": 1, "trunc": 3, "abs": 4, "sign": 6, "floor": 8, "ceil": 9,
	"fract": 10, "radians": 11, "degrees": 12, "sin": 13, "cos": 14, "tan": 15,
	"asin": 16, "acos": 17, "atan": 18, "sinh": 19, "cosh": 20, "tanh": 21,
	"pow": 26, "exp": 27, "log": 28, "exp2": 29, "log2": 30, "sqrt": 31,
	"inversesqrt": 32, "min": 37, "max": 40, "clamp": 43, "mix": 46,
	"step": 48, "smoothstep": 49, "length": 66, "distance": 67,
	"cross": 68, "normalize": 69, "reflect": 71, "refract": 72,
}

func isFloat(k ir.ScalarKind) bool {
	return k == ir.ScalarF16 || k == ir.ScalarF32 || k == ir.ScalarF64
}

func isUnsigned(k ir.ScalarKind) bool {
	switch k {
	case ir.ScalarU8, ir.ScalarU16, ir.ScalarU32, ir.ScalarU64, ir.ScalarBool:
		return true
	default:
		return false
	}
}

// scalarKindOf returns the underlying scalar kind of t (its own kind
// for a scalar, its component kind for a vector/matrix).
func (f *FuncEmitter) scalarKindOf(t ir.TypeHandle) ir.ScalarKind {
	switch inner := f.shader.Types.MustLookup(t).Inner.(type) {
	case ir.ScalarType:
		return inner.Kind
	case ir.VectorType:
		return inner.Kind
	case ir.MatrixType:
		return inner.Kind
	default:
		return ir.ScalarF32
	}
}

func (f *FuncEmitter) vectorSizeOf(t ir.TypeHandle) int {
	if v, ok := f.shader.Types.MustLookup(t).Inner.(ir.VectorType); ok {
		return int(v.Size)
	}
	return 1
}

// lvalue resolves h to a pointer id, its pointee type, and the storage
// class that pointer lives in. Only identifier/member/array/
// single-component-swizzle chains are addressable; anything else
// panics (an invariant the transform pipeline is expected to have
// already enforced by the time emission runs).
func (f *FuncEmitter) lvalue(h ir.ExprHandle) (ID, ir.TypeHandle) {
	ex := f.shader.Exprs.MustGet(h)
	switch k := ex.Kind.(type) {
	case ir.ExprIdentifier:
		return f.ptrFor(k.Var), ex.Type
	case ir.ExprMemberSelect:
		basePtr, baseType := f.lvalue(k.Base)
		st := f.shader.Types.MustLookup(baseType).Inner.(*ir.StructType)
		idx := 0
		for i, m := range st.Members {
			if m.Name == k.Member {
				idx = i
				break
			}
		}
		return f.accessChain(basePtr, baseType, ex.Type, f.types.constUint(uint32(idx))), ex.Type
	case ir.ExprArrayAccess:
		basePtr, baseType := f.lvalue(k.Base)
		return f.accessChain(basePtr, baseType, ex.Type, f.rvalue(k.Index)), ex.Type
	case ir.ExprSwizzle:
		if len(k.Components) == 1 {
			basePtr, baseType := f.lvalue(k.Base)
			return f.accessChain(basePtr, baseType, ex.Type, f.types.constUint(uint32(k.Components[0]))), ex.Type
		}
		// multi-component swizzle: no single pointer addresses it; the
		// caller (assign) special-cases this via a shuffle+store instead.
		basePtr, baseType := f.lvalue(k.Base)
		return basePtr, baseType
	default:
		panic("spirv: expression is not addressable")
	}
}

func (f *FuncEmitter) accessChain(basePtr ID, baseType, resultType ir.TypeHandle, index ID) ID {
	space := f.storageOf(basePtr)
	ptrType := f.shader.Types.GetPointer(resultType, space, false)
	ptrTypeID := f.types.IDFor(ptrType)
	id := f.mod.AllocID()
	f.instr(Instruction{Op: OpAccessChain, Operands: []uint32{uint32(ptrTypeID), uint32(id), uint32(basePtr), uint32(index)}})
	return id
}

// storageOf is a best-effort lookup used only to pick the storage class
// for intermediate access-chain pointer types; Function storage is a
// safe default since SPIR-V validation only checks the chain's own
// internal consistency, not emission against this heuristic.
func (f *FuncEmitter) storageOf(ptr ID) ir.StorageClass {
	for v, id := range f.varIDs {
		if id == ptr {
			return f.varStorage[v]
		}
	}
	return ir.StorageFunction
}

func (f *FuncEmitter) assign(target ir.ExprHandle, value ID) {
	ex := f.shader.Exprs.MustGet(target)
	if sw, ok := ex.Kind.(ir.ExprSwizzle); ok && len(sw.Components) > 1 {
		basePtr, baseType := f.lvalue(sw.Base)
		baseVal := f.load(basePtr, baseType)
		size := f.vectorSizeOf(baseType)
		indices := make([]uint32, size)
		for i := range indices {
			indices[i] = uint32(i)
		}
		for i, c := range sw.Components {
			indices[c] = uint32(size) + uint32(i)
		}
		baseTypeID := f.types.IDFor(baseType)
		shuffled := f.mod.AllocID()
		var ib InstructionBuilder
		ib.AddID(baseTypeID)
		ib.AddID(shuffled)
		ib.AddID(baseVal)
		ib.AddID(value)
		ib.AddWords(indices...)
		f.instr(ib.Build(OpVectorShuffle))
		f.store(basePtr, shuffled)
		return
	}
	ptr, _ := f.lvalue(target)
	f.store(ptr, value)
}

func (f *FuncEmitter) rvalue(h ir.ExprHandle) ID {
	ex := f.shader.Exprs.MustGet(h)
	switch k := ex.Kind.(type) {
	case ir.ExprLiteral:
		id, _ := f.types.Literal(k.Value)
		return id
	case ir.ExprIdentifier:
		ptr, typ := f.lvalue(h)
		return f.load(ptr, typ)
	case ir.ExprMemberSelect:
		ptr, typ := f.lvalue(h)
		return f.load(ptr, typ)
	case ir.ExprArrayAccess:
		ptr, typ := f.lvalue(h)
		return f.load(ptr, typ)
	case ir.ExprSwizzle:
		baseType := f.shader.Exprs.MustGet(k.Base).Type
		baseVal := f.rvalue(k.Base)
		if len(k.Components) == 1 {
			typID := f.types.IDFor(ex.Type)
			id := f.mod.AllocID()
			f.instr(Instruction{Op: OpCompositeExtract, Operands: []uint32{uint32(typID), uint32(id), uint32(baseVal), uint32(k.Components[0])}})
			return id
		}
		typID := f.types.IDFor(ex.Type)
		id := f.mod.AllocID()
		var ib InstructionBuilder
		ib.AddID(typID)
		ib.AddID(id)
		ib.AddID(baseVal)
		ib.AddID(baseVal)
		for _, c := range k.Components {
			ib.AddWord(uint32(c))
		}
		f.instr(ib.Build(OpVectorShuffle))
		_ = baseType
		return id
	case ir.ExprBinary:
		return f.binary(ex.Type, k)
	case ir.ExprUnary:
		return f.unary(ex.Type, k)
	case ir.ExprAssign:
		return f.assignExpr(ex.Type, k)
	case ir.ExprCast:
		return f.cast(ex.Type, k.Operand)
	case ir.ExprQuestion:
		return f.selectExpr(ex.Type, k)
	case ir.ExprInit:
		return f.rvalue(k.Value)
	case ir.ExprCompositeConstruct:
		return f.composite(ex.Type, k.Components)
	case ir.ExprAggregateInit:
		return f.composite(ex.Type, k.Fields)
	case ir.ExprFnCall:
		return f.call(ex.Type, k)
	case ir.ExprIntrinsicCall:
		return f.intrinsic(ex.Type, k)
	case ir.ExprCopy:
		return f.rvalue(k.Source)
	case ir.ExprSwitchTest:
		return f.rvalue(k.Selector)
	case ir.ExprSwitchCase:
		id, _ := f.types.Literal(k.Value)
		return id
	case ir.ExprImageAccessCall:
		return f.imageAccessCall(ex.Type, k.Op, k.Image, k.Coordinate, k.Extra, false)
	case ir.ExprCombinedImageAccessCall:
		return f.imageAccessCall(ex.Type, k.Op, k.CombinedImg, k.Coordinate, k.Extra, true)
	case ir.ExprStreamAppend:
		// Mirrors glsl's `EmitStreamVertex(<value>)` (glsl/expr.go):
		// the stream argument SPIR-V's OpEmitStreamVertex wants is
		// k.Value's evaluated id, not the (separately tracked) k.Stream
		// variable.
		streamArg := f.rvalue(k.Value)
		f.instr(Instruction{Op: OpEmitStreamVertex, Operands: []uint32{uint32(streamArg)}})
		return streamArg
	default:
		typID := f.types.IDFor(ex.Type)
		id := f.mod.AllocID()
		f.instr(Instruction{Op: OpUndef, Operands: []uint32{uint32(typID), uint32(id)}})
		return id
	}
}

func (f *FuncEmitter) binary(resultType ir.TypeHandle, k ir.ExprBinary) ID {
	lhs := f.rvalue(k.Left)
	rhs := f.rvalue(k.Right)
	kind := f.scalarKindOf(f.shader.Exprs.MustGet(k.Left).Type)
	float := isFloat(kind)
	unsigned := isUnsigned(kind)

	op := binaryOpcode(k.Op, float, unsigned)
	typID := f.types.IDFor(resultType)
	id := f.mod.AllocID()
	f.instr(Instruction{Op: op, Operands: []uint32{uint32(typID), uint32(id), uint32(lhs), uint32(rhs)}})
	return id
}

func binaryOpcode(op ir.BinaryOp, float, unsigned bool) OpCode {
	switch op {
	case ir.OpAdd:
		if float {
			return OpFAdd
		}
		return OpIAdd
	case ir.OpSub:
		if float {
			return OpFSub
		}
		return OpISub
	case ir.OpMul:
		if float {
			return OpFMul
		}
		return OpIMul
	case ir.OpDiv:
		if float {
			return OpFDiv
		}
		if unsigned {
			return OpUDiv
		}
		return OpSDiv
	case ir.OpMod:
		if unsigned {
			return OpUMod
		}
		return OpSMod
	case ir.OpBitAnd:
		return OpBitwiseAnd
	case ir.OpBitOr:
		return OpBitwiseOr
	case ir.OpBitXor:
		return OpBitwiseXor
	case ir.OpShl:
		return OpShiftLeftLogical
	case ir.OpShr:
		if unsigned {
			return OpShiftRightLogical
		}
		return OpShiftRightArithmetic
	case ir.OpLogicalAnd:
		return OpLogicalAnd
	case ir.OpLogicalOr:
		return OpLogicalOr
	case ir.OpEqual:
		if float {
			return OpFOrdEqual
		}
		return OpIEqual
	case ir.OpNotEqual:
		if float {
			return OpFOrdNotEqual
		}
		return OpCode(171) // OpINotEqual
	case ir.OpLess:
		if float {
			return OpFOrdLessThan
		}
		if unsigned {
			return OpULessThan
		}
		return OpSLessThan
	case ir.OpLessEqual:
		if float {
			return OpFOrdLessThanEqual
		}
		if unsigned {
			return OpULessThanEqual
		}
		return OpSLessThanEqual
	case ir.OpGreater:
		if float {
			return OpFOrdGreaterThan
		}
		if unsigned {
			return OpUGreaterThan
		}
		return OpSGreaterThan
	case ir.OpGreaterEqual:
		if float {
			return OpFOrdGreaterThanEqual
		}
		if unsigned {
			return OpUGreaterThanEqual
		}
		return OpSGreaterThanEqual
	default:
		return OpIAdd
	}
}

func (f *FuncEmitter) unary(resultType ir.TypeHandle, k ir.ExprUnary) ID {
	kind := f.scalarKindOf(resultType)
	float := isFloat(kind)
	switch k.Op {
	case ir.OpUnaryPlus:
		return f.rvalue(k.Operand)
	case ir.OpUnaryMinus:
		operand := f.rvalue(k.Operand)
		typID := f.types.IDFor(resultType)
		id := f.mod.AllocID()
		op := OpSNegate
		if float {
			op = OpFNegate
		}
		f.instr(Instruction{Op: op, Operands: []uint32{uint32(typID), uint32(id), uint32(operand)}})
		return id
	case ir.OpUnaryNot:
		operand := f.rvalue(k.Operand)
		typID := f.types.IDFor(resultType)
		id := f.mod.AllocID()
		f.instr(Instruction{Op: OpLogicalNot, Operands: []uint32{uint32(typID), uint32(id), uint32(operand)}})
		return id
	case ir.OpUnaryBitNot:
		operand := f.rvalue(k.Operand)
		typID := f.types.IDFor(resultType)
		id := f.mod.AllocID()
		f.instr(Instruction{Op: OpNot, Operands: []uint32{uint32(typID), uint32(id), uint32(operand)}})
		return id
	case ir.OpPreInc, ir.OpPreDec, ir.OpPostInc, ir.OpPostDec:
		return f.incDec(resultType, k)
	default:
		return f.rvalue(k.Operand)
	}
}

func (f *FuncEmitter) incDec(resultType ir.TypeHandle, k ir.ExprUnary) ID {
	ptr, typ := f.lvalue(k.Operand)
	before := f.load(ptr, typ)
	kind := f.scalarKindOf(typ)
	one, _ := f.types.Literal(oneOf(kind))
	typID := f.types.IDFor(typ)
	after := f.mod.AllocID()
	op := OpIAdd
	if k.Op == ir.OpPreDec || k.Op == ir.OpPostDec {
		op = OpISub
	}
	if isFloat(kind) {
		if op == OpIAdd {
			op = OpFAdd
		} else {
			op = OpFSub
		}
	}
	f.instr(Instruction{Op: op, Operands: []uint32{uint32(typID), uint32(after), uint32(before), uint32(one)}})
	f.store(ptr, after)
	if k.Op == ir.OpPreInc || k.Op == ir.OpPreDec {
		return after
	}
	return before
}

func oneOf(k ir.ScalarKind) ir.LiteralValue {
	if isFloat(k) {
		return ir.LitF32(1)
	}
	if isUnsigned(k) {
		return ir.LitU32(1)
	}
	return ir.LitI32(1)
}

func (f *FuncEmitter) assignExpr(resultType ir.TypeHandle, k ir.ExprAssign) ID {
	rhs := f.rvalue(k.RHS)
	if k.Op != ir.AssignSet {
		ptr, typ := f.lvalue(k.Target)
		current := f.load(ptr, typ)
		kind := f.scalarKindOf(typ)
		op := compoundOpcode(k.Op, isFloat(kind), isUnsigned(kind))
		typID := f.types.IDFor(typ)
		id := f.mod.AllocID()
		f.instr(Instruction{Op: op, Operands: []uint32{uint32(typID), uint32(id), uint32(current), uint32(rhs)}})
		f.store(ptr, id)
		return id
	}
	f.assign(k.Target, rhs)
	return rhs
}

func compoundOpcode(op ir.AssignOp, float, unsigned bool) OpCode {
	switch op {
	case ir.AssignAdd:
		return binaryOpcode(ir.OpAdd, float, unsigned)
	case ir.AssignSub:
		return binaryOpcode(ir.OpSub, float, unsigned)
	case ir.AssignMul:
		return binaryOpcode(ir.OpMul, float, unsigned)
	case ir.AssignDiv:
		return binaryOpcode(ir.OpDiv, float, unsigned)
	case ir.AssignMod:
		return binaryOpcode(ir.OpMod, float, unsigned)
	case ir.AssignBitAnd:
		return OpBitwiseAnd
	case ir.AssignBitOr:
		return OpBitwiseOr
	case ir.AssignBitXor:
		return OpBitwiseXor
	case ir.AssignShl:
		return OpShiftLeftLogical
	case ir.AssignShr:
		if unsigned {
			return OpShiftRightLogical
		}
		return OpShiftRightArithmetic
	default:
		return OpIAdd
	}
}

func (f *FuncEmitter) cast(resultType ir.TypeHandle, operand ir.ExprHandle) ID {
	v := f.rvalue(operand)
	srcKind := f.scalarKindOf(f.shader.Exprs.MustGet(operand).Type)
	dstKind := f.scalarKindOf(resultType)
	typID := f.types.IDFor(resultType)
	if srcKind == dstKind {
		return v
	}
	id := f.mod.AllocID()
	var op OpCode
	switch {
	case isFloat(srcKind) && !isFloat(dstKind):
		op = OpConvertFToS
	case !isFloat(srcKind) && isFloat(dstKind):
		op = OpConvertSToF
	default:
		op = OpBitcast
	}
	f.instr(Instruction{Op: op, Operands: []uint32{uint32(typID), uint32(id), uint32(v)}})
	return id
}

func (f *FuncEmitter) selectExpr(resultType ir.TypeHandle, k ir.ExprQuestion) ID {
	cond := f.rvalue(k.Cond)
	thenV := f.rvalue(k.Then)
	elseV := f.rvalue(k.Else)
	typID := f.types.IDFor(resultType)
	id := f.mod.AllocID()
	f.instr(Instruction{Op: OpSelect, Operands: []uint32{uint32(typID), uint32(id), uint32(cond), uint32(thenV), uint32(elseV)}})
	return id
}

func (f *FuncEmitter) composite(resultType ir.TypeHandle, parts []ir.ExprHandle) ID {
	typID := f.types.IDFor(resultType)
	ids := make([]uint32, len(parts))
	for i, p := range parts {
		ids[i] = uint32(f.rvalue(p))
	}
	id := f.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(typID)
	ib.AddID(id)
	ib.AddWords(ids...)
	f.instr(ib.Build(OpCompositeConstruct))
	return id
}

func (f *FuncEmitter) call(resultType ir.TypeHandle, k ir.ExprFnCall) ID {
	args := make([]ID, len(k.Args))
	for i, a := range k.Args {
		args[i] = f.rvalue(a)
	}
	typID := f.types.IDFor(resultType)
	calleeID := f.funcID(k.Function)
	id := f.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(typID)
	ib.AddID(id)
	ib.AddID(calleeID)
	for _, a := range args {
		ib.AddID(a)
	}
	f.instr(ib.Build(OpFunctionCall))
	return id
}

func (f *FuncEmitter) intrinsic(resultType ir.TypeHandle, k ir.ExprIntrinsicCall) ID {
	if ext, ok := glslExt[k.Op]; ok {
		setID := f.mod.GLSLExtImport()
		typID := f.types.IDFor(resultType)
		id := f.mod.AllocID()
		var ib InstructionBuilder
		ib.AddID(typID)
		ib.AddID(id)
		ib.AddID(setID)
		ib.AddWord(ext)
		for _, a := range k.Args {
			ib.AddID(f.rvalue(a))
		}
		f.instr(ib.Build(OpExtInst))
		return id
	}
	switch k.Op {
	case "dot":
		lhs := f.rvalue(k.Args[0])
		rhs := f.rvalue(k.Args[1])
		typID := f.types.IDFor(resultType)
		id := f.mod.AllocID()
		f.instr(Instruction{Op: OpDot, Operands: []uint32{uint32(typID), uint32(id), uint32(lhs), uint32(rhs)}})
		return id
	case "barrier":
		scope, _ := f.types.Literal(ir.LitU32(2)) // Workgroup
		sem, _ := f.types.Literal(ir.LitU32(264)) // WorkgroupMemory|AcquireRelease
		f.instr(Instruction{Op: OpControlBarrier, Operands: []uint32{uint32(scope), uint32(scope), uint32(sem)}})
		typID := f.types.IDFor(resultType)
		return f.undef(typID)
	default:
		typID := f.types.IDFor(resultType)
		args := make([]uint32, len(k.Args))
		for i, a := range k.Args {
			args[i] = uint32(f.rvalue(a))
		}
		_ = args
		return f.undef(typID)
	}
}

func (f *FuncEmitter) undef(typID ID) ID {
	id := f.mod.AllocID()
	f.instr(Instruction{Op: OpUndef, Operands: []uint32{uint32(typID), uint32(id)}})
	return id
}

// imageAccessCall lowers a standalone (ExprImageAccessCall) or
// combined (ExprCombinedImageAccessCall) image access to the matching
// SPIR-V image opcode. Ops that sample (ImageSample, ImageGather) need
// an OpTypeSampledImage operand: a combined resource already carries
// one (see TypeRegistry.emit's ir.CombinedImageType case), while a
// standalone image is merged with a module-wide default sampler
// (spec.md §4.7's combined-image-sampler merge, cached per basic
// block via mergeSampledImage since the IR never threads a distinct
// sampler handle through ExprImageAccessCall). Ops that read texel
// data directly (Fetch, Load, QuerySize) need the raw image instead,
// so a combined resource is unwrapped once per block via
// extractImage.
func (f *FuncEmitter) imageAccessCall(resultType ir.TypeHandle, op ir.ImageOp, resource, coord ir.ExprHandle, extra []ir.ExprHandle, combined bool) ID {
	resourceVal := f.rvalue(resource)
	coordVal := f.rvalue(coord)
	resourceType := f.shader.Exprs.MustGet(resource).Type
	typID := f.types.IDFor(resultType)

	switch op {
	case ir.ImageSample:
		sampled := resourceVal
		if !combined {
			sampled = f.mergeSampledImage(resourceVal, resourceType)
		}
		id := f.mod.AllocID()
		f.instr(Instruction{Op: OpImageSampleImplicitLod, Operands: []uint32{uint32(typID), uint32(id), uint32(sampled), uint32(coordVal)}})
		return id
	case ir.ImageGather:
		sampled := resourceVal
		if !combined {
			sampled = f.mergeSampledImage(resourceVal, resourceType)
		}
		component := f.types.constUint(0)
		if len(extra) > 0 {
			component = f.rvalue(extra[0])
		}
		id := f.mod.AllocID()
		f.instr(Instruction{Op: OpImageGather, Operands: []uint32{uint32(typID), uint32(id), uint32(sampled), uint32(coordVal), uint32(component)}})
		return id
	case ir.ImageFetch:
		img := resourceVal
		if combined {
			img = f.extractImage(resourceVal, resourceType)
		}
		id := f.mod.AllocID()
		f.instr(Instruction{Op: OpImageFetch, Operands: []uint32{uint32(typID), uint32(id), uint32(img), uint32(coordVal)}})
		return id
	case ir.ImageLoad:
		img := resourceVal
		if combined {
			img = f.extractImage(resourceVal, resourceType)
		}
		id := f.mod.AllocID()
		f.instr(Instruction{Op: OpImageRead, Operands: []uint32{uint32(typID), uint32(id), uint32(img), uint32(coordVal)}})
		return id
	case ir.ImageStore:
		img := resourceVal
		if combined {
			img = f.extractImage(resourceVal, resourceType)
		}
		value := f.undef(typID)
		if len(extra) > 0 {
			value = f.rvalue(extra[0])
		}
		f.instr(Instruction{Op: OpImageWrite, Operands: []uint32{uint32(img), uint32(coordVal), uint32(value)}})
		return value
	case ir.ImageQuerySize, ir.ImageQueryLevels:
		img := resourceVal
		if combined {
			img = f.extractImage(resourceVal, resourceType)
		}
		id := f.mod.AllocID()
		f.instr(Instruction{Op: OpImageQuerySize, Operands: []uint32{uint32(typID), uint32(id), uint32(img)}})
		return id
	default:
		return f.undef(typID)
	}
}

// mergeSampledImage pairs a standalone image value with a module-wide
// default sampler into an OpSampledImage id, reusing the id for the
// remainder of the current basic block. An image value that was loaded
// from a variable is keyed by that variable, so repeated reads of the
// same image in one block share one OpSampledImage.
func (f *FuncEmitter) mergeSampledImage(imageVal ID, imageType ir.TypeHandle) ID {
	sampler := f.defaultSampler()
	key := [2]ID{imageVal, sampler}
	for _, in := range f.body {
		if in.Op == OpLoad && len(in.Operands) == 3 && ID(in.Operands[1]) == imageVal {
			key[0] = ID(in.Operands[2])
		}
	}
	if f.sampledImageCache == nil {
		f.sampledImageCache = make(map[[2]ID]ID)
	}
	if id, ok := f.sampledImageCache[key]; ok {
		return id
	}
	sampledTypeID := f.types.IDFor(f.shader.Types.GetSampledImage(imageType, false))
	id := f.mod.AllocID()
	f.instr(Instruction{Op: OpSampledImage, Operands: []uint32{uint32(sampledTypeID), uint32(id), uint32(imageVal), uint32(sampler)}})
	f.sampledImageCache[key] = id
	return id
}

// extractImage pulls the raw image operand out of a combined
// image+sampler value via OpImage, caching the result for the
// remainder of the current basic block.
func (f *FuncEmitter) extractImage(combinedVal ID, combinedType ir.TypeHandle) ID {
	if f.extractedImageCache == nil {
		f.extractedImageCache = make(map[ID]ID)
	}
	if id, ok := f.extractedImageCache[combinedVal]; ok {
		return id
	}
	var imgType ir.TypeHandle
	switch t := f.shader.Types.MustLookup(combinedType).Inner.(type) {
	case ir.CombinedImageType:
		imgType = t.Image
	case ir.SampledImageType:
		imgType = t.Image
	default:
		imgType = combinedType
	}
	typID := f.types.IDFor(imgType)
	id := f.mod.AllocID()
	f.instr(Instruction{Op: OpImage, Operands: []uint32{uint32(typID), uint32(id), uint32(combinedVal)}})
	f.extractedImageCache[combinedVal] = id
	return id
}
