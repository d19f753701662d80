// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"fmt"
	"math"

	"github.com/shaderwright/shaderwright/ir"
)

// constUint interns a literal uint32 OpConstant (used for array
// lengths, which SPIR-V requires as a constant operand rather than an
// immediate).
func (r *TypeRegistry) constUint(v uint32) ID {
	key := fmt.Sprintf("u32:%d", v)
	if id, ok := r.constCache[key]; ok {
		return id
	}
	typ := r.scalar(ir.ScalarU32)
	id := r.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(typ)
	ib.AddID(id)
	ib.AddWord(v)
	r.mod.AddType(ib.Build(OpConstant))
	r.ensureCache()
	r.constCache[key] = id
	return id
}

// Literal interns the given IR literal value as a SPIR-V OpConstant
// (or OpConstantTrue/False for bools), returning its id and type id.
func (r *TypeRegistry) Literal(v ir.LiteralValue) (ID, ID) {
	switch n := v.(type) {
	case ir.LitBool:
		typ := r.scalar(ir.ScalarBool)
		key := fmt.Sprintf("bool:%v", bool(n))
		if id, ok := r.constCache[key]; ok {
			return id, typ
		}
		id := r.mod.AllocID()
		op := OpConstantFalse
		if bool(n) {
			op = OpConstantTrue
		}
		var ib InstructionBuilder
		ib.AddID(typ)
		ib.AddID(id)
		r.mod.AddType(ib.Build(op))
		r.ensureCache()
		r.constCache[key] = id
		return id, typ
	case ir.LitI32:
		return r.scalarConst(ir.ScalarI32, fmt.Sprintf("i32:%d", n), uint32(int32(n)))
	case ir.LitU32:
		return r.scalarConst(ir.ScalarU32, fmt.Sprintf("u32:%d", n), uint32(n))
	case ir.LitF32:
		bits := math.Float32bits(float32(n))
		return r.scalarConst(ir.ScalarF32, fmt.Sprintf("f32:%d", bits), bits)
	case ir.LitI64, ir.LitU64, ir.LitF64:
		return r.wideConst(n)
	default:
		typ := r.scalar(ir.ScalarI32)
		return r.constUint(0), typ
	}
}

func (r *TypeRegistry) scalarConst(kind ir.ScalarKind, key string, bits uint32) (ID, ID) {
	typ := r.scalar(kind)
	if id, ok := r.constCache[key]; ok {
		return id, typ
	}
	id := r.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(typ)
	ib.AddID(id)
	ib.AddWord(bits)
	r.mod.AddType(ib.Build(OpConstant))
	r.ensureCache()
	r.constCache[key] = id
	return id, typ
}

// wideConst handles the 64-bit literal kinds, whose OpConstant operand
// spans two words (low word first, per SPIR-V's little-endian word
// order for multi-word literals).
func (r *TypeRegistry) wideConst(v ir.LiteralValue) (ID, ID) {
	var kind ir.ScalarKind
	var bits uint64
	var key string
	switch n := v.(type) {
	case ir.LitI64:
		kind, bits, key = ir.ScalarI64, uint64(n), fmt.Sprintf("i64:%d", n)
	case ir.LitU64:
		kind, bits, key = ir.ScalarU64, uint64(n), fmt.Sprintf("u64:%d", n)
	case ir.LitF64:
		kind, bits, key = ir.ScalarF64, math.Float64bits(float64(n)), fmt.Sprintf("f64:%d", math.Float64bits(float64(n)))
	}
	typ := r.scalar(kind)
	if id, ok := r.constCache[key]; ok {
		return id, typ
	}
	id := r.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(typ)
	ib.AddID(id)
	ib.AddWord(uint32(bits))
	ib.AddWord(uint32(bits >> 32))
	r.mod.AddType(ib.Build(OpConstant))
	r.ensureCache()
	r.constCache[key] = id
	return id, typ
}

// Composite interns an OpConstantComposite built from already-emitted
// component constant ids (used for default values of compound
// specialization/static constants whose initializer resolved to a
// literal aggregate).
func (r *TypeRegistry) Composite(typ ir.TypeHandle, components []ID) ID {
	typID := r.IDFor(typ)
	id := r.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(typID)
	ib.AddID(id)
	for _, c := range components {
		ib.AddID(c)
	}
	r.mod.AddType(ib.Build(OpConstantComposite))
	return id
}

func (r *TypeRegistry) ensureCache() {
	if r.constCache == nil {
		r.constCache = make(map[string]ID)
	}
}
