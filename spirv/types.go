// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"github.com/shaderwright/shaderwright/ir"
)

// TypeRegistry interns every ir.TypeHandle this module references into
// a SPIR-V type id, deduplicating on the handle's "unqualified" form
// (stage-role wrappers stripped, image access normalized) the same way
// the IR's own TypeCache does — so a vertex-output struct and an
// otherwise-identical fragment-input struct still share one SPIR-V
// OpTypeStruct when the IR already treats them as the same shape.
type TypeRegistry struct {
	shader *ir.Shader
	mod    *ModuleBuilder
	debug  bool

	ids       map[ir.TypeHandle]ID
	building  map[ir.TypeHandle]bool
	pending   map[ir.TypeHandle][]pendingPointer
	constCache map[string]ID
}

// pendingPointer is a pointer type id forward-declared via
// OpTypeForwardPointer while its pointee struct was still being
// built; its matching OpTypePointer is emitted once that struct's id
// is known (see emitStruct).
type pendingPointer struct {
	id    ID
	space StorageClass
}

func NewTypeRegistry(shader *ir.Shader, mod *ModuleBuilder, debug bool) *TypeRegistry {
	return &TypeRegistry{
		shader:   shader,
		mod:      mod,
		debug:    debug,
		ids:      make(map[ir.TypeHandle]ID),
		building: make(map[ir.TypeHandle]bool),
		pending:  make(map[ir.TypeHandle][]pendingPointer),
	}
}

// IDFor returns (emitting if necessary) the SPIR-V type id for t.
func (r *TypeRegistry) IDFor(t ir.TypeHandle) ID {
	key := r.shader.Types.Unqualified(t)
	if id, ok := r.ids[key]; ok {
		return id
	}
	id := r.emit(key)
	r.ids[key] = id
	return id
}

func (r *TypeRegistry) emit(key ir.TypeHandle) ID {
	typ := r.shader.Types.MustLookup(key)
	switch inner := typ.Inner.(type) {
	case ir.VoidType:
		return r.simple(OpTypeVoid)
	case ir.ScalarType:
		return r.scalar(inner.Kind)
	case ir.VectorType:
		id := r.mod.AllocID()
		comp := r.scalar(inner.Kind)
		var ib InstructionBuilder
		ib.AddID(id)
		ib.AddID(comp)
		ib.AddWord(uint32(inner.Size))
		r.mod.AddType(ib.Build(OpTypeVector))
		return id
	case ir.MatrixType:
		id := r.mod.AllocID()
		colType := r.IDFor(r.shader.Types.GetBasic(ir.VectorType{Size: inner.Rows, Kind: inner.Kind}))
		var ib InstructionBuilder
		ib.AddID(id)
		ib.AddID(colType)
		ib.AddWord(uint32(inner.Columns))
		r.mod.AddType(ib.Build(OpTypeMatrix))
		return id
	case ir.ArrayType:
		elem := r.IDFor(inner.Element)
		id := r.mod.AllocID()
		if !inner.Size.Known {
			var ib InstructionBuilder
			ib.AddID(id)
			ib.AddID(elem)
			r.mod.AddType(ib.Build(OpTypeRuntimeArray))
		} else {
			lenID := r.constUint(inner.Size.Count)
			var ib InstructionBuilder
			ib.AddID(id)
			ib.AddID(elem)
			ib.AddID(lenID)
			r.mod.AddType(ib.Build(OpTypeArray))
		}
		stride := ir.ArrayStride(r.shader.Types, inner, ir.LayoutStd430)
		r.mod.AddDecoration(id, DecorationArrayStride, stride)
		return id
	case ir.PointerType:
		// A pointer whose pointee struct is mid-recursion (self- or
		// mutually-referencing) can't resolve its pointee id yet:
		// forward-declare the pointer id now and complete it with a
		// real OpTypePointer once emitStruct finishes that pointee.
		if r.building[r.shader.Types.Unqualified(inner.Pointee)] {
			id := r.mod.AllocID()
			space := storageClassFor(inner.Space)
			var ib InstructionBuilder
			ib.AddID(id)
			ib.AddWord(uint32(space))
			r.mod.AddType(ib.Build(OpTypeForwardPointer))
			r.ids[key] = id
			pointeeKey := r.shader.Types.Unqualified(inner.Pointee)
			r.pending[pointeeKey] = append(r.pending[pointeeKey], pendingPointer{id: id, space: space})
			return id
		}
		pointee := r.IDFor(inner.Pointee)
		id := r.mod.AllocID()
		var ib InstructionBuilder
		ib.AddID(id)
		ib.AddWord(uint32(storageClassFor(inner.Space)))
		ib.AddID(pointee)
		if inner.Forward {
			r.mod.AddType(ib.Build(OpTypeForwardPointer))
		} else {
			r.mod.AddType(ib.Build(OpTypePointer))
		}
		return id
	case ir.SamplerType:
		return r.simple(OpTypeSampler)
	case ir.ImageType:
		id := r.mod.AllocID()
		sampledType := r.scalar(inner.Config.Sampled)
		var ib InstructionBuilder
		ib.AddID(id)
		ib.AddID(sampledType)
		ib.AddWord(uint32(dimFor(inner.Config.Dim)))
		depth := uint32(2) // unknown
		if inner.Config.Dim == ir.DimSubpassData {
			depth = 0
		}
		ib.AddWord(depth)
		ib.AddWord(boolWord(inner.Config.Arrayed))
		ib.AddWord(boolWord(inner.Config.MS))
		sampledFlag := uint32(1)
		if !inner.Config.IsSample {
			sampledFlag = 2
		}
		ib.AddWord(sampledFlag)
		ib.AddWord(uint32(imageFormatFor(inner.Config.Format)))
		r.mod.AddType(ib.Build(OpTypeImage))
		return id
	case ir.SampledImageType:
		img := r.IDFor(inner.Image)
		id := r.mod.AllocID()
		var ib InstructionBuilder
		ib.AddID(id)
		ib.AddID(img)
		r.mod.AddType(ib.Build(OpTypeSampledImage))
		return id
	case ir.CombinedImageType:
		img := r.IDFor(inner.Image)
		id := r.mod.AllocID()
		var ib InstructionBuilder
		ib.AddID(id)
		ib.AddID(img)
		r.mod.AddType(ib.Build(OpTypeSampledImage))
		return id
	case ir.AccelerationStructureType:
		return r.simple(OpTypeAccelerationStructure)
	case *ir.StructType:
		return r.emitStruct(key, inner)
	case ir.FunctionType:
		id := r.mod.AllocID()
		result := r.IDFor(inner.Result)
		var ib InstructionBuilder
		ib.AddID(id)
		ib.AddID(result)
		for _, p := range inner.Params {
			ib.AddID(r.IDFor(r.shader.Types.GetPointer(p, ir.StorageFunction, false)))
		}
		r.mod.AddType(ib.Build(OpTypeFunction))
		return id
	default:
		return r.simple(OpTypeVoid)
	}
}

func (r *TypeRegistry) emitStruct(key ir.TypeHandle, st *ir.StructType) ID {
	r.building[key] = true
	memberIDs := make([]ID, len(st.Members))
	for i, m := range st.Members {
		memberIDs[i] = r.IDFor(m.Type)
	}
	delete(r.building, key)

	id := r.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(id)
	for _, m := range memberIDs {
		ib.AddID(m)
	}
	r.mod.AddType(ib.Build(OpTypeStruct))

	for _, p := range r.pending[key] {
		var pb InstructionBuilder
		pb.AddID(p.id)
		pb.AddWord(uint32(p.space))
		pb.AddID(id)
		r.mod.AddType(pb.Build(OpTypePointer))
	}
	delete(r.pending, key)

	if r.debug && st.Name != "" {
		r.mod.AddName(id, st.Name)
	}
	blockDec := DecorationBlock
	if st.Flag == ir.StructShaderInput || st.Flag == ir.StructShaderOutput {
		blockDec = 0 // interface structs aren't Block-decorated
	}
	for i, m := range st.Members {
		if r.debug && m.Name != "" {
			r.mod.AddMemberName(id, uint32(i), m.Name)
		}
		r.mod.AddMemberDecoration(id, uint32(i), DecorationOffset, m.Offset)
		if mt, ok := r.shader.Types.MustLookup(m.Type).Inner.(ir.MatrixType); ok {
			stride := ir.Size(r.shader.Types, m.Type, st.Layout) / uint32(mt.Columns)
			r.mod.AddMemberDecoration(id, uint32(i), DecorationColMajor)
			r.mod.AddMemberDecoration(id, uint32(i), DecorationMatrixStride, stride)
		}
	}
	if blockDec != 0 {
		r.mod.AddDecoration(id, blockDec)
	}
	return id
}

func (r *TypeRegistry) simple(op OpCode) ID {
	for _, in := range r.mod.typesAndConsts {
		if in.Op == op && len(in.Operands) == 1 {
			return ID(in.Operands[0])
		}
	}
	id := r.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(id)
	r.mod.AddType(ib.Build(op))
	return id
}

func (r *TypeRegistry) scalar(k ir.ScalarKind) ID {
	key := r.shader.Types.GetBasic(ir.ScalarType{Kind: k})
	if id, ok := r.ids[key]; ok {
		return id
	}
	var id ID
	switch k {
	case ir.ScalarBool:
		id = r.simple(OpTypeBool)
	case ir.ScalarF16, ir.ScalarF32, ir.ScalarF64:
		id = r.mod.AllocID()
		var ib InstructionBuilder
		ib.AddID(id)
		ib.AddWord(widthOf(k))
		r.mod.AddType(ib.Build(OpTypeFloat))
	default:
		id = r.mod.AllocID()
		var ib InstructionBuilder
		ib.AddID(id)
		ib.AddWord(widthOf(k))
		ib.AddWord(signOf(k))
		r.mod.AddType(ib.Build(OpTypeInt))
	}
	r.ids[key] = id
	return id
}

func widthOf(k ir.ScalarKind) uint32 {
	switch k {
	case ir.ScalarI8, ir.ScalarU8:
		return 8
	case ir.ScalarI16, ir.ScalarU16, ir.ScalarF16:
		return 16
	case ir.ScalarI64, ir.ScalarU64, ir.ScalarF64:
		return 64
	default:
		return 32
	}
}

func signOf(k ir.ScalarKind) uint32 {
	switch k {
	case ir.ScalarI8, ir.ScalarI16, ir.ScalarI32, ir.ScalarI64:
		return 1
	default:
		return 0
	}
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func storageClassFor(s ir.StorageClass) StorageClass {
	switch s {
	case ir.StoragePrivate:
		return StorageClassPrivate
	case ir.StorageWorkgroup:
		return StorageClassWorkgroup
	case ir.StorageUniform:
		return StorageClassUniform
	case ir.StorageStorageBuffer:
		return StorageClassStorageBuffer
	case ir.StoragePushConstant:
		return StorageClassPushConstant
	case ir.StorageInput:
		return StorageClassInput
	case ir.StorageOutput:
		return StorageClassOutput
	case ir.StorageUniformConstant:
		return StorageClassUniformConstant
	default:
		return StorageClassFunction
	}
}

func dimFor(d ir.ImageDimension) uint32 {
	switch d {
	case ir.Dim1D:
		return 0
	case ir.Dim2D:
		return 1
	case ir.Dim3D:
		return 2
	case ir.DimCube:
		return 3
	case ir.DimRect:
		return 4
	case ir.DimBuffer:
		return 5
	case ir.DimSubpassData:
		return 6
	default:
		return 1
	}
}

func imageFormatFor(f ir.ImageFormat) uint32 {
	switch f {
	case ir.FormatRGBA32F:
		return 1
	case ir.FormatRGBA16F:
		return 2
	case ir.FormatR32F:
		return 3
	case ir.FormatRGBA8:
		return 4
	case ir.FormatRGBA8Snorm:
		return 5
	case ir.FormatRG32F:
		return 6
	case ir.FormatR32UI:
		return 24
	case ir.FormatR32I:
		return 25
	default:
		return 0
	}
}
