// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package ir

// TypeHandle is an index into a TypeCache's interned type table.
type TypeHandle uint32

// Type is the interned classification of a value.
type Type struct {
	Name  string
	Inner TypeInner
}

// TypeInner is the tag for the variant carried by a Type.
type TypeInner interface {
	typeInner()
}

// ScalarKind enumerates the scalar families a Type can carry.
type ScalarKind uint8

const (
	ScalarBool ScalarKind = iota
	ScalarI8
	ScalarI16
	ScalarI32
	ScalarI64
	ScalarU8
	ScalarU16
	ScalarU32
	ScalarU64
	ScalarF16
	ScalarF32
	ScalarF64
)

// VoidType is the unit type: statements that produce nothing, function
// results that return nothing.
type VoidType struct{}

func (VoidType) typeInner() {}

// ScalarType is a single bool/int/float value of the given kind.
type ScalarType struct {
	Kind ScalarKind
}

func (ScalarType) typeInner() {}

// VectorSize is the component count of a vector or matrix column.
type VectorSize uint8

const (
	Vec2 VectorSize = 2
	Vec3 VectorSize = 3
	Vec4 VectorSize = 4
)

// VectorType is a fixed-size vector of scalars of one kind.
type VectorType struct {
	Size VectorSize
	Kind ScalarKind
}

func (VectorType) typeInner() {}

// MatrixType is a Columns x Rows matrix of scalars of one kind.
type MatrixType struct {
	Columns VectorSize
	Rows    VectorSize
	Kind    ScalarKind
}

func (MatrixType) typeInner() {}

// ArraySize is either a compile-time element count or "unknown" for a
// runtime-sized array (the last member of an SSBO).
type ArraySize struct {
	Known   bool
	Count   uint32
	Unknown bool
}

// ArrayType is a homogeneous sequence of a single element type.
type ArrayType struct {
	Element TypeHandle
	Size    ArraySize
}

func (ArrayType) typeInner() {}

// StorageClass is SPIR-V pointer provenance, reused across all three
// backends as the canonical address-space tag.
type StorageClass uint8

const (
	StorageFunction StorageClass = iota
	StoragePrivate
	StorageWorkgroup
	StorageUniform
	StorageStorageBuffer
	StoragePushConstant
	StorageInput
	StorageOutput
	StorageUniformConstant
)

// PointerType is a typed pointer into a given storage class. Forward is
// set while the pointee (a struct, typically) is still being built and
// the SPIR-V emitter must emit OpTypeForwardPointer before the full
// OpTypePointer.
type PointerType struct {
	Pointee TypeHandle
	Space   StorageClass
	Forward bool
}

func (PointerType) typeInner() {}

// SamplerType is a standalone sampler object, optionally a comparison
// sampler (used with depth-compare texture fetches).
type SamplerType struct {
	Comparison bool
}

func (SamplerType) typeInner() {}

// ImageDimension is the coordinate arity of an image type.
type ImageDimension uint8

const (
	Dim1D ImageDimension = iota
	Dim2D
	Dim3D
	DimCube
	DimRect
	DimBuffer
	DimSubpassData
)

// ImageAccess is the access mode an image variable declares. Per the
// type cache's normalization rule, ReadWrite is substituted for Read or
// Write in any non-kernel (i.e. every shader this compiler emits)
// program so images of differing declared access but identical shape
// share one SPIR-V type.
type ImageAccess uint8

const (
	AccessRead ImageAccess = iota
	AccessWrite
	AccessReadWrite
)

// ImageFormat is the texel format of a storage image.
type ImageFormat uint8

const (
	FormatUnknown ImageFormat = iota
	FormatRGBA32F
	FormatRGBA16F
	FormatR32F
	FormatRGBA8
	FormatRGBA8Snorm
	FormatRG32F
	FormatR32UI
	FormatR32I
)

// ImageConfig is the structural key an ImageType is built from.
type ImageConfig struct {
	Dim      ImageDimension
	Sampled  ScalarKind
	Arrayed  bool
	MS       bool
	Access   ImageAccess
	Format   ImageFormat
	IsSample bool // false => storage image
}

// ImageType is a texture or storage-image type.
type ImageType struct {
	Config ImageConfig
}

func (ImageType) typeInner() {}

// SampledImageType merges Image+Sampler into one combined operand, as
// SPIR-V GLSL450-style frontends do for `texture2D` + `sampler`.
type SampledImageType struct {
	Image TypeHandle
	Depth bool
}

func (SampledImageType) typeInner() {}

// CombinedImageType is a GLSL-style `sampler2D`: an image and sampler
// baked into a single opaque handle.
type CombinedImageType struct {
	Image      TypeHandle
	Comparison bool
}

func (CombinedImageType) typeInner() {}

// AccelerationStructureType is a ray-tracing top-level acceleration
// structure handle.
type AccelerationStructureType struct{}

func (AccelerationStructureType) typeInner() {}

// StructFlag marks a struct's role, if any, in the shader interface.
type StructFlag uint8

const (
	StructPlain StructFlag = iota
	StructShaderInput
	StructShaderOutput
)

// FunctionType is the signature of a callable: parameter types in
// order plus a result type (VoidType for no return value).
type FunctionType struct {
	Params []TypeHandle
	Result TypeHandle
}

func (FunctionType) typeInner() {}

// StorageRole distinguishes the wrapper types that bind a payload type
// to a ray-tracing / mesh-shading storage role.
type StorageRole uint8

const (
	RoleRayPayload StorageRole = iota
	RoleCallableData
	RoleHitAttribute
	RoleTaskPayload
)

// RoleWrapperType wraps a data type with a ray-tracing/mesh storage
// role (rayPayload, callableDataEXT, hitAttributeEXT, taskPayloadEXT).
type RoleWrapperType struct {
	Data TypeHandle
	Role StorageRole
}

func (RoleWrapperType) typeInner() {}

// StageRole tags a StageWrapperType with the pipeline stage interface
// it binds a type to.
type StageRole uint8

const (
	StageRoleGeometryInput StageRole = iota
	StageRoleGeometryOutput
	StageRoleTessControlInput
	StageRoleTessControlOutput
	StageRoleTessEvalInput
	StageRoleTessOutputPatch
	StageRoleTessInputPatch
	StageRoleMeshVertexOutput
	StageRoleMeshPrimitiveOutput
	StageRoleComputeInput
	StageRoleTaskPayloadIn
)

// StageWrapperType binds a type to a stage interface role, e.g. the
// per-vertex input array a geometry shader reads.
type StageWrapperType struct {
	Data TypeHandle
	Role StageRole
}

func (StageWrapperType) typeInner() {}

// scalarWidth returns the size in bytes of a scalar kind, used by the
// memory-layout routines in layout.go.
func scalarWidth(k ScalarKind) uint32 {
	switch k {
	case ScalarBool, ScalarI8, ScalarU8:
		return 1
	case ScalarI16, ScalarU16, ScalarF16:
		return 2
	case ScalarI32, ScalarU32, ScalarF32:
		return 4
	case ScalarI64, ScalarU64, ScalarF64:
		return 8
	default:
		return 4
	}
}
