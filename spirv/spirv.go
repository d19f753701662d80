// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

// Package spirv emits and (partially) reads the SPIR-V binary module
// format from/to a transformed *ir.Shader (spec.md §4.7).
package spirv

// Version identifies a target SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

func (v Version) word() uint32 {
	return uint32(v.Major)<<16 | uint32(v.Minor)<<8
}

// MagicNumber and GeneratorID are the two fixed words that open every
// SPIR-V module.
const (
	MagicNumber = 0x07230203
	GeneratorID = 0 // unregistered generator magic number
)

// OpCode is a SPIR-V instruction opcode.
type OpCode uint16

const (
	OpNop              OpCode = 0
	OpUndef            OpCode = 1
	OpSource           OpCode = 3
	OpName             OpCode = 5
	OpMemberName       OpCode = 6
	OpExtInstImport    OpCode = 11
	OpExtInst          OpCode = 12
	OpMemoryModel      OpCode = 14
	OpEntryPoint       OpCode = 15
	OpExecutionMode    OpCode = 16
	OpCapability       OpCode = 17
	OpTypeVoid         OpCode = 19
	OpTypeBool         OpCode = 20
	OpTypeInt          OpCode = 21
	OpTypeFloat        OpCode = 22
	OpTypeVector       OpCode = 23
	OpTypeMatrix       OpCode = 24
	OpTypeImage        OpCode = 25
	OpTypeSampler      OpCode = 26
	OpTypeSampledImage OpCode = 27
	OpTypeArray        OpCode = 28
	OpTypeRuntimeArray OpCode = 29
	OpTypeStruct       OpCode = 30
	OpTypePointer      OpCode = 32
	OpTypeFunction     OpCode = 33
	OpConstantTrue     OpCode = 41
	OpConstantFalse    OpCode = 42
	OpConstant         OpCode = 43
	OpConstantComposite OpCode = 44
	OpSpecConstant     OpCode = 50
	OpFunction         OpCode = 54
	OpFunctionParameter OpCode = 55
	OpFunctionEnd      OpCode = 56
	OpFunctionCall     OpCode = 57
	OpVariable         OpCode = 59
	OpLoad             OpCode = 61
	OpStore            OpCode = 62
	OpAccessChain      OpCode = 65
	OpDecorate         OpCode = 71
	OpMemberDecorate   OpCode = 72
	OpCompositeConstruct OpCode = 80
	OpCompositeExtract OpCode = 81
	OpConvertFToS      OpCode = 110
	OpConvertSToF      OpCode = 111
	OpBitcast          OpCode = 124
	OpFNegate          OpCode = 127
	OpIAdd             OpCode = 128
	OpFAdd             OpCode = 129
	OpISub             OpCode = 130
	OpFSub             OpCode = 131
	OpIMul             OpCode = 132
	OpFMul             OpCode = 133
	OpFDiv             OpCode = 136
	OpLogicalAnd       OpCode = 167
	OpLogicalOr        OpCode = 166
	OpLogicalNot       OpCode = 168
	OpSelect           OpCode = 169
	OpIEqual           OpCode = 170
	OpFOrdEqual        OpCode = 180
	OpFOrdLessThan     OpCode = 184
	OpLoopMerge        OpCode = 246
	OpSelectionMerge    OpCode = 247
	OpLabel            OpCode = 248
	OpBranch           OpCode = 249
	OpBranchConditional OpCode = 250
	OpReturn           OpCode = 253
	OpReturnValue      OpCode = 254
	OpTypeForwardPointer OpCode = 39
	OpTypeAccelerationStructure OpCode = 5341

	OpImageRead         OpCode = 98
	OpImageWrite        OpCode = 99
	OpImage             OpCode = 100
	OpSampledImage      OpCode = 86
	OpImageSampleImplicitLod OpCode = 87
	OpImageFetch        OpCode = 95
	OpImageGather       OpCode = 96
	OpImageQuerySizeLod OpCode = 103
	OpImageQuerySize    OpCode = 104
	OpEmitStreamVertex  OpCode = 220
	OpEndStreamPrimitive OpCode = 221
	OpVectorShuffle     OpCode = 79
	OpCompositeInsert   OpCode = 82
	OpSDiv              OpCode = 135
	OpUDiv              OpCode = 134
	OpUMod              OpCode = 137
	OpSRem              OpCode = 139
	OpSMod              OpCode = 140
	OpShiftRightLogical OpCode = 194
	OpShiftRightArithmetic OpCode = 195
	OpShiftLeftLogical  OpCode = 196
	OpBitwiseOr         OpCode = 197
	OpBitwiseXor        OpCode = 198
	OpBitwiseAnd        OpCode = 199
	OpNot               OpCode = 200
	OpSNegate           OpCode = 126
	OpULessThan         OpCode = 176
	OpSLessThan         OpCode = 177
	OpUGreaterThan      OpCode = 172
	OpSGreaterThan      OpCode = 173
	OpULessThanEqual    OpCode = 178
	OpSLessThanEqual    OpCode = 179
	OpUGreaterThanEqual OpCode = 174
	OpSGreaterThanEqual OpCode = 175
	OpFOrdNotEqual      OpCode = 182
	OpFOrdGreaterThan   OpCode = 186
	OpFOrdGreaterThanEqual OpCode = 190
	OpFOrdLessThanEqual OpCode = 188
	OpControlBarrier    OpCode = 224
	OpMemoryBarrier     OpCode = 225
	OpKill              OpCode = 252
	OpDot               OpCode = 148
)

// Capability is a SPIR-V capability declaration.
type Capability uint32

const (
	CapabilityMatrix Capability = 0
	CapabilityShader Capability = 1
	CapabilityGeometry Capability = 2
	CapabilityTessellation Capability = 3
	CapabilityFloat64 Capability = 10
	CapabilityInt64   Capability = 11
	CapabilityImageQuery Capability = 50
	CapabilityRayTracingKHR Capability = 4479
)

// ExecutionModel maps a pipeline stage to its SPIR-V execution model.
type ExecutionModel uint32

const (
	ExecutionModelVertex    ExecutionModel = 0
	ExecutionModelFragment  ExecutionModel = 4
	ExecutionModelGLCompute ExecutionModel = 5
	ExecutionModelGeometry  ExecutionModel = 3
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
)

// ExecutionMode further qualifies how an entry point executes.
type ExecutionMode uint32

const (
	ExecutionModeOriginUpperLeft ExecutionMode = 7
	ExecutionModeDepthReplacing  ExecutionMode = 12
	ExecutionModeLocalSize       ExecutionMode = 17
)

// StorageClass is the SPIR-V pointer storage class, distinct from (but
// mapped 1:1 from) ir.StorageClass.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassPushConstant    StorageClass = 9
	StorageClassStorageBuffer   StorageClass = 12
)

// Decoration tags a decorate/member-decorate instruction's kind.
type Decoration uint32

const (
	DecorationBlock        Decoration = 2
	DecorationBufferBlock  Decoration = 3
	DecorationColMajor     Decoration = 5
	DecorationMatrixStride Decoration = 7
	DecorationBuiltIn      Decoration = 11
	DecorationFlat         Decoration = 19
	DecorationLocation     Decoration = 30
	DecorationBinding      Decoration = 33
	DecorationDescriptorSet Decoration = 34
	DecorationOffset       Decoration = 35
	DecorationArrayStride  Decoration = 6
	DecorationSpecId       Decoration = 1
)

// Options configures one SPIR-V emission.
type Options struct {
	Version      Version
	EntryPoint   string
	Debug        bool // emit OpName/OpMemberName debug info
	Capabilities []Capability
	// WriteHeader controls whether Emit's output carries the five-word
	// SPIR-V module header. Callers embedding the instruction stream
	// into a larger container that supplies its own header set this
	// false.
	WriteHeader bool
}

// DefaultOptions targets SPIR-V 1.3 (the Vulkan 1.1 baseline) with
// debug names enabled and the module header written.
func DefaultOptions() Options {
	return Options{Version: Version1_3, Debug: true, WriteHeader: true}
}
