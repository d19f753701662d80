// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package ir

// VarID is a monotonically increasing identifier for a Variable. The
// counter that hands out fresh ids lives on the owning Shader (spec.md
// §3: "a monotonically-increasing id (source of the next-id counter
// lives on the shader)").
type VarID uint32

// VarFlags is a bitmask of the roles a Variable can hold simultaneously.
type VarFlags uint32

const (
	FlagLocale VarFlags = 1 << iota
	FlagParam
	FlagInputParam
	FlagOutputParam
	FlagLoopVar
	FlagMember
	FlagUniform
	FlagConstant
	FlagStatic
	FlagShaderInput
	FlagShaderOutput
	FlagBuiltin
	FlagSampler
	FlagFlat
	FlagSpecConstant
	FlagTexture
	FlagImage
	FlagAccelerationStructure
	FlagSampledImage
)

// BuiltinTag enumerates the built-in shader values a Variable may be
// bound to.
type BuiltinTag uint16

const (
	BuiltinNone BuiltinTag = iota
	BuiltinPosition
	BuiltinVertexID
	BuiltinInstanceID
	BuiltinFragCoord
	BuiltinFrontFacing
	BuiltinFragDepth
	BuiltinSampleID
	BuiltinSampleMask
	BuiltinWorkGroupID
	BuiltinLocalInvocationID
	BuiltinLocalInvocationIndex
	BuiltinGlobalInvocationID
	BuiltinNumWorkGroups
	BuiltinPrimitiveID
	BuiltinLayer
	BuiltinViewportIndex
	BuiltinTessLevelOuter
	BuiltinTessLevelInner
	BuiltinTessCoord
	BuiltinPatchVertices
	BuiltinInvocationID
	BuiltinLaunchID
	BuiltinLaunchSize
	BuiltinWorldRayOrigin
	BuiltinWorldRayDirection
	BuiltinHitT
	BuiltinInstanceCustomIndex
)

// Variable is a named, typed binding: a local, a parameter, a global
// resource, or a member of a struct.
type Variable struct {
	ID      VarID
	Name    string
	Type    TypeHandle
	Flags   VarFlags
	Outer   VarID // valid only when Flags&FlagMember != 0
	HasOuter bool
	Builtin BuiltinTag
}

// Has reports whether v carries every flag in mask.
func (v Variable) Has(mask VarFlags) bool { return v.Flags&mask == mask }

// Any reports whether v carries any flag in mask.
func (v Variable) Any(mask VarFlags) bool { return v.Flags&mask != 0 }
