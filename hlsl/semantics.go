// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strconv"

	"github.com/shaderwright/shaderwright/ir"
)

// builtinSemantic maps a BuiltinTag to the HLSL system-value semantic
// that carries it across a stage boundary (spec.md §3's builtin
// variable tags, translated per the D3D semantic table).
var builtinSemantic = map[ir.BuiltinTag]string{
	ir.BuiltinPosition:                 "SV_Position",
	ir.BuiltinVertexID:                 "SV_VertexID",
	ir.BuiltinInstanceID:               "SV_InstanceID",
	ir.BuiltinFragCoord:                "SV_Position",
	ir.BuiltinFrontFacing:              "SV_IsFrontFace",
	ir.BuiltinFragDepth:                "SV_Depth",
	ir.BuiltinSampleID:                 "SV_SampleIndex",
	ir.BuiltinSampleMask:               "SV_Coverage",
	ir.BuiltinWorkGroupID:              "SV_GroupID",
	ir.BuiltinLocalInvocationID:        "SV_GroupThreadID",
	ir.BuiltinLocalInvocationIndex:     "SV_GroupIndex",
	ir.BuiltinGlobalInvocationID:       "SV_DispatchThreadID",
	ir.BuiltinPrimitiveID:              "SV_PrimitiveID",
	ir.BuiltinLayer:                    "SV_RenderTargetArrayIndex",
	ir.BuiltinViewportIndex:            "SV_ViewportArrayIndex",
	ir.BuiltinTessLevelOuter:           "SV_TessFactor",
	ir.BuiltinTessLevelInner:           "SV_InsideTessFactor",
	ir.BuiltinTessCoord:                "SV_DomainLocation",
	ir.BuiltinInvocationID:             "SV_OutputControlPointID",
}

// semanticFor returns the HLSL semantic string for v: the system-value
// semantic if v is a builtin, otherwise a synthesized `TEXCOORDn`
// semantic keyed by its declared interface location.
func semanticFor(v ir.Variable, location int32) string {
	if v.Any(ir.FlagBuiltin) {
		if s, ok := builtinSemantic[v.Builtin]; ok {
			return s
		}
	}
	if location < 0 {
		location = 0
	}
	return "TEXCOORD" + strconv.Itoa(int(location))
}
