// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import "fmt"

// opcodeNames gives a handful of opcodes readable names for
// disassembly; anything missing falls back to its raw numeric
// spelling, since this emitter's own opcode catalog (spirv.go) names
// only what this compiler emits, not the full SPIR-V instruction set.
var opcodeNames = map[OpCode]string{
	OpCapability:        "OpCapability",
	OpExtInstImport:      "OpExtInstImport",
	OpMemoryModel:        "OpMemoryModel",
	OpEntryPoint:         "OpEntryPoint",
	OpExecutionMode:      "OpExecutionMode",
	OpName:               "OpName",
	OpMemberName:         "OpMemberName",
	OpDecorate:           "OpDecorate",
	OpMemberDecorate:     "OpMemberDecorate",
	OpTypeVoid:           "OpTypeVoid",
	OpTypeBool:           "OpTypeBool",
	OpTypeInt:            "OpTypeInt",
	OpTypeFloat:          "OpTypeFloat",
	OpTypeVector:         "OpTypeVector",
	OpTypeMatrix:         "OpTypeMatrix",
	OpTypeImage:          "OpTypeImage",
	OpTypeSampler:        "OpTypeSampler",
	OpTypeSampledImage:   "OpTypeSampledImage",
	OpTypeArray:          "OpTypeArray",
	OpTypeRuntimeArray:   "OpTypeRuntimeArray",
	OpTypeStruct:         "OpTypeStruct",
	OpTypePointer:        "OpTypePointer",
	OpTypeForwardPointer: "OpTypeForwardPointer",
	OpTypeFunction:       "OpTypeFunction",
	OpConstant:           "OpConstant",
	OpConstantComposite:  "OpConstantComposite",
	OpVariable:           "OpVariable",
	OpFunction:           "OpFunction",
	OpFunctionParameter:  "OpFunctionParameter",
	OpFunctionEnd:        "OpFunctionEnd",
	OpFunctionCall:       "OpFunctionCall",
	OpLabel:              "OpLabel",
	OpLoad:                "OpLoad",
	OpStore:               "OpStore",
	OpAccessChain:         "OpAccessChain",
	OpReturn:              "OpReturn",
	OpReturnValue:         "OpReturnValue",
	OpBranch:              "OpBranch",
	OpBranchConditional:   "OpBranchConditional",
	OpLoopMerge:           "OpLoopMerge",
	OpSelectionMerge:      "OpSelectionMerge",
	OpImageSampleImplicitLod: "OpImageSampleImplicitLod",
	OpImageFetch:          "OpImageFetch",
	OpImageRead:           "OpImageRead",
	OpImageWrite:          "OpImageWrite",
	OpImageGather:         "OpImageGather",
	OpImage:               "OpImage",
	OpSampledImage:        "OpSampledImage",
	OpUndef:               "OpUndef",
}

// Write renders m as a SPIR-V textual dump, optionally preceded by
// the header fields (spec.md §6's `Module::write(module, withHeader)`).
func (m *Module) Write(withHeader bool) string {
	var out string
	if withHeader {
		out += "; SPIR-V\n"
		out += fmt.Sprintf("; Version: %d.%d\n", m.Version.Major, m.Version.Minor)
		out += fmt.Sprintf("; Generator: 0x%08x\n", m.Generator)
		out += fmt.Sprintf("; Bound: %d\n", m.Bound)
		if m.Unreconstructed {
			out += "; note: section/type/control-flow structure not reconstructed, raw instruction stream only\n"
		}
		out += "\n"
	}
	for _, instr := range m.Instructions {
		name, ok := opcodeNames[instr.Op]
		if !ok {
			name = fmt.Sprintf("Op%d", instr.Op)
		}
		out += name
		for _, op := range instr.Operands {
			out += fmt.Sprintf(" %d", op)
		}
		out += "\n"
	}
	return out
}
