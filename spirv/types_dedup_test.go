// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"testing"

	"github.com/shaderwright/shaderwright/builder"
	"github.com/shaderwright/shaderwright/ir"
)

func countOp(mod []Instruction, op OpCode) int {
	n := 0
	for _, in := range mod {
		if in.Op == op {
			n++
		}
	}
	return n
}

// SPIR-V type dedup (spec.md §8 scenario 4): two Ubo members both
// declared as float, both read in the entry point body, produce exactly
// one OpTypeFloat and one OpTypePointer(Uniform, float) in the emitted
// module.
func TestTypeDedupUBOFloatMembers(t *testing.T) {
	b := builder.New()
	f32 := b.Shader.Types.GetBasic(ir.ScalarType{Kind: ir.ScalarF32})
	vec4 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec4, Kind: ir.ScalarF32})

	block := b.RegisterStruct(ir.LayoutStd140, "Block", ir.StructPlain, []ir.StructMember{
		{Type: f32, Name: "a"},
		{Type: f32, Name: "b"},
	})
	ubo := b.RegisterConstantBuffer("ubo", block, ir.ResourceBinding{Set: 0, Binding: 0})
	outColor := b.RegisterOutput("main", "fragColor", vec4, 0, ir.InterpPerspective)

	b.BeginFunction("main", nil, b.Shader.Types.GetBasic(ir.VoidType{}), ir.FnEntryPoint, ir.StageFragment)
	a := b.Member(b.Ref(ubo), "a", f32)
	bb := b.Member(b.Ref(ubo), "b", f32)
	color := b.CompositeConstruct([]ir.ExprHandle{a, bb, a, bb}, vec4)
	b.Assign(ir.AssignSet, b.Ref(outColor), color)
	b.Return(nil)
	b.EndFunction()

	data, err := Emit(b.Shader, "main", DefaultOptions())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	mod, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if n := countOp(mod.Instructions, OpTypeFloat); n != 1 {
		t.Errorf("OpTypeFloat count = %d, want 1", n)
	}

	var floatID uint32
	for _, in := range mod.Instructions {
		if in.Op == OpTypeFloat {
			floatID = in.Operands[0]
		}
	}
	uniformPtrFloat := 0
	for _, in := range mod.Instructions {
		if in.Op != OpTypePointer {
			continue
		}
		// Operands: result id, storage class, pointee type id.
		if len(in.Operands) == 3 && StorageClass(in.Operands[1]) == StorageClassUniform && in.Operands[2] == floatID {
			uniformPtrFloat++
		}
	}
	if uniformPtrFloat != 1 {
		t.Errorf("OpTypePointer(Uniform, float) count = %d, want 1 (the buffer's own struct pointer is not counted)", uniformPtrFloat)
	}
}
