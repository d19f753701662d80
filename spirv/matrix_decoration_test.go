// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"testing"

	"github.com/shaderwright/shaderwright/builder"
	"github.com/shaderwright/shaderwright/ir"
)

// Matrix std140 stride (spec.md §8 scenario 5): a mat3 member of a
// std140 Ubo struct is decorated ColMajor, with MatrixStride 16 — the
// std140 column stride for a 3-row float column, rounded up to a vec4
// boundary — distinct from ir/layout_test.go's arithmetic-only check
// of the same rule: here the assertion is against the actual
// OpMemberDecorate instructions the emitter produces.
func TestMatrixStd140MemberDecoration(t *testing.T) {
	b := builder.New()
	mat3 := b.Shader.Types.GetBasic(ir.MatrixType{Columns: ir.Vec3, Rows: ir.Vec3, Kind: ir.ScalarF32})
	vec4 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec4, Kind: ir.ScalarF32})

	block := b.RegisterStruct(ir.LayoutStd140, "Block", ir.StructPlain, []ir.StructMember{
		{Type: mat3, Name: "m"},
	})
	ubo := b.RegisterConstantBuffer("ubo", block, ir.ResourceBinding{Set: 0, Binding: 0})
	outColor := b.RegisterOutput("main", "fragColor", vec4, 0, ir.InterpPerspective)

	b.BeginFunction("main", nil, b.Shader.Types.GetBasic(ir.VoidType{}), ir.FnEntryPoint, ir.StageFragment)
	col0 := b.Member(b.Ref(ubo), "m", mat3)
	_ = col0
	zero := b.Lit(ir.ScalarF32, ir.LitF32(0))
	one := b.Lit(ir.ScalarF32, ir.LitF32(1))
	color := b.CompositeConstruct([]ir.ExprHandle{zero, zero, zero, one}, vec4)
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

	var sawColMajor, sawStride bool
	var strideValue uint32
	for _, in := range mod.Instructions {
		if in.Op != OpMemberDecorate || len(in.Operands) < 3 {
			continue
		}
		dec := Decoration(in.Operands[2])
		switch dec {
		case DecorationColMajor:
			sawColMajor = true
		case DecorationMatrixStride:
			if len(in.Operands) < 4 {
				t.Fatalf("OpMemberDecorate MatrixStride missing its stride operand: %v", in.Operands)
			}
			sawStride = true
			strideValue = in.Operands[3]
		}
	}

	if !sawColMajor {
		t.Error("no OpMemberDecorate ColMajor instruction emitted for the mat3 member")
	}
	if !sawStride {
		t.Error("no OpMemberDecorate MatrixStride instruction emitted for the mat3 member")
	}
	if strideValue != 16 {
		t.Errorf("mat3 column MatrixStride = %d, want 16 (std140 rounds a 3-float column up to a vec4 boundary)", strideValue)
	}
}
