// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package ir

import "testing"

// Std140 struct layout (spec.md §8 scenario 3): struct{float a; vec3
// b; float c;} under std140 has offsets {0, 16, 28} and size 32.
func TestStd140StructLayout(t *testing.T) {
	c := NewTypeCache()
	f32 := c.GetBasic(ScalarType{Kind: ScalarF32})
	vec3 := c.GetBasic(VectorType{Size: Vec3, Kind: ScalarF32})

	h := c.GetStruct(LayoutStd140, "Block", StructPlain)
	c.DeclareMember(h, StructMember{Type: f32, Name: "a"})
	c.DeclareMember(h, StructMember{Type: vec3, Name: "b"})
	c.DeclareMember(h, StructMember{Type: f32, Name: "c"})

	st := c.MustLookup(h).Inner.(*StructType)
	wantOffsets := []uint32{0, 16, 28}
	for i, m := range st.Members {
		if m.Offset != wantOffsets[i] {
			t.Errorf("member %d (%s): offset = %d, want %d", i, m.Name, m.Offset, wantOffsets[i])
		}
	}
	if st.Span != 32 {
		t.Errorf("struct span = %d, want 32", st.Span)
	}
}

// Matrix column stride (spec.md §8 scenario 5): struct{mat3 m;} under
// std140 aligns/strides its one member to a 16-byte column.
func TestStd140MatrixColumnStride(t *testing.T) {
	c := NewTypeCache()
	mat3 := c.GetBasic(MatrixType{Columns: Vec3, Rows: Vec3, Kind: ScalarF32})

	h := c.GetStruct(LayoutStd140, "Block", StructPlain)
	c.DeclareMember(h, StructMember{Type: mat3, Name: "m"})

	align := Alignment(c, mat3, LayoutStd140)
	if align != 16 {
		t.Errorf("mat3 alignment under std140 = %d, want 16", align)
	}
	size := Size(c, mat3, LayoutStd140)
	if size != 16*3 {
		t.Errorf("mat3 size under std140 = %d, want 48 (3 columns x 16-byte stride)", size)
	}
}

// For every registered type and every layout, size must be a multiple
// of alignment (spec.md §8's first quantified invariant).
func TestSizeIsMultipleOfAlignment(t *testing.T) {
	c := NewTypeCache()
	f32 := c.GetBasic(ScalarType{Kind: ScalarF32})
	vec3 := c.GetBasic(VectorType{Size: Vec3, Kind: ScalarF32})
	vec4 := c.GetBasic(VectorType{Size: Vec4, Kind: ScalarF32})
	mat4 := c.GetBasic(MatrixType{Columns: Vec4, Rows: Vec4, Kind: ScalarF32})
	arr := c.GetArray(f32, ArraySize{Known: true, Count: 4})

	types := []TypeHandle{f32, vec3, vec4, mat4, arr}
	for _, layout := range []Layout{LayoutStd140, LayoutStd430, LayoutC} {
		for _, h := range types {
			size := Size(c, h, layout)
			align := Alignment(c, h, layout)
			if align != 0 && size%align != 0 {
				t.Errorf("layout %d type %v: size %d not a multiple of alignment %d", layout, h, size, align)
			}
		}
	}
}
