// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package ir

// Layout is a GPU buffer memory-layout rule set.
type Layout uint8

const (
	LayoutStd140 Layout = iota
	LayoutStd430
	LayoutC
)

// StructType is a named, ordered aggregate with a fixed memory layout.
// Two structs are equal iff Layout+Name+Flag+Members are equal (see
// TypeCache.getStruct); members may only be appended, never removed,
// and Span is recomputed after every append.
type StructType struct {
	Layout  Layout
	Name    string
	Flag    StructFlag
	Members []StructMember
	Span    uint32
}

func (*StructType) typeInner() {}

// StructMember is one field of a StructType.
type StructMember struct {
	Type        TypeHandle
	Name        string
	Offset      uint32
	Size        uint32
	ArrayStride uint32 // 0 unless Type is an array
	Location    int32  // -1 unless the member carries an explicit location
}

// alignUp rounds n up to the next multiple of a (a must be a power of two
// is not required here; a is always one of the small alignments the
// layout rules below compute).
func alignUp(n, a uint32) uint32 {
	if a == 0 {
		return n
	}
	if r := n % a; r != 0 {
		return n + (a - r)
	}
	return n
}

// Size returns the storage size in bytes of t under layout l.
func Size(cache *TypeCache, t TypeHandle, l Layout) uint32 {
	return cache.sizeOf(t, l)
}

// Alignment returns the required alignment in bytes of t under layout l.
func Alignment(cache *TypeCache, t TypeHandle, l Layout) uint32 {
	return cache.alignOf(t, l)
}

// ArrayStride returns the per-element byte stride of an array type
// under layout l (spec.md §3/§4.7: array stride equals the vec4-rounded
// element size under std140, the natural element size under std430/C).
func ArrayStride(cache *TypeCache, arr ArrayType, l Layout) uint32 {
	elemSize := cache.sizeOf(arr.Element, l)
	elemAlign := cache.alignOf(arr.Element, l)
	stride := alignUp(elemSize, elemAlign)
	if l == LayoutStd140 {
		stride = alignUp(stride, 16)
	}
	return stride
}

// sizeOf computes the byte size of a type under a layout. Struct sizes
// are taken from the cached Span (kept current by recomputeOffsets),
// everything else is computed structurally and is cheap to recompute.
func (c *TypeCache) sizeOf(h TypeHandle, l Layout) uint32 {
	t := c.MustLookup(h)
	switch inner := t.Inner.(type) {
	case VoidType:
		return 0
	case ScalarType:
		return scalarWidth(inner.Kind)
	case VectorType:
		return uint32(inner.Size) * scalarWidth(inner.Kind)
	case MatrixType:
		colSize := uint32(inner.Rows) * scalarWidth(inner.Kind)
		colStride := colSize
		if l != LayoutStd430 {
			colStride = alignUp(colSize, 16)
		} else if inner.Rows == Vec3 {
			colStride = alignUp(colSize, uint32(4)*scalarWidth(inner.Kind))
		}
		return colStride * uint32(inner.Columns)
	case ArrayType:
		stride := ArrayStride(c, inner, l)
		if !inner.Size.Known {
			return 0
		}
		return stride * inner.Size.Count
	case *StructType:
		return inner.Span
	case PointerType:
		return 8
	default:
		return 0
	}
}

// alignOf computes the required alignment of a type under a layout,
// implementing the rules enumerated in spec.md §3:
//
//	std140: scalar align = size; vec2 align = 2*size; vec3/vec4 align = 4*size;
//	        arrays round element size up to vec4 alignment;
//	        matrix columns each occupy a vec4-aligned slot;
//	        struct align = max member align rounded up to vec4.
//	std430: as std140 but arrays/structs use natural alignment.
//	C:      natural-alignment packing identical to a host struct.
func (c *TypeCache) alignOf(h TypeHandle, l Layout) uint32 {
	t := c.MustLookup(h)
	switch inner := t.Inner.(type) {
	case VoidType:
		return 1
	case ScalarType:
		return scalarWidth(inner.Kind)
	case VectorType:
		size := scalarWidth(inner.Kind)
		switch inner.Size {
		case Vec2:
			return 2 * size
		default:
			return 4 * size
		}
	case MatrixType:
		colAlign := c.alignOfVector(inner.Rows, inner.Kind, l)
		if l == LayoutC {
			return colAlign
		}
		return alignUp(colAlign, 16)
	case ArrayType:
		elemAlign := c.alignOf(inner.Element, l)
		if l == LayoutStd140 {
			return alignUp(elemAlign, 16)
		}
		return elemAlign
	case *StructType:
		max := uint32(1)
		for _, m := range inner.Members {
			if a := c.alignOf(m.Type, l); a > max {
				max = a
			}
		}
		if l == LayoutStd140 {
			return alignUp(max, 16)
		}
		return max
	case PointerType:
		return 8
	default:
		return 1
	}
}

// alignOfVector is a small helper used by alignOf(Matrix) so matrix
// column alignment shares the vector alignment rule exactly.
func (c *TypeCache) alignOfVector(size VectorSize, kind ScalarKind, l Layout) uint32 {
	w := scalarWidth(kind)
	switch size {
	case Vec2:
		return 2 * w
	default:
		if l == LayoutStd430 && size == Vec3 {
			return 4 * w // vec3 still rounds to 4-wide alignment even under std430
		}
		return 4 * w
	}
}

// recomputeOffsets recomputes every member's Offset/Size/ArrayStride and
// the struct's overall Span. Called after every member append (see
// TypeCache.DeclareMember), matching spec.md §3: "Offsets are
// recomputed whenever a member is added".
func (c *TypeCache) recomputeOffsets(s *StructType) {
	var cursor uint32
	for i := range s.Members {
		m := &s.Members[i]
		align := c.alignOf(m.Type, s.Layout)
		cursor = alignUp(cursor, align)
		m.Offset = cursor
		m.Size = c.sizeOf(m.Type, s.Layout)
		if arr, ok := c.MustLookup(m.Type).Inner.(ArrayType); ok {
			m.ArrayStride = ArrayStride(c, arr, s.Layout)
		}
		cursor += m.Size
	}
	max := uint32(1)
	for _, m := range s.Members {
		if a := c.alignOf(m.Type, s.Layout); a > max {
			max = a
		}
	}
	if s.Layout == LayoutStd140 {
		max = alignUp(max, 16)
	}
	s.Span = alignUp(cursor, max)
}
