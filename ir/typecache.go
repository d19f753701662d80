// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"fmt"
	"strconv"
)

// TypeCache interns every Type value referenced by a shader and
// computes sizes/alignments/strides per memory layout. It is owned by
// a single Shader and shared across all IR referencing that shader
// (spec.md §3: "Types are owned by the TypeCache of the shader and
// shared across all IR referencing them").
type TypeCache struct {
	types       []Type
	byKey       map[string]TypeHandle
	unqualified map[TypeHandle]TypeHandle
}

// NewTypeCache creates an empty type cache.
func NewTypeCache() *TypeCache {
	return &TypeCache{
		types: make([]Type, 0, 32),
		byKey: make(map[string]TypeHandle, 32),
	}
}

// MustLookup returns the Type for h, panicking (an invariant violation,
// not a recoverable error) if h is out of range.
func (c *TypeCache) MustLookup(h TypeHandle) Type {
	if int(h) >= len(c.types) {
		panic(fmt.Sprintf("ir: type handle %d out of range (have %d types)", h, len(c.types)))
	}
	return c.types[h]
}

// Lookup is the non-panicking form of MustLookup.
func (c *TypeCache) Lookup(h TypeHandle) (Type, bool) {
	if int(h) >= len(c.types) {
		return Type{}, false
	}
	return c.types[h], true
}

// Count returns the number of distinct interned types.
func (c *TypeCache) Count() int { return len(c.types) }

func (c *TypeCache) intern(key, name string, inner TypeInner) TypeHandle {
	if h, ok := c.byKey[key]; ok {
		return h
	}
	h := TypeHandle(len(c.types))
	c.types = append(c.types, Type{Name: name, Inner: inner})
	c.byKey[key] = h
	return h
}

// GetBasic interns a scalar, vector, or matrix type, returning the
// canonical handle for that shape.
func (c *TypeCache) GetBasic(inner TypeInner) TypeHandle {
	switch t := inner.(type) {
	case ScalarType:
		key := "scalar:" + strconv.Itoa(int(t.Kind))
		return c.intern(key, "", t)
	case VectorType:
		key := "vec:" + strconv.Itoa(int(t.Size)) + ":" + strconv.Itoa(int(t.Kind))
		return c.intern(key, "", t)
	case MatrixType:
		key := "mat:" + strconv.Itoa(int(t.Columns)) + "x" + strconv.Itoa(int(t.Rows)) + ":" + strconv.Itoa(int(t.Kind))
		return c.intern(key, "", t)
	case VoidType:
		return c.intern("void", "void", t)
	default:
		panic(fmt.Sprintf("ir: GetBasic called with non-basic type %T", inner))
	}
}

// GetArray interns an array type keyed by (element handle, size).
func (c *TypeCache) GetArray(element TypeHandle, size ArraySize) TypeHandle {
	var sk string
	if size.Known {
		sk = strconv.FormatUint(uint64(size.Count), 10)
	} else {
		sk = "runtime"
	}
	key := "array:" + strconv.Itoa(int(element)) + ":" + sk
	return c.intern(key, "", ArrayType{Element: element, Size: size})
}

// GetPointer interns a pointer type keyed by (pointee, storage, forward).
func (c *TypeCache) GetPointer(pointee TypeHandle, space StorageClass, forward bool) TypeHandle {
	key := "ptr:" + strconv.Itoa(int(pointee)) + ":" + strconv.Itoa(int(space))
	if forward {
		key += ":fwd"
	}
	return c.intern(key, "", PointerType{Pointee: pointee, Space: space, Forward: forward})
}

// GetSampler interns a sampler type, keyed by its comparison flag.
func (c *TypeCache) GetSampler(comparison bool) TypeHandle {
	key := "sampler:" + strconv.FormatBool(comparison)
	return c.intern(key, "", SamplerType{Comparison: comparison})
}

// GetImage interns an image type keyed by its structural configuration.
// Per spec.md §4.1, access-kind is normalized to ReadWrite before
// interning so Read/Write declarations of an otherwise-identical shape
// do not produce duplicate SPIR-V types.
func (c *TypeCache) GetImage(cfg ImageConfig) TypeHandle {
	cfg.Access = AccessReadWrite
	key := fmt.Sprintf("image:%d:%d:%v:%v:%d:%d:%v", cfg.Dim, cfg.Sampled, cfg.Arrayed, cfg.MS, cfg.Format, cfg.Access, cfg.IsSample)
	return c.intern(key, "", ImageType{Config: cfg})
}

// GetSampledImage interns a combined sampled-image-plus-depth-flag type.
func (c *TypeCache) GetSampledImage(image TypeHandle, depth bool) TypeHandle {
	key := "sampledimg:" + strconv.Itoa(int(image)) + ":" + strconv.FormatBool(depth)
	return c.intern(key, "", SampledImageType{Image: image, Depth: depth})
}

// GetCombinedImage interns a GLSL-style combined image+sampler type.
func (c *TypeCache) GetCombinedImage(image TypeHandle, comparison bool) TypeHandle {
	key := "combinedimg:" + strconv.Itoa(int(image)) + ":" + strconv.FormatBool(comparison)
	return c.intern(key, "", CombinedImageType{Image: image, Comparison: comparison})
}

// GetAccelerationStructure interns the singleton acceleration-structure
// type.
func (c *TypeCache) GetAccelerationStructure() TypeHandle {
	return c.intern("accelstruct", "", AccelerationStructureType{})
}

// GetFunctionType interns a function signature type.
func (c *TypeCache) GetFunctionType(params []TypeHandle, result TypeHandle) TypeHandle {
	key := "fn:" + strconv.Itoa(int(result))
	for _, p := range params {
		key += ":" + strconv.Itoa(int(p))
	}
	cp := make([]TypeHandle, len(params))
	copy(cp, params)
	return c.intern(key, "", FunctionType{Params: cp, Result: result})
}

// GetRoleWrapper interns a ray-payload/callable-data/hit-attribute/
// task-payload wrapper around a data type.
func (c *TypeCache) GetRoleWrapper(data TypeHandle, role StorageRole) TypeHandle {
	key := "role:" + strconv.Itoa(int(role)) + ":" + strconv.Itoa(int(data))
	return c.intern(key, "", RoleWrapperType{Data: data, Role: role})
}

// GetStageWrapper interns a type bound to a pipeline-stage interface
// role (geometry input, tessellation output patch, etc).
func (c *TypeCache) GetStageWrapper(data TypeHandle, role StageRole) TypeHandle {
	key := "stage:" + strconv.Itoa(int(role)) + ":" + strconv.Itoa(int(data))
	return c.intern(key, "", StageWrapperType{Data: data, Role: role})
}

// GetStruct returns the existing struct with the given (layout, name,
// flag) if one exists, or fabricates a fresh empty one. The caller
// declares members by calling DeclareMember on the returned handle;
// per spec.md §3, two structs are equal iff layout+name+flag+members
// are equal, so the key intentionally omits members: further
// DeclareMember calls mutate the interned struct in place.
func (c *TypeCache) GetStruct(layout Layout, name string, flag StructFlag) TypeHandle {
	key := "struct:" + strconv.Itoa(int(layout)) + ":" + name + ":" + strconv.Itoa(int(flag))
	if h, ok := c.byKey[key]; ok {
		return h
	}
	h := TypeHandle(len(c.types))
	c.types = append(c.types, Type{Name: name, Inner: &StructType{Layout: layout, Name: name, Flag: flag}})
	c.byKey[key] = h
	return h
}

// DeclareMember appends a member to the struct at handle h and
// recomputes every member offset and the struct span. Panics (an
// invariant violation) if h is not a struct handle.
func (c *TypeCache) DeclareMember(h TypeHandle, m StructMember) {
	t := c.MustLookup(h)
	s, ok := t.Inner.(*StructType)
	if !ok {
		panic(fmt.Sprintf("ir: DeclareMember on non-struct handle %d", h))
	}
	if m.Location == 0 {
		m.Location = -1
	}
	s.Members = append(s.Members, m)
	c.recomputeOffsets(s)
}

// Unqualified returns the handle of the "unqualified" equivalent of t:
// stage-role wrappers stripped and image access-kind normalized. This
// is the key the SPIR-V emitter's ModuleTypes registry dedups against
// (spec.md §4.7, glossary "Unqualified type"). Results are memoised.
func (c *TypeCache) Unqualified(t TypeHandle) TypeHandle {
	if c.unqualified == nil {
		c.unqualified = make(map[TypeHandle]TypeHandle)
	}
	if u, ok := c.unqualified[t]; ok {
		return u
	}
	typ := c.MustLookup(t)
	var result TypeHandle
	switch inner := typ.Inner.(type) {
	case StageWrapperType:
		result = c.Unqualified(inner.Data)
	case RoleWrapperType:
		result = c.Unqualified(inner.Data)
	case PointerType:
		result = c.GetPointer(c.Unqualified(inner.Pointee), inner.Space, false)
	case ArrayType:
		result = c.GetArray(c.Unqualified(inner.Element), inner.Size)
	case ImageType:
		result = c.GetImage(inner.Config) // GetImage already normalizes access
	default:
		result = t
	}
	c.unqualified[t] = result
	return result
}
