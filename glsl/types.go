// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/shaderwright/shaderwright/ir"
)

func scalarName(k ir.ScalarKind) string {
	switch k {
	case ir.ScalarBool:
		return "bool"
	case ir.ScalarI32, ir.ScalarI16, ir.ScalarI8:
		return "int"
	case ir.ScalarU32, ir.ScalarU16, ir.ScalarU8:
		return "uint"
	case ir.ScalarI64:
		return "int64_t"
	case ir.ScalarU64:
		return "uint64_t"
	case ir.ScalarF16:
		return "float16_t"
	case ir.ScalarF32:
		return "float"
	case ir.ScalarF64:
		return "double"
	default:
		return "float"
	}
}

func vecPrefix(k ir.ScalarKind) string {
	switch k {
	case ir.ScalarBool:
		return "bvec"
	case ir.ScalarI32, ir.ScalarI16, ir.ScalarI8, ir.ScalarI64:
		return "ivec"
	case ir.ScalarU32, ir.ScalarU16, ir.ScalarU8, ir.ScalarU64:
		return "uvec"
	case ir.ScalarF64:
		return "dvec"
	default:
		return "vec"
	}
}

// (e *Emitter) typeName renders typ's GLSL spelling, recursing through
// arrays/structs/images as needed.
func (e *Emitter) typeName(typ ir.TypeHandle) string {
	t := e.shader.Types.MustLookup(typ)
	switch inner := t.Inner.(type) {
	case ir.VoidType:
		return "void"
	case ir.ScalarType:
		return scalarName(inner.Kind)
	case ir.VectorType:
		return fmt.Sprintf("%s%d", vecPrefix(inner.Kind), inner.Size)
	case ir.MatrixType:
		if inner.Columns == inner.Rows {
			return fmt.Sprintf("mat%d", inner.Columns)
		}
		return fmt.Sprintf("mat%dx%d", inner.Columns, inner.Rows)
	case ir.ArrayType:
		return e.typeName(inner.Element)
	case *ir.StructType:
		return inner.Name
	case ir.SamplerType:
		return "sampler"
	case ir.ImageType:
		return e.imageTypeName(inner.Config, false)
	case ir.CombinedImageType:
		img := e.shader.Types.MustLookup(inner.Image).Inner.(ir.ImageType)
		return e.imageTypeName(img.Config, inner.Comparison)
	case ir.SampledImageType:
		img := e.shader.Types.MustLookup(inner.Image).Inner.(ir.ImageType)
		return e.imageTypeName(img.Config, inner.Depth)
	case ir.AccelerationStructureType:
		return "accelerationStructureEXT"
	default:
		return "/* unknown type */ float"
	}
}

// arraySuffix renders the `[N]`/`[]` suffix a declared name needs when
// typ is an array.
func (e *Emitter) arraySuffix(typ ir.TypeHandle) string {
	t := e.shader.Types.MustLookup(typ)
	arr, ok := t.Inner.(ir.ArrayType)
	if !ok {
		return ""
	}
	if !arr.Size.Known {
		return "[]"
	}
	return fmt.Sprintf("[%d]", arr.Size.Count)
}

func (e *Emitter) imageTypeName(cfg ir.ImageConfig, comparisonOrDepth bool) string {
	prefix := ""
	switch cfg.Sampled {
	case ir.ScalarI32:
		prefix = "i"
	case ir.ScalarU32:
		prefix = "u"
	}
	dim := map[ir.ImageDimension]string{
		ir.Dim1D: "1D", ir.Dim2D: "2D", ir.Dim3D: "3D",
		ir.DimCube: "Cube", ir.DimRect: "2DRect", ir.DimBuffer: "Buffer", ir.DimSubpassData: "2D",
	}[cfg.Dim]
	name := prefix
	if cfg.IsSample {
		name += "sampler" + dim
	} else {
		name += "image" + dim
	}
	if cfg.Arrayed {
		name += "Array"
	}
	if cfg.MS {
		name += "MS"
	}
	if comparisonOrDepth {
		name += "Shadow"
	}
	return name
}
