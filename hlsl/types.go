// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package hlsl

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
		return "half"
	case ir.ScalarF32:
		return "float"
	case ir.ScalarF64:
		return "double"
	default:
		return "float"
	}
}

func (e *Emitter) typeName(typ ir.TypeHandle) string {
	t := e.shader.Types.MustLookup(typ)
	switch inner := t.Inner.(type) {
	case ir.VoidType:
		return "void"
	case ir.ScalarType:
		return scalarName(inner.Kind)
	case ir.VectorType:
		return fmt.Sprintf("%s%d", scalarName(inner.Kind), inner.Size)
	case ir.MatrixType:
		return fmt.Sprintf("%s%dx%d", scalarName(inner.Kind), inner.Rows, inner.Columns)
	case ir.ArrayType:
		return e.typeName(inner.Element)
	case *ir.StructType:
		return inner.Name
	case ir.SamplerType:
		if inner.Comparison {
			return "SamplerComparisonState"
		}
		return "SamplerState"
	case ir.ImageType:
		return e.textureTypeName(inner.Config)
	case ir.CombinedImageType:
		img := e.shader.Types.MustLookup(inner.Image).Inner.(ir.ImageType)
		return e.textureTypeName(img.Config)
	case ir.SampledImageType:
		img := e.shader.Types.MustLookup(inner.Image).Inner.(ir.ImageType)
		return e.textureTypeName(img.Config)
	case ir.AccelerationStructureType:
		return "RaytracingAccelerationStructure"
	default:
		return "/* unknown type */ float"
	}
}

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

func (e *Emitter) textureTypeName(cfg ir.ImageConfig) string {
	dim := map[ir.ImageDimension]string{
		ir.Dim1D: "1D", ir.Dim2D: "2D", ir.Dim3D: "3D",
		ir.DimCube: "Cube", ir.DimRect: "2D", ir.DimBuffer: "Buffer", ir.DimSubpassData: "2D",
	}[cfg.Dim]
	kind := "Texture"
	if !cfg.IsSample {
		kind = "RWTexture"
	}
	name := kind + dim
	if cfg.Arrayed {
		name += "Array"
	}
	if cfg.MS {
		name = "Texture" + dim + "MS"
	}
	scalar := scalarName(cfg.Sampled)
	return name + "<" + scalar + "4>"
}

// resourceBufferType renders the HLSL buffer-resource type for a
// struct-backed shader/constant buffer.
func (e *Emitter) resourceBufferType(readOnly bool, elemType ir.TypeHandle) string {
	if readOnly {
		return "StructuredBuffer<" + e.typeName(elemType) + ">"
	}
	return "RWStructuredBuffer<" + e.typeName(elemType) + ">"
}
