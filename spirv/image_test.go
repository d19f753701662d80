// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"testing"

	"github.com/shaderwright/shaderwright/builder"
	"github.com/shaderwright/shaderwright/ir"
)

// A combined sampler2D-style resource samples directly through
// OpImageSampleImplicitLod using the resource's own OpTypeSampledImage
// value (spec.md §4.7): no OpUndef placeholder should appear.
func TestCombinedImageSampleLowersToRealInstruction(t *testing.T) {
	b := builder.New()
	vec4 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec4, Kind: ir.ScalarF32})
	vec2 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec2, Kind: ir.ScalarF32})
	outColor := b.RegisterOutput("main", "fragColor", vec4, 0, ir.InterpPerspective)
	tex := b.RegisterSampledImage("tex", ir.ImageConfig{Dim: ir.Dim2D, Sampled: ir.ScalarF32, IsSample: true}, false)

	b.BeginFunction("main", nil, b.Shader.Types.GetBasic(ir.VoidType{}), ir.FnEntryPoint, ir.StageFragment)
	zero := b.Lit(ir.ScalarF32, ir.LitF32(0))
	uv := b.CompositeConstruct([]ir.ExprHandle{zero, zero}, vec2)
	sample := b.CombinedImageAccess(ir.ImageSample, b.Ref(tex), uv, nil, vec4)
	b.Assign(ir.AssignSet, b.Ref(outColor), sample)
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

	var sawSample bool
	for _, in := range mod.Instructions {
		if in.Op == OpImageSampleImplicitLod {
			sawSample = true
		}
		if in.Op == OpUndef {
			t.Error("combined-image sample emitted an OpUndef placeholder")
		}
	}
	if !sawSample {
		t.Error("no OpImageSampleImplicitLod instruction emitted for a combined-image sample")
	}
}

// A standalone image sampled without a paired sampler in the IR still
// lowers to a real OpImageSampleImplicitLod, merged via a lazily
// created default sampler (spec.md §4.7's combined-image-sampler
// merge) rather than an OpUndef placeholder. Reusing the same image
// twice in one block reuses the merged OpSampledImage id.
func TestStandaloneImageSampleMergesDefaultSampler(t *testing.T) {
	b := builder.New()
	vec4 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec4, Kind: ir.ScalarF32})
	vec2 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec2, Kind: ir.ScalarF32})
	outColor := b.RegisterOutput("main", "fragColor", vec4, 0, ir.InterpPerspective)
	tex := b.RegisterTexture("tex", ir.ImageConfig{Dim: ir.Dim2D, Sampled: ir.ScalarF32, IsSample: true})

	b.BeginFunction("main", nil, b.Shader.Types.GetBasic(ir.VoidType{}), ir.FnEntryPoint, ir.StageFragment)
	zero := b.Lit(ir.ScalarF32, ir.LitF32(0))
	uv := b.CompositeConstruct([]ir.ExprHandle{zero, zero}, vec2)
	s1 := b.ImageAccess(ir.ImageSample, b.Ref(tex), uv, nil, vec4)
	s2 := b.ImageAccess(ir.ImageSample, b.Ref(tex), uv, nil, vec4)
	sum := b.BinOp(ir.OpAdd, s1, s2, vec4)
	b.Assign(ir.AssignSet, b.Ref(outColor), sum)
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

	var samples, sampledImages int
	for _, in := range mod.Instructions {
		switch in.Op {
		case OpImageSampleImplicitLod:
			samples++
		case OpSampledImage:
			sampledImages++
		case OpUndef:
			t.Error("standalone-image sample emitted an OpUndef placeholder")
		}
	}
	if samples != 2 {
		t.Errorf("got %d OpImageSampleImplicitLod instructions, want 2", samples)
	}
	if sampledImages != 1 {
		t.Errorf("got %d OpSampledImage instructions, want 1 (cached within the block)", sampledImages)
	}
}

// Texel fetch on a standalone storage image needs no sampler at all:
// it lowers straight to OpImageFetch on the image value.
func TestStandaloneImageFetchLowersToRealInstruction(t *testing.T) {
	b := builder.New()
	vec4 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec4, Kind: ir.ScalarF32})
	ivec2 := b.Shader.Types.GetBasic(ir.VectorType{Size: ir.Vec2, Kind: ir.ScalarI32})
	outColor := b.RegisterOutput("main", "fragColor", vec4, 0, ir.InterpPerspective)
	tex := b.RegisterTexture("tex", ir.ImageConfig{Dim: ir.Dim2D, Sampled: ir.ScalarF32, IsSample: true})

	b.BeginFunction("main", nil, b.Shader.Types.GetBasic(ir.VoidType{}), ir.FnEntryPoint, ir.StageFragment)
	zero := b.Lit(ir.ScalarI32, ir.LitI32(0))
	coord := b.CompositeConstruct([]ir.ExprHandle{zero, zero}, ivec2)
	fetched := b.ImageAccess(ir.ImageFetch, b.Ref(tex), coord, nil, vec4)
	b.Assign(ir.AssignSet, b.Ref(outColor), fetched)
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
	var sawFetch bool
	for _, in := range mod.Instructions {
		if in.Op == OpImageFetch {
			sawFetch = true
		}
		if in.Op == OpUndef {
			t.Error("standalone-image fetch emitted an OpUndef placeholder")
		}
	}
	if !sawFetch {
		t.Error("no OpImageFetch instruction emitted")
	}
}
