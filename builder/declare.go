// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/shaderwright/shaderwright/ir"
)

// RegisterStruct declares a named struct type under the given layout,
// appending a StmtStructureDecl to the shader root.
func (b *ShaderBuilder) RegisterStruct(layout ir.Layout, name string, flag ir.StructFlag, members []ir.StructMember) ir.TypeHandle {
	h := b.Shader.Types.GetStruct(layout, name, flag)
	for _, m := range members {
		b.Shader.Types.DeclareMember(h, m)
	}
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtStructureDecl{Type: h}))
	return h
}

// RegisterName defines a plain named variable without declaring any
// enclosing statement — used for struct members and function
// parameters, whose declaration is carried by their owning
// struct/function statement rather than a standalone one.
func (b *ShaderBuilder) RegisterName(name string, typ ir.TypeHandle, flags ir.VarFlags) ir.VarID {
	id := b.Shader.AllocVarID()
	return b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: flags})
}

// RegisterMember defines a variable bound to a struct member, linking
// it back to its owning struct Variable via Outer.
func (b *ShaderBuilder) RegisterMember(name string, typ ir.TypeHandle, outer ir.VarID) ir.VarID {
	id := b.Shader.AllocVarID()
	return b.Shader.DefineVariable(ir.Variable{
		ID: id, Name: name, Type: typ, Flags: ir.FlagMember, Outer: outer, HasOuter: true,
	})
}

// RegisterStaticConstant declares a module-scope `const` value.
func (b *ShaderBuilder) RegisterStaticConstant(name string, typ ir.TypeHandle, value ir.ExprHandle) ir.VarID {
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: ir.FlagConstant | ir.FlagStatic})
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtVariableDecl{Var: id, Init: &value}))
	return id
}

// RegisterSpecConstant declares a specialization constant with an
// explicit constant-id (spec.md §3/§4.7: SPIR-V OpSpecConstant).
func (b *ShaderBuilder) RegisterSpecConstant(name string, typ ir.TypeHandle, constantID uint32, defaultValue ir.ExprHandle) ir.VarID {
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: ir.FlagSpecConstant})
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtSpecialisationConstantDecl{Var: id, ConstantID: constantID, DefaultValue: defaultValue}))
	return id
}

// RegisterSampler declares a standalone sampler resource.
func (b *ShaderBuilder) RegisterSampler(name string, comparison bool) ir.VarID {
	typ := b.Shader.Types.GetSampler(comparison)
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: ir.FlagSampler})
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtSamplerDecl{Var: id}))
	return id
}

// RegisterTexture declares a standalone image/texture resource.
func (b *ShaderBuilder) RegisterTexture(name string, cfg ir.ImageConfig) ir.VarID {
	typ := b.Shader.Types.GetImage(cfg)
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: ir.FlagTexture})
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtImageDecl{Var: id}))
	return id
}

// RegisterImage declares a standalone storage-image resource.
func (b *ShaderBuilder) RegisterImage(name string, cfg ir.ImageConfig) ir.VarID {
	typ := b.Shader.Types.GetImage(cfg)
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: ir.FlagImage})
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtImageDecl{Var: id}))
	return id
}

// RegisterSampledImage declares a combined image+sampler (GLSL-style
// `sampler2D`) resource.
func (b *ShaderBuilder) RegisterSampledImage(name string, cfg ir.ImageConfig, comparison bool) ir.VarID {
	img := b.Shader.Types.GetImage(cfg)
	typ := b.Shader.Types.GetCombinedImage(img, comparison)
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: ir.FlagSampledImage})
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtSampledImageDecl{Var: id}))
	return id
}

// RegisterAccelerationStructure declares a ray-tracing top-level
// acceleration structure resource.
func (b *ShaderBuilder) RegisterAccelerationStructure(name string) ir.VarID {
	typ := b.Shader.Types.GetAccelerationStructure()
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: ir.FlagAccelerationStructure})
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtImageDecl{Var: id}))
	return id
}

// RegisterShaderBuffer declares a shader storage buffer (SSBO) backed
// by a named struct type.
func (b *ShaderBuilder) RegisterShaderBuffer(name string, structType ir.TypeHandle, binding ir.ResourceBinding) ir.VarID {
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: structType, Flags: ir.FlagUniform})
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtShaderBufferDecl{Var: id, Binding: binding}))
	return id
}

// RegisterConstantBuffer declares a uniform buffer (UBO) backed by a
// named struct type.
func (b *ShaderBuilder) RegisterConstantBuffer(name string, structType ir.TypeHandle, binding ir.ResourceBinding) ir.VarID {
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: structType, Flags: ir.FlagUniform})
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtConstantBufferDecl{Var: id, Binding: binding}))
	return id
}

// RegisterPushConstants declares the module's single push-constant
// block.
func (b *ShaderBuilder) RegisterPushConstants(name string, structType ir.TypeHandle) ir.VarID {
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: structType, Flags: ir.FlagUniform})
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtPushConstantsBufferDecl{Var: id}))
	return id
}

// entryPointKey identifies the (stage, function-name) pair location
// collision tracking is scoped to; two different entry points may
// both bind location 0 without conflict.
func entryPointKey(stage ir.ShaderStage, fn string) string {
	return fmt.Sprintf("%d:%s", stage, fn)
}

// claimLocation records that loc is bound to id within the given entry
// point. If loc was already claimed, the first registration is kept and,
// when the claimant is a different variable, a warning goes to the
// shader's diagnostic sink instead of failing outright (spec.md §9 open
// question b).
func (b *ShaderBuilder) claimLocation(entryPoint string, loc uint32, id ir.VarID) {
	m, ok := b.Shader.Locations[entryPoint]
	if !ok {
		m = make(map[uint32]ir.VarID)
		b.Shader.Locations[entryPoint] = m
	}
	if prior, ok := m[loc]; ok {
		if prior != id {
			b.Shader.Warn(fmt.Sprintf("location %d in %q is bound to both variable %d and %d", loc, entryPoint, prior, id))
		}
		return
	}
	m[loc] = id
}

// RegisterInput declares a shader input variable at an explicit
// location. Integer and boolean scalar/vector inputs are implicitly flagged
// `flat` per spec.md §3, since GLSL/HLSL/SPIR-V all require explicit
// flat interpolation for non-float interface values.
func (b *ShaderBuilder) RegisterInput(entryPoint, name string, typ ir.TypeHandle, location uint32, interp ir.InterpolationKind) ir.VarID {
	flags := ir.FlagShaderInput
	if isIntegerType(b.Shader.Types, typ) {
		flags |= ir.FlagFlat
		interp = ir.InterpFlat
	}
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: flags})
	b.claimLocation(entryPoint, location, id)
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtInOutVariableDecl{
		Var: id, Attrs: ir.InOutAttrs{Location: int32(location), Flat: flags&ir.FlagFlat != 0, Interpolation: interp},
	}))
	return id
}

// RegisterOutput declares a shader output variable at an explicit
// location, with the same implicit-flat rule as RegisterInput.
func (b *ShaderBuilder) RegisterOutput(entryPoint, name string, typ ir.TypeHandle, location uint32, interp ir.InterpolationKind) ir.VarID {
	flags := ir.FlagShaderOutput
	if isIntegerType(b.Shader.Types, typ) {
		flags |= ir.FlagFlat
		interp = ir.InterpFlat
	}
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: flags})
	b.claimLocation(entryPoint, location, id)
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtInOutVariableDecl{
		Var: id, Attrs: ir.InOutAttrs{Location: int32(location), Flat: flags&ir.FlagFlat != 0, Interpolation: interp},
	}))
	return id
}

// RegisterInOut declares a variable that is simultaneously a shader
// input and output, used for geometry/tessellation pass-through
// interfaces.
func (b *ShaderBuilder) RegisterInOut(entryPoint, name string, typ ir.TypeHandle, location uint32) ir.VarID {
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: ir.FlagShaderInput | ir.FlagShaderOutput})
	b.claimLocation(entryPoint, location, id)
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtInOutVariableDecl{Var: id, Attrs: ir.InOutAttrs{Location: int32(location)}}))
	return id
}

// RegisterBuiltin declares a variable bound to a built-in shader value
// (gl_Position, gl_FragCoord, SV_Position, ...), with no location.
func (b *ShaderBuilder) RegisterBuiltin(name string, typ ir.TypeHandle, tag ir.BuiltinTag, flags ir.VarFlags) ir.VarID {
	id := b.Shader.AllocVarID()
	return b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: flags | ir.FlagBuiltin, Builtin: tag})
}

// RegisterLocale declares a plain local with no initializer via the
// registry path (equivalent to VariableDecl with a nil init, kept
// separate to mirror the source system's distinct "locale" vs
// "variable-with-initializer" entry points).
func (b *ShaderBuilder) RegisterLocale(name string, typ ir.TypeHandle) ir.VarID {
	return b.VariableDecl(name, typ, nil)
}

// RegisterLoopVar declares a for-loop induction variable.
func (b *ShaderBuilder) RegisterLoopVar(name string, typ ir.TypeHandle) ir.VarID {
	id := b.Shader.AllocVarID()
	return b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: ir.FlagLoopVar})
}

// RegisterRayPayload declares a ray-tracing payload/callable-data/
// hit-attribute variable bound to a location index.
func (b *ShaderBuilder) RegisterRayPayload(name string, dataType ir.TypeHandle, role ir.StorageRole, location uint32) ir.VarID {
	typ := b.Shader.Types.GetRoleWrapper(dataType, role)
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: typ, Flags: ir.FlagShaderInput | ir.FlagShaderOutput})
	b.addGlobalStmt(b.Shader.Stmts.New(ir.StmtInOutRayPayloadVariableDecl{Var: id, Location: location}))
	return id
}

// --- parameters -------------------------------------------------------------

// RegisterParam declares an in-only function parameter.
func (b *ShaderBuilder) RegisterParam(name string, typ ir.TypeHandle) ir.VarID {
	return b.RegisterName(name, typ, ir.FlagParam|ir.FlagInputParam)
}

// RegisterInParam is an alias for RegisterParam, matching the source
// API's separate in/out/inout naming (spec.md §4.2).
func (b *ShaderBuilder) RegisterInParam(name string, typ ir.TypeHandle) ir.VarID {
	return b.RegisterParam(name, typ)
}

// RegisterOutParam declares an out-only function parameter.
func (b *ShaderBuilder) RegisterOutParam(name string, typ ir.TypeHandle) ir.VarID {
	return b.RegisterName(name, typ, ir.FlagParam|ir.FlagOutputParam)
}

// RegisterInOutParam declares a parameter passed by reference in both
// directions.
func (b *ShaderBuilder) RegisterInOutParam(name string, typ ir.TypeHandle) ir.VarID {
	return b.RegisterName(name, typ, ir.FlagParam|ir.FlagInputParam|ir.FlagOutputParam)
}

// --- functions ----------------------------------------------------------

// BeginFunction registers a function's signature and pushes its body
// as the current frame. Call EndFunction to close it.
func (b *ShaderBuilder) BeginFunction(name string, params []ir.VarID, result ir.TypeHandle, flags ir.FunctionFlags, stage ir.ShaderStage) ir.StmtHandle {
	paramTypes := make([]ir.TypeHandle, len(params))
	for i, p := range params {
		paramTypes[i] = b.Shader.MustVar(p).Type
	}
	fnType := b.Shader.Types.GetFunctionType(paramTypes, result)
	id := b.Shader.AllocVarID()
	id = b.Shader.DefineVariable(ir.Variable{ID: id, Name: name, Type: fnType, Flags: 0})
	body := b.Shader.Stmts.New(ir.StmtContainer{})
	h := b.Shader.Stmts.New(ir.StmtFunctionDecl{Var: id, Params: params, Result: result, Flags: flags, Stage: stage, Body: body})
	b.addGlobalStmt(h)
	if flags&ir.FnEntryPoint != 0 {
		b.Shader.EntryPoints = append(b.Shader.EntryPoints, id)
	}
	b.fnStack = append(b.fnStack, h)
	b.push(body, frameCompound)
	return h
}

// EndFunction closes the current function body.
func (b *ShaderBuilder) EndFunction() {
	b.pop()
	b.fnStack = b.fnStack[:len(b.fnStack)-1]
}

// isIntegerType reports whether typ is an integer or boolean scalar, or
// a vector of one, the trigger condition for the implicit `flat` rule in
// RegisterInput/RegisterOutput. Arrays and other types report false.
func isIntegerType(cache *ir.TypeCache, typ ir.TypeHandle) bool {
	t := cache.MustLookup(typ)
	kind, ok := baseScalarKind(t.Inner)
	if !ok {
		return false
	}
	switch kind {
	case ir.ScalarF16, ir.ScalarF32, ir.ScalarF64:
		return false
	default:
		return true
	}
}

func baseScalarKind(inner ir.TypeInner) (ir.ScalarKind, bool) {
	switch t := inner.(type) {
	case ir.ScalarType:
		return t.Kind, true
	case ir.VectorType:
		return t.Kind, true
	default:
		return 0, false
	}
}
