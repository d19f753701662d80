// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"github.com/shaderwright/shaderwright/ir"
)

// builtinDecoration maps an IR builtin tag to its SPIR-V BuiltIn
// decoration value. Tags this compiler has no SPIR-V equivalent for
// (none currently) fall through to ok=false.
var builtinDecoration = map[ir.BuiltinTag]uint32{
	ir.BuiltinPosition:                 0,
	ir.BuiltinVertexID:                 42,
	ir.BuiltinInstanceID:               43,
	ir.BuiltinFragCoord:                15,
	ir.BuiltinFrontFacing:              17,
	ir.BuiltinFragDepth:                22,
	ir.BuiltinSampleID:                 4424,
	ir.BuiltinSampleMask:               20,
	ir.BuiltinWorkGroupID:              26,
	ir.BuiltinLocalInvocationID:        27,
	ir.BuiltinLocalInvocationIndex:     29,
	ir.BuiltinGlobalInvocationID:       28,
	ir.BuiltinNumWorkGroups:            24,
	ir.BuiltinPrimitiveID:              7,
	ir.BuiltinLayer:                    9,
	ir.BuiltinViewportIndex:            10,
	ir.BuiltinTessLevelOuter:           11,
	ir.BuiltinTessLevelInner:           12,
	ir.BuiltinTessCoord:                13,
	ir.BuiltinPatchVertices:            14,
	ir.BuiltinInvocationID:             8,
	ir.BuiltinLaunchID:                 5319,
	ir.BuiltinLaunchSize:               5320,
	ir.BuiltinWorldRayOrigin:           5321,
	ir.BuiltinWorldRayDirection:        5322,
	ir.BuiltinHitT:                     5332,
	ir.BuiltinInstanceCustomIndex:      5327,
}

// ModuleEmitter builds one SPIR-V module for a single entry point.
type ModuleEmitter struct {
	shader *ir.Shader
	mod    *ModuleBuilder
	types  *TypeRegistry
	opts   Options

	varIDs     map[ir.VarID]ID
	varStorage map[ir.VarID]ir.StorageClass
	interfaceVars []ID
	funcIDs    map[ir.VarID]ID

	defaultSamplerID ID // lazily created; see defaultSampler
}

// defaultSampler returns a module-wide sampler variable used to merge
// a standalone image (one with no IR-level sampler pairing) into a
// sampled-image operand for OpImageSampleImplicitLod/OpImageGather
// (spec.md §4.7's combined-image-sampler merge). Declared once per
// module at a reserved descriptor slot, since the IR's
// ExprImageAccessCall never carries a distinct sampler handle of its
// own to decorate.
func (e *ModuleEmitter) defaultSampler() ID {
	if e.defaultSamplerID != 0 {
		return e.defaultSamplerID
	}
	samplerType := e.shader.Types.GetSampler(false)
	ptrType := e.shader.Types.GetPointer(samplerType, ir.StorageUniformConstant, false)
	ptrID := e.types.IDFor(ptrType)
	varID := e.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(ptrID)
	ib.AddID(varID)
	ib.AddWord(uint32(StorageClassUniformConstant))
	e.mod.AddGlobalVar(ib.Build(OpVariable))
	e.interfaceVars = append(e.interfaceVars, varID)
	e.mod.AddDecoration(varID, DecorationDescriptorSet, 0)
	e.mod.AddDecoration(varID, DecorationBinding, 255)
	if e.opts.Debug {
		e.mod.AddName(varID, "default_sampler")
	}
	e.defaultSamplerID = varID
	return varID
}

// Emit compiles shader's named entry point (or its first entry point
// when name is empty) into a SPIR-V binary module.
func Emit(shader *ir.Shader, name string, opts Options) ([]byte, error) {
	fn, ok := findEntryPoint(shader, name)
	if !ok {
		return nil, entryPointNotFound(name)
	}
	mod := NewModuleBuilder(opts.Version)
	e := &ModuleEmitter{
		shader:     shader,
		mod:        mod,
		types:      NewTypeRegistry(shader, mod, opts.Debug),
		opts:       opts,
		varIDs:     make(map[ir.VarID]ID),
		varStorage: make(map[ir.VarID]ir.StorageClass),
	}
	mod.AddCapability(CapabilityShader)
	for _, c := range opts.Capabilities {
		mod.AddCapability(c)
	}

	if err := e.declareGlobals(); err != nil {
		return nil, err
	}

	root := shader.Stmts.MustGet(shader.Root).Kind.(ir.StmtContainer)
	var fnID ID
	for _, h := range root.Body {
		decl, ok := shader.Stmts.MustGet(h).Kind.(ir.StmtFunctionDecl)
		if !ok {
			continue
		}
		id, err := e.emitFunction(decl)
		if err != nil {
			return nil, err
		}
		if decl.Var == fn.Var {
			fnID = id
		}
	}

	model := executionModelFor(fn.Stage)
	fnName := shader.MustVar(fn.Var).Name
	mod.AddEntryPoint(model, fnID, fnName, e.interfaceVars)
	switch fn.Stage {
	case ir.StageFragment:
		mod.AddExecutionMode(fnID, ExecutionModeOriginUpperLeft)
	case ir.StageCompute:
		local := localSizeOf(shader)
		mod.AddExecutionMode(fnID, ExecutionModeLocalSize, local[0], local[1], local[2])
	}
	if opts.Debug {
		mod.AddName(fnID, fnName)
	}

	return mod.Serialize(opts.WriteHeader), nil
}

func findEntryPoint(s *ir.Shader, name string) (ir.StmtFunctionDecl, bool) {
	root := s.Stmts.MustGet(s.Root).Kind.(ir.StmtContainer)
	for _, h := range root.Body {
		fn, ok := s.Stmts.MustGet(h).Kind.(ir.StmtFunctionDecl)
		if !ok || fn.Flags&ir.FnEntryPoint == 0 {
			continue
		}
		fnName := s.MustVar(fn.Var).Name
		if name == "" || fnName == name {
			return fn, true
		}
	}
	return ir.StmtFunctionDecl{}, false
}

func localSizeOf(s *ir.Shader) [3]uint32 {
	root := s.Stmts.MustGet(s.Root).Kind.(ir.StmtContainer)
	for _, h := range root.Body {
		if k, ok := s.Stmts.MustGet(h).Kind.(ir.StmtInputComputeLayout); ok {
			return k.LocalSize
		}
	}
	return [3]uint32{1, 1, 1}
}

func executionModelFor(stage ir.ShaderStage) ExecutionModel {
	switch stage {
	case ir.StageVertex:
		return ExecutionModelVertex
	case ir.StageFragment:
		return ExecutionModelFragment
	case ir.StageCompute:
		return ExecutionModelGLCompute
	case ir.StageGeometry:
		return ExecutionModelGeometry
	case ir.StageTessControl:
		return ExecutionModelTessellationControl
	case ir.StageTessEvaluation:
		return ExecutionModelTessellationEvaluation
	default:
		return ExecutionModelGLCompute
	}
}

// declareGlobals walks the root container and emits an OpVariable (plus
// decorations) for every module-scope binding: buffers, textures,
// samplers, in/out interface variables, and file-scope constants.
func (e *ModuleEmitter) declareGlobals() error {
	root := e.shader.Stmts.MustGet(e.shader.Root).Kind.(ir.StmtContainer)
	for _, h := range root.Body {
		st := e.shader.Stmts.MustGet(h)
		switch k := st.Kind.(type) {
		case ir.StmtStructureDecl:
			e.types.IDFor(k.Type)
		case ir.StmtInOutVariableDecl:
			e.declareInOut(k.Var, k.Attrs)
		case ir.StmtSamplerDecl:
			e.declareOpaque(k.Var, ir.StorageUniformConstant, nil)
		case ir.StmtImageDecl, ir.StmtSampledImageDecl:
			var id ir.VarID
			if decl, ok := k.(ir.StmtImageDecl); ok {
				id = decl.Var
			} else {
				id = k.(ir.StmtSampledImageDecl).Var
			}
			e.declareOpaque(id, ir.StorageUniformConstant, nil)
		case ir.StmtConstantBufferDecl:
			e.declareBuffer(k.Var, ir.StorageUniform, k.Binding)
		case ir.StmtShaderBufferDecl:
			e.declareBuffer(k.Var, ir.StorageStorageBuffer, k.Binding)
		case ir.StmtPushConstantsBufferDecl:
			e.declareBuffer(k.Var, ir.StoragePushConstant, ir.ResourceBinding{})
		case ir.StmtSpecialisationConstantDecl:
			e.declareSpecConstant(k.Var, k.ConstantID, k.DefaultValue)
		case ir.StmtVariableDecl:
			v := e.shader.MustVar(k.Var)
			if v.Has(ir.FlagConstant) && !v.Has(ir.FlagSpecConstant) {
				e.declarePrivateConst(k.Var, k.Init)
			}
		}
	}
	return nil
}

func (e *ModuleEmitter) declareInOut(id ir.VarID, attrs ir.InOutAttrs) {
	v := e.shader.MustVar(id)
	space := ir.StorageInput
	if v.Has(ir.FlagShaderOutput) {
		space = ir.StorageOutput
	}
	ptrType := e.shader.Types.GetPointer(v.Type, space, false)
	ptrID := e.types.IDFor(ptrType)
	varID := e.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(ptrID)
	ib.AddID(varID)
	ib.AddWord(uint32(storageClassFor(space)))
	e.mod.AddGlobalVar(ib.Build(OpVariable))

	e.varIDs[id] = varID
	e.varStorage[id] = space
	e.interfaceVars = append(e.interfaceVars, varID)

	if v.Builtin != ir.BuiltinNone {
		if dec, ok := builtinDecoration[v.Builtin]; ok {
			e.mod.AddDecoration(varID, DecorationBuiltIn, dec)
		}
	} else {
		e.mod.AddDecoration(varID, DecorationLocation, uint32(attrs.Location))
	}
	if attrs.Flat || attrs.Interpolation == ir.InterpFlat {
		e.mod.AddDecoration(varID, DecorationFlat)
	}
	if e.opts.Debug {
		e.mod.AddName(varID, v.Name)
	}
}

func (e *ModuleEmitter) declareOpaque(id ir.VarID, space ir.StorageClass, binding *ir.ResourceBinding) {
	v := e.shader.MustVar(id)
	ptrType := e.shader.Types.GetPointer(v.Type, space, false)
	ptrID := e.types.IDFor(ptrType)
	varID := e.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(ptrID)
	ib.AddID(varID)
	ib.AddWord(uint32(storageClassFor(space)))
	e.mod.AddGlobalVar(ib.Build(OpVariable))
	e.varIDs[id] = varID
	e.varStorage[id] = space
	e.interfaceVars = append(e.interfaceVars, varID)
	if binding != nil {
		e.mod.AddDecoration(varID, DecorationDescriptorSet, binding.Set)
		e.mod.AddDecoration(varID, DecorationBinding, binding.Binding)
	} else {
		e.mod.AddDecoration(varID, DecorationDescriptorSet, 0)
		e.mod.AddDecoration(varID, DecorationBinding, 0)
	}
	if e.opts.Debug {
		e.mod.AddName(varID, v.Name)
	}
}

func (e *ModuleEmitter) declareBuffer(id ir.VarID, space ir.StorageClass, binding ir.ResourceBinding) {
	v := e.shader.MustVar(id)
	ptrType := e.shader.Types.GetPointer(v.Type, space, false)
	ptrID := e.types.IDFor(ptrType)
	varID := e.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(ptrID)
	ib.AddID(varID)
	ib.AddWord(uint32(storageClassFor(space)))
	e.mod.AddGlobalVar(ib.Build(OpVariable))
	e.varIDs[id] = varID
	e.varStorage[id] = space
	e.interfaceVars = append(e.interfaceVars, varID)
	if space != ir.StoragePushConstant {
		e.mod.AddDecoration(varID, DecorationDescriptorSet, binding.Set)
		e.mod.AddDecoration(varID, DecorationBinding, binding.Binding)
	}
	if e.opts.Debug {
		e.mod.AddName(varID, v.Name)
	}
}

func (e *ModuleEmitter) declareSpecConstant(id ir.VarID, constantID uint32, def ir.ExprHandle) {
	v := e.shader.MustVar(id)
	lit := e.shader.Exprs.MustGet(def).Kind.(ir.ExprLiteral).Value
	typID := e.types.IDFor(v.Type)
	varID := e.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(typID)
	ib.AddID(varID)
	ib.AddWords(specConstantBits(lit)...)
	e.mod.AddType(ib.Build(OpSpecConstant))
	e.mod.AddDecoration(varID, DecorationSpecId, constantID)
	e.varIDs[id] = varID
	if e.opts.Debug {
		e.mod.AddName(varID, v.Name)
	}
}

func specConstantBits(v ir.LiteralValue) []uint32 {
	switch n := v.(type) {
	case ir.LitI32:
		return []uint32{uint32(int32(n))}
	case ir.LitU32:
		return []uint32{uint32(n)}
	case ir.LitBool:
		if bool(n) {
			return []uint32{1}
		}
		return []uint32{0}
	default:
		return []uint32{0}
	}
}

func (e *ModuleEmitter) declarePrivateConst(id ir.VarID, init *ir.ExprHandle) {
	v := e.shader.MustVar(id)
	if init == nil {
		return
	}
	lit, ok := e.shader.Exprs.MustGet(*init).Kind.(ir.ExprLiteral)
	if !ok {
		return
	}
	constID, _ := e.types.Literal(lit.Value)
	ptrType := e.shader.Types.GetPointer(v.Type, ir.StoragePrivate, false)
	ptrID := e.types.IDFor(ptrType)
	varID := e.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(ptrID)
	ib.AddID(varID)
	ib.AddWord(uint32(StorageClassPrivate))
	ib.AddID(constID)
	e.mod.AddGlobalVar(ib.Build(OpVariable))
	e.varIDs[id] = varID
	e.varStorage[id] = ir.StoragePrivate
	if e.opts.Debug {
		e.mod.AddName(varID, v.Name)
	}
}
