// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"github.com/shaderwright/shaderwright/ir"
)

// FuncEmitter lowers one function body (entry point or ordinary
// callee) to SPIR-V instructions. Every local gets a Function-storage
// OpVariable and every parameter arrives as a Function-storage pointer
// (OpFunctionParameter); reads/writes go through explicit
// OpLoad/OpStore rather than SSA phi nodes, the same memory-based
// style an unoptimized glslang/DXC frontend module emits.
type FuncEmitter struct {
	*ModuleEmitter
	locals    map[ir.VarID]ID
	localDecl []Instruction // OpVariable instructions; must precede all others in the entry block
	body      []Instruction
	blockOpen bool

	// sampledImageCache remembers the OpSampledImage id merging a given
	// (image id, sampler id) pair within the current basic block
	// (spec.md §4.7's combined-image-sampler merge); it is cleared on
	// every new label since SPIR-V ids from one block aren't
	// guaranteed to dominate reuse sites the way a fresh merge would.
	sampledImageCache map[[2]ID]ID
	// extractedImageCache remembers the OpImage id extracting the raw
	// image out of a sampled-image value within the current block, so
	// a combined resource used by multiple non-sample ops in the same
	// block only extracts once.
	extractedImageCache map[ID]ID
}

// funcID returns (allocating on first use) the SPIR-V function id of a
// user-function VarID, so forward calls resolve before the callee's body
// has been emitted.
func (e *ModuleEmitter) funcID(v ir.VarID) ID {
	if e.funcIDs == nil {
		e.funcIDs = make(map[ir.VarID]ID)
	}
	if id, ok := e.funcIDs[v]; ok {
		return id
	}
	id := e.mod.AllocID()
	e.funcIDs[v] = id
	return id
}

// emitFunction lowers fn's body and appends its OpFunction..
// OpFunctionEnd instruction stream to the module. Returns fn's result
// id.
func (e *ModuleEmitter) emitFunction(fn ir.StmtFunctionDecl) (ID, error) {
	isEntry := fn.Flags&ir.FnEntryPoint != 0
	fnID := e.funcID(fn.Var)

	var resultType ir.TypeHandle
	if isEntry {
		resultType = e.shader.Types.GetBasic(ir.VoidType{})
	} else {
		resultType = fn.Result
	}
	resultTypeID := e.types.IDFor(resultType)

	paramTypes := make([]ir.TypeHandle, 0, len(fn.Params))
	if !isEntry {
		for _, p := range fn.Params {
			paramTypes = append(paramTypes, e.shader.Types.GetPointer(e.shader.MustVar(p).Type, ir.StorageFunction, false))
		}
	}
	fnTypeID := e.types.IDFor(e.shader.Types.GetFunctionType(paramTypes, resultType))

	f := &FuncEmitter{ModuleEmitter: e, locals: make(map[ir.VarID]ID)}

	var ib InstructionBuilder
	ib.AddID(resultTypeID)
	ib.AddID(fnID)
	ib.AddWord(0) // FunctionControlMaskNone
	ib.AddID(fnTypeID)
	e.mod.AddFunctionInstr(ib.Build(OpFunction))

	if !isEntry {
		for i, p := range fn.Params {
			v := e.shader.MustVar(p)
			ptrTypeID := e.types.IDFor(e.shader.Types.GetPointer(v.Type, ir.StorageFunction, false))
			paramID := e.mod.AllocID()
			var pib InstructionBuilder
			pib.AddID(ptrTypeID)
			pib.AddID(paramID)
			e.mod.AddFunctionInstr(pib.Build(OpFunctionParameter))
			f.locals[p] = paramID
			_ = i
		}
	}

	entryLabel := e.mod.AllocID()
	f.emitLabel(entryLabel)

	body := e.shader.Stmts.MustGet(fn.Body).Kind.(ir.StmtContainer)
	for _, h := range body.Body {
		f.writeStmt(h)
	}
	if f.blockOpen {
		if resultType == e.shader.Types.GetBasic(ir.VoidType{}) {
			f.instr(Instruction{Op: OpReturn})
		} else {
			// Fell off the end of a value-returning function without an
			// explicit return; this is only reachable from malformed
			// input, so return an undef of the result type rather than
			// producing an invalid module.
			undef := e.mod.AllocID()
			f.instr(Instruction{Op: OpUndef, Operands: []uint32{uint32(resultTypeID), uint32(undef)}})
			f.instr(Instruction{Op: OpReturnValue, Operands: []uint32{uint32(undef)}})
		}
	}

	// f.body[0] is the entry block's OpLabel (from emitLabel above); every
	// OpVariable must appear immediately after it, before any other
	// instruction, per the SPIR-V "variables in the first block" rule.
	e.mod.AddFunctionInstr(f.body[0])
	for _, in := range f.localDecl {
		e.mod.AddFunctionInstr(in)
	}
	for _, in := range f.body[1:] {
		e.mod.AddFunctionInstr(in)
	}
	e.mod.AddFunctionInstr(Instruction{Op: OpFunctionEnd})

	if e.opts.Debug && !isEntry {
		e.mod.AddName(fnID, e.shader.MustVar(fn.Var).Name)
	}
	return fnID, nil
}

func (f *FuncEmitter) instr(in Instruction) {
	if in.Op == OpVariable {
		f.localDecl = append(f.localDecl, in)
		return
	}
	f.body = append(f.body, in)
}

func (f *FuncEmitter) emitLabel(id ID) {
	f.body = append(f.body, Instruction{Op: OpLabel, Operands: []uint32{uint32(id)}})
	f.blockOpen = true
	f.sampledImageCache = nil
	f.extractedImageCache = nil
}

func (f *FuncEmitter) emitBranch(target ID) {
	if !f.blockOpen {
		return
	}
	f.body = append(f.body, Instruction{Op: OpBranch, Operands: []uint32{uint32(target)}})
	f.blockOpen = false
}

func (f *FuncEmitter) emitBranchCond(cond ID, t, e ID) {
	if !f.blockOpen {
		return
	}
	f.body = append(f.body, Instruction{Op: OpBranchConditional, Operands: []uint32{uint32(cond), uint32(t), uint32(e)}})
	f.blockOpen = false
}

// declareLocal allocates a Function-storage OpVariable for v and
// records it, returning its pointer id.
func (f *FuncEmitter) declareLocal(v ir.VarID) ID {
	vv := f.shader.MustVar(v)
	ptrType := f.shader.Types.GetPointer(vv.Type, ir.StorageFunction, false)
	ptrID := f.types.IDFor(ptrType)
	varID := f.mod.AllocID()
	var ib InstructionBuilder
	ib.AddID(ptrID)
	ib.AddID(varID)
	ib.AddWord(uint32(StorageClassFunction))
	f.instr(ib.Build(OpVariable))
	f.locals[v] = varID
	if f.opts.Debug {
		f.mod.AddName(varID, vv.Name)
	}
	return varID
}

func (f *FuncEmitter) ptrFor(v ir.VarID) ID {
	if id, ok := f.locals[v]; ok {
		return id
	}
	if id, ok := f.varIDs[v]; ok {
		return id
	}
	return f.declareLocal(v)
}

func (f *FuncEmitter) load(ptr ID, typ ir.TypeHandle) ID {
	typID := f.types.IDFor(typ)
	id := f.mod.AllocID()
	f.instr(Instruction{Op: OpLoad, Operands: []uint32{uint32(typID), uint32(id), uint32(ptr)}})
	return id
}

func (f *FuncEmitter) store(ptr, value ID) {
	f.instr(Instruction{Op: OpStore, Operands: []uint32{uint32(ptr), uint32(value)}})
}
