// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import "github.com/shaderwright/shaderwright/ir"

func (f *FuncEmitter) writeStmt(h ir.StmtHandle) {
	if !f.blockOpen {
		return // statement is unreachable, past an unconditional terminator
	}
	st := f.shader.Stmts.MustGet(h)
	switch k := st.Kind.(type) {
	case ir.StmtCompound:
		for _, c := range k.Body {
			f.writeStmt(c)
		}
	case ir.StmtSimple:
		f.rvalue(k.Expr)
	case ir.StmtVariableDecl:
		ptr := f.declareLocal(k.Var)
		if k.Init != nil {
			f.store(ptr, f.rvalue(*k.Init))
		}
	case ir.StmtReturn:
		if k.Value != nil {
			v := f.rvalue(*k.Value)
			f.instr(Instruction{Op: OpReturnValue, Operands: []uint32{uint32(v)}})
		} else {
			f.instr(Instruction{Op: OpReturn})
		}
		f.blockOpen = false
	case ir.StmtDiscard:
		f.instr(Instruction{Op: OpKill})
		f.blockOpen = false
	case ir.StmtIf:
		f.writeIf(k)
	case ir.StmtSwitch:
		f.writeSwitch(k)
	case ir.StmtFor:
		f.writeFor(k)
	case ir.StmtWhile:
		f.writeWhile(k)
	case ir.StmtDoWhile:
		f.writeDoWhile(k)
	}
}

func (f *FuncEmitter) writeIf(k ir.StmtIf) {
	mergeLabel := f.mod.AllocID()
	thenLabel := f.mod.AllocID()

	branches := make([]ID, 0, len(k.Chain)+1)
	for range k.Chain {
		branches = append(branches, f.mod.AllocID())
	}

	next := mergeLabel
	if len(branches) > 0 {
		next = branches[0]
	}
	cond := f.rvalue(k.Cond)
	f.instr(Instruction{Op: OpSelectionMerge, Operands: []uint32{uint32(mergeLabel), 0}})
	f.emitBranchCond(cond, thenLabel, next)

	f.emitLabel(thenLabel)
	f.writeBlock(k.Then)
	f.emitBranch(mergeLabel)

	for i, link := range k.Chain {
		f.emitLabel(branches[i])
		if link.Cond != nil {
			innerThen := f.mod.AllocID()
			var innerNext ID
			if i+1 < len(branches) {
				innerNext = branches[i+1]
			} else {
				innerNext = mergeLabel
			}
			cond := f.rvalue(*link.Cond)
			f.instr(Instruction{Op: OpSelectionMerge, Operands: []uint32{uint32(mergeLabel), 0}})
			f.emitBranchCond(cond, innerThen, innerNext)
			f.emitLabel(innerThen)
			f.writeBlock(link.Body)
			f.emitBranch(mergeLabel)
		} else {
			f.writeBlock(link.Body)
			f.emitBranch(mergeLabel)
		}
	}

	f.emitLabel(mergeLabel)
}

// writeSwitch lowers a C-style switch with fallthrough to a chain of
// structured ifs comparing the selector against each case's literal in
// order, since SPIR-V's OpSwitch has no native fallthrough and
// modelling that precisely needs shared-body merging this emitter
// does not attempt.
func (f *FuncEmitter) writeSwitch(k ir.StmtSwitch) {
	selector := f.rvalue(k.Selector)
	selType := f.shader.Exprs.MustGet(k.Selector).Type
	mergeLabel := f.mod.AllocID()

	for _, c := range k.Cases {
		if !f.blockOpen {
			break
		}
		cs := f.shader.Stmts.MustGet(c).Kind.(ir.StmtSwitchCase)
		if cs.Value == nil {
			f.writeBlock(cs.Body)
			continue
		}
		litID, _ := f.types.Literal(*cs.Value)
		boolType := f.types.scalar(ir.ScalarBool)
		eq := f.mod.AllocID()
		f.instr(Instruction{Op: OpIEqual, Operands: []uint32{uint32(boolType), uint32(eq), uint32(selector), uint32(litID)}})
		thenLabel := f.mod.AllocID()
		nextLabel := f.mod.AllocID()
		f.instr(Instruction{Op: OpSelectionMerge, Operands: []uint32{uint32(nextLabel), 0}})
		f.emitBranchCond(eq, thenLabel, nextLabel)
		f.emitLabel(thenLabel)
		f.writeBlock(cs.Body)
		f.emitBranch(mergeLabel)
		f.emitLabel(nextLabel)
	}
	f.emitBranch(mergeLabel)
	f.emitLabel(mergeLabel)
	_ = selType
}

func (f *FuncEmitter) writeFor(k ir.StmtFor) {
	if k.HasInit {
		f.writeForInit(k.Init)
	}
	headerLabel := f.mod.AllocID()
	checkLabel := f.mod.AllocID()
	bodyLabel := f.mod.AllocID()
	continueLabel := f.mod.AllocID()
	mergeLabel := f.mod.AllocID()

	f.emitBranch(headerLabel)
	f.emitLabel(headerLabel)
	f.instr(Instruction{Op: OpLoopMerge, Operands: []uint32{uint32(mergeLabel), uint32(continueLabel), 0}})
	f.emitBranch(checkLabel)
	f.emitLabel(checkLabel)
	if k.Cond != nil {
		cond := f.rvalue(*k.Cond)
		f.emitBranchCond(cond, bodyLabel, mergeLabel)
	} else {
		f.emitBranch(bodyLabel)
	}
	f.emitLabel(bodyLabel)
	f.writeBlock(k.Body)
	f.emitBranch(continueLabel)
	f.emitLabel(continueLabel)
	if k.Post != nil {
		f.rvalue(*k.Post)
	}
	f.emitBranch(headerLabel)
	f.emitLabel(mergeLabel)
}

func (f *FuncEmitter) writeForInit(h ir.StmtHandle) {
	st := f.shader.Stmts.MustGet(h)
	switch k := st.Kind.(type) {
	case ir.StmtVariableDecl:
		ptr := f.declareLocal(k.Var)
		if k.Init != nil {
			f.store(ptr, f.rvalue(*k.Init))
		}
	case ir.StmtSimple:
		f.rvalue(k.Expr)
	}
}

func (f *FuncEmitter) writeWhile(k ir.StmtWhile) {
	headerLabel := f.mod.AllocID()
	checkLabel := f.mod.AllocID()
	bodyLabel := f.mod.AllocID()
	continueLabel := f.mod.AllocID()
	mergeLabel := f.mod.AllocID()

	f.emitBranch(headerLabel)
	f.emitLabel(headerLabel)
	f.instr(Instruction{Op: OpLoopMerge, Operands: []uint32{uint32(mergeLabel), uint32(continueLabel), 0}})
	f.emitBranch(checkLabel)
	f.emitLabel(checkLabel)
	cond := f.rvalue(k.Cond)
	f.emitBranchCond(cond, bodyLabel, mergeLabel)
	f.emitLabel(bodyLabel)
	f.writeBlock(k.Body)
	f.emitBranch(continueLabel)
	f.emitLabel(continueLabel)
	f.emitBranch(headerLabel)
	f.emitLabel(mergeLabel)
}

func (f *FuncEmitter) writeDoWhile(k ir.StmtDoWhile) {
	headerLabel := f.mod.AllocID()
	bodyLabel := f.mod.AllocID()
	continueLabel := f.mod.AllocID()
	mergeLabel := f.mod.AllocID()

	f.emitBranch(headerLabel)
	f.emitLabel(headerLabel)
	f.instr(Instruction{Op: OpLoopMerge, Operands: []uint32{uint32(mergeLabel), uint32(continueLabel), 0}})
	f.emitBranch(bodyLabel)
	f.emitLabel(bodyLabel)
	f.writeBlock(k.Body)
	f.emitBranch(continueLabel)
	f.emitLabel(continueLabel)
	cond := f.rvalue(k.Cond)
	f.emitBranchCond(cond, headerLabel, mergeLabel)
	f.emitLabel(mergeLabel)
}

func (f *FuncEmitter) writeBlock(h ir.StmtHandle) {
	body := f.shader.Stmts.MustGet(h).Kind.(ir.StmtCompound)
	for _, c := range body.Body {
		f.writeStmt(c)
	}
}
