// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"

	"github.com/shaderwright/shaderwright/ir"
)

func (e *Emitter) writeStmt(h ir.StmtHandle) {
	st := e.shader.Stmts.MustGet(h)
	switch k := st.Kind.(type) {
	case ir.StmtCompound:
		for _, c := range k.Body {
			e.writeStmt(c)
		}
	case ir.StmtSimple:
		e.writeln(e.expr(k.Expr) + ";")
	case ir.StmtVariableDecl:
		v := e.shader.MustVar(k.Var)
		line := e.typeName(v.Type) + " " + v.Name + e.arraySuffix(v.Type)
		if k.Init != nil {
			line += " = " + e.expr(*k.Init)
		}
		e.writeln(line + ";")
	case ir.StmtReturn:
		if k.Value != nil {
			e.writeln("return " + e.expr(*k.Value) + ";")
		} else {
			e.writeln("return;")
		}
	case ir.StmtDiscard:
		e.writeln("discard;")
	case ir.StmtIf:
		e.writeln("if (" + e.expr(k.Cond) + ") {")
		e.writeBlock(k.Then)
		for _, link := range k.Chain {
			if link.Cond != nil {
				e.writeln("} else if (" + e.expr(*link.Cond) + ") {")
			} else {
				e.writeln("} else {")
			}
			e.writeBlock(link.Body)
		}
		e.writeln("}")
	case ir.StmtSwitch:
		e.writeln("switch (" + e.expr(k.Selector) + ") {")
		e.indent++
		for _, c := range k.Cases {
			e.writeStmt(c)
		}
		e.indent--
		e.writeln("}")
	case ir.StmtSwitchCase:
		if k.Value == nil {
			e.writeln("default:")
		} else {
			e.writeln("case " + literalString(*k.Value) + ":")
		}
		e.indent++
		e.writeBlock(k.Body)
		if !k.FallThrough {
			e.writeln("break;")
		}
		e.indent--
	case ir.StmtFor:
		init := ""
		if k.HasInit {
			init = e.forInit(k.Init)
		}
		cond := ""
		if k.Cond != nil {
			cond = e.expr(*k.Cond)
		}
		post := ""
		if k.Post != nil {
			post = e.expr(*k.Post)
		}
		e.writeln(fmt.Sprintf("for (%s; %s; %s) {", init, cond, post))
		e.writeBlock(k.Body)
		e.writeln("}")
	case ir.StmtWhile:
		e.writeln("while (" + e.expr(k.Cond) + ") {")
		e.writeBlock(k.Body)
		e.writeln("}")
	case ir.StmtDoWhile:
		e.writeln("do {")
		e.writeBlock(k.Body)
		e.writeln("} while (" + e.expr(k.Cond) + ");")
	}
}

func (e *Emitter) forInit(h ir.StmtHandle) string {
	st := e.shader.Stmts.MustGet(h)
	switch k := st.Kind.(type) {
	case ir.StmtVariableDecl:
		v := e.shader.MustVar(k.Var)
		line := e.typeName(v.Type) + " " + v.Name
		if k.Init != nil {
			line += " = " + e.expr(*k.Init)
		}
		return line
	case ir.StmtSimple:
		return e.expr(k.Expr)
	default:
		return ""
	}
}

func (e *Emitter) writeBlock(h ir.StmtHandle) {
	e.indent++
	body := e.shader.Stmts.MustGet(h).Kind.(ir.StmtCompound)
	for _, c := range body.Body {
		e.writeStmt(c)
	}
	e.indent--
}
