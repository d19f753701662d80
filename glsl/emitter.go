// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

// Package glsl emits GLSL/GLSL-ES source text from a transformed
// *ir.Shader.
package glsl

import (
	"fmt"
	"strings"

	"github.com/shaderwright/shaderwright/ir"
)

// Emitter holds the mutable state of one Emit call: the shader being
// read, the output buffer, and the current indentation depth.
type Emitter struct {
	shader *ir.Shader
	opts   Options
	buf    strings.Builder
	indent int
}

// Emit renders shader as GLSL source for the entry point named by
// opts.EntryPoint (or the shader's first entry point if empty).
func Emit(shader *ir.Shader, opts Options) (string, error) {
	fn, ok := findEntryPoint(shader, opts.EntryPoint)
	if !ok {
		return "", fmt.Errorf("glsl: no entry point %q found", opts.EntryPoint)
	}
	e := &Emitter{shader: shader, opts: opts}
	cfg := ScanIntrinsics(shader, opts.Version)

	e.writeln("#version " + opts.Version.Directive())
	for _, ext := range cfg.extensionLines() {
		e.writeln(ext)
	}
	e.writeln("")

	e.writeGlobals()
	e.writeFunction(fn)

	return e.buf.String(), nil
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

func (e *Emitter) writeln(s string) {
	if s != "" {
		e.buf.WriteString(strings.Repeat("    ", e.indent))
		e.buf.WriteString(s)
	}
	e.buf.WriteByte('\n')
}

// writeGlobals renders every module-scope declaration except function
// bodies. Only the active entry point's function is written; other
// functions, including ones the entry point calls, are not (spec.md
// §4.6 scopes emission to one entry point per Emit call).
func (e *Emitter) writeGlobals() {
	root := e.shader.Stmts.MustGet(e.shader.Root).Kind.(ir.StmtContainer)
	for _, h := range root.Body {
		st := e.shader.Stmts.MustGet(h)
		switch k := st.Kind.(type) {
		case ir.StmtStructureDecl:
			e.writeStruct(k.Type)
		case ir.StmtVariableDecl:
			v := e.shader.MustVar(k.Var)
			if v.Has(ir.FlagConstant) {
				line := "const " + e.typeName(v.Type) + " " + v.Name + e.arraySuffix(v.Type)
				if k.Init != nil {
					line += " = " + e.expr(*k.Init)
				}
				e.writeln(line + ";")
			}
		case ir.StmtSpecialisationConstantDecl:
			v := e.shader.MustVar(k.Var)
			e.writeln(fmt.Sprintf("layout(constant_id = %d) const %s %s = %s;",
				k.ConstantID, e.typeName(v.Type), v.Name, e.expr(k.DefaultValue)))
		case ir.StmtSamplerDecl:
			v := e.shader.MustVar(k.Var)
			e.writeln("uniform " + e.typeName(v.Type) + " " + v.Name + ";")
		case ir.StmtImageDecl:
			v := e.shader.MustVar(k.Var)
			e.writeln("uniform " + e.typeName(v.Type) + " " + v.Name + ";")
		case ir.StmtSampledImageDecl:
			v := e.shader.MustVar(k.Var)
			e.writeln("uniform " + e.typeName(v.Type) + " " + v.Name + ";")
		case ir.StmtConstantBufferDecl:
			e.writeBufferBlock("uniform", k.Var, k.Binding)
		case ir.StmtShaderBufferDecl:
			e.writeBufferBlock("buffer", k.Var, k.Binding)
		case ir.StmtPushConstantsBufferDecl:
			v := e.shader.MustVar(k.Var)
			e.writeln("layout(push_constant) uniform " + v.Name + "Block {")
			e.writeStructMembers(v.Type)
			e.writeln("} " + v.Name + ";")
		case ir.StmtInOutVariableDecl:
			v := e.shader.MustVar(k.Var)
			qual := "in"
			if v.Has(ir.FlagShaderOutput) {
				qual = "out"
			}
			flat := ""
			if k.Attrs.Flat {
				flat = "flat "
			}
			e.writeln(fmt.Sprintf("layout(location = %d) %s%s %s %s%s;",
				k.Attrs.Location, flat, qual, e.typeName(v.Type), v.Name, e.arraySuffix(v.Type)))
		case ir.StmtInputComputeLayout:
			e.writeln(fmt.Sprintf("layout(local_size_x = %d, local_size_y = %d, local_size_z = %d) in;",
				k.LocalSize[0], k.LocalSize[1], k.LocalSize[2]))
		}
	}
}

func (e *Emitter) writeBufferBlock(qualifier string, id ir.VarID, binding ir.ResourceBinding) {
	v := e.shader.MustVar(id)
	e.writeln(fmt.Sprintf("layout(set = %d, binding = %d, std140) %s %sBlock {", binding.Set, binding.Binding, qualifier, v.Name))
	e.writeStructMembers(v.Type)
	e.writeln("} " + v.Name + ";")
}

func (e *Emitter) writeStruct(typ ir.TypeHandle) {
	st := e.shader.Types.MustLookup(typ).Inner.(*ir.StructType)
	e.writeln("struct " + st.Name + " {")
	e.writeStructMembers(typ)
	e.writeln("};")
}

func (e *Emitter) writeStructMembers(typ ir.TypeHandle) {
	st := e.shader.Types.MustLookup(typ).Inner.(*ir.StructType)
	e.indent++
	for _, m := range st.Members {
		e.writeln(e.typeName(m.Type) + " " + m.Name + e.arraySuffix(m.Type) + ";")
	}
	e.indent--
}

func (e *Emitter) writeFunction(fn ir.StmtFunctionDecl) {
	name := e.shader.MustVar(fn.Var).Name
	if fn.Flags&ir.FnEntryPoint != 0 {
		name = "main"
	}
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		v := e.shader.MustVar(p)
		qual := ""
		if v.Has(ir.FlagInputParam) && v.Has(ir.FlagOutputParam) {
			qual = "inout "
		} else if v.Has(ir.FlagOutputParam) {
			qual = "out "
		}
		params[i] = qual + e.typeName(v.Type) + " " + v.Name
	}
	e.writeln(e.typeName(fn.Result) + " " + name + "(" + strings.Join(params, ", ") + ") {")
	e.indent++
	body := e.shader.Stmts.MustGet(fn.Body).Kind.(ir.StmtContainer)
	for _, h := range body.Body {
		e.writeStmt(h)
	}
	e.indent--
	e.writeln("}")
}
