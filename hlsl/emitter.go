// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

// Package hlsl emits HLSL source text from a transformed *ir.Shader.
package hlsl

import (
	"fmt"
	"strings"

	"github.com/shaderwright/shaderwright/ir"
)

// Emitter holds the mutable state of one Emit call.
type Emitter struct {
	shader *ir.Shader
	opts   Options
	buf    strings.Builder
	indent int

	nextT, nextU, nextS, nextB uint32 // auto-assigned register counters, per class
}

// Emit renders shader as HLSL source for the named entry point (or the
// shader's first entry point if opts.EntryPoint is empty).
func Emit(shader *ir.Shader, opts Options) (string, error) {
	fn, ok := findEntryPoint(shader, opts.EntryPoint)
	if !ok {
		return "", noEntryPoint(opts.EntryPoint)
	}
	e := &Emitter{shader: shader, opts: opts}
	if err := e.writeGlobals(); err != nil {
		return "", err
	}
	e.writeEntryPoint(fn)
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

// register assigns (or looks up) a HLSL register for id, auto-
// incrementing the per-class counter when FakeMissingBindings is set.
func (e *Emitter) register(id ir.VarID, binding ir.ResourceBinding, class byte) (string, error) {
	if t, ok := e.opts.BindingMap[binding]; ok {
		return fmt.Sprintf("register(%c%d, space%d)", class, t.Register, t.Space), nil
	}
	if !e.opts.FakeMissingBindings {
		return "", missingBinding(e.shader.MustVar(id).Name)
	}
	var n *uint32
	switch class {
	case 't':
		n = &e.nextT
	case 'u':
		n = &e.nextU
	case 's':
		n = &e.nextS
	default:
		n = &e.nextB
	}
	r := *n
	*n++
	return fmt.Sprintf("register(%c%d)", class, r), nil
}

func (e *Emitter) writeGlobals() error {
	root := e.shader.Stmts.MustGet(e.shader.Root).Kind.(ir.StmtContainer)
	for _, h := range root.Body {
		st := e.shader.Stmts.MustGet(h)
		switch k := st.Kind.(type) {
		case ir.StmtStructureDecl:
			e.writeStruct(k.Type)
		case ir.StmtVariableDecl:
			v := e.shader.MustVar(k.Var)
			if v.Has(ir.FlagConstant) {
				line := "static const " + e.typeName(v.Type) + " " + v.Name + e.arraySuffix(v.Type)
				if k.Init != nil {
					line += " = " + e.expr(*k.Init)
				}
				e.writeln(line + ";")
			}
		case ir.StmtSpecialisationConstantDecl:
			v := e.shader.MustVar(k.Var)
			e.writeln("static const " + e.typeName(v.Type) + " " + v.Name + " = " + e.expr(k.DefaultValue) + ";")
		case ir.StmtSamplerDecl:
			v := e.shader.MustVar(k.Var)
			reg, err := e.register(k.Var, ir.ResourceBinding{}, 's')
			if err != nil {
				return err
			}
			e.writeln(e.typeName(v.Type) + " " + v.Name + " : " + reg + ";")
		case ir.StmtImageDecl, ir.StmtSampledImageDecl:
			var id ir.VarID
			if decl, ok := k.(ir.StmtImageDecl); ok {
				id = decl.Var
			} else {
				id = k.(ir.StmtSampledImageDecl).Var
			}
			v := e.shader.MustVar(id)
			class := byte('t')
			if v.Has(ir.FlagImage) {
				class = 'u'
			}
			reg, err := e.register(id, ir.ResourceBinding{}, class)
			if err != nil {
				return err
			}
			e.writeln(e.typeName(v.Type) + " " + v.Name + " : " + reg + ";")
			if v.Has(ir.FlagSampledImage) {
				sreg, err := e.register(id, ir.ResourceBinding{Binding: 1 << 30}, 's')
				if err != nil {
					return err
				}
				e.writeln("SamplerState " + v.Name + "_samp : " + sreg + ";")
			}
		case ir.StmtShaderBufferDecl:
			v := e.shader.MustVar(k.Var)
			reg, err := e.register(k.Var, k.Binding, 'u')
			if err != nil {
				return err
			}
			e.writeln(e.resourceBufferType(false, v.Type) + " " + v.Name + " : " + reg + ";")
		case ir.StmtConstantBufferDecl:
			v := e.shader.MustVar(k.Var)
			reg, err := e.register(k.Var, k.Binding, 'b')
			if err != nil {
				return err
			}
			e.writeln("cbuffer " + v.Name + "Block : " + reg + " {")
			e.writeStructMembers(v.Type)
			e.writeln("}")
		case ir.StmtPushConstantsBufferDecl:
			v := e.shader.MustVar(k.Var)
			e.writeln(fmt.Sprintf("cbuffer %sBlock : register(b%d) {", v.Name, e.nextB))
			e.nextB++
			e.writeStructMembers(v.Type)
			e.writeln("}")
		case ir.StmtInputComputeLayout:
			e.writeln(fmt.Sprintf("[numthreads(%d, %d, %d)]", k.LocalSize[0], k.LocalSize[1], k.LocalSize[2]))
		}
	}
	return nil
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
	semantic := st.Flag == ir.StructShaderInput || st.Flag == ir.StructShaderOutput
	for i, m := range st.Members {
		line := e.typeName(m.Type) + " " + m.Name + e.arraySuffix(m.Type)
		if semantic {
			line += " : " + semanticForMember(m.Name, m.Location, i)
		}
		e.writeln(line + ";")
	}
	e.indent--
}

func (e *Emitter) writeEntryPoint(fn ir.StmtFunctionDecl) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		v := e.shader.MustVar(p)
		params[i] = e.typeName(v.Type) + " " + v.Name + " : " + semanticFor(v, int32(i))
	}
	resultSemantic := ""
	if _, isStruct := e.shader.Types.MustLookup(fn.Result).Inner.(*ir.StructType); !isStruct {
		resultSemantic = " : " + stageResultSemantic(fn.Stage)
	}
	e.writeln(e.typeName(fn.Result) + " main(" + strings.Join(params, ", ") + ")" + resultSemantic + " {")
	e.indent++
	body := e.shader.Stmts.MustGet(fn.Body).Kind.(ir.StmtContainer)
	for _, h := range body.Body {
		e.writeStmt(h)
	}
	e.indent--
	e.writeln("}")
}

func stageResultSemantic(stage ir.ShaderStage) string {
	if stage == ir.StageFragment {
		return "SV_Target0"
	}
	return "SV_Position"
}

func semanticForMember(name string, location int32, index int) string {
	switch name {
	case "position", "Position", "gl_Position":
		return "SV_Position"
	case "fragDepth", "depth":
		return "SV_Depth"
	}
	loc := location
	if loc < 0 {
		loc = int32(index)
	}
	return fmt.Sprintf("TEXCOORD%d", loc)
}
