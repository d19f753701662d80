// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"bytes"
	"encoding/binary"
)

// ModuleBuilder accumulates a SPIR-V module's sections in the fixed
// order the spec mandates: capabilities, extensions, extended
// instruction imports, the memory model, entry points, execution
// modes, debug strings/names, annotations, types+constants+global
// variables, and finally function bodies.
type ModuleBuilder struct {
	version Version

	capabilities  []Instruction
	extensions    []Instruction
	extInstImports []Instruction
	memoryModel   Instruction
	entryPoints   []Instruction
	executionModes []Instruction
	debugStrings  []Instruction
	debugNames    []Instruction
	annotations   []Instruction
	typesAndConsts []Instruction
	globalVars    []Instruction
	functions     []Instruction

	nextID ID

	glslExtID ID
	haveCaps  map[Capability]bool
}

// NewModuleBuilder creates an empty builder targeting version, with the
// Logical/GLSL450 memory model already installed (every shader this
// compiler emits uses it).
func NewModuleBuilder(version Version) *ModuleBuilder {
	b := &ModuleBuilder{
		version:  version,
		nextID:   1,
		haveCaps: make(map[Capability]bool),
	}
	b.memoryModel = Instruction{Op: OpMemoryModel, Operands: []uint32{0 /* Logical */, 1 /* GLSL450 */}}
	return b
}

// AllocID hands out a fresh result id.
func (b *ModuleBuilder) AllocID() ID {
	id := b.nextID
	b.nextID++
	return id
}

func (b *ModuleBuilder) AddCapability(c Capability) {
	if b.haveCaps[c] {
		return
	}
	b.haveCaps[c] = true
	b.capabilities = append(b.capabilities, Instruction{Op: OpCapability, Operands: []uint32{uint32(c)}})
}

func (b *ModuleBuilder) AddExtension(name string) {
	var ib InstructionBuilder
	ib.AddString(name)
	b.extensions = append(b.extensions, ib.Build(OpExtension))
}

// GLSLExtImport returns the id of the GLSL.std.450 extended
// instruction set, importing it on first use.
func (b *ModuleBuilder) GLSLExtImport() ID {
	if b.glslExtID != 0 {
		return b.glslExtID
	}
	id := b.AllocID()
	var ib InstructionBuilder
	ib.AddID(id)
	ib.AddString("GLSL.std.450")
	b.extInstImports = append(b.extInstImports, ib.Build(OpExtInstImport))
	b.glslExtID = id
	return id
}

func (b *ModuleBuilder) AddEntryPoint(model ExecutionModel, fn ID, name string, interfaceVars []ID) {
	var ib InstructionBuilder
	ib.AddWord(uint32(model))
	ib.AddID(fn)
	ib.AddString(name)
	for _, v := range interfaceVars {
		ib.AddID(v)
	}
	b.entryPoints = append(b.entryPoints, ib.Build(OpEntryPoint))
}

func (b *ModuleBuilder) AddExecutionMode(fn ID, mode ExecutionMode, extra ...uint32) {
	var ib InstructionBuilder
	ib.AddID(fn)
	ib.AddWord(uint32(mode))
	ib.AddWords(extra...)
	b.executionModes = append(b.executionModes, ib.Build(OpExecutionMode))
}

func (b *ModuleBuilder) AddName(target ID, name string) {
	var ib InstructionBuilder
	ib.AddID(target)
	ib.AddString(name)
	b.debugNames = append(b.debugNames, ib.Build(OpName))
}

func (b *ModuleBuilder) AddMemberName(target ID, member uint32, name string) {
	var ib InstructionBuilder
	ib.AddID(target)
	ib.AddWord(member)
	ib.AddString(name)
	b.debugNames = append(b.debugNames, ib.Build(OpMemberName))
}

func (b *ModuleBuilder) AddDecoration(target ID, dec Decoration, extra ...uint32) {
	var ib InstructionBuilder
	ib.AddID(target)
	ib.AddWord(uint32(dec))
	ib.AddWords(extra...)
	b.annotations = append(b.annotations, ib.Build(OpDecorate))
}

func (b *ModuleBuilder) AddMemberDecoration(target ID, member uint32, dec Decoration, extra ...uint32) {
	var ib InstructionBuilder
	ib.AddID(target)
	ib.AddWord(member)
	ib.AddWord(uint32(dec))
	ib.AddWords(extra...)
	b.annotations = append(b.annotations, ib.Build(OpMemberDecorate))
}

func (b *ModuleBuilder) AddType(instr Instruction) {
	b.typesAndConsts = append(b.typesAndConsts, instr)
}

func (b *ModuleBuilder) AddGlobalVar(instr Instruction) {
	b.globalVars = append(b.globalVars, instr)
}

func (b *ModuleBuilder) AddFunctionInstr(instr Instruction) {
	b.functions = append(b.functions, instr)
}

// Serialize writes the full binary module: the five-word header
// followed by every section in the order mandated above. When
// withHeader is false the header is omitted and the instruction
// stream starts directly at the capability section, for embedding
// into a container that supplies its own header (spec.md §4.7).
func (b *ModuleBuilder) Serialize(withHeader bool) []byte {
	var words []uint32
	if withHeader {
		words = append(words, MagicNumber, b.version.word(), GeneratorID, uint32(b.nextID), 0 /* schema, reserved */)
	}

	appendSection := func(instrs []Instruction) {
		for _, in := range instrs {
			words = append(words, in.Encode()...)
		}
	}
	appendSection(b.capabilities)
	appendSection(b.extensions)
	appendSection(b.extInstImports)
	words = append(words, b.memoryModel.Encode()...)
	appendSection(b.entryPoints)
	appendSection(b.executionModes)
	appendSection(b.debugStrings)
	appendSection(b.debugNames)
	appendSection(b.annotations)
	appendSection(b.typesAndConsts)
	appendSection(b.globalVars)
	appendSection(b.functions)

	var buf bytes.Buffer
	buf.Grow(len(words) * 4)
	for _, w := range words {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], w)
		buf.Write(tmp[:])
	}
	return buf.Bytes()
}

// OpExtension is missing from the OpCode table in spirv.go because it
// is only ever referenced here; declared alongside its single use.
const OpExtension OpCode = 10
