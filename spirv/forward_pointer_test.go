// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"testing"

	"github.com/shaderwright/shaderwright/ir"
)

// A struct with a pointer-to-self member can't resolve its pointee's
// id while the struct is still being built; the registry must break
// the cycle with OpTypeForwardPointer (spec.md §4.7, design note
// §9(a)) and complete it with a real OpTypePointer once the struct id
// is known, rather than recursing forever.
func TestTypeRegistryBreaksSelfReferencingStructCycle(t *testing.T) {
	shader := ir.NewShader()
	node := shader.Types.GetStruct(ir.LayoutC, "Node", ir.StructPlain)
	i32 := shader.Types.GetBasic(ir.ScalarType{Kind: ir.ScalarI32})
	nextPtr := shader.Types.GetPointer(node, ir.StorageFunction, false)
	shader.Types.DeclareMember(node, ir.StructMember{Type: i32, Name: "value"})
	shader.Types.DeclareMember(node, ir.StructMember{Type: nextPtr, Name: "next"})

	mod := NewModuleBuilder(Version1_3)
	reg := NewTypeRegistry(shader, mod, false)

	id := reg.IDFor(node)
	if id == 0 {
		t.Fatal("IDFor(node) returned the zero id")
	}

	var sawForward, sawPointer bool
	for _, instr := range mod.typesAndConsts {
		switch instr.Op {
		case OpTypeForwardPointer:
			sawForward = true
		case OpTypePointer:
			sawPointer = true
		}
	}
	if !sawForward {
		t.Error("no OpTypeForwardPointer emitted for the self-referencing member")
	}
	if !sawPointer {
		t.Error("no completing OpTypePointer emitted once the struct id was known")
	}
}
