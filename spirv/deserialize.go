// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"encoding/binary"
	"fmt"
)

// Module is a decoded SPIR-V binary: its header fields plus the flat
// instruction stream in file order. It does not reconstruct an
// *ir.Shader — going from SPIR-V words back to this compiler's typed,
// arena-based IR would need full control-flow and type reconstruction
// this package does not implement, so Unreconstructed is always true.
// Module exists to support inspection tooling (`shaderwrightc dump`)
// reading a binary a different tool produced.
type Module struct {
	Version        Version
	Generator      uint32
	Bound          uint32
	Instructions   []Instruction
	Unreconstructed bool
}

// Deserialize decodes data's header and instruction stream without
// attempting to rebuild typed IR.
func Deserialize(data []byte) (*Module, error) {
	if len(data) < 20 || len(data)%4 != 0 {
		return nil, &Error{Kind: "decode", Message: "truncated module header"}
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}
	if words[0] != MagicNumber {
		return nil, &Error{Kind: "decode", Message: fmt.Sprintf("bad magic number 0x%08x", words[0])}
	}
	m := &Module{
		Version: Version{
			Major: uint8(words[1] >> 16),
			Minor: uint8(words[1] >> 8),
		},
		Generator:       words[2],
		Bound:           words[3],
		Unreconstructed: true,
	}
	i := 5
	for i < len(words) {
		header := words[i]
		wordCount := int(header >> 16)
		op := OpCode(header & 0xffff)
		if wordCount == 0 || i+wordCount > len(words) {
			return nil, &Error{Kind: "decode", Message: fmt.Sprintf("malformed instruction at word %d", i)}
		}
		m.Instructions = append(m.Instructions, Instruction{Op: op, Operands: append([]uint32(nil), words[i+1:i+wordCount]...)})
		i += wordCount
	}
	return m, nil
}
