// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package spirv

import "fmt"

// Error is a SPIR-V emission failure, mirroring the {Kind,Message}
// shape the other two backends use.
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("spirv: %s: %s", e.Kind, e.Message) }

func entryPointNotFound(name string) *Error {
	return &Error{Kind: "entry-point", Message: fmt.Sprintf("no entry point %q found", name)}
}

func unsupported(what string) *Error {
	return &Error{Kind: "unsupported", Message: what}
}
