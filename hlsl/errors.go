// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package hlsl

import "fmt"

// ErrKind classifies an emission failure.
type ErrKind uint8

const (
	ErrMissingBinding ErrKind = iota
	ErrNoEntryPoint
	ErrUnsupportedFeature
	ErrInternal
)

// Error is the error type every exported function in this package
// returns, carrying enough context to report a useful diagnostic.
type Error struct {
	Kind    ErrKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("hlsl: %s", e.Message)
}

func missingBinding(name string) *Error {
	return &Error{Kind: ErrMissingBinding, Message: fmt.Sprintf("resource %q has no HLSL register binding and FakeMissingBindings is false", name)}
}

func noEntryPoint(name string) *Error {
	return &Error{Kind: ErrNoEntryPoint, Message: fmt.Sprintf("no entry point %q found", name)}
}
