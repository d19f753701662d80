// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package diag

import (
	"testing"

	"github.com/shaderwright/shaderwright/ir"
)

func TestSinkCountsBySeverity(t *testing.T) {
	s := NewSink()
	s.Info("a", "built ok")
	s.Warn("b", "unused variable %s", "x")
	s.Error("c", "missing entry point")
	s.Error("d", "binding collision")

	if got := s.ErrorCount(); got != 2 {
		t.Errorf("ErrorCount() = %d, want 2", got)
	}
	if got := s.WarningCount(); got != 1 {
		t.Errorf("WarningCount() = %d, want 1", got)
	}
	if !s.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
	if len(s.Entries()) != 4 {
		t.Errorf("Entries() has %d entries, want 4", len(s.Entries()))
	}
}

func TestSinkHasErrorsFalseWithoutErrors(t *testing.T) {
	s := NewSink()
	s.Info("a", "fine")
	s.Warn("a", "minor")
	if s.HasErrors() {
		t.Error("HasErrors() = true, want false")
	}
}

func TestSinkAdoptIRMapsWarningSeverity(t *testing.T) {
	s := NewSink()
	s.AdoptIR("shader.shader", []ir.Diagnostic{
		{Severity: ir.SeverityWarning, Message: "unused local"},
		{Severity: ir.SeverityInfo, Message: "inlined call"},
	})

	if got := s.WarningCount(); got != 1 {
		t.Errorf("WarningCount() = %d, want 1", got)
	}
	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() has %d entries, want 2", len(entries))
	}
	if entries[0].Tag != "shader.shader" || entries[1].Tag != "shader.shader" {
		t.Errorf("adopted entries not tagged with the given tag: %+v", entries)
	}
}

func TestSinkAppend(t *testing.T) {
	s := NewSink()
	s.Append(Diagnostic{Severity: SeverityError, Tag: "x", Message: "boom"})
	if !s.HasErrors() {
		t.Error("HasErrors() = false after Append of an error-severity entry")
	}
}

// Raise/Recover round-trip (spec.md's "an invariant violation must not
// escape as a raw panic" requirement): a *Fault raised deep in the
// call stack recovers as a plain error describing the stage and
// message, and a non-Fault panic still recovers into an error rather
// than propagating.
func TestRaiseRecoverRoundTrip(t *testing.T) {
	err := func() (err error) {
		defer func() { err = Recover(recover()) }()
		Raise("transform", "bad handle %d", 7)
		return nil
	}()

	if err == nil {
		t.Fatal("Recover(recover()) = nil, want a non-nil error")
	}
	fault, ok := err.(*Fault)
	if !ok {
		t.Fatalf("recovered error is %T, want *Fault", err)
	}
	if fault.Stage != "transform" {
		t.Errorf("fault.Stage = %q, want %q", fault.Stage, "transform")
	}
	want := "shaderwright: transform: bad handle 7"
	if fault.Error() != want {
		t.Errorf("fault.Error() = %q, want %q", fault.Error(), want)
	}
}

func TestRecoverWrapsNonFaultPanic(t *testing.T) {
	err := func() (err error) {
		defer func() { err = Recover(recover()) }()
		panic("unexpected nil pointer")
	}()

	if err == nil {
		t.Fatal("Recover(recover()) = nil, want a non-nil error")
	}
	if _, ok := err.(*Fault); ok {
		t.Fatal("a bare string panic recovered as *Fault, want a wrapped generic error")
	}
}

func TestRecoverOfNilIsNil(t *testing.T) {
	if err := Recover(nil); err != nil {
		t.Errorf("Recover(nil) = %v, want nil", err)
	}
}
