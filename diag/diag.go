// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

// Package diag renders build diagnostics to the console and carries the
// panic type the public API's three compile entry points recover from.
package diag

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/shaderwright/shaderwright/ir"
)

var (
	errorBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorFG = pterm.FgRed
	warnBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warnFG  = pterm.FgYellow
	infoBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	infoFG  = pterm.FgLightGreen
)

// Severity mirrors ir.DiagnosticSeverity but adds the Error level the
// IR itself never produces (build-time faults the ir package cannot
// see, such as a missing entry point or a binding collision across
// shaders in a batch).
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Diagnostic is one reportable event: a build warning, an IR-level
// warning promoted from ir.Diagnostic, or a hard error.
type Diagnostic struct {
	Severity Severity
	Tag      string // shader/file name, empty if not applicable
	Message  string
}

// Fault is the panic value the root package's three Compile* entry
// points recover from at their boundary (spec.md's "building must not
// let an invariant violation escape as a raw panic across the public
// API" requirement carried into SPEC_FULL.md's ambient error-handling
// section).
type Fault struct {
	Stage   string
	Message string
}

func (f *Fault) Error() string { return fmt.Sprintf("shaderwright: %s: %s", f.Stage, f.Message) }

// Raise panics with a *Fault, the only sanctioned way to abort a build
// from deep inside the builder/transform/emitter call stack.
func Raise(stage, format string, args ...any) {
	panic(&Fault{Stage: stage, Message: fmt.Sprintf(format, args...)})
}

// Recover turns a recovered panic value into an error: a *Fault is
// returned as-is, anything else (a genuine programming-error panic) is
// wrapped so it still surfaces as an error rather than crashing the
// caller's process.
func Recover(r any) error {
	if r == nil {
		return nil
	}
	if f, ok := r.(*Fault); ok {
		return f
	}
	return fmt.Errorf("shaderwright: unrecovered panic: %v", r)
}

// Sink accumulates diagnostics across one build (one shader, or one
// batch of shaders compiled together).
type Sink struct {
	entries []Diagnostic
	NoColor bool // set from the CLI's -no-color flag; Print falls back to plain text
}

func NewSink() *Sink { return &Sink{} }

func (s *Sink) Error(tag, format string, args ...any) {
	s.entries = append(s.entries, Diagnostic{Severity: SeverityError, Tag: tag, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) Warn(tag, format string, args ...any) {
	s.entries = append(s.entries, Diagnostic{Severity: SeverityWarning, Tag: tag, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) Info(tag, format string, args ...any) {
	s.entries = append(s.entries, Diagnostic{Severity: SeverityInfo, Tag: tag, Message: fmt.Sprintf(format, args...)})
}

// AdoptIR copies every ir.Diagnostic off a built shader into the sink,
// tagged with tag (typically the shader or entry-point name).
func (s *Sink) AdoptIR(tag string, diags []ir.Diagnostic) {
	for _, d := range diags {
		sev := SeverityInfo
		if d.Severity == ir.SeverityWarning {
			sev = SeverityWarning
		}
		s.entries = append(s.entries, Diagnostic{Severity: sev, Tag: tag, Message: d.Message})
	}
}

// Append adds pre-built Diagnostic values directly, e.g. the ones a
// public API call already handed back to the caller.
func (s *Sink) Append(entries ...Diagnostic) {
	s.entries = append(s.entries, entries...)
}

func (s *Sink) Entries() []Diagnostic { return s.entries }

func (s *Sink) ErrorCount() int   { return s.countAt(SeverityError) }
func (s *Sink) WarningCount() int { return s.countAt(SeverityWarning) }

func (s *Sink) countAt(sev Severity) int {
	n := 0
	for _, e := range s.entries {
		if e.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any entry reached error severity.
func (s *Sink) HasErrors() bool { return s.ErrorCount() > 0 }

// PrintTag prints a colored [SEVERITY] tag followed by msg, following
// the banner-tag-then-color-text layout the pack's pterm-based compiler
// front ends use.
func PrintTag(sev Severity, tag, msg string) {
	switch sev {
	case SeverityError:
		errorBG.Print(" " + tag + " ")
		errorFG.Println(" " + msg)
	case SeverityWarning:
		warnBG.Print(" " + tag + " ")
		warnFG.Println(" " + msg)
	default:
		infoBG.Print(" " + tag + " ")
		infoFG.Println(" " + msg)
	}
}

// Print renders every entry in s in order. When NoColor is set it
// prints plain uncolored lines through fmt.Println instead of pterm's
// styled boxes, for CI logs and redirected output.
func (s *Sink) Print() {
	for _, e := range s.entries {
		label := "INFO"
		switch e.Severity {
		case SeverityError:
			label = "ERROR"
		case SeverityWarning:
			label = "WARN"
		}
		if e.Tag != "" {
			label = label + " " + e.Tag
		}
		if s.NoColor {
			fmt.Println(label + ": " + e.Message)
			continue
		}
		PrintTag(e.Severity, label, e.Message)
	}
}

// Summary prints a one-line build summary, colored red/green by
// whether any error occurred — the fatih/color fallback path for
// terminals/CI logs where pterm's styled boxes are undesirable.
func (s *Sink) Summary() string {
	errs, warns := s.ErrorCount(), s.WarningCount()
	if errs > 0 {
		return color.RedString("build failed: %d error(s), %d warning(s)", errs, warns)
	}
	if warns > 0 {
		return color.YellowString("build succeeded with %d warning(s)", warns)
	}
	return color.GreenString("build succeeded")
}
