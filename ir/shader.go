// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package ir

// Shader is the single owner of every cache, registry, and arena a
// built shader needs: types, expressions, statements, and variables.
// A Shader and everything reachable from it is non-shared (spec.md
// §5): concurrent mutation of one Shader from two goroutines is
// undefined, but two distinct Shaders may be built/transformed/emitted
// concurrently.
type Shader struct {
	Types *TypeCache
	Exprs *ExprCache
	Stmts *StmtCache

	block *ShaderAllocatorBlock

	variables  []Variable
	byName     map[string]VarID
	nextVarID  VarID

	// Root is the StmtContainer the whole shader tree hangs from.
	Root StmtHandle

	// Locations records, per entry point name, the set of in/out
	// locations already claimed, so registerInput/registerOutput can
	// detect collisions (spec.md §4.2, §9 open question b).
	Locations map[string]map[uint32]VarID

	// EntryPoints lists every function Variable flagged FnEntryPoint,
	// in registration order.
	EntryPoints []VarID

	Diagnostics []Diagnostic
}

// NewShader creates an empty shader with a fresh Root container.
func NewShader() *Shader {
	block := NewShaderAllocatorBlock()
	s := &Shader{
		Types:     NewTypeCache(),
		Exprs:     NewExprCache(block),
		Stmts:     NewStmtCache(block),
		block:     block,
		byName:    make(map[string]VarID, 16),
		nextVarID: 1,
		Locations: make(map[string]map[uint32]VarID),
	}
	s.Root = s.Stmts.New(StmtContainer{})
	return s
}

// Diagnostic is a non-fatal observation recorded during building or
// transforming a shader (spec.md §9 open question b: duplicate
// input/output locations are "flagged through a diagnostic sink"
// rather than silently accepted).
type Diagnostic struct {
	Severity DiagnosticSeverity
	Message  string
}

// DiagnosticSeverity classifies a Diagnostic.
type DiagnosticSeverity uint8

const (
	SeverityInfo DiagnosticSeverity = iota
	SeverityWarning
)

// Warn records a warning-level diagnostic.
func (s *Shader) Warn(msg string) {
	s.Diagnostics = append(s.Diagnostics, Diagnostic{Severity: SeverityWarning, Message: msg})
}

// AllocVarID hands out the next free variable id. The counter lives on
// the shader, per spec.md §3.
func (s *Shader) AllocVarID() VarID {
	id := s.nextVarID
	s.nextVarID++
	return id
}

// NextVarID returns the id that AllocVarID would hand out next,
// without consuming it. Transforms that need to know the pre-SSA id
// ceiling (e.g. to decide whether a variable id was introduced by
// TransformSSA) read this before running.
func (s *Shader) NextVarID() VarID { return s.nextVarID }

// DefineVariable installs v in the variable table, keyed by both id and
// name. Panics if a variable with the same name already exists with a
// different type — an invariant violation per spec.md §4.1/§4.2.
func (s *Shader) DefineVariable(v Variable) VarID {
	if existing, ok := s.byName[v.Name]; ok {
		prior := s.MustVar(existing)
		if prior.Type != v.Type {
			panic("ir: redeclaration of '" + v.Name + "' with a different type")
		}
		return existing
	}
	for VarID(len(s.variables)) < v.ID {
		s.variables = append(s.variables, Variable{})
	}
	if int(v.ID) == len(s.variables) {
		s.variables = append(s.variables, v)
	} else {
		s.variables[v.ID] = v
	}
	s.byName[v.Name] = v.ID
	return v.ID
}

// MustVar returns the Variable with the given id, panicking if unknown
// (spec.md §4.2: "getVar ... not found -> fatal").
func (s *Shader) MustVar(id VarID) Variable {
	if int(id) >= len(s.variables) || id == 0 {
		panic("ir: unknown variable id")
	}
	return s.variables[id]
}

// LookupByName returns the Variable registered under name, if any.
func (s *Shader) LookupByName(name string) (Variable, bool) {
	id, ok := s.byName[name]
	if !ok {
		return Variable{}, false
	}
	return s.variables[id], true
}

// Variables returns every defined variable, indexed by VarID (index 0
// is always the zero Variable; ids start at 1).
func (s *Shader) Variables() []Variable { return s.variables }

// SetVar overwrites the stored Variable for id in place; used by
// TransformSSA to rename variables without changing their slot.
func (s *Shader) SetVar(id VarID, v Variable) {
	s.variables[id] = v
}

// Clone produces a deep-enough copy of the shader for a transform stage
// to rewrite without mutating the input (spec.md §4.4: "Each transform
// produces a fresh tree owned by a fresh cache; the input tree is not
// mutated."). Types are not deep-copied since the TypeCache's contract
// (shared, append-only handles) makes aliasing safe.
func (s *Shader) Clone() *Shader {
	block := &ShaderAllocatorBlock{
		exprs: append([]Expr(nil), s.block.exprs...),
		stmts: append([]Stmt(nil), s.block.stmts...),
	}
	vars := append([]Variable(nil), s.variables...)
	byName := make(map[string]VarID, len(s.byName))
	for k, v := range s.byName {
		byName[k] = v
	}
	locs := make(map[string]map[uint32]VarID, len(s.Locations))
	for k, m := range s.Locations {
		cp := make(map[uint32]VarID, len(m))
		for kk, vv := range m {
			cp[kk] = vv
		}
		locs[k] = cp
	}
	return &Shader{
		Types:       s.Types,
		Exprs:       NewExprCache(block),
		Stmts:       NewStmtCache(block),
		block:       block,
		variables:   vars,
		byName:      byName,
		nextVarID:   s.nextVarID,
		Root:        s.Root,
		Locations:   locs,
		EntryPoints: append([]VarID(nil), s.EntryPoints...),
		Diagnostics: append([]Diagnostic(nil), s.Diagnostics...),
	}
}
