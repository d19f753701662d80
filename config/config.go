// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

// Package config loads a TOML project file describing a named list of
// compile targets, for the CLI's -config flag. It is additive to the
// in-process glsl.Options/hlsl.Options/spirv.Options structs: this
// package only fills those in from a file, it never replaces the
// library caller's ability to build them by hand.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/shaderwright/shaderwright/glsl"
	"github.com/shaderwright/shaderwright/hlsl"
	"github.com/shaderwright/shaderwright/ir"
	"github.com/shaderwright/shaderwright/spirv"
)

// Project is the decoded form of a shaderwright.toml project file.
type Project struct {
	Package PackageConfig `toml:"package"`
	Target  []TargetConfig `toml:"target"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// TargetConfig describes one compile target: which backend to emit,
// which entry point/stage to pick, and backend-specific knobs. Only
// the fields relevant to Backend are read by ResolveSPIRV/ResolveGLSL/
// ResolveHLSL; the others are ignored.
type TargetConfig struct {
	Name       string `toml:"name"`
	Backend    string `toml:"backend"`     // "glsl", "hlsl", or "spirv"
	EntryPoint string `toml:"entry_point"`
	Stage      string `toml:"stage"` // "vertex", "fragment", "compute", ...

	// GLSL
	GLSLVersion string `toml:"glsl_version"` // e.g. "450", "es310"

	// HLSL
	ShaderModel         string `toml:"shader_model"` // e.g. "5.1", "6.0"
	FakeMissingBindings bool   `toml:"fake_missing_bindings"`

	// SPIR-V
	SPIRVVersion string `toml:"spirv_version"` // e.g. "1.3"
	Debug        bool   `toml:"debug"`
	// NoHeader omits the five-word SPIR-V module header, for targets
	// that embed the instruction stream into another container.
	NoHeader bool `toml:"no_header"`
}

// Load reads and decodes a TOML project file at path.
func Load(path string) (*Project, error) {
	var proj Project
	meta, err := toml.DecodeFile(path, &proj)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") || strings.TrimSpace(proj.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if len(proj.Target) == 0 {
		return nil, fmt.Errorf("%s: no [[target]] entries", path)
	}
	for i, t := range proj.Target {
		switch t.Backend {
		case "glsl", "hlsl", "spirv":
		default:
			return nil, fmt.Errorf("%s: target %d: unknown backend %q", path, i, t.Backend)
		}
	}
	return &proj, nil
}

func stageFromString(s string) ir.ShaderStage {
	switch s {
	case "vertex":
		return ir.StageVertex
	case "fragment":
		return ir.StageFragment
	case "compute":
		return ir.StageCompute
	case "geometry":
		return ir.StageGeometry
	case "tessControl":
		return ir.StageTessControl
	case "tessEval":
		return ir.StageTessEvaluation
	default:
		return ir.StageVertex
	}
}

// ResolveGLSL builds glsl.Options from t, layering onto glsl's own
// defaults for anything the TOML file left blank.
func (t TargetConfig) ResolveGLSL() glsl.Options {
	opts := glsl.DefaultOptions()
	opts.EntryPoint = t.EntryPoint
	if t.Stage != "" {
		opts.Stage = stageFromString(t.Stage)
	}
	if v, ok := parseGLSLVersion(t.GLSLVersion); ok {
		opts.Version = v
	}
	return opts
}

// parseGLSLVersion accepts the handful of dialect spellings a project
// file is likely to name: "330", "420", "450", "es300", "es310".
func parseGLSLVersion(s string) (glsl.Version, bool) {
	switch s {
	case "330":
		return glsl.Version330, true
	case "420":
		return glsl.Version420, true
	case "450":
		return glsl.Version450, true
	case "es300":
		return glsl.VersionES300, true
	case "es310":
		return glsl.VersionES310, true
	default:
		return glsl.Version{}, false
	}
}

// ResolveHLSL builds hlsl.Options from t.
func (t TargetConfig) ResolveHLSL() hlsl.Options {
	opts := hlsl.DefaultOptions()
	opts.EntryPoint = t.EntryPoint
	if t.Stage != "" {
		opts.Stage = stageFromString(t.Stage)
	}
	if sm, ok := parseShaderModel(t.ShaderModel); ok {
		opts.ShaderModel = sm
	}
	opts.FakeMissingBindings = t.FakeMissingBindings
	return opts
}

func parseShaderModel(s string) (hlsl.ShaderModel, bool) {
	switch s {
	case "5.0":
		return hlsl.ShaderModel5_0, true
	case "5.1":
		return hlsl.ShaderModel5_1, true
	case "6.0":
		return hlsl.ShaderModel6_0, true
	case "6.5":
		return hlsl.ShaderModel6_5, true
	default:
		return hlsl.ShaderModel{}, false
	}
}

// ResolveSPIRV builds spirv.Options from t.
func (t TargetConfig) ResolveSPIRV() spirv.Options {
	opts := spirv.DefaultOptions()
	opts.EntryPoint = t.EntryPoint
	opts.Debug = t.Debug
	opts.WriteHeader = !t.NoHeader
	switch t.SPIRVVersion {
	case "1.0":
		opts.Version = spirv.Version1_0
	case "1.5":
		opts.Version = spirv.Version1_5
	case "1.6":
		opts.Version = spirv.Version1_6
	case "1.3", "":
		opts.Version = spirv.Version1_3
	}
	return opts
}
