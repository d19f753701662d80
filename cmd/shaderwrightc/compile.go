// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaderwright/shaderwright"
	"github.com/shaderwright/shaderwright/diag"
	"github.com/shaderwright/shaderwright/glsl"
	"github.com/shaderwright/shaderwright/hlsl"
	"github.com/shaderwright/shaderwright/spirv"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a fixture to GLSL, HLSL, or SPIR-V",
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().String("fixture", "", "fixture name to compile (required)")
	compileCmd.Flags().String("backend", "spirv", "backend: glsl, hlsl, or spirv")
	compileCmd.Flags().String("entry", "main", "entry point function name")
	compileCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	_ = compileCmd.MarkFlagRequired("fixture")
}

func runCompile(cmd *cobra.Command, args []string) error {
	fixtureName, _ := cmd.Flags().GetString("fixture")
	backend, _ := cmd.Flags().GetString("backend")
	entry, _ := cmd.Flags().GetString("entry")
	output, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")

	shader, err := loadFixture(fixtureName)
	if err != nil {
		return err
	}

	var (
		bytesOut []byte
		textOut  string
		diags    []diag.Diagnostic
	)

	switch backend {
	case "glsl":
		opts := glsl.DefaultOptions()
		opts.EntryPoint = entry
		textOut, diags, err = shaderwright.CompileGLSL(shader, opts)
	case "hlsl":
		opts := hlsl.DefaultOptions()
		opts.EntryPoint = entry
		textOut, diags, err = shaderwright.CompileHLSL(shader, opts)
	case "spirv":
		opts := spirv.DefaultOptions()
		opts.EntryPoint = entry
		bytesOut, diags, err = shaderwright.CompileSPIRV(shader, opts)
	default:
		return fmt.Errorf("unknown backend %q (want glsl, hlsl, or spirv)", backend)
	}
	if err != nil {
		return err
	}

	sink := diag.NewSink()
	sink.NoColor = noColor
	sink.Append(diags...)
	sink.Print()

	if output == "" {
		if bytesOut != nil {
			_, err = os.Stdout.Write(bytesOut)
		} else {
			fmt.Print(textOut)
		}
		return err
	}
	if bytesOut != nil {
		return os.WriteFile(output, bytesOut, 0o644)
	}
	return os.WriteFile(output, []byte(textOut), 0o644)
}
