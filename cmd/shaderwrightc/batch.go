// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shaderwright/shaderwright"
	"github.com/shaderwright/shaderwright/config"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Compile every [[target]] in a project file for a fixture, one goroutine per target",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().String("config", "", "path to a shaderwright project TOML file (required)")
	batchCmd.Flags().String("fixture", "", "fixture name to compile for every target (required)")
	batchCmd.Flags().String("out-dir", ".", "directory to write each target's output into")
	_ = batchCmd.MarkFlagRequired("config")
	_ = batchCmd.MarkFlagRequired("fixture")
}

// runBatch is the CLI's concrete instance of spec.md §5's "emitters
// are pure functions of their input and may run in parallel on
// distinct shaders": every target compiles its own builder.New()
// shader (via loadFixture), so no two goroutines ever touch the same
// *ir.Shader.
func runBatch(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	fixtureName, _ := cmd.Flags().GetString("fixture")
	outDir, _ := cmd.Flags().GetString("out-dir")

	proj, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	g := new(errgroup.Group)
	for _, target := range proj.Target {
		target := target
		g.Go(func() error {
			shader, err := loadFixture(fixtureName)
			if err != nil {
				return fmt.Errorf("target %s: %w", target.Name, err)
			}

			var (
				data []byte
				text string
			)
			switch target.Backend {
			case "glsl":
				text, _, err = shaderwright.CompileGLSL(shader, target.ResolveGLSL())
			case "hlsl":
				text, _, err = shaderwright.CompileHLSL(shader, target.ResolveHLSL())
			case "spirv":
				data, _, err = shaderwright.CompileSPIRV(shader, target.ResolveSPIRV())
			default:
				return fmt.Errorf("target %s: unknown backend %q", target.Name, target.Backend)
			}
			if err != nil {
				return fmt.Errorf("target %s: %w", target.Name, err)
			}

			outPath := filepath.Join(outDir, outputName(target))
			if data != nil {
				return os.WriteFile(outPath, data, 0o644)
			}
			return os.WriteFile(outPath, []byte(text), 0o644)
		})
	}
	return g.Wait()
}

func outputName(t config.TargetConfig) string {
	ext := map[string]string{"glsl": ".glsl", "hlsl": ".hlsl", "spirv": ".spv"}[t.Backend]
	name := t.Name
	if name == "" {
		name = t.Backend
	}
	return name + ext
}
