// Command shaderwrightc is the shaderwright shader compiler CLI.
//
// Usage:
//
//	shaderwrightc compile --fixture solid-fragment --backend glsl
//	shaderwrightc validate --fixture solid-vertex
//	shaderwrightc dump module.spv
//	shaderwrightc batch --config project.toml --fixture solid-fragment
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shaderwrightc",
	Short: "shaderwright shader compiler CLI",
	Long:  "shaderwrightc drives the shaderwright IR builder and its GLSL/HLSL/SPIR-V backends.",
}

const cliVersion = "0.1.0-dev"

func main() {
	rootCmd.Version = cliVersion

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(batchCmd)

	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored diagnostic output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
