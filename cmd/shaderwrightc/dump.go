// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaderwright/shaderwright/spirv"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.spv>",
	Short: "Disassemble a SPIR-V binary module's header and instruction stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	mod, err := spirv.Deserialize(data)
	if err != nil {
		return err
	}
	fmt.Print(mod.Write(true))
	return nil
}
