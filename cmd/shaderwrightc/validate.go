// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaderwright/shaderwright/ir"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a fixture's IR without emitting any backend",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().String("fixture", "", "fixture name to validate (required)")
	_ = validateCmd.MarkFlagRequired("fixture")
}

func runValidate(cmd *cobra.Command, args []string) error {
	fixtureName, _ := cmd.Flags().GetString("fixture")
	shader, err := loadFixture(fixtureName)
	if err != nil {
		return err
	}

	errs := ir.Validate(shader)
	if len(errs) == 0 {
		fmt.Printf("%s: valid\n", fixtureName)
		return nil
	}
	for _, e := range errs {
		fmt.Printf("%s: %v\n", fixtureName, e)
	}
	return fmt.Errorf("%s: %d validation error(s)", fixtureName, len(errs))
}
