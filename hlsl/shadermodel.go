// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package hlsl

import "fmt"

// ShaderModel identifies a target HLSL shader model.
type ShaderModel struct {
	Major uint8
	Minor uint8
}

var (
	ShaderModel5_0 = ShaderModel{5, 0}
	ShaderModel5_1 = ShaderModel{5, 1}
	ShaderModel6_0 = ShaderModel{6, 0}
	ShaderModel6_5 = ShaderModel{6, 5}
)

// String renders the `vs_5_1`-style profile suffix, minus the stage
// prefix (the caller prepends "vs_"/"ps_"/"cs_" as needed).
func (m ShaderModel) String() string { return fmt.Sprintf("%d_%d", m.Major, m.Minor) }

func (m ShaderModel) numeric() int { return int(m.Major)*10 + int(m.Minor) }

// SupportsWaveOps reports whether m has wave intrinsics (SM 6.0+).
func (m ShaderModel) SupportsWaveOps() bool { return m.numeric() >= 60 }

// SupportsRayTracing reports whether m has DXR entry points (SM 6.3+).
func (m ShaderModel) SupportsRayTracing() bool { return m.numeric() >= 63 }
