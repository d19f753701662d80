// Copyright 2025 The ShaderWright Authors
// SPDX-License-Identifier: MIT

package glsl

import "fmt"

// Version identifies a GLSL dialect: desktop GL or GL ES, by profile
// version number.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool
}

// Common target versions.
var (
	Version330  = Version{Major: 3, Minor: 30, ES: false}
	Version420  = Version{Major: 4, Minor: 20, ES: false}
	Version450  = Version{Major: 4, Minor: 50, ES: false}
	VersionES300 = Version{Major: 3, Minor: 0, ES: true}
	VersionES310 = Version{Major: 3, Minor: 10, ES: true}
)

// Directive renders the `#version` line's argument.
func (v Version) Directive() string {
	if v.ES {
		return fmt.Sprintf("%d%02d es", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d%02d core", v.Major, v.Minor)
}

func (v Version) numeric() int { return int(v.Major)*100 + int(v.Minor) }

// SupportsStorageBuffers reports whether v's dialect has SSBOs
// (core GL needs 4.3+, ES needs 3.10+).
func (v Version) SupportsStorageBuffers() bool {
	if v.ES {
		return v.numeric() >= 310
	}
	return v.numeric() >= 430
}

// SupportsCompute mirrors SupportsStorageBuffers: both features landed
// in the same GL/GLES revision.
func (v Version) SupportsCompute() bool { return v.SupportsStorageBuffers() }

// SupportsExplicitUniformLocation reports whether `layout(location = n)`
// is legal on a plain uniform (GL 4.3+/ARB_explicit_uniform_location,
// core in ES 3.10+).
func (v Version) SupportsExplicitUniformLocation() bool {
	if v.ES {
		return v.numeric() >= 310
	}
	return v.numeric() >= 430
}
