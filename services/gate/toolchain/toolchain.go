// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package toolchain verifies the environment preconditions of a gate run:
// the project marker (a parseable go.mod at the repository root) and the
// external tools the hard gates shell out to.
package toolchain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// Sentinel errors for the toolchain package.
var (
	// ErrMarkerMissing indicates no go.mod exists at the repository root.
	ErrMarkerMissing = errors.New("project marker go.mod not found")

	// ErrMarkerInvalid indicates go.mod exists but could not be parsed.
	ErrMarkerInvalid = errors.New("project marker go.mod is invalid")

	// ErrToolMissing indicates a required tool is not resolvable on PATH.
	ErrToolMissing = errors.New("required tool not found")
)

// Availability is the tri-state presence of an external tool.
//
// Optional tools (the linter) are modeled with all three states so the
// report can distinguish "ran and passed" from "skipped because absent".
type Availability int

const (
	// AvailabilityUnknown means no detection has been performed.
	AvailabilityUnknown Availability = iota

	// AvailabilityPresent means the tool resolved on PATH.
	AvailabilityPresent

	// AvailabilityAbsent means the tool did not resolve on PATH.
	AvailabilityAbsent
)

// String returns the human-readable name of the availability state.
func (a Availability) String() string {
	switch a {
	case AvailabilityPresent:
		return "present"
	case AvailabilityAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// Detect resolves a tool on PATH and returns its availability.
func Detect(tool string) Availability {
	if _, err := exec.LookPath(tool); err != nil {
		return AvailabilityAbsent
	}
	return AvailabilityPresent
}

// Checker validates gate preconditions for one repository root.
//
// Thread Safety: Immutable after creation.
type Checker struct {
	// root is the repository root directory.
	root string

	// requiredTools must resolve on PATH for the gate to run at all.
	requiredTools []string
}

// Option configures a Checker.
type Option func(*Checker)

// WithRequiredTools overrides the default required tool set.
func WithRequiredTools(tools ...string) Option {
	return func(c *Checker) {
		c.requiredTools = tools
	}
}

// NewChecker creates a Checker for the given repository root.
//
// By default the only required tool is the go toolchain itself; the
// formatter, vet, and test gates are all subcommands of it.
func NewChecker(root string, opts ...Option) *Checker {
	c := &Checker{
		root:          root,
		requiredTools: []string{"go"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check verifies all preconditions, failing on the first violation.
//
// # Description
//
// Verifies the project marker (go.mod present and parseable) and every
// required tool, in that order. The first violation is returned and no
// later check runs; the gate must stop before any stage with side effects.
//
// # Outputs
//
//   - string: The module path declared in go.mod, for reporting.
//   - error: ErrMarkerMissing, ErrMarkerInvalid, or ErrToolMissing
//     (wrapped with the offending detail); nil when all preconditions hold.
func (c *Checker) Check() (string, error) {
	modPath, err := c.ModulePath()
	if err != nil {
		return "", err
	}

	for _, tool := range c.requiredTools {
		if Detect(tool) != AvailabilityPresent {
			return "", fmt.Errorf("%w: %s", ErrToolMissing, tool)
		}
	}

	return modPath, nil
}

// ModulePath parses go.mod at the root and returns the declared module path.
func (c *Checker) ModulePath() (string, error) {
	markerPath := filepath.Join(c.root, "go.mod")

	data, err := os.ReadFile(markerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrMarkerMissing, markerPath)
		}
		return "", fmt.Errorf("read %s: %w", markerPath, err)
	}

	mf, err := modfile.Parse(markerPath, data, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkerInvalid, err)
	}
	if mf.Module == nil || mf.Module.Mod.Path == "" {
		return "", fmt.Errorf("%w: missing module directive", ErrMarkerInvalid)
	}

	return mf.Module.Mod.Path, nil
}
