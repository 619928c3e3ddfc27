// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package checks implements the hard-gate validation stages: manifest
// normalization, formatting, lint, vet, and the test suite. Each runner
// shells out to one external tool and reports its result; ordering and
// fail-fast policy live in the pipeline package.
package checks

import (
	"errors"
	"fmt"
)

// Sentinel errors for the checks package.
var (
	// ErrToolNotInstalled indicates the check's binary was not found in PATH.
	ErrToolNotInstalled = errors.New("tool not installed")

	// ErrToolFailed indicates the check's process exited nonzero.
	ErrToolFailed = errors.New("tool execution failed")

	// ErrLintTimeout indicates the linter exceeded its configured timeout.
	ErrLintTimeout = errors.New("linter timeout")

	// ErrFormatViolations indicates the formatter reported non-conforming files.
	ErrFormatViolations = errors.New("formatting violations")

	// ErrInvalidInput indicates invalid input to a check function.
	ErrInvalidInput = errors.New("invalid input")
)

// CheckError wraps a failure from a specific check with context.
//
// Thread Safety: Immutable after creation.
type CheckError struct {
	// Check is the name of the check that failed (e.g., "vet").
	Check string

	// Tool is the binary that was invoked (e.g., "go").
	Tool string

	// Err is the underlying error.
	Err error

	// Output contains any stderr output from the tool.
	Output string
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s (%s): %v: %s", e.Check, e.Tool, e.Err, e.Output)
	}
	return fmt.Sprintf("%s (%s): %v", e.Check, e.Tool, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CheckError) Unwrap() error {
	return e.Err
}

// NewCheckError creates a CheckError for the given check and tool.
func NewCheckError(check, tool string, err error) *CheckError {
	return &CheckError{
		Check: check,
		Tool:  tool,
		Err:   err,
	}
}

// WithOutput returns a copy of the error with the output field set.
//
// Useful for capturing tool stderr for the remediation hint.
func (e *CheckError) WithOutput(output string) *CheckError {
	return &CheckError{
		Check:  e.Check,
		Tool:   e.Tool,
		Err:    e.Err,
		Output: output,
	}
}
