// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package checks

import "context"

// TestRunner executes the full test suite, the most expensive and highest
// signal gate. It runs last among the hard gates so the cheaper checks
// filter out trivial problems first.
type TestRunner struct {
	workDir string
	args    []string
}

// TestOption configures a TestRunner.
type TestOption func(*TestRunner)

// WithTestArgs replaces the default `./...` test target arguments.
func WithTestArgs(args ...string) TestOption {
	return func(r *TestRunner) {
		if len(args) > 0 {
			r.args = args
		}
	}
}

// NewTestRunner creates a test runner rooted at workDir.
func NewTestRunner(workDir string, opts ...TestOption) *TestRunner {
	r := &TestRunner{
		workDir: workDir,
		args:    []string{"./..."},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes `go test` against the configured target.
//
// # Outputs
//
//   - error: A *CheckError wrapping ErrToolFailed with the failing test
//     output attached when the suite fails; nil when everything passes.
func (r *TestRunner) Run(ctx context.Context) error {
	args := append([]string{"test"}, r.args...)
	result, err := runCommand(ctx, r.workDir, "go", args...)
	if err != nil {
		return NewCheckError("test", "go test", err)
	}
	if result.ExitCode != 0 {
		return NewCheckError("test", "go test", ErrToolFailed).WithOutput(joinOutput(result.Stdout, result.Stderr))
	}
	return nil
}
