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

import (
	"context"
	"errors"
	"time"

	"github.com/AleutianAI/commitgate/services/gate/toolchain"
)

// DefaultLintTimeout bounds one linter invocation. The full-module run on
// a cold cache can be slow; anything past this is treated as a failure
// rather than left to hang the commit.
const DefaultLintTimeout = 5 * time.Minute

// LintResult reports the tri-state outcome of the lint gate:
// ran-and-passed, ran-and-failed, or skipped because the tool is absent.
type LintResult struct {
	// Availability records whether the linter was found on PATH.
	Availability toolchain.Availability

	// Passed is true when the linter ran and reported no issues.
	// Meaningless when Availability is not AvailabilityPresent.
	Passed bool

	// TimedOut is true when the run exceeded the configured timeout.
	TimedOut bool

	// Output is the linter's findings (stdout merged with stderr).
	Output string
}

// Skipped returns true when the gate did not run because the tool is absent.
func (r *LintResult) Skipped() bool {
	return r.Availability == toolchain.AvailabilityAbsent
}

// LintRunner executes the optional static-lint gate.
//
// Thread Safety: Immutable after creation.
type LintRunner struct {
	workDir string
	tool    string
	timeout time.Duration
}

// LintOption configures a LintRunner.
type LintOption func(*LintRunner)

// WithLintTool overrides the linter binary name.
func WithLintTool(tool string) LintOption {
	return func(r *LintRunner) {
		r.tool = tool
	}
}

// WithLintTimeout overrides the time budget for one run.
func WithLintTimeout(d time.Duration) LintOption {
	return func(r *LintRunner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewLintRunner creates a lint runner rooted at workDir.
func NewLintRunner(workDir string, opts ...LintOption) *LintRunner {
	r := &LintRunner{
		workDir: workDir,
		tool:    "golangci-lint",
		timeout: DefaultLintTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tool returns the linter binary name this runner invokes.
func (r *LintRunner) Tool() string {
	return r.tool
}

// Run executes the linter over the whole module with a bounded time budget.
//
// # Description
//
// An absent linter is NOT an error: the result comes back with
// Availability=Absent so the pipeline can emit a skip warning and
// continue (graceful degradation). When the linter is present, a nonzero
// exit or a timeout fails the gate.
//
// # Outputs
//
//   - *LintResult: Tri-state result; never nil on nil error.
//   - error: A *CheckError wrapping ErrLintTimeout or ErrToolFailed when
//     the gate fails. Absence is reported in the result, not the error.
func (r *LintRunner) Run(ctx context.Context) (*LintResult, error) {
	if ctx == nil {
		return nil, NewCheckError("lint", r.tool, ErrInvalidInput)
	}

	if toolchain.Detect(r.tool) == toolchain.AvailabilityAbsent {
		return &LintResult{Availability: toolchain.AvailabilityAbsent}, nil
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := runCommand(runCtx, r.workDir, r.tool, "run", "./...")
	if err != nil {
		lr := &LintResult{Availability: toolchain.AvailabilityPresent}
		if result != nil {
			lr.Output = joinOutput(result.Stdout, result.Stderr)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			lr.TimedOut = true
			return lr, NewCheckError("lint", r.tool, ErrLintTimeout).WithOutput(lr.Output)
		}
		return lr, NewCheckError("lint", r.tool, err)
	}

	lr := &LintResult{
		Availability: toolchain.AvailabilityPresent,
		Passed:       result.ExitCode == 0,
		Output:       joinOutput(result.Stdout, result.Stderr),
	}
	if !lr.Passed {
		return lr, NewCheckError("lint", r.tool, ErrToolFailed).WithOutput(lr.Output)
	}
	return lr, nil
}

// joinOutput merges stdout and stderr, dropping empty halves.
func joinOutput(stdout, stderr string) string {
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	default:
		return stdout + "\n" + stderr
	}
}
