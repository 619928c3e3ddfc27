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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// commandResult captures one external tool invocation.
type commandResult struct {
	// Stdout is the trimmed standard output.
	Stdout string

	// Stderr is the trimmed standard error.
	Stderr string

	// ExitCode is the process exit code (-1 if the process never ran).
	ExitCode int
}

// runCommand executes a tool and captures its output and exit code.
//
// # Description
//
// Shared exec helper for all check runners. The process runs in dir with
// the given context; context cancellation kills it. A nonzero exit is NOT
// returned as an error here — callers decide whether nonzero means
// "check failed" (vet, test) or "violations found" (gofmt -l, which exits
// zero even when it lists files).
//
// # Inputs
//
//   - ctx: Context for cancellation and timeout. Required.
//   - dir: Working directory for the process. Empty means inherit.
//   - name: Tool binary name, resolved on PATH.
//   - args: Tool arguments.
//
// # Outputs
//
//   - *commandResult: Captured output and exit code.
//   - error: ErrInvalidInput, ErrToolNotInstalled, context errors, or
//     start failures. Nonzero exits are reported via ExitCode, not error.
func runCommand(ctx context.Context, dir, name string, args ...string) (*commandResult, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: context is required", ErrInvalidInput)
	}
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotInstalled, name)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &commandResult{
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		ExitCode: 0,
	}

	if err != nil {
		// Prefer the context error: a killed process reports a generic
		// exit failure that would mask the timeout.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}

		result.ExitCode = -1
		return result, fmt.Errorf("%w: %s: %v", ErrToolFailed, name, err)
	}

	return result, nil
}
