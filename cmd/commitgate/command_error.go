// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"errors"
	"fmt"
)

// CommandError carries a process exit code through cobra's error return.
//
// # Description
//
// Gate commands must exit 0 on pass and 1 on any failure so git honors
// the hook verdict. Run functions return a *CommandError and main maps
// it to the exit code; cobra's own usage errors exit 1 as well.
//
// # Example
//
//	return NewCommandError("run", 1, err)
//
//	var cmdErr *CommandError
//	if errors.As(err, &cmdErr) {
//	    os.Exit(cmdErr.ExitCode)
//	}
type CommandError struct {
	// Command is the subcommand that failed.
	Command string

	// ExitCode is the process exit code to report.
	ExitCode int

	// Wrapped is the underlying error (may be nil for a plain gate fail).
	Wrapped error
}

// Error returns a formatted error message.
func (e *CommandError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Command, e.Wrapped)
	}
	return fmt.Sprintf("%s failed", e.Command)
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As.
func (e *CommandError) Unwrap() error {
	return e.Wrapped
}

// NewCommandError creates a CommandError.
func NewCommandError(command string, exitCode int, wrapped error) *CommandError {
	return &CommandError{
		Command:  command,
		ExitCode: exitCode,
		Wrapped:  wrapped,
	}
}

// ExitCodeOf extracts the exit code from an error chain. Errors that do
// not carry one exit 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return 1
}
