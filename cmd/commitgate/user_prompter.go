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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// UserPrompter asks the user yes/no questions.
//
// Commands that might clobber user state (hook install over an existing
// hook) take a UserPrompter so tests can inject answers and scripts can
// run non-interactively.
type UserPrompter interface {
	// Confirm asks a yes/no question. Only "y"/"yes" (case-insensitive)
	// count as yes.
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// InteractivePrompter reads answers from a terminal.
type InteractivePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewInteractivePrompter creates a prompter on stdin/stdout.
func NewInteractivePrompter() *InteractivePrompter {
	return NewInteractivePrompterWithIO(os.Stdin, os.Stdout)
}

// NewInteractivePrompterWithIO creates a prompter with injected streams.
func NewInteractivePrompterWithIO(r io.Reader, w io.Writer) *InteractivePrompter {
	return &InteractivePrompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Confirm asks the question and reads one line.
func (p *InteractivePrompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if ctx == nil {
		return false, fmt.Errorf("context is required")
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if _, err := fmt.Fprintf(p.writer, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// NonInteractivePrompter answers every question the same way, for
// --force flags and machine personality where no terminal is attached.
type NonInteractivePrompter struct {
	// AssumeYes is the answer given to every prompt.
	AssumeYes bool
}

// Confirm returns the configured answer without blocking.
func (p *NonInteractivePrompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if ctx == nil {
		return false, fmt.Errorf("context is required")
	}
	return p.AssumeYes, nil
}
