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
	"strings"
)

// FormatResult reports the outcome of the formatting gate.
type FormatResult struct {
	// Clean is true when no file deviates from canonical formatting.
	Clean bool

	// Files lists the non-conforming files, relative to the work dir.
	Files []string
}

// FormatChecker runs the formatter in list-only mode.
//
// The checker never rewrites files: formatting on commit must be an
// explicit author action (`gofmt -w`), not a silent rewrite by the hook.
type FormatChecker struct {
	workDir string
	tool    string
}

// NewFormatChecker creates a format checker rooted at workDir.
func NewFormatChecker(workDir string) *FormatChecker {
	return &FormatChecker{
		workDir: workDir,
		tool:    "gofmt",
	}
}

// Check lists files whose formatting deviates from gofmt output.
//
// # Description
//
// Invokes `gofmt -l .`, which prints one path per non-conforming file and
// exits zero either way. A nonzero exit therefore always means the tool
// itself failed (e.g., unparseable source), not that violations exist.
//
// # Outputs
//
//   - *FormatResult: Clean=false with the file list when violations exist.
//   - error: A *CheckError when gofmt itself fails; nil for violations.
func (f *FormatChecker) Check(ctx context.Context) (*FormatResult, error) {
	result, err := runCommand(ctx, f.workDir, f.tool, "-l", ".")
	if err != nil {
		return nil, NewCheckError("format", f.tool, err)
	}
	if result.ExitCode != 0 {
		return nil, NewCheckError("format", f.tool, ErrToolFailed).WithOutput(result.Stderr)
	}

	if result.Stdout == "" {
		return &FormatResult{Clean: true}, nil
	}

	var files []string
	for _, line := range strings.Split(result.Stdout, "\n") {
		if path := strings.TrimSpace(line); path != "" {
			files = append(files, path)
		}
	}
	return &FormatResult{Clean: len(files) == 0, Files: files}, nil
}
