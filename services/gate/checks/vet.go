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

// VetRunner executes the static-analysis gate over the whole module tree.
type VetRunner struct {
	workDir string
}

// NewVetRunner creates a vet runner rooted at workDir.
func NewVetRunner(workDir string) *VetRunner {
	return &VetRunner{workDir: workDir}
}

// Run executes `go vet ./...`.
//
// # Outputs
//
//   - error: A *CheckError wrapping ErrToolFailed with vet's findings
//     attached when any diagnostic is reported; nil on a clean pass.
func (v *VetRunner) Run(ctx context.Context) error {
	result, err := runCommand(ctx, v.workDir, "go", "vet", "./...")
	if err != nil {
		return NewCheckError("vet", "go vet", err)
	}
	if result.ExitCode != 0 {
		// vet writes findings to stderr
		return NewCheckError("vet", "go vet", ErrToolFailed).WithOutput(result.Stderr)
	}
	return nil
}
