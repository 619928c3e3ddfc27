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

// ManifestNormalizer reconciles the dependency manifest with the module's
// actual import graph via `go mod tidy`.
//
// This is the only gate stage that mutates repository state. The rewrite
// is idempotent: re-running it on an already-tidy module is a no-op, so
// no rollback handling is needed on later stage failures.
type ManifestNormalizer struct {
	workDir string
}

// NewManifestNormalizer creates a normalizer rooted at workDir.
func NewManifestNormalizer(workDir string) *ManifestNormalizer {
	return &ManifestNormalizer{workDir: workDir}
}

// Normalize runs `go mod tidy`, rewriting go.mod/go.sum on disk as needed.
//
// # Outputs
//
//   - error: A *CheckError wrapping ErrToolFailed when tidy exits nonzero,
//     with the tool's stderr attached as the remediation hint.
func (n *ManifestNormalizer) Normalize(ctx context.Context) error {
	result, err := runCommand(ctx, n.workDir, "go", "mod", "tidy")
	if err != nil {
		return NewCheckError("manifest", "go mod tidy", err)
	}
	if result.ExitCode != 0 {
		return NewCheckError("manifest", "go mod tidy", ErrToolFailed).WithOutput(result.Stderr)
	}
	return nil
}
