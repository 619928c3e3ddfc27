// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package git provides read-only access to the repository state the gate
// inspects: the staged file set, the staged diff, and the pending commit
// message. All operations shell out to the git binary; nothing in this
// package mutates the working tree or the index.
package git

import "errors"

// Sentinel errors for the git package.
var (
	// ErrGitNotInstalled indicates the git binary was not found in PATH.
	ErrGitNotInstalled = errors.New("git not installed")

	// ErrNotARepository indicates the working directory is not inside a git work tree.
	ErrNotARepository = errors.New("not a git repository")

	// ErrCommandFailed indicates a git invocation exited nonzero.
	ErrCommandFailed = errors.New("git command failed")
)

// StagedFile describes one file in the index that the next commit would touch.
type StagedFile struct {
	// Path is the file path relative to the repository root.
	Path string

	// Size is the byte size of the working-tree copy of the file.
	// Zero for files that no longer exist on disk.
	Size int64
}
