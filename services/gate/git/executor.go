// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Executor runs read-only git commands against a single repository.
//
// Thread Safety: Immutable after creation; safe for concurrent use.
type Executor struct {
	// workDir is the directory git commands run in. Empty means the
	// process working directory.
	workDir string
}

// Option configures an Executor.
type Option func(*Executor)

// WithWorkingDir sets the directory git commands run in.
func WithWorkingDir(dir string) Option {
	return func(e *Executor) {
		e.workDir = dir
	}
}

// NewExecutor creates an Executor for the current (or given) directory.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// run executes a git command and returns trimmed stdout.
func (e *Executor) run(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		return "", fmt.Errorf("context is required")
	}
	if _, err := exec.LookPath("git"); err != nil {
		return "", ErrGitNotInstalled
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: git %s: %s", ErrCommandFailed, args[0], msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// RepoRoot returns the absolute path of the repository's top-level directory.
//
// # Outputs
//
//   - string: Absolute repository root path.
//   - error: ErrNotARepository when run outside a work tree.
func (e *Executor) RepoRoot(ctx context.Context) (string, error) {
	out, err := e.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		if strings.Contains(err.Error(), "not a git repository") {
			return "", ErrNotARepository
		}
		return "", err
	}
	return out, nil
}

// GitDir returns the absolute path of the repository's .git directory.
//
// Resolved through git itself so linked worktrees (where .git is a file)
// are handled correctly.
func (e *Executor) GitDir(ctx context.Context) (string, error) {
	out, err := e.run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		if strings.Contains(err.Error(), "not a git repository") {
			return "", ErrNotARepository
		}
		return "", err
	}
	return out, nil
}

// StagedFiles returns the files staged for the next commit.
//
// # Description
//
// Lists added, copied, and modified entries in the index (diff-filter=ACM).
// Deletions are excluded: the gate has nothing to scan for a file that is
// going away. Each entry carries the byte size of its staged blob, which
// is what the commit will contain even when the working-tree copy was
// edited again after staging.
//
// # Outputs
//
//   - []StagedFile: Staged entries, in git's output order. Empty when
//     nothing is staged.
//   - error: Non-nil if git fails.
func (e *Executor) StagedFiles(ctx context.Context) ([]StagedFile, error) {
	out, err := e.run(ctx, "diff", "--cached", "--name-only", "--diff-filter=ACM")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var files []StagedFile
	for _, line := range strings.Split(out, "\n") {
		path := strings.TrimSpace(line)
		if path == "" {
			continue
		}
		sf := StagedFile{Path: path}
		if size, sizeErr := e.stagedBlobSize(ctx, path); sizeErr == nil {
			sf.Size = size
		}
		files = append(files, sf)
	}
	return files, nil
}

// stagedBlobSize returns the byte size of the index (stage 0) blob for
// the given path.
func (e *Executor) stagedBlobSize(ctx context.Context, path string) (int64, error) {
	out, err := e.run(ctx, "cat-file", "-s", ":"+path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(out, 10, 64)
}

// StagedDiff returns the unified diff of the index against HEAD.
//
// The output is the raw `git diff --cached` text, suitable for parsing
// with a unified-diff parser.
func (e *Executor) StagedDiff(ctx context.Context) (string, error) {
	return e.run(ctx, "diff", "--cached")
}

// CommitMessage returns the pending commit message, if one exists.
//
// # Description
//
// Reads COMMIT_EDITMSG from the git directory. This artifact only exists
// after the first commit in a repository, and during a hook run it holds
// the message for the commit in flight. Comment lines (leading '#') and
// surrounding whitespace are stripped before the message is returned.
//
// # Outputs
//
//   - string: The cleaned message. Empty when absent.
//   - bool: True when a COMMIT_EDITMSG artifact exists.
//   - error: Non-nil only on git or read failures.
func (e *Executor) CommitMessage(ctx context.Context) (string, bool, error) {
	gitDir, err := e.GitDir(ctx)
	if err != nil {
		return "", false, err
	}

	msgPath := filepath.Join(gitDir, "COMMIT_EDITMSG")
	data, err := os.ReadFile(msgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read commit message: %w", err)
	}

	return cleanMessage(string(data)), true, nil
}

// cleanMessage strips comment lines and surrounding whitespace from a
// commit message template.
func cleanMessage(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
