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
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// initTestRepo creates a throwaway repository with one staged file.
func initTestRepo(t *testing.T) (string, *Executor) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	e := NewExecutor(WithWorkingDir(dir))

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init")
	run("config", "user.email", "gate@test.local")
	run("config", "user.name", "gate test")

	return dir, e
}

func TestExecutor_NilContext(t *testing.T) {
	e := NewExecutor()
	if _, err := e.run(nil, "status"); err == nil { //nolint:staticcheck
		t.Error("Expected error for nil context")
	}
}

func TestExecutor_NotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	e := NewExecutor(WithWorkingDir(t.TempDir()))
	_, err := e.RepoRoot(context.Background())
	if err != ErrNotARepository {
		t.Errorf("RepoRoot error = %v, want ErrNotARepository", err)
	}
}

func TestExecutor_StagedFiles(t *testing.T) {
	dir, e := initTestRepo(t)
	ctx := context.Background()

	t.Run("empty index", func(t *testing.T) {
		files, err := e.StagedFiles(ctx)
		if err != nil {
			t.Fatalf("StagedFiles: %v", err)
		}
		if len(files) != 0 {
			t.Errorf("got %d files, want 0", len(files))
		}
	})

	t.Run("staged file with size", func(t *testing.T) {
		content := []byte("package main\n")
		path := filepath.Join(dir, "main.go")
		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		cmd := exec.Command("git", "add", "main.go")
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git add: %v\n%s", err, out)
		}

		files, err := e.StagedFiles(ctx)
		if err != nil {
			t.Fatalf("StagedFiles: %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("got %d files, want 1", len(files))
		}
		if files[0].Path != "main.go" {
			t.Errorf("Path = %q", files[0].Path)
		}
		if files[0].Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", files[0].Size, len(content))
		}
	})

	t.Run("size reflects the staged blob, not the working tree", func(t *testing.T) {
		staged := []byte("package main\n")
		path := filepath.Join(dir, "grown.go")
		if err := os.WriteFile(path, staged, 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		cmd := exec.Command("git", "add", "grown.go")
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git add: %v\n%s", err, out)
		}

		// Grow the working-tree copy after staging. The commit will
		// contain the staged content, so the size must not change.
		grown := append(staged, []byte("func main() {}\n")...)
		if err := os.WriteFile(path, grown, 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		files, err := e.StagedFiles(ctx)
		if err != nil {
			t.Fatalf("StagedFiles: %v", err)
		}
		for _, f := range files {
			if f.Path != "grown.go" {
				continue
			}
			if f.Size != int64(len(staged)) {
				t.Errorf("Size = %d, want staged size %d (working tree is %d)",
					f.Size, len(staged), len(grown))
			}
			return
		}
		t.Fatal("grown.go missing from staged files")
	})
}

func TestExecutor_StagedDiff(t *testing.T) {
	dir, e := initTestRepo(t)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n\n// TODO: fill in\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cmd := exec.Command("git", "add", "a.go")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git add: %v\n%s", err, out)
	}

	diff, err := e.StagedDiff(ctx)
	if err != nil {
		t.Fatalf("StagedDiff: %v", err)
	}
	if diff == "" {
		t.Fatal("expected non-empty diff")
	}
	for _, want := range []string{"a.go", "+// TODO: fill in"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q", want)
		}
	}
}

func TestExecutor_CommitMessage(t *testing.T) {
	dir, e := initTestRepo(t)
	ctx := context.Background()

	t.Run("absent", func(t *testing.T) {
		_, exists, err := e.CommitMessage(ctx)
		if err != nil {
			t.Fatalf("CommitMessage: %v", err)
		}
		if exists {
			t.Error("expected no pending message in a fresh repo")
		}
	})

	t.Run("present with comments stripped", func(t *testing.T) {
		msgPath := filepath.Join(dir, ".git", "COMMIT_EDITMSG")
		raw := "fix the gate\n\n# Please enter the commit message\n# Lines starting with '#' are ignored\n"
		if err := os.WriteFile(msgPath, []byte(raw), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		msg, exists, err := e.CommitMessage(ctx)
		if err != nil {
			t.Fatalf("CommitMessage: %v", err)
		}
		if !exists {
			t.Fatal("expected pending message")
		}
		if msg != "fix the gate" {
			t.Errorf("msg = %q, want %q", msg, "fix the gate")
		}
	})
}

func TestCleanMessage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "add parser\n", "add parser"},
		{"comments only", "# all comments\n# here\n", ""},
		{"mixed", "subject\n\nbody line\n# comment\n", "subject\n\nbody line"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanMessage(tt.raw); got != tt.want {
				t.Errorf("cleanMessage(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
