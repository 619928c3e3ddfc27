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
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// fakeTool writes an executable shell script that stands in for an
// external tool, and prepends its directory to PATH for the test.
func fakeTool(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts need a POSIX shell")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// =============================================================================
// runCommand
// =============================================================================

func TestRunCommand_NilContext(t *testing.T) {
	_, err := runCommand(nil, "", "true") //nolint:staticcheck
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestRunCommand_ToolNotInstalled(t *testing.T) {
	_, err := runCommand(context.Background(), "", "definitely-not-a-real-binary-name")
	if !errors.Is(err, ErrToolNotInstalled) {
		t.Errorf("error = %v, want ErrToolNotInstalled", err)
	}
}

func TestRunCommand_NonzeroExit(t *testing.T) {
	fakeTool(t, "failing-tool", "echo boom >&2; exit 3")

	result, err := runCommand(context.Background(), "", "failing-tool")
	if err != nil {
		t.Fatalf("nonzero exit should not be an error, got: %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
	if result.Stderr != "boom" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "boom")
	}
}

// =============================================================================
// FormatChecker
// =============================================================================

func TestFormatChecker_Clean(t *testing.T) {
	fakeTool(t, "gofmt", "exit 0")

	result, err := NewFormatChecker("").Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Clean {
		t.Error("Clean = false, want true")
	}
	if len(result.Files) != 0 {
		t.Errorf("Files = %v, want empty", result.Files)
	}
}

func TestFormatChecker_Violations(t *testing.T) {
	fakeTool(t, "gofmt", `printf 'pkg/a.go\npkg/b.go\n'`)

	result, err := NewFormatChecker("").Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Clean {
		t.Error("Clean = true, want false")
	}
	if len(result.Files) != 2 || result.Files[0] != "pkg/a.go" || result.Files[1] != "pkg/b.go" {
		t.Errorf("Files = %v, want [pkg/a.go pkg/b.go]", result.Files)
	}
}

func TestFormatChecker_ToolFailure(t *testing.T) {
	fakeTool(t, "gofmt", "echo 'parse error' >&2; exit 2")

	_, err := NewFormatChecker("").Check(context.Background())
	if !errors.Is(err, ErrToolFailed) {
		t.Errorf("error = %v, want ErrToolFailed", err)
	}

	var checkErr *CheckError
	if !errors.As(err, &checkErr) {
		t.Fatal("expected *CheckError")
	}
	if checkErr.Output != "parse error" {
		t.Errorf("Output = %q", checkErr.Output)
	}
}

// =============================================================================
// LintRunner
// =============================================================================

func TestLintRunner_Defaults(t *testing.T) {
	r := NewLintRunner("/some/dir")
	if r.Tool() != "golangci-lint" {
		t.Errorf("Tool = %q", r.Tool())
	}
	if r.timeout != DefaultLintTimeout {
		t.Errorf("timeout = %v, want %v", r.timeout, DefaultLintTimeout)
	}
}

func TestLintRunner_AbsentIsSkip(t *testing.T) {
	r := NewLintRunner("", WithLintTool("definitely-not-a-real-binary-name"))

	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("absent linter must not error, got: %v", err)
	}
	if !result.Skipped() {
		t.Error("Skipped() = false, want true")
	}
}

func TestLintRunner_Pass(t *testing.T) {
	fakeTool(t, "fakelint", "exit 0")

	r := NewLintRunner("", WithLintTool("fakelint"))
	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Passed {
		t.Error("Passed = false, want true")
	}
	if result.Skipped() {
		t.Error("Skipped() = true, want false")
	}
}

func TestLintRunner_Fail(t *testing.T) {
	fakeTool(t, "fakelint", "echo 'pkg/a.go:1: unused variable'; exit 1")

	r := NewLintRunner("", WithLintTool("fakelint"))
	result, err := r.Run(context.Background())
	if !errors.Is(err, ErrToolFailed) {
		t.Errorf("error = %v, want ErrToolFailed", err)
	}
	if result == nil || result.Passed {
		t.Error("expected failing result")
	}
}

func TestLintRunner_Timeout(t *testing.T) {
	fakeTool(t, "fakelint", "sleep 5")

	r := NewLintRunner("",
		WithLintTool("fakelint"),
		WithLintTimeout(100*time.Millisecond),
	)
	result, err := r.Run(context.Background())
	if !errors.Is(err, ErrLintTimeout) {
		t.Errorf("error = %v, want ErrLintTimeout", err)
	}
	if result == nil || !result.TimedOut {
		t.Error("expected TimedOut result")
	}
}

// =============================================================================
// CheckError
// =============================================================================

func TestCheckError(t *testing.T) {
	err := NewCheckError("vet", "go vet", ErrToolFailed).WithOutput("main.go:10: unreachable code")

	if !errors.Is(err, ErrToolFailed) {
		t.Error("errors.Is(ErrToolFailed) = false")
	}
	msg := err.Error()
	for _, want := range []string{"vet", "go vet", "unreachable code"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q missing %q", msg, want)
		}
	}
}

// =============================================================================
// Integration - only run against the real toolchain
// =============================================================================

func TestVetRunner_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go not installed")
	}

	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module vettest\n\ngo 1.21\n")
	writeFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")

	if err := NewVetRunner(dir).Run(context.Background()); err != nil {
		t.Errorf("vet on clean module: %v", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}
