// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Lint.Tool != "golangci-lint" {
		t.Errorf("Lint.Tool = %q", cfg.Lint.Tool)
	}
	if cfg.Lint.TimeoutSeconds != 300 {
		t.Errorf("Lint.TimeoutSeconds = %d, want 300", cfg.Lint.TimeoutSeconds)
	}
	if cfg.Advisory.LargeFileBytes != 1<<20 {
		t.Errorf("Advisory.LargeFileBytes = %d, want %d", cfg.Advisory.LargeFileBytes, 1<<20)
	}
	if cfg.Advisory.MinMessageChars != 10 {
		t.Errorf("Advisory.MinMessageChars = %d, want 10", cfg.Advisory.MinMessageChars)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoad_PartialFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "lint:\n  tool: staticcheck\n  timeout_seconds: 60\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Lint.Tool != "staticcheck" {
		t.Errorf("Lint.Tool = %q, want staticcheck", cfg.Lint.Tool)
	}
	if cfg.Lint.TimeoutSeconds != 60 {
		t.Errorf("Lint.TimeoutSeconds = %d, want 60", cfg.Lint.TimeoutSeconds)
	}
	// Untouched sections keep their defaults.
	if cfg.Advisory.MinMessageChars != 10 {
		t.Errorf("Advisory.MinMessageChars = %d, want default 10", cfg.Advisory.MinMessageChars)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "lint: [not: a mapping\n")

	if _, err := Load(dir); err == nil {
		t.Error("Load on malformed YAML succeeded")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "log:\n  level: loud\n")

	if _, err := Load(dir); err == nil {
		t.Error("Load with invalid log level succeeded")
	}
}

func TestAdvisoryConfig_ToScanConfig(t *testing.T) {
	cfg := DefaultConfig()
	sc := cfg.Advisory.ToScanConfig()

	if sc.SourceExtension != ".go" {
		t.Errorf("SourceExtension = %q", sc.SourceExtension)
	}
	if sc.LargeFileBytes != cfg.Advisory.LargeFileBytes {
		t.Errorf("LargeFileBytes = %d", sc.LargeFileBytes)
	}
}

func TestLintConfig_Timeout(t *testing.T) {
	l := LintConfig{TimeoutSeconds: 300}
	if got := l.Timeout().Minutes(); got != 5 {
		t.Errorf("Timeout = %v minutes, want 5", got)
	}
}
