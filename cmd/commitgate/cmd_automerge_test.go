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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteActionOutputs_GitHubOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gh_output")
	t.Setenv("GITHUB_OUTPUT", path)

	err := writeActionOutputs(map[string]string{
		"eligible":       "true",
		"highest_change": "patch",
	})
	if err != nil {
		t.Fatalf("writeActionOutputs: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.Contains(got, "eligible=true\n") {
		t.Errorf("missing eligible output: %q", got)
	}
	if !strings.Contains(got, "highest_change=patch\n") {
		t.Errorf("missing highest_change output: %q", got)
	}

	// A second write appends rather than truncating earlier step output.
	if err := writeActionOutputs(map[string]string{"updates": "1"}); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "eligible=true") || !strings.Contains(string(data), "updates=1") {
		t.Errorf("append lost output: %q", string(data))
	}
}

func TestWriteActionOutputs_NoGitHubOutput(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	// Falls back to stdout; must not error outside Actions.
	if err := writeActionOutputs(map[string]string{"eligible": "false"}); err != nil {
		t.Errorf("writeActionOutputs: %v", err)
	}
}
