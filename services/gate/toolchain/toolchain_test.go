// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package toolchain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeMarker(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestChecker_MarkerMissing(t *testing.T) {
	c := NewChecker(t.TempDir())
	_, err := c.Check()
	if !errors.Is(err, ErrMarkerMissing) {
		t.Errorf("Check error = %v, want ErrMarkerMissing", err)
	}
}

func TestChecker_MarkerInvalid(t *testing.T) {
	dir := t.TempDir()
	writeMarker(t, dir, "this is not a modfile {{{")

	c := NewChecker(dir)
	_, err := c.Check()
	if !errors.Is(err, ErrMarkerInvalid) {
		t.Errorf("Check error = %v, want ErrMarkerInvalid", err)
	}
}

func TestChecker_MarkerWithoutModule(t *testing.T) {
	dir := t.TempDir()
	writeMarker(t, dir, "go 1.22\n")

	c := NewChecker(dir)
	_, err := c.ModulePath()
	if !errors.Is(err, ErrMarkerInvalid) {
		t.Errorf("ModulePath error = %v, want ErrMarkerInvalid", err)
	}
}

func TestChecker_ToolMissing(t *testing.T) {
	dir := t.TempDir()
	writeMarker(t, dir, "module example.com/proj\n\ngo 1.22\n")

	c := NewChecker(dir, WithRequiredTools("definitely-not-a-real-binary-name"))
	_, err := c.Check()
	if !errors.Is(err, ErrToolMissing) {
		t.Errorf("Check error = %v, want ErrToolMissing", err)
	}
}

func TestChecker_ModulePath(t *testing.T) {
	dir := t.TempDir()
	writeMarker(t, dir, "module example.com/proj\n\ngo 1.22\n")

	// No required tools: only the marker is checked
	c := NewChecker(dir, WithRequiredTools())
	modPath, err := c.Check()
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if modPath != "example.com/proj" {
		t.Errorf("modPath = %q, want %q", modPath, "example.com/proj")
	}
}

func TestDetect(t *testing.T) {
	if got := Detect("definitely-not-a-real-binary-name"); got != AvailabilityAbsent {
		t.Errorf("Detect(missing) = %v, want AvailabilityAbsent", got)
	}
}

func TestAvailability_String(t *testing.T) {
	tests := []struct {
		a    Availability
		want string
	}{
		{AvailabilityUnknown, "unknown"},
		{AvailabilityPresent, "present"},
		{AvailabilityAbsent, "absent"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
