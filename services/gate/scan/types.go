// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package scan implements the advisory checks that run after the hard
// gates: debug statements and work markers in the staged diff, oversized
// staged files, and a too-short pending commit message. Findings are
// informational only; nothing in this package can fail a commit.
package scan

import "fmt"

// Kind classifies an advisory finding.
type Kind string

const (
	// KindDebugStatement flags a debug-print call added by the change.
	KindDebugStatement Kind = "debug_statement"

	// KindMarker flags a TODO/FIXME/XXX marker added by the change.
	KindMarker Kind = "marker"

	// KindLargeFile flags a staged file above the size threshold.
	KindLargeFile Kind = "large_file"

	// KindShortMessage flags a pending commit message below the minimum length.
	KindShortMessage Kind = "short_message"
)

// Finding is one advisory observation about the staged change set.
//
// Thread Safety: Immutable after creation.
type Finding struct {
	// Kind classifies the finding.
	Kind Kind

	// File is the affected file path, when the finding is file-scoped.
	File string

	// Line is the 1-based line number in the post-image, when known.
	Line int

	// Message is the human-readable description.
	Message string
}

// String formats the finding for a status line.
func (f Finding) String() string {
	if f.File != "" && f.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", f.File, f.Line, f.Message)
	}
	if f.File != "" {
		return fmt.Sprintf("%s: %s", f.File, f.Message)
	}
	return f.Message
}

// Config controls what the advisory scanner looks for.
//
// The debug pattern set is configurable rather than hard-coded: the fixed
// substrings that make sense for one codebase are noise for another.
type Config struct {
	// SourceExtension restricts the diff scan to files with this
	// extension (including the dot).
	SourceExtension string `yaml:"source_extension"`

	// DebugPatterns are substrings that indicate leftover debug output.
	DebugPatterns []string `yaml:"debug_patterns"`

	// MarkerPatterns are substrings that indicate unfinished work.
	MarkerPatterns []string `yaml:"marker_patterns"`

	// LargeFileBytes is the size threshold: files strictly larger warn.
	LargeFileBytes int64 `yaml:"large_file_bytes"`

	// MinMessageChars is the minimum commit message length: shorter
	// messages warn, a message of exactly this length does not.
	MinMessageChars int `yaml:"min_message_chars"`
}

// DefaultConfig returns the scanner defaults.
//
// The thresholds are a compatibility contract with the hook this tool
// replaces: 1 MiB exactly for the file warning, 10 characters for the
// message warning.
func DefaultConfig() Config {
	return Config{
		SourceExtension: ".go",
		DebugPatterns: []string{
			"fmt.Println(",
			"fmt.Printf(",
			"log.Println(",
		},
		MarkerPatterns: []string{
			"TODO",
			"FIXME",
			"XXX",
		},
		LargeFileBytes:  1 << 20, // 1,048,576 bytes
		MinMessageChars: 10,
	}
}
