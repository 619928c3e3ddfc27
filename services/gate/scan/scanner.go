// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package scan

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/AleutianAI/commitgate/services/gate/git"
)

// Scanner performs the advisory checks over a staged change set.
//
// Thread Safety: Immutable after creation; safe for concurrent use.
type Scanner struct {
	config Config
}

// NewScanner creates a Scanner with the given configuration.
//
// Zero-valued config fields fall back to DefaultConfig values, so a
// partially filled Config only overrides what it sets.
func NewScanner(config Config) *Scanner {
	defaults := DefaultConfig()
	if config.SourceExtension == "" {
		config.SourceExtension = defaults.SourceExtension
	}
	if config.DebugPatterns == nil {
		config.DebugPatterns = defaults.DebugPatterns
	}
	if config.MarkerPatterns == nil {
		config.MarkerPatterns = defaults.MarkerPatterns
	}
	if config.LargeFileBytes == 0 {
		config.LargeFileBytes = defaults.LargeFileBytes
	}
	if config.MinMessageChars == 0 {
		config.MinMessageChars = defaults.MinMessageChars
	}
	return &Scanner{config: config}
}

// Config returns the effective scanner configuration.
func (s *Scanner) Config() Config {
	return s.config
}

// ScanDiff scans a staged unified diff for debug statements and markers.
//
// # Description
//
// Parses the `git diff --cached` text and inspects only ADDED lines of
// files matching the configured source extension. Context and removed
// lines are ignored: the gate should nag about what this commit
// introduces, not about what was already there.
//
// # Inputs
//
//   - diffText: Raw unified diff. Empty input yields no findings.
//
// # Outputs
//
//   - []Finding: Debug-statement and marker findings with post-image
//     line numbers.
//   - error: Non-nil if the diff cannot be parsed.
func (s *Scanner) ScanDiff(diffText string) ([]Finding, error) {
	if strings.TrimSpace(diffText) == "" {
		return nil, nil
	}

	fileDiffs, err := diff.ParseMultiFileDiff([]byte(diffText))
	if err != nil {
		return nil, fmt.Errorf("parse staged diff: %w", err)
	}

	var findings []Finding
	for _, fd := range fileDiffs {
		path := strippedPath(fd.NewName)
		if path == "" || !strings.HasSuffix(path, s.config.SourceExtension) {
			continue
		}

		for _, hunk := range fd.Hunks {
			findings = append(findings, s.scanHunk(path, hunk)...)
		}
	}
	return findings, nil
}

// scanHunk walks one hunk body, tracking post-image line numbers.
func (s *Scanner) scanHunk(path string, hunk *diff.Hunk) []Finding {
	var findings []Finding

	// NewStartLine is the first post-image line covered by the hunk.
	newLine := int(hunk.NewStartLine) - 1

	for _, raw := range strings.Split(string(hunk.Body), "\n") {
		if raw == "" {
			continue
		}
		switch raw[0] {
		case '+':
			newLine++
		case ' ':
			newLine++
			continue
		default:
			// removed lines and "\ No newline" escapes
			continue
		}

		line := raw[1:]
		for _, pattern := range s.config.DebugPatterns {
			if strings.Contains(line, pattern) {
				findings = append(findings, Finding{
					Kind:    KindDebugStatement,
					File:    path,
					Line:    newLine,
					Message: fmt.Sprintf("debug statement %q", pattern),
				})
			}
		}
		for _, pattern := range s.config.MarkerPatterns {
			if strings.Contains(line, pattern) {
				findings = append(findings, Finding{
					Kind:    KindMarker,
					File:    path,
					Line:    newLine,
					Message: fmt.Sprintf("%s marker", pattern),
				})
			}
		}
	}
	return findings
}

// CheckFileSizes flags staged files strictly larger than the threshold.
//
// A file of exactly the threshold size does not warn; one byte more does.
func (s *Scanner) CheckFileSizes(files []git.StagedFile) []Finding {
	var findings []Finding
	for _, f := range files {
		if f.Size > s.config.LargeFileBytes {
			findings = append(findings, Finding{
				Kind: KindLargeFile,
				File: f.Path,
				Message: fmt.Sprintf("large file: %d bytes (threshold %d)",
					f.Size, s.config.LargeFileBytes),
			})
		}
	}
	return findings
}

// CheckMessage flags a pending commit message below the minimum length.
//
// # Inputs
//
//   - message: The cleaned pending message.
//   - exists: Whether a pending message artifact exists at all. Absent
//     messages (fresh repository, no commit in flight) never warn.
//
// # Outputs
//
//   - []Finding: At most one short-message finding. Length is measured
//     in characters, not bytes; exactly MinMessageChars does not warn.
func (s *Scanner) CheckMessage(message string, exists bool) []Finding {
	if !exists {
		return nil
	}
	length := utf8.RuneCountInString(message)
	if length >= s.config.MinMessageChars {
		return nil
	}
	return []Finding{{
		Kind: KindShortMessage,
		Message: fmt.Sprintf("commit message is %d characters (minimum %d)",
			length, s.config.MinMessageChars),
	}}
}

// strippedPath removes the "a/" or "b/" prefix git puts on diff names.
func strippedPath(name string) string {
	if name == "/dev/null" {
		return ""
	}
	if strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/") {
		return name[2:]
	}
	return name
}
