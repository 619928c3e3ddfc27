// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the optional per-repository gate configuration
// from .commitgate.yaml at the repository root. A missing file means the
// defaults: the gate must work out of the box in any Go repository.
package config

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/commitgate/services/gate/scan"
)

// GateConfig is the full per-repository configuration.
type GateConfig struct {
	// Lint configures the optional lint gate.
	Lint LintConfig `yaml:"lint"`

	// Test configures the test gate.
	Test TestConfig `yaml:"test"`

	// Advisory configures the post-gate advisory scan.
	Advisory AdvisoryConfig `yaml:"advisory"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`
}

// LintConfig configures the lint gate.
type LintConfig struct {
	// Tool is the linter binary name. The gate skips when it is absent.
	Tool string `yaml:"tool" validate:"required"`

	// TimeoutSeconds bounds one linter invocation.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"gte=1"`
}

// Timeout returns the lint timeout as a duration.
func (l LintConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// TestConfig configures the test gate.
type TestConfig struct {
	// Args are the package targets passed to the test run.
	Args []string `yaml:"args"`
}

// AdvisoryConfig configures the advisory scan. Field semantics match
// the scanner: see ToScanConfig.
type AdvisoryConfig struct {
	SourceExtension string   `yaml:"source_extension" validate:"required,startswith=."`
	DebugPatterns   []string `yaml:"debug_patterns"`
	MarkerPatterns  []string `yaml:"marker_patterns"`
	LargeFileBytes  int64    `yaml:"large_file_bytes" validate:"gte=1"`
	MinMessageChars int      `yaml:"min_message_chars" validate:"gte=1"`
}

// ToScanConfig converts the advisory section to the scanner's config type.
func (a AdvisoryConfig) ToScanConfig() scan.Config {
	return scan.Config{
		SourceExtension: a.SourceExtension,
		DebugPatterns:   a.DebugPatterns,
		MarkerPatterns:  a.MarkerPatterns,
		LargeFileBytes:  a.LargeFileBytes,
		MinMessageChars: a.MinMessageChars,
	}
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is the minimum level written.
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Dir is the log file directory. Empty disables file logging.
	Dir string `yaml:"dir"`
}

// DefaultConfig returns the configuration used when no .commitgate.yaml
// exists. The advisory thresholds are the tool's compatibility contract
// and only change when a repository opts out explicitly.
func DefaultConfig() GateConfig {
	scanDefaults := scan.DefaultConfig()
	return GateConfig{
		Lint: LintConfig{
			Tool:           "golangci-lint",
			TimeoutSeconds: 300,
		},
		Test: TestConfig{
			Args: []string{"./..."},
		},
		Advisory: AdvisoryConfig{
			SourceExtension: scanDefaults.SourceExtension,
			DebugPatterns:   scanDefaults.DebugPatterns,
			MarkerPatterns:  scanDefaults.MarkerPatterns,
			LargeFileBytes:  scanDefaults.LargeFileBytes,
			MinMessageChars: scanDefaults.MinMessageChars,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration against its struct tags.
func (c *GateConfig) Validate() error {
	return validator.New().Struct(c)
}
