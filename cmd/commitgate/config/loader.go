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
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the per-repository configuration file, at the repo root.
const FileName = ".commitgate.yaml"

// Load reads the configuration for the repository rooted at root.
//
// # Description
//
// A missing file is not an error: the defaults apply and the gate runs
// without any setup. The file is never created automatically; a hook
// must not write into the repository it is gating. When the file exists,
// its values are layered over the defaults, so a partial file overrides
// only what it sets.
//
// # Outputs
//
//   - GateConfig: The effective configuration.
//   - error: Non-nil when the file exists but cannot be read, parsed, or
//     validated.
func Load(root string) (GateConfig, error) {
	cfg := DefaultConfig()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}
