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
	"context"

	"github.com/AleutianAI/commitgate/cmd/commitgate/config"
	"github.com/AleutianAI/commitgate/pkg/logging"
	"github.com/AleutianAI/commitgate/services/gate/git"
)

// resolveRoot finds the repository root for the --dir flag (or the
// current directory). Every command operates on the repo root so the
// gates see the whole module regardless of where the hook fired from.
func resolveRoot(ctx context.Context) (string, error) {
	exec := git.NewExecutor(git.WithWorkingDir(repoDir))
	return exec.RepoRoot(ctx)
}

// newLogger builds the structured logger from the loaded configuration.
// Callers own the Close.
func newLogger(cfg config.GateConfig) *logging.Logger {
	return logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Log.Level),
		LogDir:  cfg.Log.Dir,
		Service: "commitgate",
	})
}
