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
	"github.com/spf13/cobra"

	"github.com/AleutianAI/commitgate/cmd/commitgate/config"
	"github.com/AleutianAI/commitgate/services/gate/checks"
	"github.com/AleutianAI/commitgate/services/gate/pipeline"
)

// runGate executes the full gate and maps the outcome to the exit code
// git expects from a pre-commit hook: 0 allows the commit, 1 blocks it.
func runGate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	root, err := resolveRoot(ctx)
	if err != nil {
		return NewCommandError("run", 1, err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return NewCommandError("run", 1, err)
	}

	logger := newLogger(cfg)
	defer logger.Close()

	opts := []pipeline.PipelineOption{
		pipeline.WithLogger(logger),
		pipeline.WithProgress(),
		pipeline.WithLintOptions(
			checks.WithLintTool(cfg.Lint.Tool),
			checks.WithLintTimeout(cfg.Lint.Timeout()),
		),
		pipeline.WithTestArgs(cfg.Test.Args...),
		pipeline.WithScanConfig(cfg.Advisory.ToScanConfig()),
	}
	if noAdvisory {
		opts = append(opts, pipeline.WithoutAdvisories())
	}

	outcome := pipeline.New(root, opts...).Run(ctx)
	pipeline.Report(outcome)

	if !outcome.Passed() {
		// The report already named the failing gate; a nil wrapped
		// error tells main not to print anything more.
		return NewCommandError("run", 1, nil)
	}
	return nil
}
