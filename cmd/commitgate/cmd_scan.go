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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/commitgate/cmd/commitgate/config"
	"github.com/AleutianAI/commitgate/pkg/ux"
	"github.com/AleutianAI/commitgate/services/gate/git"
	"github.com/AleutianAI/commitgate/services/gate/scan"
)

// runScan executes only the advisory checks against the staged changes.
// Advisories warn; this command exits 0 no matter what it finds.
func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	root, err := resolveRoot(ctx)
	if err != nil {
		return NewCommandError("scan", 1, err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return NewCommandError("scan", 1, err)
	}

	gitExec := git.NewExecutor(git.WithWorkingDir(root))
	scanner := scan.NewScanner(cfg.Advisory.ToScanConfig())

	var findings []scan.Finding

	diffText, err := gitExec.StagedDiff(ctx)
	if err != nil {
		return NewCommandError("scan", 1, err)
	}
	diffFindings, err := scanner.ScanDiff(diffText)
	if err != nil {
		return NewCommandError("scan", 1, err)
	}
	findings = append(findings, diffFindings...)

	files, err := gitExec.StagedFiles(ctx)
	if err != nil {
		return NewCommandError("scan", 1, err)
	}
	findings = append(findings, scanner.CheckFileSizes(files)...)

	message, exists, err := gitExec.CommitMessage(ctx)
	if err != nil {
		return NewCommandError("scan", 1, err)
	}
	findings = append(findings, scanner.CheckMessage(message, exists)...)

	ux.Title("commitgate scan")
	if len(findings) == 0 {
		ux.Success("no advisories for the staged changes")
		return nil
	}
	for _, f := range findings {
		ux.Warning(f.String())
	}
	ux.Muted(fmt.Sprintf("%d advisory finding(s); advisories never block a commit", len(findings)))
	return nil
}
