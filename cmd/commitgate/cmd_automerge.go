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
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/commitgate/pkg/ux"
	"github.com/AleutianAI/commitgate/services/gate/cicd"
)

// runAutomerge decides automerge eligibility for a dependency-update PR
// and, with --apply, queues the merge through the gh CLI.
//
// Designed for GitHub Actions: the decision is also written to the
// GITHUB_OUTPUT file when that variable is set, so workflow steps can
// branch on steps.<id>.outputs.eligible.
func runAutomerge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if automergeAuthor == "" || automergeTitle == "" {
		return NewCommandError("automerge", 1,
			fmt.Errorf("--author and --title are required"))
	}

	var updates []cicd.Update
	if u := cicd.ParseUpdate(automergeTitle); u != nil {
		updates = append(updates, *u)
	}

	merger := cicd.NewAutomerger(nil)
	decision := merger.Analyze(automergeAuthor, updates)

	if decision.Eligible {
		ux.Success("eligible: " + decision.Reason)
	} else {
		ux.Warning("not eligible: " + decision.Reason)
	}

	outputs := merger.GenerateActionOutput(decision)
	if err := writeActionOutputs(outputs); err != nil {
		return NewCommandError("automerge", 1, err)
	}

	if !automergeApply || !decision.Eligible {
		return nil
	}
	if len(args) == 0 {
		return NewCommandError("automerge", 1,
			fmt.Errorf("--apply requires the PR number argument"))
	}
	if err := merger.Merge(ctx, args[0]); err != nil {
		return NewCommandError("automerge", 1, err)
	}
	ux.Success("merge queued for PR " + args[0])
	return nil
}

// writeActionOutputs appends key=value pairs to the GITHUB_OUTPUT file.
// Outside Actions (variable unset) the outputs go to stdout instead.
func writeActionOutputs(outputs map[string]string) error {
	keys := make([]string, 0, len(outputs))
	for k := range outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		for _, k := range keys {
			ux.Info(fmt.Sprintf("%s=%s", k, outputs[k]))
		}
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open GITHUB_OUTPUT: %w", err)
	}
	defer f.Close()

	for _, k := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", k, outputs[k]); err != nil {
			return err
		}
	}
	return nil
}
