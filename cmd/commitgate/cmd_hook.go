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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/commitgate/pkg/ux"
	"github.com/AleutianAI/commitgate/services/gate/git"
)

// hookMarker identifies hooks this tool wrote, so uninstall never
// deletes somebody's hand-written hook.
const hookMarker = "# managed by commitgate"

// hookScript is the installed pre-commit hook. It delegates to the
// binary so upgrading commitgate upgrades every repository's hook.
const hookScript = `#!/bin/sh
` + hookMarker + `
exec commitgate run
`

// runHookInstall writes the pre-commit hook into .git/hooks.
func runHookInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	hookPath, err := preCommitPath(ctx)
	if err != nil {
		return NewCommandError("hook install", 1, err)
	}

	if existing, err := os.ReadFile(hookPath); err == nil {
		if !strings.Contains(string(existing), hookMarker) {
			ok, err := hookPrompter().Confirm(ctx,
				fmt.Sprintf("A pre-commit hook already exists at %s. Overwrite it?", hookPath))
			if err != nil {
				return NewCommandError("hook install", 1, err)
			}
			if !ok {
				ux.Skipped("existing hook left in place")
				return nil
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(hookPath), 0755); err != nil {
		return NewCommandError("hook install", 1, err)
	}
	if err := os.WriteFile(hookPath, []byte(hookScript), 0755); err != nil {
		return NewCommandError("hook install", 1, err)
	}

	ux.Success("pre-commit hook installed")
	ux.Box("pre-commit hook", hookPath+"\nruns: commitgate run")
	return nil
}

// runHookUninstall removes the hook, but only if commitgate wrote it.
func runHookUninstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	hookPath, err := preCommitPath(ctx)
	if err != nil {
		return NewCommandError("hook uninstall", 1, err)
	}

	data, err := os.ReadFile(hookPath)
	if err != nil {
		if os.IsNotExist(err) {
			ux.Skipped("no pre-commit hook installed")
			return nil
		}
		return NewCommandError("hook uninstall", 1, err)
	}

	if !strings.Contains(string(data), hookMarker) {
		return NewCommandError("hook uninstall", 1,
			fmt.Errorf("the pre-commit hook at %s was not installed by commitgate; remove it manually", hookPath))
	}

	if err := os.Remove(hookPath); err != nil {
		return NewCommandError("hook uninstall", 1, err)
	}
	ux.Success("pre-commit hook removed")
	return nil
}

// preCommitPath resolves .git/hooks/pre-commit via git, so linked
// worktrees get the right hooks directory.
func preCommitPath(ctx context.Context) (string, error) {
	exec := git.NewExecutor(git.WithWorkingDir(repoDir))
	gitDir, err := exec.GitDir(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks", "pre-commit"), nil
}

// hookPrompter picks the prompter for hook install: --force or machine
// personality skip the question.
func hookPrompter() UserPrompter {
	if hookForce {
		return &NonInteractivePrompter{AssumeYes: true}
	}
	if ux.GetPersonality().Level == ux.PersonalityMachine {
		return &NonInteractivePrompter{AssumeYes: false}
	}
	return NewInteractivePrompter()
}
