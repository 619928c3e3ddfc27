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

	"github.com/AleutianAI/commitgate/pkg/ux"
)

// --- Global Command Variables ---
var (
	personalityLevel string // UX personality level (full/standard/minimal/machine)
	repoDir          string // Repository to gate; empty means the current directory
	noAdvisory       bool   // Skip the advisory pass on `run`
	hookForce        bool   // Overwrite an existing hook without prompting
	automergeAuthor  string // PR author for automerge decisions
	automergeTitle   string // PR title for automerge decisions
	automergeApply   bool   // Actually queue the merge via gh

	rootCmd = &cobra.Command{
		Use:   "commitgate",
		Short: "A pre-commit gate for Go repositories",
		Long: `commitgate runs a fixed sequence of hard gates (environment,
				go mod tidy, gofmt, lint, vet, tests) before a commit is
				allowed, then a set of advisory checks that warn but never
				block. Install it as a pre-commit hook with 'commitgate hook
				install'.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize UX personality from flag or environment
			if personalityLevel != "" {
				ux.SetPersonalityLevel(ux.ParsePersonalityLevel(personalityLevel))
			} else {
				ux.InitPersonality()
			}
		},
	}

	// --- Gate ---
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run all gates against the staged changes",
		RunE:  runGate, // Defined in cmd_run.go
	}

	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Run only the advisory checks (never fails)",
		RunE:  runScan, // Defined in cmd_scan.go
	}

	// --- Hook Management ---
	hookCmd = &cobra.Command{
		Use:   "hook",
		Short: "Manage the git pre-commit hook",
	}
	hookInstallCmd = &cobra.Command{
		Use:   "install",
		Short: "Install commitgate as the repository's pre-commit hook",
		RunE:  runHookInstall, // Defined in cmd_hook.go
	}
	hookUninstallCmd = &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the commitgate pre-commit hook",
		RunE:  runHookUninstall, // Defined in cmd_hook.go
	}

	// --- Watch ---
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Re-run the fast gates (format, vet) on file changes",
		RunE:  runWatch, // Defined in cmd_watch.go
	}

	// --- CI ---
	automergeCmd = &cobra.Command{
		Use:   "automerge [pr-number]",
		Short: "Decide and optionally queue automerge for a dependency-update PR",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAutomerge, // Defined in cmd_automerge.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().StringVar(&personalityLevel, "personality", "",
		"Output style: full, standard (default), minimal, or machine (scripting)")
	rootCmd.PersistentFlags().StringVarP(&repoDir, "dir", "C", "",
		"Repository directory (default: current directory)")

	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&noAdvisory, "no-advisory", false,
		"Skip the advisory checks after the hard gates")

	rootCmd.AddCommand(scanCmd)

	rootCmd.AddCommand(hookCmd)
	hookCmd.AddCommand(hookInstallCmd)
	hookInstallCmd.Flags().BoolVar(&hookForce, "force", false,
		"Overwrite an existing pre-commit hook without prompting")
	hookCmd.AddCommand(hookUninstallCmd)

	rootCmd.AddCommand(watchCmd)

	rootCmd.AddCommand(automergeCmd)
	automergeCmd.Flags().StringVar(&automergeAuthor, "author", "",
		"PR author login (e.g. dependabot[bot])")
	automergeCmd.Flags().StringVar(&automergeTitle, "title", "",
		"PR title to parse the version bump from")
	automergeCmd.Flags().BoolVar(&automergeApply, "apply", false,
		"Queue the merge via the gh CLI when eligible")
}
