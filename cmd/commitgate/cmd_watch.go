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
	"io/fs"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/commitgate/cmd/commitgate/config"
	"github.com/AleutianAI/commitgate/pkg/ux"
	"github.com/AleutianAI/commitgate/services/gate/checks"
)

// watchDebounce batches the burst of events an editor save produces
// into one re-run.
const watchDebounce = 500 * time.Millisecond

// runWatch re-runs the fast gates (format, vet) whenever a Go source
// file changes. The expensive gates stay out: watch is a feedback loop,
// not the commit gate.
func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root, err := resolveRoot(ctx)
	if err != nil {
		return NewCommandError("watch", 1, err)
	}
	cfg, err := config.Load(root)
	if err != nil {
		return NewCommandError("watch", 1, err)
	}

	logger := newLogger(cfg)
	defer logger.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return NewCommandError("watch", 1, err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, root); err != nil {
		return NewCommandError("watch", 1, err)
	}

	ux.Title("commitgate watch")
	ux.Muted("watching " + root + " (ctrl-c to stop)")

	format := checks.NewFormatChecker(root)
	vet := checks.NewVetRunner(root)
	runFast := func() {
		result, err := format.Check(ctx)
		switch {
		case err != nil:
			ux.Error("format: " + err.Error())
		case !result.Clean:
			ux.Error("format: " + strings.Join(result.Files, ", "))
		default:
			ux.Success("format clean")
		}

		if err := vet.Run(ctx); err != nil {
			ux.Error("vet: " + err.Error())
		} else {
			ux.Success("vet clean")
		}
	}

	// Run once up front so the first report does not wait for a change.
	runFast()

	var debounce *time.Timer
	trigger := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			// New directories need watching too; watchTree no-ops on files.
			if event.Op.Has(fsnotify.Create) {
				_ = watchTree(watcher, event.Name)
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			logger.Debug("change detected, re-running fast gates")
			runFast()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// relevantEvent filters for Go source changes.
func relevantEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	return strings.HasSuffix(name, ".go") || name == "go.mod"
}

// watchTree adds root and every non-hidden subdirectory to the watcher.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil //nolint:nilerr
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
			name == "vendor" || name == "testdata") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
