// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/AleutianAI/commitgate/pkg/ux"
)

// stageLabels maps stage names to the text shown on status lines.
var stageLabels = map[string]string{
	StageEnvironment: "Environment",
	StageManifest:    "Manifest (go mod tidy)",
	StageFormat:      "Format (gofmt)",
	StageLint:        "Lint",
	StageVet:         "Vet",
	StageTest:        "Tests",
}

// stageHints maps stage names to a one-line remediation suggestion shown
// under a failure.
var stageHints = map[string]string{
	StageEnvironment: "run this from a Go module root with the go toolchain installed",
	StageManifest:    "resolve the go.mod errors above, then retry",
	StageFormat:      "run: gofmt -w <file> on the listed files",
	StageLint:        "fix the reported lint issues, or remove the linter to skip this gate",
	StageVet:         "fix the vet diagnostics above",
	StageTest:        "fix the failing tests above",
}

// Report renders a completed run to the terminal.
//
// One status line per stage, the advisory findings as warnings, a summary
// count line, and a final verdict. On failure the last line names the
// stage that blocked the commit so hook output is useful even when the
// terminal scrolls.
func Report(outcome *Outcome) {
	ux.Title("commitgate")
	if outcome.ModulePath != "" {
		ux.Muted("module " + outcome.ModulePath)
	}

	for _, s := range outcome.Stages {
		reportStage(s)
	}

	for _, f := range outcome.Findings {
		ux.Warning(f.String())
	}

	passed, skipped := outcome.Counts()
	ux.Summary(passed, skipped, len(outcome.Findings))

	if failed := outcome.FailedStage(); failed != nil {
		ux.Error(fmt.Sprintf("commit blocked by %s gate", failed.Name))
		return
	}
	ux.Success(fmt.Sprintf("all gates passed in %s", outcome.Duration.Round(time.Millisecond)))
}

// reportStage prints one stage's status line, plus failure detail.
func reportStage(s StageResult) {
	label := stageLabels[s.Name]
	if label == "" {
		label = s.Name
	}

	switch s.Status {
	case StatusPassed:
		ux.CheckStatus(label, ux.IconSuccess, s.Detail)
	case StatusSkipped:
		ux.CheckStatus(label, ux.IconSkipped, s.Detail)
	case StatusNotRun:
		ux.CheckStatus(label, ux.IconSkipped, "not run")
	case StatusFailed:
		reason := ""
		if s.Err != nil {
			reason = s.Err.Error()
		}
		ux.CheckStatus(label, ux.IconError, reason)
		if detail := strings.TrimSpace(s.Detail); detail != "" {
			ux.ErrorBox(label, detail)
		}
		if hint := stageHints[s.Name]; hint != "" {
			ux.Muted("  hint: " + hint)
		}
	}
}
