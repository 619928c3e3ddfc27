// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package pipeline orders and executes the commit gate: six hard gates
// run in a fixed sequence with fail-fast semantics, and two advisory
// checks run only when every hard gate has passed. The pipeline decides
// pass or fail; rendering is in report.go and exit codes belong to the
// command layer.
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/commitgate/services/gate/scan"
)

// Stage names, in execution order. The order is part of the tool's
// contract: cheap environment checks first, the expensive test suite last.
const (
	StageEnvironment = "environment"
	StageManifest    = "manifest"
	StageFormat      = "format"
	StageLint        = "lint"
	StageVet         = "vet"
	StageTest        = "test"
)

// Status is the terminal state of one stage.
type Status string

const (
	// StatusPassed means the stage ran and found nothing wrong.
	StatusPassed Status = "passed"

	// StatusFailed means the stage ran and the commit must be blocked.
	StatusFailed Status = "failed"

	// StatusSkipped means the stage could not run and that is acceptable
	// (an optional tool is not installed). Skips never block.
	StatusSkipped Status = "skipped"

	// StatusNotRun means an earlier stage failed before this one started.
	StatusNotRun Status = "not_run"
)

// StageResult records what one stage did.
type StageResult struct {
	// Name is the stage's fixed identifier.
	Name string

	// Status is the terminal state.
	Status Status

	// Detail is a short human-readable note: why a skip happened, which
	// files violated format, the tool's failure output.
	Detail string

	// Err is the underlying stage error when Status is StatusFailed.
	Err error

	// Duration is the stage's wall-clock time.
	Duration time.Duration
}

// Outcome is the full result of one pipeline run.
//
// Thread Safety: Immutable once Run returns it.
type Outcome struct {
	// RunID uniquely identifies this run in logs.
	RunID uuid.UUID

	// ModulePath is the module being gated, resolved by the environment
	// stage. Empty when that stage fails.
	ModulePath string

	// Stages holds one result per hard gate, in execution order. Stages
	// after a failure are present with StatusNotRun.
	Stages []StageResult

	// Findings holds the advisory observations. Populated only when all
	// hard gates passed; never affects Passed.
	Findings []scan.Finding

	// Duration is the whole run's wall-clock time.
	Duration time.Duration
}

// Passed reports whether every hard gate passed or was skipped.
func (o *Outcome) Passed() bool {
	for _, s := range o.Stages {
		if s.Status == StatusFailed {
			return false
		}
	}
	return true
}

// FailedStage returns the result of the stage that blocked the commit,
// or nil when the run passed.
func (o *Outcome) FailedStage() *StageResult {
	for i := range o.Stages {
		if o.Stages[i].Status == StatusFailed {
			return &o.Stages[i]
		}
	}
	return nil
}

// Counts tallies stage statuses for the summary line.
func (o *Outcome) Counts() (passed, skipped int) {
	for _, s := range o.Stages {
		switch s.Status {
		case StatusPassed:
			passed++
		case StatusSkipped:
			skipped++
		}
	}
	return passed, skipped
}
