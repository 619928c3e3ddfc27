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
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/commitgate/pkg/logging"
	"github.com/AleutianAI/commitgate/pkg/ux"
	"github.com/AleutianAI/commitgate/services/gate/checks"
	"github.com/AleutianAI/commitgate/services/gate/git"
	"github.com/AleutianAI/commitgate/services/gate/scan"
	"github.com/AleutianAI/commitgate/services/gate/toolchain"
)

// Stage is one hard gate in the pipeline.
type Stage interface {
	// Name returns the stage's fixed identifier.
	Name() string

	// Run executes the stage. A StatusFailed result stops the pipeline.
	Run(ctx context.Context) StageResult
}

// stageFunc adapts a closure to the Stage interface.
type stageFunc struct {
	name string
	fn   func(ctx context.Context) StageResult
}

func (s stageFunc) Name() string                        { return s.name }
func (s stageFunc) Run(ctx context.Context) StageResult { return s.fn(ctx) }

// Pipeline runs the hard gates in order, then the advisories.
//
// Thread Safety: Not safe for concurrent Run calls on one instance; the
// environment stage writes the resolved module path back to the pipeline.
type Pipeline struct {
	root   string
	log    *logging.Logger
	stages []Stage

	// advise runs the advisory checks. Nil disables them (tests).
	advise func(ctx context.Context) []scan.Finding

	// progress enables a spinner while the slow stages run.
	progress bool

	// modulePath is set by the environment stage during Run.
	modulePath string
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*settings)

// settings collects the knobs the standard stages are built from.
type settings struct {
	log         *logging.Logger
	lintOpts    []checks.LintOption
	testArgs    []string
	scanConfig  scan.Config
	skipAdvisor bool
	progress    bool
}

// WithLogger sets the structured logger. Defaults to logging.Default().
func WithLogger(log *logging.Logger) PipelineOption {
	return func(s *settings) {
		s.log = log
	}
}

// WithLintOptions forwards options to the lint stage.
func WithLintOptions(opts ...checks.LintOption) PipelineOption {
	return func(s *settings) {
		s.lintOpts = append(s.lintOpts, opts...)
	}
}

// WithTestArgs overrides the test stage's package target arguments.
func WithTestArgs(args ...string) PipelineOption {
	return func(s *settings) {
		s.testArgs = args
	}
}

// WithScanConfig sets the advisory scanner configuration.
func WithScanConfig(cfg scan.Config) PipelineOption {
	return func(s *settings) {
		s.scanConfig = cfg
	}
}

// WithoutAdvisories disables the advisory pass entirely.
func WithoutAdvisories() PipelineOption {
	return func(s *settings) {
		s.skipAdvisor = true
	}
}

// WithProgress shows a spinner while the slow stages (lint, tests) run.
func WithProgress() PipelineOption {
	return func(s *settings) {
		s.progress = true
	}
}

// New builds the standard six-gate pipeline rooted at the given directory.
func New(root string, opts ...PipelineOption) *Pipeline {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.Default()
	}

	p := &Pipeline{
		root:     root,
		log:      s.log,
		progress: s.progress,
	}

	env := toolchain.NewChecker(root)
	manifest := checks.NewManifestNormalizer(root)
	format := checks.NewFormatChecker(root)
	lint := checks.NewLintRunner(root, s.lintOpts...)
	vet := checks.NewVetRunner(root)
	var testOpts []checks.TestOption
	if len(s.testArgs) > 0 {
		testOpts = append(testOpts, checks.WithTestArgs(s.testArgs...))
	}
	tests := checks.NewTestRunner(root, testOpts...)

	p.stages = []Stage{
		stageFunc{StageEnvironment, func(ctx context.Context) StageResult {
			modPath, err := env.Check()
			if err != nil {
				return fail(StageEnvironment, err, "")
			}
			p.modulePath = modPath
			return pass(StageEnvironment, modPath)
		}},
		stageFunc{StageManifest, func(ctx context.Context) StageResult {
			if err := manifest.Normalize(ctx); err != nil {
				return fail(StageManifest, err, checkOutput(err))
			}
			return pass(StageManifest, "")
		}},
		stageFunc{StageFormat, func(ctx context.Context) StageResult {
			result, err := format.Check(ctx)
			if err != nil {
				return fail(StageFormat, err, checkOutput(err))
			}
			if !result.Clean {
				err := checks.NewCheckError("format", "gofmt", checks.ErrFormatViolations)
				return fail(StageFormat, err, strings.Join(result.Files, "\n"))
			}
			return pass(StageFormat, "")
		}},
		stageFunc{StageLint, func(ctx context.Context) StageResult {
			result, err := lint.Run(ctx)
			if err != nil {
				return fail(StageLint, err, checkOutput(err))
			}
			if result.Skipped() {
				return StageResult{
					Name:   StageLint,
					Status: StatusSkipped,
					Detail: fmt.Sprintf("%s not installed", lint.Tool()),
				}
			}
			return pass(StageLint, "")
		}},
		stageFunc{StageVet, func(ctx context.Context) StageResult {
			if err := vet.Run(ctx); err != nil {
				return fail(StageVet, err, checkOutput(err))
			}
			return pass(StageVet, "")
		}},
		stageFunc{StageTest, func(ctx context.Context) StageResult {
			if err := tests.Run(ctx); err != nil {
				return fail(StageTest, err, checkOutput(err))
			}
			return pass(StageTest, "")
		}},
	}

	if !s.skipAdvisor {
		gitExec := git.NewExecutor(git.WithWorkingDir(root))
		scanner := scan.NewScanner(s.scanConfig)
		p.advise = func(ctx context.Context) []scan.Finding {
			return runAdvisories(ctx, p.log, gitExec, scanner)
		}
	}

	return p
}

// Run executes the hard gates in order with fail-fast semantics, then the
// advisories when every gate passed.
//
// # Description
//
// Each gate runs to a terminal status before the next starts. The first
// failure stops the run; subsequent gates are recorded as StatusNotRun so
// the report can show what never executed. Skips (an optional tool that is
// absent) do not stop the run. Advisory findings are attached to the
// outcome but never change whether it passed.
//
// # Outputs
//
//   - *Outcome: Complete run record. Never nil.
func (p *Pipeline) Run(ctx context.Context) *Outcome {
	start := time.Now()
	outcome := &Outcome{
		RunID:  uuid.New(),
		Stages: make([]StageResult, 0, len(p.stages)),
	}

	log := p.log.With("run_id", outcome.RunID.String())
	log.Info("gate run starting", "root", p.root, "stages", len(p.stages))

	failed := false
	for _, stage := range p.stages {
		if failed {
			outcome.Stages = append(outcome.Stages, StageResult{
				Name:   stage.Name(),
				Status: StatusNotRun,
			})
			continue
		}

		stageStart := time.Now()
		result := p.runStage(ctx, stage)
		result.Duration = time.Since(stageStart)
		outcome.Stages = append(outcome.Stages, result)

		switch result.Status {
		case StatusFailed:
			failed = true
			log.Warn("gate failed", "stage", result.Name, "error", result.Err)
		case StatusSkipped:
			log.Info("gate skipped", "stage", result.Name, "reason", result.Detail)
		default:
			log.Debug("gate passed", "stage", result.Name, "duration", result.Duration.String())
		}
	}

	outcome.ModulePath = p.modulePath

	if !failed && p.advise != nil {
		outcome.Findings = p.advise(ctx)
	}

	outcome.Duration = time.Since(start)
	log.Info("gate run finished",
		"passed", outcome.Passed(),
		"findings", len(outcome.Findings),
		"duration", outcome.Duration.String(),
	)
	return outcome
}

// progressMessages names the stages slow enough to warrant a spinner.
var progressMessages = map[string]string{
	StageLint: "running linters",
	StageTest: "running tests",
}

// runStage executes one stage, spinning on the slow ones when progress
// output is enabled. The spinner degrades to a single line in machine
// personality, so hook output stays parseable.
func (p *Pipeline) runStage(ctx context.Context, stage Stage) StageResult {
	msg, slow := progressMessages[stage.Name()]
	if !p.progress || !slow {
		return stage.Run(ctx)
	}

	spinner := ux.NewSpinner(msg)
	spinner.Start()
	defer spinner.Stop()
	return stage.Run(ctx)
}

// runAdvisories gathers the advisory findings. Advisory failures are
// logged and swallowed; they must never influence the run's outcome.
func runAdvisories(ctx context.Context, log *logging.Logger, gitExec *git.Executor, scanner *scan.Scanner) []scan.Finding {
	var findings []scan.Finding

	diffText, err := gitExec.StagedDiff(ctx)
	if err != nil {
		log.Warn("advisory diff scan unavailable", "error", err)
	} else {
		diffFindings, scanErr := scanner.ScanDiff(diffText)
		if scanErr != nil {
			log.Warn("advisory diff scan failed", "error", scanErr)
		} else {
			findings = append(findings, diffFindings...)
		}
	}

	files, err := gitExec.StagedFiles(ctx)
	if err != nil {
		log.Warn("advisory size check unavailable", "error", err)
	} else {
		findings = append(findings, scanner.CheckFileSizes(files)...)
	}

	message, exists, err := gitExec.CommitMessage(ctx)
	if err != nil {
		log.Warn("advisory message check unavailable", "error", err)
	} else {
		findings = append(findings, scanner.CheckMessage(message, exists)...)
	}

	return findings
}

// pass builds a passing result.
func pass(name, detail string) StageResult {
	return StageResult{Name: name, Status: StatusPassed, Detail: detail}
}

// fail builds a failing result.
func fail(name string, err error, detail string) StageResult {
	return StageResult{Name: name, Status: StatusFailed, Err: err, Detail: detail}
}

// checkOutput extracts the tool output attached to a check error, if any.
func checkOutput(err error) string {
	var checkErr *checks.CheckError
	if errors.As(err, &checkErr) {
		return checkErr.Output
	}
	return ""
}
