// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package cicd provides CI integration for dependency-update pull
// requests: classifying version bumps, deciding automerge eligibility,
// and emitting GitHub Actions outputs.
package cicd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// Sentinel errors for the cicd package.
var (
	// ErrGHNotInstalled indicates the gh CLI is not resolvable on PATH.
	ErrGHNotInstalled = errors.New("gh CLI not found")

	// ErrMergeFailed indicates gh rejected the merge request.
	ErrMergeFailed = errors.New("automerge request failed")
)

// UpdateType classifies the magnitude of a version bump.
type UpdateType string

const (
	UpdateMajor   UpdateType = "major"
	UpdateMinor   UpdateType = "minor"
	UpdatePatch   UpdateType = "patch"
	UpdateUnknown UpdateType = "unknown"
)

// Update is one dependency version bump extracted from a PR.
type Update struct {
	// Module is the module path being bumped.
	Module string `json:"module"`

	// From is the version before the bump.
	From string `json:"from"`

	// To is the version after the bump.
	To string `json:"to"`

	// Type is the classified bump magnitude.
	Type UpdateType `json:"type"`
}

// Decision is the automerge verdict for one pull request.
type Decision struct {
	// Eligible is true when the PR may be queued for automerge.
	Eligible bool `json:"eligible"`

	// Reason explains the verdict, eligible or not.
	Reason string `json:"reason"`

	// Author is the PR author the decision was made for.
	Author string `json:"author"`

	// Updates are the classified version bumps.
	Updates []Update `json:"updates"`

	// HighestChange is the largest bump magnitude across all updates.
	HighestChange UpdateType `json:"highest_change"`
}

// Policy configures which dependency updates may merge unattended.
type Policy struct {
	// TrustedAuthors are the bot accounts whose PRs qualify.
	// Default: dependabot[bot], renovate[bot].
	TrustedAuthors []string `json:"trusted_authors"`

	// AllowMinor permits minor version bumps. Default: true.
	AllowMinor bool `json:"allow_minor"`

	// AllowPatch permits patch version bumps. Default: true.
	AllowPatch bool `json:"allow_patch"`
}

// DefaultPolicy returns the conservative defaults: minor and patch bumps
// from the well-known update bots. Major bumps never merge unattended.
func DefaultPolicy() Policy {
	return Policy{
		TrustedAuthors: []string{"dependabot[bot]", "renovate[bot]"},
		AllowMinor:     true,
		AllowPatch:     true,
	}
}

// Automerger decides and executes automerge for dependency-update PRs.
//
// Thread Safety: Immutable after creation.
type Automerger struct {
	policy Policy
}

// NewAutomerger creates an Automerger. A nil policy uses DefaultPolicy.
func NewAutomerger(policy *Policy) *Automerger {
	if policy == nil {
		defaults := DefaultPolicy()
		policy = &defaults
	}
	return &Automerger{policy: *policy}
}

// bumpTitle matches the Dependabot/Renovate PR title convention, e.g.
// "build(deps): bump golang.org/x/mod from 0.21.0 to 0.22.0".
var bumpTitle = regexp.MustCompile(`[Bb]ump (\S+) from (\S+) to (\S+)`)

// ParseUpdate extracts a version bump from a PR title.
//
// # Outputs
//
//   - *Update: The classified bump, or nil when the title does not follow
//     the bump convention.
func ParseUpdate(title string) *Update {
	m := bumpTitle.FindStringSubmatch(title)
	if m == nil {
		return nil
	}
	u := &Update{Module: m[1], From: m[2], To: m[3]}
	u.Type = Classify(u.From, u.To)
	return u
}

// Classify compares two versions and returns the bump magnitude.
//
// Versions are normalized to the canonical "v" prefix before comparison.
// Anything that does not parse as semver classifies as UpdateUnknown and
// is never eligible.
func Classify(from, to string) UpdateType {
	from = normalizeVersion(from)
	to = normalizeVersion(to)
	if !semver.IsValid(from) || !semver.IsValid(to) {
		return UpdateUnknown
	}

	switch {
	case semver.Major(from) != semver.Major(to):
		return UpdateMajor
	case semver.MajorMinor(from) != semver.MajorMinor(to):
		return UpdateMinor
	case semver.Compare(from, to) != 0:
		return UpdatePatch
	default:
		return UpdateUnknown
	}
}

// Analyze decides whether a PR qualifies for unattended merge.
//
// # Description
//
// The author must be on the trusted list, every update must classify as
// an allowed magnitude, and there must be at least one recognizable
// update. The first disqualifier becomes the decision's reason.
//
// # Inputs
//
//   - author: The PR author login.
//   - updates: Classified version bumps from the PR.
//
// # Outputs
//
//   - *Decision: The verdict. Never nil.
func (a *Automerger) Analyze(author string, updates []Update) *Decision {
	d := &Decision{
		Author:        author,
		Updates:       updates,
		HighestChange: UpdateUnknown,
	}

	if !a.trusted(author) {
		d.Reason = fmt.Sprintf("author %q is not a trusted update bot", author)
		return d
	}
	if len(updates) == 0 {
		d.Reason = "no recognizable dependency updates"
		return d
	}

	for _, u := range updates {
		if updateGreater(u.Type, d.HighestChange) {
			d.HighestChange = u.Type
		}
		if !a.allowed(u.Type) {
			d.Reason = fmt.Sprintf("%s bump of %s (%s to %s) requires review",
				u.Type, u.Module, u.From, u.To)
			return d
		}
	}

	d.Eligible = true
	d.Reason = fmt.Sprintf("%d %s update(s) from trusted author", len(updates), d.HighestChange)
	return d
}

// Merge queues the PR for automerge via the gh CLI.
//
// # Inputs
//
//   - ctx: Context for cancellation.
//   - prNumber: The PR number, as gh expects it.
//
// # Outputs
//
//   - error: ErrGHNotInstalled or ErrMergeFailed (wrapped with gh's
//     stderr); nil when the merge was queued.
func (a *Automerger) Merge(ctx context.Context, prNumber string) error {
	if ctx == nil {
		return fmt.Errorf("context is required")
	}
	if _, err := exec.LookPath("gh"); err != nil {
		return ErrGHNotInstalled
	}

	cmd := exec.CommandContext(ctx, "gh", "pr", "merge", prNumber, "--auto", "--squash")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s", ErrMergeFailed, msg)
	}
	return nil
}

// GenerateActionOutput generates GitHub Actions output variables for a
// decision, for use in workflow step conditions.
func (a *Automerger) GenerateActionOutput(d *Decision) map[string]string {
	outputs := map[string]string{
		"eligible":       fmt.Sprintf("%t", d.Eligible),
		"reason":         d.Reason,
		"highest_change": string(d.HighestChange),
		"updates":        fmt.Sprintf("%d", len(d.Updates)),
	}

	var modules []string
	for _, u := range d.Updates {
		modules = append(modules, u.Module)
	}
	if len(modules) > 0 {
		outputs["modules"] = strings.Join(modules, ",")
	}
	return outputs
}

// trusted reports whether the author is on the trusted list.
func (a *Automerger) trusted(author string) bool {
	for _, t := range a.policy.TrustedAuthors {
		if strings.EqualFold(t, author) {
			return true
		}
	}
	return false
}

// allowed reports whether a bump magnitude qualifies under the policy.
func (a *Automerger) allowed(t UpdateType) bool {
	switch t {
	case UpdatePatch:
		return a.policy.AllowPatch
	case UpdateMinor:
		return a.policy.AllowMinor
	default:
		return false
	}
}

// updateGreater returns true if a > b in bump magnitude.
func updateGreater(a, b UpdateType) bool {
	order := map[UpdateType]int{
		UpdateUnknown: 0,
		UpdatePatch:   1,
		UpdateMinor:   2,
		UpdateMajor:   3,
	}
	return order[a] > order[b]
}

// normalizeVersion adds the canonical "v" prefix when missing.
func normalizeVersion(v string) string {
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
