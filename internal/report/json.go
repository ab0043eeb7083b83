// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"

	"github.com/petar-djukic/linkaudit/pkg/types"
)

// Statistics are the headline counts of a report.
type Statistics struct {
	TotalFiles  int  `json:"total_files"`
	TotalLinks  int  `json:"total_links"`
	Valid       int  `json:"valid"`
	Broken      int  `json:"broken"`
	External    int  `json:"external"`
	AnchorOnly  int  `json:"anchor_only"`
	HealthScore *int `json:"health_score,omitempty"`
}

// brokenEntry is a broken link with its rendered suggestion.
type brokenEntry struct {
	types.ClassifiedLink
	Suggestion string `json:"suggestion"`
}

type jsonReport struct {
	RunID          string                  `json:"run_id"`
	Root           string                  `json:"root"`
	Statistics     Statistics              `json:"statistics"`
	Broken         []brokenEntry           `json:"broken"`
	CompatIssues   []CompatIssue           `json:"compat_issues"`
	External       []types.ClassifiedLink  `json:"external_sample"`
	ExternalMore   int                     `json:"external_more"`
	MissingAnchors []types.ClassifiedLink  `json:"missing_anchors,omitempty"`
	Orphans        []string                `json:"orphans,omitempty"`
	Documents      []types.DocumentSummary `json:"documents"`
}

// Stats computes the statistics block for result.
func Stats(result *types.AuditResult) Statistics {
	s := Statistics{
		TotalFiles: result.TotalFiles,
		TotalLinks: result.TotalLinks,
		Valid:      len(result.Valid),
		Broken:     len(result.Broken),
		External:   len(result.External),
		AnchorOnly: len(result.AnchorOnly),
	}
	if score, ok := result.HealthScore(); ok {
		s.HealthScore = &score
	}
	return s
}

// JSON renders the audit report as indented JSON conforming to Schema.
// Issue rows are not truncated; the external links keep the same sample
// size as the markdown report.
func JSON(result *types.AuditResult, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	broken := make([]brokenEntry, 0, len(result.Broken))
	for _, l := range result.Broken {
		broken = append(broken, brokenEntry{ClassifiedLink: l, Suggestion: Suggestion(l)})
	}

	issues := CompatIssues(result.Valid, opts.Extension)
	if issues == nil {
		issues = []CompatIssue{}
	}

	sample := result.External[:min(opts.MaxExternalSamples, len(result.External))]
	if sample == nil {
		sample = []types.ClassifiedLink{}
	}

	out := jsonReport{
		RunID:        result.RunID,
		Root:         result.Root,
		Statistics:   Stats(result),
		Broken:       broken,
		CompatIssues: issues,
		External:     sample,
		ExternalMore: len(result.External) - len(sample),
		Documents:    result.Documents,
	}
	if opts.CheckAnchors {
		out.MissingAnchors = result.MissingAnchors()
	}
	if opts.Orphans {
		out.Orphans = result.Orphans
	}
	if out.Documents == nil {
		out.Documents = []types.DocumentSummary{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	return data, nil
}
