// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// AuditResult aggregates a full audit run. The aggregator is its only
// writer; once the run returns it must be treated as read-only.
type AuditResult struct {
	RunID      string            `json:"run_id"`
	Root       string            `json:"root"`
	TotalFiles int               `json:"total_files"`
	TotalLinks int               `json:"total_links"`
	Valid      []ClassifiedLink  `json:"valid"`
	Broken     []ClassifiedLink  `json:"broken"`
	External   []ClassifiedLink  `json:"external"`
	AnchorOnly []ClassifiedLink  `json:"anchor_only"`
	Documents  []DocumentSummary `json:"documents"`
	Orphans    []string          `json:"orphans,omitempty"` // Documents no other document links to
}

// Add appends link to the bucket matching its status and counts it.
// Links with an unknown status are counted as anchor-only so the
// partition stays total.
func (r *AuditResult) Add(link ClassifiedLink) {
	r.TotalLinks++
	switch link.Status {
	case StatusValid:
		r.Valid = append(r.Valid, link)
	case StatusBroken:
		r.Broken = append(r.Broken, link)
	case StatusExternal:
		r.External = append(r.External, link)
	default:
		link.Status = StatusAnchorOnly
		r.AnchorOnly = append(r.AnchorOnly, link)
	}
}

// Partitioned reports whether every counted link sits in exactly one bucket.
func (r *AuditResult) Partitioned() bool {
	return r.TotalLinks == len(r.Valid)+len(r.Broken)+len(r.External)+len(r.AnchorOnly)
}

// HealthScore returns floor(100 * valid / total). The boolean is false
// when no links were found and the score is undefined.
func (r *AuditResult) HealthScore() (int, bool) {
	if r.TotalLinks == 0 {
		return 0, false
	}
	return len(r.Valid) * 100 / r.TotalLinks, true
}

// MissingAnchors returns every link whose fragment names no heading,
// in bucket order (valid, then anchor-only).
func (r *AuditResult) MissingAnchors() []ClassifiedLink {
	var out []ClassifiedLink
	for _, group := range [][]ClassifiedLink{r.Valid, r.AnchorOnly} {
		for _, l := range group {
			if l.AnchorMissing {
				out = append(out, l)
			}
		}
	}
	return out
}
