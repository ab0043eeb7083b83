// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditResult_AddPartitions(t *testing.T) {
	var r AuditResult
	r.Add(ClassifiedLink{URL: "guide.md", Status: StatusValid})
	r.Add(ClassifiedLink{URL: "gone.md", Status: StatusBroken})
	r.Add(ClassifiedLink{URL: "https://example.com", Status: StatusExternal})
	r.Add(ClassifiedLink{URL: "#top", Status: StatusAnchorOnly})
	r.Add(ClassifiedLink{URL: "odd"})

	assert.Equal(t, 5, r.TotalLinks)
	assert.Len(t, r.Valid, 1)
	assert.Len(t, r.Broken, 1)
	assert.Len(t, r.External, 1)
	assert.Len(t, r.AnchorOnly, 2)
	assert.Equal(t, StatusAnchorOnly, r.AnchorOnly[1].Status)
	assert.True(t, r.Partitioned())
}

func TestAuditResult_HealthScore(t *testing.T) {
	var empty AuditResult
	_, ok := empty.HealthScore()
	assert.False(t, ok)

	r := AuditResult{}
	r.Add(ClassifiedLink{Status: StatusValid})
	r.Add(ClassifiedLink{Status: StatusValid})
	r.Add(ClassifiedLink{Status: StatusBroken})

	score, ok := r.HealthScore()
	assert.True(t, ok)
	assert.Equal(t, 66, score)
}

func TestAuditResult_MissingAnchors(t *testing.T) {
	r := AuditResult{}
	r.Add(ClassifiedLink{URL: "a.md#x", Status: StatusValid, AnchorMissing: true})
	r.Add(ClassifiedLink{URL: "#ok", Status: StatusAnchorOnly})
	r.Add(ClassifiedLink{URL: "#gone", Status: StatusAnchorOnly, AnchorMissing: true})

	missing := r.MissingAnchors()
	assert.Len(t, missing, 2)
	assert.Equal(t, "a.md#x", missing[0].URL)
	assert.Equal(t, "#gone", missing[1].URL)
}

func TestMatchStage_String(t *testing.T) {
	assert.Equal(t, "name", StageName.String())
	assert.Equal(t, "fuzzy", StageFuzzy.String())
	assert.Equal(t, "none", StageNone.String())
	assert.Equal(t, "unknown", MatchStage(42).String())
}
