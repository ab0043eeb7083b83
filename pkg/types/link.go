// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across linkaudit packages.
package types

// LinkClass is the classifier's verdict on a raw URL, before any
// filesystem resolution happens.
type LinkClass int

const (
	External          LinkClass = iota // http://, https://, mailto:, ftp://
	AnchorOnly                         // In-page fragment (#section)
	InternalCandidate                  // Needs resolution against the tree
)

// String returns the human-readable name of the link class.
func (c LinkClass) String() string {
	switch c {
	case External:
		return "external"
	case AnchorOnly:
		return "anchor_only"
	case InternalCandidate:
		return "internal_candidate"
	default:
		return "unknown"
	}
}

// LinkStatus is the bucket a link ends up in once the audit is done.
type LinkStatus string

const (
	StatusValid      LinkStatus = "valid"
	StatusBroken     LinkStatus = "broken"
	StatusExternal   LinkStatus = "external"
	StatusAnchorOnly LinkStatus = "anchor_only"
)

// RawLink is a single [text](url) occurrence extracted from a document.
type RawLink struct {
	Text string // Display text between the brackets
	URL  string // Destination between the parentheses
}

// MatchStage identifies which suggestion strategy produced a replacement
// for a broken link.
type MatchStage int

const (
	StageNone      MatchStage = iota // No candidate found
	StageName                        // Same file name, with or without extension
	StageStem                        // Same stem, extension ignored
	StageSubstring                   // Candidate stem contains the target stem
	StageFuzzy                       // Levenshtein similarity above threshold
)

func (s MatchStage) String() string {
	switch s {
	case StageName:
		return "name"
	case StageStem:
		return "stem"
	case StageSubstring:
		return "substring"
	case StageFuzzy:
		return "fuzzy"
	case StageNone:
		return "none"
	default:
		return "unknown"
	}
}

// MarshalText renders the stage by name in JSON reports.
func (s MatchStage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ClassifiedLink is a RawLink tagged with its final status and annotated
// with where it came from and, for internal links, where it points.
type ClassifiedLink struct {
	File            string     `json:"file"`                       // Source document, relative to the root
	Text            string     `json:"text"`                       // Link display text
	URL             string     `json:"url"`                        // Link URL as written
	Status          LinkStatus `json:"status"`                     // Bucket
	Target          string     `json:"target,omitempty"`           // Resolved target (internal links only)
	Located         string     `json:"located,omitempty"`          // Existing path the target was found at (valid links only)
	Suggestion      string     `json:"suggestion,omitempty"`       // Replacement for broken links; empty if none
	SuggestionStage MatchStage `json:"suggestion_stage,omitempty"` // Which stage found Suggestion
	AnchorMissing   bool       `json:"anchor_missing,omitempty"`   // Fragment names no heading in its target
}

// HasSuggestion reports whether a replacement was found for a broken link.
func (l ClassifiedLink) HasSuggestion() bool {
	return l.Suggestion != ""
}
