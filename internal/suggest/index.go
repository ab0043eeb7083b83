// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package suggest proposes replacement targets for broken links by
// matching file names across the document tree.
package suggest

import (
	"path"
	"sort"
	"strings"

	"github.com/petar-djukic/linkaudit/internal/resolve"
	"github.com/petar-djukic/linkaudit/pkg/types"
)

const defaultFuzzyThreshold = 0.5

// entry is one document as seen by the matcher, with names pre-lowered.
type entry struct {
	relPath string
	name    string // lower-case base name
	stem    string // lower-case base name without suffix
}

// Config configures suggestion matching.
type Config struct {
	Extension      string  // Markdown extension (default ".md")
	FuzzyThreshold float64 // Minimum stem similarity for the fuzzy stage (default 0.5; negative disables)
}

// Index is a read-only, path-sorted view of every document in the tree.
// Build it once per audit, before any worker calls Suggest; it is safe for
// concurrent use afterwards.
type Index struct {
	entries   []entry
	ext       string
	threshold float64
}

// NewIndex builds an Index over docs. The input order does not matter.
func NewIndex(docs []types.Document, cfg Config) *Index {
	ext := cfg.Extension
	if ext == "" {
		ext = resolve.DefaultExtension
	}
	threshold := cfg.FuzzyThreshold
	if threshold == 0 {
		threshold = defaultFuzzyThreshold
	}

	entries := make([]entry, 0, len(docs))
	for _, d := range docs {
		name := strings.ToLower(path.Base(d.RelPath))
		entries = append(entries, entry{
			relPath: d.RelPath,
			name:    name,
			stem:    resolve.Stem(name),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].relPath < entries[j].relPath
	})

	return &Index{entries: entries, ext: strings.ToLower(ext), threshold: threshold}
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	return len(ix.entries)
}
