// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package suggest

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/petar-djukic/linkaudit/internal/resolve"
	"github.com/petar-djukic/linkaudit/pkg/types"
)

// Match is the outcome of a suggestion search.
type Match struct {
	RelPath    string           // Suggested document, relative to the root; empty if none
	Stage      types.MatchStage // Which stage found it
	Similarity float64          // Stem similarity (1.0 for every stage but fuzzy)
}

// Found reports whether a suggestion was produced.
func (m Match) Found() bool {
	return m.Stage != types.StageNone
}

// Suggest finds the document most plausibly meant by the non-existent
// target path. Stages run in order and the first hit wins; within a
// stage candidates are scanned in path order.
func (ix *Index) Suggest(target string) Match {
	name := strings.ToLower(filepath.Base(target))
	stem := strings.ToLower(resolve.Stem(filepath.Base(target)))

	if m, ok := ix.nameMatch(name); ok {
		return m
	}
	if m, ok := ix.stemMatch(stem); ok {
		return m
	}
	if m, ok := ix.substringMatch(stem); ok {
		return m
	}
	if m, ok := ix.fuzzyMatch(stem); ok {
		return m
	}
	return Match{Stage: types.StageNone}
}

// nameMatch looks for a document whose name equals the target name, with
// or without the markdown extension.
func (ix *Index) nameMatch(name string) (Match, bool) {
	if name == "" {
		return Match{}, false
	}
	withExt := name + ix.ext
	for _, e := range ix.entries {
		if e.name == name || e.name == withExt {
			return Match{RelPath: e.relPath, Stage: types.StageName, Similarity: 1.0}, true
		}
	}
	return Match{}, false
}

// stemMatch compares stems, ignoring whatever extension either side has.
func (ix *Index) stemMatch(stem string) (Match, bool) {
	if stem == "" {
		return Match{}, false
	}
	for _, e := range ix.entries {
		if e.stem == stem {
			return Match{RelPath: e.relPath, Stage: types.StageStem, Similarity: 1.0}, true
		}
	}
	return Match{}, false
}

// substringMatch returns the first document whose stem contains stem.
func (ix *Index) substringMatch(stem string) (Match, bool) {
	if stem == "" {
		return Match{}, false
	}
	for _, e := range ix.entries {
		if strings.Contains(e.stem, stem) {
			return Match{RelPath: e.relPath, Stage: types.StageSubstring, Similarity: 1.0}, true
		}
	}
	return Match{}, false
}

// fuzzyMatch scans every stem for the one most similar to stem,
// returning it only if the similarity meets the threshold. Ties keep
// the earliest candidate.
func (ix *Index) fuzzyMatch(stem string) (Match, bool) {
	if stem == "" || ix.threshold < 0 {
		return Match{}, false
	}

	var best *Match
	for _, e := range ix.entries {
		sim := similarity(e.stem, stem)
		if sim >= ix.threshold && (best == nil || sim > best.Similarity) {
			best = &Match{RelPath: e.relPath, Stage: types.StageFuzzy, Similarity: sim}
		}
	}
	if best == nil {
		return Match{}, false
	}
	return *best, true
}

// similarity is 1 - levenshtein/maxLen over runes, in [0, 1].
// DiffLevenshtein counts runes, so the lengths must too.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return 1.0 - float64(distance)/float64(maxLen)
}
