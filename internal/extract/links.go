// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package extract pulls markdown links out of document text and sorts
// them into external, anchor-only and internal candidates.
package extract

import (
	"regexp"

	"github.com/petar-djukic/linkaudit/pkg/types"
)

// linkPattern matches [text](url). The text excludes brackets so a stray
// '[' before a link does not swallow it; the URL stops at the first ')'.
var linkPattern = regexp.MustCompile(`\[([^\[\]]+)\]\(([^)]+)\)`)

// Links returns every [text](url) occurrence in text, in order of
// position. Malformed or unterminated syntax is not matched.
func Links(text string) []types.RawLink {
	matches := linkPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	links := make([]types.RawLink, 0, len(matches))
	for _, m := range matches {
		links = append(links, types.RawLink{Text: m[1], URL: m[2]})
	}
	return links
}
