// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package extract

import (
	"strings"

	"github.com/petar-djukic/linkaudit/pkg/types"
)

// externalPrefixes are matched case-sensitively, as written in the source.
var externalPrefixes = []string{"http://", "https://", "mailto:", "ftp://"}

// Classify decides whether url is external, anchor-only, or an internal
// candidate that needs resolution.
func Classify(url string) types.LinkClass {
	for _, p := range externalPrefixes {
		if strings.HasPrefix(url, p) {
			return types.External
		}
	}
	if strings.HasPrefix(url, "#") {
		return types.AnchorOnly
	}
	return types.InternalCandidate
}

// Fragment returns the part of url after the first '#', or "" if there
// is none.
func Fragment(url string) string {
	_, frag, ok := strings.Cut(url, "#")
	if !ok {
		return ""
	}
	return frag
}
