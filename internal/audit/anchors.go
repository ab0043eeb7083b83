// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package audit

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/petar-djukic/linkaudit/internal/extract"
)

// anchorCache lazily collects heading IDs for the documents one worker
// touches. It is owned by a single worker and never shared.
type anchorCache struct {
	fs   afero.Fs
	sets map[string]map[string]bool
	self string
	body []byte
}

func newAnchorCache(fs afero.Fs, selfPath string, selfBody []byte) *anchorCache {
	return &anchorCache{
		fs:   fs,
		sets: make(map[string]map[string]bool),
		self: selfPath,
		body: selfBody,
	}
}

// has reports whether the document at path defines fragment. Empty
// fragments always match; unreadable targets never do.
func (c *anchorCache) has(path, fragment string) bool {
	if fragment == "" {
		return true
	}
	set, ok := c.sets[path]
	if !ok {
		set = c.load(path)
		c.sets[path] = set
	}
	return set[strings.ToLower(fragment)]
}

func (c *anchorCache) load(path string) map[string]bool {
	if path == c.self {
		return extract.Anchors(c.body)
	}
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil
	}
	_, body := extract.SplitFrontMatter(data)
	return extract.Anchors(body)
}
