// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package resolve maps internal link URLs onto filesystem paths and
// checks whether those paths name real documents.
package resolve

import (
	"path/filepath"
	"strings"
)

// Resolver turns an internal-candidate URL into an absolute path. It
// never fails: existence is checked separately by a Prober.
type Resolver struct {
	root        string // Absolute, cleaned document root
	rootSegment string // Redundant leading segment dropped from root-relative URLs
}

// NewResolver creates a Resolver for the tree at root. rootSegment is the
// folder name that authors sometimes repeat at the start of root-relative
// links (e.g. "/.wiki/page" when the root is the .wiki directory); empty
// disables the stripping.
func NewResolver(root, rootSegment string) *Resolver {
	return &Resolver{
		root:        filepath.Clean(root),
		rootSegment: strings.Trim(rootSegment, "/"),
	}
}

// Root returns the absolute document root.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve maps url, found in the document at sourcePath, to a candidate
// path. The boolean is false when url reduces to a bare fragment.
func (r *Resolver) Resolve(url, sourcePath string) (string, bool) {
	clean, _, _ := strings.Cut(url, "#")
	if clean == "" {
		return "", false
	}

	if strings.HasPrefix(clean, "/") {
		return r.resolveRootRelative(clean), true
	}
	return resolveRelative(clean, filepath.Dir(sourcePath)), true
}

// resolveRootRelative joins a "/..." URL onto the root, dropping a
// repeated root folder name.
func (r *Resolver) resolveRootRelative(clean string) string {
	rest := strings.TrimLeft(clean, "/")
	if r.rootSegment != "" {
		if rest == r.rootSegment {
			rest = ""
		} else if trimmed, ok := strings.CutPrefix(rest, r.rootSegment+"/"); ok {
			rest = trimmed
		}
	}
	return filepath.Join(r.root, filepath.FromSlash(rest))
}

// resolveRelative joins clean onto dir and normalizes the result,
// falling back to the raw join if normalization fails.
func resolveRelative(clean, dir string) string {
	joined := dir + string(filepath.Separator) + filepath.FromSlash(clean)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return joined
	}
	return abs
}

// Target renders path for reports: slash-separated and relative to the
// root when inside it, unchanged otherwise.
func (r *Resolver) Target(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
