// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package resolve

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultExtension is the markdown suffix authors tend to leave off links.
const DefaultExtension = ".md"

// Prober checks candidate paths against the filesystem, trying the
// markdown extension when the link omitted it.
type Prober struct {
	fs  afero.Fs
	ext string
}

// NewProber creates a Prober over fs. An empty ext uses DefaultExtension.
func NewProber(fs afero.Fs, ext string) *Prober {
	if ext == "" {
		ext = DefaultExtension
	}
	return &Prober{fs: fs, ext: ext}
}

// Exists reports whether path denotes a real entry, trying in order the
// path as given, the path with its suffix replaced by the extension, and
// (when it has no suffix) the path with the extension appended.
func (p *Prober) Exists(path string) bool {
	_, ok := p.Locate(path)
	return ok
}

// Locate is Exists, also returning the variant that matched.
func (p *Prober) Locate(path string) (string, bool) {
	for _, candidate := range p.candidates(path) {
		if ok, err := afero.Exists(p.fs, candidate); err == nil && ok {
			return candidate, true
		}
	}
	return "", false
}

func (p *Prober) candidates(path string) []string {
	candidates := []string{path}
	if withExt, ok := WithSuffix(path, p.ext); ok {
		candidates = append(candidates, withExt)
	}
	if Suffix(filepath.Base(path)) == "" {
		candidates = append(candidates, path+p.ext)
	}
	return candidates
}

// Suffix returns the final extension of name, including the dot. Names
// that start with their only dot (".wiki") or end with a dot have none.
func Suffix(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// Stem returns name without its Suffix.
func Stem(name string) string {
	return strings.TrimSuffix(name, Suffix(name))
}

// WithSuffix replaces the suffix of the last path element with ext, or
// appends ext if there is none. It reports false for paths without a
// usable final element.
func WithSuffix(path, ext string) (string, bool) {
	dir, name := filepath.Split(path)
	if name == "" || name == "." || name == ".." {
		return "", false
	}
	return dir + Stem(name) + ext, true
}
