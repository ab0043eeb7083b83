// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package docs

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/spf13/afero"
)

const gitignoreFile = ".gitignore"

// Ignore decides which paths under the root are left out of the audit.
// Patterns use .gitignore syntax.
type Ignore struct {
	matcher gitignore.Matcher
	empty   bool
}

// NewIgnore builds an Ignore from explicit patterns and, when
// useGitignore is set, the .gitignore file at the root (a missing file
// is not an error).
func NewIgnore(fs afero.Fs, root string, patterns []string, useGitignore bool) (*Ignore, error) {
	// Later patterns take priority, so explicit ones go last.
	var ps []gitignore.Pattern
	if useGitignore {
		fromFile, err := readGitignore(fs, filepath.Join(root, gitignoreFile))
		if err != nil {
			return nil, err
		}
		ps = append(ps, fromFile...)
	}

	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			ps = append(ps, gitignore.ParsePattern(p, nil))
		}
	}

	return &Ignore{matcher: gitignore.NewMatcher(ps), empty: len(ps) == 0}, nil
}

// Match reports whether rel (slash-separated, relative to the root) is
// excluded.
func (ig *Ignore) Match(rel string, isDir bool) bool {
	if ig == nil || ig.empty || rel == "." || rel == "" {
		return false
	}
	return ig.matcher.Match(strings.Split(rel, "/"), isDir)
}

func readGitignore(fs afero.Fs, path string) ([]gitignore.Pattern, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil || !exists {
		return nil, err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var ps []gitignore.Pattern
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(line, nil))
	}
	return ps, scanner.Err()
}
