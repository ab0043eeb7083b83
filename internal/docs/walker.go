// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package docs enumerates and reads the markdown documents of a tree.
package docs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/petar-djukic/linkaudit/internal/extract"
	"github.com/petar-djukic/linkaudit/internal/resolve"
	"github.com/petar-djukic/linkaudit/pkg/types"
)

// ErrRootNotFound is returned when the document root cannot be walked.
var ErrRootNotFound = errors.New("document root not found")

// ErrInvalidEncoding is returned by Read for documents that are not UTF-8.
var ErrInvalidEncoding = errors.New("document is not valid UTF-8")

// Config configures document discovery.
type Config struct {
	Root      string   // Absolute document root (required)
	Extension string   // Markdown extension (default ".md")
	Exclude   []string // .gitignore-style patterns to skip
	Gitignore bool     // Also honour <root>/.gitignore
	SkipPaths []string // Absolute paths never treated as documents (e.g. the report)
}

// Content is a document's text split into frontmatter and body.
type Content struct {
	Text string       // Full source, as links are extracted from it
	Body []byte       // Source without frontmatter
	Meta extract.Meta // Decoded frontmatter
}

// Walker lists and reads documents through an afero filesystem.
type Walker struct {
	fs     afero.Fs
	cfg    Config
	ignore *Ignore
	skip   map[string]bool
}

// NewWalker creates a Walker. It fails only when the .gitignore file
// exists but cannot be read.
func NewWalker(fs afero.Fs, cfg Config) (*Walker, error) {
	if cfg.Extension == "" {
		cfg.Extension = resolve.DefaultExtension
	}
	cfg.Root = filepath.Clean(cfg.Root)

	ignore, err := NewIgnore(fs, cfg.Root, cfg.Exclude, cfg.Gitignore)
	if err != nil {
		return nil, fmt.Errorf("reading ignore rules: %w", err)
	}

	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[filepath.Clean(p)] = true
	}

	return &Walker{fs: fs, cfg: cfg, ignore: ignore, skip: skip}, nil
}

// Walk returns every document under the root in lexicographic order of
// full path. Entries that cannot be stat'ed are skipped. A root that is a
// symlink to a directory is followed; links below the root are not.
func (w *Walker) Walk(ctx context.Context) ([]types.Document, error) {
	if ok, err := afero.IsDir(w.fs, w.cfg.Root); err != nil || !ok {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, w.cfg.Root)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// afero.Walk lstats its starting point, so walk from the children.
	entries, err := afero.ReadDir(w.fs, w.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootNotFound, err)
	}

	var documents []types.Document
	visit := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip entries we cannot stat.
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, relErr := filepath.Rel(w.cfg.Root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if w.ignore.Match(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(info.Name(), w.cfg.Extension) || w.skip[filepath.Clean(path)] {
			return nil
		}
		if w.ignore.Match(rel, false) {
			return nil
		}

		documents = append(documents, types.Document{Path: path, RelPath: rel})
		return nil
	}

	for _, entry := range entries {
		if err := afero.Walk(w.fs, filepath.Join(w.cfg.Root, entry.Name()), visit); err != nil {
			return nil, err
		}
	}

	sort.Slice(documents, func(i, j int) bool {
		return documents[i].Path < documents[j].Path
	})
	return documents, nil
}

// Read loads a document. Documents that fail to read or are not valid
// UTF-8 return an error; callers skip them.
func (w *Walker) Read(doc types.Document) (*Content, error) {
	data, err := afero.ReadFile(w.fs, doc.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", doc.RelPath, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEncoding, doc.RelPath)
	}

	meta, body := extract.SplitFrontMatter(data)
	return &Content{Text: string(data), Body: body, Meta: meta}, nil
}
