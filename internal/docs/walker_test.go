// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package docs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/linkaudit/pkg/types"
)

// setupTree writes files (relative path -> content) under /wiki on an
// in-memory filesystem.
func setupTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/wiki", 0o755))
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("/wiki", name), []byte(content), 0o644))
	}
	return fs
}

func relPaths(documents []types.Document) []string {
	out := make([]string, 0, len(documents))
	for _, d := range documents {
		out = append(out, d.RelPath)
	}
	return out
}

func TestWalker_WalkSortedMarkdownOnly(t *testing.T) {
	fs := setupTree(t, map[string]string{
		"zeta.md":         "",
		"alpha.md":        "",
		"guides/setup.md": "",
		"guides/a.md":     "",
		"image.png":       "",
		"notes.txt":       "",
	})

	w, err := NewWalker(fs, Config{Root: "/wiki"})
	require.NoError(t, err)

	documents, err := w.Walk(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha.md", "guides/a.md", "guides/setup.md", "zeta.md"}, relPaths(documents))
	assert.Equal(t, "/wiki/alpha.md", documents[0].Path)
}

func TestWalker_MissingRoot(t *testing.T) {
	w, err := NewWalker(afero.NewMemMapFs(), Config{Root: "/nope"})
	require.NoError(t, err)

	_, err = w.Walk(context.Background())
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestWalker_SymlinkedRoot(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "index.md"), []byte("[Guide](sub/guide.md)\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(target, "sub", "guide.md"), []byte("# Guide\n"), 0o644))

	root := filepath.Join(dir, "wiki")
	if err := os.Symlink(target, root); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	w, err := NewWalker(afero.NewOsFs(), Config{Root: root})
	require.NoError(t, err)

	documents, err := w.Walk(context.Background())
	require.NoError(t, err)

	var rels []string
	for _, d := range documents {
		rels = append(rels, d.RelPath)
		assert.Equal(t, filepath.Join(root, filepath.FromSlash(d.RelPath)), d.Path)
	}
	assert.Equal(t, []string{"index.md", "sub/guide.md"}, rels)
}

func TestWalker_ExcludePatterns(t *testing.T) {
	fs := setupTree(t, map[string]string{
		"index.md":         "",
		"drafts/wip.md":    "",
		"_Sidebar.md":      "",
		"guides/_notes.md": "",
		"guides/keep.md":   "",
	})

	w, err := NewWalker(fs, Config{Root: "/wiki", Exclude: []string{"drafts/", "_*.md"}})
	require.NoError(t, err)

	documents, err := w.Walk(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"guides/keep.md", "index.md"}, relPaths(documents))
}

func TestWalker_Gitignore(t *testing.T) {
	fs := setupTree(t, map[string]string{
		".gitignore":      "# generated\nbuild/\n\n*.draft.md\n",
		"index.md":        "",
		"build/out.md":    "",
		"page.draft.md":   "",
		"guides/guide.md": "",
	})

	w, err := NewWalker(fs, Config{Root: "/wiki", Gitignore: true})
	require.NoError(t, err)
	documents, err := w.Walk(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"guides/guide.md", "index.md"}, relPaths(documents))

	w, err = NewWalker(fs, Config{Root: "/wiki"})
	require.NoError(t, err)
	documents, err = w.Walk(context.Background())
	require.NoError(t, err)
	assert.Len(t, documents, 4)
}

func TestWalker_ExplicitPatternOverridesGitignore(t *testing.T) {
	fs := setupTree(t, map[string]string{
		".gitignore": "*.draft.md\n",
		"a.draft.md": "",
	})

	w, err := NewWalker(fs, Config{Root: "/wiki", Gitignore: true, Exclude: []string{"!a.draft.md"}})
	require.NoError(t, err)
	documents, err := w.Walk(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.draft.md"}, relPaths(documents))
}

func TestWalker_SkipPaths(t *testing.T) {
	fs := setupTree(t, map[string]string{
		"index.md":             "",
		"LINK-AUDIT-REPORT.md": "",
	})

	w, err := NewWalker(fs, Config{Root: "/wiki", SkipPaths: []string{"/wiki/LINK-AUDIT-REPORT.md"}})
	require.NoError(t, err)
	documents, err := w.Walk(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"index.md"}, relPaths(documents))
}

func TestWalker_CancelledContext(t *testing.T) {
	fs := setupTree(t, map[string]string{"index.md": ""})
	w, err := NewWalker(fs, Config{Root: "/wiki"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = w.Walk(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWalker_Read(t *testing.T) {
	fs := setupTree(t, map[string]string{
		"page.md":   "---\ntitle: Page Title\n---\n# Heading\n[Link](other.md)\n",
		"binary.md": "\xff\xfe\xfd",
	})
	w, err := NewWalker(fs, Config{Root: "/wiki"})
	require.NoError(t, err)

	content, err := w.Read(types.Document{Path: "/wiki/page.md", RelPath: "page.md"})
	require.NoError(t, err)
	assert.Equal(t, "Page Title", content.Meta.Title)
	assert.Contains(t, content.Text, "title: Page Title")
	assert.Equal(t, "# Heading\n[Link](other.md)\n", string(content.Body))

	_, err = w.Read(types.Document{Path: "/wiki/binary.md", RelPath: "binary.md"})
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	_, err = w.Read(types.Document{Path: "/wiki/gone.md", RelPath: "gone.md"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
