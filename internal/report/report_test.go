// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/linkaudit/pkg/types"
)

func valid(file, url string) types.ClassifiedLink {
	return types.ClassifiedLink{File: file, Text: "Link", URL: url, Status: types.StatusValid}
}

func external(n int) []types.ClassifiedLink {
	out := make([]types.ClassifiedLink, 0, n)
	for i := range n {
		out = append(out, types.ClassifiedLink{
			File: "index.md", Text: fmt.Sprintf("Site %d", i),
			URL: fmt.Sprintf("https://example.com/%d", i), Status: types.StatusExternal,
		})
	}
	return out
}

func TestMarkdown_SingleValidLink(t *testing.T) {
	result := &types.AuditResult{
		TotalFiles: 2,
		TotalLinks: 1,
		Valid: []types.ClassifiedLink{{
			File: "index.md", Text: "Guide", URL: "guide.md", Status: types.StatusValid, Target: "guide.md",
		}},
	}

	want := "# Documentation Link Audit Report\n\n" +
		"Generated for wiki compatibility verification\n\n" +
		"## Statistics\n\n" +
		"- **Total Files Scanned**: 2\n" +
		"- **Total Links Found**: 1\n" +
		"- **Valid Internal Links**: 1\n" +
		"- **Broken Internal Links**: 0\n" +
		"- **External Links**: 0\n" +
		"- **Anchor-Only Links**: 0\n" +
		"- **Health Score**: 100%\n\n" +
		"## Broken Links\n\n" +
		"**No broken links found!** All internal links are valid.\n\n" +
		"## Wiki Compatibility Issues\n\n" +
		"Found 1 links that should be updated for wiki compatibility:\n\n" +
		"| File | Current URL | Issue | Suggested Fix |\n" +
		"|------|-------------|-------|---------------|\n" +
		"| index.md | `guide.md` | Contains .md extension | `guide` |\n\n" +
		"## External Links\n\n" +
		"Found 0 external links. Sample of external links:\n\n" +
		"\n## Recommendations\n\n" +
		"### For Wiki Compatibility\n\n" +
		"1. **Remove .md extensions**: Wiki links should be `[Text](Page)` not `[Text](Page.md)`\n" +
		"2. **Use relative paths**: Prefer `../folder/Page` over `/.wiki/folder/Page`\n" +
		"3. **Fix broken links**: Update or remove the broken links listed above\n" +
		"4. **Test in wiki**: Verify links work in GitHub Wiki environment\n\n" +
		"### Next Steps\n\n" +
		"2. Update 1 links to wiki format\n" +
		"3. Re-run this audit to verify fixes\n" +
		"4. Update `_Sidebar.md` with corrected paths\n"

	assert.Equal(t, want, Markdown(result, Options{}))
}

func TestMarkdown_NoLinksOmitsHealthScore(t *testing.T) {
	md := Markdown(&types.AuditResult{TotalFiles: 1}, Options{})

	assert.NotContains(t, md, "Health Score")
	assert.Contains(t, md, "- **Anchor-Only Links**: 0\n## Broken Links\n\n")
	assert.Contains(t, md, "## Wiki Compatibility Issues\n\n## External Links")
}

func TestMarkdown_BrokenLinks(t *testing.T) {
	result := &types.AuditResult{
		TotalFiles: 1,
		TotalLinks: 3,
		Valid:      []types.ClassifiedLink{valid("index.md", "guide")},
		Broken: []types.ClassifiedLink{
			{File: "index.md", Text: "Missing", URL: "missing.md", Status: types.StatusBroken, Suggestion: "missed.md", SuggestionStage: types.StageFuzzy},
			{File: "index.md", Text: "Gone", URL: "gone.md", Status: types.StatusBroken},
		},
	}

	md := Markdown(result, Options{})

	assert.Contains(t, md, "- **Health Score**: 33%\n\n")
	assert.Contains(t, md, "Found 2 broken internal links:\n\n")
	assert.Contains(t, md, "| index.md | Missing | `missing.md` | missed.md |\n")
	assert.Contains(t, md, "| index.md | Gone | `gone.md` | No similar file found |\n")
	assert.Contains(t, md, "### Next Steps\n\n1. Fix 2 broken links\n3. Re-run")
}

func TestMarkdown_TruncatesIssues(t *testing.T) {
	result := &types.AuditResult{}
	for i := range 55 {
		result.Add(valid("index.md", fmt.Sprintf("page%d.md", i)))
	}

	md := Markdown(result, Options{})
	assert.Equal(t, 50, strings.Count(md, "| Contains .md extension |"))
	assert.Contains(t, md, "\n*... and 5 more*\n")
	assert.Contains(t, md, "2. Update 55 links to wiki format\n")

	md = Markdown(result, Options{MaxIssueRows: 5})
	assert.Equal(t, 5, strings.Count(md, "| Contains .md extension |"))
	assert.Contains(t, md, "\n*... and 50 more*\n")
}

func TestMarkdown_SamplesExternalLinks(t *testing.T) {
	result := &types.AuditResult{TotalLinks: 12, External: external(12)}

	md := Markdown(result, Options{})

	assert.Contains(t, md, "Found 12 external links. Sample of external links:\n\n")
	assert.Contains(t, md, "- [Site 9](https://example.com/9) in `index.md`\n")
	assert.NotContains(t, md, "Site 10")
	assert.Contains(t, md, "\n*... and 2 more*\n\n## Recommendations")
}

func TestMarkdown_UnresolvedAnchors(t *testing.T) {
	result := &types.AuditResult{
		TotalLinks: 2,
		AnchorOnly: []types.ClassifiedLink{
			{File: "index.md", Text: "Top", URL: "#top", Status: types.StatusAnchorOnly},
			{File: "index.md", Text: "Nope", URL: "#nowhere", Status: types.StatusAnchorOnly, AnchorMissing: true},
		},
	}

	assert.NotContains(t, Markdown(result, Options{}), "Unresolved Anchors")

	md := Markdown(result, Options{CheckAnchors: true})
	assert.True(t, strings.HasSuffix(md,
		"\n## Unresolved Anchors\n\n"+
			"Found 1 links whose anchor matches no heading:\n\n"+
			"| File | Link Text | Target URL |\n"+
			"|------|-----------|------------|\n"+
			"| index.md | Nope | `#nowhere` |\n"))

	clean := Markdown(&types.AuditResult{}, Options{CheckAnchors: true})
	assert.Contains(t, clean, "**No unresolved anchors found!**")
}

func TestMarkdown_Orphans(t *testing.T) {
	result := &types.AuditResult{Orphans: []string{"lonely.md", "old/notes.md"}}

	assert.NotContains(t, Markdown(result, Options{}), "Orphaned Documents")

	md := Markdown(result, Options{Orphans: true, CheckAnchors: true})
	assert.Contains(t, md, "4. Update `_Sidebar.md` with corrected paths\n"+
		"\n## Orphaned Documents\n\n"+
		"Found 2 documents that no other document links to:\n\n"+
		"- `lonely.md`\n"+
		"- `old/notes.md`\n"+
		"\n## Unresolved Anchors\n\n")

	clean := Markdown(&types.AuditResult{}, Options{Orphans: true})
	assert.Contains(t, clean, "**No orphaned documents found!**")
}

func TestCompatIssues(t *testing.T) {
	tests := []struct {
		url       string
		ext       string
		wantIssue string
		wantFix   string
	}{
		{url: "guide.md", ext: ".md", wantIssue: "Contains .md extension", wantFix: "guide"},
		{url: "../a/b.md", ext: ".md", wantIssue: "Contains .md extension", wantFix: "../a/b"},
		{url: "/docs/Guide", ext: ".md", wantIssue: "Uses absolute path", wantFix: "Convert to relative path"},
		{url: "/docs/Guide.md", ext: ".md", wantIssue: "Contains .md extension", wantFix: "/docs/Guide"},
		{url: "guide.md#setup", ext: ".md"},
		{url: "guide", ext: ".md"},
		{url: "guide.markdown", ext: ".markdown", wantIssue: "Contains .markdown extension", wantFix: "guide"},
		{url: "guide.md", ext: ".markdown"},
	}

	for _, tt := range tests {
		t.Run(tt.ext+"/"+tt.url, func(t *testing.T) {
			issues := CompatIssues([]types.ClassifiedLink{valid("index.md", tt.url)}, tt.ext)
			if tt.wantIssue == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, tt.wantIssue, issues[0].Issue)
			assert.Equal(t, tt.wantFix, issues[0].Fix)
			assert.Equal(t, tt.url, issues[0].URL)
		})
	}
}

func TestMarkdown_CustomExtension(t *testing.T) {
	result := &types.AuditResult{
		TotalFiles: 2,
		TotalLinks: 1,
		Valid:      []types.ClassifiedLink{valid("index.markdown", "guide.markdown")},
	}

	got := Markdown(result, Options{Extension: ".markdown"})
	assert.Contains(t, got, "| index.markdown | `guide.markdown` | Contains .markdown extension | `guide` |\n")

	data, err := JSON(result, Options{Extension: ".markdown"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"issue": "Contains .markdown extension"`)
}

func TestJSON(t *testing.T) {
	result := &types.AuditResult{
		RunID:      "run-1",
		Root:       "/wiki",
		TotalFiles: 1,
		TotalLinks: 14,
		Valid:      []types.ClassifiedLink{valid("index.md", "guide.md")},
		Broken:     []types.ClassifiedLink{{File: "index.md", Text: "Gone", URL: "gone.md", Status: types.StatusBroken}},
		External:   external(12),
		Documents: []types.DocumentSummary{
			{Document: types.Document{Path: "/wiki/index.md", RelPath: "index.md", Title: "Home"}, Links: 14, Broken: 1},
		},
	}

	data, err := JSON(result, Options{})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "run-1", got["run_id"])
	stats := got["statistics"].(map[string]any)
	assert.EqualValues(t, 14, stats["total_links"])
	assert.EqualValues(t, 7, stats["health_score"])

	broken := got["broken"].([]any)
	require.Len(t, broken, 1)
	assert.Equal(t, NoSuggestion, broken[0].(map[string]any)["suggestion"])

	assert.Len(t, got["compat_issues"].([]any), 1)
	assert.Len(t, got["external_sample"].([]any), 10)
	assert.EqualValues(t, 2, got["external_more"])
	assert.NotContains(t, got, "missing_anchors")
	assert.NotContains(t, got, "orphans")

	doc := got["documents"].([]any)[0].(map[string]any)
	assert.Equal(t, "index.md", doc["path"])
	assert.Equal(t, "Home", doc["title"])
	assert.NotContains(t, doc, "Path")
}

func TestJSON_NoLinksOmitsHealthScore(t *testing.T) {
	data, err := JSON(&types.AuditResult{}, Options{})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.NotContains(t, got["statistics"], "health_score")
	assert.Empty(t, got["broken"])
}

func TestValidateJSON(t *testing.T) {
	result := &types.AuditResult{
		TotalLinks: 2,
		Valid:      []types.ClassifiedLink{{File: "a.md", Text: "B", URL: "b.md", Status: types.StatusValid, Target: "b.md", Located: "b.md"}},
		AnchorOnly: []types.ClassifiedLink{{File: "a.md", Text: "Top", URL: "#top", Status: types.StatusAnchorOnly, AnchorMissing: true}},
		Orphans:    []string{"a.md"},
	}
	data, err := JSON(result, Options{CheckAnchors: true, Orphans: true})
	require.NoError(t, err)
	require.NoError(t, ValidateJSON(data))

	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: "{"},
		{name: "missing fields", doc: `{"run_id": "x"}`},
		{name: "negative count", doc: `{"run_id": "", "root": "", "statistics": {"total_files": -1, "total_links": 0, "valid": 0, "broken": 0, "external": 0, "anchor_only": 0}, "broken": [], "compat_issues": [], "external_sample": [], "external_more": 0, "documents": []}`},
		{name: "unknown field", doc: `{"run_id": "", "root": "", "statistics": {"total_files": 0, "total_links": 0, "valid": 0, "broken": 0, "external": 0, "anchor_only": 0}, "broken": [], "compat_issues": [], "external_sample": [], "external_more": 0, "documents": [], "extra": true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateJSON([]byte(tt.doc)), ErrSchemaViolation)
		})
	}
}

func TestSchema(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal(Schema(), &schema))
	assert.Equal(t, "linkaudit report", schema["title"])
}

func TestWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/wiki", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/wiki/report.md", []byte("old"), 0o644))

	require.NoError(t, Write(fs, "/wiki/report.md", []byte("new")))

	data, err := afero.ReadFile(fs, "/wiki/report.md")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := afero.ReadDir(fs, "/wiki")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file should be renamed away")
}

func TestWrite_MissingDirectory(t *testing.T) {
	err := Write(afero.NewOsFs(), filepath.Join(t.TempDir(), "missing", "report.md"), []byte("data"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWrite_Failure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := Write(fs, "/wiki/report.md", []byte("data"))
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryInternal))
	assert.True(t, errors.Is(err, os.ErrPermission))
}
