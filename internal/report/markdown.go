// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders an AuditResult as a markdown or JSON report and
// writes it to disk.
package report

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/linkaudit/internal/resolve"
	"github.com/petar-djukic/linkaudit/pkg/types"
)

const (
	defaultMaxIssueRows       = 50
	defaultMaxExternalSamples = 10
)

// NoSuggestion is rendered for broken links without a replacement.
const NoSuggestion = "No similar file found"

// Options configures rendering.
type Options struct {
	MaxIssueRows       int    // Compatibility issues listed before the remainder line (default 50)
	MaxExternalSamples int    // External links sampled (default 10)
	CheckAnchors       bool   // Append the unresolved anchors section
	Orphans            bool   // Append the orphaned documents section
	Extension          string // Document extension flagged in valid links (default ".md")
}

func (o Options) withDefaults() Options {
	if o.MaxIssueRows <= 0 {
		o.MaxIssueRows = defaultMaxIssueRows
	}
	if o.MaxExternalSamples <= 0 {
		o.MaxExternalSamples = defaultMaxExternalSamples
	}
	if o.Extension == "" {
		o.Extension = resolve.DefaultExtension
	}
	return o
}

// CompatIssue is a valid link written in a form the wiki cannot publish.
type CompatIssue struct {
	File  string `json:"file"`
	Text  string `json:"text"`
	URL   string `json:"url"`
	Issue string `json:"issue"`
	Fix   string `json:"fix"`
}

// CompatIssues lists valid links with an explicit ext suffix or a
// root-absolute path, in input order. The suffix check wins when both
// apply.
func CompatIssues(valid []types.ClassifiedLink, ext string) []CompatIssue {
	var issues []CompatIssue
	for _, l := range valid {
		switch {
		case strings.HasSuffix(l.URL, ext):
			issues = append(issues, CompatIssue{
				File: l.File, Text: l.Text, URL: l.URL,
				Issue: "Contains " + ext + " extension",
				Fix:   strings.TrimSuffix(l.URL, ext),
			})
		case strings.HasPrefix(l.URL, "/"):
			issues = append(issues, CompatIssue{
				File: l.File, Text: l.Text, URL: l.URL,
				Issue: "Uses absolute path",
				Fix:   "Convert to relative path",
			})
		}
	}
	return issues
}

// Suggestion returns the text shown in the suggestion column.
func Suggestion(l types.ClassifiedLink) string {
	if !l.HasSuggestion() {
		return NoSuggestion
	}
	return l.Suggestion
}

// Markdown renders the audit report.
func Markdown(result *types.AuditResult, opts Options) string {
	opts = opts.withDefaults()
	issues := CompatIssues(result.Valid, opts.Extension)

	var buf strings.Builder

	buf.WriteString("# Documentation Link Audit Report\n\n")
	buf.WriteString("Generated for wiki compatibility verification\n\n")

	writeStatistics(&buf, result)
	writeBroken(&buf, result.Broken)
	writeIssues(&buf, issues, opts.MaxIssueRows)
	writeExternal(&buf, result.External, opts.MaxExternalSamples)
	writeRecommendations(&buf, len(result.Broken), len(issues))

	if opts.Orphans {
		writeOrphans(&buf, result.Orphans)
	}
	if opts.CheckAnchors {
		writeAnchors(&buf, result.MissingAnchors())
	}

	return buf.String()
}

func writeStatistics(buf *strings.Builder, result *types.AuditResult) {
	buf.WriteString("## Statistics\n\n")
	fmt.Fprintf(buf, "- **Total Files Scanned**: %d\n", result.TotalFiles)
	fmt.Fprintf(buf, "- **Total Links Found**: %d\n", result.TotalLinks)
	fmt.Fprintf(buf, "- **Valid Internal Links**: %d\n", len(result.Valid))
	fmt.Fprintf(buf, "- **Broken Internal Links**: %d\n", len(result.Broken))
	fmt.Fprintf(buf, "- **External Links**: %d\n", len(result.External))
	fmt.Fprintf(buf, "- **Anchor-Only Links**: %d\n", len(result.AnchorOnly))

	// The blank line closing the list belongs to the score line.
	if score, ok := result.HealthScore(); ok {
		fmt.Fprintf(buf, "- **Health Score**: %d%%\n\n", score)
	}
}

func writeBroken(buf *strings.Builder, broken []types.ClassifiedLink) {
	buf.WriteString("## Broken Links\n\n")
	if len(broken) == 0 {
		buf.WriteString("**No broken links found!** All internal links are valid.\n\n")
		return
	}

	fmt.Fprintf(buf, "Found %d broken internal links:\n\n", len(broken))
	buf.WriteString("| File | Link Text | Target URL | Suggestion |\n")
	buf.WriteString("|------|-----------|------------|------------|\n")
	for _, l := range broken {
		fmt.Fprintf(buf, "| %s | %s | `%s` | %s |\n", l.File, l.Text, l.URL, Suggestion(l))
	}
	buf.WriteString("\n")
}

func writeIssues(buf *strings.Builder, issues []CompatIssue, maxRows int) {
	buf.WriteString("## Wiki Compatibility Issues\n\n")
	if len(issues) == 0 {
		return
	}

	fmt.Fprintf(buf, "Found %d links that should be updated for wiki compatibility:\n\n", len(issues))
	buf.WriteString("| File | Current URL | Issue | Suggested Fix |\n")
	buf.WriteString("|------|-------------|-------|---------------|\n")
	for _, issue := range issues[:min(maxRows, len(issues))] {
		fmt.Fprintf(buf, "| %s | `%s` | %s | `%s` |\n", issue.File, issue.URL, issue.Issue, issue.Fix)
	}
	if len(issues) > maxRows {
		fmt.Fprintf(buf, "\n*... and %d more*\n", len(issues)-maxRows)
	}
	buf.WriteString("\n")
}

func writeExternal(buf *strings.Builder, external []types.ClassifiedLink, samples int) {
	buf.WriteString("## External Links\n\n")
	fmt.Fprintf(buf, "Found %d external links. ", len(external))
	buf.WriteString("Sample of external links:\n\n")

	for _, l := range external[:min(samples, len(external))] {
		fmt.Fprintf(buf, "- [%s](%s) in `%s`\n", l.Text, l.URL, l.File)
	}
	if len(external) > samples {
		fmt.Fprintf(buf, "\n*... and %d more*\n", len(external)-samples)
	}
}

func writeRecommendations(buf *strings.Builder, broken, issues int) {
	buf.WriteString("\n## Recommendations\n\n")
	buf.WriteString("### For Wiki Compatibility\n\n")
	buf.WriteString("1. **Remove .md extensions**: Wiki links should be `[Text](Page)` not `[Text](Page.md)`\n")
	buf.WriteString("2. **Use relative paths**: Prefer `../folder/Page` over `/.wiki/folder/Page`\n")
	buf.WriteString("3. **Fix broken links**: Update or remove the broken links listed above\n")
	buf.WriteString("4. **Test in wiki**: Verify links work in GitHub Wiki environment\n\n")

	// Step numbers are fixed even when a step is omitted.
	buf.WriteString("### Next Steps\n\n")
	if broken > 0 {
		fmt.Fprintf(buf, "1. Fix %d broken links\n", broken)
	}
	if issues > 0 {
		fmt.Fprintf(buf, "2. Update %d links to wiki format\n", issues)
	}
	buf.WriteString("3. Re-run this audit to verify fixes\n")
	buf.WriteString("4. Update `_Sidebar.md` with corrected paths\n")
}

func writeOrphans(buf *strings.Builder, orphans []string) {
	buf.WriteString("\n## Orphaned Documents\n\n")
	if len(orphans) == 0 {
		buf.WriteString("**No orphaned documents found!** Every page is linked from another page.\n")
		return
	}

	fmt.Fprintf(buf, "Found %d documents that no other document links to:\n\n", len(orphans))
	for _, o := range orphans {
		fmt.Fprintf(buf, "- `%s`\n", o)
	}
}

func writeAnchors(buf *strings.Builder, missing []types.ClassifiedLink) {
	buf.WriteString("\n## Unresolved Anchors\n\n")
	if len(missing) == 0 {
		buf.WriteString("**No unresolved anchors found!** Every fragment names a heading.\n")
		return
	}

	fmt.Fprintf(buf, "Found %d links whose anchor matches no heading:\n\n", len(missing))
	buf.WriteString("| File | Link Text | Target URL |\n")
	buf.WriteString("|------|-----------|------------|\n")
	for _, l := range missing {
		fmt.Fprintf(buf, "| %s | %s | `%s` |\n", l.File, l.Text, l.URL)
	}
}
