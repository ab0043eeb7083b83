// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package linkaudit defines the public interface for linkaudit, a static
// auditor for links between markdown documents.
package linkaudit

import (
	"context"
	"errors"

	"github.com/petar-djukic/linkaudit/pkg/types"
)

// Error types for the linkaudit API.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrEnumerate     = errors.New("failed to enumerate documents")
	ErrReportWrite   = errors.New("failed to write report")
)

// Report formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// DefaultReportName is the report file name, without extension, used
// when no output path is configured.
const DefaultReportName = "LINK-AUDIT-REPORT"

// Config configures an Auditor.
type Config struct {
	Root               string   // Document root (required)
	RootSegment        string   // Folder name dropped from the start of "/..." links (empty disables)
	Extension          string   // Markdown extension (default ".md")
	Output             string   // Report path (default <root>/LINK-AUDIT-REPORT.md or .json)
	Format             string   // markdown or json (default markdown)
	Workers            int      // Concurrent document workers (default GOMAXPROCS)
	Exclude            []string // .gitignore-style patterns skipped during enumeration
	Gitignore          bool     // Also honour <root>/.gitignore
	CheckAnchors       bool     // Verify link fragments against heading IDs
	Orphans            bool     // Report documents no other document links to
	FuzzyThreshold     float64  // Fuzzy suggestion threshold (default 0.5, negative disables)
	MaxIssueRows       int      // Compatibility issues listed in the report (default 50)
	MaxExternalSamples int      // External links sampled in the report (default 10)
}

// Result holds the outcome of an Auditor.Run invocation.
type Result struct {
	Audit          *types.AuditResult // Complete, read-only audit
	ReportPath     string             // Where the report was written
	HealthScore    int                // floor(100 * valid / total)
	HasHealthScore bool               // False when no links were found
}

// BrokenCount returns the number of broken internal links.
func (r *Result) BrokenCount() int {
	return len(r.Audit.Broken)
}

// Auditor audits a documentation tree and writes a report.
type Auditor interface {
	// Run enumerates the tree, classifies every link, writes the report
	// and returns the result. Each call is an independent audit.
	Run(ctx context.Context) (*Result, error)
}
