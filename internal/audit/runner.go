// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package audit implements the audit orchestrator, wiring enumeration,
// extraction, resolution and suggestion into a single AuditResult.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/afero"

	"github.com/petar-djukic/linkaudit/internal/docs"
	"github.com/petar-djukic/linkaudit/internal/extract"
	"github.com/petar-djukic/linkaudit/internal/linkgraph"
	"github.com/petar-djukic/linkaudit/internal/logging"
	"github.com/petar-djukic/linkaudit/internal/resolve"
	"github.com/petar-djukic/linkaudit/internal/suggest"
	"github.com/petar-djukic/linkaudit/pkg/types"
)

// Deps holds injected dependencies and settings for the runner.
type Deps struct {
	Fs             afero.Fs     // Filesystem to audit; nil means the OS filesystem
	Logger         *slog.Logger // nil discards
	RunID          string       // Generated when empty
	Root           string       // Absolute document root
	RootSegment    string       // Redundant root folder name in "/..." links
	Extension      string       // Markdown extension (default ".md")
	Exclude        []string     // .gitignore-style exclusions
	Gitignore      bool         // Honour <root>/.gitignore
	SkipPaths      []string     // Absolute paths never audited
	Workers        int          // Concurrent document workers (0 = GOMAXPROCS)
	CheckAnchors   bool         // Verify fragments against heading IDs
	FuzzyThreshold float64      // Fuzzy suggestion threshold (0 = default, <0 disables)
}

// Runner orchestrates one audit over a document tree.
type Runner struct {
	deps     Deps
	logger   *slog.Logger
	resolver *resolve.Resolver
	prober   *resolve.Prober
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Extension == "" {
		deps.Extension = resolve.DefaultExtension
	}
	if deps.RunID == "" {
		deps.RunID = uuid.NewString()
	}
	logger := logging.OrDiscard(deps.Logger).With(slog.String("run_id", deps.RunID))

	return &Runner{
		deps:     deps,
		logger:   logger,
		resolver: resolve.NewResolver(deps.Root, deps.RootSegment),
		prober:   resolve.NewProber(deps.Fs, deps.Extension),
	}
}

// batch is the self-contained output of one worker for one document.
type batch struct {
	doc     types.Document
	links   []types.ClassifiedLink
	skipped error // Non-nil when the document could not be read
}

// Run executes the audit: enumerate, index, process documents in
// parallel, then merge the batches in enumeration order.
func (r *Runner) Run(ctx context.Context) (*types.AuditResult, error) {
	walker, err := docs.NewWalker(r.deps.Fs, docs.Config{
		Root:      r.resolver.Root(),
		Extension: r.deps.Extension,
		Exclude:   r.deps.Exclude,
		Gitignore: r.deps.Gitignore,
		SkipPaths: r.deps.SkipPaths,
	})
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Scanning documentation files", slog.String("root", r.resolver.Root()))

	// Step 1: Enumerate once, in a fixed order.
	documents, err := walker.Walk(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerating documents: %w", err)
	}

	// Step 2: Build the suggestion index before any worker can search it.
	index := suggest.NewIndex(documents, suggest.Config{
		Extension:      r.deps.Extension,
		FuzzyThreshold: r.deps.FuzzyThreshold,
	})

	// Step 3: Process documents; workers only produce batches.
	mapper := iter.Mapper[types.Document, batch]{MaxGoroutines: r.deps.Workers}
	batches := mapper.Map(documents, func(doc *types.Document) batch {
		if ctx.Err() != nil {
			return batch{doc: *doc, skipped: ctx.Err()}
		}
		return r.processDocument(ctx, walker, index, *doc)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 4: Merge on this goroutine only.
	result := &types.AuditResult{RunID: r.deps.RunID, Root: r.resolver.Root()}
	for _, b := range batches {
		if b.skipped != nil {
			r.logger.DebugContext(ctx, "Skipping unreadable document",
				slog.String("file", b.doc.RelPath),
				slog.Any("error", b.skipped))
			continue
		}

		result.TotalFiles++
		summary := types.DocumentSummary{Document: b.doc, Links: len(b.links)}
		for _, link := range b.links {
			if link.Status == types.StatusBroken {
				summary.Broken++
			}
			result.Add(link)
		}
		result.Documents = append(result.Documents, summary)
	}

	annotateGraph(result)

	r.logger.InfoContext(ctx, "Scan complete",
		slog.Int("files", result.TotalFiles),
		slog.Int("links", result.TotalLinks),
		slog.Int("broken", len(result.Broken)))

	return result, nil
}

// processDocument reads one document and classifies each of its links.
func (r *Runner) processDocument(ctx context.Context, walker *docs.Walker, index *suggest.Index, doc types.Document) batch {
	content, err := walker.Read(doc)
	if err != nil {
		return batch{doc: doc, skipped: err}
	}
	doc.Title = content.Meta.Title

	r.logger.DebugContext(ctx, "Analyzing", slog.String("file", doc.RelPath))

	anchors := newAnchorCache(r.deps.Fs, doc.Path, content.Body)
	raw := extract.Links(content.Text)
	links := make([]types.ClassifiedLink, 0, len(raw))
	for _, l := range raw {
		links = append(links, r.classify(doc, l, index, anchors))
	}

	return batch{doc: doc, links: links}
}

// classify routes a raw link through the classifier and, for internal
// candidates, the resolver, prober and suggester.
func (r *Runner) classify(doc types.Document, l types.RawLink, index *suggest.Index, anchors *anchorCache) types.ClassifiedLink {
	link := types.ClassifiedLink{File: doc.RelPath, Text: l.Text, URL: l.URL}

	switch extract.Classify(l.URL) {
	case types.External:
		link.Status = types.StatusExternal
		return link
	case types.AnchorOnly:
		link.Status = types.StatusAnchorOnly
		if r.deps.CheckAnchors {
			link.AnchorMissing = !anchors.has(doc.Path, extract.Fragment(l.URL))
		}
		return link
	}

	target, ok := r.resolver.Resolve(l.URL, doc.Path)
	if !ok {
		// A bare fragment that slipped past the classifier.
		link.Status = types.StatusAnchorOnly
		return link
	}
	link.Target = r.resolver.Target(target)

	if found, ok := r.prober.Locate(target); ok {
		link.Status = types.StatusValid
		link.Located = r.resolver.Target(found)
		if frag := extract.Fragment(l.URL); r.deps.CheckAnchors && frag != "" && strings.HasSuffix(found, r.deps.Extension) {
			link.AnchorMissing = !anchors.has(filepath.Clean(found), frag)
		}
		return link
	}

	link.Status = types.StatusBroken
	if m := index.Suggest(target); m.Found() {
		link.Suggestion = m.RelPath
		link.SuggestionStage = m.Stage
	}
	return link
}

// annotateGraph fills in inbound counts, ranks and orphans from the
// links between audited documents.
func annotateGraph(result *types.AuditResult) {
	paths := make([]string, 0, len(result.Documents))
	for _, d := range result.Documents {
		paths = append(paths, d.RelPath)
	}

	g := linkgraph.Build(paths, result.Valid)
	scores := make(map[string]float64, len(paths))
	for _, r := range linkgraph.Rank(g, linkgraph.RankConfig{
		Personalized: g.EntryPages(linkgraph.DefaultEntryPages),
	}) {
		scores[r.Path] = r.Score
	}

	for i := range result.Documents {
		d := &result.Documents[i]
		d.Inbound = g.Inbound(d.RelPath)
		d.Rank = scores[d.RelPath]
	}
	result.Orphans = g.Orphans(linkgraph.DefaultEntryPages)
}
