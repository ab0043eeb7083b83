// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package linkgraph models the documents of a tree as a directed graph
// of links, for inbound counts, orphan detection and ranking.
package linkgraph

import (
	"path"
	"sort"
	"strings"

	"github.com/petar-djukic/linkaudit/internal/resolve"
	"github.com/petar-djukic/linkaudit/pkg/types"
)

// DefaultEntryPages are the stems of documents readers reach without a
// link: landing pages and wiki chrome.
var DefaultEntryPages = []string{"index", "readme", "home", "_sidebar", "_footer"}

// Edge is a directed edge between two documents.
type Edge struct {
	From   string  // Linking document
	To     string  // Linked document
	Weight float64 // Number of links from From to To
}

// Graph is a directed graph where nodes are documents and edges are
// valid links between distinct documents.
type Graph struct {
	Nodes   []string // All document paths, sorted
	Edges   []Edge   // All edges, sorted by From then To
	inbound map[string]int
	out     [][]arc // Outgoing arcs per node index
}

// arc is an outgoing edge by node index, carrying the fraction of the
// source's link weight it receives.
type arc struct {
	to    int
	share float64
}

// Build constructs the graph over documents (root-relative paths) from
// the valid links of an audit. Links to directories, to files outside
// the document set, and from a document to itself add no edge.
func Build(documents []string, links []types.ClassifiedLink) *Graph {
	g := &Graph{
		Nodes:   append([]string(nil), documents...),
		inbound: make(map[string]int),
	}
	sort.Strings(g.Nodes)

	nodeSet := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		nodeSet[n] = true
	}

	type edgeKey struct {
		from, to string
	}
	edgeCounts := make(map[edgeKey]int)

	for _, l := range links {
		if l.Status != types.StatusValid || l.Located == "" || l.Located == l.File {
			continue
		}
		if !nodeSet[l.File] || !nodeSet[l.Located] {
			continue
		}
		edgeCounts[edgeKey{from: l.File, to: l.Located}]++
	}

	for key, count := range edgeCounts {
		g.Edges = append(g.Edges, Edge{From: key.from, To: key.to, Weight: float64(count)})
		g.inbound[key.to]++
	}
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].From != g.Edges[j].From {
			return g.Edges[i].From < g.Edges[j].From
		}
		return g.Edges[i].To < g.Edges[j].To
	})
	g.buildAdjacency()

	return g
}

func (g *Graph) buildAdjacency() {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		idx[n] = i
	}

	g.out = make([][]arc, len(g.Nodes))
	total := make([]float64, len(g.Nodes))
	for _, e := range g.Edges {
		from := idx[e.From]
		g.out[from] = append(g.out[from], arc{to: idx[e.To], share: e.Weight})
		total[from] += e.Weight
	}
	for i, arcs := range g.out {
		for j := range arcs {
			arcs[j].share /= total[i]
		}
	}
}

// Inbound returns how many distinct documents link to doc.
func (g *Graph) Inbound(doc string) int {
	return g.inbound[doc]
}

// EntryPages returns the nodes whose stem matches one of stems,
// case-insensitively.
func (g *Graph) EntryPages(stems []string) []string {
	var out []string
	for _, n := range g.Nodes {
		if isEntryPage(n, stems) {
			out = append(out, n)
		}
	}
	return out
}

// Orphans returns the documents no other document links to, excluding
// entry pages, in path order.
func (g *Graph) Orphans(entryStems []string) []string {
	var out []string
	for _, n := range g.Nodes {
		if g.inbound[n] == 0 && !isEntryPage(n, entryStems) {
			out = append(out, n)
		}
	}
	return out
}

func isEntryPage(doc string, stems []string) bool {
	stem := strings.ToLower(resolve.Stem(path.Base(doc)))
	for _, s := range stems {
		if stem == strings.ToLower(s) {
			return true
		}
	}
	return false
}
