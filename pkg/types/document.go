// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Document is a single markdown file in the audited tree.
type Document struct {
	Path    string `json:"-"`               // Absolute filesystem path
	RelPath string `json:"path"`            // Slash-separated path relative to the root
	Title   string `json:"title,omitempty"` // Frontmatter title, if any
}

// DocumentSummary records per-document counts for documents that were
// successfully read during an audit.
type DocumentSummary struct {
	Document
	Links   int     `json:"links"`   // Links found in the document
	Broken  int     `json:"broken"`  // Broken links among them
	Inbound int     `json:"inbound"` // Distinct documents linking here
	Rank    float64 `json:"rank"`    // PageRank over the document link graph
}
