// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package extract

import (
	"bytes"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// headingParser is stateless apart from per-document ID tracking, which
// goldmark keeps in the parser context, so one instance serves all workers.
var headingParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
).Parser()

// Meta is the subset of frontmatter linkaudit reads from a document.
type Meta struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// SplitFrontMatter separates frontmatter from the markdown body. Sources
// without frontmatter, or with frontmatter that fails to decode, are
// returned whole with empty metadata.
func SplitFrontMatter(source []byte) (Meta, []byte) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Meta{}, source
	}
	return meta, body
}

// Anchors returns the set of heading IDs goldmark generates for body.
// IDs are lower-case, with spaces mapped to '-' and punctuation dropped;
// repeated headings get -1, -2 suffixes.
func Anchors(body []byte) map[string]bool {
	ctx := parser.NewContext()
	root := headingParser.Parse(text.NewReader(body), parser.WithContext(ctx))

	anchors := make(map[string]bool)
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if id, ok := heading.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				anchors[string(b)] = true
			}
		}
		return ast.WalkSkipChildren, nil
	})
	return anchors
}
