// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package linkgraph

import (
	"math"
	"slices"
	"sort"
)

// Entry pages get this many times the teleport weight of other documents.
const personalizeFactor = 100.0

// RankConfig configures PageRank computation.
type RankConfig struct {
	Damping       float64  // Damping factor (default 0.85)
	MaxIterations int      // Maximum iterations (default 100)
	Tolerance     float64  // L1 convergence tolerance (default 1e-6)
	Personalized  []string // Documents that receive 100x teleport weight
}

func (c RankConfig) withDefaults() RankConfig {
	if c.Damping == 0 {
		c.Damping = 0.85
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 100
	}
	if c.Tolerance == 0 {
		c.Tolerance = 1e-6
	}
	return c
}

// Ranked is a document with its PageRank score.
type Ranked struct {
	Path  string
	Score float64
}

// Rank runs PageRank on the link graph and returns every document ranked
// by score, highest first; ties are broken by path.
func Rank(g *Graph, cfg RankConfig) []Ranked {
	if len(g.Nodes) == 0 {
		return nil
	}
	if g.out == nil {
		g.buildAdjacency()
	}
	cfg = cfg.withDefaults()

	teleport := g.teleport(cfg.Personalized)
	scores := make([]float64, len(g.Nodes))
	for i := range scores {
		scores[i] = 1 / float64(len(scores))
	}
	next := make([]float64, len(scores))

	for range cfg.MaxIterations {
		g.step(scores, next, teleport, cfg.Damping)
		delta := l1(scores, next)
		scores, next = next, scores
		if delta < cfg.Tolerance {
			break
		}
	}

	ranked := make([]Ranked, len(g.Nodes))
	for i, n := range g.Nodes {
		ranked[i] = Ranked{Path: n, Score: scores[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Path < ranked[j].Path
	})
	return ranked
}

// teleport returns the normalized random-jump distribution.
func (g *Graph) teleport(personalized []string) []float64 {
	v := make([]float64, len(g.Nodes))
	sum := 0.0
	for i, n := range g.Nodes {
		v[i] = 1
		if slices.Contains(personalized, n) {
			v[i] = personalizeFactor
		}
		sum += v[i]
	}
	for i := range v {
		v[i] /= sum
	}
	return v
}

// step computes one power iteration from cur into next. Documents with
// no outgoing links hand their score to the teleport distribution.
func (g *Graph) step(cur, next, teleport []float64, damping float64) {
	dangling := 0.0
	for i, arcs := range g.out {
		if len(arcs) == 0 {
			dangling += cur[i]
		}
	}
	for i := range next {
		next[i] = (1-damping+damping*dangling) * teleport[i]
	}
	for i, arcs := range g.out {
		for _, a := range arcs {
			next[a.to] += damping * cur[i] * a.share
		}
	}
}

func l1(a, b []float64) float64 {
	d := 0.0
	for i := range a {
		d += math.Abs(a[i] - b[i])
	}
	return d
}
