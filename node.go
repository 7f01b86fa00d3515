// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package trie

import (
	"slices"
	"strings"
)

// node is a trie node where each edge consumes one path segment. Once a node is reachable from a
// built [Router], it is never modified again: insertions copy every node along the path and share
// all other subtrees.
type node[T any] struct {
	// Literal children, keyed by folded text in case-insensitive mode.
	constants map[string]*node[T]

	// Single slot shared by named parameters and anything routes. Present when wildcard.node != nil.
	wildcard wildcard[T]

	// Terminal fallback subtree.
	catchall *node[T]

	// Partial templates sorted in ascending ambiguity order. Sort is stable so equally
	// ambiguous templates keep their registration order.
	partials []partial[T]

	output T

	// The registered pattern when it's a leaf node.
	pattern string

	leaf bool
}

type wildcard[T any] struct {
	node *node[T]
	// name is the bound parameter name, empty if only anything routes were registered at this position.
	name     string
	anything bool
}

type partial[T any] struct {
	node     *node[T]
	template string
	literals []string
	captures []string
}

func (n *node[T]) isLeaf() bool {
	return n.leaf
}

func (n *node[T]) hasWildcard() bool {
	return n.wildcard.node != nil
}

// clone returns a shallow copy of n. Children are shared, but the constants map and the
// partials slice are copied so the clone can be edited without touching n.
func (n *node[T]) clone() *node[T] {
	nc := &node[T]{
		wildcard: n.wildcard,
		catchall: n.catchall,
		output:   n.output,
		pattern:  n.pattern,
		leaf:     n.leaf,
	}
	if len(n.constants) != 0 {
		nc.constants = make(map[string]*node[T], len(n.constants)+1)
		for k, child := range n.constants {
			nc.constants[k] = child
		}
	}
	if len(n.partials) != 0 {
		nc.partials = make([]partial[T], len(n.partials))
		copy(nc.partials, n.partials)
	}
	return nc
}

func (n *node[T]) getConstant(key string) *node[T] {
	return n.constants[key]
}

func (n *node[T]) setConstant(key string, child *node[T]) {
	if n.constants == nil {
		n.constants = make(map[string]*node[T])
	}
	n.constants[key] = child
}

// getPartial returns the index of the partial with the given template, or -1.
func (n *node[T]) getPartial(template string) int {
	for i := range n.partials {
		if n.partials[i].template == template {
			return i
		}
	}
	return -1
}

func (n *node[T]) sortPartials() {
	slices.SortStableFunc(n.partials, func(a, b partial[T]) int {
		return len(a.captures) - len(b.captures)
	})
}

// sortedConstants returns the constant keys in lexicographic order.
func (n *node[T]) sortedConstants() []string {
	keys := make([]string, 0, len(n.constants))
	for k := range n.constants {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// match decomposes segment against the partial template. Every literal must be found at or after the
// cursor, each capture takes everything up to the right-most occurrence of the following literal, and the
// cursor must end on the segment end. A capture may be empty. Captures are bound into params only once
// the whole template matched; params may be nil.
func (p *partial[T]) match(segment string, params *Params) bool {
	if !strings.HasPrefix(segment, p.literals[0]) {
		return false
	}

	var (
		bounds [8]int
		ends   = bounds[:0]
	)
	cursor := len(p.literals[0])
	for i := range p.captures {
		next := p.literals[i+1]
		idx := strings.LastIndex(segment[cursor:], next)
		if idx < 0 {
			return false
		}
		ends = append(ends, cursor+idx)
		cursor += idx + len(next)
	}

	if cursor != len(segment) {
		return false
	}

	if params != nil {
		start := len(p.literals[0])
		for i, name := range p.captures {
			params.bind(name, segment[start:ends[i]])
			start = ends[i] + len(p.literals[i+1])
		}
	}
	return true
}

func (n *node[T]) String() string {
	return n.string(0, "")
}

func (n *node[T]) string(space int, edge string) string {
	sb := strings.Builder{}
	sb.WriteString(strings.Repeat(" ", space))
	sb.WriteString("segment: ")
	if edge == "" {
		sb.WriteByte(slashDelim)
	} else {
		sb.WriteString(edge)
	}

	if n.isLeaf() {
		sb.WriteString(" [leaf=")
		sb.WriteString(n.pattern)
		sb.WriteString("]")
	}

	sb.WriteByte('\n')

	for _, key := range n.sortedConstants() {
		sb.WriteString(n.constants[key].string(space+4, key))
	}
	if n.hasWildcard() {
		label := anything
		if n.wildcard.name != "" {
			label = string(colonDelim) + n.wildcard.name
		}
		sb.WriteString(n.wildcard.node.string(space+4, label))
	}
	for i := range n.partials {
		sb.WriteString(n.partials[i].node.string(space+4, n.partials[i].template))
	}
	if n.catchall != nil {
		sb.WriteString(n.catchall.string(space+4, catchall))
	}
	return sb.String()
}
