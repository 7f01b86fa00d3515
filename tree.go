// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package trie

import (
	"iter"

	"github.com/tigerwill90/trie/internal/iterutil"
	"github.com/tigerwill90/trie/internal/stringutil"
)

// Router is an immutable snapshot of a trie built by [Builder.Build]. The immutability means that it is
// safe to concurrently route from a Router without any coordination.
type Router[T any] struct {
	root            *node[T]
	size            int
	caseInsensitive bool
}

// Route returns the output registered for path, a sequence of already split path segments, and true,
// or the zero value and false if no route matches. Matched parameters and catchall segments are bound into
// params, which may be nil if they are not needed.
//
// At each segment, a constant wins over the wildcard (named parameter or anything), which wins over
// partial templates, tried from the most specific to the most ambiguous. A catchall is only used as a
// fallback: when the descent cannot proceed, or ends on a node without output, the deepest catchall
// seen so far captures the remaining segments, otherwise the catchall capture of params is cleared. If no
// route matches, params is restored to the state it had before the call.
func (r *Router[T]) Route(path []string, params *Params) (T, bool) {
	n, suffix := r.lookup(path, params)
	if n == nil {
		var zero T
		return zero, false
	}
	if params != nil {
		if suffix != nil {
			params.SetCatchall(suffix)
		} else {
			params.catchall = params.catchall[:0]
		}
	}
	return n.output, true
}

// Match reports whether path matches a registered route. It is equivalent to calling [Router.Route] with a
// nil Params.
func (r *Router[T]) Match(path []string) bool {
	n, _ := r.lookup(path, nil)
	return n != nil
}

// lookup returns the leaf matching path, and the segments captured by a catchall if the match is a
// catchall fallback. A nil node means no match.
func (r *Router[T]) lookup(path []string, params *Params) (n *node[T], catchallSuffix []string) {
	var (
		fallback     *node[T]
		fallbackAt   int
		paramsMark   int
		initialCount int
	)

	if params != nil {
		initialCount = params.Len()
	}

	current := r.root

Walk:
	for i, segment := range path {
		if current.catchall != nil && current.catchall.isLeaf() {
			// The deepest enclosing catchall wins.
			fallback = current.catchall
			fallbackAt = i
			if params != nil {
				paramsMark = params.Len()
			}
		}

		key := segment
		if r.caseInsensitive {
			key = stringutil.Fold(segment)
		}
		if child := current.getConstant(key); child != nil {
			current = child
			continue
		}

		if current.hasWildcard() {
			if params != nil && current.wildcard.name != "" {
				params.bind(current.wildcard.name, segment)
			}
			current = current.wildcard.node
			continue
		}

		for j := range current.partials {
			if current.partials[j].match(segment, params) {
				current = current.partials[j].node
				continue Walk
			}
		}

		return r.fallback(fallback, path, fallbackAt, params, paramsMark, initialCount)
	}

	if current.isLeaf() {
		return current, nil
	}

	return r.fallback(fallback, path, fallbackAt, params, paramsMark, initialCount)
}

func (r *Router[T]) fallback(fallback *node[T], path []string, at int, params *Params, mark, initial int) (*node[T], []string) {
	if fallback == nil {
		if params != nil {
			params.truncate(initial)
		}
		return nil, nil
	}

	if params != nil {
		// Drop values bound past the catchall.
		params.truncate(mark)
	}
	return fallback, path[at:]
}

// Len returns the number of registered routes.
func (r *Router[T]) Len() int {
	return r.size
}

// Routes returns an iterator over every registered route pattern and its output. At each node, constants are
// visited in lexicographic order, followed by the wildcard, the partial templates in precedence order and the
// catchall.
func (r *Router[T]) Routes() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		walk(r.root, yield)
	}
}

// Patterns returns an iterator over every registered route pattern, in the same order as [Router.Routes].
func (r *Router[T]) Patterns() iter.Seq[string] {
	return iterutil.Left(r.Routes())
}

func walk[T any](n *node[T], yield func(string, T) bool) bool {
	if n.isLeaf() && !yield(n.pattern, n.output) {
		return false
	}
	for _, key := range n.sortedConstants() {
		if !walk(n.constants[key], yield) {
			return false
		}
	}
	if n.hasWildcard() && !walk(n.wildcard.node, yield) {
		return false
	}
	for i := range n.partials {
		if !walk(n.partials[i].node, yield) {
			return false
		}
	}
	if n.catchall != nil && !walk(n.catchall, yield) {
		return false
	}
	return true
}

// String returns a human-readable representation of the trie, useful for debugging.
func (r *Router[T]) String() string {
	return r.root.String()
}
