// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package trie

import (
	"fmt"
	"slices"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/tigerwill90/trie/internal/stringutil"
)

// Builder accumulates route registrations into a persistent trie. Each insertion produces a new root
// that shares every untouched subtree with the previous one, so routers returned by [Builder.Build]
// are never affected by later registrations.
//
// A Builder is not thread safe, and should only be used by a single goroutine.
type Builder[T any] struct {
	// Nodes created since the last build. They are not reachable from any router yet
	// and can be updated in place.
	writable *simplelru.LRU[*node[T], struct{}]
	root     *node[T]
	diag     diagnostics
	cfg      config
	size     int
}

// NewBuilder returns a ready to use, empty Builder. An error that is [ErrInvalidConfig] is returned
// if an option is invalid.
func NewBuilder[T any](opts ...Option) (*Builder[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt.applyOpt(sealedOption{cfg: &cfg}); err != nil {
			return nil, err
		}
	}
	return newBuilder[T](cfg), nil
}

func newBuilder[T any](cfg config) *Builder[T] {
	return &Builder[T]{
		root: &node[T]{},
		diag: newDiagnostics(cfg.handler),
		cfg:  cfg,
	}
}

// Register registers output at path. It is a convenience wrapper for [Builder.Insert] and panics
// on error, since an invalid path is a bug in the route table construction.
func (b *Builder[T]) Register(output T, path ...PathComponent) {
	if err := b.Insert(output, path...); err != nil {
		panic(err)
	}
}

// Insert registers output at path. Registering a path that already holds an output overrides it
// and logs a warning. If an error occurs, the builder is left unchanged and one of the following is returned:
//   - [ErrEmptyPath]: If path is empty.
//   - [ErrCatchallNotLast]: If a catchall is followed by another component.
//   - [ParamConflictError]: If a parameter is bound to another name than the one already registered at the same position.
//   - [ErrInvalidRoute]: If a component is malformed (e.g. parameter without name).
func (b *Builder[T]) Insert(output T, path ...PathComponent) error {
	pattern := Join(path)
	if err := validatePath(path); err != nil {
		return fmt.Errorf("%w: %s", err, pattern)
	}

	newRoot, err := b.insert(b.root, path, pattern, output)
	if err != nil {
		return err
	}
	b.root = newRoot
	return nil
}

// Build returns a read-only [Router] over the current trie. The builder can still be used afterward:
// further registrations never alter routers previously built.
func (b *Builder[T]) Build() *Router[T] {
	// Nodes reachable from the router must not be updated in place anymore.
	b.writable = nil
	return &Router[T]{
		root:            b.root,
		size:            b.size,
		caseInsensitive: b.cfg.caseInsensitive,
	}
}

// Len returns the number of registered routes.
func (b *Builder[T]) Len() int {
	return b.size
}

// clone capture a point-in-time clone of the builder. Further mutations to either will be
// independent.
func (b *Builder[T]) clone() *Builder[T] {
	// reset the writable node cache to avoid leaking future writes into the clone
	b.writable = nil
	return &Builder[T]{
		root: b.root,
		diag: b.diag,
		cfg:  b.cfg,
		size: b.size,
	}
}

func validatePath(path []PathComponent) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRoute, ErrEmptyPath)
	}

	for i, c := range path {
		switch c.Kind {
		case KindConstant, KindAnything:
		case KindParameter:
			if c.Value == "" {
				return fmt.Errorf("%w: missing parameter name", ErrInvalidRoute)
			}
		case KindCatchall:
			if i != len(path)-1 {
				return fmt.Errorf("%w: %w", ErrInvalidRoute, ErrCatchallNotLast)
			}
		case KindPartial:
			if len(c.Captures) == 0 || len(c.Literals) != len(c.Captures)+1 {
				return fmt.Errorf("%w: malformed partial template '%s'", ErrInvalidRoute, c.Value)
			}
			for _, name := range c.Captures {
				if name == "" {
					return fmt.Errorf("%w: missing capture name in partial template '%s'", ErrInvalidRoute, c.Value)
				}
			}
		default:
			return fmt.Errorf("%w: unknown path component kind %d", ErrInvalidRoute, c.Kind)
		}
	}
	return nil
}

// insert performs a recursive copy-on-write insertion of a route into the trie. Only nodes along the path
// from n to the insertion point are cloned, while unmodified subtrees are shared with the previous version.
// Errors are detected while descending, before any node is written, so a failed insertion never leaves
// partial writes behind.
func (b *Builder[T]) insert(n *node[T], path []PathComponent, pattern string, output T) (*node[T], error) {
	// Base case: no component left, attach output
	if len(path) == 0 {
		nc := b.writeNode(n)
		if n.isLeaf() {
			b.diag.overriding(pattern, n.pattern)
		} else {
			b.size++
			b.diag.registered(pattern)
		}
		nc.output = output
		nc.pattern = pattern
		nc.leaf = true
		return nc, nil
	}

	c := path[0]
	remaining := path[1:]

	switch c.Kind {
	case KindConstant:
		return b.insertConstant(n, c.Value, remaining, pattern, output)
	case KindParameter:
		return b.insertWildcard(n, c.Value, remaining, pattern, output)
	case KindAnything:
		return b.insertWildcard(n, "", remaining, pattern, output)
	case KindCatchall:
		return b.insertCatchall(n, remaining, pattern, output)
	case KindPartial:
		return b.insertPartial(n, c, remaining, pattern, output)
	default:
		panic("internal error: unknown path component kind")
	}
}

func (b *Builder[T]) insertConstant(n *node[T], key string, remaining []PathComponent, pattern string, output T) (*node[T], error) {
	if b.cfg.caseInsensitive {
		key = stringutil.Fold(key)
	}

	child := n.getConstant(key)
	if child == nil {
		child = b.newNode()
	}

	newChild, err := b.insert(child, remaining, pattern, output)
	if err != nil {
		return nil, err
	}

	nc := b.writeNode(n)
	nc.setConstant(key, newChild)
	return nc, nil
}

// insertWildcard inserts a parameter route when name is not empty, or an anything route otherwise.
func (b *Builder[T]) insertWildcard(n *node[T], name string, remaining []PathComponent, pattern string, output T) (*node[T], error) {
	w := n.wildcard
	if name != "" && w.name != "" && w.name != name {
		return nil, &ParamConflictError{Pattern: pattern, Existing: w.name, New: name}
	}

	child := w.node
	if child == nil {
		child = b.newNode()
	}

	newChild, err := b.insert(child, remaining, pattern, output)
	if err != nil {
		return nil, err
	}

	w.node = newChild
	if name != "" {
		w.name = name
	} else {
		w.anything = true
	}

	nc := b.writeNode(n)
	nc.wildcard = w
	return nc, nil
}

func (b *Builder[T]) insertCatchall(n *node[T], remaining []PathComponent, pattern string, output T) (*node[T], error) {
	child := n.catchall
	if child == nil {
		child = b.newNode()
	}

	newChild, err := b.insert(child, remaining, pattern, output)
	if err != nil {
		return nil, err
	}

	nc := b.writeNode(n)
	nc.catchall = newChild
	return nc, nil
}

func (b *Builder[T]) insertPartial(n *node[T], c PathComponent, remaining []PathComponent, pattern string, output T) (*node[T], error) {
	idx := n.getPartial(c.Value)

	var child *node[T]
	if idx >= 0 {
		child = n.partials[idx].node
	} else {
		child = b.newNode()
	}

	newChild, err := b.insert(child, remaining, pattern, output)
	if err != nil {
		return nil, err
	}

	nc := b.writeNode(n)
	if idx >= 0 {
		nc.partials[idx].node = newChild
		return nc, nil
	}

	nc.partials = append(nc.partials, partial[T]{
		node:     newChild,
		template: c.Value,
		literals: slices.Clone(c.Literals),
		captures: slices.Clone(c.Captures),
	})
	nc.sortPartials()
	return nc, nil
}

// newNode returns an empty node, writable until the next build.
func (b *Builder[T]) newNode() *node[T] {
	n := &node[T]{}
	b.track(n)
	return n
}

// writeNode returns a node to be modified. If the node was created since the last build, it's returned
// as is, otherwise a copy is returned.
func (b *Builder[T]) writeNode(n *node[T]) *node[T] {
	if b.writable != nil {
		if _, ok := b.writable.Get(n); ok {
			return n
		}
	}

	nc := n.clone()
	b.track(nc)
	return nc
}

func (b *Builder[T]) track(n *node[T]) {
	if b.writable == nil {
		lru, err := simplelru.NewLRU[*node[T], struct{}](b.cfg.modifiedCache, nil)
		if err != nil {
			panic(err)
		}
		b.writable = lru
	}
	b.writable.Add(n, struct{}{})
}
