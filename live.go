// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package trie

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Live is a router that accepts new routes while serving lookups. Registrations are funneled to a single
// owner goroutine which applies them one at a time, in submission order, and atomically publishes the
// resulting trie. Lookups load the latest published [Router] and never block, so a lookup in progress is
// never affected by a registration.
//
// Live trades some registration latency for liveness. When all routes are known upfront, prefer building
// a [Router] with a [Builder], and rebuild and swap it to apply changes.
type Live[T any] struct {
	tree      atomic.Pointer[Router[T]]
	reqs      chan request[T]
	done      chan struct{}
	stopped   chan struct{}
	diag      diagnostics
	closeOnce sync.Once
}

type request[T any] struct {
	fn      func(b *Builder[T]) error
	ack     chan error
	pattern string
}

// NewLive returns a ready to use Live router and starts its owner goroutine. [Live.Close] must be called
// to release it. An error that is [ErrInvalidConfig] is returned if an option is invalid.
func NewLive[T any](opts ...LiveOption) (*Live[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt.applyLive(sealedOption{cfg: &cfg}); err != nil {
			return nil, err
		}
	}

	b := newBuilder[T](cfg)
	l := &Live[T]{
		reqs:    make(chan request[T], cfg.queueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		diag:    b.diag,
	}
	l.tree.Store(b.Build())

	go l.run(b)
	return l, nil
}

// Register registers output at path. It blocks until the route is published, ctx is done or the router
// is closed. If ctx is done after the registration was submitted, the route may still be published.
// It returns the same errors as [Builder.Insert], or [ErrClosed] once the router is closed.
// This function is safe for concurrent use by multiple goroutine.
func (l *Live[T]) Register(ctx context.Context, output T, path ...PathComponent) error {
	return l.submit(ctx, Join(path), func(b *Builder[T]) error {
		return b.Insert(output, path...)
	})
}

// Batch runs fn with a [Builder] holding the current routes and publishes all of its registrations at once
// if fn returns nil. If fn returns an error or panics, nothing is published. The builder must not be
// retained after fn returns. This function is safe for concurrent use by multiple goroutine.
func (l *Live[T]) Batch(ctx context.Context, fn func(b *Builder[T]) error) error {
	return l.submit(ctx, "", fn)
}

// Route looks up path against the latest published routes. See [Router.Route].
// This function is safe for concurrent use by multiple goroutine.
func (l *Live[T]) Route(path []string, params *Params) (T, bool) {
	return l.tree.Load().Route(path, params)
}

// Match reports whether path matches a route in the latest published routes.
// This function is safe for concurrent use by multiple goroutine.
func (l *Live[T]) Match(path []string) bool {
	return l.tree.Load().Match(path)
}

// Snapshot returns the latest published [Router]. Later registrations are not reflected in the returned
// router. This function is safe for concurrent use by multiple goroutine.
func (l *Live[T]) Snapshot() *Router[T] {
	return l.tree.Load()
}

// Close stops the owner goroutine and waits for the registration in progress, if any. Pending and later
// registrations fail with [ErrClosed], while lookups keep being served from the last published routes.
// Calling Close more than once is a no-op.
func (l *Live[T]) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
	<-l.stopped
}

func (l *Live[T]) submit(ctx context.Context, pattern string, fn func(b *Builder[T]) error) error {
	select {
	case <-l.done:
		return ErrClosed
	default:
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	req := request[T]{
		fn:      fn,
		ack:     make(chan error, 1),
		pattern: pattern,
	}

	select {
	case l.reqs <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrClosed
	}

	select {
	case err := <-req.ack:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrClosed
	}
}

func (l *Live[T]) run(b *Builder[T]) {
	defer close(l.stopped)

	for {
		select {
		case <-l.done:
			return
		case req := <-l.reqs:
			tx := b.clone()
			if err := apply(tx, req.fn); err != nil {
				l.diag.rejected(req.pattern, err)
				req.ack <- err
				continue
			}
			b = tx
			l.tree.Store(b.Build())
			req.ack <- nil
		}
	}
}

func apply[T any](b *Builder[T], fn func(b *Builder[T]) error) (err error) {
	defer func() {
		if val := recover(); val != nil {
			if e, ok := val.(error); ok {
				err = fmt.Errorf("registration panicked: %w", e)
				return
			}
			err = fmt.Errorf("registration panicked: %v", val)
		}
	}()
	return fn(b)
}
