// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package trie

import (
	"fmt"
	"log/slog"

	"github.com/tigerwill90/trie/internal/slogpretty"
)

const (
	defaultModifiedCache = 8192
	defaultQueueSize     = 64
)

// Option configures a [Builder]. Every Option is also accepted by [NewLive].
type Option interface {
	applyOpt(sealedOption) error
}

// LiveOption configures a [Live] router.
type LiveOption interface {
	applyLive(sealedOption) error
}

type sealedOption struct {
	cfg *config
}

type optionFunc func(sealedOption) error

func (o optionFunc) applyOpt(s sealedOption) error {
	return o(s)
}

func (o optionFunc) applyLive(s sealedOption) error {
	return o(s)
}

type config struct {
	handler         slog.Handler
	modifiedCache   int
	queueSize       int
	caseInsensitive bool
}

func defaultConfig() config {
	return config{
		handler:       slogpretty.DefaultHandler,
		modifiedCache: defaultModifiedCache,
		queueSize:     defaultQueueSize,
	}
}

// WithCaseInsensitive enables case-insensitive comparison of constant segments. Constants are folded
// both at registration and at lookup. Parameters, wildcards, catchalls and the literal anchors of
// partial templates are always compared exactly, and captured values keep their original case.
func WithCaseInsensitive(enable bool) interface {
	Option
	LiveOption
} {
	return optionFunc(func(s sealedOption) error {
		s.cfg.caseInsensitive = enable
		return nil
	})
}

// WithLogHandler sets the [slog.Handler] used to report registration diagnostics, such as a route
// overriding an existing one. By default, a human-readable handler writing to os.Stdout and os.Stderr
// is used.
func WithLogHandler(handler slog.Handler) interface {
	Option
	LiveOption
} {
	return optionFunc(func(s sealedOption) error {
		if handler == nil {
			return fmt.Errorf("%w: log handler cannot be nil", ErrInvalidConfig)
		}
		s.cfg.handler = handler
		return nil
	})
}

// WithModifiedCache sets the maximum number of nodes a [Builder] remembers as created since the last
// snapshot. Those nodes are updated in place instead of being copied again. The default is 8192.
func WithModifiedCache(size int) interface {
	Option
	LiveOption
} {
	return optionFunc(func(s sealedOption) error {
		if size <= 0 {
			return fmt.Errorf("%w: modified cache size must be greater than zero", ErrInvalidConfig)
		}
		s.cfg.modifiedCache = size
		return nil
	})
}

// WithQueueSize sets how many registration requests may be pending before [Live.Register] and
// [Live.Batch] block. The default is 64. A size of zero makes every submission wait for the owner.
func WithQueueSize(size int) LiveOption {
	return optionFunc(func(s sealedOption) error {
		if size < 0 {
			return fmt.Errorf("%w: queue size cannot be negative", ErrInvalidConfig)
		}
		s.cfg.queueSize = size
		return nil
	})
}
