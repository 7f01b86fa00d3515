// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package trie

import (
	"context"
	"log/slog"
)

// diagnostics reports soft conditions encountered while building the trie. Nothing logged
// here is an error: registration always succeeds when a diagnostic is emitted.
type diagnostics struct {
	log *slog.Logger
}

func newDiagnostics(handler slog.Handler) diagnostics {
	return diagnostics{log: slog.New(handler)}
}

func (d diagnostics) overriding(pattern, previous string) {
	d.log.LogAttrs(
		context.Background(),
		slog.LevelWarn,
		"overriding route",
		slog.String("pattern", pattern),
		slog.String("previous", previous),
	)
}

func (d diagnostics) registered(pattern string) {
	d.log.LogAttrs(
		context.Background(),
		slog.LevelDebug,
		"route registered",
		slog.String("pattern", pattern),
	)
}

func (d diagnostics) rejected(pattern string, err error) {
	d.log.LogAttrs(
		context.Background(),
		slog.LevelError,
		"route rejected",
		slog.String("pattern", pattern),
		slog.String("error", err.Error()),
	)
}
