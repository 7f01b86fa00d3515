// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tigerwill90/trie"
	"github.com/tigerwill90/trie/internal/slogpretty"
)

// loadRouter builds a router from the route table at path. The output of each route is its label,
// or the pattern itself when no label is given.
func loadRouter(opts *rootOptions, stderr io.Writer) (*trie.Router[string], error) {
	f, err := os.Open(opts.routes)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lvl := slog.LevelWarn
	if opts.verbose {
		lvl = slog.LevelDebug
	}
	handler := slogpretty.New(stderr, stderr, lvl)

	b, err := trie.NewBuilder[string](trie.WithCaseInsensitive(opts.caseInsensitive), trie.WithLogHandler(handler))
	if err != nil {
		return nil, err
	}

	if err := readTable(f, b); err != nil {
		return nil, fmt.Errorf("%s: %w", opts.routes, err)
	}
	return b.Build(), nil
}

func readTable(r io.Reader, b *trie.Builder[string]) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) > 2 {
			return fmt.Errorf("line %d: expected a pattern and an optional label, got %d fields", line, len(fields))
		}
		output := fields[0]
		if len(fields) == 2 {
			output = fields[1]
		}
		if err := b.Insert(output, trie.ParsePattern(fields[0])...); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return scanner.Err()
}
