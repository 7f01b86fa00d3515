// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tigerwill90/trie"
)

func matchCmd(opts *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "match <path>...",
		Short: "Match request paths against the route table",
		Long: `Match every path against the route table and print the matched output along with
the bound parameters and catchall segments.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRouter(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			params := new(trie.Params)
			misses := 0
			for _, path := range args {
				params.Reset()
				output, ok := r.Route(splitPath(path), params)
				if !ok {
					misses++
					fmt.Fprintf(out, "%s\tno match\n", path)
					continue
				}

				var sb strings.Builder
				for k, v := range params.All() {
					sb.WriteString(" ")
					sb.WriteString(k)
					sb.WriteString("=")
					sb.WriteString(v)
				}
				if catchall := params.Catchall(); len(catchall) > 0 {
					sb.WriteString(" **=")
					sb.WriteString(strings.Join(catchall, "/"))
				}
				fmt.Fprintf(out, "%s\t%s%s\n", path, output, sb.String())
			}

			if strict && misses > 0 {
				return fmt.Errorf("%d of %d paths did not match", misses, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail if any path does not match")

	return cmd
}

// splitPath splits a request path on '/', dropping empty segments.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
