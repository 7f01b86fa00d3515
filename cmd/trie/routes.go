// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func routesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List registered routes in lookup precedence order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRouter(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for pattern, output := range r.Routes() {
				fmt.Fprintf(out, "%s\t%s\n", pattern, output)
			}
			fmt.Fprintf(out, "%d routes\n", r.Len())
			return nil
		},
	}
}

func treeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the trie built from the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRouter(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), r.String())
			return nil
		},
	}
}
