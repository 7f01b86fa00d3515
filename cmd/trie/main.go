// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

// Command trie loads a route table and inspects how paths are matched against it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	routes          string
	caseInsensitive bool
	verbose         bool
}

func newRootCmd() *cobra.Command {
	opts := new(rootOptions)

	rootCmd := &cobra.Command{
		Use:   "trie",
		Short: "Inspect a route table",
		Long: `Trie loads a route table and reports how request paths are matched against it.

A route table has one route per line: a pattern, optionally followed by an output
label. Blank lines and lines starting with '#' are ignored.

  /users/:id              user
  /files/{name}.{ext}     file
  /static/**`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.routes, "routes", "r", "", "route table file (required)")
	rootCmd.PersistentFlags().BoolVarP(&opts.caseInsensitive, "case-insensitive", "i", false, "match constant segments case-insensitively")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every registered route")
	_ = rootCmd.MarkPersistentFlagRequired("routes")

	rootCmd.AddCommand(
		matchCmd(opts),
		routesCmd(opts),
		treeCmd(opts),
	)

	return rootCmd
}
