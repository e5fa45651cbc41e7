// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperwatch/internal/cite"
)

var citeCmd = &cobra.Command{
	Use:   "cite [doi-or-bookmark-id]",
	Short: "Print a citation for a DOI or a bookmarked paper",
	Long: `Cite resolves a DOI through doi.org content negotiation and prints the
result (BibTeX by default; set citation.accept for another format). The
argument may be a bare DOI, a doi.org URL, or the identifier of a bookmarked
paper that has a DOI.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		doi := args[0]
		store, err := openBookmarks(cfg, log)
		if err != nil {
			return err
		}
		if e, ok := store.Get(args[0]); ok {
			if e.DOI == "" {
				return fmt.Errorf("bookmark %s has no DOI", e.ID)
			}
			doi = e.DOI
		}

		text, err := cite.NewClient(cfg.Citation, log).Lookup(background(cmd), doi)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(citeCmd)
}
