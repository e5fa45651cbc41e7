// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperwatch/internal/feed"
	"github.com/pdiddy/paperwatch/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the search expression and request URL without fetching",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()
		applyCriteriaFlags(cmd, &cfg)

		expr, ok := query.Build(cfg.Feed.Keywords, cfg.Feed.Subjects)
		if !ok {
			return fmt.Errorf("no keywords or subjects configured")
		}
		base := cfg.Feed.BaseURL
		if base == "" {
			base = feed.DefaultBaseURL
		}
		fmt.Fprintln(os.Stdout, expr)
		fmt.Fprintln(os.Stdout, query.URL(base, expr, feed.ParamsFromConfig(cfg.Feed)))
		return nil
	},
}

func init() {
	queryCmd.Flags().StringSlice("keywords", nil, "title keywords, all required (comma-separated)")
	queryCmd.Flags().StringSlice("subjects", nil, "subject categories, any matches (comma-separated)")
	rootCmd.AddCommand(queryCmd)
}
