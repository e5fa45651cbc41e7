// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperwatch CLI.
// Implements: the presentation layer over the watch session (fetch,
// bookmarks, cite, open, query).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/paperwatch/internal/bookmark"
	"github.com/pdiddy/paperwatch/internal/config"
	"github.com/pdiddy/paperwatch/internal/logging"
	"github.com/pdiddy/paperwatch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// configErr holds a failure from initConfig, which cannot return one.
var configErr error

// rootCmd is the base command for the paperwatch CLI.
var rootCmd = &cobra.Command{
	Use:   "paperwatch",
	Short: "Watch arXiv for new papers and keep a bookmark list",
	Long: `paperwatch queries the arXiv search API for papers matching title
keywords and subject categories, filters and sorts the results, and keeps a
local list of bookmarked papers.

Search criteria, the bookmark file, and logging are read from
paperwatch.yaml (in the working directory or the XDG config directory) and
from PAPERWATCH_* environment variables; flags override both.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configErr
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperwatch.yaml or $XDG_CONFIG_HOME/paperwatch/paperwatch.yaml)")
	rootCmd.PersistentFlags().String("bookmarks", "", "bookmark file (default: $XDG_DATA_HOME/paperwatch/bookmarks.json)")
	rootCmd.PersistentFlags().String("bookmarks-format", "", "bookmark file format: json or sqlite")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	viper.BindPFlag("bookmarks.path", rootCmd.PersistentFlags().Lookup("bookmarks"))
	viper.BindPFlag("bookmarks.format", rootCmd.PersistentFlags().Lookup("bookmarks-format"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	used, err := config.Setup(viper.GetViper(), cfgFile)
	if err != nil {
		configErr = err
		return
	}
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

// loadConfig decodes the merged configuration and builds the logger.
func loadConfig() (types.Config, *zap.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return types.Config{}, nil, err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return types.Config{}, nil, fmt.Errorf("creating logger: %w", err)
	}
	return cfg, log, nil
}

// openBookmarks opens the configured bookmark store.
func openBookmarks(cfg types.Config, log *zap.Logger) (*bookmark.Store, error) {
	return bookmark.Open(cfg.Bookmarks, log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
