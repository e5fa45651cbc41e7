// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperwatch/internal/cite"
	"github.com/pdiddy/paperwatch/internal/watch"
	"github.com/pdiddy/paperwatch/pkg/types"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List, add, remove, clear, or export bookmarked papers",
	Long: `Bookmarks manages the local bookmark file. Each paper appears at most
once, keyed by its feed identifier, and the file is rewritten after every
change. An unreadable bookmark file is moved aside and replaced by an empty
list.`,
}

// --- list subcommand ---

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print bookmarked papers in the order they were added",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		store, err := openBookmarks(cfg, log)
		if err != nil {
			return err
		}
		entries := store.List()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		items := make([]watch.Item, len(entries))
		for i, e := range entries {
			items[i] = watch.Item{Entry: e, Bookmarked: true}
		}
		printItems(os.Stdout, items)
		fmt.Fprintf(os.Stderr, "\n%d bookmarks in %s\n", len(entries), store.Path())
		return nil
	},
}

// --- add subcommand ---

var bookmarksAddCmd = &cobra.Command{
	Use:   "add [ids...]",
	Short: "Bookmark papers from the current fetch results by identifier",
	Long: `Add fetches with the configured search criteria and bookmarks every
listed identifier found in the results. Identifiers already bookmarked are
left alone.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		store, err := openBookmarks(cfg, log)
		if err != nil {
			return err
		}

		intents := []watch.Intent{watch.SetFilter{}, watch.Fetch{}}
		var pending []string
		for _, id := range args {
			if store.IsBookmarked(id) {
				fmt.Fprintf(os.Stdout, "already bookmarked: %s\n", id)
				continue
			}
			pending = append(pending, id)
			intents = append(intents, watch.ToggleBookmark{ID: id})
		}
		if len(pending) == 0 {
			return nil
		}

		view, err := newSession(cfg, log, store).Script(background(cmd), intents...)
		if err != nil {
			return err
		}

		var missing int
		for _, id := range pending {
			if store.IsBookmarked(id) {
				fmt.Fprintf(os.Stdout, "bookmarked: %s\n", id)
			} else {
				fmt.Fprintf(os.Stderr, "not in results: %s\n", id)
				missing++
			}
		}
		if missing > 0 {
			if view.Status.Kind == watch.StatusError {
				return view.Status.Err
			}
			return fmt.Errorf("%d identifier(s) not found in the fetch results", missing)
		}
		return nil
	},
}

// --- remove subcommand ---

var bookmarksRemoveCmd = &cobra.Command{
	Use:   "remove [ids...]",
	Short: "Remove bookmarks by identifier",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		store, err := openBookmarks(cfg, log)
		if err != nil {
			return err
		}
		for _, id := range args {
			if !store.IsBookmarked(id) {
				fmt.Fprintf(os.Stderr, "not bookmarked: %s\n", id)
				continue
			}
			if err := store.Remove(id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "removed: %s\n", id)
		}
		return nil
	},
}

// --- clear subcommand ---

var bookmarksClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every bookmark",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		store, err := openBookmarks(cfg, log)
		if err != nil {
			return err
		}
		n := store.Len()
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Cleared %d bookmark(s)\n", n)
		return nil
	},
}

// --- export subcommand ---

var bookmarksExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export bookmarks as CSL-YAML or JSON records",
	Long: `Export writes the bookmarks as a CSL-YAML bibliography (for Pandoc and
reference managers) or as the JSON records of the bookmark file format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		store, err := openBookmarks(cfg, log)
		if err != nil {
			return err
		}

		var w io.Writer = os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}

		if err := exportBookmarks(w, store.List(), format); err != nil {
			return err
		}
		if output != "" {
			fmt.Fprintf(os.Stderr, "Exported %d bookmark(s) to %s\n", store.Len(), output)
		}
		return nil
	},
}

func exportBookmarks(w io.Writer, entries []types.Entry, format string) error {
	switch format {
	case "csl", "yaml", "":
		return cite.FormatCSL(entries, w)
	case "json":
		records := make([]types.Record, len(entries))
		for i, e := range entries {
			records[i] = types.ToRecord(e)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	default:
		return fmt.Errorf("unsupported format %q: use csl or json", format)
	}
}

func init() {
	bookmarksListCmd.Flags().Bool("json", false, "output bookmarks as JSON")

	bookmarksExportCmd.Flags().String("format", "csl", "export format: csl or json")
	bookmarksExportCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")

	bookmarksCmd.AddCommand(bookmarksListCmd, bookmarksAddCmd, bookmarksRemoveCmd,
		bookmarksClearCmd, bookmarksExportCmd)
	rootCmd.AddCommand(bookmarksCmd)
}
