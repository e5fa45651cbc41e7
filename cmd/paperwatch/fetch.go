// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/paperwatch/internal/bookmark"
	"github.com/pdiddy/paperwatch/internal/browser"
	"github.com/pdiddy/paperwatch/internal/cite"
	"github.com/pdiddy/paperwatch/internal/curate"
	"github.com/pdiddy/paperwatch/internal/feed"
	"github.com/pdiddy/paperwatch/internal/watch"
	"github.com/pdiddy/paperwatch/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch matching papers and print them filtered and sorted",
	Long: `Fetch queries the feed for papers whose titles contain every keyword and
that carry any of the subjects, then prints them newest first.

Results can be narrowed to a subject allow-list and to papers with a DOI,
and re-sorted by title or first author. Selecting the same sort key twice
reverses it, so --sort title gives Z-A and --sort title --ascending gives A-Z.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringSlice("keywords", nil, "title keywords, all required (comma-separated)")
	fetchCmd.Flags().StringSlice("subjects", nil, "subject categories, any matches (comma-separated)")
	fetchCmd.Flags().Int("max-results", 0, "maximum number of records to request")
	fetchCmd.Flags().StringSlice("only", nil, "show only these primary categories (default: the query subjects)")
	fetchCmd.Flags().Bool("doi-only", false, "show only papers with a DOI")
	fetchCmd.Flags().String("sort", "date", "sort key: date, title, or author")
	fetchCmd.Flags().Bool("ascending", false, "sort ascending instead of descending")
	fetchCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()
	applyCriteriaFlags(cmd, &cfg)

	store, err := openBookmarks(cfg, log)
	if err != nil {
		return err
	}

	key, err := curate.ParseSortKey(flagString(cmd, "sort"))
	if err != nil {
		return err
	}
	ascending, _ := cmd.Flags().GetBool("ascending")
	doiOnly, _ := cmd.Flags().GetBool("doi-only")
	only, _ := cmd.Flags().GetStringSlice("only")
	if !cmd.Flags().Changed("only") {
		only = cfg.Feed.Subjects
	}

	// Fetch goes last so its status, including a failure, is what remains.
	intents := []watch.Intent{watch.SetFilter{Subjects: only, DOIOnly: doiOnly}}
	intents = append(intents, sortIntents(key, ascending)...)
	intents = append(intents, watch.Fetch{})

	view, err := newSession(cfg, log, store).Script(background(cmd), intents...)
	if err != nil {
		return err
	}
	if view.Status.Kind == watch.StatusError {
		return view.Status.Err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return writeJSON(os.Stdout, view)
	}
	printItems(os.Stdout, view.Items)
	fmt.Fprintf(os.Stderr, "\n%d fetched, %d shown, %d bookmarked\n", view.Fetched, len(view.Items), view.Bookmarks)
	return nil
}

// sortIntents returns the Sort intents that leave the session sorted by
// key in the requested direction, starting from date descending.
func sortIntents(key curate.SortKey, ascending bool) []watch.Intent {
	var out []watch.Intent
	if key != curate.SortDate {
		out = append(out, watch.Sort{Key: key})
	}
	if ascending {
		out = append(out, watch.Sort{Key: key})
	}
	return out
}

// newSession wires the watch session to the configured collaborators.
func newSession(cfg types.Config, log *zap.Logger, store *bookmark.Store) *watch.Session {
	return watch.NewSession(cfg.Feed, watch.Deps{
		Fetcher:    feed.NewClient(cfg.Feed),
		Normalizer: feed.NewNormalizer(cfg.Normalize, log),
		Bookmarks:  store,
		Opener:     browser.Default,
		Citer:      cite.NewClient(cfg.Citation, log),
		Log:        log,
	})
}

// applyCriteriaFlags overrides the configured search criteria with any
// criteria flags given on the command line.
func applyCriteriaFlags(cmd *cobra.Command, cfg *types.Config) {
	flags := cmd.Flags()
	if flags.Changed("keywords") {
		cfg.Feed.Keywords, _ = flags.GetStringSlice("keywords")
	}
	if flags.Changed("subjects") {
		cfg.Feed.Subjects, _ = flags.GetStringSlice("subjects")
	}
	if flags.Changed("max-results") {
		cfg.Feed.MaxResults, _ = flags.GetInt("max-results")
	}
}

func flagString(cmd *cobra.Command, name string) string {
	s, _ := cmd.Flags().GetString(name)
	return s
}

func writeJSON(w io.Writer, view watch.ViewModel) error {
	type item struct {
		types.Entry
		Bookmarked bool `json:"bookmarked"`
	}
	out := make([]item, len(view.Items))
	for i, it := range view.Items {
		out[i] = item{Entry: it.Entry, Bookmarked: it.Bookmarked}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printItems(w io.Writer, items []watch.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-1s  %-10s  %-8s  %-60s  %s\n", "*", "Published", "Category", "Title", "First author")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, it := range items {
		mark := " "
		if it.Bookmarked {
			mark = "*"
		}
		fmt.Fprintf(w, "%-1s  %-10s  %-8s  %-60s  %s\n",
			mark, datePart(it.Entry.Published), truncate(it.Entry.PrimaryCategory, 8),
			truncate(it.Entry.Title, 60), it.Entry.FirstAuthor())
		fmt.Fprintf(w, "   %s\n", it.Entry.ID)
	}
}

func datePart(published string) string {
	if i := strings.IndexByte(published, ' '); i > 0 {
		return published[:i]
	}
	return published
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// background is used by commands that run without a cobra context.
func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
