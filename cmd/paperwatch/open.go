// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperwatch/internal/watch"
)

var openCmd = &cobra.Command{
	Use:   "open [bookmark-id]",
	Short: "Open a bookmarked paper's page or PDF in the browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdf, _ := cmd.Flags().GetBool("pdf")

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		store, err := openBookmarks(cfg, log)
		if err != nil {
			return err
		}
		view, err := newSession(cfg, log, store).Script(background(cmd), watch.Open{ID: args[0], PDF: pdf})
		if err != nil {
			return err
		}
		if view.Status.Kind == watch.StatusError {
			return view.Status.Err
		}
		fmt.Fprintln(os.Stderr, view.Status.Message)
		return nil
	},
}

func init() {
	openCmd.Flags().Bool("pdf", false, "open the PDF instead of the abstract page")
	rootCmd.AddCommand(openCmd)
}
