package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/stickies"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, "")
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "List notes whose title or text contains term",
	Long:  `Search matches case-insensitively against title and text. An empty term lists everything.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, args[0])
	},
}

func runSearch(cmd *cobra.Command, term string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	return printNotes(cmd.OutOrStdout(), store, store.Search(term))
}

func printNotes(w io.Writer, store *stickies.Store, notes []stickies.Note) error {
	if listJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(notes); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}

	if !byIndex(store) {
		for _, n := range notes {
			fmt.Fprintf(w, "%d - %s\n", n.ID, n.DisplayTitle())
			if n.Text != "" {
				fmt.Fprintf(w, "    %s\n", n.Text)
			}
		}
		return nil
	}

	// Positions refer to the full list, so filtered output keeps them.
	for i, n := range store.List() {
		for _, m := range notes {
			if m.ID == n.ID {
				fmt.Fprintf(w, "%d: %q\n", i, n.Text)
				break
			}
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	searchCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
