package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addTitle string
	addText  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a note",
	Long:  `Add creates a note. In the records layout a note without title and text is ignored.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()

		n, ok := store.Add(context.Background(), addTitle, addText)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to add")
			return nil
		}
		if err := store.PersistErr(); err != nil {
			return fmt.Errorf("note added but not saved: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note added: %d\n", n.ID)
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Append a blank note (freeform layout)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()

		if _, ok := store.Add(context.Background(), "", ""); !ok {
			return fmt.Errorf("layout %s does not accept blank notes", store.Layout().Name)
		}
		if err := store.PersistErr(); err != nil {
			return fmt.Errorf("note added but not saved: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note added at position %d\n", store.Len()-1)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(newCmd)
	addCmd.Flags().StringVar(&addTitle, "title", "", "Note title")
	addCmd.Flags().StringVar(&addText, "text", "", "Note text")
}
