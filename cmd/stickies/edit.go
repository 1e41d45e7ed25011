package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	editTitle string
	editText  string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a note",
	Long: `Edit replaces the title and/or text of a note. Fields without a flag keep
their current value. Freeform notes are addressed by position and only have text.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()

		id, err := resolve(store, args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()
		flags := cmd.Flags()

		if byIndex(store) {
			if !flags.Changed("text") {
				return fmt.Errorf("--text is required")
			}
			store.Update(ctx, id, "", editText)
		} else {
			draft, err := store.BeginEdit(id)
			if err != nil {
				return err
			}
			if flags.Changed("title") {
				draft.Title = editTitle
			}
			if flags.Changed("text") {
				draft.Text = editText
			}
			store.SetDraft(draft.Title, draft.Text)
			if !store.SaveEdit(ctx) {
				return fmt.Errorf("note %d disappeared while editing", id)
			}
		}

		if err := store.PersistErr(); err != nil {
			return fmt.Errorf("note updated but not saved: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note updated: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editText, "text", "", "New text")
}
