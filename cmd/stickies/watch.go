package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	stickieslifecycle "github.com/aretw0/stickies/pkg/adapters/lifecycle"
	"github.com/aretw0/stickies/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print every change to the notes until interrupted",
	Long: `Watch follows the slot and prints one line per change, including changes
made by other processes sharing the slot.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		source := stickieslifecycle.NewSource(store, core.DefaultEventBuffer)
		if err := source.Start(ctx); err != nil {
			return err
		}

		lifecycle.Go(ctx, func(ctx context.Context) error {
			err := store.Follow(ctx)
			if errors.Is(err, core.ErrNotWatchable) {
				slog.Warn("slot does not report external changes, showing local changes only")
				return nil
			}
			return err
		}, lifecycle.WithErrorHandler(func(err error) {
			slog.Error("follow failed", "error", err)
		}))

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (%d notes)\n", store.Key(), store.Len())
		for e := range source.Events() {
			fmt.Fprintln(cmd.OutOrStdout(), e.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
