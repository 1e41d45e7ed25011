package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/stickies"
	"github.com/aretw0/stickies/pkg/core"
)

var (
	verbose    bool
	dir        string
	adapter    string
	layoutName string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stickies",
	Short: "Sticky notes kept in a single key-value slot",
	Long: `Stickies keeps a list of short notes in one slot: a JSON file under
.stickies/, a Redis key, or memory. Notes can be added, searched, edited and
deleted from the command line or served over HTTP.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("Error", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Project directory (default: nearest parent with .stickies or stickies.yaml)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Slot adapter: fs, memory or redis")
	rootCmd.PersistentFlags().StringVar(&layoutName, "layout", "", "Note layout: records or freeform")
}

// openStore resolves the project root, applies stickies.yaml and the
// environment, then the command line flags, and loads the store.
func openStore(extra ...stickies.Option) (*stickies.Store, error) {
	root := dir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
		if found, err := stickies.FindRoot(wd); err == nil {
			root = found
		}
	}

	cfg, err := stickies.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	if adapter != "" {
		cfg.Adapter = adapter
	}
	if layoutName != "" {
		cfg.Layout = layoutName
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, stickies.WithLogger(slog.Default()))
	opts = append(opts, extra...)

	uri := root
	if cfg.Adapter == "redis" {
		uri = ""
	}
	return stickies.New(uri, opts...)
}

// byIndex reports whether notes are addressed by position.
// Untitled notes carry no persisted id, so their ids change on every load.
func byIndex(store *stickies.Store) bool {
	return !store.Layout().Titled
}

// resolve turns a command line reference into a note id.
func resolve(store *stickies.Store, ref string) (int64, error) {
	n, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note reference %q", ref)
	}
	if !byIndex(store) {
		if _, ok := store.Get(n); !ok {
			return 0, fmt.Errorf("%w: %d", core.ErrNotFound, n)
		}
		return n, nil
	}
	note, ok := store.At(int(n))
	if !ok {
		return 0, fmt.Errorf("%w: no note at position %d", core.ErrNotFound, n)
	}
	return note.ID, nil
}
