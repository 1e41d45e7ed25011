package stickies

import (
	_ "embed"
	"log/slog"

	"github.com/aretw0/stickies/internal/platform"
	"github.com/aretw0/stickies/pkg/core"
)

// Version exposes the version of the library.
//
//go:embed VERSION
var Version string

// --- Types ---

// Note is a public alias for the domain entity.
type Note = core.Note

// Store is a public alias for the note store.
type Store = core.Store

// Layout is a public alias for the store layout.
type Layout = core.Layout

// Layouts shipped with the store.
var (
	Records  = core.Records
	Freeform = core.Freeform
)

// --- Configuration ---

// Option defines a functional option for configuring a store.
type Option = platform.Option

// Config is the content of stickies.yaml after environment overrides.
type Config = platform.FileConfig

// WithLogger sets the logger for the store and its slot.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSlot allows injecting a custom persistence slot.
func WithSlot(slot core.Slot) Option {
	return platform.WithSlot(slot)
}

// WithAdapter selects the slot adapter by name ("fs", "memory", "redis").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithLayout selects Records (default) or Freeform.
func WithLayout(layout core.Layout) Option {
	return platform.WithLayout(layout)
}

// WithKey overrides the slot key of the layout.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithConfirmer sets who answers the delete confirmation prompt.
func WithConfirmer(c core.Confirmer) Option {
	return platform.WithConfirmer(c)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist ensures the notes directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithSystemDir sets the directory name holding slot files (default ".stickies").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithIgnore adds file name patterns the fs watcher skips.
func WithIgnore(patterns ...string) Option {
	return platform.WithIgnore(patterns...)
}

// WithWriteErrorHandler registers a callback for failed persistence writes.
func WithWriteErrorHandler(fn func(error)) Option {
	return platform.WithWriteErrorHandler(fn)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithRedis configures the connection of the "redis" adapter.
func WithRedis(addr, password string, db int) Option {
	return platform.WithRedis(addr, password, db)
}

// WithRedisPrefix sets the namespace of Redis keys.
func WithRedisPrefix(prefix string) Option {
	return platform.WithRedisPrefix(prefix)
}

// --- Factory ---

// New opens the slot for uri and returns a loaded store.
func New(uri string, opts ...Option) (*core.Store, error) {
	return platform.New(uri, opts...)
}

// Init creates and initializes a slot explicitly.
func Init(uri string, opts ...Option) (core.Slot, error) {
	return platform.Init(uri, opts...)
}

// FindRoot looks upwards from dir for a .stickies directory or stickies.yaml.
func FindRoot(dir string) (string, error) {
	return platform.FindRoot(dir)
}

// LoadConfig reads stickies.yaml, .env and STICKIES_* variables for root.
func LoadConfig(root string) (Config, error) {
	return platform.LoadConfig(root)
}
