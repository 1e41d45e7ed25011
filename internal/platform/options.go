package platform

import (
	"log/slog"

	"github.com/aretw0/stickies/pkg/core"
)

// DefaultSystemDir is the directory, relative to the root, holding slot files.
const DefaultSystemDir = ".stickies"

// options holds the internal configuration for a store.
type options struct {
	slot      core.Slot
	logger    *slog.Logger
	adapter   string
	layout    core.Layout
	confirmer core.Confirmer
	config    map[string]any
}

// Option defines a functional option for configuring a store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		layout:  core.Records,
		config:  make(map[string]any),
	}
}

func parseOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for the store and its slot.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSlot injects a custom slot (e.g. mock, remote).
// If provided, the adapter selection is skipped.
func WithSlot(slot core.Slot) Option {
	return func(o *options) {
		o.slot = slot
	}
}

// WithAdapter selects the slot adapter by name: "fs" (default), "memory" or "redis".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithLayout selects the note layout. Defaults to core.Records.
func WithLayout(layout core.Layout) Option {
	return func(o *options) {
		o.layout = layout
	}
}

// WithKey overrides the slot key of the layout.
func WithKey(key string) Option {
	return func(o *options) {
		o.config["key"] = key
	}
}

// WithConfirmer sets who answers the delete confirmation prompt.
// Without one, deletes on layouts that require confirmation are rejected
// unless the context carries an answer (see core.WithConfirmed).
func WithConfirmer(c core.Confirmer) Option {
	return func(o *options) {
		o.confirmer = c
	}
}

// WithReadOnly enables read-only mode.
// In this mode writes fail with core.ErrReadOnly (reported, not returned) and
// the slot directory is never created.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithMustExist ensures the slot directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithSystemDir sets the directory name holding slot files under the root.
// Defaults to ".stickies".
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithIgnore adds doublestar patterns of file names the fs watcher skips.
func WithIgnore(patterns ...string) Option {
	return func(o *options) {
		existing, _ := o.config["ignore"].([]string)
		o.config["ignore"] = append(existing, patterns...)
	}
}

// WithWriteErrorHandler registers a callback for failed persistence writes.
// Writes are best-effort; without a handler failures are only logged.
func WithWriteErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["write_error_handler"] = fn
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithRedis configures the connection used by the "redis" adapter.
func WithRedis(addr, password string, db int) Option {
	return func(o *options) {
		o.config["redis_addr"] = addr
		o.config["redis_password"] = password
		o.config["redis_db"] = db
	}
}

// WithRedisPrefix sets the namespace of Redis keys. Defaults to "stickies:".
func WithRedisPrefix(prefix string) Option {
	return func(o *options) {
		o.config["redis_prefix"] = prefix
	}
}
