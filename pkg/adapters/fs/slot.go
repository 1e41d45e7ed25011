// Package fs implements core.Slot on the local filesystem.
// Each key is a JSON file inside a single directory; writes are atomic and
// external edits to the file can be watched.
package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/stickies/pkg/core"
)

// Ext is the extension of slot files.
const Ext = ".json"

// DefaultDebounce is how long the watcher waits for a burst of filesystem
// events to settle before reporting a change.
const DefaultDebounce = 50 * time.Millisecond

// Config holds the configuration for the filesystem slot.
type Config struct {
	Path      string // Directory holding the slot files
	MustExist bool
	ReadOnly  bool
	Perm      os.FileMode
	Logger    *slog.Logger
	// Ignore lists extra doublestar patterns of file names the watcher skips.
	Ignore   []string
	Debounce time.Duration
	// ErrorHandler receives runtime watcher failures, which are otherwise only logged.
	ErrorHandler func(error)
}

// Slot implements core.WatchableSlot using one file per key.
type Slot struct {
	Path   string
	config Config
	logger *slog.Logger
	ignore []string

	mu         sync.RWMutex
	written    map[string][]byte
	watchers   int
	lastChange *time.Time
}

// NewSlot creates a filesystem slot. It does no I/O until used.
func NewSlot(config Config) *Slot {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Perm == 0 {
		config.Perm = 0644
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}

	ignore := []string{TempFilePrefix + "*", "*~", ".*.sw?"}
	for _, p := range config.Ignore {
		if !doublestar.ValidatePattern(p) {
			logger.Warn("invalid ignore pattern skipped", "pattern", p)
			continue
		}
		ignore = append(ignore, p)
	}

	return &Slot{
		Path:    config.Path,
		config:  config,
		logger:  logger,
		ignore:  ignore,
		written: make(map[string][]byte),
	}
}

// Initialize ensures the slot directory is ready.
func (s *Slot) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("slot directory does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("slot path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create slot directory: %w", err)
	}
	return nil
}

// File returns the path of the file backing key.
func (s *Slot) File(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid slot key: %q", key)
	}
	return filepath.Join(s.Path, key+Ext), nil
}

// Read returns the file contents for key, or core.ErrSlotEmpty if there is no file.
func (s *Slot) Read(ctx context.Context, key string) ([]byte, error) {
	path, err := s.File(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, core.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the file for key atomically.
func (s *Slot) Write(ctx context.Context, key string, data []byte) error {
	if s.config.ReadOnly {
		return fmt.Errorf("cannot write %s: %w", key, core.ErrReadOnly)
	}
	path, err := s.File(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create slot directory: %w", err)
	}
	if err := writeFileAtomic(path, data, s.config.Perm); err != nil {
		return err
	}

	s.mu.Lock()
	s.written[key] = slices.Clone(data)
	s.mu.Unlock()

	s.logger.Debug("slot written", "key", key, "bytes", len(data))
	return nil
}

func (s *Slot) shouldIgnore(name string) bool {
	for _, pattern := range s.ignore {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// isOwnWrite reports whether the file still holds exactly what this slot last wrote.
func (s *Slot) isOwnWrite(key, path string) bool {
	s.mu.RLock()
	last, ok := s.written[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	current, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return slices.Equal(current, last)
}

func (s *Slot) reportError(err error) {
	s.logger.Error("slot watcher error", "path", s.Path, "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}

var _ core.WatchableSlot = (*Slot)(nil)
var _ core.Initializer = (*Slot)(nil)
