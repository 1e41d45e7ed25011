package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/stickies/pkg/core"
)

// Watch reports changes to the file of key made by anyone but this slot.
// The directory is watched rather than the file because atomic writes replace
// the file's inode.
func (s *Slot) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	target, err := s.File(key)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	out := make(chan core.Event)
	s.setWatching(1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer s.setWatching(-1)
		defer watcher.Close()
		return s.watchLoop(ctx, key, target, watcher, out)
	}, lifecycle.WithErrorHandler(s.reportError))

	return out, nil
}

// watchLoop debounces events for target and forwards the last one of each burst.
func (s *Slot) watchLoop(ctx context.Context, key, target string, w *fsnotify.Watcher, out chan<- core.Event) error {
	var (
		pending *core.Event
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			e, relevant := s.mapEvent(event, key, target)
			if !relevant {
				continue
			}
			pending = &e
			if timer == nil {
				timer = time.NewTimer(s.config.Debounce)
			} else {
				timer.Reset(s.config.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if pending == nil {
				continue
			}
			e := *pending
			pending = nil
			if s.isOwnWrite(key, target) {
				s.logger.Debug("ignoring own write", "key", key)
				continue
			}
			s.recordChange()
			select {
			case out <- e:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-w.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			s.reportError(err)
		}
	}
}

func (s *Slot) mapEvent(event fsnotify.Event, key, target string) (core.Event, bool) {
	if s.shouldIgnore(filepath.Base(event.Name)) {
		return core.Event{}, false
	}
	if filepath.Clean(event.Name) != filepath.Clean(target) {
		return core.Event{}, false
	}

	var t core.EventType
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		t = core.EventDelete
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		t = core.EventModify
	default:
		return core.Event{}, false
	}

	s.logger.Debug("slot file event", "key", key, "op", event.Op.String())
	return core.Event{Type: t, Key: key, Timestamp: time.Now().Unix()}, true
}
