package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Config holds the dependencies of a Store.
type Config struct {
	Layout    Layout
	Slot      Slot
	Confirmer Confirmer
	Logger    *slog.Logger
	IDs       *IDSource
	// Key overrides Layout.Key.
	Key string
	// WriteErrorHandler is called with every failed persistence write.
	// Failed writes are never returned from mutations.
	WriteErrorHandler func(error)
}

// Store is the canonical, ordered list of notes.
// Every successful mutation re-serializes the whole list to the slot, so the
// slot always mirrors memory as far as the slot allows.
type Store struct {
	mu         sync.RWMutex
	layout     Layout
	key        string
	slot       Slot
	confirmer  Confirmer
	logger     *slog.Logger
	ids        *IDSource
	onWriteErr func(error)

	notes      []Note
	draft      *Draft
	persistErr error
	lastWrite  *time.Time
	// gen counts mutations; Load drops a read that a mutation overtook.
	gen uint64
	// pending holds events in mutation order until flush delivers them.
	pending []Event

	flushMu sync.Mutex
	subMu   sync.RWMutex
	subs    map[uint64]func(Event)
	nextSub uint64
}

// NewStore creates an empty Store. Call Load to read the slot.
// A zero Layout means Records; a nil Slot keeps notes in memory only.
func NewStore(cfg Config) *Store {
	layout := cfg.Layout
	if layout.Codec == nil {
		layout = Records
	}
	key := layout.Key
	if cfg.Key != "" {
		key = cfg.Key
	}
	slot := cfg.Slot
	if slot == nil {
		slot = nullSlot{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ids := cfg.IDs
	if ids == nil {
		ids = NewIDSource()
	}

	return &Store{
		layout:     layout,
		key:        key,
		slot:       slot,
		confirmer:  cfg.Confirmer,
		logger:     logger,
		ids:        ids,
		onWriteErr: cfg.WriteErrorHandler,
		subs:       make(map[uint64]func(Event)),
	}
}

// Layout returns the layout the store was created with.
func (s *Store) Layout() Layout {
	return s.layout
}

// Key returns the slot key the list is persisted under.
func (s *Store) Key() string {
	return s.key
}

// Load replaces the in-memory list with the slot contents.
// An empty, unreadable or corrupt slot yields the layout's default list.
// Load never fails: absence of valid data is recovered by falling back.
// A read overtaken by a mutation of this store is dropped: the mutation
// already wrote the newer list to the slot.
func (s *Store) Load(ctx context.Context) {
	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	notes := s.read(ctx)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.logger.Debug("list changed while loading, keeping memory", "key", s.key)
		return
	}
	s.notes = notes
	if s.draft != nil && s.indexOf(s.draft.ID) < 0 {
		s.draft = nil
	}
	s.enqueueLocked(Event{Type: EventLoad})
	s.mu.Unlock()

	s.flush()
}

func (s *Store) read(ctx context.Context) []Note {
	data, err := s.slot.Read(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			s.logger.Debug("slot empty, starting with defaults", "key", s.key)
		} else {
			s.logger.Warn("failed to read slot, starting with defaults", "key", s.key, "error", err)
		}
		return s.layout.seed(s.ids)
	}

	notes, err := s.layout.Codec.Decode(data)
	if err != nil {
		s.logger.Warn("discarding unreadable notes, starting with defaults", "key", s.key, "error", err)
		return s.layout.seed(s.ids)
	}
	return s.normalize(notes)
}

// normalize assigns fresh IDs to notes that lack one, share one or carry
// one above MaxID, and raises the ID floor above everything persisted.
func (s *Store) normalize(notes []Note) []Note {
	for _, n := range notes {
		if n.ID > 0 && n.ID <= MaxID {
			s.ids.Observe(n.ID)
		}
	}

	seen := make(map[int64]bool, len(notes))
	for i := range notes {
		n := &notes[i]
		if n.ID <= 0 || n.ID > MaxID || seen[n.ID] {
			n.ID = s.ids.Next()
		}
		seen[n.ID] = true
		if !s.layout.Titled {
			n.Title = ""
		}
	}
	return notes
}

// Add creates a note and stores it at the layout's insertion end.
// Layouts that drop blank notes return false without touching the list.
func (s *Store) Add(ctx context.Context, title, text string) (Note, bool) {
	title, text = s.clean(title, text)
	n := Note{Title: title, Text: text}
	if !s.layout.KeepEmpty && n.IsEmpty() {
		s.logger.Debug("ignoring blank note")
		return Note{}, false
	}
	n.ID = s.ids.Next()

	s.mu.Lock()
	if s.layout.Prepend {
		s.notes = slices.Insert(s.notes, 0, n)
	} else {
		s.notes = append(s.notes, n)
	}
	err := s.persistLocked(ctx)
	s.enqueueLocked(Event{Type: EventCreate, ID: n.ID})
	s.mu.Unlock()

	s.settle(err)
	return n, true
}

// Update replaces the title and text of the note with the given ID.
// It returns false if no such note exists.
func (s *Store) Update(ctx context.Context, id int64, title, text string) bool {
	title, text = s.clean(title, text)

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.notes[i].Title = title
	s.notes[i].Text = text
	err := s.persistLocked(ctx)
	s.enqueueLocked(Event{Type: EventModify, ID: id})
	s.mu.Unlock()

	s.settle(err)
	return true
}

// UpdateAt replaces the text of the note at the given position, keeping its title.
func (s *Store) UpdateAt(ctx context.Context, index int, text string) bool {
	_, text = s.clean("", text)

	s.mu.Lock()
	if index < 0 || index >= len(s.notes) {
		s.mu.Unlock()
		return false
	}
	s.notes[index].Text = text
	id := s.notes[index].ID
	err := s.persistLocked(ctx)
	s.enqueueLocked(Event{Type: EventModify, ID: id})
	s.mu.Unlock()

	s.settle(err)
	return true
}

// Delete removes the note with the given ID.
// Layouts that require confirmation ask first and keep the note on rejection.
// Deleting the note being edited leaves edit mode.
func (s *Store) Delete(ctx context.Context, id int64) bool {
	if _, ok := s.Get(id); !ok {
		return false
	}
	if s.layout.Confirm && !confirmed(ctx, s.confirmer) {
		s.logger.Debug("delete not confirmed", "id", id)
		return false
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.notes = slices.Delete(s.notes, i, i+1)
	if s.draft != nil && s.draft.ID == id {
		s.draft = nil
	}
	err := s.persistLocked(ctx)
	s.enqueueLocked(Event{Type: EventDelete, ID: id})
	s.mu.Unlock()

	s.settle(err)
	return true
}

// DeleteAt removes the note at the given position.
// Notes after it move up by one.
func (s *Store) DeleteAt(ctx context.Context, index int) bool {
	n, ok := s.At(index)
	if !ok {
		return false
	}
	return s.Delete(ctx, n.ID)
}

// List returns a copy of all notes in display order.
func (s *Store) List() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Get returns the note with the given ID.
func (s *Store) Get(id int64) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i], true
}

// At returns the note at the given position.
func (s *Store) At(index int) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.notes) {
		return Note{}, false
	}
	return s.notes[index], true
}

// Search returns the notes matching term, in display order.
// The list itself is left untouched.
func (s *Store) Search(term string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		if n.Matches(term) {
			matches = append(matches, n)
		}
	}
	return matches
}

// PersistErr returns the error of the last write, or nil if it succeeded.
func (s *Store) PersistErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistErr
}

// Follow reloads the list every time the slot is changed by someone else.
// It blocks until ctx is done or the slot stops reporting changes.
func (s *Store) Follow(ctx context.Context) error {
	w, ok := s.slot.(WatchableSlot)
	if !ok {
		return ErrNotWatchable
	}
	changes, err := w.Watch(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to watch slot %s: %w", s.key, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-changes:
			if !ok {
				return nil
			}
			s.logger.Debug("slot changed externally, reloading", "key", s.key, "type", e.Type)
			s.Load(ctx)
		}
	}
}

func (s *Store) clean(title, text string) (string, string) {
	if !s.layout.Titled {
		title = ""
	}
	if s.layout.Trim {
		title = strings.TrimSpace(title)
		text = strings.TrimSpace(text)
	}
	return title, text
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}

// persistLocked writes the whole list. Caller must hold s.mu.
func (s *Store) persistLocked(ctx context.Context) error {
	s.gen++
	data, err := s.layout.Codec.Encode(s.notes)
	if err == nil {
		err = s.slot.Write(ctx, s.key, data)
	}
	if err != nil {
		s.persistErr = fmt.Errorf("failed to persist %s: %w", s.key, err)
		return s.persistErr
	}
	now := time.Now()
	s.persistErr = nil
	s.lastWrite = &now
	return nil
}

// settle reports a failed write and notifies subscribers. Caller must not hold s.mu.
func (s *Store) settle(err error) {
	if err != nil {
		s.logger.Warn("notes not persisted", "key", s.key, "error", err)
		if s.onWriteErr != nil {
			s.onWriteErr(err)
		}
	}
	s.flush()
}

// Close releases the slot if it holds resources (e.g. a connection).
func (s *Store) Close() error {
	if c, ok := s.slot.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type nullSlot struct{}

func (nullSlot) Read(context.Context, string) ([]byte, error) { return nil, ErrSlotEmpty }
func (nullSlot) Write(context.Context, string, []byte) error  { return nil }
