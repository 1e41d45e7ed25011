package core

import "context"

// Draft is the uncommitted scratch copy of a note in edit mode.
type Draft struct {
	ID    int64
	Title string
	Text  string
}

// BeginEdit enters edit mode for the note with the given ID, copying its
// fields into a fresh draft. An edit already in progress is dropped.
func (s *Store) BeginEdit(id int64) (Draft, error) {
	if !s.layout.Editable {
		return Draft{}, ErrNotEditable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Draft{}, ErrNotFound
	}
	d := Draft{ID: id, Title: s.notes[i].Title, Text: s.notes[i].Text}
	s.draft = &d
	return d, nil
}

// Editing returns the ID of the note in edit mode.
func (s *Store) Editing() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.draft == nil {
		return 0, false
	}
	return s.draft.ID, true
}

// Draft returns the current scratch copy.
func (s *Store) Draft() (Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.draft == nil {
		return Draft{}, false
	}
	return *s.draft, true
}

// SetDraft replaces the scratch fields. It returns false outside edit mode.
func (s *Store) SetDraft(title, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return false
	}
	s.draft.Title = title
	s.draft.Text = text
	return true
}

// CancelEdit leaves edit mode and discards the draft.
func (s *Store) CancelEdit() {
	s.mu.Lock()
	s.draft = nil
	s.mu.Unlock()
}

// SaveEdit commits the draft through Update and leaves edit mode.
// It returns false if there was nothing to save or the note is gone.
func (s *Store) SaveEdit(ctx context.Context) bool {
	s.mu.Lock()
	d := s.draft
	s.draft = nil
	s.mu.Unlock()

	if d == nil {
		return false
	}
	return s.Update(ctx, d.ID, d.Title, d.Text)
}
