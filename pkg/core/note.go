// Package core holds the note domain: the Note entity, the persistence slot
// port and the Store that keeps both consistent.
package core

import "strings"

// Untitled is the label shown for a note without a title.
const Untitled = "Untitled"

// Note is the central entity of the domain.
// It is a short user-authored text with an optional title, identified by a
// stable ID that survives reordering and deletion of other notes.
type Note struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// DisplayTitle returns the title, or Untitled when it is empty.
func (n Note) DisplayTitle() string {
	if n.Title == "" {
		return Untitled
	}
	return n.Title
}

// IsEmpty reports whether both title and text are blank.
func (n Note) IsEmpty() bool {
	return strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Text) == ""
}

// Matches reports whether term occurs in the title or the text, ignoring case.
// An empty term matches every note.
func (n Note) Matches(term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(n.Title), needle) ||
		strings.Contains(strings.ToLower(n.Text), needle)
}
