package core

import "fmt"

// Layout describes how a store behaves and how it lays out its slot.
// Records and Freeform cover the two shapes the widget has shipped with.
type Layout struct {
	Name string
	// Key is the slot key the list is persisted under.
	Key string
	// Prepend puts new notes first instead of last.
	Prepend bool
	// KeepEmpty accepts blank notes on Add.
	KeepEmpty bool
	// Trim strips surrounding whitespace from fields on Add and Update.
	Trim bool
	// Titled keeps the title field; untitled layouts drop it.
	Titled bool
	// Confirm requires a Confirmer to accept every Delete.
	Confirm bool
	// Editable enables edit mode.
	Editable bool
	// Seed is the number of blank notes a fresh or unreadable slot starts with.
	Seed  int
	Codec Codec
}

var (
	// Records keeps titled notes, newest first.
	Records = Layout{
		Name:     "records",
		Key:      "notes",
		Prepend:  true,
		Trim:     true,
		Titled:   true,
		Confirm:  true,
		Editable: true,
		Codec:    RecordCodec{},
	}

	// Freeform keeps plain text notes in creation order and starts with one blank note.
	Freeform = Layout{
		Name:      "freeform",
		Key:       "stickyNotes",
		KeepEmpty: true,
		Seed:      1,
		Codec:     TextCodec{},
	}
)

// LayoutByName resolves "records" or "freeform".
func LayoutByName(name string) (Layout, error) {
	switch name {
	case "", Records.Name:
		return Records, nil
	case Freeform.Name:
		return Freeform, nil
	default:
		return Layout{}, fmt.Errorf("unknown layout: %s", name)
	}
}

func (l Layout) seed(ids *IDSource) []Note {
	notes := make([]Note, l.Seed)
	for i := range notes {
		notes[i].ID = ids.Next()
	}
	return notes
}
