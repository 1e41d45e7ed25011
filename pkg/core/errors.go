package core

import "errors"

// Common errors.
var (
	// ErrSlotEmpty is returned by a Slot when nothing has been stored under the key yet.
	ErrSlotEmpty = errors.New("slot is empty")
	// ErrReadOnly is returned by a Slot that refuses writes.
	ErrReadOnly = errors.New("slot is in read-only mode")
	// ErrCorrupt wraps decoding failures of persisted data.
	ErrCorrupt = errors.New("persisted notes are corrupt")
	// ErrNotEditable is returned when edit mode is requested on a layout without it.
	ErrNotEditable = errors.New("layout does not support edit mode")
	// ErrNotFound is returned when a note ID does not exist.
	ErrNotFound = errors.New("note not found")
	// ErrNotWatchable is returned by Follow when the slot cannot report external changes.
	ErrNotWatchable = errors.New("slot does not support watching")
)
