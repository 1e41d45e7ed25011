package core

import "fmt"

// EventType represents the type of change in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
	// EventLoad is emitted after the whole list was (re)read from the slot.
	EventLoad EventType = "LOAD"
)

// Event represents a change of the note list or of the slot backing it.
// ID is zero for list-wide events such as EventLoad.
type Event struct {
	Type      EventType `json:"type"`
	ID        int64     `json:"id,omitempty"`
	Key       string    `json:"key,omitempty"`
	Timestamp int64     `json:"timestamp"` // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s %s", e.Type, e.Key)
	}
	return fmt.Sprintf("%s %s#%d", e.Type, e.Key, e.ID)
}
