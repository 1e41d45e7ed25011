package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Layout       string     `json:"layout"`
	Key          string     `json:"key"`
	Notes        int        `json:"notes"`
	Editing      *int64     `json:"editing,omitempty"`
	Subscribers  int        `json:"subscribers"`
	SlotType     string     `json:"slot_type"`
	LastWrite    *time.Time `json:"last_write,omitempty"`
	PersistError string     `json:"persist_error,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slotType := "slot"
	// Try to get component type if the slot implements introspection.Component
	if comp, ok := s.slot.(introspection.Component); ok {
		slotType = comp.ComponentType()
	} else if _, ok := s.slot.(nullSlot); ok {
		slotType = "none"
	}

	state := StoreState{
		Layout:      s.layout.Name,
		Key:         s.key,
		Notes:       len(s.notes),
		Subscribers: s.subscribers(),
		SlotType:    slotType,
		LastWrite:   s.lastWrite,
	}
	if s.draft != nil {
		id := s.draft.ID
		state.Editing = &id
	}
	if s.persistErr != nil {
		state.PersistError = s.persistErr.Error()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
