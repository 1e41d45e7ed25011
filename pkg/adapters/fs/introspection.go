package fs

import (
	"slices"
	"time"

	"github.com/aretw0/introspection"
)

// SlotState exposes internal state for observability.
type SlotState struct {
	Path       string     `json:"path"`
	ReadOnly   bool       `json:"read_only"`
	Keys       []string   `json:"keys"`
	Ignore     []string   `json:"ignore"`
	Watchers   int        `json:"watchers"`
	LastChange *time.Time `json:"last_change,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.written))
	for k := range s.written {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return SlotState{
		Path:       s.Path,
		ReadOnly:   s.config.ReadOnly,
		Keys:       keys,
		Ignore:     slices.Clone(s.ignore),
		Watchers:   s.watchers,
		LastChange: s.lastChange,
	}
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "fs-slot"
}

var _ introspection.Introspectable = (*Slot)(nil)
var _ introspection.Component = (*Slot)(nil)

func (s *Slot) setWatching(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers += delta
}

func (s *Slot) recordChange() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastChange = &now
}
