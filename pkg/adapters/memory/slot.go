// Package memory implements an ephemeral core.Slot.
// It backs throwaway stores and stands in for a second writer in tests:
// Put writes as if another process did, and is reported to watchers.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/stickies/pkg/core"
)

// Slot implements core.WatchableSlot in memory.
type Slot struct {
	mu       sync.RWMutex
	data     map[string][]byte
	watchers map[string][]chan core.Event
	failWith error
	writes   int
}

// NewSlot creates an empty memory slot.
func NewSlot() *Slot {
	return &Slot{
		data:     make(map[string][]byte),
		watchers: make(map[string][]chan core.Event),
	}
}

// Read implements core.Slot.
func (s *Slot) Read(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, core.ErrSlotEmpty
	}
	return slices.Clone(v), nil
}

// Write implements core.Slot. It does not notify watchers.
func (s *Slot) Write(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.data[key] = slices.Clone(data)
	s.writes++
	return nil
}

// Put stores data as an external writer would and notifies watchers of key.
func (s *Slot) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(data)

	// Sends never block, so holding the lock keeps them clear of Watch closing a channel.
	e := core.Event{Type: core.EventModify, Key: key, Timestamp: time.Now().Unix()}
	for _, ch := range s.watchers[key] {
		select {
		case ch <- e:
		default:
		}
	}
}

// FailWrites makes every subsequent Write return err. Pass nil to recover.
func (s *Slot) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Watch implements core.WatchableSlot.
func (s *Slot) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	ch := make(chan core.Event, 16)

	s.mu.Lock()
	s.watchers[key] = append(s.watchers[key], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		s.watchers[key] = slices.DeleteFunc(s.watchers[key], func(c chan core.Event) bool { return c == ch })
		close(ch)
		s.mu.Unlock()
	}()

	return ch, nil
}

// SlotState exposes internal state for observability.
type SlotState struct {
	Keys     []string `json:"keys"`
	Writes   int      `json:"writes"`
	Watchers int      `json:"watchers"`
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	watchers := 0
	for _, w := range s.watchers {
		watchers += len(w)
	}
	return SlotState{Keys: keys, Writes: s.writes, Watchers: watchers}
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "memory-slot"
}

var _ core.WatchableSlot = (*Slot)(nil)
var _ introspection.Introspectable = (*Slot)(nil)
var _ introspection.Component = (*Slot)(nil)
