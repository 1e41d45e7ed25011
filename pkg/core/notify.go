package core

import (
	"context"
	"sync"
	"time"
)

// DefaultEventBuffer is the channel size used by Events when none is given.
const DefaultEventBuffer = 100

// Subscribe registers fn to be called after every change of the list.
// Events arrive in the order the changes were written to the slot.
// fn runs on a goroutine that made a change and must not block.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// Events returns a buffered channel of changes, closed when ctx is done.
// Events that do not fit the buffer are dropped so a slow reader never
// stalls a mutation.
func (s *Store) Events(ctx context.Context, buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	ch := make(chan Event, buffer)

	var (
		mu     sync.Mutex
		closed bool
	)
	unsubscribe := s.Subscribe(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- e:
		default:
			s.logger.Debug("event dropped, subscriber buffer full", "type", e.Type, "id", e.ID)
		}
	})

	go func() {
		<-ctx.Done()
		unsubscribe()
		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()

	return ch
}

func (s *Store) subscribers() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subs)
}

// enqueueLocked queues e for delivery. Caller must hold s.mu, so the queue
// follows the order of the slot writes.
func (s *Store) enqueueLocked(e Event) {
	e.Key = s.key
	e.Timestamp = time.Now().Unix()
	s.pending = append(s.pending, e)
}

// flush delivers queued events. Only one goroutine delivers at a time; a
// caller that finds delivery in progress leaves its events to that goroutine,
// which also covers subscribers that mutate the store from fn.
func (s *Store) flush() {
	for {
		if !s.flushMu.TryLock() {
			return
		}
		for {
			s.mu.Lock()
			batch := s.pending
			s.pending = nil
			s.mu.Unlock()
			if len(batch) == 0 {
				break
			}
			for _, e := range batch {
				s.publish(e)
			}
		}
		s.flushMu.Unlock()

		// Events queued between the last drain and Unlock found the lock taken.
		s.mu.RLock()
		empty := len(s.pending) == 0
		s.mu.RUnlock()
		if empty {
			return
		}
	}
}

func (s *Store) publish(e Event) {
	s.subMu.RLock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}
