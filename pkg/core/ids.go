package core

import (
	"sync"
	"time"
)

// MaxID is the largest ID a persisted note may carry: the largest integer a
// JSON number holds exactly in every client. Larger IDs are replaced on load.
const MaxID int64 = 1<<53 - 1

// IDSource hands out note IDs.
// IDs follow wall-clock milliseconds so they stay compatible with lists
// persisted by older clients, but never repeat: a burst within the same
// millisecond counts up from the last ID issued.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDSource creates an IDSource driven by the system clock.
func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

// Next returns a fresh ID, strictly greater than every ID issued or observed.
func (s *IDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe raises the floor so that Next never returns id or anything below it.
// IDs above MaxID are ignored.
func (s *IDSource) Observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last && id <= MaxID {
		s.last = id
	}
}
