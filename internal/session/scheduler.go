package session

import (
	"sync"
	"time"
)

// scheduler runs the delayed tasks that pace the scripted wizard. Every
// pending task is tied to the session lifetime: StopAll cancels whatever has
// not fired yet, so a closed session can never be mutated by a stale timer.
type scheduler struct {
	mu     sync.Mutex
	closed bool
	seq    int
	timers map[int]*time.Timer
}

func newScheduler() *scheduler {
	return &scheduler{timers: make(map[int]*time.Timer)}
}

// After schedules fn to run once after d. The task is dropped if StopAll
// runs first.
func (s *scheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.seq++
	id := s.seq
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		delete(s.timers, id)
		s.mu.Unlock()
		fn()
	})
}

// Pending reports how many tasks have not fired yet.
func (s *scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// StopAll cancels every pending task and refuses new ones.
func (s *scheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
