package game

import (
	"sync"
	"time"
)

// Handle identifies one outstanding scheduled callback.
type Handle uint64

// scheduler tracks every delayed and repeating callback a game has in
// flight so state transitions can cancel them in bulk. Callbacks fire on
// timer goroutines; serialization against engine state is the caller's job
// (every callback takes the game mutex and re-checks its guards).
type scheduler struct {
	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
	stops  map[Handle]chan struct{}
	closed bool
}

func newScheduler() *scheduler {
	return &scheduler{
		timers: make(map[Handle]*time.Timer),
		stops:  make(map[Handle]chan struct{}),
	}
}

// Schedule runs fn once after d. The handle is released automatically when
// the callback fires.
func (s *scheduler) Schedule(d time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}

	s.next++
	h := s.next
	s.timers[h] = time.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.timers[h]
		delete(s.timers, h)
		s.mu.Unlock()
		if live {
			fn()
		}
	})
	return h
}

// ScheduleRepeating runs fn every interval until the handle is cancelled.
func (s *scheduler) ScheduleRepeating(interval time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}

	s.next++
	h := s.next
	stop := make(chan struct{})
	s.stops[h] = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return h
}

// Cancel stops one outstanding callback. Cancelling an unknown or already
// fired handle is a no-op.
func (s *scheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(h)
}

// CancelAll stops every outstanding callback. Safe to call repeatedly and
// on an empty set.
func (s *scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for h := range s.timers {
		s.cancelLocked(h)
	}
	for h := range s.stops {
		s.cancelLocked(h)
	}
}

// Close cancels everything and refuses further scheduling.
func (s *scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for h := range s.timers {
		s.cancelLocked(h)
	}
	for h := range s.stops {
		s.cancelLocked(h)
	}
}

// Pending reports how many callbacks are outstanding.
func (s *scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers) + len(s.stops)
}

func (s *scheduler) cancelLocked(h Handle) {
	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
	if stop, ok := s.stops[h]; ok {
		close(stop)
		delete(s.stops, h)
	}
}
