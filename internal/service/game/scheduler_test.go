package game

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleFires(t *testing.T) {
	s := newScheduler()
	defer s.Close()

	fired := make(chan struct{})
	s.Schedule(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled callback never fired")
	}
}

func TestCancelPreventsFire(t *testing.T) {
	s := newScheduler()
	defer s.Close()

	var fired atomic.Bool
	h := s.Schedule(20*time.Millisecond, func() { fired.Store(true) })
	s.Cancel(h)

	time.Sleep(60 * time.Millisecond)
	if fired.Load() {
		t.Fatal("cancelled callback fired")
	}
	if s.Pending() != 0 {
		t.Fatalf("expected no pending callbacks, got %d", s.Pending())
	}
}

func TestCancelAllIdempotent(t *testing.T) {
	s := newScheduler()
	defer s.Close()

	// CancelAll on an empty set is a no-op, repeatedly.
	s.CancelAll()
	s.CancelAll()

	var fired atomic.Int32
	s.Schedule(20*time.Millisecond, func() { fired.Add(1) })
	s.ScheduleRepeating(10*time.Millisecond, func() { fired.Add(1) })
	s.CancelAll()
	s.CancelAll()

	time.Sleep(60 * time.Millisecond)
	if n := fired.Load(); n != 0 {
		t.Fatalf("cancelled callbacks fired %d times", n)
	}
}

func TestScheduleRepeating(t *testing.T) {
	s := newScheduler()
	defer s.Close()

	var ticks atomic.Int32
	h := s.ScheduleRepeating(5*time.Millisecond, func() { ticks.Add(1) })

	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("repeating callback only ticked %d times", ticks.Load())
		}
		time.Sleep(time.Millisecond)
	}

	s.Cancel(h)
	settled := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	// One in-flight tick may land after Cancel; the ticker must stop after.
	if ticks.Load() > settled+1 {
		t.Fatalf("ticker kept running after cancel: %d -> %d", settled, ticks.Load())
	}
}

func TestClosedSchedulerRefusesWork(t *testing.T) {
	s := newScheduler()
	s.Close()

	var fired atomic.Bool
	if h := s.Schedule(time.Millisecond, func() { fired.Store(true) }); h != 0 {
		t.Fatal("closed scheduler returned a live handle")
	}
	time.Sleep(20 * time.Millisecond)
	if fired.Load() {
		t.Fatal("closed scheduler ran a callback")
	}
}
