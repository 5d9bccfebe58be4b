package cascade

import (
	"testing"
	"time"
)

func TestManualSchedulerRunsInOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	s.Schedule(20*time.Millisecond, func() { got = append(got, "b") })
	s.Schedule(10*time.Millisecond, func() { got = append(got, "a") })
	stopped := s.Schedule(10*time.Millisecond, func() { got = append(got, "x") })
	if !stopped.Stop() {
		t.Fatalf("expected first stop to succeed")
	}
	if stopped.Stop() {
		t.Fatalf("expected second stop to report false")
	}
	if n := s.Advance(5 * time.Millisecond); n != 0 {
		t.Fatalf("expected nothing due yet, ran %d", n)
	}
	if n := s.Advance(15 * time.Millisecond); n != 2 {
		t.Fatalf("expected two callbacks, ran %d", n)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected order %v", got)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", s.Pending())
	}
}

func TestManualSchedulerChainsWithinWindow(t *testing.T) {
	s := NewManualScheduler()
	fired := 0
	s.Schedule(10*time.Millisecond, func() {
		fired++
		s.Schedule(10*time.Millisecond, func() { fired++ })
	})
	s.Advance(30 * time.Millisecond)
	if fired != 2 {
		t.Fatalf("expected chained callback to run, got %d", fired)
	}
	if s.Now() != 30*time.Millisecond {
		t.Fatalf("expected clock at 30ms, got %v", s.Now())
	}
}

func TestImmediateSchedulerRunsSynchronously(t *testing.T) {
	ran := false
	timer := ImmediateScheduler{}.Schedule(time.Hour, func() { ran = true })
	if !ran {
		t.Fatalf("expected callback to run before Schedule returns")
	}
	if timer.Stop() {
		t.Fatalf("expected Stop on a fired timer to report false")
	}
}
