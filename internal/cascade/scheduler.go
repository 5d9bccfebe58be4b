package cascade

import "time"

// Timer is a scheduled callback that can be cancelled before it fires.
type Timer interface {
	// Stop cancels the callback. It reports false when the timer already
	// fired or was stopped.
	Stop() bool
}

// Scheduler defers callbacks. Implementations must run callbacks on the same
// goroutine that drives the cascade.
type Scheduler interface {
	Schedule(delay time.Duration, fire func()) Timer
}

// ImmediateScheduler runs callbacks synchronously, ignoring the delay.
type ImmediateScheduler struct{}

// Schedule runs fire before returning.
func (ImmediateScheduler) Schedule(_ time.Duration, fire func()) Timer {
	fire()
	return firedTimer{}
}

type firedTimer struct{}

func (firedTimer) Stop() bool { return false }

// ManualScheduler is a simulated clock. Callbacks only run from Advance.
type ManualScheduler struct {
	now   time.Duration
	order int
	tasks []*manualTimer
}

type manualTimer struct {
	due   time.Duration
	order int
	fire  func()
	done  bool
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

// NewManualScheduler returns a clock starting at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule queues fire to run once the clock has advanced by delay.
func (s *ManualScheduler) Schedule(delay time.Duration, fire func()) Timer {
	if delay < 0 {
		delay = 0
	}
	s.order++
	t := &manualTimer{due: s.now + delay, order: s.order, fire: fire}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every callback that comes
// due in order. Callbacks scheduled while advancing run too when they fall
// inside the window. It returns the number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	target := s.now + d
	fired := 0
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		next.done = true
		next.fire()
		fired++
	}
	s.now = target
	s.compact()
	return fired
}

// Now returns the simulated time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of callbacks waiting to run.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range s.tasks {
		if t.done || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.order < best.order) {
			best = t
		}
	}
	return best
}

func (s *ManualScheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.done {
			live = append(live, t)
		}
	}
	s.tasks = live
}
