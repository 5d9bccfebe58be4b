package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/cascade-menu/internal/cascade"
)

type timerFiredMsg struct {
	id uint64
}

// tickScheduler turns cascade timers into tea.Tick commands. Callbacks run
// when the tick message reaches Update, so the cascade is only ever touched
// from the update loop.
type tickScheduler struct {
	next   uint64
	timers map[uint64]*tickTimer
	queued []tea.Cmd
}

type tickTimer struct {
	id   uint64
	fire func()
	s    *tickScheduler
}

func newTickScheduler() *tickScheduler {
	return &tickScheduler{timers: map[uint64]*tickTimer{}}
}

func (s *tickScheduler) Schedule(delay time.Duration, fire func()) cascade.Timer {
	s.next++
	id := s.next
	t := &tickTimer{id: id, fire: fire, s: s}
	s.timers[id] = t
	s.queued = append(s.queued, tea.Tick(delay, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return t
}

func (t *tickTimer) Stop() bool {
	if _, ok := t.s.timers[t.id]; !ok {
		return false
	}
	delete(t.s.timers, t.id)
	return true
}

// drain returns the ticks queued since the last call.
func (s *tickScheduler) drain() []tea.Cmd {
	cmds := s.queued
	s.queued = nil
	return cmds
}

func (s *tickScheduler) fire(id uint64) {
	t, ok := s.timers[id]
	if !ok {
		return
	}
	delete(s.timers, id)
	t.fire()
}

func (m *Model) handleTimerFiredMsg(msg tea.Msg) tea.Cmd {
	fired, ok := msg.(timerFiredMsg)
	if !ok || m.ticks == nil {
		return nil
	}
	m.ticks.fire(fired.id)
	return nil
}
