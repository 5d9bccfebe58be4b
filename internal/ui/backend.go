package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/cascade-menu/internal/backend"
	"github.com/atomicstack/cascade-menu/internal/logging/events"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.watcher != nil {
		return waitForBackendEvent(m.watcher)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

// applyBackendEvent swaps in a reloaded menu. A broken definition keeps the
// current menu on screen and reports the error.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.errMsg = fmt.Sprintf("reload %s: %v", evt.Path, evt.Err)
		events.Menu.Invalid(evt.Path, evt.Err)
		return
	}
	if evt.Tree == nil {
		return
	}
	if err := m.cascade.Reload(evt.Tree); err != nil {
		m.errMsg = err.Error()
		return
	}
	if evt.Title != "" {
		m.title = evt.Title
	}
	m.errMsg = ""
	m.setInfo(fmt.Sprintf("Reloaded %d items", evt.Tree.Len()))
}
