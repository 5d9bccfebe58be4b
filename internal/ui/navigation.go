package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/cascade-menu/internal/cascade"
	"github.com/atomicstack/cascade-menu/internal/geometry"
	"github.com/atomicstack/cascade-menu/internal/logging/events"
	"github.com/atomicstack/cascade-menu/internal/menu"
	"github.com/atomicstack/cascade-menu/internal/ui/command"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	if !m.cascade.IsOpen() {
		switch {
		case key.Matches(keyMsg, m.keys.Open):
			m.openMenu()
		case key.Matches(keyMsg, m.keys.Exit):
			return tea.Quit
		}
		return nil
	}
	ev, ok := m.keys.translate(keyMsg)
	if !ok {
		return nil
	}
	events.UI.Key(keyMsg.String(), m.cascade.KeyboardLevel().Depth())
	m.errMsg = ""
	m.cascade.HandleKey(ev)
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	ev := cascade.PointerEvent{Point: geometry.CellPoint(mouse.X, mouse.Y), Trusted: true}
	switch mouse.Action {
	case tea.MouseActionMotion:
		if !m.cascade.IsOpen() {
			return nil
		}
		h := m.hitTest(mouse.X, mouse.Y)
		switch {
		case !h.inPanel:
			m.cascade.PointerOutside(ev)
		case h.index >= 0:
			m.cascade.PointerMove(h.depth, h.index, ev)
		}
	case tea.MouseActionPress:
		if mouse.Button != tea.MouseButtonLeft {
			return nil
		}
		if !m.cascade.IsOpen() {
			if m.anchorBox().contains(mouse.X, mouse.Y) {
				m.openMenu()
			}
			return nil
		}
		h := m.hitTest(mouse.X, mouse.Y)
		switch {
		case !h.inPanel:
			m.cascade.ClickOutside(ev)
		case h.index >= 0:
			m.cascade.Click(h.depth, h.index, ev)
		}
	}
	return nil
}

func (m *Model) openMenu() {
	if m.running {
		return
	}
	m.errMsg = ""
	m.cascade.SetOpen(true)
}

func (m *Model) onActivate(act cascade.Activation) {
	ctx := act.Context()
	m.running = true
	run := m.bus.Execute(ctx, command.Request{
		ID:      pathID(act.Path),
		Label:   act.Node.Label(),
		Handler: act.Node.Action(),
	})
	// an action without a result still finishes the run
	m.pending = append(m.pending, func() tea.Msg {
		if msg := run(); msg != nil {
			return msg
		}
		return menu.ActionResult{}
	})
	if m.verbose {
		m.setInfo(fmt.Sprintf("Running %s", ctx.Breadcrumb()))
	}
}

func (m *Model) onCascadeClose(_ cascade.Event, reason cascade.CloseReason) {
	m.lastClose = reason
}

func pathID(path []int) string {
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, "/")
}
