package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/cascade-menu/internal/cascade"
	"github.com/atomicstack/cascade-menu/internal/logging/events"
)

const infoTTL = 5 * time.Second

// View implements tea.Model.
func (m *Model) View() string {
	cv := newCanvas(m.width, m.canvasHeight())
	anchor := m.anchorBox()
	cv.place(anchor.x, anchor.y, m.renderAnchor())
	for _, p := range m.layout() {
		cv.place(p.x, p.y, m.renderPanel(p))
	}
	lines := []string{cv.String(), m.statusLine()}
	if m.showFooter {
		lines = append(lines, m.footerLine())
	}
	return strings.Join(lines, "\n")
}

// canvasHeight is the number of rows left for the anchor and panels once the
// status and footer rows are taken.
func (m *Model) canvasHeight() int {
	h := m.height - 1
	if m.showFooter {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) renderAnchor() string {
	style := styles.Anchor
	if m.cascade.Focus().Target == cascade.FocusAnchor {
		style = styles.AnchorFocused
	}
	return style.Render(m.anchorLabel())
}

func (m *Model) renderPanel(p panel) string {
	lvl := p.level
	inner := p.w - panelChrome
	labelW := inner - itemChrome
	indicator := "▸"
	if m.direction == cascade.RightToLeft {
		indicator = "◂"
	}
	rows := make([]string, 0, lvl.Tree().Len())
	for i, n := range lvl.Tree().Nodes() {
		label := truncate.StringWithTail(n.Label(), uint(labelW), "…")
		label = padRight(label, labelW)
		mark := " "
		if n.HasSubmenu() {
			mark = indicator
		}
		text := " " + label + " " + mark + " "
		if m.direction == cascade.RightToLeft {
			text = " " + mark + " " + padLeft(strings.TrimRight(label, " "), labelW) + " "
		}
		style := styles.Item
		switch {
		case n.Disabled():
			style = styles.ItemDisabled
		case i == lvl.FocusIndex():
			style = styles.ItemFocused
		case i == lvl.OpenIndex():
			style = styles.ItemExpanded
		}
		rows = append(rows, style.Render(text))
	}
	border := styles.Panel
	if lvl == m.cascade.KeyboardLevel() {
		border = styles.PanelActive
	}
	return border.Render(strings.Join(rows, "\n"))
}

func (m *Model) statusLine() string {
	var line string
	switch {
	case m.errMsg != "":
		line = styles.Error.Render(truncateText(m.errMsg, m.width))
	case m.currentInfo() != "":
		line = styles.Info.Render(truncateText(m.infoMsg, m.width))
	}
	return line
}

func (m *Model) footerLine() string {
	m.help.Width = m.width
	if !m.cascade.IsOpen() {
		return styles.Footer.Render(m.help.ShortHelpView(m.keys.closedHelp()))
	}
	return styles.Footer.Render(m.help.View(m.keys))
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func truncateText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
