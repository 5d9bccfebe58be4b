package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/cascade-menu/internal/cascade"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Child    key.Binding
	Parent   key.Binding
	Home     key.Binding
	End      key.Binding
	Activate key.Binding
	Dismiss  key.Binding
	Tab      key.Binding
	Open     key.Binding
	Exit     key.Binding
	Quit     key.Binding
}

func newKeyMap(dir cascade.Direction) keyMap {
	child, parent := "right", "left"
	childHelp, parentHelp := "→", "←"
	if dir == cascade.RightToLeft {
		child, parent = parent, child
		childHelp, parentHelp = parentHelp, childHelp
	}
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Child:    key.NewBinding(key.WithKeys(child), key.WithHelp(childHelp, "open")),
		Parent:   key.NewBinding(key.WithKeys(parent), key.WithHelp(parentHelp, "back")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Tab:      key.NewBinding(key.WithKeys("tab", "shift+tab")),
		Open:     key.NewBinding(key.WithKeys("enter", " ", "down"), key.WithHelp("enter", "open menu")),
		Exit:     key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("q", "quit")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Child, k.Parent, k.Activate, k.Dismiss}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.Child, k.Parent, k.Activate, k.Dismiss},
	}
}

func (k keyMap) closedHelp() []key.Binding {
	return []key.Binding{k.Open, k.Exit}
}

// translate maps a key press onto the cascade's navigation keys. Arrows are
// passed through as pressed; the cascade mirrors them for right-to-left.
func (k keyMap) translate(msg tea.KeyMsg) (cascade.KeyEvent, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return cascade.KeyEvent{Key: cascade.KeyUp}, true
	case tea.KeyDown:
		return cascade.KeyEvent{Key: cascade.KeyDown}, true
	case tea.KeyLeft:
		return cascade.KeyEvent{Key: cascade.KeyLeft}, true
	case tea.KeyRight:
		return cascade.KeyEvent{Key: cascade.KeyRight}, true
	}
	switch {
	case key.Matches(msg, k.Home):
		return cascade.KeyEvent{Key: cascade.KeyHome}, true
	case key.Matches(msg, k.End):
		return cascade.KeyEvent{Key: cascade.KeyEnd}, true
	case msg.Type == tea.KeyEnter:
		return cascade.KeyEvent{Key: cascade.KeyEnter}, true
	case msg.Type == tea.KeySpace:
		return cascade.KeyEvent{Key: cascade.KeySpace}, true
	case key.Matches(msg, k.Dismiss):
		return cascade.KeyEvent{Key: cascade.KeyEscape}, true
	case key.Matches(msg, k.Tab):
		return cascade.KeyEvent{Key: cascade.KeyTab}, true
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt:
		return cascade.KeyEvent{Key: cascade.KeyRune, Rune: msg.Runes[0]}, true
	}
	return cascade.KeyEvent{}, false
}
