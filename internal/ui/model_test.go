package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/cascade-menu/internal/backend"
	"github.com/atomicstack/cascade-menu/internal/cascade"
	"github.com/atomicstack/cascade-menu/internal/menu"
)

const testDelay = 100 * time.Millisecond

func newTestHarness(t *testing.T, tree *menu.Tree, mutate func(*Config)) *Harness {
	t.Helper()
	opts := cascade.DefaultOptions()
	opts.TransitionDelay = testDelay
	cfg := Config{
		Tree:      tree,
		Options:   opts,
		Width:     80,
		Height:    24,
		Scheduler: cascade.NewManualScheduler(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := NewModel(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewHarness(m)
}

func TestClickAnchorOpensMenu(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	if h.Model().Cascade().IsOpen() {
		t.Fatalf("expected menu closed initially")
	}
	if view := h.View(); !strings.Contains(view, "Menu ▾") || strings.Contains(view, "Settings") {
		t.Fatalf("expected only the anchor, view =\n%s", view)
	}
	h.Click(2, 0)
	if !h.Model().Cascade().IsOpen() {
		t.Fatalf("expected click on anchor to open the menu")
	}
	if view := h.View(); !strings.Contains(view, "Settings") || !strings.Contains(view, "Logout") {
		t.Fatalf("expected root items, view =\n%s", view)
	}
	if got := h.Model().Cascade().Focus(); got.Target != cascade.FocusItem || got.Index != 0 {
		t.Fatalf("expected first item focused, got %+v", got)
	}
}

func TestPointerOpensSubmenusAfterDelay(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.Click(2, 0)

	h.Move(4, 2)
	if strings.Contains(h.View(), "Verbose Logging") {
		t.Fatalf("expected submenu to wait for the delay")
	}
	h.Advance(testDelay)
	if !strings.Contains(h.View(), "Verbose Logging") {
		t.Fatalf("expected settings submenu, view =\n%s", h.View())
	}
	if got := h.Model().Cascade().Focus(); got.Depth != 1 {
		t.Fatalf("expected the hovered submenu to take focus, got %+v", got)
	}

	h.Move(20, 5)
	h.Advance(testDelay)
	if !strings.Contains(h.View(), "Not this one") {
		t.Fatalf("expected Go deeper submenu, view =\n%s", h.View())
	}
	if got := len(h.Model().Cascade().Levels()); got != 3 {
		t.Fatalf("expected three levels, got %d", got)
	}

	h.Move(3, 4)
	h.Advance(testDelay)
	if got := len(h.Model().Cascade().Levels()); got != 1 {
		t.Fatalf("expected hovering Logout to close the submenus, %d levels", got)
	}
	if strings.Contains(h.View(), "Verbose Logging") {
		t.Fatalf("expected settings submenu gone, view =\n%s", h.View())
	}
}

func TestKeyboardActivationQuitsWithOutput(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.Key(tea.KeyEnter)
	h.Key(tea.KeyDown)
	h.Key(tea.KeyDown)
	h.Key(tea.KeyEnter)
	if !h.Quit() {
		t.Fatalf("expected program to quit after activation")
	}
	if got := h.Model().Output(); got != "logout" {
		t.Fatalf("expected logout output, got %q", got)
	}
	if h.Model().Cascade().IsOpen() {
		t.Fatalf("expected menu closed")
	}
	if got := h.Model().LastCloseReason(); got != cascade.ReasonItemActivated {
		t.Fatalf("expected itemActivated, got %s", got)
	}
}

func TestClickActivatesNestedItem(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.Key(tea.KeyEnter)
	h.Key(tea.KeyRight)
	// Dark Mode is the first row of the settings panel
	h.Click(20, 2)
	if got := h.Model().Output(); got != "settings:dark-mode" {
		t.Fatalf("expected dark mode output, got %q", got)
	}
	if !h.Quit() {
		t.Fatalf("expected quit")
	}
}

func TestEscapeClosesThenQuits(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.Key(tea.KeyEnter)
	h.Key(tea.KeyRight)
	h.Key(tea.KeyEsc)
	if h.Model().Cascade().IsOpen() {
		t.Fatalf("expected escape to close every level")
	}
	if got := h.Model().LastCloseReason(); got != cascade.ReasonEscapeKeyDown {
		t.Fatalf("expected escapeKeyDown, got %s", got)
	}
	if h.Quit() {
		t.Fatalf("expected first escape to keep the program running")
	}
	h.Key(tea.KeyEsc)
	if !h.Quit() {
		t.Fatalf("expected escape on the closed menu to quit")
	}
}

func TestTabAndBackdropClose(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.Key(tea.KeyEnter)
	h.Key(tea.KeyTab)
	if got := h.Model().LastCloseReason(); got != cascade.ReasonTabKeyDown {
		t.Fatalf("expected tabKeyDown, got %s", got)
	}
	h.Click(2, 0)
	h.Click(70, 20)
	if h.Model().Cascade().IsOpen() {
		t.Fatalf("expected backdrop click to close")
	}
	if got := h.Model().LastCloseReason(); got != cascade.ReasonBackdropClick {
		t.Fatalf("expected backdropClick, got %s", got)
	}
}

func TestTypeAheadMovesFocus(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.Key(tea.KeyEnter)
	h.Runes("l")
	if got := h.Model().Cascade().Focus(); got.Index != 2 {
		t.Fatalf("expected Logout focused, got %+v", got)
	}
}

func TestActionErrorIsShown(t *testing.T) {
	failing := func(menu.Context) tea.Cmd {
		return func() tea.Msg { return menu.ActionResult{Err: errors.New("boom")} }
	}
	tree := menu.MustBuild([]menu.Entry{{Label: "Fail", Action: failing}})
	h := newTestHarness(t, tree, nil)
	h.Key(tea.KeyEnter)
	h.Key(tea.KeyEnter)
	if h.Quit() {
		t.Fatalf("expected failing action to keep running")
	}
	if h.Model().Err() != "boom" {
		t.Fatalf("expected error message, got %q", h.Model().Err())
	}
	if !strings.Contains(h.View(), "boom") {
		t.Fatalf("expected error in view, view =\n%s", h.View())
	}
	h.Key(tea.KeyEnter)
	if !h.Model().Cascade().IsOpen() {
		t.Fatalf("expected menu to reopen after an error")
	}
}

func TestBackendEventReloadsMenu(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.Key(tea.KeyEnter)
	tree := menu.MustBuild([]menu.Entry{{Label: "Reloaded", Action: menu.PrintAction("r")}})
	h.Send(backendEventMsg{event: backend.Event{Path: "menu.toml", Title: "Tools", Tree: tree}})
	if h.Model().Cascade().Tree() != tree {
		t.Fatalf("expected cascade to use the reloaded tree")
	}
	view := h.View()
	if !strings.Contains(view, "Tools ▾") || !strings.Contains(view, "Reloaded") {
		t.Fatalf("expected reloaded menu, view =\n%s", view)
	}

	h.Send(backendEventMsg{event: backend.Event{Path: "menu.toml", Err: errors.New("bad toml")}})
	if !strings.Contains(h.Model().Err(), "bad toml") {
		t.Fatalf("expected reload error, got %q", h.Model().Err())
	}
	if h.Model().Cascade().Tree() != tree {
		t.Fatalf("expected broken reload to keep the current tree")
	}
}

func TestRightToLeftLayout(t *testing.T) {
	h := newTestHarness(t, nil, func(cfg *Config) {
		cfg.Options.Direction = cascade.RightToLeft
	})
	h.Key(tea.KeyEnter)
	h.Key(tea.KeyLeft)
	if got := len(h.Model().Cascade().Levels()); got != 2 {
		t.Fatalf("expected left arrow to open in rtl, %d levels", got)
	}
	root, _ := h.Model().PanelBounds(0)
	child, _ := h.Model().PanelBounds(1)
	if child.Right != root.Left {
		t.Fatalf("expected submenu to the left of the root, root %+v child %+v", root, child)
	}
	if !strings.Contains(h.View(), "◂") {
		t.Fatalf("expected rtl indicator, view =\n%s", h.View())
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	h := newTestHarness(t, nil, func(cfg *Config) { cfg.Height = 0 })
	h.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	if h.Model().width != 80 || h.Model().height != 40 {
		t.Fatalf("expected fixed width and resized height, got %dx%d", h.Model().width, h.Model().height)
	}
}

func TestFooterShowsHelp(t *testing.T) {
	h := newTestHarness(t, nil, func(cfg *Config) { cfg.ShowFooter = true })
	if !strings.Contains(h.View(), "open menu") {
		t.Fatalf("expected closed help, view =\n%s", h.View())
	}
	h.Key(tea.KeyEnter)
	if !strings.Contains(h.View(), "select") {
		t.Fatalf("expected open help, view =\n%s", h.View())
	}
}
