package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/cascade-menu/internal/menu"
)

func TestExecuteRunsHandlerWithContext(t *testing.T) {
	var seen menu.Context
	handler := func(ctx menu.Context) tea.Cmd {
		seen = ctx
		return func() tea.Msg { return menu.ActionResult{Output: ctx.Label()} }
	}
	ctx := menu.Context{Path: []int{0, 2}, Labels: []string{"Settings", "Auto-save"}}
	msg := New().Execute(ctx, Request{ID: "0/2", Label: "Auto-save", Handler: handler})()
	result, ok := msg.(menu.ActionResult)
	if !ok {
		t.Fatalf("expected ActionResult, got %T", msg)
	}
	if result.Output != "Auto-save" {
		t.Fatalf("expected output Auto-save, got %q", result.Output)
	}
	if len(seen.Path) != 2 || seen.Path[1] != 2 {
		t.Fatalf("expected context path to reach handler, got %v", seen.Path)
	}
}

func TestExecuteWithoutHandlerOrCommand(t *testing.T) {
	bus := New()
	if msg := bus.Execute(menu.Context{}, Request{ID: "x"})(); msg != nil {
		t.Fatalf("expected nil message without handler, got %T", msg)
	}
	noop := func(menu.Context) tea.Cmd { return nil }
	if msg := bus.Execute(menu.Context{}, Request{ID: "x", Handler: noop})(); msg != nil {
		t.Fatalf("expected nil message for no-op handler, got %T", msg)
	}
}
