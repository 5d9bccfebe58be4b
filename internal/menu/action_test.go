package menu

import (
	"reflect"
	"testing"
)

func TestPrintActionReturnsOutput(t *testing.T) {
	ctx := Context{Path: []int{0, 1}, Labels: []string{"Settings", "Dark mode"}}
	cmd := PrintAction("dark")(ctx)
	if cmd == nil {
		t.Fatalf("expected command")
	}
	result, ok := cmd().(ActionResult)
	if !ok {
		t.Fatalf("expected ActionResult")
	}
	if result.Output != "dark" {
		t.Fatalf("expected output dark, got %q", result.Output)
	}
	if result.Info != "Selected Dark mode" {
		t.Fatalf("expected info naming the label, got %q", result.Info)
	}
}

func TestSplitCommandHonoursQuoting(t *testing.T) {
	argv, err := splitCommand(`display-message -p "hello world"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"display-message", "-p", "hello world"}
	if !reflect.DeepEqual(argv, want) {
		t.Fatalf("expected %v, got %v", want, argv)
	}
	if _, err := splitCommand("   "); err == nil {
		t.Fatalf("expected error for empty command")
	}
}

func TestTmuxArgsIncludeSocket(t *testing.T) {
	got := tmuxArgs("/tmp/tmux-1000/default", "new-window")
	want := []string{"-S", "/tmp/tmux-1000/default", "new-window"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if dir := socketDir("/tmp/tmux-1000/default"); dir != "/tmp/tmux-1000" {
		t.Fatalf("expected socket dir, got %q", dir)
	}
	if got := tmuxArgs("", "list-keys"); !reflect.DeepEqual(got, []string{"list-keys"}) {
		t.Fatalf("expected bare args without socket, got %v", got)
	}
}

func TestContextBreadcrumb(t *testing.T) {
	ctx := Context{Labels: []string{"Settings", "Auto-save", "On Exit"}}
	if got := ctx.Breadcrumb(); got != "Settings → Auto-save → On Exit" {
		t.Fatalf("unexpected breadcrumb %q", got)
	}
	if (Context{}).Label() != "" {
		t.Fatalf("expected empty label for empty context")
	}
}
