package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/cascade-menu/internal/menu"
)

// replaceFile writes body next to path and renames it into place so the
// watcher never sees a partial file.
func replaceFile(t *testing.T, path, body string) {
	t.Helper()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(body), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
}

func waitForEvent(t *testing.T, w *Watcher, match func(Event) bool) Event {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed early")
			}
			if match(evt) {
				return evt
			}
		case <-deadline:
			t.Fatalf("timed out waiting for watcher event")
		}
	}
}

func TestWatcherReloadsDefinition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.toml")
	replaceFile(t, path, "[[item]]\nlabel = \"one\"\nprint = \"1\"\n")

	w, err := NewWatcher(path, menu.Environment{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	replaceFile(t, path, "title = \"two\"\n[[item]]\nlabel = \"one\"\nprint = \"1\"\n[[item]]\nlabel = \"two\"\nprint = \"2\"\n")
	evt := waitForEvent(t, w, func(e Event) bool { return e.Err == nil && e.Tree != nil && e.Tree.Len() == 2 })
	if evt.Title != "two" {
		t.Fatalf("expected title two, got %q", evt.Title)
	}

	replaceFile(t, path, "[[item]]\nlabel = \"broken\"\n")
	evt = waitForEvent(t, w, func(e Event) bool { return e.Err != nil })
	if evt.Tree != nil {
		t.Fatalf("expected no tree for invalid definition")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.toml")
	replaceFile(t, path, "[[item]]\nlabel = \"one\"\nprint = \"1\"\n")
	w, err := NewWatcher(path, menu.Environment{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	select {
	case evt := <-w.Events():
		t.Fatalf("unexpected event %+v", evt)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNewWatcherFailsForMissingDirectory(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "menu.toml"), menu.Environment{}, 0); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(40 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	th.wait(ctx)
	th.wait(ctx)
	if elapsed := time.Since(start); elapsed < 35*time.Millisecond {
		t.Fatalf("expected second wait to be delayed, took %v", elapsed)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if th.wait(cancelled) {
		t.Fatalf("expected cancelled wait to report false")
	}
}
