package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/cascade-menu/internal/cascade"
)

func TestCascadeOptionsFromConfig(t *testing.T) {
	cfg := Config{
		Delay:         250 * time.Millisecond,
		Variant:       "menu",
		RTL:           true,
		AutoFocus:     true,
		AutoFocusItem: false,
	}
	opts, err := cfg.cascadeOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.TransitionDelay != 250*time.Millisecond {
		t.Fatalf("expected 250ms delay, got %s", opts.TransitionDelay)
	}
	if opts.Variant != cascade.VariantMenu {
		t.Fatalf("expected menu variant, got %s", opts.Variant)
	}
	if opts.Direction != cascade.RightToLeft {
		t.Fatalf("expected rtl, got %s", opts.Direction)
	}
	if !opts.AutoFocus || !opts.DisableAutoFocusItem {
		t.Fatalf("unexpected focus options %+v", opts)
	}
	if opts.TypeAheadTimeout != cascade.DefaultTypeAheadTimeout {
		t.Fatalf("expected default type-ahead timeout, got %s", opts.TypeAheadTimeout)
	}

	if _, err := (Config{Variant: "grid"}).cascadeOptions(); err == nil {
		t.Fatalf("expected unknown variant to fail")
	}
}

func TestLoadMenuDemo(t *testing.T) {
	tree, title, err := loadMenu(Config{Title: "Demo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Len() != 3 {
		t.Fatalf("expected three demo items, got %d", tree.Len())
	}
	if title != "Demo" {
		t.Fatalf("expected title Demo, got %q", title)
	}
}

func TestLoadMenuFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.toml")
	body := "title = \"tools\"\n\n[[item]]\nlabel = \"Greet\"\nprint = \"hi\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tree, title, err := loadMenu(Config{Menu: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Len() != 1 || title != "tools" {
		t.Fatalf("expected one item titled tools, got %d %q", tree.Len(), title)
	}

	_, title, err = loadMenu(Config{Menu: path, Title: "Override"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "Override" {
		t.Fatalf("expected explicit title to win, got %q", title)
	}
}

func TestLoadMenuErrors(t *testing.T) {
	dir := t.TempDir()
	_, _, err := loadMenu(Config{Menu: filepath.Join(dir, "missing.toml")})
	if !errors.Is(err, ErrMenu) {
		t.Fatalf("expected ErrMenu for missing file, got %v", err)
	}

	empty := filepath.Join(dir, "empty.toml")
	if err := os.WriteFile(empty, []byte("title = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err = loadMenu(Config{Menu: empty})
	if !errors.Is(err, ErrMenu) {
		t.Fatalf("expected ErrMenu for empty definition, got %v", err)
	}
}
