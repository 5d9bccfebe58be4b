package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestLayoutPlacesSubmenuBesideOwner(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.Key(tea.KeyEnter)
	h.Key(tea.KeyDown)
	h.Key(tea.KeyRight)
	panels := h.Model().layout()
	if len(panels) != 2 {
		t.Fatalf("expected two panels, got %d", len(panels))
	}
	root, child := panels[0], panels[1]
	if root.x != 1 || root.y != 1 {
		t.Fatalf("expected root under the anchor, got %d,%d", root.x, root.y)
	}
	if child.x != root.x+root.w {
		t.Fatalf("expected submenu right of the root, got x=%d", child.x)
	}
	// My account is the second row, so the submenu's first row sits beside it
	if child.y+1 != root.y+1+1 {
		t.Fatalf("expected submenu aligned with its owner, got y=%d", child.y)
	}
}

func TestLayoutClampsToScreen(t *testing.T) {
	h := newTestHarness(t, nil, func(cfg *Config) { cfg.Width = 36 })
	h.Key(tea.KeyEnter)
	h.Key(tea.KeyRight)
	for _, p := range h.Model().layout() {
		if p.x < 0 || p.x+p.w > 36 {
			t.Fatalf("panel %d outside the screen: x=%d w=%d", p.depth, p.x, p.w)
		}
	}
}

func TestHitTest(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.Key(tea.KeyEnter)
	cases := []struct {
		x, y    int
		inPanel bool
		index   int
	}{
		{4, 2, true, 0},
		{4, 4, true, 2},
		{1, 2, true, -1},
		{4, 1, true, -1},
		{60, 10, false, -1},
	}
	for _, tc := range cases {
		got := h.Model().hitTest(tc.x, tc.y)
		if got.inPanel != tc.inPanel || got.index != tc.index {
			t.Fatalf("hit %d,%d: expected panel=%v index=%d, got %+v", tc.x, tc.y, tc.inPanel, tc.index, got)
		}
	}
}

func TestBorderMotionIsIgnored(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.Key(tea.KeyEnter)
	h.Key(tea.KeyDown)
	h.Move(1, 2)
	if got := h.Model().Cascade().Focus(); got.Index != 1 {
		t.Fatalf("expected border hover to leave focus alone, got %+v", got)
	}
}
