package ui

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/cascade-menu/internal/cascade"
	"github.com/atomicstack/cascade-menu/internal/geometry"
	"github.com/atomicstack/cascade-menu/internal/menu"
)

const (
	maxLabelWidth = 32
	// one cell of padding on each side plus the submenu indicator and its gap
	itemChrome = 4
	// rounded border on both sides
	panelChrome = 2
)

// panel is where one open level is drawn, in terminal cells.
type panel struct {
	depth int
	level *cascade.Level
	x, y  int
	w, h  int
}

func (p panel) rect() geometry.Rect {
	return geometry.RectFromCells(p.x, p.y, p.w, p.h)
}

// itemAt returns the item index under the cell, or -1 for the border.
func (p panel) itemAt(x, y int) int {
	if x <= p.x || x >= p.x+p.w-1 {
		return -1
	}
	row := y - p.y - 1
	if row < 0 || row >= p.h-panelChrome {
		return -1
	}
	return row
}

func (p panel) contains(x, y int) bool {
	return x >= p.x && x < p.x+p.w && y >= p.y && y < p.y+p.h
}

type cellBox struct {
	x, y, w, h int
}

func (b cellBox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// labelWidth is the widest label in t, capped at maxLabelWidth.
func labelWidth(t *menu.Tree) int {
	width := 1
	for _, n := range t.Nodes() {
		if w := ansi.StringWidth(n.Label()); w > width {
			width = w
		}
	}
	if width > maxLabelWidth {
		width = maxLabelWidth
	}
	return width
}

func panelSize(t *menu.Tree) (int, int) {
	return labelWidth(t) + itemChrome + panelChrome, t.Len() + panelChrome
}

func (m *Model) anchorLabel() string {
	return " " + m.title + " ▾ "
}

func (m *Model) anchorBox() cellBox {
	w := ansi.StringWidth(m.anchorLabel())
	x := 1
	if m.direction == cascade.RightToLeft {
		x = m.width - w - 1
		if x < 0 {
			x = 0
		}
	}
	return cellBox{x: x, y: 0, w: w, h: 1}
}

// layout positions every open level. The root hangs below the anchor; each
// submenu sits beside the item that owns it, flipping to the other side when
// it would run off screen.
func (m *Model) layout() []panel {
	levels := m.cascade.Levels()
	if len(levels) == 0 {
		return nil
	}
	anchor := m.anchorBox()
	rtl := m.direction == cascade.RightToLeft
	screenW, screenH := m.width, m.canvasHeight()
	panels := make([]panel, 0, len(levels))
	for i, lvl := range levels {
		w, h := panelSize(lvl.Tree())
		var x, y int
		if i == 0 {
			y = anchor.y + anchor.h
			x = anchor.x
			if rtl {
				x = anchor.x + anchor.w - w
			}
		} else {
			parent := panels[i-1]
			// first item lines up with the owning item
			y = parent.y + levels[i-1].OpenIndex()
			if rtl {
				x = parent.x - w
				if x < 0 {
					x = parent.x + parent.w
				}
			} else {
				x = parent.x + parent.w
				if x+w > screenW {
					x = parent.x - w
				}
			}
		}
		x = clamp(x, 0, screenW-w)
		y = clamp(y, 0, screenH-h)
		panels = append(panels, panel{depth: i, level: lvl, x: x, y: y, w: w, h: h})
	}
	return panels
}

// PanelBounds implements cascade.Measurer.
func (m *Model) PanelBounds(depth int) (geometry.Rect, bool) {
	panels := m.layout()
	if depth < 0 || depth >= len(panels) {
		return geometry.Rect{}, false
	}
	return panels[depth].rect(), true
}

type hit struct {
	inPanel bool
	depth   int
	index   int
}

// hitTest finds the deepest panel under the cell, since submenus are drawn
// over their parents.
func (m *Model) hitTest(x, y int) hit {
	panels := m.layout()
	for i := len(panels) - 1; i >= 0; i-- {
		p := panels[i]
		if p.contains(x, y) {
			return hit{inPanel: true, depth: p.depth, index: p.itemAt(x, y)}
		}
	}
	return hit{depth: -1, index: -1}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type anchorElement struct {
	m *Model
}

// BoundingRect implements geometry.Element for the menu button.
func (a anchorElement) BoundingRect() (geometry.Rect, bool) {
	b := a.m.anchorBox()
	return geometry.RectFromCells(b.x, b.y, b.w, b.h), true
}
