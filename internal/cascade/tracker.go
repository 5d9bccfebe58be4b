package cascade

import "github.com/atomicstack/cascade-menu/internal/geometry"

// Tracker decides whether pointer movement over a menu is heading for the
// open submenu. While it is, hovering siblings on the way must not switch
// the submenu.
//
// The tracker remembers where the pointer entered the item owning the open
// submenu and the two corners of the submenu edge facing that point. Moves
// that stay inside the triangle formed by those three points count as
// travel towards the submenu.
type Tracker struct {
	bounds func() (geometry.Rect, bool)

	enter    geometry.Point
	hasEnter bool

	top        geometry.Point
	bottom     geometry.Point
	hasAnchors bool

	prev geometry.Point
}

// NewTracker creates a tracker reading the open submenu's bounds from fn.
func NewTracker(fn func() (geometry.Rect, bool)) *Tracker {
	return &Tracker{bounds: fn}
}

// OnPointerEnterItem records the entry point and recomputes the submenu
// anchor points.
func (t *Tracker) OnPointerEnterItem(p geometry.Point) {
	t.enter = p
	t.hasEnter = true
	t.Refresh()
}

// Refresh recomputes the anchor points from the current submenu bounds. A
// submenu that is not laid out yet leaves the tracker without anchors.
func (t *Tracker) Refresh() {
	t.hasAnchors = false
	if !t.hasEnter || t.bounds == nil {
		return
	}
	r, ok := t.bounds()
	if !ok || r.Empty() {
		return
	}
	// a submenu whose left edge lies right of the entry point opened to the
	// right, so its left edge faces the pointer
	x := r.Right
	if r.Left > t.enter.X {
		x = r.Left
	}
	t.top = geometry.Point{X: x, Y: r.Top}
	t.bottom = geometry.Point{X: x, Y: r.Bottom}
	t.hasAnchors = true
}

// IsTravelingToSubmenu classifies a pointer move. It must see every move so
// the previous position stays current.
func (t *Tracker) IsTravelingToSubmenu(ev PointerEvent) bool {
	moving := ev.Point != t.prev
	t.prev = ev.Point
	if !t.hasAnchors {
		t.Refresh()
	}
	if !t.hasAnchors {
		return false
	}
	// some terminals repeat motion reports without any movement
	if ev.Trusted && !moving {
		return true
	}
	return geometry.IsPointInTriangle(ev.Point, t.enter, t.top, t.bottom)
}

// Anchors returns the current triangle, if any.
func (t *Tracker) Anchors() (enter, top, bottom geometry.Point, ok bool) {
	return t.enter, t.top, t.bottom, t.hasAnchors
}

// ClearAnchors forgets the submenu corners but keeps the entry point.
func (t *Tracker) ClearAnchors() {
	t.hasAnchors = false
}

// Reset forgets everything.
func (t *Tracker) Reset() {
	*t = Tracker{bounds: t.bounds}
}
