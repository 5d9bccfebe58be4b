// Package geometry holds the small amount of plane geometry the cascade needs:
// triangle membership for submenu intent detection and bounding rectangles
// for laid-out panels.
package geometry

import "math"

// Epsilon is the relative tolerance used when comparing triangle areas.
const Epsilon = 1e-9

// Point is a position in screen coordinates. Terminal cells map to points at
// their centre (x+0.5, y+0.5).
type Point struct {
	X float64
	Y float64
}

// CellPoint returns the point at the centre of the given terminal cell.
func CellPoint(x, y int) Point {
	return Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// Rect is a bounding rectangle expressed by its four edges.
type Rect struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// RectFromCells builds the rectangle covering a block of terminal cells.
func RectFromCells(x, y, width, height int) Rect {
	return Rect{
		Top:    float64(y),
		Right:  float64(x + width),
		Bottom: float64(y + height),
		Left:   float64(x),
	}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive so adjacent rectangles never both claim a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Clamp moves r so it lies within inside, shrinking it when it is larger.
func (r Rect) Clamp(inside Rect) Rect {
	w, h := r.Width(), r.Height()
	if w > inside.Width() {
		w = inside.Width()
	}
	if h > inside.Height() {
		h = inside.Height()
	}
	left, top := r.Left, r.Top
	if left+w > inside.Right {
		left = inside.Right - w
	}
	if top+h > inside.Bottom {
		top = inside.Bottom - h
	}
	if left < inside.Left {
		left = inside.Left
	}
	if top < inside.Top {
		top = inside.Top
	}
	return Rect{Top: top, Right: left + w, Bottom: top + h, Left: left}
}

// Element is anything that can report where it was laid out.
type Element interface {
	// BoundingRect returns the element's current bounds. The boolean is false
	// when the element has not been laid out yet.
	BoundingRect() (Rect, bool)
}

// BoundsOf queries the element's bounding rectangle. The query is read-only
// but may force the host to recompute its layout, so callers should avoid
// issuing it on every frame. A nil element reports no bounds.
func BoundsOf(el Element) (Rect, bool) {
	if el == nil {
		return Rect{}, false
	}
	return el.BoundingRect()
}

// TriangleArea returns the unsigned area of the triangle abc.
func TriangleArea(a, b, c Point) float64 {
	return math.Abs((a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y)) / 2)
}

// IsPointInTriangle reports whether p lies inside or on the edge of the
// triangle abc. The three sub-triangle areas must add up to the whole area
// within a relative tolerance of Epsilon.
func IsPointInTriangle(p, a, b, c Point) bool {
	area := TriangleArea(a, b, c)
	sum := TriangleArea(p, b, c) + TriangleArea(a, p, c) + TriangleArea(a, b, p)
	return math.Abs(area-sum) <= Epsilon*math.Max(1, area)
}
