package geometry

import "testing"

type fixedElement struct {
	rect Rect
	ok   bool
}

func (f fixedElement) BoundingRect() (Rect, bool) { return f.rect, f.ok }

func TestTriangleArea(t *testing.T) {
	got := TriangleArea(Point{0, 0}, Point{4, 0}, Point{0, 3})
	if got != 6 {
		t.Fatalf("expected area 6, got %v", got)
	}
	// orientation must not matter
	if rev := TriangleArea(Point{0, 3}, Point{4, 0}, Point{0, 0}); rev != got {
		t.Fatalf("expected orientation independent area, got %v and %v", got, rev)
	}
}

func TestIsPointInTriangle(t *testing.T) {
	a, b, c := Point{0, 0}, Point{10, -5}, Point{10, 5}
	cases := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{5, 0}, true},
		{"vertex", Point{0, 0}, true},
		{"edge", Point{10, 0}, true},
		{"outside above", Point{5, -4}, false},
		{"outside beyond", Point{11, 0}, false},
		{"behind apex", Point{-1, 0}, false},
	}
	for _, tc := range cases {
		if got := IsPointInTriangle(tc.p, a, b, c); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestIsPointInTriangleToleratesRounding(t *testing.T) {
	// 0.1 and 0.2 style coordinates make exact float equality fail.
	a, b, c := Point{0.1, 0.2}, Point{30.7, 0.3}, Point{30.7, 12.9}
	p := Point{15.4, 3.3}
	if !IsPointInTriangle(p, a, b, c) {
		t.Fatalf("expected point inside triangle with fractional coordinates")
	}
}

func TestBoundsOf(t *testing.T) {
	if _, ok := BoundsOf(nil); ok {
		t.Fatalf("expected nil element to report no bounds")
	}
	want := RectFromCells(2, 3, 10, 4)
	got, ok := BoundsOf(fixedElement{rect: want, ok: true})
	if !ok || got != want {
		t.Fatalf("expected %#v, got %#v (ok=%v)", want, got, ok)
	}
	if _, ok := BoundsOf(fixedElement{}); ok {
		t.Fatalf("expected unlaid element to report no bounds")
	}
}

func TestRectContainsAndClamp(t *testing.T) {
	r := RectFromCells(2, 2, 4, 3)
	if !r.Contains(CellPoint(2, 2)) {
		t.Fatalf("expected top-left cell inside")
	}
	if r.Contains(CellPoint(6, 2)) {
		t.Fatalf("expected right edge to be exclusive")
	}
	screen := RectFromCells(0, 0, 20, 10)
	moved := RectFromCells(18, 8, 6, 4).Clamp(screen)
	if moved.Right != 20 || moved.Bottom != 10 || moved.Width() != 6 || moved.Height() != 4 {
		t.Fatalf("expected rect pushed inside screen, got %#v", moved)
	}
	shrunk := RectFromCells(-3, 0, 40, 2).Clamp(screen)
	if shrunk.Left != 0 || shrunk.Width() != 20 {
		t.Fatalf("expected rect shrunk to screen width, got %#v", shrunk)
	}
}
