// Package physics provides axis-aligned rectangle geometry and bounds tests.
package physics

// Rect is an axis-aligned rectangle in logical screen units.
// X, Y is the top-left corner; Y grows downward.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle, flooring negative sizes at zero.
func NewRect(x, y, w, h int) Rect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// CenterX returns the horizontal center.
func (r Rect) CenterX() int {
	return r.X + r.W/2
}

// IsZero reports whether r is the degenerate zero rectangle.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Intersects reports whether r and other overlap. Edges are inclusive:
// rectangles that only share an edge or a corner count as intersecting.
func (r Rect) Intersects(other Rect) bool {
	if r.Right() < other.X || other.Right() < r.X {
		return false
	}
	if r.Bottom() < other.Y || other.Bottom() < r.Y {
		return false
	}
	return true
}

// InBounds reports whether r is at least partially inside screen.
// Same inclusive-edge rule as Intersects: a rectangle whose edge lies
// exactly on the screen border is still in bounds.
func (r Rect) InBounds(screen Rect) bool {
	return r.Intersects(screen)
}

// BoundsOf returns the minimal rectangle covering all of rects.
// An empty input yields the zero rectangle.
func BoundsOf(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	left, top := rects[0].X, rects[0].Y
	right, bottom := rects[0].Right(), rects[0].Bottom()
	for _, r := range rects[1:] {
		left = min(left, r.X)
		top = min(top, r.Y)
		right = max(right, r.Right())
		bottom = max(bottom, r.Bottom())
	}
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
