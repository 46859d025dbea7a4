// pkg/physics/rect.go
package physics

// Rect represents an axis-aligned rectangle defined by its center point
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// RectFromEdges builds a Rect from its left/top/right/bottom edges
func RectFromEdges(left, top, right, bottom float64) Rect {
	return Rect{
		Center: Vector2D{X: (left + right) / 2, Y: (top + bottom) / 2},
		Width:  right - left,
		Height: bottom - top,
	}
}

// Left returns the x coordinate of the rectangle's left edge
func (r Rect) Left() float64 {
	return r.Center.X - r.Width/2
}

// Right returns the x coordinate of the rectangle's right edge
func (r Rect) Right() float64 {
	return r.Center.X + r.Width/2
}

// Top returns the y coordinate of the rectangle's top edge
func (r Rect) Top() float64 {
	return r.Center.Y - r.Height/2
}

// Bottom returns the y coordinate of the rectangle's bottom edge
func (r Rect) Bottom() float64 {
	return r.Center.Y + r.Height/2
}

// Contains reports whether the point lies inside the rectangle
func (r Rect) Contains(p Vector2D) bool {
	return p.X >= r.Left() && p.X <= r.Right() &&
		p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Intersects reports whether the two rectangles overlap. A rectangle that is
// fully past any edge of the other does not intersect it.
func (r Rect) Intersects(other Rect) bool {
	return r.Left() <= other.Right() && r.Right() >= other.Left() &&
		r.Top() <= other.Bottom() && r.Bottom() >= other.Top()
}

// Translate returns the rectangle shifted by the given delta
func (r Rect) Translate(delta Vector2D) Rect {
	return Rect{
		Center: r.Center.Add(delta),
		Width:  r.Width,
		Height: r.Height,
	}
}
