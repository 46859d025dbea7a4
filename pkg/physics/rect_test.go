// pkg/physics/rect_test.go
package physics

import "testing"

func TestRect_Edges(t *testing.T) {
	r := Rect{Center: Vector2D{X: 100, Y: 50}, Width: 40, Height: 20}

	if got := r.Left(); got != 80 {
		t.Errorf("Left() = %v, expected 80", got)
	}
	if got := r.Right(); got != 120 {
		t.Errorf("Right() = %v, expected 120", got)
	}
	if got := r.Top(); got != 40 {
		t.Errorf("Top() = %v, expected 40", got)
	}
	if got := r.Bottom(); got != 60 {
		t.Errorf("Bottom() = %v, expected 60", got)
	}
}

func TestRectFromEdges(t *testing.T) {
	r := RectFromEdges(0, 0, 800, 600)

	if r.Center != (Vector2D{X: 400, Y: 300}) {
		t.Errorf("Center = %v, expected (400, 300)", r.Center)
	}
	if r.Width != 800 || r.Height != 600 {
		t.Errorf("size = %vx%v, expected 800x600", r.Width, r.Height)
	}
}

func TestRect_Contains(t *testing.T) {
	r := RectFromEdges(0, 0, 800, 600)

	tests := []struct {
		name     string
		point    Vector2D
		expected bool
	}{
		{name: "center", point: Vector2D{X: 400, Y: 300}, expected: true},
		{name: "top_left_corner", point: Vector2D{X: 0, Y: 0}, expected: true},
		{name: "bottom_right_corner", point: Vector2D{X: 800, Y: 600}, expected: true},
		{name: "left_of_rect", point: Vector2D{X: -1, Y: 300}, expected: false},
		{name: "below_rect", point: Vector2D{X: 400, Y: 601}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.point); got != tt.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestRect_Intersects(t *testing.T) {
	viewport := RectFromEdges(0, 0, 800, 600)

	tests := []struct {
		name     string
		other    Rect
		expected bool
	}{
		{
			name:     "fully_inside",
			other:    Rect{Center: Vector2D{X: 400, Y: 300}, Width: 10, Height: 10},
			expected: true,
		},
		{
			name:     "straddles_top_edge",
			other:    Rect{Center: Vector2D{X: 400, Y: 0}, Width: 10, Height: 10},
			expected: true,
		},
		{
			name:     "touching_right_edge",
			other:    Rect{Center: Vector2D{X: 805, Y: 300}, Width: 10, Height: 10},
			expected: true,
		},
		{
			name:     "fully_above",
			other:    Rect{Center: Vector2D{X: 400, Y: -100}, Width: 10, Height: 10},
			expected: false,
		},
		{
			name:     "fully_below",
			other:    Rect{Center: Vector2D{X: 400, Y: 700}, Width: 10, Height: 10},
			expected: false,
		},
		{
			name:     "fully_left",
			other:    Rect{Center: Vector2D{X: -100, Y: 300}, Width: 10, Height: 10},
			expected: false,
		},
		{
			name:     "fully_right",
			other:    Rect{Center: Vector2D{X: 900, Y: 300}, Width: 10, Height: 10},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.other.Intersects(viewport); got != tt.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tt.expected)
			}
			// Intersection is symmetric
			if got := viewport.Intersects(tt.other); got != tt.expected {
				t.Errorf("reverse Intersects() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRect_Translate(t *testing.T) {
	r := Rect{Center: Vector2D{X: 10, Y: 20}, Width: 4, Height: 6}
	moved := r.Translate(Vector2D{X: -10, Y: 5})

	if moved.Center != (Vector2D{X: 0, Y: 25}) {
		t.Errorf("Translate() center = %v, expected (0, 25)", moved.Center)
	}
	if moved.Width != r.Width || moved.Height != r.Height {
		t.Error("Translate() changed the rectangle's size")
	}
	if r.Center != (Vector2D{X: 10, Y: 20}) {
		t.Error("Translate() mutated the receiver")
	}
}
