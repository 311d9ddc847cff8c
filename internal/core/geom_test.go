package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "shared vertical edge does not collide",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "shared horizontal edge does not collide",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "shared corner does not collide",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "sub-pixel overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.5, 9.5, 10, 10),
			expected: true,
		},
		{
			name:     "zero-size rect never intersects",
			a:        NewRect(5, 5, 0, 0),
			b:        NewRect(0, 0, 10, 10),
			expected: false,
		},
		{
			name:     "negative-size rect never intersects",
			a:        NewRect(5, 5, -3, -3),
			b:        NewRect(0, 0, 10, 10),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 4, 10, 20)
	if r.Right() != 13 {
		t.Errorf("Right() = %v, expected 13", r.Right())
	}
	if r.Bottom() != 24 {
		t.Errorf("Bottom() = %v, expected 24", r.Bottom())
	}
}

func TestViewportProjection(t *testing.T) {
	vp := NewViewport(800, 600, 80, 24)

	if got := vp.CellX(400); got != 40 {
		t.Errorf("CellX(400) = %d, expected 40", got)
	}
	if got := vp.CellY(300); got != 12 {
		t.Errorf("CellY(300) = %d, expected 12", got)
	}
	if got := vp.CellsW(1); got != 1 {
		t.Errorf("CellsW(1) = %d, expected minimum of 1", got)
	}
	if got := vp.CellsH(600); got != 24 {
		t.Errorf("CellsH(600) = %d, expected 24", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 1, 10); got != 5 {
		t.Errorf("Clamp(5,1,10) = %d", got)
	}
	if got := Clamp(-3, 1, 10); got != 1 {
		t.Errorf("Clamp(-3,1,10) = %d", got)
	}
	if got := Clamp(99, 1, 10); got != 10 {
		t.Errorf("Clamp(99,1,10) = %d", got)
	}
}
