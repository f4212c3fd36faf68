package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	if got := NewRect(2, 3, 22, 12).Inset(1); got != NewRect(3, 4, 20, 10) {
		t.Errorf("Inset(1) = %+v, expected {3 4 20 10}", got)
	}
	if got := NewRect(0, 0, 1, 1).Inset(1); got.W != 0 || got.H != 0 {
		t.Errorf("Inset on a 1x1 rect = %+v, expected zero size", got)
	}
}

func TestPointAdd(t *testing.T) {
	p := Point{X: 3, Y: 18}.Add(Point{X: -1, Y: 2})
	if p != (Point{X: 2, Y: 20}) {
		t.Errorf("Add() = %+v, expected {2 20}", p)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestPaletteColor(t *testing.T) {
	if PaletteColor(0) != ColorDefault {
		t.Errorf("PaletteColor(0) = %v, expected ColorDefault", PaletteColor(0))
	}
	if PaletteColor(1) == ColorDefault {
		t.Error("PaletteColor(1) should be a block color")
	}
	if PaletteColor(1) != PaletteColor(1+len(blockPalette)) {
		t.Error("PaletteColor should wrap past the end of the palette")
	}
}
