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

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{X: 3, Y: -2}
	b := Vec2{X: 1, Y: 4}

	if got := a.Add(b); got != (Vec2{X: 4, Y: 2}) {
		t.Errorf("Add() = %v, expected {4 2}", got)
	}
	if got := a.Sub(b); got != (Vec2{X: 2, Y: -6}) {
		t.Errorf("Sub() = %v, expected {2 -6}", got)
	}
	if got := a.Scale(2); got != (Vec2{X: 6, Y: -4}) {
		t.Errorf("Scale() = %v, expected {6 -4}", got)
	}
	if got := a.LenSq(); got != 13 {
		t.Errorf("LenSq() = %v, expected 13", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{42, 50, 350, 50},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}

func TestNearestColor(t *testing.T) {
	tests := []struct {
		name     string
		r, g, b  uint8
		expected Color
	}{
		{"pure red", 210, 40, 40, ColorRed},
		{"orange", 255, 140, 0, ColorOrange},
		{"grey", 130, 130, 130, ColorGray},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NearestColor(tc.r, tc.g, tc.b); got != tc.expected {
				t.Errorf("NearestColor(%d, %d, %d) = %v, expected %v", tc.r, tc.g, tc.b, got, tc.expected)
			}
		})
	}
}
