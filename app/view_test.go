package app

import (
	"math"
	"testing"
)

func TestViewCenterMapsToOrigin(t *testing.T) {
	v := NewView(1024, 768, 100)

	wx, wy := v.ScreenToWorld(512, 384)
	if wx != 0 || wy != 0 {
		t.Errorf("Expected screen center to map to world origin, got (%v, %v)", wx, wy)
	}

	sx, sy := v.WorldToScreen(0, 0)
	if sx != 512 || sy != 384 {
		t.Errorf("Expected world origin at screen center, got (%v, %v)", sx, sy)
	}
}

func TestViewRoundTrip(t *testing.T) {
	v := NewView(1024, 768, 100)

	tests := []struct {
		name   string
		sx, sy float64
	}{
		{"top left", 0, 0},
		{"bottom right", 1024, 768},
		{"off center", 700, 200},
		{"fractional", 123.5, 456.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wx, wy := v.ScreenToWorld(tt.sx, tt.sy)
			sx, sy := v.WorldToScreen(wx, wy)
			if math.Abs(sx-tt.sx) > 1e-9 || math.Abs(sy-tt.sy) > 1e-9 {
				t.Errorf("Round trip moved (%v, %v) to (%v, %v)", tt.sx, tt.sy, sx, sy)
			}
		})
	}
}

func TestViewScale(t *testing.T) {
	v := NewView(800, 600, 50)

	// One world unit spans Scale pixels.
	x0, _ := v.WorldToScreen(0, 0)
	x1, _ := v.WorldToScreen(1, 0)
	if got := x1 - x0; got != 50 {
		t.Errorf("Expected 50 pixels per world unit, got %v", got)
	}

	p := v.ScreenToWorldVec(400, 300)
	if p.X != 0 || p.Y != 0 || p.Z != 0 {
		t.Errorf("Expected world origin on the drawing plane, got %v", p)
	}
}
