package app

import "spraydraw/spray"

// View maps between world coordinates and screen pixels. The world
// origin sits at the screen center with Y growing downward, matching
// screen orientation so strokes appear where they are drawn.
type View struct {
	Width  float64 // Viewport width in pixels
	Height float64 // Viewport height in pixels
	Scale  float64 // Pixels per world unit
}

// NewView creates a view for the given viewport size.
func NewView(width, height, scale float64) *View {
	return &View{
		Width:  width,
		Height: height,
		Scale:  scale,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *View) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := wx*v.Scale + v.Width/2
	sy := wy*v.Scale + v.Height/2
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v *View) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx - v.Width/2) / v.Scale
	wy := (sy - v.Height/2) / v.Scale
	return wx, wy
}

// ScreenToWorldVec converts a screen position to a world-space point on
// the drawing plane.
func (v *View) ScreenToWorldVec(sx, sy float64) spray.Vec3 {
	wx, wy := v.ScreenToWorld(sx, sy)
	return spray.V(wx, wy, 0)
}
