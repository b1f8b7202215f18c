package app

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette hands out a distinct color per spray by walking the hue
// wheel in golden-angle steps, so consecutive strokes never look alike.
type Palette struct {
	hue        float64
	saturation float64
	value      float64
}

// hueStep is the golden angle in degrees. Stepping by it spreads any
// number of sprays roughly evenly around the hue wheel.
const hueStep = 137.508

// NewPalette creates a palette starting at the given hue in degrees.
func NewPalette(startHue float64) *Palette {
	return &Palette{
		hue:        startHue,
		saturation: 0.65,
		value:      1.0,
	}
}

// Next returns the next spray color and advances the hue.
func (p *Palette) Next() color.NRGBA {
	c := colorful.Hsv(p.hue, p.saturation, p.value)
	p.hue += hueStep
	for p.hue >= 360 {
		p.hue -= 360
	}

	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Peek returns the color the next call to Next will produce.
func (p *Palette) Peek() color.NRGBA {
	c := colorful.Hsv(p.hue, p.saturation, p.value)
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
