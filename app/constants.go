package app

import "image/color"

// Stroke capture constants
const (
	// minPointSpacing is the minimum world-unit distance between two
	// recorded stroke points. Cursor samples closer than this collapse
	// into one point.
	minPointSpacing = 0.02

	// previewWidth is the stroke preview line width in pixels.
	previewWidth = 2.0
)

// Parameter adjustment constants
const (
	sizeStep     = 0.1
	sizeMin      = 0.2
	sizeMax      = 4.0
	densityStep  = 0.1
	densityMin   = 0.1
	densityMax   = 4.0
	speedStep    = 0.02
	speedMin     = 0.01
	speedMax     = 1.0
	widthStep    = 0.1
	widthMin     = 0.1
	widthMax     = 4.0
	lifetimeStep = 0.5
	lifetimeMin  = 0.5
	lifetimeMax  = 20.0
)

// Performance monitoring constants
const (
	fpsWindow        = 0.5  // seconds per FPS measurement window
	fpsDropThreshold = 50.0 // FPS below this triggers a profile capture
)

// Color constants
var (
	colorBackground = color.NRGBA{R: 8, G: 8, B: 18, A: 255}
	colorPreview    = color.NRGBA{R: 200, G: 200, B: 220, A: 180}
	colorHUDText    = color.NRGBA{R: 220, G: 220, B: 230, A: 255}
	colorHUDDim     = color.NRGBA{R: 140, G: 140, B: 160, A: 255}
	colorPaused     = color.NRGBA{R: 255, G: 210, B: 120, A: 255}
)
