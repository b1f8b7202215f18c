package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"spraydraw/spray"
)

// PointerState is one frame of drawing-pointer input in screen pixels.
type PointerState struct {
	X, Y        float64
	JustPressed bool
	Held        bool
}

// PointerSource reports the primary drawing pointer once per frame.
// Implementations merge the devices they cover into a single pointer.
type PointerSource interface {
	Read() PointerState
}

// DevicePointer merges the left mouse button and the first active touch
// into one drawing pointer. A held touch takes priority over the mouse;
// additional simultaneous touches are ignored.
type DevicePointer struct {
	touchID  ebiten.TouchID
	touching bool
	touchIDs []ebiten.TouchID
}

// NewDevicePointer creates a pointer source reading the machine's mouse
// and touch devices.
func NewDevicePointer() *DevicePointer {
	return &DevicePointer{
		touchIDs: make([]ebiten.TouchID, 0, 8),
	}
}

// Read reports the pointer for the current frame.
func (d *DevicePointer) Read() PointerState {
	if d.touching {
		if inpututil.IsTouchJustReleased(d.touchID) {
			d.touching = false
			// A released touch no longer reports a position; the
			// stroke ends at its last known point.
			x, y := inpututil.TouchPositionInPreviousTick(d.touchID)
			return PointerState{X: float64(x), Y: float64(y)}
		}
		x, y := ebiten.TouchPosition(d.touchID)
		return PointerState{X: float64(x), Y: float64(y), Held: true}
	}

	d.touchIDs = inpututil.AppendJustPressedTouchIDs(d.touchIDs[:0])
	if len(d.touchIDs) > 0 {
		d.touching = true
		d.touchID = d.touchIDs[0]
		x, y := ebiten.TouchPosition(d.touchID)
		return PointerState{X: float64(x), Y: float64(y), JustPressed: true, Held: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		X:           float64(x),
		Y:           float64(y),
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Held:        ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}

// StrokeCapture records freehand strokes drawn with the pointer,
// filtering out samples that sit closer together than the minimum
// point spacing.
type StrokeCapture struct {
	pointer PointerSource
	drawing bool
	points  []spray.Vec3
}

// NewStrokeCapture creates an idle stroke capture fed by the mouse and
// touch devices.
func NewStrokeCapture() *StrokeCapture {
	return &StrokeCapture{
		pointer: NewDevicePointer(),
		points:  make([]spray.Vec3, 0, 256),
	}
}

// Update processes one frame of pointer state. It returns the completed
// stroke on the frame the pointer is released, nil otherwise.
func (c *StrokeCapture) Update(view *View) []spray.Vec3 {
	st := c.pointer.Read()
	pos := view.ScreenToWorldVec(st.X, st.Y)

	switch {
	case st.JustPressed:
		c.begin(pos)
	case c.drawing && st.Held:
		c.extend(pos)
	case c.drawing:
		return c.finish(pos)
	}
	return nil
}

// Drawing reports whether a stroke is currently being drawn.
func (c *StrokeCapture) Drawing() bool {
	return c.drawing
}

// Points returns the in-progress stroke for preview rendering. The
// slice is reused across strokes and must not be retained.
func (c *StrokeCapture) Points() []spray.Vec3 {
	return c.points
}

func (c *StrokeCapture) begin(pos spray.Vec3) {
	c.drawing = true
	c.points = c.points[:0]
	c.points = append(c.points, pos)
}

func (c *StrokeCapture) extend(pos spray.Vec3) {
	last := c.points[len(c.points)-1]
	if pos.Distance(last) < minPointSpacing {
		return
	}
	c.points = append(c.points, pos)
}

// finish closes out the stroke with the release position and returns a
// copy, or nil when too few distinct points were recorded to form a
// drawable stroke.
func (c *StrokeCapture) finish(pos spray.Vec3) []spray.Vec3 {
	c.drawing = false
	c.extend(pos)
	if len(c.points) < 2 {
		return nil
	}
	completed := make([]spray.Vec3, len(c.points))
	copy(completed, c.points)
	return completed
}
