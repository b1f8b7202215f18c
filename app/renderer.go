package app

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"spraydraw/spray"
)

const (
	// dotTextureSize is the side length of the procedural dot texture.
	dotTextureSize = 32

	// particleAlpha is the opacity each particle quad is tinted with
	// before additive blending stacks overlapping dots into glow.
	particleAlpha = 0.85

	// maxBatchVertices caps one DrawTriangles call below the uint16
	// index limit. A full batch is 16383 quads.
	maxBatchVertices = 65532

	// cullMargin is the offscreen margin in pixels beyond which
	// particles are skipped.
	cullMargin = 32.0
)

// dotPixels builds the soft disc texture every particle quad samples,
// premultiplied: the color channels carry the same radial falloff as
// alpha, so additive blending reads the gradient from RGB and
// overlapping quads stack into airbrushed glow rather than hard
// squares.
func dotPixels() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, dotTextureSize, dotTextureSize))
	c := float64(dotTextureSize) / 2
	for y := 0; y < dotTextureSize; y++ {
		for x := 0; x < dotTextureSize; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			t := 1 - d/c
			if t < 0 {
				t = 0
			}
			v := uint8(t * t * 255)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: v})
		}
	}
	return img
}

func newDotImage() *ebiten.Image {
	return ebiten.NewImageFromImage(dotPixels())
}

// Renderer draws registered sprays as batched textured quads plus the
// in-progress stroke preview.
type Renderer struct {
	dotImage *ebiten.Image
	dotSize  float64

	// Scratch buffers reused across frames.
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewRenderer creates a renderer with its dot texture and scratch
// buffers allocated.
func NewRenderer() *Renderer {
	return &Renderer{
		dotImage: newDotImage(),
		dotSize:  float64(dotTextureSize),
		vertices: make([]ebiten.Vertex, 0, maxBatchVertices),
		indices:  make([]uint16, 0, maxBatchVertices/4*6),
	}
}

// DrawSprays renders every spray's particle buffer in as few
// DrawTriangles calls as the index limit allows.
func (r *Renderer) DrawSprays(screen *ebiten.Image, view *View, visuals []*sprayVisual) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]

	for _, vis := range visuals {
		r.appendSpray(screen, view, vis)
	}
	r.flush(screen)
}

// appendSpray batches one spray's particles, flushing whenever the
// current batch is full.
func (r *Renderer) appendSpray(screen *ebiten.Image, view *View, vis *sprayVisual) {
	// Straight-alpha tint shared by every particle of the spray; the
	// default color scale mode folds ColorA into RGB exactly once.
	cr := float32(vis.color.R) / 255
	cg := float32(vis.color.G) / 255
	cb := float32(vis.color.B) / 255

	half := r.dotSize / 2
	for i := 0; i < vis.buffer.Len(); i++ {
		pos := vis.buffer.Position(i)
		sx, sy := view.WorldToScreen(pos.X, pos.Y)
		if sx < -cullMargin || sx > view.Width+cullMargin ||
			sy < -cullMargin || sy > view.Height+cullMargin {
			continue
		}

		// The buffered scale is a world-unit radius; the quad spans
		// the matching pixel diameter.
		geoScale := vis.buffer.Scale(i) * view.Scale * 2 / r.dotSize
		if geoScale <= 0 {
			continue
		}

		if len(r.vertices)+4 > maxBatchVertices {
			r.flush(screen)
		}

		var geo ebiten.GeoM
		geo.Translate(-half, -half)
		geo.Scale(geoScale, geoScale)
		geo.Translate(sx, sy)

		base := uint16(len(r.vertices))
		corners := [4][2]float64{
			{0, 0},
			{0, r.dotSize},
			{r.dotSize, 0},
			{r.dotSize, r.dotSize},
		}
		for _, corner := range corners {
			dx, dy := geo.Apply(corner[0], corner[1])
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX: float32(dx), DstY: float32(dy),
				SrcX: float32(corner[0]), SrcY: float32(corner[1]),
				ColorR: cr, ColorG: cg, ColorB: cb,
				ColorA: particleAlpha,
			})
		}
		r.indices = append(r.indices, base, base+1, base+2, base+1, base+3, base+2)
	}
}

// flush issues the pending batch and resets the scratch buffers.
func (r *Renderer) flush(screen *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{CompositeMode: ebiten.CompositeModeLighter}
	screen.DrawTriangles(r.vertices, r.indices, r.dotImage, op)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

// DrawStroke draws the in-progress stroke as a polyline so the user
// sees the path the spray will follow.
func (r *Renderer) DrawStroke(screen *ebiten.Image, view *View, points []spray.Vec3, clr color.Color) {
	for i := 0; i+1 < len(points); i++ {
		x0, y0 := view.WorldToScreen(points[i].X, points[i].Y)
		x1, y1 := view.WorldToScreen(points[i+1].X, points[i+1].Y)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1),
			previewWidth, clr, true)
	}
}
