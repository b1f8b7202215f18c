package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tinne26/etxt"
	"golang.org/x/image/font/gofont/goregular"

	"spraydraw/spray"
)

// Status carries the per-frame numbers the HUD displays.
type Status struct {
	Config    spray.Config
	NextColor color.NRGBA
	Sprays    int
	Particles int
	FPS       float64
	Paused    bool
	ShowHelp  bool
	ShowDebug bool
	Capturing bool
	Delta     float64
}

var helpLines = []string{
	"draw      drag mouse or touch",
	"C         clear canvas",
	"U         undo last spray",
	"P         pause animation",
	"[ / ]     particle size",
	"- / =     density",
	", / .     flow speed",
	"; / '     spray width",
	"9 / 0     lifetime",
	"F1        debug stats",
	"H         close help",
}

const hudLineHeight = 18

// HUD renders the status line, help overlay, and debug stats.
type HUD struct {
	text *etxt.Renderer
}

// NewHUD creates a HUD with its font and glyph cache ready.
func NewHUD() (*HUD, error) {
	font, _, err := etxt.ParseFontBytes(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse hud font: %w", err)
	}

	text := etxt.NewStdRenderer()
	cache := etxt.NewDefaultCache(8 * 1024 * 1024)
	text.SetCacheHandler(cache.NewHandler())
	text.SetFont(font)
	text.SetSizePx(14)
	return &HUD{text: text}, nil
}

// Draw renders all HUD elements for the frame.
func (h *HUD) Draw(screen *ebiten.Image, st Status) {
	w := screen.Bounds().Dx()
	height := screen.Bounds().Dy()
	h.text.SetTarget(screen)

	// Swatch for the color the next stroke will spray, then the status
	// line along the bottom edge.
	vector.DrawFilledRect(screen, 8, float32(height-18), 12, 12, st.NextColor, false)

	cfg := st.Config
	status := fmt.Sprintf(
		"speed %.2f  size %.1f  life %.1fs  width %.1f  density %.1f   |   sprays %d  particles %d  fps %.0f   |   H help",
		cfg.Speed, cfg.Size, cfg.Lifetime, cfg.Width, cfg.Density,
		st.Sprays, st.Particles, st.FPS)
	h.text.SetAlign(etxt.Bottom, etxt.Left)
	h.text.SetColor(colorHUDDim)
	h.text.Draw(status, 26, height-6)

	if st.Paused {
		h.text.SetAlign(etxt.Top, etxt.XCenter)
		h.text.SetColor(colorPaused)
		h.text.Draw("PAUSED", w/2, 8)
	}

	if st.ShowHelp {
		h.text.SetAlign(etxt.Top, etxt.Left)
		h.text.SetColor(colorHUDText)
		y := 8
		for _, line := range helpLines {
			h.text.Draw(line, 8, y)
			y += hudLineHeight
		}
	}

	if st.ShowDebug {
		h.text.SetAlign(etxt.Top, etxt.Right)
		h.text.SetColor(colorHUDDim)
		h.text.Draw(fmt.Sprintf("delta %.4fs", st.Delta), w-8, 8)
		h.text.Draw(fmt.Sprintf("particles %d", st.Particles), w-8, 8+hudLineHeight)
		h.text.Draw(fmt.Sprintf("tps %.0f", ebiten.ActualTPS()), w-8, 8+2*hudLineHeight)
		if st.Capturing {
			h.text.SetColor(colorPaused)
			h.text.Draw("capturing profile", w-8, 8+3*hudLineHeight)
		}
	}
}
