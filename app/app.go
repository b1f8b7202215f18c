package app

import (
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"spraydraw/spray"
)

// Config holds the application configuration.
type Config struct {
	// ScreenWidth is the window width in pixels
	ScreenWidth int

	// ScreenHeight is the window height in pixels
	ScreenHeight int

	// WorldScale is the number of pixels per world unit
	WorldScale float64

	// Spray is the initial engine configuration
	Spray spray.Config
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1024,
		ScreenHeight: 768,
		WorldScale:   100.0,
		Spray:        spray.DefaultConfig(),
	}
}

// sprayVisual pairs a registered spray with the transform buffer the
// animator writes and the color it is drawn with.
type sprayVisual struct {
	spray  *spray.Spray
	buffer *ParticleBuffer
	color  color.NRGBA
}

// App is the interactive spray drawing application.
type App struct {
	config   Config
	sprayCfg spray.Config

	view     *View
	sampler  *spray.Sampler
	animator *spray.Animator
	capture  *StrokeCapture
	renderer *Renderer
	hud      *HUD
	audio    *SprayAudio
	palette  *Palette
	profiler *Profiler

	// visuals holds one entry per registered spray, oldest first.
	visuals []*sprayVisual

	paused    bool
	showHelp  bool
	showDebug bool

	// FPS tracking
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64
	fpsDropCooldown  time.Duration
	lastFPSDropTime  time.Time

	lastDelta      float64
	startTime      time.Time
	lastUpdateTime time.Time
}

// New creates the application with all subsystems wired up. A missing
// audio device is not fatal; the app runs silent.
func New(config Config) (*App, error) {
	hud, err := NewHUD()
	if err != nil {
		return nil, err
	}

	audio := NewSprayAudio()
	if err := audio.Initialize(); err != nil {
		log.Printf("audio disabled: %v", err)
	}

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	return &App{
		config:          config,
		sprayCfg:        config.Spray,
		view:            NewView(float64(config.ScreenWidth), float64(config.ScreenHeight), config.WorldScale),
		sampler:         spray.NewSampler(rng),
		animator:        spray.NewAnimator(),
		capture:         NewStrokeCapture(),
		renderer:        NewRenderer(),
		hud:             hud,
		audio:           audio,
		palette:         NewPalette(rand.Float64() * 360),
		profiler:        NewProfiler(),
		fps:             60.0,
		fpsDropCooldown: 10 * time.Second,
		startTime:       time.Now(),
		lastUpdateTime:  time.Now(),
	}, nil
}

// Update advances the application by one frame.
func (a *App) Update() error {
	now := time.Now()
	delta := now.Sub(a.lastUpdateTime).Seconds()
	a.lastUpdateTime = now
	a.lastDelta = delta

	a.trackFPS(delta)
	a.handleKeys()

	if completed := a.capture.Update(a.view); completed != nil {
		a.addSpray(completed)
	}
	if a.capture.Drawing() {
		a.audio.StartHiss()
	} else {
		a.audio.StopHiss()
	}

	// The animator rejects stalled-clock deltas itself, so the raw
	// value is passed through unclamped.
	if !a.paused {
		a.animator.Update(delta)
	}
	return nil
}

// Draw renders the frame.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	a.renderer.DrawSprays(screen, a.view, a.visuals)

	if a.capture.Drawing() {
		a.renderer.DrawStroke(screen, a.view, a.capture.Points(), colorPreview)
	}

	a.hud.Draw(screen, Status{
		Config:    a.sprayCfg,
		NextColor: a.palette.Peek(),
		Sprays:    len(a.visuals),
		Particles: a.particleCount(),
		FPS:       a.fps,
		Paused:    a.paused,
		ShowHelp:  a.showHelp,
		ShowDebug: a.showDebug,
		Capturing: a.profiler.IsCapturing(),
		Delta:     a.lastDelta,
	})
}

// Layout returns the fixed logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.config.ScreenWidth, a.config.ScreenHeight
}

// Cleanup releases the audio device. Call it after the run loop
// returns.
func (a *App) Cleanup() {
	a.audio.Cleanup()
}

// handleKeys processes all keyboard input for the frame.
func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.clearCanvas()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		a.undoSpray()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.showHelp = !a.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.showDebug = !a.showDebug
	}

	adjust := func(decKey, incKey ebiten.Key, value *float64, step, min, max float64) {
		if inpututil.IsKeyJustPressed(decKey) {
			*value -= step
		}
		if inpututil.IsKeyJustPressed(incKey) {
			*value += step
		}
		if *value < min {
			*value = min
		}
		if *value > max {
			*value = max
		}
	}
	adjust(ebiten.KeyBracketLeft, ebiten.KeyBracketRight, &a.sprayCfg.Size, sizeStep, sizeMin, sizeMax)
	adjust(ebiten.KeyMinus, ebiten.KeyEqual, &a.sprayCfg.Density, densityStep, densityMin, densityMax)
	adjust(ebiten.KeyComma, ebiten.KeyPeriod, &a.sprayCfg.Speed, speedStep, speedMin, speedMax)
	adjust(ebiten.KeySemicolon, ebiten.KeyApostrophe, &a.sprayCfg.Width, widthStep, widthMin, widthMax)
	adjust(ebiten.KeyDigit9, ebiten.KeyDigit0, &a.sprayCfg.Lifetime, lifetimeStep, lifetimeMin, lifetimeMax)
}

// addSpray converts a completed stroke into a spray and registers it
// for animation. Degenerate strokes are dropped.
func (a *App) addSpray(points []spray.Vec3) {
	s := a.sampler.Sample(points, a.sprayCfg)
	if s == nil {
		return
	}
	s.Color = a.palette.Next()

	buffer := NewParticleBuffer(s.Count())
	a.animator.Register(s, buffer)
	a.visuals = append(a.visuals, &sprayVisual{
		spray:  s,
		buffer: buffer,
		color:  s.Color,
	})
}

// clearCanvas removes every spray.
func (a *App) clearCanvas() {
	if len(a.visuals) == 0 {
		return
	}
	a.animator.Clear()
	a.visuals = nil
	a.audio.PlayClear()
}

// undoSpray removes the most recently drawn spray.
func (a *App) undoSpray() {
	if len(a.visuals) == 0 {
		return
	}
	last := a.visuals[len(a.visuals)-1]
	a.animator.Unregister(last.spray)
	a.visuals = a.visuals[:len(a.visuals)-1]
	a.audio.PlayUndo()
}

// particleCount returns the total number of animated particles.
func (a *App) particleCount() int {
	total := 0
	for _, vis := range a.visuals {
		total += vis.buffer.Len()
	}
	return total
}

// trackFPS maintains the windowed FPS estimate and kicks off a profile
// capture when the frame rate drops well below target.
func (a *App) trackFPS(delta float64) {
	a.fpsUpdateTimer += delta
	a.fpsUpdateCounter++
	if a.fpsUpdateTimer < fpsWindow {
		return
	}
	if a.fpsUpdateCounter > 0 {
		a.fps = float64(a.fpsUpdateCounter) / a.fpsUpdateTimer
	}

	// Skip detection right after launch while caches warm up.
	timeSinceStart := time.Since(a.startTime)
	if a.fps < fpsDropThreshold && timeSinceStart >= 3*time.Second &&
		time.Since(a.lastFPSDropTime) >= a.fpsDropCooldown {
		a.lastFPSDropTime = time.Now()

		reason := fmt.Sprintf("fps%.0f-sprays%d-particles%d", a.fps, len(a.visuals), a.particleCount())
		log.Printf("FPS drop detected (%.0f FPS), capturing profile", a.fps)
		if err := a.profiler.CaptureProfile(reason); err != nil {
			log.Printf("profile capture skipped: %v", err)
		}
	}

	a.fpsUpdateCounter = 0
	a.fpsUpdateTimer = 0.0
}
