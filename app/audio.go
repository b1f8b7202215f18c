package app

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const audioSampleRate = beep.SampleRate(48000)

// SprayAudio synthesizes the can hiss and canvas feedback sounds. All
// methods are safe to call before Initialize or after a failed
// Initialize; they simply do nothing.
type SprayAudio struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	hissCtrl    *beep.Ctrl
	initialized bool
}

// NewSprayAudio creates an audio manager with an empty mixer.
func NewSprayAudio() *SprayAudio {
	return &SprayAudio{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer. On platforms
// without an audio device the error leaves the manager in silent mode.
func (a *SprayAudio) Initialize() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return nil
	}
	if err := speaker.Init(audioSampleRate, audioSampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(a.mixer)
	a.initialized = true
	return nil
}

// Cleanup silences everything and releases the mixer contents.
func (a *SprayAudio) Cleanup() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}
	a.hissCtrl = nil
	a.mixer.Clear()
	a.initialized = false
}

// StartHiss unpauses the looping can hiss, creating it on first use.
func (a *SprayAudio) StartHiss() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}
	if a.hissCtrl == nil {
		a.hissCtrl = &beep.Ctrl{Streamer: newHissGenerator(audioSampleRate)}
		a.mixer.Add(a.hissCtrl)
		return
	}
	a.hissCtrl.Paused = false
}

// StopHiss pauses the can hiss.
func (a *SprayAudio) StopHiss() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.hissCtrl != nil {
		a.hissCtrl.Paused = true
	}
}

// PlayClear plays a short air puff when the canvas is cleared.
func (a *SprayAudio) PlayClear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}
	streamer := beep.Take(audioSampleRate.N(time.Millisecond*350), newPuffGenerator(audioSampleRate))
	a.mixer.Add(streamer)
}

// PlayUndo plays a low blip when a spray is removed.
func (a *SprayAudio) PlayUndo() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}
	streamer := beep.Take(audioSampleRate.N(time.Millisecond*150), newBlipGenerator(audioSampleRate, 420))
	a.mixer.Add(streamer)
}

// hissGenerator produces the airbrush noise bed: smoothed white noise
// with a slow amplitude wobble so the hiss breathes instead of droning.
type hissGenerator struct {
	sr   beep.SampleRate
	pos  int
	last float64
}

func newHissGenerator(sr beep.SampleRate) *hissGenerator {
	return &hissGenerator{sr: sr}
}

func (g *hissGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		noise := rand.Float64()*2 - 1
		// One-pole smoothing takes the paper-cut edge off raw noise.
		g.last += 0.35 * (noise - g.last)

		amplitude := 0.06 * (0.85 + 0.15*math.Sin(2*math.Pi*2.7*t))
		sample := g.last * amplitude

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *hissGenerator) Err() error {
	return nil
}

// puffGenerator produces a burst of noise with an exponential decay,
// like a last shake of the can.
type puffGenerator struct {
	sr  beep.SampleRate
	pos int
}

func newPuffGenerator(sr beep.SampleRate) *puffGenerator {
	return &puffGenerator{sr: sr}
}

func (g *puffGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		noise := rand.Float64()*2 - 1
		sample := noise * 0.25 * math.Exp(-t*14)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *puffGenerator) Err() error {
	return nil
}

// blipGenerator produces a short sine blip at the given frequency.
type blipGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newBlipGenerator(sr beep.SampleRate, freq float64) *blipGenerator {
	return &blipGenerator{sr: sr, freq: freq}
}

func (g *blipGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.2 * math.Sin(2*math.Pi*g.freq*t) * math.Exp(-t*25)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *blipGenerator) Err() error {
	return nil
}
