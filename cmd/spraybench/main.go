package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"spraydraw/spray"
)

// discardSink absorbs particle transforms without storing them, so the
// benchmark measures the engine rather than a render path.
type discardSink struct{}

func (discardSink) SetTransform(int, spray.Vec3, float64) {}

func main() {
	strokes := flag.Int("strokes", 8, "number of synthetic strokes")
	points := flag.Int("points", 64, "points per stroke")
	ticks := flag.Int("ticks", 3600, "animation ticks to run")
	seed := flag.Uint64("seed", 1, "rng seed")
	density := flag.Float64("density", 1.0, "density multiplier")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	flag.Parse()

	if *points < 2 {
		log.Fatal("need at least 2 points per stroke")
	}
	if *ticks < 1 {
		log.Fatal("need at least 1 tick")
	}

	runtime.GOMAXPROCS(runtime.NumCPU())

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	sampler := spray.NewSampler(rng)
	animator := spray.NewAnimator()

	cfg := spray.DefaultConfig()
	cfg.Density = *density

	totalParticles := 0
	for i := 0; i < *strokes; i++ {
		s := sampler.Sample(syntheticStroke(rng, *points), cfg)
		if s == nil {
			continue
		}
		animator.Register(s, discardSink{})
		totalParticles += s.Count()
	}
	log.Printf("sampled %d strokes into %d particles", animator.Count(), totalParticles)

	if totalParticles == 0 {
		log.Fatal("no particles generated")
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatalf("create cpu profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("start cpu profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	// A fixed 60Hz delta keeps runs comparable across machines.
	const delta = 1.0 / 60.0
	start := time.Now()
	for i := 0; i < *ticks; i++ {
		animator.Update(delta)
	}
	elapsed := time.Since(start)

	transforms := float64(totalParticles) * float64(*ticks)
	fmt.Printf("ticks:            %d\n", *ticks)
	fmt.Printf("particles:        %d\n", totalParticles)
	fmt.Printf("elapsed:          %v\n", elapsed)
	fmt.Printf("ticks/sec:        %.0f\n", float64(*ticks)/elapsed.Seconds())
	fmt.Printf("ns/particle-tick: %.1f\n", float64(elapsed.Nanoseconds())/transforms)
}

// syntheticStroke traces a sine wave with random amplitude, frequency,
// and phase across the canvas. Wavy strokes exercise the projection
// path far harder than straight lines do.
func syntheticStroke(rng *rand.Rand, points int) []spray.Vec3 {
	startX := rng.Float64()*2 - 3
	baseY := rng.Float64()*4 - 2
	amplitude := 0.3 + rng.Float64()*0.8
	frequency := 1 + rng.Float64()*2
	phase := rng.Float64() * 2 * math.Pi

	pts := make([]spray.Vec3, 0, points)
	for i := 0; i < points; i++ {
		t := float64(i) / float64(points-1)
		x := startX + t*6
		y := baseY + amplitude*math.Sin(phase+t*frequency*2*math.Pi)
		pts = append(pts, spray.V(x, y, 0))
	}
	return pts
}
