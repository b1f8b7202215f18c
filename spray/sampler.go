package spray

import (
	"math"
	"math/rand/v2"
)

// Spray shaping constants, in world units.
const (
	// baseSprayWidth is the spray radius at the stroke start.
	baseSprayWidth = 0.05

	// maxSprayWidth is the spray radius approached at the stroke tail.
	maxSprayWidth = 0.4

	// minSegmentSamples is the per-segment sample floor applied before
	// exponential thinning.
	minSegmentSamples = 3

	// particleSizeBase converts the sampled size factor and configured
	// size multiplier into a world-unit particle size.
	particleSizeBase = 0.02
)

// seed is one sampled spray position before particle instantiation.
type seed struct {
	pos        Vec3
	jitter     Vec3
	sizeFactor float64
}

// Sampler converts completed strokes into particle sprays.
//
// Samplers are not safe for concurrent use; generation and animation
// never run at the same time for a given spray.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler drawing randomness from rng. Tests pass
// a fixed-seed source for deterministic output.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Sample converts an ordered list of stroke points into a Spray using a
// snapshot of the current configuration. It returns nil when the stroke
// has fewer than 2 points or degenerate (zero) length.
func (s *Sampler) Sample(points []Vec3, cfg Config) *Spray {
	path := NewPath(points)
	if path == nil {
		return nil
	}

	seeds := s.generateSeeds(path, cfg)

	// Seed progress approximates arc position by emission index: the
	// k-th of N samples starts at k/(N-1) of the path. Sparse tail
	// segments land slightly off their true arc position, and the
	// respawn re-projection pulls them back every lifetime cycle.
	particles := make([]Particle, len(seeds))
	for i, sd := range seeds {
		progress := 0.0
		if len(seeds) > 1 {
			progress = float64(i) / float64(len(seeds)-1)
		}
		particles[i] = Particle{
			Origin:   sd.pos,
			Jitter:   sd.jitter,
			BaseSize: particleSizeBase * sd.sizeFactor * cfg.Size,
			Age:      s.rng.Float64() * cfg.Lifetime,
			Lifetime: cfg.Lifetime,
			Speed:    cfg.Speed + s.rng.Float64()*cfg.Speed*0.5,
			Progress: progress,
		}
	}

	return &Spray{
		Path:      path,
		Particles: particles,
		Config:    cfg,
	}
}

// generateSeeds walks the path segments and emits jittered sample
// positions, heavily weighted toward the start of the stroke.
func (s *Sampler) generateSeeds(path *Path, cfg Config) []seed {
	var seeds []seed

	for i := 0; i < path.SegmentCount(); i++ {
		segLen := path.Cumulative[i+1] - path.Cumulative[i]
		if segLen <= 0 {
			continue
		}
		start := path.Points[i]
		end := path.Points[i+1]

		// Fraction of the stroke consumed before this segment.
		progress := path.Cumulative[i] / path.Total

		// Sample count: cubic falloff with a floor, then exponential
		// thinning. The stroke start ends up far denser than the tail.
		densityMult := math.Pow(1-progress, 3)*8 + 0.5
		base := math.Floor(segLen * cfg.DotsPerUnit * densityMult * cfg.Density)
		if base < minSegmentSamples {
			base = minSegmentSamples
		}
		count := int(math.Ceil(base * math.Exp(-4*progress)))

		// The spray cone tightens at the stroke start and fans out
		// toward the tail.
		radius := (baseSprayWidth + (maxSprayWidth-baseSprayWidth)*math.Pow(progress, 0.8)) * cfg.Width
		spread := 0.2 + 0.8*progress
		sizeFactor := 1.2 + 0.5*math.Pow(1-progress, 2)

		for j := 0; j < count; j++ {
			// Bias samples toward the segment start as overall stroke
			// progress increases.
			t := math.Pow(s.rng.Float64(), 1+2*progress)
			pos := start.Lerp(end, t)

			angle := s.rng.Float64() * 2 * math.Pi
			r := radius * s.rng.Float64() * spread
			jitter := Vec3{X: math.Cos(angle) * r, Y: math.Sin(angle) * r}

			seeds = append(seeds, seed{
				pos:        pos,
				jitter:     jitter,
				sizeFactor: sizeFactor,
			})
		}
	}

	return seeds
}
