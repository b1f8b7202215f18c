package spray

import "image/color"

// Particle represents a single spray sample flowing along a path.
// All fields are value types; a particle never outlives its Spray.
type Particle struct {
	// Origin is the sampled base point on the path, before jitter.
	Origin Vec3

	// Jitter is the fixed spray offset applied perpendicular to the
	// path's local plane. For canvas strokes this lies in the z=0 plane.
	Jitter Vec3

	// BaseSize is the unscaled particle size derived from the size
	// configuration and the per-sample size factor.
	BaseSize float64

	// Age in seconds. Wraps to 0 when it exceeds Lifetime.
	Age float64

	// Lifetime in seconds.
	Lifetime float64

	// Speed is the fraction of total path length traversed per second.
	Speed float64

	// Progress is the fractional position along the path, offset by the
	// particle's spawn position. Grows without bound; wrapped into
	// [0, 1) whenever it is resolved against the path.
	Progress float64
}

// Spray owns one Path and the fixed set of particles sampled from it.
// The particle count never changes after generation; the animator only
// repositions and resizes.
type Spray struct {
	// Path is the arc-length-indexed stroke the particles flow along.
	Path *Path

	// Particles indexed by slot; the index is the only identity and is
	// what the render sink is addressed with.
	Particles []Particle

	// Config is the snapshot captured when the stroke was sampled.
	Config Config

	// Color is the display tint chosen at creation. The engine carries
	// it opaquely for the renderer; it never affects sampling or motion.
	Color color.NRGBA
}

// Count returns the number of particles in the spray.
func (s *Spray) Count() int {
	return len(s.Particles)
}
