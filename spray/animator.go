package spray

// TransformSink receives the position and scale computed for each
// particle every tick. Implementations are write-only, indexed by the
// particle's slot in its Spray, and owned by the rendering collaborator;
// the engine never reads them back.
type TransformSink interface {
	SetTransform(index int, pos Vec3, scale float64)
}

// maxTickDelta is the upper bound on a usable tick delta in seconds.
// Deltas at or above it come from a stalled or backgrounded clock and
// are discarded whole rather than replayed as several small steps.
const maxTickDelta = 0.1

// sprayEntry pairs a registered spray with its render sink.
type sprayEntry struct {
	spray *Spray
	sink  TransformSink
}

// Animator advances every registered spray's particles each tick.
// It never creates or destroys particles; it only repositions and
// resizes them. Not safe for concurrent use: exactly one Update pass
// runs per frame, driven by the host's animation callback.
type Animator struct {
	entries []sprayEntry
}

// NewAnimator creates an empty animator
func NewAnimator() *Animator {
	return &Animator{
		entries: make([]sprayEntry, 0, 16),
	}
}

// Register adds a fully constructed spray to the working set, paired
// with the sink its particle transforms are written to.
func (a *Animator) Register(s *Spray, sink TransformSink) {
	a.entries = append(a.entries, sprayEntry{spray: s, sink: sink})
}

// Unregister removes a spray from the working set. Sprays not present
// are ignored.
func (a *Animator) Unregister(s *Spray) {
	for i, e := range a.entries {
		if e.spray == s {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			return
		}
	}
}

// Clear removes every spray from the working set.
func (a *Animator) Clear() {
	a.entries = a.entries[:0]
}

// Count returns the number of registered sprays.
func (a *Animator) Count() int {
	return len(a.entries)
}

// Sprays returns the registered sprays in registration order.
func (a *Animator) Sprays() []*Spray {
	sprays := make([]*Spray, len(a.entries))
	for i, e := range a.entries {
		sprays[i] = e.spray
	}
	return sprays
}

// Update advances all registered sprays by delta seconds and writes
// each particle's position and scale to its spray's sink.
//
// Non-positive or oversized deltas skip the tick entirely: the sinks
// keep the previous frame's transforms and no particle state changes.
func (a *Animator) Update(delta float64) {
	if delta <= 0 || delta >= maxTickDelta {
		return
	}
	for _, e := range a.entries {
		updateSpray(e.spray, e.sink, delta)
	}
}

// updateSpray advances one spray's particles.
func updateSpray(s *Spray, sink TransformSink, delta float64) {
	path := s.Path
	for i := range s.Particles {
		pt := &s.Particles[i]

		pt.Age += delta
		if pt.Age > pt.Lifetime {
			pt.Age = 0
			// Re-anchor against the spawn point instead of snapping
			// back to the seed progress: speed drift accumulated over
			// the previous cycle diverges from the nominal seed value.
			pt.Progress = path.ProgressAt(pt.Origin.Add(pt.Jitter))
		}

		// Triangular ease over the life cycle: 0.2 up to 1.2 at the
		// midpoint, back down to 0.2.
		lifeT := 0.0
		if pt.Lifetime > 0 {
			lifeT = pt.Age / pt.Lifetime
		}
		var sizeFactor float64
		if lifeT < 0.5 {
			sizeFactor = 0.2 + (lifeT/0.5)*1.0
		} else {
			sizeFactor = 1.2 - ((lifeT-0.5)/0.5)*1.0
		}

		// Speed is a path fraction per second, so absolute motion is
		// proportionally faster along longer strokes.
		pt.Progress += pt.Speed * delta

		pos := path.PositionAt(pt.Progress).Add(pt.Jitter)
		sink.SetTransform(i, pos, pt.BaseSize*sizeFactor)
	}
}
