package spray

import (
	"math"
	"testing"
)

// recordingSink captures the last transform written for each particle
// index plus the total number of writes.
type recordingSink struct {
	positions map[int]Vec3
	scales    map[int]float64
	writes    int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		positions: make(map[int]Vec3),
		scales:    make(map[int]float64),
	}
}

func (r *recordingSink) SetTransform(index int, pos Vec3, scale float64) {
	r.positions[index] = pos
	r.scales[index] = scale
	r.writes++
}

// singleParticleSpray builds a spray over the L-shaped test path with
// one hand-crafted particle, bypassing the sampler so every field is
// exact.
func singleParticleSpray(pt Particle) *Spray {
	return &Spray{
		Path:      NewPath(lShapePoints()),
		Particles: []Particle{pt},
		Config:    DefaultConfig(),
	}
}

func TestUpdateSkipsBadDeltas(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
	}{
		{"zero", 0},
		{"negative", -0.016},
		{"at clamp", 0.1},
		{"above clamp", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spray := singleParticleSpray(Particle{
				Origin:   V(0.5, 0, 0),
				BaseSize: 0.03,
				Age:      0.4,
				Lifetime: 1,
				Speed:    0.25,
				Progress: 0.25,
			})
			before := spray.Particles[0]

			sink := newRecordingSink()
			anim := NewAnimator()
			anim.Register(spray, sink)
			anim.Update(tt.delta)

			if sink.writes != 0 {
				t.Errorf("Expected no sink writes on a skipped tick, got %d", sink.writes)
			}
			if spray.Particles[0] != before {
				t.Errorf("Expected particle state unchanged, got %+v", spray.Particles[0])
			}
		})
	}
}

func TestUpdateAdvancesParticle(t *testing.T) {
	jitter := V(0.01, -0.02, 0)
	spray := singleParticleSpray(Particle{
		Origin:   V(0, 0, 0),
		Jitter:   jitter,
		BaseSize: 0.03,
		Age:      0.1,
		Lifetime: 1,
		Speed:    0.25,
		Progress: 0,
	})

	sink := newRecordingSink()
	anim := NewAnimator()
	anim.Register(spray, sink)
	anim.Update(0.05)

	pt := spray.Particles[0]
	if !almostEqual(pt.Age, 0.15, 1e-12) {
		t.Errorf("Expected age 0.15, got %v", pt.Age)
	}
	if !almostEqual(pt.Progress, 0.0125, 1e-12) {
		t.Errorf("Expected progress 0.0125, got %v", pt.Progress)
	}
	if sink.writes != 1 {
		t.Fatalf("Expected one sink write, got %d", sink.writes)
	}

	wantPos := spray.Path.PositionAt(pt.Progress).Add(jitter)
	if !vecAlmostEqual(sink.positions[0], wantPos, 1e-12) {
		t.Errorf("Expected position %v, got %v", wantPos, sink.positions[0])
	}

	// Age 0.15 of lifetime 1 sits on the rising half of the ease:
	// 0.2 + 0.15/0.5 = 0.5.
	wantScale := 0.03 * 0.5
	if !almostEqual(sink.scales[0], wantScale, 1e-12) {
		t.Errorf("Expected scale %v, got %v", wantScale, sink.scales[0])
	}
}

func TestUpdateSizeEase(t *testing.T) {
	// Each case sets the age just below the probe point and ticks by
	// the remainder, so the factor is evaluated exactly at the probe.
	tests := []struct {
		name       string
		ageBefore  float64
		delta      float64
		wantFactor float64
	}{
		{"early rise", 0.09, 0.01, 0.4},
		{"mid rise", 0.24, 0.01, 0.7},
		{"peak", 0.49, 0.01, 1.2},
		{"mid fall", 0.74, 0.01, 0.7},
		{"late fall", 0.89, 0.01, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spray := singleParticleSpray(Particle{
				Origin:   V(0.5, 0, 0),
				BaseSize: 1,
				Age:      tt.ageBefore,
				Lifetime: 1,
				Speed:    0,
				Progress: 0.25,
			})

			sink := newRecordingSink()
			anim := NewAnimator()
			anim.Register(spray, sink)
			anim.Update(tt.delta)

			if !almostEqual(sink.scales[0], tt.wantFactor, 1e-9) {
				t.Errorf("Expected size factor %v at age %v, got %v",
					tt.wantFactor, tt.ageBefore+tt.delta, sink.scales[0])
			}
		})
	}
}

func TestUpdateSizeEaseContinuousAtPeak(t *testing.T) {
	probe := func(age float64) float64 {
		spray := singleParticleSpray(Particle{
			Origin:   V(0.5, 0, 0),
			BaseSize: 1,
			Age:      age - 0.001,
			Lifetime: 1,
			Speed:    0,
			Progress: 0.25,
		})
		sink := newRecordingSink()
		anim := NewAnimator()
		anim.Register(spray, sink)
		anim.Update(0.001)
		return sink.scales[0]
	}

	below := probe(0.5 - 1e-6)
	above := probe(0.5 + 1e-6)
	if math.Abs(below-above) > 1e-5 {
		t.Errorf("Size ease jumps across the peak: %v vs %v", below, above)
	}
}

func TestUpdateWrapsProgress(t *testing.T) {
	spray := singleParticleSpray(Particle{
		Origin:   V(0, 0, 0),
		BaseSize: 0.03,
		Age:      0,
		Lifetime: 1000,
		Speed:    0.4,
		Progress: 0,
	})

	sink := newRecordingSink()
	anim := NewAnimator()
	anim.Register(spray, sink)

	// 60 ticks at 0.05s advance raw progress to 1.2 path lengths.
	for i := 0; i < 60; i++ {
		anim.Update(0.05)
	}

	pt := spray.Particles[0]
	wrapped := wrapProgress(pt.Progress)
	if wrapped < 0 || wrapped >= 1 {
		t.Errorf("Wrapped progress %v outside [0, 1)", wrapped)
	}

	pos := sink.positions[0]
	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) || math.IsNaN(pos.Z) {
		t.Fatalf("Position contains NaN after wrapping: %v", pos)
	}
	want := spray.Path.PositionAt(pt.Progress)
	if !vecAlmostEqual(pos, want, 1e-12) {
		t.Errorf("Expected wrapped position %v, got %v", want, pos)
	}
}

func TestUpdateRespawnsExpiredParticle(t *testing.T) {
	// The spawn point sits on the vertical arm at arc progress 0.75.
	// The particle's recorded progress has drifted to 0.2; respawn must
	// re-anchor it by projection, not reuse the stale value.
	origin := V(1, 0.5, 0)
	spray := singleParticleSpray(Particle{
		Origin:   origin,
		BaseSize: 0.03,
		Age:      0.98,
		Lifetime: 1,
		Speed:    0,
		Progress: 0.2,
	})

	sink := newRecordingSink()
	anim := NewAnimator()
	anim.Register(spray, sink)
	anim.Update(0.05)

	pt := spray.Particles[0]
	if pt.Age != 0 {
		t.Errorf("Expected age reset to 0, got %v", pt.Age)
	}
	if !almostEqual(pt.Progress, 0.75, 1e-12) {
		t.Errorf("Expected re-anchored progress 0.75, got %v", pt.Progress)
	}
	if !vecAlmostEqual(sink.positions[0], origin, 1e-12) {
		t.Errorf("Expected respawn at %v, got %v", origin, sink.positions[0])
	}
	// A freshly respawned particle starts at the bottom of the ease.
	if !almostEqual(sink.scales[0], 0.03*0.2, 1e-12) {
		t.Errorf("Expected start-of-life size factor 0.2, got scale %v", sink.scales[0])
	}
}

func TestUpdateKeepsParticleAtExactLifetime(t *testing.T) {
	// Age, delta, and lifetime are all exact binary fractions, so the
	// sum lands exactly on the lifetime and the strict comparison must
	// not respawn.
	spray := singleParticleSpray(Particle{
		Origin:   V(1, 0.5, 0),
		BaseSize: 1,
		Age:      0.4375,
		Lifetime: 0.5,
		Speed:    0,
		Progress: 0.2,
	})

	sink := newRecordingSink()
	anim := NewAnimator()
	anim.Register(spray, sink)
	anim.Update(0.0625)

	pt := spray.Particles[0]
	if pt.Age != 0.5 {
		t.Errorf("Expected age 0.5, got %v", pt.Age)
	}
	if pt.Progress != 0.2 {
		t.Errorf("Expected progress untouched at 0.2, got %v", pt.Progress)
	}
	// End of life sits at the bottom of the ease.
	if !almostEqual(sink.scales[0], 0.2, 1e-12) {
		t.Errorf("Expected size factor 0.2 at end of life, got %v", sink.scales[0])
	}
}

func TestUpdateZeroLifetime(t *testing.T) {
	spray := singleParticleSpray(Particle{
		Origin:   V(0.5, 0, 0),
		BaseSize: 1,
		Age:      0,
		Lifetime: 0,
		Speed:    0,
		Progress: 0.25,
	})

	sink := newRecordingSink()
	anim := NewAnimator()
	anim.Register(spray, sink)
	anim.Update(0.05)

	if got := sink.scales[0]; !almostEqual(got, 0.2, 1e-12) {
		t.Errorf("Expected floor size factor 0.2 with zero lifetime, got %v", got)
	}
	pos := sink.positions[0]
	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
		t.Errorf("Position contains NaN with zero lifetime: %v", pos)
	}
}

func TestUpdateWritesEveryParticle(t *testing.T) {
	particles := make([]Particle, 5)
	for i := range particles {
		particles[i] = Particle{
			Origin:   V(0.2*float64(i), 0, 0),
			BaseSize: 0.03,
			Lifetime: 1,
			Speed:    0.1,
			Progress: 0.1 * float64(i),
		}
	}
	spray := &Spray{
		Path:      NewPath(lShapePoints()),
		Particles: particles,
		Config:    DefaultConfig(),
	}

	sink := newRecordingSink()
	anim := NewAnimator()
	anim.Register(spray, sink)
	anim.Update(0.016)

	if sink.writes != len(particles) {
		t.Errorf("Expected %d sink writes, got %d", len(particles), sink.writes)
	}
	for i := range particles {
		if _, ok := sink.positions[i]; !ok {
			t.Errorf("Particle %d never received a transform", i)
		}
	}
}

func TestAnimatorWorkingSet(t *testing.T) {
	anim := NewAnimator()
	if anim.Count() != 0 {
		t.Fatalf("Expected empty animator, got %d sprays", anim.Count())
	}

	a := singleParticleSpray(Particle{Lifetime: 1})
	b := singleParticleSpray(Particle{Lifetime: 1})
	c := singleParticleSpray(Particle{Lifetime: 1})
	sink := newRecordingSink()

	anim.Register(a, sink)
	anim.Register(b, sink)
	anim.Register(c, sink)
	if anim.Count() != 3 {
		t.Fatalf("Expected 3 sprays, got %d", anim.Count())
	}

	anim.Unregister(b)
	sprays := anim.Sprays()
	if len(sprays) != 2 || sprays[0] != a || sprays[1] != c {
		t.Errorf("Expected [a, c] after unregistering b, got %d sprays", len(sprays))
	}

	// Unregistering a spray that is not present leaves the set alone.
	anim.Unregister(b)
	if anim.Count() != 2 {
		t.Errorf("Expected 2 sprays after repeated unregister, got %d", anim.Count())
	}

	anim.Clear()
	if anim.Count() != 0 {
		t.Errorf("Expected empty animator after clear, got %d sprays", anim.Count())
	}

	// Updating an empty animator is a no-op.
	anim.Update(0.016)
	if sink.writes != 0 {
		t.Errorf("Expected no writes after clear, got %d", sink.writes)
	}
}
