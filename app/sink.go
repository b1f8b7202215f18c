package app

import "spraydraw/spray"

// ParticleBuffer stores the latest transform written for each particle
// of one spray. The animator writes it every tick and the renderer
// reads it every frame; neither side allocates after construction.
type ParticleBuffer struct {
	positions []spray.Vec3
	scales    []float64
}

// NewParticleBuffer creates a buffer sized for count particles.
func NewParticleBuffer(count int) *ParticleBuffer {
	return &ParticleBuffer{
		positions: make([]spray.Vec3, count),
		scales:    make([]float64, count),
	}
}

// SetTransform records the world position and size for one particle.
// Out-of-range indices are dropped.
func (b *ParticleBuffer) SetTransform(index int, pos spray.Vec3, scale float64) {
	if index < 0 || index >= len(b.positions) {
		return
	}
	b.positions[index] = pos
	b.scales[index] = scale
}

// Len returns the particle capacity of the buffer.
func (b *ParticleBuffer) Len() int {
	return len(b.positions)
}

// Position returns the stored world position for one particle.
func (b *ParticleBuffer) Position(index int) spray.Vec3 {
	return b.positions[index]
}

// Scale returns the stored world-unit size for one particle.
func (b *ParticleBuffer) Scale(index int) float64 {
	return b.scales[index]
}
