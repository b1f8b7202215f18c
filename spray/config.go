package spray

// Config holds the spray generation and animation tunables.
//
// A Config is captured by value when a stroke is sampled, so adjusting
// parameters between strokes never disturbs sprays already on screen.
type Config struct {
	// Speed is the base particle speed as a fraction of total path
	// length traversed per second. Each particle randomizes up to +50%.
	Speed float64

	// Size is the particle size multiplier.
	Size float64

	// Lifetime is the particle lifetime in seconds.
	Lifetime float64

	// Width is the spray width multiplier.
	Width float64

	// Density is the particle density multiplier.
	Density float64

	// DotsPerUnit is the number of samples per unit of stroke length
	// before density shaping is applied.
	DotsPerUnit float64
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Speed:       0.12,
		Size:        1.0,
		Lifetime:    3.0,
		Width:       1.0,
		Density:     1.0,
		DotsPerUnit: 15.0,
	}
}
