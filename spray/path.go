package spray

import "math"

// minPathLength is the total length below which a stroke is considered
// degenerate and must not be sampled.
const minPathLength = 1e-9

// Path is the arc-length-indexed representation of a completed stroke.
// It is immutable after construction and owned by the Spray it seeds.
type Path struct {
	// Points is the ordered stroke polyline (at least 2 points).
	Points []Vec3

	// Cumulative holds the running sum of consecutive point distances.
	// Same length as Points, first entry 0, non-decreasing.
	Cumulative []float64

	// Total is the full path length (last cumulative entry).
	Total float64
}

// NewPath builds a Path from an ordered list of stroke points.
// It returns nil for fewer than 2 points or a degenerate (zero-length)
// polyline; callers must treat nil as "nothing to sample".
func NewPath(points []Vec3) *Path {
	if len(points) < 2 {
		return nil
	}

	cumulative := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		cumulative[i] = cumulative[i-1] + points[i].Distance(points[i-1])
	}

	total := cumulative[len(cumulative)-1]
	if total < minPathLength {
		return nil
	}

	return &Path{
		Points:     points,
		Cumulative: cumulative,
		Total:      total,
	}
}

// SegmentCount returns the number of line segments in the path.
func (p *Path) SegmentCount() int {
	return len(p.Points) - 1
}

// PositionAt resolves the 3D position for a fractional progress along
// the path. Progress is wrapped into [0, 1) first, so values that have
// accumulated past 1 keep flowing from the start of the stroke.
func (p *Path) PositionAt(progress float64) Vec3 {
	progress = wrapProgress(progress)
	target := progress * p.Total

	// Linear scan; stroke segment counts are small (bounded by the
	// drawn polyline resolution).
	for i := 0; i < len(p.Cumulative)-1; i++ {
		if target >= p.Cumulative[i] && target < p.Cumulative[i+1] {
			segLen := p.Cumulative[i+1] - p.Cumulative[i]
			t := 0.0
			if segLen > 0 {
				t = (target - p.Cumulative[i]) / segLen
			}
			return p.Points[i].Lerp(p.Points[i+1], t)
		}
	}

	// Floating-point spill past the last entry.
	return p.Points[len(p.Points)-1]
}

// ProgressAt projects a position onto the path and returns the global
// progress of the closest point across all segments. Ties keep the
// first-encountered minimum, so the result is stable for a given
// segment order.
func (p *Path) ProgressAt(pos Vec3) float64 {
	bestDistSq := math.MaxFloat64
	bestProgress := 0.0

	for i := 0; i < len(p.Points)-1; i++ {
		a := p.Points[i]
		seg := p.Points[i+1].Sub(a)
		segLenSq := seg.LengthSquared()

		// Clamped projection of pos onto the segment. Zero-length
		// segments collapse to their start point.
		u := 0.0
		if segLenSq > 0 {
			u = pos.Sub(a).Dot(seg) / segLenSq
			if u < 0 {
				u = 0
			} else if u > 1 {
				u = 1
			}
		}

		closest := a.Add(seg.Scale(u))
		distSq := pos.Sub(closest).LengthSquared()
		if distSq < bestDistSq {
			bestDistSq = distSq
			segLen := p.Cumulative[i+1] - p.Cumulative[i]
			bestProgress = (p.Cumulative[i] + u*segLen) / p.Total
		}
	}

	return bestProgress
}

// wrapProgress reduces progress into [0, 1).
func wrapProgress(progress float64) float64 {
	progress = math.Mod(progress, 1.0)
	if progress < 0 {
		progress += 1.0
	}
	return progress
}
