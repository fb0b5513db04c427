package scan

import (
	"github.com/gisops/go-polygon-qa/spatial"
)

// MinSegmentSeed is the arbitrarily large starting value for the
// per-polygon minimum segment length. A polygon with no sampled
// segments reports the seed untouched.
const MinSegmentSeed = 1000000.0

// SegmentSample is one boundary segment measurement.
type SegmentSample struct {
	Length float64
	Mid    Vertex
}

// MeasureSegment computes the straight-line length of the segment from
// a to b and its midpoint.
func MeasureSegment(a, b Vertex) SegmentSample {
	return SegmentSample{
		Length: Dist(a, b),
		Mid:    Midpoint(a, b),
	}
}

// Defective reports whether the segment falls under the minimum-distance
// threshold. The comparison is strict.
func (s SegmentSample) Defective(minDist float64) bool {
	return s.Length < minDist
}

// PolygonStats is the per-polygon statistics record. One is produced
// for every scanned polygon whether or not defects were found.
type PolygonStats struct {
	ID         int
	Acres      float64
	Vertices   int
	AvgSegment float64
	MinSegment float64
	Multipart  bool
}

// NewPolygonStats derives the statistics record for a walked feature.
// The average segment length is the whole-boundary perimeter divided by
// the vertex count, not the segment count. The minimum is seeded high
// and lowered by Observe.
func NewPolygonStats(f *Feature, w *Walk, unit spatial.Unit) (*PolygonStats, error) {
	acres, err := spatial.Acres(f.Area, unit)
	if err != nil {
		return nil, err
	}

	avg := 0.0
	if f.VertexCount > 0 {
		avg = f.Perimeter / float64(f.VertexCount)
	}

	return &PolygonStats{
		ID:         f.ID,
		Acres:      acres,
		Vertices:   f.VertexCount,
		AvgSegment: avg,
		MinSegment: MinSegmentSeed,
		Multipart:  w.Multipart,
	}, nil
}

// Observe folds one segment length into the running minimum. Every
// boundary segment is observed, defective or not.
func (s *PolygonStats) Observe(length float64) {
	if length < s.MinSegment {
		s.MinSegment = length
	}
}
