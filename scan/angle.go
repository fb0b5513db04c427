package scan

import (
	"math"

	"github.com/golang/geo/s1"
)

// MeasureKind classifies the outcome of a single vertex measurement.
// Degenerate measurements are recovered locally rather than failing the
// scan; Skip marks windows the walker could not form.
type MeasureKind int

const (
	MeasureOK MeasureKind = iota
	MeasureDegenerate
	MeasureSkip
)

// AngleSample is the interior angle computed at one ring vertex,
// rounded to the nearest whole degree.
type AngleSample struct {
	Kind    MeasureKind
	Degrees int
}

// AngleAt computes the interior angle at b from the triple (a, b, c) in
// ring order, by the law of cosines on the side lengths. Duplicate
// vertices collapse a side to zero length; the sample is then
// degenerate and carries angle 0 so the threshold comparison still
// flags the location.
func AngleAt(a, b, c Vertex) AngleSample {
	ab := Dist(a, b)
	bc := Dist(b, c)
	ca := Dist(c, a)

	if ab == 0 || bc == 0 {
		return AngleSample{Kind: MeasureDegenerate}
	}

	p := (ab*ab + bc*bc - ca*ca) / (2 * ab * bc)
	p = math.Round(p*1e10) / 1e10
	if p > 1 {
		p = 1
	} else if p < -1 {
		p = -1
	}

	deg := s1.Angle(math.Acos(p)).Degrees()
	return AngleSample{Kind: MeasureOK, Degrees: int(math.Round(deg))}
}

// Defective reports whether the sample should be flagged for the given
// minimum-angle threshold. The comparison is inclusive; degenerate
// samples carry angle 0 and are flagged whenever the threshold admits
// them.
func (s AngleSample) Defective(minAngle int) bool {
	if s.Kind == MeasureSkip {
		return false
	}
	return s.Degrees <= minAngle
}
