// Package scan walks polygon boundaries and classifies digitizing
// defects: sliver angles at or below a degree threshold, and boundary
// segments shorter than a distance threshold.
package scan

import "math"

// Vertex is one boundary coordinate in the working spatial reference.
type Vertex struct {
	X, Y float64
}

// RingBreak returns the sentinel vertex that separates a part's outer
// ring from its interior rings in the source vertex stream.
func RingBreak() Vertex {
	return Vertex{X: math.NaN(), Y: math.NaN()}
}

// IsBreak reports whether v is the interior-ring sentinel.
func (v Vertex) IsBreak() bool {
	return math.IsNaN(v.X)
}

// Dist is the Euclidean separation of two vertices in the working unit.
func Dist(a, b Vertex) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Midpoint is the arithmetic mean of two vertices.
func Midpoint(a, b Vertex) Vertex {
	return Vertex{X: (a.X + b.X) / 2.0, Y: (a.Y + b.Y) / 2.0}
}

// Part is one polygon part as delivered by the geometry source: the
// closed outer-ring vertex stream, followed by a ring break and the
// interior-ring vertices when the part has holes.
type Part struct {
	Stream []Vertex
}

// Feature is one input polygon record. Parts is nil when the source
// delivered no geometry for the feature. Area, Perimeter and
// VertexCount are source-reported figures in the working reference.
type Feature struct {
	ID          int
	Parts       []Part
	Area        float64
	Perimeter   float64
	VertexCount int
}

// Source yields one Feature per input polygon in the host's enumeration
// order. Next returns io.EOF after the final feature.
type Source interface {
	Next() (*Feature, error)
}
