package scan

import "fmt"

// BadGeometryError marks a single polygon whose geometry cannot be
// walked: no geometry record at all, or a geometry with zero parts.
// The run collects these per id and fails once at the end of the pass.
type BadGeometryError struct {
	ID int
}

func (e *BadGeometryError) Error() string {
	return fmt.Sprintf("bad geometry for polygon #%d", e.ID)
}

// Walk is the scannable view of one polygon: the outer ring of its
// first part, truncated at the interior-ring break when one was hit.
type Walk struct {
	// Ring holds the closed outer-ring vertices of the first part.
	Ring []Vertex

	PartCount int
	Multipart bool

	// Truncated is set when an interior ring cut the stream short.
	// Islands belong to a neighboring polygon, so nothing past the
	// break is sampled.
	Truncated bool
}

// WalkFeature reads a feature's vertex stream up to the first interior
// ring. Only the first part is carried forward for defect scanning;
// additional parts are flagged, not walked.
func WalkFeature(f *Feature) (*Walk, error) {
	if f.Parts == nil {
		return nil, &BadGeometryError{ID: f.ID}
	}
	if len(f.Parts) == 0 {
		return nil, &BadGeometryError{ID: f.ID}
	}

	w := &Walk{
		PartCount: len(f.Parts),
		Multipart: len(f.Parts) > 1,
	}

	for _, v := range f.Parts[0].Stream {
		if v.IsBreak() {
			w.Truncated = true
			break
		}
		w.Ring = append(w.Ring, v)
	}
	return w, nil
}

// uniqueVertices is the vertex count of the ring without the closure
// duplicate.
func (w *Walk) uniqueVertices() int {
	n := len(w.Ring)
	if n > 1 && w.Ring[0] == w.Ring[n-1] {
		return n - 1
	}
	return n
}

// AngleRing returns the ring extended by one wrap (the vertex at index 1
// appended) so every original vertex gets a defined interior angle,
// including the seam at the closure point. Nil when the ring has fewer
// than 3 distinct vertices and cannot form an angle.
func (w *Walk) AngleRing() []Vertex {
	if w.uniqueVertices() < 3 || len(w.Ring) < 2 {
		return nil
	}
	ring := make([]Vertex, len(w.Ring), len(w.Ring)+1)
	copy(ring, w.Ring)
	return append(ring, w.Ring[1])
}

// SegmentRing returns the closed ring for consecutive-pair scanning, or
// nil when the ring is too short to hold a meaningful segment.
func (w *Walk) SegmentRing() []Vertex {
	if w.uniqueVertices() < 3 {
		return nil
	}
	return w.Ring
}
