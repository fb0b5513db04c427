package scan

import (
	"sort"
	"strconv"
	"strings"
)

// AngleDefect retains the three vertices that produced a flagged angle
// so the output line geometry can be rebuilt exactly.
type AngleDefect struct {
	Seq     int // discovery counter, 1-based
	A, B, C Vertex
	PolyID  int
	Degrees int
}

// AngleCollector accumulates angle defects in discovery order.
type AngleCollector struct {
	defects []AngleDefect
}

func (c *AngleCollector) Add(a, b, v Vertex, polyID, degrees int) {
	c.defects = append(c.defects, AngleDefect{
		Seq:     len(c.defects) + 1,
		A:       a,
		B:       b,
		C:       v,
		PolyID:  polyID,
		Degrees: degrees,
	})
}

func (c *AngleCollector) Len() int {
	return len(c.defects)
}

// Ordered returns the materialization order: ascending by angle so the
// most severe slivers are written first, discovery order breaking ties.
// The discovery-order slice is left untouched.
func (c *AngleCollector) Ordered() []AngleDefect {
	out := make([]AngleDefect, len(c.defects))
	copy(out, c.defects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Degrees < out[j].Degrees
	})
	return out
}

// SegmentDefect marks a boundary segment shorter than the threshold by
// its midpoint.
type SegmentDefect struct {
	Seq    int
	Mid    Vertex
	PolyID int
	Length float64
}

// SegmentCollector accumulates short-segment defects. They materialize
// in per-polygon discovery order with no re-sort, under a key space
// separate from angle defects.
type SegmentCollector struct {
	defects []SegmentDefect
}

func (c *SegmentCollector) Add(mid Vertex, polyID int, length float64) {
	c.defects = append(c.defects, SegmentDefect{
		Seq:    len(c.defects) + 1,
		Mid:    mid,
		PolyID: polyID,
		Length: length,
	})
}

func (c *SegmentCollector) Len() int {
	return len(c.defects)
}

func (c *SegmentCollector) Defects() []SegmentDefect {
	return c.defects
}

// BadPolygons accumulates the ids of polygons whose geometry could not
// be walked. A non-empty accumulator fails the whole run after the pass
// completes; no output is materialized.
type BadPolygons struct {
	ids []int
}

func (b *BadPolygons) Add(id int) {
	b.ids = append(b.ids, id)
}

func (b *BadPolygons) Empty() bool {
	return len(b.ids) == 0
}

// Err returns the consolidated whole-run failure, or nil when every
// polygon walked cleanly.
func (b *BadPolygons) Err() error {
	if len(b.ids) == 0 {
		return nil
	}
	return &BadRunError{IDs: append([]int(nil), b.ids...)}
}

// BadRunError reports every malformed polygon in a failed run.
type BadRunError struct {
	IDs []int
}

func (e *BadRunError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = strconv.Itoa(id)
	}
	return "bad polygon geometry detected for the following polygons: " + strings.Join(parts, ", ")
}
