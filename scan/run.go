package scan

import (
	"errors"
	"fmt"
	"io"

	"github.com/gisops/go-polygon-qa/msg"
	"github.com/gisops/go-polygon-qa/spatial"
)

// SliverLineSink accepts one three-vertex polyline per flagged angle, in
// the order the caller hands them over.
type SliverLineSink interface {
	WriteSliver(a, b, c Vertex, polyID string, angle float64) error
}

// AnglePointSink accepts the apex vertex of each flagged angle with the
// angle rendered as text.
type AnglePointSink interface {
	WriteAnglePoint(p Vertex, polyID int, angle string) error
}

// FlagPointSink accepts the midpoint of each flagged short segment.
type FlagPointSink interface {
	WriteFlagPoint(p Vertex, polyID int, length float64) error
}

// StatsSink accepts one statistics record per scanned polygon.
type StatsSink interface {
	WriteStats(s PolygonStats) error
}

// SliverRun locates polygon vertex angles at or below MinAngle degrees
// and materializes them as line and point records, smallest angles
// first.
type SliverRun struct {
	Source   Source
	Lines    SliverLineSink
	Points   AnglePointSink
	Messages msg.Messenger
	MinAngle int
}

func (r *SliverRun) Run() error {
	if r.Messages == nil {
		r.Messages = msg.Discard{}
	}
	r.Messages.Message(fmt.Sprintf("Locating polygon angles less than %d°", r.MinAngle), msg.Info)

	var (
		collector AngleCollector
		bad       BadPolygons
	)

	for {
		f, err := r.Source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading polygon geometry: %w", err)
		}

		w, err := WalkFeature(f)
		if err != nil {
			var bg *BadGeometryError
			if errors.As(err, &bg) {
				bad.Add(bg.ID)
				continue
			}
			return err
		}

		ring := w.AngleRing()
		if ring == nil {
			continue
		}

		for i := 0; i+2 < len(ring); i++ {
			sample := AngleAt(ring[i], ring[i+1], ring[i+2])
			if sample.Kind == MeasureDegenerate {
				r.Messages.Message(fmt.Sprintf("failed to calculate angle at point %d of polygon #%d", i, f.ID), msg.Warning)
			}
			if sample.Defective(r.MinAngle) {
				collector.Add(ring[i], ring[i+1], ring[i+2], f.ID, sample.Degrees)
				r.Messages.Progress(fmt.Sprintf("Reading polygon geometry (%s locations flagged)", msg.Count(collector.Len())))
			}
		}
	}

	if err := bad.Err(); err != nil {
		r.Messages.Message(err.Error(), msg.Error)
		return err
	}

	if collector.Len() == 0 {
		r.Messages.Message(fmt.Sprintf("No polygon angles less than %d degrees were found", r.MinAngle), msg.Info)
		return nil
	}

	r.Messages.Message(fmt.Sprintf("Saved %s sliver locations to the QA layers", msg.Count(collector.Len())), msg.Info)

	ordered := collector.Ordered()
	for _, d := range ordered {
		if err := r.Lines.WriteSliver(d.A, d.B, d.C, fmt.Sprintf("%d", d.PolyID), float64(d.Degrees)); err != nil {
			return fmt.Errorf("writing sliver line for polygon #%d: %w", d.PolyID, err)
		}
	}
	for _, d := range ordered {
		if err := r.Points.WriteAnglePoint(d.B, d.PolyID, fmt.Sprintf("%d°", d.Degrees)); err != nil {
			return fmt.Errorf("writing sliver vertex for polygon #%d: %w", d.PolyID, err)
		}
	}
	return nil
}

// VertexRun locates boundary segments shorter than MinDist working
// units and materializes their midpoints plus a per-polygon statistics
// table.
type VertexRun struct {
	Source   Source
	Points   FlagPointSink
	Stats    StatsSink
	Messages msg.Messenger
	MinDist  float64
	Working  *spatial.Working
}

func (r *VertexRun) Run() error {
	if r.Messages == nil {
		r.Messages = msg.Discard{}
	}
	r.Messages.Message("Reading polygon geometry...", msg.Info)

	var (
		collector SegmentCollector
		bad       BadPolygons
		stats     []PolygonStats
		multipart bool
	)

	for {
		f, err := r.Source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading polygon geometry: %w", err)
		}

		w, err := WalkFeature(f)
		if err != nil {
			var bg *BadGeometryError
			if errors.As(err, &bg) {
				bad.Add(bg.ID)
				continue
			}
			return err
		}
		if w.Multipart {
			multipart = true
		}

		ps, err := NewPolygonStats(f, w, r.Working.Unit)
		if err != nil {
			return err
		}

		for _, pair := range segmentPairs(w) {
			sample := MeasureSegment(pair[0], pair[1])
			ps.Observe(sample.Length)
			if sample.Defective(r.MinDist) {
				collector.Add(sample.Mid, f.ID, sample.Length)
				r.Messages.Progress(fmt.Sprintf("Reading polygon geometry (%s locations flagged)", msg.Count(collector.Len())))
			}
		}

		stats = append(stats, *ps)
	}

	if err := bad.Err(); err != nil {
		r.Messages.Message(err.Error(), msg.Error)
		return err
	}

	if multipart {
		r.Messages.Message("Input layer has multipart polygons that require editing (explode)", msg.Warning)
	}

	if collector.Len() == 0 {
		r.Messages.Message(fmt.Sprintf("No short segments detected (less than %g %s)", r.MinDist, r.Working.Unit), msg.Info)
	} else {
		r.Messages.Message(fmt.Sprintf("Flagged %s segments shorter than %g %s",
			msg.Count(collector.Len()), r.MinDist, r.Working.Unit), msg.Warning)
		for _, d := range collector.Defects() {
			if err := r.Points.WriteFlagPoint(d.Mid, d.PolyID, d.Length); err != nil {
				return fmt.Errorf("writing vertex flag for polygon #%d: %w", d.PolyID, err)
			}
		}
	}

	for _, s := range stats {
		if err := r.Stats.WriteStats(s); err != nil {
			return fmt.Errorf("writing statistics for polygon #%d: %w", s.ID, err)
		}
	}
	return nil
}

// segmentPairs yields the consecutive vertex pairs of the walked ring.
func segmentPairs(w *Walk) [][2]Vertex {
	ring := w.SegmentRing()
	if ring == nil {
		return nil
	}
	pairs := make([][2]Vertex, 0, len(ring)-1)
	for i := 0; i+1 < len(ring); i++ {
		pairs = append(pairs, [2]Vertex{ring[i], ring[i+1]})
	}
	return pairs
}
