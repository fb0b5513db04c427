// Package geojson adapts a GeoJSON FeatureCollection into the polygon
// record stream consumed by the scan package.
package geojson

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	geom "github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/gisops/go-polygon-qa/scan"
	"github.com/gisops/go-polygon-qa/spatial"
)

// Feature holds one raw GeoJSON feature. The geometry member stays raw
// until decoding so null geometries survive the round trip.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// FeatureCollection holds multiple features.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Source yields scan features in the order the collection delivered
// them. Decoding happens up front; iteration never blocks.
type Source struct {
	features []scan.Feature
	pos      int
}

// Parse reads a FeatureCollection document without decoding the
// geometries.
func Parse(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}
	return &fc, nil
}

// NewSource decodes a FeatureCollection document and projects every
// coordinate into the working reference. Feature order is preserved
// exactly as delivered.
func NewSource(data []byte, working *spatial.Working) (*Source, error) {
	fc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return FromCollection(fc, working)
}

// FromCollection builds a source from an already parsed collection.
func FromCollection(fc *FeatureCollection, working *spatial.Working) (*Source, error) {
	features, err := decodeAll(fc.Features, working)
	if err != nil {
		return nil, err
	}
	return &Source{features: features}, nil
}

// Count reports the number of features the source will yield.
func (s *Source) Count() int {
	return len(s.features)
}

func (s *Source) Next() (*scan.Feature, error) {
	if s.pos >= len(s.features) {
		return nil, io.EOF
	}
	f := &s.features[s.pos]
	s.pos++
	return f, nil
}

// decodeFeature turns one raw feature into a scan record. A null or
// absent geometry member yields nil Parts; a decoded geometry with no
// polygon parts yields an empty, non-nil slice. Both are left for the
// scan's bad-polygon gate rather than rejected here.
func decodeFeature(f Feature, index int, working *spatial.Working) (scan.Feature, error) {
	out := scan.Feature{ID: featureID(f, index)}

	if len(f.Geometry) == 0 || string(f.Geometry) == "null" {
		return out, nil
	}

	var g geom.T
	if err := geomjson.Unmarshal(f.Geometry, &g); err != nil {
		return out, fmt.Errorf("error creating geometry for feature %d: %w", index, err)
	}

	var polys []*geom.Polygon
	switch t := g.(type) {
	case *geom.Polygon:
		polys = []*geom.Polygon{t}
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			polys = append(polys, t.Polygon(i))
		}
	default:
		// non-polygon geometry: zero parts, caught by the gate
		out.Parts = []scan.Part{}
		return out, nil
	}

	out.Parts = []scan.Part{}
	for _, p := range polys {
		part, area, perimeter, vertices, err := decodePart(p, working)
		if err != nil {
			return out, fmt.Errorf("feature %d: %w", index, err)
		}
		out.Parts = append(out.Parts, part)
		out.Area += area
		out.Perimeter += perimeter
		out.VertexCount += vertices
	}
	return out, nil
}

// decodePart converts one polygon into its working-reference vertex
// stream: the closed outer ring, then a ring break and the hole
// vertices when interior rings are present. Area excludes holes;
// perimeter and the vertex count include every ring.
func decodePart(p *geom.Polygon, working *spatial.Working) (scan.Part, float64, float64, int, error) {
	var part scan.Part
	var area, perimeter float64
	var vertices int

	for r := 0; r < p.NumLinearRings(); r++ {
		ring, err := projectRing(p.LinearRing(r).Coords(), working)
		if err != nil {
			return part, 0, 0, 0, err
		}
		if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}

		if r == 0 {
			area += ringArea(ring)
			part.Stream = ring
		} else {
			area -= ringArea(ring)
			if r == 1 {
				part.Stream = append(part.Stream, scan.RingBreak())
			}
			part.Stream = append(part.Stream, ring...)
		}
		perimeter += ringLength(ring)
		vertices += len(ring)
	}
	return part, area, perimeter, vertices, nil
}

func projectRing(coords []geom.Coord, working *spatial.Working) ([]scan.Vertex, error) {
	ring := make([]scan.Vertex, 0, len(coords))
	for _, c := range coords {
		v := scan.Vertex{X: c[0], Y: c[1]}
		if working != nil && working.Transform != nil {
			x, y, err := working.Transform(v.X, v.Y)
			if err != nil {
				return nil, fmt.Errorf("projecting (%f, %f): %w", v.X, v.Y, err)
			}
			v = scan.Vertex{X: x, Y: y}
		}
		ring = append(ring, v)
	}
	return ring, nil
}

// ringArea is the unsigned shoelace area of a closed ring.
func ringArea(ring []scan.Vertex) float64 {
	if len(ring) < 4 {
		return 0
	}
	sum := 0.0
	for i := 0; i+1 < len(ring); i++ {
		sum += ring[i].X*ring[i+1].Y - ring[i+1].X*ring[i].Y
	}
	return math.Abs(sum) / 2.0
}

func ringLength(ring []scan.Vertex) float64 {
	sum := 0.0
	for i := 0; i+1 < len(ring); i++ {
		sum += scan.Dist(ring[i], ring[i+1])
	}
	return sum
}

// featureID resolves the stable polygon id: the OBJECTID property when
// present, then a generic id property, then the 1-based feature index.
func featureID(f Feature, index int) int {
	for _, key := range []string{"OBJECTID", "objectid", "id", "ID"} {
		if raw, ok := f.Properties[key]; ok {
			switch v := raw.(type) {
			case float64:
				return int(v)
			case int:
				return v
			}
		}
	}
	return index + 1
}
