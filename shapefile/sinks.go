// Package shapefile materializes collected defects as shapefile layers
// and the per-polygon statistics table, named the way the QA toolset
// has always named them.
package shapefile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"github.com/gisops/go-polygon-qa/scan"
	"github.com/gisops/go-polygon-qa/spatial"
)

// SliverLayers holds the two angle-defect outputs: a polyline layer
// tracing each flagged triple and a point layer marking the apex
// vertices.
type SliverLayers struct {
	lines     *shp.Writer
	points    *shp.Writer
	lineRow   int
	pointRow  int
	LinePath  string
	PointPath string
}

// NewSliverLayers creates QA_Slivers_<minAngle>d and
// QA_SliverPoints_<minAngle>d in the workspace directory.
func NewSliverLayers(workspace string, minAngle int) (*SliverLayers, error) {
	linePath := filepath.Join(workspace, fmt.Sprintf("QA_Slivers_%dd.shp", minAngle))
	lines, err := shp.Create(linePath, shp.POLYLINE)
	if err != nil {
		return nil, fmt.Errorf("failed to create sliver line layer: %w", err)
	}
	lines.SetFields([]shp.Field{
		shp.StringField("POLYID", 20),
		shp.FloatField("ANGLE", 12, 3),
	})

	pointPath := filepath.Join(workspace, fmt.Sprintf("QA_SliverPoints_%dd.shp", minAngle))
	points, err := shp.Create(pointPath, shp.POINT)
	if err != nil {
		lines.Close()
		return nil, fmt.Errorf("failed to create sliver point layer: %w", err)
	}
	points.SetFields([]shp.Field{
		shp.NumberField("POLYID", 15),
		shp.StringField("ANGLE", 8),
	})

	return &SliverLayers{lines: lines, points: points, LinePath: linePath, PointPath: pointPath}, nil
}

func (l *SliverLayers) WriteSliver(a, b, c scan.Vertex, polyID string, angle float64) error {
	line := &shp.PolyLine{
		Parts: []int32{0},
		Points: []shp.Point{
			{X: a.X, Y: a.Y},
			{X: b.X, Y: b.Y},
			{X: c.X, Y: c.Y},
		},
	}
	l.lines.Write(line)
	if err := l.lines.WriteAttribute(l.lineRow, 0, polyID); err != nil {
		return err
	}
	if err := l.lines.WriteAttribute(l.lineRow, 1, angle); err != nil {
		return err
	}
	l.lineRow++
	return nil
}

func (l *SliverLayers) WriteAnglePoint(p scan.Vertex, polyID int, angle string) error {
	l.points.Write(&shp.Point{X: p.X, Y: p.Y})
	if err := l.points.WriteAttribute(l.pointRow, 0, polyID); err != nil {
		return err
	}
	if err := l.points.WriteAttribute(l.pointRow, 1, angle); err != nil {
		return err
	}
	l.pointRow++
	return nil
}

func (l *SliverLayers) Close() {
	l.lines.Close()
	l.points.Close()
}

// VertexLayers holds the short-segment outputs: a point layer for the
// flagged midpoints and the polygon statistics table.
type VertexLayers struct {
	points    *shp.Writer
	pointRow  int
	stats     *csv.Writer
	statsFile *os.File
	PointPath string
	StatsPath string
}

// NewVertexLayers creates QA_VertexFlags_<minDist> (dots in the
// distance swapped for underscores) and the QA_VertexStats table in the
// workspace directory. The length field is suffixed with the working
// unit abbreviation.
func NewVertexLayers(workspace string, minDist float64, unit spatial.Unit) (*VertexLayers, error) {
	distTag := strings.ReplaceAll(strconv.FormatFloat(minDist, 'f', -1, 64), ".", "_")

	pointPath := filepath.Join(workspace, fmt.Sprintf("QA_VertexFlags_%s.shp", distTag))
	points, err := shp.Create(pointPath, shp.POINT)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex flag layer: %w", err)
	}
	points.SetFields([]shp.Field{
		shp.NumberField("POLYID", 15),
		shp.FloatField("LENGTH_"+strings.ToUpper(unit.Abbrev()), 12, 3),
	})

	statsPath := filepath.Join(workspace, "QA_VertexStats.csv")
	statsFile, err := os.Create(statsPath)
	if err != nil {
		points.Close()
		return nil, fmt.Errorf("failed to create stats table: %w", err)
	}
	stats := csv.NewWriter(statsFile)
	if err := stats.Write([]string{"POLYID", "ACRES", "VERTICES", "AVI", "MIN_DIST", "MULTIPART"}); err != nil {
		points.Close()
		statsFile.Close()
		return nil, fmt.Errorf("failed to write stats header: %w", err)
	}

	return &VertexLayers{
		points:    points,
		stats:     stats,
		statsFile: statsFile,
		PointPath: pointPath,
		StatsPath: statsPath,
	}, nil
}

func (l *VertexLayers) WriteFlagPoint(p scan.Vertex, polyID int, length float64) error {
	l.points.Write(&shp.Point{X: p.X, Y: p.Y})
	if err := l.points.WriteAttribute(l.pointRow, 0, polyID); err != nil {
		return err
	}
	if err := l.points.WriteAttribute(l.pointRow, 1, length); err != nil {
		return err
	}
	l.pointRow++
	return nil
}

func (l *VertexLayers) WriteStats(s scan.PolygonStats) error {
	multipart := "0"
	if s.Multipart {
		multipart = "1"
	}
	return l.stats.Write([]string{
		strconv.Itoa(s.ID),
		strconv.FormatFloat(s.Acres, 'f', 1, 64),
		strconv.Itoa(s.Vertices),
		strconv.FormatFloat(s.AvgSegment, 'f', 1, 64),
		strconv.FormatFloat(s.MinSegment, 'f', 3, 64),
		multipart,
	})
}

func (l *VertexLayers) Close() error {
	l.points.Close()
	l.stats.Flush()
	if err := l.stats.Error(); err != nil {
		l.statsFile.Close()
		return err
	}
	return l.statsFile.Close()
}
