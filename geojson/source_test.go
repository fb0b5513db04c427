package geojson

import (
	"io"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gisops/go-polygon-qa/scan"
)

const squareWithHole = `{
	"type": "FeatureCollection",
	"features": [{
		"type": "Feature",
		"properties": {"OBJECTID": 7},
		"geometry": {
			"type": "Polygon",
			"coordinates": [
				[[0,0],[4,0],[4,4],[0,4],[0,0]],
				[[1,1],[2,1],[2,2],[1,2],[1,1]]
			]
		}
	}]
}`

func TestNewSource_SquareWithHole(t *testing.T) {
	src, err := NewSource([]byte(squareWithHole), nil)
	require.NoError(t, err)
	require.Equal(t, 1, src.Count())

	f, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, 7, f.ID)
	require.Len(t, f.Parts, 1)

	stream := f.Parts[0].Stream
	require.Len(t, stream, 11, "closed outer ring, break sentinel, closed hole ring")
	assert.Equal(t, scan.Vertex{X: 0, Y: 0}, stream[0])
	assert.Equal(t, scan.Vertex{X: 0, Y: 0}, stream[4], "outer ring stays closed")
	assert.True(t, stream[5].IsBreak(), "hole separated by the sentinel")
	assert.Equal(t, scan.Vertex{X: 1, Y: 1}, stream[6])

	assert.InDelta(t, 15.0, f.Area, 1e-9, "hole area excluded")
	assert.InDelta(t, 20.0, f.Perimeter, 1e-9, "hole boundary included")
	assert.Equal(t, 10, f.VertexCount, "all ring vertices counted")

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestNewSource_NullGeometry(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"OBJECTID":3},"geometry":null}
	]}`
	src, err := NewSource([]byte(doc), nil)
	require.NoError(t, err)

	f, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, 3, f.ID)
	assert.Nil(t, f.Parts, "null geometry carries no parts at all")
}

func TestNewSource_MultiPolygon(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[{
		"type":"Feature","properties":{"OBJECTID":2},
		"geometry":{"type":"MultiPolygon","coordinates":[
			[[[0,0],[1,0],[1,1],[0,1],[0,0]]],
			[[[10,10],[11,10],[11,11],[10,11],[10,10]]]
		]}
	}]}`
	src, err := NewSource([]byte(doc), nil)
	require.NoError(t, err)

	f, err := src.Next()
	require.NoError(t, err)
	require.Len(t, f.Parts, 2)
	assert.InDelta(t, 2.0, f.Area, 1e-9)
	assert.Equal(t, 10, f.VertexCount)
}

func TestNewSource_NonPolygonGeometry(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[{
		"type":"Feature","properties":{"OBJECTID":5},
		"geometry":{"type":"Point","coordinates":[1,2]}
	}]}`
	src, err := NewSource([]byte(doc), nil)
	require.NoError(t, err)

	f, err := src.Next()
	require.NoError(t, err)
	require.NotNil(t, f.Parts)
	assert.Empty(t, f.Parts, "non-polygon geometry decodes to zero parts")
}

func TestNewSource_IDFallsBackToIndex(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
		{"type":"Feature","properties":{"name":"x"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}
	]}`
	src, err := NewSource([]byte(doc), nil)
	require.NoError(t, err)

	f, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, f.ID)
	f, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, f.ID)
}

func TestNewSource_OrderPreserved(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[`
	for i := 0; i < 40; i++ {
		if i > 0 {
			doc += ","
		}
		doc += `{"type":"Feature","properties":{"OBJECTID":` +
			strconv.Itoa(100+i) + `},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}`
	}
	doc += `]}`

	src, err := NewSource([]byte(doc), nil)
	require.NoError(t, err)
	require.Equal(t, 40, src.Count())

	for i := 0; i < 40; i++ {
		f, err := src.Next()
		require.NoError(t, err)
		assert.Equal(t, 100+i, f.ID, "decode keeps the delivery order")
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"type": "FeatureCollection", "features": [`))
	require.Error(t, err)
}
