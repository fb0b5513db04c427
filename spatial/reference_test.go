package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ProjectedInputPassesThrough(t *testing.T) {
	in := Ref{
		Name:       "NAD_1983_StatePlane_California_III",
		Datum:      "D_North_American_1983",
		Projected:  true,
		LinearUnit: "Foot_US",
	}
	w, err := Normalize(in, nil)
	require.NoError(t, err)
	assert.Equal(t, in.Name, w.Ref.Name)
	assert.Equal(t, Feet, w.Unit)
	assert.Equal(t, "ft", w.Abbrev)
	assert.Nil(t, w.Transform, "no reprojection when the input is already projected")
}

func TestNormalize_GeographicFallsBackToWebMercator(t *testing.T) {
	w, err := Normalize(Known["GCS_WGS_1984"], nil)
	require.NoError(t, err)
	assert.Equal(t, WebMercator.Name, w.Ref.Name)
	assert.Equal(t, Meters, w.Unit)
	require.NotNil(t, w.Transform)

	x, y, err := w.Transform(0, 0)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(x) || math.IsInf(x, 0))
	assert.False(t, math.IsNaN(y) || math.IsInf(y, 0))
}

func TestNormalize_NAD83GeographicFallsBack(t *testing.T) {
	w, err := Normalize(Known["GCS_North_American_1983"], nil)
	require.NoError(t, err)
	assert.Equal(t, WebMercator.Name, w.Ref.Name)
	require.NotNil(t, w.Transform)
}

func TestNormalize_UnsupportedDatum(t *testing.T) {
	in := Ref{
		Name:       "GCS_European_1950",
		Datum:      "D_European_1950",
		Projected:  false,
		LinearUnit: "Degree",
	}
	_, err := Normalize(in, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNormalize_DatumMismatchRefused(t *testing.T) {
	in := Known["GCS_North_American_1983"]
	out := WebMercator // D_WGS_1984
	_, err := Normalize(in, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "datums do not match")
}

func TestNormalize_ProjectedOutputBuildsTransform(t *testing.T) {
	in := Known["GCS_WGS_1984"]
	out := WebMercator
	w, err := Normalize(in, &out)
	require.NoError(t, err)
	assert.Equal(t, WebMercator.Name, w.Ref.Name)
	require.NotNil(t, w.Transform)
}

func TestCanonicalUnit(t *testing.T) {
	cases := []struct {
		name string
		want Unit
		ok   bool
	}{
		{"Meter", Meters, true},
		{"meter", Meters, true},
		{"Meters", Meters, true},
		{"Foot", Feet, true},
		{"Foot_US", Feet, true},
		{"feet", Feet, true},
		{"Degree", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, err := CanonicalUnit(c.name)
		if c.ok {
			require.NoError(t, err, c.name)
			assert.Equal(t, c.want, got, c.name)
		} else {
			require.Error(t, err, c.name)
			assert.ErrorIs(t, err, ErrConfiguration, c.name)
		}
	}
}

func TestAcres(t *testing.T) {
	got, err := Acres(4046.85643, Meters)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)

	got, err = Acres(43560.0, Feet)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)

	_, err = Acres(100, Unit("chains"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}
