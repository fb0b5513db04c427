// Package spatial decides the coordinate reference and linear unit that
// all measurements in a QA run are taken in.
package spatial

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ctessum/geom/proj"
)

// ErrConfiguration is the base of every normalizer failure. Callers test
// with errors.Is and abort before any scanning starts.
var ErrConfiguration = errors.New("unsupported configuration")

// Ref describes a coordinate reference as reported by the host metadata:
// a name, the name of its geographic datum, whether it is projected, and
// its linear unit. Proj4 carries the definition used when an actual
// transform has to be built for the Web Mercator fallback.
type Ref struct {
	Name       string `yaml:"name"`
	Datum      string `yaml:"datum"`
	Projected  bool   `yaml:"projected"`
	LinearUnit string `yaml:"linear_unit"`
	Proj4      string `yaml:"proj4"`
}

// Unit is a canonical linear unit. Only meters and feet are recognized.
type Unit string

const (
	Meters Unit = "meters"
	Feet   Unit = "feet"
)

func (u Unit) Abbrev() string {
	if u == Feet {
		return "ft"
	}
	return "m"
}

// WebMercator is the fixed fallback projection used when the chosen
// reference is geographic. Matches EPSG 3857.
var WebMercator = Ref{
	Name:       "WGS_1984_Web_Mercator_Auxiliary_Sphere",
	Datum:      "D_WGS_1984",
	Projected:  true,
	LinearUnit: "Meter",
	Proj4:      "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +nadgrids=@null +wgs84=0,0,0 +no_defs",
}

// Known holds the references the tools can name without a config file.
var Known = map[string]Ref{
	"GCS_WGS_1984": {
		Name:       "GCS_WGS_1984",
		Datum:      "D_WGS_1984",
		Projected:  false,
		LinearUnit: "Degree",
		Proj4:      "+proj=longlat +datum=WGS84 +no_defs",
	},
	"GCS_North_American_1983": {
		Name:       "GCS_North_American_1983",
		Datum:      "D_North_American_1983",
		Projected:  false,
		LinearUnit: "Degree",
		Proj4:      "+proj=longlat +datum=NAD83 +no_defs",
	},
	WebMercator.Name: WebMercator,
}

// datums for which the Web Mercator substitution is permitted
var fallbackDatums = map[string]bool{
	"D_North_American_1983": true,
	"D_WGS_1984":            true,
}

// Working is the single spatial configuration of a run. It is built once
// by Normalize and never changes mid-run; every component that measures
// receives the same instance.
type Working struct {
	Ref    Ref
	Unit   Unit
	Abbrev string

	// Transform projects source coordinates into Ref. Nil when the
	// source already delivers coordinates in the working reference.
	Transform proj.Transformer
}

// Normalize picks the working reference for a run. With no requested
// output reference the input reference is used. Datum changes are
// refused outright. A geographic choice is substituted with Web Mercator
// when the input datum permits it, otherwise the run cannot proceed.
func Normalize(input Ref, output *Ref) (*Working, error) {
	chosen := input
	if output != nil {
		if output.Datum != input.Datum {
			return nil, fmt.Errorf("%w: input and output datums do not match (%s vs %s)",
				ErrConfiguration, input.Datum, output.Datum)
		}
		chosen = *output
	}

	var transform proj.Transformer
	if !chosen.Projected {
		if !fallbackDatums[input.Datum] {
			return nil, fmt.Errorf("%w: unable to handle output coordinate system %s (%s)",
				ErrConfiguration, chosen.Name, chosen.Datum)
		}
		t, err := newTransform(input, WebMercator)
		if err != nil {
			return nil, err
		}
		chosen = WebMercator
		transform = t
	} else if chosen.Name != input.Name {
		t, err := newTransform(input, chosen)
		if err != nil {
			return nil, err
		}
		transform = t
	}

	unit, err := CanonicalUnit(chosen.LinearUnit)
	if err != nil {
		return nil, err
	}

	return &Working{
		Ref:       chosen,
		Unit:      unit,
		Abbrev:    unit.Abbrev(),
		Transform: transform,
	}, nil
}

func newTransform(from, to Ref) (proj.Transformer, error) {
	if from.Proj4 == "" || to.Proj4 == "" {
		return nil, fmt.Errorf("%w: no projection definition for %s", ErrConfiguration, from.Name)
	}
	src, err := proj.Parse(from.Proj4)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrConfiguration, from.Name, err)
	}
	dst, err := proj.Parse(to.Proj4)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrConfiguration, to.Name, err)
	}
	t, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("%w: building transform %s -> %s: %v", ErrConfiguration, from.Name, to.Name, err)
	}
	return t, nil
}

// CanonicalUnit folds a host linear unit name onto meters or feet.
// "Meter", "meter" and "meters" are meters; "Foot", "Foot_US" and their
// plural forms are feet. Anything else is refused.
func CanonicalUnit(name string) (Unit, error) {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "foot", "feet")
	s = strings.ReplaceAll(s, "meter", "meters")

	switch {
	case strings.HasPrefix(s, "meters"):
		return Meters, nil
	case strings.HasPrefix(s, "feet"):
		return Feet, nil
	}
	return "", fmt.Errorf("%w: unrecognized linear unit %q", ErrConfiguration, name)
}

// Acres converts an area in the working unit to acres.
func Acres(area float64, unit Unit) (float64, error) {
	switch unit {
	case Meters:
		return area / 4046.85643, nil
	case Feet:
		return area / 43560.0, nil
	}
	return 0, fmt.Errorf("%w: failed to calculate acre value using unit %q", ErrConfiguration, string(unit))
}
