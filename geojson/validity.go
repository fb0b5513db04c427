package geojson

import (
	"fmt"

	"github.com/twpayne/go-geos"
)

// ValidityIssue reports one polygon the GEOS validity check rejected.
type ValidityIssue struct {
	ID     int
	Reason string
}

// CheckValidity runs every non-null geometry through GEOS validation
// and reports the invalid ones with their reasons. The check is
// advisory: callers surface the issues and let the scan's own geometry
// gate decide the run's fate.
func CheckValidity(fc *FeatureCollection) []ValidityIssue {
	var issues []ValidityIssue

	for i, f := range fc.Features {
		if len(f.Geometry) == 0 || string(f.Geometry) == "null" {
			continue
		}

		g, err := geos.NewGeomFromGeoJSON(string(f.Geometry))
		if err != nil {
			issues = append(issues, ValidityIssue{
				ID:     featureID(f, i),
				Reason: fmt.Sprintf("unparseable geometry: %v", err),
			})
			continue
		}

		if !g.IsValid() {
			issues = append(issues, ValidityIssue{
				ID:     featureID(f, i),
				Reason: g.IsValidReason(),
			})
		}
		g.Destroy()
	}
	return issues
}
