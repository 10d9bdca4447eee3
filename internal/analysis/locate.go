package analysis

import (
	"github.com/hsgill/go-stubble-watch/internal/geo"
	"github.com/hsgill/go-stubble-watch/internal/models"
)

// Locate maps a coordinate to the district whose boundary contains it,
// checking boundaries in collection (insertion) order and returning the
// first match. Records named "Unknown" or with an empty name are skipped.
// District polygons should not overlap, but if they do the
// earliest-inserted boundary wins.
//
// ok is false when the coordinate falls outside every boundary, e.g. a
// click just past the state border. That is a valid outcome, not an error;
// callers treat it as a no-op.
func Locate(c models.Coordinate, boundaries *geo.BoundaryCollection) (district string, ok bool) {
	pt := geo.Point{Lon: c.Longitude, Lat: c.Latitude}
	for _, b := range boundaries.Records() {
		if b.Name == "" || b.Name == models.UnknownDistrict {
			continue
		}
		if b.Polygons.Contains(pt) {
			return b.Name, true
		}
	}
	return "", false
}
