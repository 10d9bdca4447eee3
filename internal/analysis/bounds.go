package analysis

import (
	"github.com/hsgill/go-stubble-watch/internal/geo"
)

// BoundsPadding widens the zoom-to-selection box so district borders do not
// touch the map edge.
const BoundsPadding = 0.05

// SelectionBounds returns the padded bounding box covering the named
// districts' geometry, for zoom-to-selection framing. Names without a
// boundary are skipped; if nothing contributes geometry the underlying
// geo.ErrEmptyGeometry propagates and the caller leaves the current view
// unchanged.
func SelectionBounds(names []string, boundaries *geo.BoundaryCollection) (geo.Bounds, error) {
	geoms := make([]geo.MultiPolygon, 0, len(names))
	for _, n := range names {
		if b, ok := boundaries.Get(n); ok {
			geoms = append(geoms, b.Polygons)
		}
	}
	b, err := geo.BoundingBox(geoms...)
	if err != nil {
		return geo.Bounds{}, err
	}
	return b.Pad(BoundsPadding), nil
}
