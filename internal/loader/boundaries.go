// Package loader reads the two backing files - the district boundary
// GeoJSON and the fire event CSV - into the canonical in-memory dataset,
// and caches the result for a bounded time-to-live.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hsgill/go-stubble-watch/internal/geo"
)

// LoadBoundaries parses a FeatureCollection document. Each feature must
// carry a string `district` property, which becomes the boundary name. The
// raw structure is returned alongside the typed collection so it can be
// re-served to the map layer unchanged.
func LoadBoundaries(r io.Reader) (geo.FeatureCollection, *geo.BoundaryCollection, error) {
	var fc geo.FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return geo.FeatureCollection{}, nil, fmt.Errorf("decoding boundary document: %w", err)
	}

	boundaries := geo.NewBoundaryCollection()
	for i, f := range fc.Features {
		name, ok := f.Properties["district"].(string)
		if !ok || name == "" {
			return geo.FeatureCollection{}, nil, fmt.Errorf("feature %d: missing district property", i)
		}
		polys, err := f.Geometry.Polygons()
		if err != nil {
			return geo.FeatureCollection{}, nil, fmt.Errorf("feature %d (%s): %w", i, name, err)
		}
		if err := boundaries.Add(geo.Boundary{Name: name, Polygons: polys}); err != nil {
			return geo.FeatureCollection{}, nil, fmt.Errorf("feature %d: %w", i, err)
		}
	}

	return fc, boundaries, nil
}

// LoadBoundariesFile is LoadBoundaries over a file path.
func LoadBoundariesFile(path string) (geo.FeatureCollection, *geo.BoundaryCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return geo.FeatureCollection{}, nil, fmt.Errorf("opening boundary file: %w", err)
	}
	defer f.Close()
	return LoadBoundaries(f)
}
