// Package geo holds the geometry primitives for district boundaries:
// point-in-polygon containment and axis-aligned bounding boxes. It is pure
// and stateless; everything operating on loaded data lives above it.
package geo

import (
	"errors"
	"math"
)

// ErrEmptyGeometry is returned when a bounding box is requested over
// geometry that contributes no coordinates.
var ErrEmptyGeometry = errors.New("geo: geometry has no coordinates")

// Point is one coordinate pair in GeoJSON order: longitude first.
type Point struct {
	Lon float64
	Lat float64
}

// Ring is an ordered, implicitly closed sequence of points.
type Ring []Point

// Polygon is a sequence of rings. Ring 0 is the outer boundary; the source
// data carries no holes, so inner rings are ignored by containment.
type Polygon []Ring

// MultiPolygon is a sequence of polygons.
type MultiPolygon []Polygon

// Contains reports whether pt lies inside the ring using the standard
// ray-casting test: a horizontal ray cast to positive longitude, counting
// edge crossings, odd means inside. An edge counts as crossed when the
// point's latitude is within (min, max] of the edge's latitude span, which
// keeps vertex-touching rays from double-counting.
//
// Points exactly on an edge may land on either side; this is attribution
// for map clicks, not exact topological containment. With the (min, max]
// rule, a point on the bottom edge of an axis-aligned square reports
// outside and one on the top edge inside.
//
// Degenerate rings (fewer than 3 points) are never containing.
func (r Ring) Contains(pt Point) bool {
	if len(r) < 3 {
		return false
	}

	inside := false
	n := len(r)
	for i := 0; i < n; i++ {
		p1 := r[i]
		p2 := r[(i+1)%n]

		minLat := math.Min(p1.Lat, p2.Lat)
		maxLat := math.Max(p1.Lat, p2.Lat)
		// Zero-height edges have an empty (min, max] span and never cross.
		if pt.Lat <= minLat || pt.Lat > maxLat {
			continue
		}
		if pt.Lon > math.Max(p1.Lon, p2.Lon) {
			continue
		}

		if p1.Lon == p2.Lon {
			// Vertical edge: the ray crosses it outright.
			inside = !inside
			continue
		}
		crossLon := (pt.Lat-p1.Lat)*(p2.Lon-p1.Lon)/(p2.Lat-p1.Lat) + p1.Lon
		if pt.Lon <= crossLon {
			inside = !inside
		}
	}
	return inside
}

// Contains tests the polygon's outer ring only.
func (p Polygon) Contains(pt Point) bool {
	if len(p) == 0 {
		return false
	}
	return p[0].Contains(pt)
}

// Contains reports whether any member polygon contains pt.
func (mp MultiPolygon) Contains(pt Point) bool {
	for _, p := range mp {
		if p.Contains(pt) {
			return true
		}
	}
	return false
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// BoundingBox flattens every ring of every polygon given and returns the
// coordinate extrema. It fails with ErrEmptyGeometry when no geometry
// contributes a coordinate, e.g. an empty selection upstream.
func BoundingBox(geoms ...MultiPolygon) (Bounds, error) {
	var b Bounds
	found := false
	for _, mp := range geoms {
		for _, poly := range mp {
			for _, ring := range poly {
				for _, pt := range ring {
					if !found {
						b = Bounds{MinLat: pt.Lat, MaxLat: pt.Lat, MinLon: pt.Lon, MaxLon: pt.Lon}
						found = true
						continue
					}
					b.MinLat = math.Min(b.MinLat, pt.Lat)
					b.MaxLat = math.Max(b.MaxLat, pt.Lat)
					b.MinLon = math.Min(b.MinLon, pt.Lon)
					b.MaxLon = math.Max(b.MaxLon, pt.Lon)
				}
			}
		}
	}
	if !found {
		return Bounds{}, ErrEmptyGeometry
	}
	return b, nil
}

// Pad widens the box by d degrees on every side, for map framing.
func (b Bounds) Pad(d float64) Bounds {
	return Bounds{
		MinLat: b.MinLat - d,
		MaxLat: b.MaxLat + d,
		MinLon: b.MinLon - d,
		MaxLon: b.MaxLon + d,
	}
}
