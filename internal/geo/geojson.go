package geo

import (
	"encoding/json"
	"fmt"
)

// FeatureCollection mirrors the GeoJSON document shape of the boundary file.
// The raw structure is kept around so the API can re-serve it verbatim for
// map rendering.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// Geometry defers coordinate decoding because the nesting depth depends on
// the geometry type.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Polygons decodes the geometry into a MultiPolygon regardless of whether
// the source is a Polygon or MultiPolygon.
func (g Geometry) Polygons() (MultiPolygon, error) {
	switch g.Type {
	case "Polygon":
		var raw [][][]float64
		if err := json.Unmarshal(g.Coordinates, &raw); err != nil {
			return nil, fmt.Errorf("decoding polygon coordinates: %w", err)
		}
		return MultiPolygon{polygonFromRaw(raw)}, nil
	case "MultiPolygon":
		var raw [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &raw); err != nil {
			return nil, fmt.Errorf("decoding multipolygon coordinates: %w", err)
		}
		mp := make(MultiPolygon, 0, len(raw))
		for _, p := range raw {
			mp = append(mp, polygonFromRaw(p))
		}
		return mp, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

func polygonFromRaw(raw [][][]float64) Polygon {
	poly := make(Polygon, 0, len(raw))
	for _, rawRing := range raw {
		ring := make(Ring, 0, len(rawRing))
		for _, pair := range rawRing {
			if len(pair) < 2 {
				continue
			}
			ring = append(ring, Point{Lon: pair[0], Lat: pair[1]})
		}
		poly = append(poly, ring)
	}
	return poly
}

// Boundary is one named district extent.
type Boundary struct {
	Name     string
	Polygons MultiPolygon
}

// BoundaryCollection holds boundaries in insertion order with name lookup.
// Built once at load time and immutable afterward; lookups and iteration
// are safe for concurrent readers.
type BoundaryCollection struct {
	records []Boundary
	index   map[string]int
}

func NewBoundaryCollection() *BoundaryCollection {
	return &BoundaryCollection{index: make(map[string]int)}
}

// Add appends a boundary, rejecting empty or duplicate names.
func (c *BoundaryCollection) Add(b Boundary) error {
	if b.Name == "" {
		return fmt.Errorf("boundary has empty name")
	}
	if _, ok := c.index[b.Name]; ok {
		return fmt.Errorf("duplicate boundary name %q", b.Name)
	}
	c.index[b.Name] = len(c.records)
	c.records = append(c.records, b)
	return nil
}

// Get returns the boundary with the given name.
func (c *BoundaryCollection) Get(name string) (Boundary, bool) {
	i, ok := c.index[name]
	if !ok {
		return Boundary{}, false
	}
	return c.records[i], true
}

// Records returns the boundaries in insertion order. Callers must not
// mutate the returned slice.
func (c *BoundaryCollection) Records() []Boundary {
	return c.records
}

func (c *BoundaryCollection) Len() int {
	return len(c.records)
}
