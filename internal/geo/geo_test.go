package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareRing is a 2x2 axis-aligned square with corner at the origin,
// coordinates in (lon, lat) order.
var squareRing = Ring{{0, 0}, {0, 2}, {2, 2}, {2, 0}}

func TestRingContains(t *testing.T) {
	t.Run("interior point", func(t *testing.T) {
		assert.True(t, squareRing.Contains(Point{Lon: 1, Lat: 1}))
	})

	t.Run("exterior point", func(t *testing.T) {
		assert.False(t, squareRing.Contains(Point{Lon: 3, Lat: 3}))
	})

	t.Run("point left of polygon at interior latitude", func(t *testing.T) {
		assert.False(t, squareRing.Contains(Point{Lon: -1, Lat: 1}))
	})

	// Edge behavior is a documented consequence of the (min, max] crossing
	// rule, pinned here so it cannot drift silently: bottom edge excluded,
	// top edge included.
	t.Run("bottom edge point", func(t *testing.T) {
		assert.False(t, squareRing.Contains(Point{Lon: 1, Lat: 0}))
	})
	t.Run("top edge point", func(t *testing.T) {
		assert.True(t, squareRing.Contains(Point{Lon: 1, Lat: 2}))
	})

	t.Run("degenerate ring", func(t *testing.T) {
		assert.False(t, Ring{}.Contains(Point{Lon: 1, Lat: 1}))
		assert.False(t, Ring{{0, 0}, {2, 2}}.Contains(Point{Lon: 1, Lat: 1}))
	})

	t.Run("concave ring", func(t *testing.T) {
		// A "U" shape: the notch between the arms is outside.
		u := Ring{{0, 0}, {0, 3}, {1, 3}, {1, 1}, {2, 1}, {2, 3}, {3, 3}, {3, 0}}
		assert.True(t, u.Contains(Point{Lon: 0.5, Lat: 2}))
		assert.False(t, u.Contains(Point{Lon: 1.5, Lat: 2}))
		assert.True(t, u.Contains(Point{Lon: 1.5, Lat: 0.5}))
	})
}

func TestPolygonContains(t *testing.T) {
	poly := Polygon{squareRing}
	assert.True(t, poly.Contains(Point{Lon: 1, Lat: 1}))
	assert.False(t, Polygon{}.Contains(Point{Lon: 1, Lat: 1}))

	// Only the outer ring participates; an inner ring is ignored.
	withInner := Polygon{squareRing, {{0.5, 0.5}, {0.5, 1.5}, {1.5, 1.5}, {1.5, 0.5}}}
	assert.True(t, withInner.Contains(Point{Lon: 1, Lat: 1}))
}

func TestMultiPolygonContains(t *testing.T) {
	far := Ring{{10, 10}, {10, 12}, {12, 12}, {12, 10}}
	mp := MultiPolygon{{far}, {squareRing}}
	assert.True(t, mp.Contains(Point{Lon: 1, Lat: 1}))
	assert.True(t, mp.Contains(Point{Lon: 11, Lat: 11}))
	assert.False(t, mp.Contains(Point{Lon: 5, Lat: 5}))
}

func TestBoundingBox(t *testing.T) {
	t.Run("single polygon", func(t *testing.T) {
		b, err := BoundingBox(MultiPolygon{{squareRing}})
		require.NoError(t, err)
		assert.Equal(t, Bounds{MinLat: 0, MaxLat: 2, MinLon: 0, MaxLon: 2}, b)
	})

	t.Run("spans multiple geometries", func(t *testing.T) {
		far := MultiPolygon{{{{10, 10}, {10, 12}, {12, 12}, {12, 10}}}}
		b, err := BoundingBox(MultiPolygon{{squareRing}}, far)
		require.NoError(t, err)
		assert.Equal(t, Bounds{MinLat: 0, MaxLat: 12, MinLon: 0, MaxLon: 12}, b)
	})

	t.Run("empty geometry", func(t *testing.T) {
		_, err := BoundingBox()
		assert.ErrorIs(t, err, ErrEmptyGeometry)

		_, err = BoundingBox(MultiPolygon{})
		assert.ErrorIs(t, err, ErrEmptyGeometry)
	})

	t.Run("pad", func(t *testing.T) {
		b := Bounds{MinLat: 1, MaxLat: 2, MinLon: 3, MaxLon: 4}.Pad(0.05)
		assert.InDelta(t, 0.95, b.MinLat, 1e-9)
		assert.InDelta(t, 2.05, b.MaxLat, 1e-9)
		assert.InDelta(t, 2.95, b.MinLon, 1e-9)
		assert.InDelta(t, 4.05, b.MaxLon, 1e-9)
	})
}

func TestGeometryPolygons(t *testing.T) {
	t.Run("polygon", func(t *testing.T) {
		g := Geometry{Type: "Polygon", Coordinates: json.RawMessage(`[[[74.8,31.6],[74.9,31.6],[74.9,31.7],[74.8,31.7]]]`)}
		mp, err := g.Polygons()
		require.NoError(t, err)
		require.Len(t, mp, 1)
		require.Len(t, mp[0], 1)
		assert.Equal(t, Point{Lon: 74.8, Lat: 31.6}, mp[0][0][0])
	})

	t.Run("multipolygon", func(t *testing.T) {
		g := Geometry{Type: "MultiPolygon", Coordinates: json.RawMessage(`[[[[0,0],[1,0],[1,1]]],[[[5,5],[6,5],[6,6]]]]`)}
		mp, err := g.Polygons()
		require.NoError(t, err)
		assert.Len(t, mp, 2)
	})

	t.Run("unsupported type", func(t *testing.T) {
		g := Geometry{Type: "Point", Coordinates: json.RawMessage(`[74.8,31.6]`)}
		_, err := g.Polygons()
		assert.Error(t, err)
	})

	t.Run("malformed coordinates", func(t *testing.T) {
		g := Geometry{Type: "Polygon", Coordinates: json.RawMessage(`"nope"`)}
		_, err := g.Polygons()
		assert.Error(t, err)
	})
}

func TestBoundaryCollection(t *testing.T) {
	c := NewBoundaryCollection()
	require.NoError(t, c.Add(Boundary{Name: "Amritsar", Polygons: MultiPolygon{{squareRing}}}))
	require.NoError(t, c.Add(Boundary{Name: "Ludhiana"}))

	assert.Error(t, c.Add(Boundary{Name: "Amritsar"}), "duplicate names rejected")
	assert.Error(t, c.Add(Boundary{Name: ""}), "empty names rejected")

	b, ok := c.Get("Amritsar")
	assert.True(t, ok)
	assert.Equal(t, "Amritsar", b.Name)

	_, ok = c.Get("Patiala")
	assert.False(t, ok)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "Amritsar", c.Records()[0].Name, "insertion order preserved")
}
