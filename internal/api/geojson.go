package api

import (
	"github.com/hsgill/go-stubble-watch/internal/models"
)

// PointFeatureCollection is the GeoJSON document served for fire events.
// Boundaries re-serve the raw loaded document instead; this shape only
// covers point features.
type PointFeatureCollection struct {
	Type     string         `json:"type"`
	Features []PointFeature `json:"features"`
}

type PointFeature struct {
	Type       string         `json:"type"`
	Geometry   PointGeometry  `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type PointGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toGeoJSON(events []models.FireEvent) PointFeatureCollection {
	features := make([]PointFeature, 0, len(events))

	for i := range events {
		e := &events[i]
		f := PointFeature{
			Type: "Feature",
			Geometry: PointGeometry{
				Type:        "Point",
				Coordinates: []float64{e.Longitude, e.Latitude},
			},
			Properties: map[string]any{
				"date":     e.Date.Format("2006-01-02"),
				"district": e.District,
			},
		}
		features = append(features, f)
	}

	return PointFeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
