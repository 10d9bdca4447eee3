package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hsgill/go-stubble-watch/internal/analysis"
	"github.com/hsgill/go-stubble-watch/internal/geo"
	"github.com/hsgill/go-stubble-watch/internal/loader"
	"github.com/hsgill/go-stubble-watch/internal/models"
	"github.com/hsgill/go-stubble-watch/internal/observability"
)

// DatasetProvider hands out the current cached dataset, reloading it when
// the TTL has lapsed. *loader.Cache implements it.
type DatasetProvider interface {
	Get(ctx context.Context) (*loader.Dataset, error)
}

type Handler struct {
	data    DatasetProvider
	metrics *observability.Metrics
}

func NewHandler(data DatasetProvider, metrics *observability.Metrics) *Handler {
	return &Handler{
		data:    data,
		metrics: metrics,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/api/districts", h.getDistricts)
	r.GET("/api/years", h.getYears)
	r.GET("/api/boundaries", h.getBoundaries)
	r.GET("/api/events", h.getEvents)
	r.GET("/api/stats", h.getStats)
	r.GET("/api/locate", h.locate)
	r.GET("/api/bounds", h.getBounds)
}

// dataset resolves the cached dataset or writes the retryable 503 that the
// frontend renders as a "reload to retry" error state.
func (h *Handler) dataset(c *gin.Context) (*loader.Dataset, bool) {
	ds, err := h.data.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "failed to load dataset",
		})
		return nil, false
	}
	return ds, true
}

// parseSelection reads the districts/years query parameters. Absent or
// empty parameters leave that dimension unconstrained.
func parseSelection(c *gin.Context) models.Selection {
	var districts []string
	if raw := c.Query("districts"); raw != "" {
		for _, d := range strings.Split(raw, ",") {
			if d = strings.TrimSpace(d); d != "" {
				districts = append(districts, d)
			}
		}
	}
	var years []int
	if raw := c.Query("years"); raw != "" {
		for _, ys := range strings.Split(raw, ",") {
			if y, err := strconv.Atoi(strings.TrimSpace(ys)); err == nil {
				years = append(years, y)
			}
		}
	}
	return models.NewSelection(districts, years)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) getDistricts(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"districts": ds.Districts})
}

func (h *Handler) getYears(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": ds.Years})
}

func (h *Handler) getBoundaries(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, ds.Raw)
}

func (h *Handler) getEvents(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	filtered := analysis.Filter(ds.Events, parseSelection(c))
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, toGeoJSON(filtered))
}

type statsResponse struct {
	analysis.Result
	Summary summary `json:"summary"`
}

type summary struct {
	Districts          int           `json:"districts"`
	TotalEvents        int           `json:"total_events"`
	FilteredEvents     int           `json:"filtered_events"`
	FirstYear          int           `json:"first_year"`
	LastYear           int           `json:"last_year"`
	LoadReport         loader.Report `json:"load_report"`
	UnmatchedDistricts []string      `json:"unmatched_districts,omitempty"`
}

func (h *Handler) getStats(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	filtered := analysis.Filter(ds.Events, parseSelection(c))

	resp := statsResponse{
		Result: analysis.Aggregate(filtered),
		Summary: summary{
			Districts:          len(ds.Districts),
			TotalEvents:        len(ds.Events),
			FilteredEvents:     len(filtered),
			LoadReport:         ds.Report,
			UnmatchedDistricts: ds.Unmatched,
		},
	}
	if len(ds.Years) > 0 {
		resp.Summary.FirstYear = ds.Years[0]
		resp.Summary.LastYear = ds.Years[len(ds.Years)-1]
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) locate(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required"})
		return
	}

	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	district, found := analysis.Locate(models.Coordinate{Latitude: lat, Longitude: lon}, ds.Boundaries)
	if !found {
		// Outside every boundary: a no-op for the client, not a failure.
		h.metrics.LocateRequests.WithLabelValues("no_match").Inc()
		c.JSON(http.StatusNotFound, gin.H{"district": nil})
		return
	}
	h.metrics.LocateRequests.WithLabelValues("matched").Inc()
	c.JSON(http.StatusOK, gin.H{"district": district})
}

func (h *Handler) getBounds(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	sel := parseSelection(c)
	names := make([]string, 0, len(sel.Districts))
	for d := range sel.Districts {
		names = append(names, d)
	}

	bounds, err := analysis.SelectionBounds(names, ds.Boundaries)
	if errors.Is(err, geo.ErrEmptyGeometry) {
		// No geometry to frame; the client keeps its current view.
		c.JSON(http.StatusNotFound, gin.H{"error": "no geometry for selection"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute bounds"})
		return
	}
	c.JSON(http.StatusOK, bounds)
}
