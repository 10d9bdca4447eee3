package loader

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/hsgill/go-stubble-watch/internal/geo"
	"github.com/hsgill/go-stubble-watch/internal/models"
	"github.com/hsgill/go-stubble-watch/internal/observability"
)

// Dataset is the canonical load product: the boundary table, the raw
// boundary document for map rendering, and the normalized event table.
// Immutable once built; shared by every request within a TTL window.
type Dataset struct {
	Raw        geo.FeatureCollection
	Boundaries *geo.BoundaryCollection
	Events     []models.FireEvent
	Report     Report

	// Districts is sorted with "Unknown" moved last; Years ascending.
	Districts []string
	Years     []int

	// Unmatched lists event district names with no boundary of the same
	// name. Exact string match only; these events still filter and
	// aggregate normally but cannot be highlighted on the map.
	Unmatched []string

	LoadedAt time.Time
}

// LoadFunc produces a fresh dataset. LoadedAt is stamped by the cache.
type LoadFunc func(ctx context.Context) (*Dataset, error)

// DatasetLoader combines the boundary file with an event source into one
// LoadFunc. A load with zero surviving events fails with ErrNoEvents.
func DatasetLoader(boundaryPath string, source EventSource) LoadFunc {
	return func(ctx context.Context) (*Dataset, error) {
		raw, boundaries, err := LoadBoundariesFile(boundaryPath)
		if err != nil {
			return nil, fmt.Errorf("loading boundaries: %w", err)
		}
		events, report, err := source(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading events: %w", err)
		}
		if len(events) == 0 {
			return nil, ErrNoEvents
		}
		return buildDataset(raw, boundaries, events, report), nil
	}
}

func buildDataset(raw geo.FeatureCollection, boundaries *geo.BoundaryCollection, events []models.FireEvent, report Report) *Dataset {
	districtSet := map[string]struct{}{}
	yearSet := map[int]struct{}{}
	for i := range events {
		districtSet[events[i].District] = struct{}{}
		yearSet[events[i].Year] = struct{}{}
	}

	districts := make([]string, 0, len(districtSet))
	hasUnknown := false
	for d := range districtSet {
		if d == models.UnknownDistrict {
			hasUnknown = true
			continue
		}
		districts = append(districts, d)
	}
	sort.Strings(districts)
	if hasUnknown {
		districts = append(districts, models.UnknownDistrict)
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	var unmatched []string
	for _, d := range districts {
		if d == models.UnknownDistrict {
			continue
		}
		if _, ok := boundaries.Get(d); !ok {
			unmatched = append(unmatched, d)
			slog.Warn("event district has no boundary", "district", d)
		}
	}

	return &Dataset{
		Raw:        raw,
		Boundaries: boundaries,
		Events:     events,
		Report:     report,
		Districts:  districts,
		Years:      years,
		Unmatched:  unmatched,
	}
}

// Cache holds the loaded dataset for a bounded time-to-live. An expired
// entry is reloaded synchronously by the request that finds it stale; the
// dataset reference is swapped under a lock, so concurrent readers always
// see a complete dataset. There is no background refresh.
type Cache struct {
	load    LoadFunc
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu      sync.RWMutex
	current *Dataset
}

// NewCache wires a cache around load. A nil clock means real time; metrics
// must be non-nil.
func NewCache(load LoadFunc, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		load:    load,
		ttl:     ttl,
		clock:   clock,
		metrics: metrics,
	}
}

// Get returns the cached dataset, reloading when missing or expired. A
// failed reload leaves any previous dataset untouched and returns the
// error, so the caller can surface a retryable failure.
func (c *Cache) Get(ctx context.Context) (*Dataset, error) {
	c.mu.RLock()
	d := c.current
	c.mu.RUnlock()
	if c.fresh(d) {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return d, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another request may have reloaded while we waited on the lock.
	if c.fresh(c.current) {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return c.current, nil
	}

	c.metrics.CacheLookups.WithLabelValues("miss").Inc()
	start := c.clock.Now()
	fresh, err := c.load(ctx)
	if err != nil {
		c.metrics.DatasetReloads.WithLabelValues("error").Inc()
		return nil, err
	}
	fresh.LoadedAt = c.clock.Now()

	c.metrics.DatasetReloads.WithLabelValues("success").Inc()
	c.metrics.LoadDuration.Observe(fresh.LoadedAt.Sub(start).Seconds())
	c.metrics.EventsLoaded.Set(float64(len(fresh.Events)))
	c.metrics.UnmatchedDistricts.Set(float64(len(fresh.Unmatched)))
	c.metrics.RowsRejected.WithLabelValues("bad_date").Add(float64(fresh.Report.RejectedDate))
	c.metrics.RowsRejected.WithLabelValues("missing_coord").Add(float64(fresh.Report.RejectedCoord))

	slog.Info("dataset loaded",
		"events", len(fresh.Events),
		"districts", len(fresh.Districts),
		"rejected_date", fresh.Report.RejectedDate,
		"rejected_coord", fresh.Report.RejectedCoord,
		"unmatched_districts", len(fresh.Unmatched))

	c.current = fresh
	return fresh, nil
}

func (c *Cache) fresh(d *Dataset) bool {
	return d != nil && c.clock.Now().Sub(d.LoadedAt) < c.ttl
}
