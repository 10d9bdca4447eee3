package loader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsgill/go-stubble-watch/internal/geo"
	"github.com/hsgill/go-stubble-watch/internal/models"
	"github.com/hsgill/go-stubble-watch/internal/observability"
)

func testLoadFunc(calls *int, err error) LoadFunc {
	return func(ctx context.Context) (*Dataset, error) {
		*calls++
		if err != nil {
			return nil, err
		}
		events := []models.FireEvent{
			models.NewFireEvent(time.Date(2021, 10, 5, 0, 0, 0, 0, time.UTC), "Amritsar", 31.6, 74.8),
		}
		return buildDataset(geo.FeatureCollection{Type: "FeatureCollection"}, geo.NewBoundaryCollection(), events, Report{Rows: 1, Loaded: 1}), nil
	}
}

func TestCache_LoadsOnceWithinTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	calls := 0
	cache := NewCache(testLoadFunc(&calls, nil), time.Hour, clock, observability.NewMetricsForTesting())

	ctx := context.Background()
	first, err := cache.Get(ctx)
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)
	second, err := cache.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second request inside the TTL is a cache hit")
	assert.Same(t, first, second)
}

func TestCache_ReloadsAfterExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	calls := 0
	cache := NewCache(testLoadFunc(&calls, nil), time.Hour, clock, observability.NewMetricsForTesting())

	ctx := context.Background()
	first, err := cache.Get(ctx)
	require.NoError(t, err)

	clock.Advance(time.Hour + time.Minute)
	second, err := cache.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.NotSame(t, first, second)
	assert.True(t, second.LoadedAt.After(first.LoadedAt))
}

func TestCache_LoadFailureSurfaces(t *testing.T) {
	clock := clockwork.NewFakeClock()
	calls := 0
	loadErr := errors.New("boom")
	cache := NewCache(testLoadFunc(&calls, loadErr), time.Hour, clock, observability.NewMetricsForTesting())

	_, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, loadErr)

	// The failure is not cached; the next request retries.
	_, err = cache.Get(context.Background())
	assert.ErrorIs(t, err, loadErr)
	assert.Equal(t, 2, calls)
}

func TestBuildDataset(t *testing.T) {
	boundaries := geo.NewBoundaryCollection()
	require.NoError(t, boundaries.Add(geo.Boundary{Name: "Amritsar"}))

	events := []models.FireEvent{
		models.NewFireEvent(time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC), "Tarn Taran", 31.4, 74.9),
		models.NewFireEvent(time.Date(2021, 10, 5, 0, 0, 0, 0, time.UTC), "Amritsar", 31.6, 74.8),
		models.NewFireEvent(time.Date(2020, 11, 2, 0, 0, 0, 0, time.UTC), "", 30.9, 75.8),
	}
	ds := buildDataset(geo.FeatureCollection{}, boundaries, events, Report{Rows: 3, Loaded: 3})

	assert.Equal(t, []string{"Amritsar", "Tarn Taran", models.UnknownDistrict}, ds.Districts, "sorted with Unknown last")
	assert.Equal(t, []int{2020, 2021, 2022}, ds.Years)
	assert.Equal(t, []string{"Tarn Taran"}, ds.Unmatched, "Unknown never counts as unmatched")
}
