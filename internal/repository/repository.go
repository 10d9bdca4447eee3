package repository

import (
	"context"

	"github.com/hsgill/go-stubble-watch/internal/models"
)

// Filter narrows ListEvents. Empty slices place no constraint, matching
// the in-memory filter semantics.
type Filter struct {
	Districts []string
	Years     []int
	Limit     int
}

// EventRepository is the sqlite-backed event store written by
// stubble-ingest and optionally read by the dashboard as its event source.
type EventRepository interface {
	AddBatch(ctx context.Context, events []models.FireEvent) error
	ListEvents(ctx context.Context, f Filter) ([]models.FireEvent, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
