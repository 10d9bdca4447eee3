// stubble-ingest loads the fire event CSV once and bulk-inserts the
// normalized rows into the sqlite store, so the dashboard can run with
// EVENTS_SOURCE=sqlite instead of re-parsing the CSV on every cache miss.
package main

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/joho/godotenv"

	"github.com/hsgill/go-stubble-watch/internal/config"
	"github.com/hsgill/go-stubble-watch/internal/loader"
	"github.com/hsgill/go-stubble-watch/internal/logging"
	"github.com/hsgill/go-stubble-watch/internal/repository"
	"github.com/hsgill/go-stubble-watch/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	ctx := context.Background()

	events, report, err := loader.CSVEventSource(cfg.Data.EventsPath)(ctx)
	if err != nil {
		logging.Fatalf("Failed to load events: %v", err)
	}
	if len(events) == 0 {
		logging.Fatalf("No usable events in %s", cfg.Data.EventsPath)
	}
	slog.Info("events parsed",
		"rows", report.Rows,
		"loaded", report.Loaded,
		"rejected_date", report.RejectedDate,
		"rejected_coord", report.RejectedCoord)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to open event store: %v", err)
	}
	defer db.Close()

	var failed atomic.Int64
	processor := func(ctx context.Context, batch worker.Batch) error {
		if err := db.AddBatch(ctx, batch); err != nil {
			slog.Error("batch insert failed", "size", len(batch), "error", err)
			failed.Add(int64(len(batch)))
			return err
		}
		return nil
	}

	pool := worker.NewPool(cfg.Ingest.Workers, cfg.Ingest.Workers*2, processor)
	pool.Start(ctx)

	for start := 0; start < len(events); start += cfg.Ingest.BatchSize {
		end := min(start+cfg.Ingest.BatchSize, len(events))
		pool.Submit(worker.Batch(events[start:end]))
	}
	pool.Stop()

	stored, err := db.Count(ctx)
	if err != nil {
		logging.Fatalf("Failed to count stored events: %v", err)
	}

	slog.Info("ingest complete", "stored", stored, "failed", failed.Load(), "db", cfg.DB.Path)
}
