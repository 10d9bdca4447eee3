package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hsgill/go-stubble-watch/internal/models"
)

// ErrNoEvents marks a load that produced zero usable rows. Callers treat it
// as a dataset failure and keep serving a retryable error instead of an
// empty dashboard.
var ErrNoEvents = errors.New("loader: no events loaded")

// Report counts what happened to the source rows during one load. Rejected
// rows are dropped silently from the dataset but stay visible here and in
// the metrics.
type Report struct {
	Rows          int `json:"rows"`
	Loaded        int `json:"loaded"`
	RejectedDate  int `json:"rejected_date"`
	RejectedCoord int `json:"rejected_coord"`
}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02-01-2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LoadEvents parses the event CSV. Required columns: date, district, lat,
// long (any column order; extra columns ignored). Per row:
//
//  1. empty district becomes "Unknown"
//  2. unparseable dates drop the row
//  3. missing or non-numeric lat/long drop the row
//
// Surviving rows keep their source order. A file-level problem (no header,
// missing required column, CSV syntax error) fails the whole load.
func LoadEvents(r io.Reader) ([]models.FireEvent, Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, Report{}, fmt.Errorf("reading csv header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "lat", "long"} {
		if _, ok := cols[required]; !ok {
			return nil, Report{}, fmt.Errorf("csv missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var events []models.FireEvent
	var report Report
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Report{}, fmt.Errorf("reading csv row: %w", err)
		}
		report.Rows++

		date, ok := parseDate(field(row, "date"))
		if !ok {
			report.RejectedDate++
			continue
		}

		lat, latErr := strconv.ParseFloat(field(row, "lat"), 64)
		lon, lonErr := strconv.ParseFloat(field(row, "long"), 64)
		if latErr != nil || lonErr != nil {
			report.RejectedCoord++
			continue
		}

		events = append(events, models.NewFireEvent(date, field(row, "district"), lat, lon))
	}
	report.Loaded = len(events)

	return events, report, nil
}

// EventSource supplies the normalized event set for a dataset build, so the
// dashboard can read either the CSV file or the sqlite store produced by
// stubble-ingest.
type EventSource func(ctx context.Context) ([]models.FireEvent, Report, error)

// CSVEventSource reads events from the CSV file at path on every call.
func CSVEventSource(path string) EventSource {
	return func(ctx context.Context) ([]models.FireEvent, Report, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, Report{}, fmt.Errorf("opening events file: %w", err)
		}
		defer f.Close()
		return LoadEvents(f)
	}
}
