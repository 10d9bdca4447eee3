package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hsgill/go-stubble-watch/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS fire_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date DATETIME NOT NULL,
			district TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_fire_events_district ON fire_events(district);
		CREATE INDEX IF NOT EXISTS idx_fire_events_year ON fire_events(year);
  	`

	_, err := s.db.Exec(schema)
	return err
}

// AddBatch inserts events in one transaction so a failed batch leaves no
// partial rows behind.
func (s *SQLiteDB) AddBatch(ctx context.Context, events []models.FireEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO fire_events (date, district, latitude, longitude, year, month)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range events {
		e := &events[i]
		if _, err := stmt.ExecContext(ctx,
			e.Date.UTC().Format(time.RFC3339), e.District, e.Latitude, e.Longitude, e.Year, e.Month,
		); err != nil {
			return fmt.Errorf("error inserting event: %w", err)
		}
	}

	return tx.Commit()
}

// ListEvents returns events ordered by date then insertion order, so
// repeated loads hand the engine the same sequence.
func (s *SQLiteDB) ListEvents(ctx context.Context, f Filter) ([]models.FireEvent, error) {
	query := `SELECT date, district, latitude, longitude FROM fire_events`

	var clauses []string
	var args []any
	if len(f.Districts) > 0 {
		clauses = append(clauses, `district IN (`+placeholders(len(f.Districts))+`)`)
		for _, d := range f.Districts {
			args = append(args, d)
		}
	}
	if len(f.Years) > 0 {
		clauses = append(clauses, `year IN (`+placeholders(len(f.Years))+`)`)
		for _, y := range f.Years {
			args = append(args, y)
		}
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY date, id`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	var events []models.FireEvent
	for rows.Next() {
		var dateStr, district string
		var lat, lon float64
		if err := rows.Scan(&dateStr, &district, &lat, &lon); err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		date, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("error parsing stored date %q: %w", dateStr, err)
		}
		events = append(events, models.NewFireEvent(date, district, lat, lon))
	}
	return events, rows.Err()
}

func (s *SQLiteDB) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fire_events`).Scan(&n)
	return n, err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
