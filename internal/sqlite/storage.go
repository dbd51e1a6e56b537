// Package sqlite is the local fallback backend, used whenever full
// access to the device calendar has not been granted.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/caluindar/caluindar/internal"
)

const DriverName = "sqlite3"

type Storage struct {
	db *sqlx.DB
}

var _ internal.Backend = (*Storage)(nil)

func NewStorage(db *sql.DB) *Storage {
	s := &Storage{
		db: sqlx.NewDb(db, DriverName),
	}
	err := s.RunMigrations()
	if err != nil {
		panic(fmt.Sprintf("sqlite: running migrations: %v", err))
	}
	return s
}

// Events returns rows whose interval overlaps the half-open [start, end).
// Zero-length events count when their instant lies inside the range.
func (s *Storage) Events(ctx context.Context, start, end time.Time) ([]*internal.Event, error) {
	var rows []Event

	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, title, starts_at, ends_at, all_day, location, color, notes
		FROM events
		WHERE starts_at < ?
			AND (ends_at > ? OR (starts_at = ends_at AND starts_at >= ?))
		ORDER BY starts_at, id
	`, end.Unix(), start.Unix(), start.Unix())
	if err != nil {
		return nil, err
	}

	res := make([]*internal.Event, len(rows))
	for i, row := range rows {
		res[i] = row.Convert()
	}
	return res, nil
}

func (s *Storage) CreateEvent(ctx context.Context, event *internal.Event) (*internal.Event, error) {
	row := newRow(event)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, title, starts_at, ends_at, all_day, location, color, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, row.ID, row.Title, row.StartsAt, row.EndsAt, row.AllDay, row.Location, row.Color, row.Notes)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, event *internal.Event) error {
	row := newRow(event)
	res, err := s.db.ExecContext(ctx, `
		UPDATE events
		SET title = ?, starts_at = ?, ends_at = ?, all_day = ?, location = ?, color = ?, notes = ?
		WHERE id = ?
	`, row.Title, row.StartsAt, row.EndsAt, row.AllDay, row.Location, row.Color, row.Notes, row.ID)
	if err != nil {
		return err
	}
	return errIfMissing(res)
}

func (s *Storage) DeleteEvent(ctx context.Context, event *internal.Event) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM events WHERE id = ?
	`, event.ID)
	if err != nil {
		return err
	}
	return errIfMissing(res)
}

// errIfMissing turns a zero-row write into ErrNotFound; writing to a
// record the store cannot resolve must not look like success.
func errIfMissing(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return internal.ErrNotFound
	}
	return nil
}
