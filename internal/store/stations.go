package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"faregrid.ticketconsole.org/internal/models"
)

func (q *Queries) ListStations(ctx context.Context) ([]models.Station, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT code, name, en_name FROM stations ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	stations := []models.Station{}
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.Code, &s.Name, &s.EnName); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

func (q *Queries) GetStation(ctx context.Context, code string) (models.Station, error) {
	var s models.Station
	err := q.db.QueryRowContext(ctx,
		`SELECT code, name, en_name FROM stations WHERE code = ?`, code,
	).Scan(&s.Code, &s.Name, &s.EnName)
	return s, err
}

func (q *Queries) UpsertStation(ctx context.Context, s models.Station) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO stations (code, name, en_name) VALUES (?, ?, ?)
		ON CONFLICT (code) DO UPDATE SET name = excluded.name, en_name = excluded.en_name`,
		s.Code, s.Name, s.EnName)
	return err
}

func (q *Queries) DeleteStation(ctx context.Context, code string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM stations WHERE code = ?`, code)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stations lists every station ordered by code.
func (c *Client) Stations(ctx context.Context) ([]models.Station, error) {
	stations, err := c.Queries.ListStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	return stations, nil
}

// Station fetches one station, or ErrNotFound.
func (c *Client) Station(ctx context.Context, code string) (models.Station, error) {
	s, err := c.Queries.GetStation(ctx, code)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Station{}, fmt.Errorf("station %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return models.Station{}, fmt.Errorf("get station %s: %w", code, err)
	}
	return s, nil
}

// SaveStation creates the station or replaces its names.
func (c *Client) SaveStation(ctx context.Context, s models.Station) error {
	if err := c.Queries.UpsertStation(ctx, s); err != nil {
		return fmt.Errorf("save station %s: %w", s.Code, err)
	}
	return nil
}

// DeleteStation removes a station and takes it off every line. Stored fares
// that mention the code are kept.
func (c *Client) DeleteStation(ctx context.Context, code string) error {
	return c.withTx(ctx, "delete_station", func(q *Queries) error {
		n, err := q.DeleteStation(ctx, code)
		if err != nil {
			return fmt.Errorf("delete station %s: %w", code, err)
		}
		if n == 0 {
			return fmt.Errorf("station %s: %w", code, ErrNotFound)
		}
		if err := q.RemoveStationFromLines(ctx, code); err != nil {
			return fmt.Errorf("delete station %s: %w", code, err)
		}
		return nil
	})
}
