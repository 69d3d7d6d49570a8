package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"faregrid.ticketconsole.org/internal/models"
)

func (q *Queries) ListLines(ctx context.Context) ([]models.Line, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, display_name, en_name, color FROM lines ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	lines := []models.Line{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members, err := q.listLineStations(ctx)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].Stations = members[lines[i].ID]
		if lines[i].Stations == nil {
			lines[i].Stations = []string{}
		}
	}
	return lines, nil
}

func (q *Queries) GetLine(ctx context.Context, id string) (models.Line, error) {
	row := q.db.QueryRowContext(ctx, `SELECT id, display_name, en_name, color FROM lines WHERE id = ?`, id)
	line, err := scanLine(row)
	if err != nil {
		return models.Line{}, err
	}

	rows, err := q.db.QueryContext(ctx,
		`SELECT station_code FROM line_stations WHERE line_id = ? ORDER BY position`, id)
	if err != nil {
		return models.Line{}, err
	}
	defer rows.Close() // nolint:errcheck

	line.Stations = []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return models.Line{}, err
		}
		line.Stations = append(line.Stations, code)
	}
	return line, rows.Err()
}

func (q *Queries) listLineStations(ctx context.Context) (map[string][]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT line_id, station_code FROM line_stations ORDER BY line_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	members := make(map[string][]string)
	for rows.Next() {
		var lineID, code string
		if err := rows.Scan(&lineID, &code); err != nil {
			return nil, err
		}
		members[lineID] = append(members[lineID], code)
	}
	return members, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLine(row rowScanner) (models.Line, error) {
	var line models.Line
	var color sql.NullString
	if err := row.Scan(&line.ID, &line.DisplayName, &line.EnName, &color); err != nil {
		return models.Line{}, err
	}
	line.Color = color.String
	return line, nil
}

func (q *Queries) UpsertLine(ctx context.Context, line models.Line) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO lines (id, display_name, en_name, color) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			display_name = excluded.display_name,
			en_name = excluded.en_name,
			color = excluded.color`,
		line.ID, line.DisplayName, line.EnName, toNullString(line.Color))
	if err != nil {
		return err
	}

	if _, err := q.db.ExecContext(ctx, `DELETE FROM line_stations WHERE line_id = ?`, line.ID); err != nil {
		return err
	}
	for i, code := range line.Stations {
		_, err := q.db.ExecContext(ctx,
			`INSERT INTO line_stations (line_id, position, station_code) VALUES (?, ?, ?)`,
			line.ID, i, code)
		if err != nil {
			return err
		}
	}
	return nil
}

func (q *Queries) DeleteLine(ctx context.Context, id string) (int64, error) {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM line_stations WHERE line_id = ?`, id); err != nil {
		return 0, err
	}
	res, err := q.db.ExecContext(ctx, `DELETE FROM lines WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) RemoveStationFromLines(ctx context.Context, code string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM line_stations WHERE station_code = ?`, code)
	return err
}

// Lines lists every line with its ordered station codes.
func (c *Client) Lines(ctx context.Context) ([]models.Line, error) {
	lines, err := c.Queries.ListLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	return lines, nil
}

// Line fetches one line, or ErrNotFound.
func (c *Client) Line(ctx context.Context, id string) (models.Line, error) {
	line, err := c.Queries.GetLine(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Line{}, fmt.Errorf("line %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Line{}, fmt.Errorf("get line %s: %w", id, err)
	}
	return line, nil
}

// SaveLine creates the line or replaces it, including its station order.
func (c *Client) SaveLine(ctx context.Context, line models.Line) error {
	return c.withTx(ctx, "save_line", func(q *Queries) error {
		if err := q.UpsertLine(ctx, line); err != nil {
			return fmt.Errorf("save line %s: %w", line.ID, err)
		}
		return nil
	})
}

// DeleteLine removes a line. Its stations stay.
func (c *Client) DeleteLine(ctx context.Context, id string) error {
	return c.withTx(ctx, "delete_line", func(q *Queries) error {
		n, err := q.DeleteLine(ctx, id)
		if err != nil {
			return fmt.Errorf("delete line %s: %w", id, err)
		}
		if n == 0 {
			return fmt.Errorf("line %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
