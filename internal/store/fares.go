package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"faregrid.ticketconsole.org/internal/models"
)

// ListFares returns entries in insertion order.
func (q *Queries) ListFares(ctx context.Context) ([]models.FareEntry, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT from_code, to_code, cost_regular, cost_express, cost FROM fares ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	entries := []models.FareEntry{}
	for rows.Next() {
		entry, err := scanFare(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetFare finds the entry for (a, b), falling back to (b, a).
func (q *Queries) GetFare(ctx context.Context, a, b string) (models.FareEntry, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT from_code, to_code, cost_regular, cost_express, cost FROM fares
		WHERE (from_code = ? AND to_code = ?) OR (from_code = ? AND to_code = ?)
		ORDER BY CASE WHEN from_code = ? THEN 0 ELSE 1 END
		LIMIT 1`,
		a, b, b, a, a)
	return scanFare(row)
}

func scanFare(row rowScanner) (models.FareEntry, error) {
	var entry models.FareEntry
	var regular, express, cost sql.NullFloat64
	if err := row.Scan(&entry.From, &entry.To, &regular, &express, &cost); err != nil {
		return models.FareEntry{}, err
	}
	entry.CostRegular = fromNullFloat64(regular)
	entry.CostExpress = fromNullFloat64(express)
	entry.Cost = fromNullFloat64(cost)
	return entry, nil
}

func (q *Queries) InsertFare(ctx context.Context, entry models.FareEntry) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO fares (from_code, to_code, cost_regular, cost_express, cost)
		VALUES (?, ?, ?, ?, ?)`,
		entry.From, entry.To,
		toNullFloat64(entry.CostRegular), toNullFloat64(entry.CostExpress), toNullFloat64(entry.Cost))
	return err
}

// DeletePair removes the entries for the unordered pair.
func (q *Queries) DeletePair(ctx context.Context, a, b string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM fares
		WHERE (from_code = ? AND to_code = ?) OR (from_code = ? AND to_code = ?)`,
		a, b, b, a)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Fares lists every stored fare entry.
func (c *Client) Fares(ctx context.Context) ([]models.FareEntry, error) {
	entries, err := c.Queries.ListFares(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fares: %w", err)
	}
	return entries, nil
}

// Fare fetches the stored entry for a pair in either direction, or
// ErrNotFound.
func (c *Client) Fare(ctx context.Context, a, b string) (models.FareEntry, error) {
	entry, err := c.Queries.GetFare(ctx, a, b)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FareEntry{}, fmt.Errorf("fare %s/%s: %w", a, b, ErrNotFound)
	}
	if err != nil {
		return models.FareEntry{}, fmt.Errorf("get fare %s/%s: %w", a, b, err)
	}
	return entry, nil
}

// UpsertFare replaces whatever is stored for the unordered pair with entry.
func (c *Client) UpsertFare(ctx context.Context, entry models.FareEntry) error {
	return c.withTx(ctx, "upsert_fare", func(q *Queries) error {
		if _, err := q.DeletePair(ctx, entry.From, entry.To); err != nil {
			return fmt.Errorf("upsert fare %s/%s: %w", entry.From, entry.To, err)
		}
		if err := q.InsertFare(ctx, entry); err != nil {
			return fmt.Errorf("upsert fare %s/%s: %w", entry.From, entry.To, err)
		}
		return nil
	})
}

// DeleteFare removes the pair in both directions.
func (c *Client) DeleteFare(ctx context.Context, a, b string) error {
	n, err := c.Queries.DeletePair(ctx, a, b)
	if err != nil {
		return fmt.Errorf("delete fare %s/%s: %w", a, b, err)
	}
	if n == 0 {
		return fmt.Errorf("fare %s/%s: %w", a, b, ErrNotFound)
	}
	return nil
}
