package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/models"
)

// ImportMode selects how ImportSnapshot treats existing data.
type ImportMode int

const (
	// ImportMerge upserts every entity of the snapshot and keeps the rest.
	ImportMerge ImportMode = iota
	// ImportReplace deletes everything first.
	ImportReplace
)

// ParseImportMode accepts "merge" (the default) and "replace".
func ParseImportMode(s string) (ImportMode, error) {
	switch s {
	case "", "merge":
		return ImportMerge, nil
	case "replace":
		return ImportReplace, nil
	}
	return ImportMerge, fmt.Errorf("unknown import mode %q", s)
}

// Snapshot reads stations, lines and fares inside one transaction, so the
// three lists are consistent with each other.
func (c *Client) Snapshot(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	err := c.withTx(ctx, "read_snapshot", func(q *Queries) error {
		var err error
		if snap.Stations, err = q.ListStations(ctx); err != nil {
			return fmt.Errorf("snapshot stations: %w", err)
		}
		if snap.Lines, err = q.ListLines(ctx); err != nil {
			return fmt.Errorf("snapshot lines: %w", err)
		}
		if snap.Fares, err = q.ListFares(ctx); err != nil {
			return fmt.Errorf("snapshot fares: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

// ImportSnapshot writes a whole snapshot in one transaction.
//
// In merge mode each fare entry replaces the stored unordered pair. In
// replace mode entries are written as given, so a snapshot holding both
// directions of a pair round-trips unchanged.
func (c *Client) ImportSnapshot(ctx context.Context, snap models.Snapshot, mode ImportMode) error {
	start := time.Now()
	err := c.withTx(ctx, "import_snapshot", func(q *Queries) error {
		if mode == ImportReplace {
			if err := q.DeleteAll(ctx); err != nil {
				return fmt.Errorf("import: clear: %w", err)
			}
		}
		for _, s := range snap.Stations {
			if err := q.UpsertStation(ctx, s); err != nil {
				return fmt.Errorf("import station %s: %w", s.Code, err)
			}
		}
		for _, line := range snap.Lines {
			if err := q.UpsertLine(ctx, line); err != nil {
				return fmt.Errorf("import line %s: %w", line.ID, err)
			}
		}
		for _, entry := range snap.Fares {
			if mode == ImportMerge {
				if _, err := q.DeletePair(ctx, entry.From, entry.To); err != nil {
					return fmt.Errorf("import fare %s/%s: %w", entry.From, entry.To, err)
				}
			}
			if err := q.InsertFare(ctx, entry); err != nil {
				return fmt.Errorf("import fare %s/%s: %w", entry.From, entry.To, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	counts := snap.Counts()
	logging.LogOperation(c.logger, "snapshot_imported",
		slog.Bool("replace", mode == ImportReplace),
		slog.Int("stations", counts["stations"]),
		slog.Int("lines", counts["lines"]),
		slog.Int("fares", counts["fares"]),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (q *Queries) DeleteAll(ctx context.Context) error {
	for _, table := range []string{"fares", "line_stations", "lines", "stations"} {
		if _, err := q.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
