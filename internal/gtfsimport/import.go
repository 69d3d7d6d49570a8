package gtfsimport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/models"
	"faregrid.ticketconsole.org/internal/store"
)

// SnapshotImporter persists a converted network.
type SnapshotImporter interface {
	ImportSnapshot(ctx context.Context, snap models.Snapshot, mode store.ImportMode) error
}

// ImportFeed loads the feed at source, converts it and writes it to dst.
func ImportFeed(ctx context.Context, dst SnapshotImporter, source string, mode store.ImportMode, opts Options) (Report, error) {
	start := time.Now()
	static, err := LoadStatic(ctx, &http.Client{Timeout: 60 * time.Second}, source)
	if err != nil {
		return Report{}, err
	}

	snap, report := BuildSnapshot(static, opts)
	if err := dst.ImportSnapshot(ctx, snap, mode); err != nil {
		return report, fmt.Errorf("store GTFS network: %w", err)
	}

	logging.LogOperation(opts.Logger, "gtfs_feed_imported",
		slog.String("source", source),
		slog.Int("lines", report.Lines),
		slog.Int("stations", report.Stations),
		slog.Duration("duration", time.Since(start)))
	return report, nil
}
