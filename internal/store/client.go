package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"faregrid.ticketconsole.org/internal/logging"
)

// Client is the persistence layer for stations, lines and fares.
type Client struct {
	config  Config
	DB      *sql.DB
	Queries *Queries
	logger  *slog.Logger
}

// NewClient opens the database described by config and applies the schema.
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logging.LogOperation(logger, "fare_store_opened",
		slog.String("db_path", config.DBPath),
		slog.String("env", config.Env.String()))

	return &Client{
		config:  config,
		DB:      db,
		Queries: New(db),
		logger:  logger,
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// withTx runs fn inside a transaction and commits when it returns nil.
func (c *Client) withTx(ctx context.Context, operation string, fn func(q *Queries) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", operation, err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, operation)

	if err := fn(c.Queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", operation, err)
	}
	return nil
}

// TableCounts returns the number of rows in each table.
func (c *Client) TableCounts(ctx context.Context) (map[string]int, error) {
	rows, err := c.DB.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("query table names: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		var count int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := c.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, err
		}
		counts[table] = count
	}
	return counts, nil
}
