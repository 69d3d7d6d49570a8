package main

import (
	"context"
	"fmt"
	"log/slog"

	"faregrid.ticketconsole.org/internal/appconf"
	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/store"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	dbPath     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "farectl",
		Short: "Inspect and maintain a fare network",
		Long: `farectl works directly on a fare database: quote fares between stations,
print the fare matrix, seed lines and stations from a GTFS feed, and move
whole networks in and out as JSON snapshots.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides the config)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")

	cmd.AddCommand(
		newQuoteCmd(opts),
		newMatrixCmd(opts),
		newImportGTFSCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
	)
	return cmd
}

// openStore loads the configuration and opens the configured database. Logs
// go to the command's stderr as text.
func (o *rootOptions) openStore(cmd *cobra.Command) (*store.Client, *slog.Logger, error) {
	cfg, err := appconf.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}

	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.NewTextLogger(cmd.ErrOrStderr(), level)

	client, err := store.NewClient(store.NewConfig(cfg.DBPath, cfg.Env, logger))
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", cfg.DBPath, err)
	}
	return client, logger, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
