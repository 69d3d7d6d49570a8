package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"faregrid.ticketconsole.org/internal/app"
	"faregrid.ticketconsole.org/internal/appconf"
	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/restapi"
	"faregrid.ticketconsole.org/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the optional YAML file, .env, FAREGRID_*
// variables and finally command-line flags.
func loadConfig(args []string) (appconf.Config, error) {
	fs := flag.NewFlagSet("faregrid-api", flag.ContinueOnError)
	flags := appconf.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, err
	}

	cfg, err := appconf.Load(flags.ConfigPath)
	if err != nil {
		return appconf.Config{}, err
	}
	flags.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return appconf.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg appconf.Config, w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(w, cfg.LogFormat, level)
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, stdout)
	if err != nil {
		return err
	}

	client, err := store.NewClient(store.NewConfig(cfg.DBPath, cfg.Env, logger))
	if err != nil {
		return fmt.Errorf("open fare store: %w", err)
	}
	defer logging.SafeCloseWithLogging(client, logger, "fare_store")

	api := restapi.NewRestAPI(&app.Application{
		Config: cfg,
		Logger: logger,
		Store:  client,
	})
	defer api.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String(), "db", cfg.DBPath)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
