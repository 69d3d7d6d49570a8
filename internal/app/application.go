package app

import (
	"log/slog"

	"faregrid.ticketconsole.org/internal/appconf"
	"faregrid.ticketconsole.org/internal/fares"
	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/models"
	"faregrid.ticketconsole.org/internal/store"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config appconf.Config
	Logger *slog.Logger
	Store  *store.Client
}

// FareOptions returns the engine options for one request: resolution
// traces go to the application logger at debug level.
func (app *Application) FareOptions() []fares.Option {
	return []fares.Option{fares.WithDiagnostics(logging.NewFareDiagnostics(app.Logger))}
}

// NewResolver builds a resolver over snap with the application's options.
func (app *Application) NewResolver(snap models.Snapshot) *fares.Resolver {
	return fares.NewResolver(snap, app.FareOptions()...)
}

// NewMatrixBuilder builds a matrix builder over snap with the application's
// options.
func (app *Application) NewMatrixBuilder(snap models.Snapshot) *fares.MatrixBuilder {
	return fares.NewMatrixBuilder(snap, app.FareOptions()...)
}
