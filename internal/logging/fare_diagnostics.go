package logging

import (
	"context"
	"log/slog"
)

// FareDiagnostics writes fare resolution traces to a logger at debug level.
// It satisfies fares.Diagnostics.
type FareDiagnostics struct {
	logger *slog.Logger
}

// NewFareDiagnostics wraps logger. A nil logger records nothing.
func NewFareDiagnostics(logger *slog.Logger) *FareDiagnostics {
	return &FareDiagnostics{logger: logger}
}

// Enabled reports whether the logger accepts debug records, so callers can
// skip building attributes.
func (d *FareDiagnostics) Enabled() bool {
	return d.logger != nil && d.logger.Enabled(context.Background(), slog.LevelDebug)
}

func (d *FareDiagnostics) Record(event string, attrs ...slog.Attr) {
	if !d.Enabled() {
		return
	}
	all := make([]slog.Attr, 0, len(attrs)+2)
	all = append(all, slog.String("component", "fare_resolver"), slog.String("event", event))
	all = append(all, attrs...)
	d.logger.LogAttrs(context.Background(), slog.LevelDebug, "fare_trace", all...)
}
