package fares

import "log/slog"

// Diagnostics receives a trace of intermediate results while fares are
// resolved. Implementations must be cheap when disabled; the resolver checks
// Enabled before building attributes.
type Diagnostics interface {
	Enabled() bool
	Record(event string, attrs ...slog.Attr)
}

type nopDiagnostics struct{}

func (nopDiagnostics) Enabled() bool                { return false }
func (nopDiagnostics) Record(string, ...slog.Attr) {}

// NopDiagnostics discards every event.
var NopDiagnostics Diagnostics = nopDiagnostics{}
