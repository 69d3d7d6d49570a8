package fares

import (
	"log/slog"

	"faregrid.ticketconsole.org/internal/models"
)

// Method names the rule that produced a quoted fare.
type Method string

const (
	MethodNone     Method = "none"
	MethodLine     Method = "line"
	MethodTransfer Method = "transfer"
	MethodSegment  Method = "segment"
)

// Quote is a resolved fare together with the intermediate values that led to
// it.
type Quote struct {
	From         string      `json:"from"`
	To           string      `json:"to"`
	Tier         models.Tier `json:"tier"`
	Fare         *float64    `json:"fare"`
	Method       Method      `json:"method"`
	LineFare     *float64    `json:"line_fare"`
	TransferFare *float64    `json:"transfer_fare"`
	SegmentFare  float64     `json:"segment_fare"`
	ViaFrom      string      `json:"via_from,omitempty"`
	ViaTo        string      `json:"via_to,omitempty"`
}

// Resolver answers fare queries over one snapshot.
type Resolver struct {
	catalog  *Catalog
	table    *Table
	segments segmentIndex
	diag     Diagnostics
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDiagnostics routes the resolution trace to d.
func WithDiagnostics(d Diagnostics) Option {
	return func(r *Resolver) {
		if d != nil {
			r.diag = d
		}
	}
}

// NewResolver indexes a snapshot. The snapshot is copied; later changes to
// it are not observed.
func NewResolver(snapshot models.Snapshot, opts ...Option) *Resolver {
	return newResolver(NewCatalog(snapshot.Stations), NewTable(snapshot.Fares), opts...)
}

func newResolver(catalog *Catalog, table *Table, opts ...Option) *Resolver {
	r := &Resolver{
		catalog:  catalog,
		table:    table,
		segments: newSegmentIndex(table.entries),
		diag:     NopDiagnostics,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog exposes the station index of the snapshot.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Table returns a copy of the fare table of the snapshot.
func (r *Resolver) Table() *Table {
	return r.table.Clone()
}

// LineFare sums the adjacent segment fares between two codes on the same
// line. ok is false when the codes are not on the same line. Stops missing
// between the two codes contribute zero.
func (r *Resolver) LineFare(a, b string, tier models.Tier) (float64, bool) {
	pa, pb := ParseCode(a), ParseCode(b)
	if pa.Prefix == "" || pa.Prefix != pb.Prefix {
		return 0, false
	}
	lo, hi := min(pa.Seq, pb.Seq), max(pa.Seq, pb.Seq)
	total := 0.0
	for _, i := range r.segments.within(pa.Prefix, lo, hi) {
		total += r.table.SegmentFare(FormatCode(pa.Prefix, i), FormatCode(pa.Prefix, i+1), tier)
	}
	if r.diag.Enabled() {
		r.diag.Record("line_fare",
			slog.String("from", a), slog.String("to", b), slog.String("tier", string(tier)),
			slog.Int("lo", lo), slog.Int("hi", hi), slog.Float64("total", total))
	}
	return total, true
}

// TransferFare returns the same-line fare when there is one, even if it is
// zero. Otherwise it searches every transfer hub for the cheapest
// combination of a line fare into the hub and a line fare out of it.
func (r *Resolver) TransferFare(a, b string, tier models.Tier) (float64, bool) {
	fare, _, _, ok := r.transfer(a, b, tier)
	return fare, ok
}

func (r *Resolver) transfer(a, b string, tier models.Tier) (fare float64, viaFrom, viaTo string, ok bool) {
	if direct, ok := r.LineFare(a, b, tier); ok {
		return direct, "", "", true
	}

	candidates := 0
	for _, hub := range r.catalog.TransferHubs() {
		for _, gi := range hub {
			left, ok := r.LineFare(a, gi, tier)
			if !ok {
				continue
			}
			for _, gj := range hub {
				right, ok := r.LineFare(gj, b, tier)
				if !ok {
					continue
				}
				candidates++
				if total := left + right; candidates == 1 || total < fare {
					fare, viaFrom, viaTo = total, gi, gj
				}
			}
		}
	}

	if r.diag.Enabled() {
		r.diag.Record("transfer_fare",
			slog.String("from", a), slog.String("to", b), slog.String("tier", string(tier)),
			slog.Int("hubs", len(r.catalog.TransferHubs())), slog.Int("candidates", candidates),
			slog.Float64("best", fare), slog.String("via_from", viaFrom), slog.String("via_to", viaTo))
	}
	return fare, viaFrom, viaTo, candidates > 0
}

// BestFare resolves the price between two station codes. ok is false when no
// fare is known, including when either code is not a station of the
// snapshot.
func (r *Resolver) BestFare(a, b string, tier models.Tier) (float64, bool) {
	q := r.Explain(a, b, tier)
	if q.Fare == nil {
		return 0, false
	}
	return *q.Fare, true
}

// Explain resolves a fare like BestFare and reports how it was obtained.
//
// A transfer or line fare wins only when strictly positive; otherwise a
// positive stored segment fare for the exact pair is used. Zero is treated as
// "no information" here, while TransferFare accepts a zero line fare.
func (r *Resolver) Explain(a, b string, tier models.Tier) Quote {
	q := Quote{From: a, To: b, Tier: tier, Method: MethodNone}
	if !r.catalog.Has(a) || !r.catalog.Has(b) {
		r.record(q, "unknown_station")
		return q
	}

	if v, ok := r.LineFare(a, b, tier); ok {
		q.LineFare = models.Amount(v)
	}
	if v, viaFrom, viaTo, ok := r.transfer(a, b, tier); ok {
		q.TransferFare = models.Amount(v)
		if q.LineFare == nil {
			q.ViaFrom, q.ViaTo = viaFrom, viaTo
		}
	}
	q.SegmentFare = r.table.SegmentFare(a, b, tier)

	preferred, method := q.LineFare, MethodLine
	if q.TransferFare != nil && *q.TransferFare > 0 {
		preferred = q.TransferFare
		if q.LineFare == nil {
			method = MethodTransfer
		}
	}

	switch {
	case preferred != nil && *preferred > 0:
		q.Fare, q.Method = models.Amount(*preferred), method
	case q.SegmentFare > 0:
		q.Fare, q.Method = models.Amount(q.SegmentFare), MethodSegment
	}
	if q.Method != MethodTransfer {
		q.ViaFrom, q.ViaTo = "", ""
	}
	r.record(q, "best_fare")
	return q
}

func (r *Resolver) record(q Quote, event string) {
	if !r.diag.Enabled() {
		return
	}
	attrs := []slog.Attr{
		slog.String("from", q.From), slog.String("to", q.To),
		slog.String("tier", string(q.Tier)), slog.String("method", string(q.Method)),
		slog.Float64("segment_fare", q.SegmentFare),
	}
	if q.Fare != nil {
		attrs = append(attrs, slog.Float64("fare", *q.Fare))
	}
	r.diag.Record(event, attrs...)
}
