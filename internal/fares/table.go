package fares

import (
	"context"

	"faregrid.ticketconsole.org/internal/models"
)

type pairKey struct {
	from, to string
}

// Table is a sparse, undirected lookup of stored fares. Entries keep their
// insertion order so exports are stable.
type Table struct {
	entries []models.FareEntry
	index   map[pairKey]int
}

// NewTable copies entries into a new table. A later entry for the same
// directed pair replaces an earlier one.
func NewTable(entries []models.FareEntry) *Table {
	t := &Table{index: make(map[pairKey]int, len(entries))}
	for _, e := range entries {
		key := pairKey{e.From, e.To}
		if idx, ok := t.index[key]; ok {
			t.entries[idx] = copyEntry(e)
			continue
		}
		t.index[key] = len(t.entries)
		t.entries = append(t.entries, copyEntry(e))
	}
	return t
}

// Lookup finds the entry stored for (a, b), falling back to (b, a).
func (t *Table) Lookup(a, b string) (models.FareEntry, bool) {
	if idx, ok := t.index[pairKey{a, b}]; ok {
		return t.entries[idx], true
	}
	if idx, ok := t.index[pairKey{b, a}]; ok {
		return t.entries[idx], true
	}
	return models.FareEntry{}, false
}

// SegmentFare is the stored price between a and b for tier, without any
// accumulation. Missing entries and entries without a usable price are 0.
func (t *Table) SegmentFare(a, b string, tier models.Tier) float64 {
	e, ok := t.Lookup(a, b)
	if !ok {
		return 0
	}
	return e.Price(tier)
}

// Upsert replaces whatever is stored for the unordered pair a, b with a new
// entry holding both tier prices.
func (t *Table) Upsert(a, b string, costRegular, costExpress float64) {
	t.put(models.FareEntry{
		From:        a,
		To:          b,
		CostRegular: models.Amount(costRegular),
		CostExpress: models.Amount(costExpress),
	})
}

// UpsertFare stores entry, replacing the unordered pair. It lets a Table act
// as the FareWriter of a bulk update.
func (t *Table) UpsertFare(_ context.Context, entry models.FareEntry) error {
	t.put(copyEntry(entry))
	return nil
}

func (t *Table) put(e models.FareEntry) {
	t.Remove(e.From, e.To)
	t.index[pairKey{e.From, e.To}] = len(t.entries)
	t.entries = append(t.entries, e)
}

// Remove deletes the entries stored for a, b in both directions.
func (t *Table) Remove(a, b string) bool {
	removed := false
	kept := t.entries[:0]
	for _, e := range t.entries {
		if e.Connects(a, b) {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return false
	}
	t.entries = kept
	t.reindex()
	return true
}

func (t *Table) reindex() {
	t.index = make(map[pairKey]int, len(t.entries))
	for i, e := range t.entries {
		t.index[pairKey{e.From, e.To}] = i
	}
}

// Entries returns a copy of the stored entries in insertion order.
func (t *Table) Entries() []models.FareEntry {
	out := make([]models.FareEntry, len(t.entries))
	for i, e := range t.entries {
		out[i] = copyEntry(e)
	}
	return out
}

// Len is the number of stored entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	return NewTable(t.entries)
}

func copyEntry(e models.FareEntry) models.FareEntry {
	out := models.FareEntry{From: e.From, To: e.To}
	if e.CostRegular != nil {
		out.CostRegular = models.Amount(*e.CostRegular)
	}
	if e.CostExpress != nil {
		out.CostExpress = models.Amount(*e.CostExpress)
	}
	if e.Cost != nil {
		out.Cost = models.Amount(*e.Cost)
	}
	return out
}
