package fares

import (
	"context"
	"errors"
	"testing"

	"faregrid.ticketconsole.org/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyWriter fails for the listed "from" codes and records the rest.
type flakyWriter struct {
	fail    map[string]bool
	written []models.FareEntry
}

func (w *flakyWriter) UpsertFare(_ context.Context, entry models.FareEntry) error {
	if w.fail[entry.From] {
		return errors.New("database is locked")
	}
	w.written = append(w.written, entry)
	return nil
}

func TestApplyBulkPartialFailure(t *testing.T) {
	w := &flakyWriter{fail: map[string]bool{"01-03": true}}
	req := models.BulkFareRequest{
		Segments: []models.Segment{
			{From: "01-01", To: "01-02"},
			{From: "01-02", To: "01-02"},
			{From: "01-03", To: "01-04"},
			{From: "", To: "01-05"},
			{From: "01-04", To: "01-05"},
		},
		CostRegular: 3,
	}

	results := ApplyBulk(context.Background(), w, req)
	require.Len(t, results, 5)

	summary := models.NewBulkFareSummary(results)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 3, summary.Failed)

	assert.True(t, results[0].OK)
	assert.Contains(t, results[1].Error, "must differ")
	assert.Equal(t, "database is locked", results[2].Error)
	assert.Contains(t, results[3].Error, "required")
	assert.True(t, results[4].OK)
	assert.Equal(t, "01-04", results[4].From)

	require.Len(t, w.written, 2)
}

func TestApplyBulkExpressDefaultsToRegular(t *testing.T) {
	table := NewTable(nil)
	req := models.BulkFareRequest{Segments: []models.Segment{{From: "A", To: "B"}}, CostRegular: 4}

	results := ApplyBulk(context.Background(), table, req)
	require.True(t, results[0].OK)

	assert.Equal(t, 4.0, table.SegmentFare("A", "B", models.TierRegular))
	assert.Equal(t, 4.0, table.SegmentFare("B", "A", models.TierExpress))
}

func TestApplyBulkExplicitZeroExpress(t *testing.T) {
	table := NewTable(nil)
	req := models.BulkFareRequest{
		Segments:    []models.Segment{{From: "A", To: "B"}},
		CostRegular: 4,
		CostExpress: models.Amount(0),
	}

	results := ApplyBulk(context.Background(), table, req)
	require.True(t, results[0].OK)
	assert.Equal(t, 0.0, table.SegmentFare("A", "B", models.TierExpress))
}

func TestApplyBulkRejectsNonPositiveRegular(t *testing.T) {
	table := NewTable(nil)
	for _, cost := range []float64{0, -1} {
		req := models.BulkFareRequest{Segments: []models.Segment{{From: "A", To: "B"}}, CostRegular: cost}
		results := ApplyBulk(context.Background(), table, req)
		require.Len(t, results, 1)
		assert.False(t, results[0].OK)
		assert.Contains(t, results[0].Error, ErrInvalidSegment.Error())
	}
	assert.Zero(t, table.Len())
}

func TestApplyBulkRejectsFormatSuffix(t *testing.T) {
	table := NewTable(nil)
	req := models.BulkFareRequest{
		Segments:    []models.Segment{{From: "01-01", To: "01-02.json"}, {From: "01-02", To: "01-03"}},
		CostRegular: 2,
	}
	results := ApplyBulk(context.Background(), table, req)
	require.Len(t, results, 2)
	assert.False(t, results[0].OK)
	assert.Contains(t, results[0].Error, ErrInvalidSegment.Error())
	assert.True(t, results[1].OK)
	assert.Equal(t, 1, table.Len())
}

func TestApplyBulkIsIdempotent(t *testing.T) {
	table := NewTable(nil)
	req := models.BulkFareRequest{
		Segments:    []models.Segment{{From: "A", To: "B"}, {From: "B", To: "C"}},
		CostRegular: 2,
		CostExpress: models.Amount(3),
	}

	ApplyBulk(context.Background(), table, req)
	first := table.Entries()
	ApplyBulk(context.Background(), table, req)

	assert.Equal(t, first, table.Entries())
	assert.Equal(t, 2, table.Len())
}

func TestApplyBulkReplacesReverseEntry(t *testing.T) {
	table := NewTable([]models.FareEntry{regularFare("B", "A", 9)})
	req := models.BulkFareRequest{Segments: []models.Segment{{From: "A", To: "B"}}, CostRegular: 5, CostExpress: models.Amount(8)}

	ApplyBulk(context.Background(), table, req)

	require.Equal(t, 1, table.Len())
	assert.Equal(t, 5.0, table.SegmentFare("A", "B", models.TierRegular))
	assert.Equal(t, 8.0, table.SegmentFare("B", "A", models.TierExpress))
}

func TestApplyBulkResultsFeedResolver(t *testing.T) {
	stations, _ := uniformLine("03", 4, 0)
	table := NewTable(nil)
	req := models.BulkFareRequest{
		Segments:    []models.Segment{{From: "03-01", To: "03-02"}, {From: "03-02", To: "03-03"}, {From: "03-03", To: "03-04"}},
		CostRegular: 2,
	}
	ApplyBulk(context.Background(), table, req)

	r := NewResolver(models.Snapshot{Stations: stations, Fares: table.Entries()})
	fare, ok := r.BestFare("03-04", "03-01", models.TierRegular)
	require.True(t, ok)
	assert.Equal(t, 6.0, fare)
}
