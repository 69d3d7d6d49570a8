package store

import (
	"context"
	"testing"

	"faregrid.ticketconsole.org/internal/fares"
	"faregrid.ticketconsole.org/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ fares.FareWriter = (*Client)(nil)

func TestFareEitherDirection(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	entry := models.FareEntry{From: "01-01", To: "01-02", CostRegular: models.Amount(3), CostExpress: models.Amount(4.5)}
	require.NoError(t, client.UpsertFare(ctx, entry))

	got, err := client.Fare(ctx, "01-02", "01-01")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
	assert.Nil(t, got.Cost)

	_, err = client.Fare(ctx, "01-01", "01-03")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFarePrefersExactDirection(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	forward := models.FareEntry{From: "A", To: "B", CostRegular: models.Amount(1)}
	reverse := models.FareEntry{From: "B", To: "A", CostRegular: models.Amount(2)}
	require.NoError(t, client.ImportSnapshot(ctx, models.Snapshot{Fares: []models.FareEntry{forward, reverse}}, ImportReplace))

	got, err := client.Fare(ctx, "B", "A")
	require.NoError(t, err)
	assert.Equal(t, reverse, got)
}

func TestUpsertFareReplacesUnorderedPair(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.UpsertFare(ctx, models.FareEntry{From: "B", To: "A", Cost: models.Amount(9)}))
	require.NoError(t, client.UpsertFare(ctx, models.FareEntry{From: "A", To: "B", CostRegular: models.Amount(5), CostExpress: models.Amount(8)}))

	entries, err := client.Fares(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].From)
	assert.Nil(t, entries[0].Cost)

	table := fares.NewTable(entries)
	assert.Equal(t, 5.0, table.SegmentFare("A", "B", models.TierRegular))
	assert.Equal(t, 8.0, table.SegmentFare("B", "A", models.TierExpress))
}

func TestDeleteFare(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.UpsertFare(ctx, models.FareEntry{From: "A", To: "B", CostRegular: models.Amount(5)}))
	require.NoError(t, client.DeleteFare(ctx, "B", "A"))
	assert.ErrorIs(t, client.DeleteFare(ctx, "A", "B"), ErrNotFound)
}

func TestApplyBulkAgainstStore(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	req := models.BulkFareRequest{
		Segments:    []models.Segment{{From: "01-01", To: "01-02"}, {From: "01-02", To: "01-02"}, {From: "01-02", To: "01-03"}},
		CostRegular: 4,
	}
	summary := models.NewBulkFareSummary(fares.ApplyBulk(ctx, client, req))
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)

	// Applying again changes nothing.
	fares.ApplyBulk(ctx, client, req)
	entries, err := client.Fares(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, 4.0, e.Price(models.TierExpress))
	}
}
