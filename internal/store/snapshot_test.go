package store

import (
	"context"
	"testing"

	"faregrid.ticketconsole.org/internal/fares"
	"faregrid.ticketconsole.org/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		Stations: []models.Station{
			station("01-01", "West"),
			station("01-02", "Central"),
			station("02-01", "Central"),
			station("02-02", "East"),
		},
		Lines: []models.Line{
			{ID: "L1", DisplayName: "Line 1", Color: "#ff0000", Stations: []string{"01-01", "01-02"}},
			{ID: "L2", DisplayName: "Line 2", Color: "#0000ff", Stations: []string{"02-01", "02-02"}},
		},
		Fares: []models.FareEntry{
			{From: "01-01", To: "01-02", CostRegular: models.Amount(10), CostExpress: models.Amount(12)},
			{From: "02-02", To: "02-01", Cost: models.Amount(6)},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	want := sampleSnapshot()
	require.NoError(t, client.ImportSnapshot(ctx, want, ImportReplace))

	got, err := client.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	fare, ok := fares.NewResolver(got).BestFare("01-01", "02-02", models.TierRegular)
	require.True(t, ok)
	assert.Equal(t, 16.0, fare)
}

func TestImportModes(t *testing.T) {
	ctx := context.Background()
	extra := models.Snapshot{
		Stations: []models.Station{station("03-01", "North")},
		Fares:    []models.FareEntry{{From: "01-02", To: "01-01", CostRegular: models.Amount(11)}},
	}

	t.Run("merge keeps existing data", func(t *testing.T) {
		client := newTestClient(t)
		require.NoError(t, client.ImportSnapshot(ctx, sampleSnapshot(), ImportReplace))
		require.NoError(t, client.ImportSnapshot(ctx, extra, ImportMerge))

		got, err := client.Snapshot(ctx)
		require.NoError(t, err)
		assert.Len(t, got.Stations, 5)
		assert.Len(t, got.Lines, 2)
		require.Len(t, got.Fares, 2)

		entry, err := client.Fare(ctx, "01-01", "01-02")
		require.NoError(t, err)
		assert.Equal(t, "01-02", entry.From, "the merged entry replaced the pair")
		assert.Nil(t, entry.CostExpress)
	})

	t.Run("replace clears first", func(t *testing.T) {
		client := newTestClient(t)
		require.NoError(t, client.ImportSnapshot(ctx, sampleSnapshot(), ImportReplace))
		require.NoError(t, client.ImportSnapshot(ctx, extra, ImportReplace))

		got, err := client.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, extra.Stations, got.Stations)
		assert.Empty(t, got.Lines)
		assert.Equal(t, extra.Fares, got.Fares)
	})
}

func TestParseImportMode(t *testing.T) {
	mode, err := ParseImportMode("")
	require.NoError(t, err)
	assert.Equal(t, ImportMerge, mode)

	mode, err = ParseImportMode("replace")
	require.NoError(t, err)
	assert.Equal(t, ImportReplace, mode)

	_, err = ParseImportMode("append")
	assert.Error(t, err)
}
