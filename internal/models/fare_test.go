package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("")
	require.NoError(t, err)
	assert.Equal(t, TierRegular, tier)

	tier, err = ParseTier("express")
	require.NoError(t, err)
	assert.Equal(t, TierExpress, tier)

	_, err = ParseTier("Express")
	assert.Error(t, err)
}

func TestFareEntryPrice(t *testing.T) {
	tests := []struct {
		name    string
		entry   FareEntry
		regular float64
		express float64
	}{
		{name: "tier fields", entry: FareEntry{CostRegular: Amount(5), CostExpress: Amount(8)}, regular: 5, express: 8},
		{name: "legacy cost fills missing tier", entry: FareEntry{CostRegular: Amount(5), Cost: Amount(6)}, regular: 5, express: 6},
		{name: "explicit zero beats legacy cost", entry: FareEntry{CostExpress: Amount(0), Cost: Amount(6)}, regular: 6, express: 0},
		{name: "nothing set", entry: FareEntry{}, regular: 0, express: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.regular, tt.entry.Price(TierRegular))
			assert.Equal(t, tt.express, tt.entry.Price(TierExpress))
		})
	}
}

func TestFareEntryConnects(t *testing.T) {
	entry := FareEntry{From: "01-01", To: "01-02"}
	assert.True(t, entry.Connects("01-01", "01-02"))
	assert.True(t, entry.Connects("01-02", "01-01"))
	assert.False(t, entry.Connects("01-01", "01-03"))
}

func TestNewBulkFareSummary(t *testing.T) {
	summary := NewBulkFareSummary([]SegmentResult{
		{From: "A", To: "B", OK: true},
		{From: "B", To: "B", Error: "invalid segment"},
		{From: "B", To: "C", OK: true},
	})

	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, summary.Results, 3)
}

func TestLineHasStation(t *testing.T) {
	line := Line{ID: "L1", Stations: []string{"01-01", "01-02"}}
	assert.True(t, line.HasStation("01-02"))
	assert.False(t, line.HasStation("02-01"))
}

func TestSnapshotCounts(t *testing.T) {
	snap := Snapshot{
		Stations: []Station{{Code: "01-01"}, {Code: "01-02"}},
		Lines:    []Line{{ID: "L1"}},
	}
	assert.Equal(t, map[string]int{"stations": 2, "lines": 1, "fares": 0}, snap.Counts())
}
