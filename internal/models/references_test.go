package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyReferences(t *testing.T) {
	refs := NewEmptyReferences()

	raw, err := json.Marshal(refs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"stations":[],"lines":[]}`, string(raw), "empty references encode as arrays, not null")
}

func TestReferencesAddStation(t *testing.T) {
	refs := NewEmptyReferences()
	refs.AddStation(Station{Code: "01-01", Name: "West"})
	refs.AddStation(Station{Code: "01-02", Name: "Central"})
	refs.AddStation(Station{Code: "01-01", Name: "West (duplicate)"})

	require.Len(t, refs.Stations, 2)
	assert.Equal(t, "West", refs.Stations[0].Name)
	assert.Equal(t, "01-02", refs.Stations[1].Code)
}
