package restapi

import (
	"context"
	"net/http"
	"testing"

	"faregrid.ticketconsole.org/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLinesHandler(t *testing.T) {
	api := createSeededTestApi(t, transferNetwork())

	rec := doRequest(t, api, http.MethodGet, "/api/lines?key=TEST", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	model := decodeResponse(t, rec)
	list := listOf(t, model)
	require.Len(t, list, 2)
	assert.Equal(t, "L1", list[0].(map[string]interface{})["id"])

	refs := model.Data.(map[string]interface{})["references"].(map[string]interface{})
	assert.Len(t, refs["stations"], 4)
}

func TestLineHandler(t *testing.T) {
	api := createSeededTestApi(t, transferNetwork())

	rec := doRequest(t, api, http.MethodGet, "/api/lines/L2?key=TEST", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	entry := entryOf(t, decodeResponse(t, rec))
	assert.Equal(t, "#0000ff", entry["color"])
	assert.Equal(t, []interface{}{"02-01", "02-02"}, entry["stations"])

	rec = doRequest(t, api, http.MethodGet, "/api/lines/L9?key=TEST", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveLineHandler(t *testing.T) {
	api := createSeededTestApi(t, transferNetwork())

	t.Run("creates a line", func(t *testing.T) {
		rec := doRequest(t, api, http.MethodPost, "/api/lines?key=TEST", models.Line{
			ID: "L3", DisplayName: "Loop", Color: "#00aa00", Stations: []string{"01-01", "02-02"},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		line, err := api.Store.Line(context.Background(), "L3")
		require.NoError(t, err)
		assert.Equal(t, []string{"01-01", "02-02"}, line.Stations)
	})

	t.Run("line without stations", func(t *testing.T) {
		rec := doRequest(t, api, http.MethodPost, "/api/lines?key=TEST", `{"id":"L4","display_name":"Planned"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []interface{}{}, entryOf(t, decodeResponse(t, rec))["stations"])
	})

	t.Run("bad colour", func(t *testing.T) {
		rec := doRequest(t, api, http.MethodPost, "/api/lines?key=TEST", models.Line{ID: "L5", Color: "red"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []string{"must be a hex color such as #ff0000"}, decodeFieldErrors(t, rec)["color"])
	})

	t.Run("blank station code", func(t *testing.T) {
		rec := doRequest(t, api, http.MethodPost, "/api/lines?key=TEST", models.Line{ID: "L6", Stations: []string{"01-01", ""}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeFieldErrors(t, rec), "stations[1]")
	})
}

func TestUpdateLineHandler(t *testing.T) {
	api := createSeededTestApi(t, transferNetwork())

	rec := doRequest(t, api, http.MethodPut, "/api/lines/L1?key=TEST", models.Line{
		DisplayName: "Line 1", Color: "#ff0000", Stations: []string{"01-02", "01-01"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	line, err := api.Store.Line(context.Background(), "L1")
	require.NoError(t, err)
	assert.Equal(t, []string{"01-02", "01-01"}, line.Stations)

	rec = doRequest(t, api, http.MethodPut, "/api/lines/L9?key=TEST", models.Line{DisplayName: "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, api, http.MethodPut, "/api/lines/L1?key=TEST", models.Line{ID: "L2"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteLineHandler(t *testing.T) {
	api := createSeededTestApi(t, transferNetwork())

	rec := doRequest(t, api, http.MethodDelete, "/api/lines/L2?key=TEST", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	lines, err := api.Store.Lines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 1)

	stations, err := api.Store.Stations(context.Background())
	require.NoError(t, err)
	assert.Len(t, stations, 4, "stations outlive their line")

	rec = doRequest(t, api, http.MethodDelete, "/api/lines/L2?key=TEST", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
