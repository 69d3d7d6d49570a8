package models

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func nowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

func TestNewResponse(t *testing.T) {
	data := map[string]int{"failed": 1}

	before := nowMillis()
	response := NewResponse(http.StatusMultiStatus, data, "some segments failed")
	after := nowMillis()

	assert.Equal(t, http.StatusMultiStatus, response.Code)
	assert.Equal(t, data, response.Data)
	assert.Equal(t, "some segments failed", response.Text)
	assert.Equal(t, 2, response.Version)
	assert.GreaterOrEqual(t, response.CurrentTime, before)
	assert.LessOrEqual(t, response.CurrentTime, after)
}

func TestNewOKResponse(t *testing.T) {
	response := NewOKResponse(nil)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	assert.Nil(t, response.Data)
}

func TestNewEntryResponse(t *testing.T) {
	station := Station{Code: "01-01", Name: "West"}
	references := NewEmptyReferences()
	references.AddStation(station)

	response := NewEntryResponse(station, references)

	assert.Equal(t, http.StatusOK, response.Code)
	responseData, ok := response.Data.(map[string]interface{})
	assert.True(t, ok, "Response data should be a map")
	assert.Equal(t, station, responseData["entry"])
	assert.Equal(t, references, responseData["references"])
}

func TestNewListResponse(t *testing.T) {
	lines := []Line{{ID: "L1"}, {ID: "L2"}}

	response := NewListResponse(lines, NewEmptyReferences())

	responseData, ok := response.Data.(map[string]interface{})
	assert.True(t, ok, "Response data should be a map")
	assert.Equal(t, lines, responseData["list"])
	assert.False(t, responseData["limitExceeded"].(bool))
}
