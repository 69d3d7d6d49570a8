package fares

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want StationCode
	}{
		{"two digit", "01-02", StationCode{Prefix: "01", Seq: 2}},
		{"wide number", "A-123", StationCode{Prefix: "A", Seq: 123}},
		{"no separator", "0102", StationCode{}},
		{"empty", "", StationCode{}},
		{"non numeric suffix", "01-xx", StationCode{Prefix: "01", Seq: 0}},
		{"empty suffix", "01-", StationCode{Prefix: "01", Seq: 0}},
		{"extra separator", "01-02-b", StationCode{Prefix: "01", Seq: 2}},
		{"empty prefix", "-04", StationCode{Prefix: "", Seq: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCode(tt.code))
		})
	}
}

func TestSameLine(t *testing.T) {
	assert.True(t, SameLine("01-01", "01-09"))
	assert.False(t, SameLine("01-01", "02-01"))
	assert.False(t, SameLine("0101", "0102"), "codes without separator have no line")
	assert.False(t, SameLine("-01", "-02"), "empty prefixes are not a line")
}

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "01-03", FormatCode("01", 3))
	assert.Equal(t, "01-10", FormatCode("01", 10))
	assert.Equal(t, "X-100", FormatCode("X", 100))
}
