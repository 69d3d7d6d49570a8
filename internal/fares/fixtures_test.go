package fares

import (
	"fmt"
	"log/slog"

	"faregrid.ticketconsole.org/internal/models"
)

func station(code, name, enName string) models.Station {
	return models.Station{Code: code, Name: name, EnName: enName}
}

func regularFare(from, to string, cost float64) models.FareEntry {
	return models.FareEntry{From: from, To: to, CostRegular: models.Amount(cost)}
}

// uniformLine returns stations prefix-01..prefix-n named "<prefix> stop i"
// and a regular fare of cost between each adjacent pair.
func uniformLine(prefix string, n int, cost float64) ([]models.Station, []models.FareEntry) {
	var stations []models.Station
	var entries []models.FareEntry
	for i := 1; i <= n; i++ {
		stations = append(stations, station(FormatCode(prefix, i), fmt.Sprintf("%s stop %d", prefix, i), ""))
		if i > 1 {
			entries = append(entries, regularFare(FormatCode(prefix, i-1), FormatCode(prefix, i), cost))
		}
	}
	return stations, entries
}

// transferNetwork has line 01 (01-01..01-03, 15 end to end) and line 02
// (02-01..02-05, 20 end to end) joined at "Central", which is both 01-03 and
// 02-01.
func transferNetwork() models.Snapshot {
	return models.Snapshot{
		Stations: []models.Station{
			station("01-01", "West", "West"),
			station("01-02", "Market", "Market"),
			station("01-03", "Central", "Central"),
			station("02-01", " central ", "CENTRAL"),
			station("02-02", "Harbor", "Harbor"),
			station("02-03", "Mill", "Mill"),
			station("02-04", "Park", "Park"),
			station("02-05", "East", "East"),
		},
		Lines: []models.Line{
			{ID: "L1", DisplayName: "Line 1", Color: "#ff0000", Stations: []string{"01-01", "01-02", "01-03"}},
			{ID: "L2", DisplayName: "Line 2", Color: "#0000ff", Stations: []string{"02-01", "02-02", "02-03", "02-04", "02-05"}},
		},
		Fares: []models.FareEntry{
			regularFare("01-01", "01-02", 7),
			regularFare("01-03", "01-02", 8),
			regularFare("02-01", "02-02", 5),
			regularFare("02-02", "02-03", 5),
			regularFare("02-03", "02-04", 5),
			regularFare("02-04", "02-05", 5),
		},
	}
}

type recordedEvent struct {
	event string
	attrs []slog.Attr
}

type recordingDiagnostics struct {
	events []recordedEvent
}

func (d *recordingDiagnostics) Enabled() bool { return true }

func (d *recordingDiagnostics) Record(event string, attrs ...slog.Attr) {
	d.events = append(d.events, recordedEvent{event: event, attrs: attrs})
}

func (d *recordingDiagnostics) count(event string) int {
	n := 0
	for _, e := range d.events {
		if e.event == event {
			n++
		}
	}
	return n
}
