package models

// FormatSuffix is the optional extension accepted on identifiers in request
// paths, as in /api/stations/01-02.json. Stored identifiers may not end with
// it, so stripping it is never ambiguous.
const FormatSuffix = ".json"

// Station is a stop in the network. Code conventionally has the form
// <linePrefix>-<sequenceNumber>, e.g. "01-02".
type Station struct {
	Code   string `json:"code" yaml:"code" validate:"required,max=64,endsnotwith=.json"`
	Name   string `json:"name" yaml:"name" validate:"max=200"`
	EnName string `json:"en_name" yaml:"en_name" validate:"max=200"`
}

// Line is an ordered list of station codes with display metadata.
type Line struct {
	ID          string   `json:"id" yaml:"id" validate:"required,max=64,endsnotwith=.json"`
	DisplayName string   `json:"display_name" yaml:"display_name" validate:"max=200"`
	EnName      string   `json:"en_name,omitempty" yaml:"en_name,omitempty" validate:"max=200"`
	Color       string   `json:"color" yaml:"color" validate:"omitempty,hexcolor"`
	Stations    []string `json:"stations" yaml:"stations" validate:"dive,required"`
}

// HasStation reports whether code appears in the line's station list.
func (l Line) HasStation(code string) bool {
	for _, c := range l.Stations {
		if c == code {
			return true
		}
	}
	return false
}

// Snapshot is a consistent copy of the whole network.
type Snapshot struct {
	Stations []Station   `json:"stations"`
	Lines    []Line      `json:"lines"`
	Fares    []FareEntry `json:"fares"`
}

// Counts returns the number of entities per kind.
func (s Snapshot) Counts() map[string]int {
	return map[string]int{
		"stations": len(s.Stations),
		"lines":    len(s.Lines),
		"fares":    len(s.Fares),
	}
}
