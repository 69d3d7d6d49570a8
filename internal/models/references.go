package models

// ReferencesModel References model for related data
type ReferencesModel struct {
	Stations []Station `json:"stations"`
	Lines    []Line    `json:"lines"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Stations: []Station{},
		Lines:    []Line{},
	}
}

// AddStation appends s unless a station with the same code is already referenced.
func (r *ReferencesModel) AddStation(s Station) {
	for _, existing := range r.Stations {
		if existing.Code == s.Code {
			return
		}
	}
	r.Stations = append(r.Stations, s)
}
