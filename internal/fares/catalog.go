package fares

import (
	"sort"
	"strings"

	"faregrid.ticketconsole.org/internal/models"
)

// IdentityKey is the display identity of a station: trimmed, lower-cased name
// and English name. Stations without either name have an empty key and never
// join a group.
func IdentityKey(s models.Station) string {
	name := strings.TrimSpace(s.Name)
	enName := strings.TrimSpace(s.EnName)
	if name == "" && enName == "" {
		return ""
	}
	return strings.ToLower(name + "|" + enName)
}

// GroupByIdentity maps each non-empty identity key to the codes carrying it,
// sorted ascending. A group with more than one code is a transfer hub.
func GroupByIdentity(stations []models.Station) map[string][]string {
	groups := make(map[string][]string)
	for _, s := range stations {
		key := IdentityKey(s)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], s.Code)
	}
	for _, codes := range groups {
		sort.Strings(codes)
	}
	return groups
}

// Group is one display station: every code sharing a display identity.
type Group struct {
	Key    string   `json:"key"`
	Name   string   `json:"name"`
	EnName string   `json:"en_name"`
	Codes  []string `json:"codes"`
}

// IsTransferHub reports whether riders can change lines inside the group.
func (g Group) IsTransferHub() bool {
	return len(g.Codes) > 1
}

// Label is the group's primary display label.
func (g Group) Label() string {
	if g.Name != "" {
		return g.Name
	}
	if g.EnName != "" {
		return g.EnName
	}
	if len(g.Codes) > 0 {
		return g.Codes[0]
	}
	return ""
}

// Catalog indexes the stations of one snapshot.
type Catalog struct {
	stations map[string]models.Station
	groups   []Group
	hubs     [][]string
}

// NewCatalog builds the station index and display groups for stations.
func NewCatalog(stations []models.Station) *Catalog {
	c := &Catalog{stations: make(map[string]models.Station, len(stations))}
	for _, s := range stations {
		c.stations[s.Code] = s
	}

	sorted := make([]models.Station, 0, len(c.stations))
	for _, s := range c.stations {
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	byKey := make(map[string]int)
	for _, s := range sorted {
		key := IdentityKey(s)
		if key == "" {
			// Unnamed stations stay quotable but are never displayed.
			continue
		}
		if idx, ok := byKey[key]; ok {
			c.groups[idx].Codes = append(c.groups[idx].Codes, s.Code)
			continue
		}
		byKey[key] = len(c.groups)
		c.groups = append(c.groups, Group{
			Key:    key,
			Name:   strings.TrimSpace(s.Name),
			EnName: strings.TrimSpace(s.EnName),
			Codes:  []string{s.Code},
		})
	}

	// Codes were appended in code order, so every group is already sorted and
	// groups are ordered by their first code.
	for _, g := range c.groups {
		if g.IsTransferHub() {
			c.hubs = append(c.hubs, g.Codes)
		}
	}
	return c
}

// Has reports whether code belongs to a known station.
func (c *Catalog) Has(code string) bool {
	_, ok := c.stations[code]
	return ok
}

// Station returns the station with code.
func (c *Catalog) Station(code string) (models.Station, bool) {
	s, ok := c.stations[code]
	return s, ok
}

// Len is the number of stations.
func (c *Catalog) Len() int {
	return len(c.stations)
}

// DisplayGroups returns every display group of named stations, singletons
// included, ordered by first code.
func (c *Catalog) DisplayGroups() []Group {
	out := make([]Group, len(c.groups))
	for i, g := range c.groups {
		g.Codes = append([]string(nil), g.Codes...)
		out[i] = g
	}
	return out
}

// TransferHubs returns the code lists of every group with more than one code.
func (c *Catalog) TransferHubs() [][]string {
	return c.hubs
}

// HubOf returns the transfer hub containing code, if any.
func (c *Catalog) HubOf(code string) ([]string, bool) {
	for _, hub := range c.hubs {
		for _, member := range hub {
			if member == code {
				return hub, true
			}
		}
	}
	return nil, false
}
