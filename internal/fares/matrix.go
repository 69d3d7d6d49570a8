package fares

import (
	"encoding/json"
	"math"

	"faregrid.ticketconsole.org/internal/models"
)

// DefaultLineColor is used for lines stored without a colour.
const DefaultLineColor = "#93a2b7"

// maxHintColors caps the colour hints of one matrix cell.
const maxHintColors = 3

// CellState tells apart priced, unknown and diagonal matrix cells.
type CellState uint8

const (
	CellUnknown CellState = iota
	CellPriced
	CellNotApplicable
)

// Cell is one entry of a fare matrix.
type Cell struct {
	State CellState
	Fare  float64
}

// Value returns the fare of a priced cell.
func (c Cell) Value() (float64, bool) {
	return c.Fare, c.State == CellPriced
}

// MarshalJSON encodes a priced cell as a number, an unknown cell as null and
// a diagonal cell as "-".
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.State {
	case CellPriced:
		return json.Marshal(c.Fare)
	case CellNotApplicable:
		return []byte(`"-"`), nil
	default:
		return []byte("null"), nil
	}
}

// Matrix is the fare grid between display groups for one tier. Rows and
// columns share the same group order.
type Matrix struct {
	Tier      models.Tier  `json:"tier"`
	Rows      []Group      `json:"rows"`
	Cells     [][]Cell     `json:"cells"`
	LineHints [][][]string `json:"line_hints"`
	MaxFare   float64      `json:"max_fare"`
}

// MatrixBuilder resolves every pair of display groups of a snapshot.
type MatrixBuilder struct {
	resolver        *Resolver
	linesForStation map[string][]models.Line
}

// NewMatrixBuilder indexes a snapshot for matrix builds.
func NewMatrixBuilder(snapshot models.Snapshot, opts ...Option) *MatrixBuilder {
	b := &MatrixBuilder{
		resolver:        NewResolver(snapshot, opts...),
		linesForStation: make(map[string][]models.Line),
	}
	for _, line := range snapshot.Lines {
		line.Stations = append([]string(nil), line.Stations...)
		for _, code := range line.Stations {
			b.linesForStation[code] = append(b.linesForStation[code], line)
		}
	}
	return b
}

// Resolver is the resolver the builder prices cells with.
func (b *MatrixBuilder) Resolver() *Resolver {
	return b.resolver
}

// Build computes the grid for tier. A cell holds the cheapest known fare
// between any member codes of its two groups.
func (b *MatrixBuilder) Build(tier models.Tier) Matrix {
	groups := b.resolver.Catalog().DisplayGroups()
	m := Matrix{
		Tier:      tier,
		Rows:      groups,
		Cells:     make([][]Cell, len(groups)),
		LineHints: make([][][]string, len(groups)),
		MaxFare:   1,
	}

	for i, ga := range groups {
		m.Cells[i] = make([]Cell, len(groups))
		m.LineHints[i] = make([][]string, len(groups))
		for j, gb := range groups {
			if i == j {
				m.Cells[i][j] = Cell{State: CellNotApplicable}
				m.LineHints[i][j] = []string{}
				continue
			}
			cell, highest := b.cell(ga, gb, tier)
			if highest > m.MaxFare {
				m.MaxFare = highest
			}
			m.Cells[i][j] = cell
			m.LineHints[i][j] = b.LineHints(ga, gb, tier)
		}
	}
	return m
}

// cell returns the cheapest fare between the groups and the most expensive
// one among their member pairs. The latter only scales shading.
func (b *MatrixBuilder) cell(ga, gb Group, tier models.Tier) (Cell, float64) {
	cell := Cell{State: CellUnknown}
	highest := 0.0
	for _, a := range ga.Codes {
		for _, c := range gb.Codes {
			v, ok := b.resolver.BestFare(a, c, tier)
			if !ok {
				continue
			}
			highest = max(highest, v)
			if cell.State != CellPriced || v < cell.Fare {
				cell = Cell{State: CellPriced, Fare: v}
			}
		}
	}
	return cell, highest
}

// LineHints returns up to three line colours connecting two groups, for
// display only.
func (b *MatrixBuilder) LineHints(ga, gb Group, tier models.Tier) []string {
	hints := []string{}
	seen := make(map[string]bool)
	for _, a := range ga.Codes {
		for _, c := range gb.Codes {
			for _, color := range b.routeColors(a, c, tier) {
				if seen[color] {
					continue
				}
				seen[color] = true
				hints = append(hints, color)
			}
		}
	}
	if len(hints) > maxHintColors {
		hints = hints[:maxHintColors]
	}
	return hints
}

// routeColors picks the colour of a line serving both codes. Failing that it
// picks the start and end lines around the transfer hub with the cheapest
// transfer fare.
func (b *MatrixBuilder) routeColors(a, c string, tier models.Tier) []string {
	la, lc := b.linesForStation[a], b.linesForStation[c]
	for _, x := range la {
		for _, y := range lc {
			if x.ID == y.ID {
				return []string{lineColor(x)}
			}
		}
	}

	var best []string
	bestCost := math.Inf(1)
	for _, hub := range b.resolver.Catalog().TransferHubs() {
		start, okStart := firstLineServing(la, hub)
		end, okEnd := firstLineServing(lc, hub)
		if !okStart || !okEnd {
			continue
		}
		cost := b.hubCost(a, c, hub, tier)
		if best != nil && cost >= bestCost {
			continue
		}
		bestCost = cost
		if start.ID == end.ID {
			best = []string{lineColor(start)}
		} else {
			best = []string{lineColor(start), lineColor(end)}
		}
	}
	return best
}

func (b *MatrixBuilder) hubCost(a, c string, hub []string, tier models.Tier) float64 {
	cost := math.Inf(1)
	for _, gi := range hub {
		left, ok := b.resolver.LineFare(a, gi, tier)
		if !ok {
			continue
		}
		for _, gj := range hub {
			if right, ok := b.resolver.LineFare(gj, c, tier); ok && left+right < cost {
				cost = left + right
			}
		}
	}
	return cost
}

func firstLineServing(lines []models.Line, hub []string) (models.Line, bool) {
	for _, line := range lines {
		for _, code := range hub {
			if line.HasStation(code) {
				return line, true
			}
		}
	}
	return models.Line{}, false
}

func lineColor(l models.Line) string {
	if l.Color == "" {
		return DefaultLineColor
	}
	return l.Color
}

// BuildMatrix is a convenience wrapper building one tier's grid.
func BuildMatrix(snapshot models.Snapshot, tier models.Tier, opts ...Option) Matrix {
	return NewMatrixBuilder(snapshot, opts...).Build(tier)
}

// BuildMatrices builds the grid of every tier from a single index of the
// snapshot.
func BuildMatrices(snapshot models.Snapshot, opts ...Option) map[models.Tier]Matrix {
	b := NewMatrixBuilder(snapshot, opts...)
	out := make(map[models.Tier]Matrix, len(models.Tiers))
	for _, tier := range models.Tiers {
		out[tier] = b.Build(tier)
	}
	return out
}
