package models

import "fmt"

// Tier is a pricing category.
type Tier string

const (
	TierRegular Tier = "regular"
	TierExpress Tier = "express"
)

// Tiers lists every supported tier in display order.
var Tiers = []Tier{TierRegular, TierExpress}

// ParseTier accepts "regular" or "express"; the empty string means regular.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case "", TierRegular:
		return TierRegular, nil
	case TierExpress:
		return TierExpress, nil
	default:
		return "", fmt.Errorf("unknown tier %q", s)
	}
}

// FareEntry is a stored price for an unordered station pair.
//
// Price precedence for a tier is: the tier field, then the legacy Cost,
// then zero. A nil pointer means the field is absent.
type FareEntry struct {
	From        string   `json:"from" validate:"required,endsnotwith=.json"`
	To          string   `json:"to" validate:"required,nefield=From,endsnotwith=.json"`
	CostRegular *float64 `json:"cost_regular,omitempty" validate:"omitempty,gte=0"`
	CostExpress *float64 `json:"cost_express,omitempty" validate:"omitempty,gte=0"`
	Cost        *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
}

// Price resolves the entry's price for tier.
func (f FareEntry) Price(tier Tier) float64 {
	field := f.CostRegular
	if tier == TierExpress {
		field = f.CostExpress
	}
	if field != nil {
		return *field
	}
	if f.Cost != nil {
		return *f.Cost
	}
	return 0
}

// Connects reports whether the entry is for the pair a, b in either direction.
func (f FareEntry) Connects(a, b string) bool {
	return (f.From == a && f.To == b) || (f.From == b && f.To == a)
}

// Amount returns a pointer to v, for filling optional price fields.
func Amount(v float64) *float64 {
	return &v
}

// Segment is a station pair selected for a bulk fare update.
type Segment struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

// BulkFareRequest applies one regular/express price pair to many segments.
// A nil CostExpress means "same as CostRegular".
type BulkFareRequest struct {
	Segments    []Segment `json:"segments" validate:"required,min=1"`
	CostRegular float64   `json:"cost_regular"`
	CostExpress *float64  `json:"cost_express,omitempty"`
}

// SegmentResult reports the outcome of one segment of a bulk update.
type SegmentResult struct {
	From  string `json:"from"`
	To    string `json:"to"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BulkFareSummary is the response body of a bulk update.
type BulkFareSummary struct {
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Results   []SegmentResult `json:"results"`
}

// NewBulkFareSummary counts successes and failures in results.
func NewBulkFareSummary(results []SegmentResult) BulkFareSummary {
	summary := BulkFareSummary{Results: results}
	for _, r := range results {
		if r.OK {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	return summary
}
