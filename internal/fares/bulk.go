package fares

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"faregrid.ticketconsole.org/internal/models"
)

// ErrInvalidSegment marks a bulk segment rejected before it was written.
var ErrInvalidSegment = errors.New("invalid segment")

// FareWriter persists one fare entry, replacing the unordered pair.
type FareWriter interface {
	UpsertFare(ctx context.Context, entry models.FareEntry) error
}

// ApplyBulk writes the request's prices to every segment independently. A
// segment that fails validation or is rejected by the writer is reported in
// its result and the remaining segments are still attempted. Results are in
// request order.
func ApplyBulk(ctx context.Context, w FareWriter, req models.BulkFareRequest) []models.SegmentResult {
	express := req.CostRegular
	if req.CostExpress != nil {
		express = *req.CostExpress
	}

	results := make([]models.SegmentResult, 0, len(req.Segments))
	for _, seg := range req.Segments {
		result := models.SegmentResult{From: seg.From, To: seg.To}
		err := validateSegment(seg, req.CostRegular, express)
		if err == nil {
			err = w.UpsertFare(ctx, models.FareEntry{
				From:        seg.From,
				To:          seg.To,
				CostRegular: models.Amount(req.CostRegular),
				CostExpress: models.Amount(express),
			})
		}
		if err != nil {
			result.Error = err.Error()
		} else {
			result.OK = true
		}
		results = append(results, result)
	}
	return results
}

func validateSegment(seg models.Segment, regular, express float64) error {
	switch {
	case seg.From == "" || seg.To == "":
		return fmt.Errorf("%w: from and to are required", ErrInvalidSegment)
	case strings.HasSuffix(seg.From, models.FormatSuffix) || strings.HasSuffix(seg.To, models.FormatSuffix):
		return fmt.Errorf("%w: codes must not end with %s", ErrInvalidSegment, models.FormatSuffix)
	case seg.From == seg.To:
		return fmt.Errorf("%w: from and to must differ", ErrInvalidSegment)
	case regular <= 0:
		return fmt.Errorf("%w: cost_regular must be positive", ErrInvalidSegment)
	case express < 0:
		return fmt.Errorf("%w: cost_express must not be negative", ErrInvalidSegment)
	}
	return nil
}
