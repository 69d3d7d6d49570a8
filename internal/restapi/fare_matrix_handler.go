package restapi

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"faregrid.ticketconsole.org/internal/fares"
	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/models"
	"faregrid.ticketconsole.org/internal/utils"
)

const tierAll = "all"

// fareMatrixHandler renders the display-group fare grid. tier may be
// regular, express or all; format is json or csv (single tier only).
func (api *RestAPI) fareMatrixHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	tier, fieldErrors := utils.ParseChoiceParam(params, "tier", string(models.TierRegular),
		[]string{string(models.TierRegular), string(models.TierExpress), tierAll}, nil)
	format, fieldErrors := utils.ParseChoiceParam(params, "format", "json", []string{"json", "csv"}, fieldErrors)
	if format == "csv" && tier == tierAll {
		fieldErrors["format"] = append(fieldErrors["format"], "csv output needs a single tier")
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	snap, err := api.Store.Snapshot(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	if tier == tierAll {
		api.sendResponse(w, r, models.NewOKResponse(fares.BuildMatrices(snap, api.FareOptions()...)))
		return
	}

	matrix := api.NewMatrixBuilder(snap).Build(models.Tier(tier))
	if format == "csv" {
		api.writeMatrixCSV(w, matrix)
		return
	}
	api.sendResponse(w, r, models.NewOKResponse(matrix))
}

func (api *RestAPI) writeMatrixCSV(w http.ResponseWriter, m fares.Matrix) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"fare-matrix-%s.csv\"", m.Tier))

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(m.Rows)+1)
	header = append(header, "")
	for _, g := range m.Rows {
		header = append(header, g.Label())
	}
	_ = cw.Write(header)

	for i, g := range m.Rows {
		record := make([]string, 0, len(m.Rows)+1)
		record = append(record, g.Label())
		for _, cell := range m.Cells[i] {
			record = append(record, csvCell(cell))
		}
		_ = cw.Write(record)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logging.LogError(api.Logger, "failed to write fare matrix csv", err)
	}
}

func csvCell(c fares.Cell) string {
	switch c.State {
	case fares.CellPriced:
		return strconv.FormatFloat(c.Fare, 'f', -1, 64)
	case fares.CellNotApplicable:
		return "-"
	default:
		return ""
	}
}
