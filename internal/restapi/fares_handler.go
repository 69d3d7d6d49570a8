package restapi

import (
	"log/slog"
	"net/http"

	"faregrid.ticketconsole.org/internal/fares"
	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/models"
	"faregrid.ticketconsole.org/internal/utils"
)

// stationReferences looks up the named stations; unknown codes are skipped.
func (api *RestAPI) stationReferences(r *http.Request, codes ...string) models.ReferencesModel {
	refs := models.NewEmptyReferences()
	for _, code := range codes {
		if s, err := api.Store.Station(r.Context(), code); err == nil {
			refs.AddStation(s)
		}
	}
	return refs
}

func (api *RestAPI) listFaresHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := api.Store.Fares(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewListResponse(entries, models.NewEmptyReferences()))
}

func (api *RestAPI) fareHandler(w http.ResponseWriter, r *http.Request) {
	from := utils.ExtractIDFromParams(r, "from")
	to := utils.ExtractIDFromParams(r, "to")

	entry, err := api.Store.Fare(r.Context(), from, to)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry, api.stationReferences(r, entry.From, entry.To)))
}

// saveFareHandler stores one entry, replacing whatever exists for the pair.
func (api *RestAPI) saveFareHandler(w http.ResponseWriter, r *http.Request) {
	var entry models.FareEntry
	if fieldErrors := decodeJSONBody(w, r, &entry); fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	fieldErrors := utils.ValidateStruct(entry)
	if entry.CostRegular == nil && entry.CostExpress == nil && entry.Cost == nil {
		fieldErrors["cost_regular"] = append(fieldErrors["cost_regular"], "at least one price is required")
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := api.Store.UpsertFare(r.Context(), entry); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry, api.stationReferences(r, entry.From, entry.To)))
}

func (api *RestAPI) deleteFareHandler(w http.ResponseWriter, r *http.Request) {
	from := utils.ExtractIDFromParams(r, "from")
	to := utils.ExtractIDFromParams(r, "to")

	if err := api.Store.DeleteFare(r.Context(), from, to); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewOKResponse(nil))
}

// bulkFaresHandler applies one price pair to many segments. Segments fail
// independently; any failure turns the status into 207 Multi-Status.
func (api *RestAPI) bulkFaresHandler(w http.ResponseWriter, r *http.Request) {
	var req models.BulkFareRequest
	if fieldErrors := decodeJSONBody(w, r, &req); fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	if fieldErrors := utils.ValidateStruct(req); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	summary := models.NewBulkFareSummary(fares.ApplyBulk(r.Context(), api.Store, req))

	logging.LogOperation(api.Logger, "bulk_fares_applied",
		slog.Int("segments", len(req.Segments)),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed))

	if summary.Failed > 0 {
		api.sendResponse(w, r, models.NewResponse(http.StatusMultiStatus, summary, "some segments failed"))
		return
	}
	api.sendResponse(w, r, models.NewOKResponse(summary))
}
