package restapi

import (
	"net/http"

	"faregrid.ticketconsole.org/internal/models"
	"faregrid.ticketconsole.org/internal/utils"
)

// quoteHandler resolves the fare between two stations and explains how it
// was found. An unknown fare is a successful response with a null fare.
func (api *RestAPI) quoteHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	from, fieldErrors := utils.RequireParam(params, "from", nil)
	to, fieldErrors := utils.RequireParam(params, "to", fieldErrors)
	tier, fieldErrors := utils.ParseTierParam(params, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	snap, err := api.Store.Snapshot(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	resolver := api.NewResolver(snap)
	quote := resolver.Explain(from, to, tier)

	refs := models.NewEmptyReferences()
	for _, code := range []string{from, to, quote.ViaFrom, quote.ViaTo} {
		if s, ok := resolver.Catalog().Station(code); ok {
			refs.AddStation(s)
		}
	}
	api.sendResponse(w, r, models.NewEntryResponse(quote, refs))
}
