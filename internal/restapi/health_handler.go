package restapi

import (
	"net/http"

	"faregrid.ticketconsole.org/internal/models"
)

type healthStatus struct {
	Status string         `json:"status"`
	Env    string         `json:"env"`
	Counts map[string]int `json:"counts"`
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := api.Store.TableCounts(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(healthStatus{
		Status: "ok",
		Env:    api.Config.Env.String(),
		Counts: counts,
	}, models.NewEmptyReferences()))
}
