package restapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/models"
	"faregrid.ticketconsole.org/internal/store"
	"faregrid.ticketconsole.org/internal/utils"
)

type importResult struct {
	Mode   string         `json:"mode"`
	Counts map[string]int `json:"counts"`
}

// exportHandler returns the whole network as a downloadable snapshot. The
// body is the bare snapshot, not wrapped in a response envelope, so it can
// be posted back to /api/import unchanged.
func (api *RestAPI) exportHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := api.Store.Snapshot(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	filename := fmt.Sprintf("faregrid-%s.json", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	setJSONResponseType(&w)
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		logging.LogError(api.Logger, "failed to encode snapshot", err)
	}
}

// importHandler loads a snapshot. ?mode=replace clears the network first;
// the default merge mode upserts on top of what is stored.
func (api *RestAPI) importHandler(w http.ResponseWriter, r *http.Request) {
	modeName, fieldErrors := utils.ParseChoiceParam(r.URL.Query(), "mode", "merge", []string{"merge", "replace"}, nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	mode, err := store.ParseImportMode(modeName)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"mode": {err.Error()}})
		return
	}

	var snap models.Snapshot
	if fieldErrors := decodeJSONBody(w, r, &snap); fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	if fieldErrors := utils.ValidateSnapshot(&snap); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := api.Store.ImportSnapshot(r.Context(), snap, mode); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	logging.LogOperation(api.Logger, "snapshot_import_requested",
		slog.String("mode", modeName),
		slog.String("remote_addr", r.RemoteAddr))

	api.sendResponse(w, r, models.NewOKResponse(importResult{Mode: modeName, Counts: snap.Counts()}))
}
