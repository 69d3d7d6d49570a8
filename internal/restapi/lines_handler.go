package restapi

import (
	"net/http"

	"faregrid.ticketconsole.org/internal/models"
	"faregrid.ticketconsole.org/internal/utils"
)

// lineReferences collects the stations served by lines.
func (api *RestAPI) lineReferences(r *http.Request, lines ...models.Line) (models.ReferencesModel, error) {
	refs := models.NewEmptyReferences()
	stations, err := api.Store.Stations(r.Context())
	if err != nil {
		return refs, err
	}
	byCode := make(map[string]models.Station, len(stations))
	for _, s := range stations {
		byCode[s.Code] = s
	}
	for _, line := range lines {
		for _, code := range line.Stations {
			if s, ok := byCode[code]; ok {
				refs.AddStation(s)
			}
		}
	}
	return refs, nil
}

func (api *RestAPI) listLinesHandler(w http.ResponseWriter, r *http.Request) {
	lines, err := api.Store.Lines(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	refs, err := api.lineReferences(r, lines...)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewListResponse(lines, refs))
}

func (api *RestAPI) lineHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	line, err := api.Store.Line(r.Context(), id)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	refs, err := api.lineReferences(r, line)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(line, refs))
}

func (api *RestAPI) saveLineHandler(w http.ResponseWriter, r *http.Request) {
	var line models.Line
	if fieldErrors := decodeJSONBody(w, r, &line); fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	api.writeLine(w, r, line)
}

func (api *RestAPI) updateLineHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	var line models.Line
	if fieldErrors := decodeJSONBody(w, r, &line); fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	if line.ID != "" && line.ID != id {
		api.validationErrorResponse(w, r, map[string][]string{"id": {"must match the line id in the path"}})
		return
	}
	line.ID = id

	if _, err := api.Store.Line(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.writeLine(w, r, line)
}

func (api *RestAPI) writeLine(w http.ResponseWriter, r *http.Request, line models.Line) {
	line.DisplayName = utils.SanitizeInput(line.DisplayName)
	line.EnName = utils.SanitizeInput(line.EnName)
	if line.Stations == nil {
		line.Stations = []string{}
	}

	fieldErrors := utils.ValidateStruct(line)
	if err := utils.ValidateID(line.ID); err != nil && len(fieldErrors["id"]) == 0 {
		fieldErrors["id"] = append(fieldErrors["id"], err.Error())
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := api.Store.SaveLine(r.Context(), line); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	refs, err := api.lineReferences(r, line)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(line, refs))
}

func (api *RestAPI) deleteLineHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := api.Store.DeleteLine(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewOKResponse(nil))
}
