package restapi

import (
	"net/http"

	"faregrid.ticketconsole.org/internal/models"
	"faregrid.ticketconsole.org/internal/utils"
)

func (api *RestAPI) listStationsHandler(w http.ResponseWriter, r *http.Request) {
	stations, err := api.Store.Stations(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewListResponse(stations, models.NewEmptyReferences()))
}

func (api *RestAPI) stationHandler(w http.ResponseWriter, r *http.Request) {
	code := utils.ExtractIDFromParams(r, "code")
	if err := utils.ValidateID(code); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"code": {err.Error()}})
		return
	}

	station, err := api.Store.Station(r.Context(), code)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(station, models.NewEmptyReferences()))
}

// saveStationHandler creates a station or replaces the names of an existing one.
func (api *RestAPI) saveStationHandler(w http.ResponseWriter, r *http.Request) {
	var station models.Station
	if fieldErrors := decodeJSONBody(w, r, &station); fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	api.writeStation(w, r, station)
}

// updateStationHandler replaces an existing station. The code comes from the
// path; a body code, when present, must match it.
func (api *RestAPI) updateStationHandler(w http.ResponseWriter, r *http.Request) {
	code := utils.ExtractIDFromParams(r, "code")

	var station models.Station
	if fieldErrors := decodeJSONBody(w, r, &station); fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	if station.Code != "" && station.Code != code {
		api.validationErrorResponse(w, r, map[string][]string{"code": {"must match the station code in the path"}})
		return
	}
	station.Code = code

	if _, err := api.Store.Station(r.Context(), code); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.writeStation(w, r, station)
}

func (api *RestAPI) writeStation(w http.ResponseWriter, r *http.Request, station models.Station) {
	station.Code = utils.SanitizeInput(station.Code)
	station.Name = utils.SanitizeInput(station.Name)
	station.EnName = utils.SanitizeInput(station.EnName)

	fieldErrors := utils.ValidateStruct(station)
	if err := utils.ValidateID(station.Code); err != nil && len(fieldErrors["code"]) == 0 {
		fieldErrors["code"] = append(fieldErrors["code"], err.Error())
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := api.Store.SaveStation(r.Context(), station); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(station, models.NewEmptyReferences()))
}

func (api *RestAPI) deleteStationHandler(w http.ResponseWriter, r *http.Request) {
	code := utils.ExtractIDFromParams(r, "code")
	if err := api.Store.DeleteStation(r.Context(), code); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewOKResponse(nil))
}
