package restapi

import (
	"fmt"
	"net/http"

	"faregrid.ticketconsole.org/internal/appconf"
	"faregrid.ticketconsole.org/internal/models"
	"faregrid.ticketconsole.org/internal/webui"
	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers every endpoint on router. All routes except health
// require a valid ?key=.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/api/health", api.healthHandler)

	router.Handler(http.MethodGet, "/api/stations", validateAPIKey(api, api.listStationsHandler))
	router.Handler(http.MethodPost, "/api/stations", validateAPIKey(api, api.saveStationHandler))
	router.Handler(http.MethodGet, "/api/stations/:code", validateAPIKey(api, api.stationHandler))
	router.Handler(http.MethodPut, "/api/stations/:code", validateAPIKey(api, api.updateStationHandler))
	router.Handler(http.MethodDelete, "/api/stations/:code", validateAPIKey(api, api.deleteStationHandler))

	router.Handler(http.MethodGet, "/api/lines", validateAPIKey(api, api.listLinesHandler))
	router.Handler(http.MethodPost, "/api/lines", validateAPIKey(api, api.saveLineHandler))
	router.Handler(http.MethodGet, "/api/lines/:id", validateAPIKey(api, api.lineHandler))
	router.Handler(http.MethodPut, "/api/lines/:id", validateAPIKey(api, api.updateLineHandler))
	router.Handler(http.MethodDelete, "/api/lines/:id", validateAPIKey(api, api.deleteLineHandler))

	router.Handler(http.MethodGet, "/api/fares", validateAPIKey(api, api.listFaresHandler))
	router.Handler(http.MethodPost, "/api/fares", validateAPIKey(api, api.saveFareHandler))
	router.Handler(http.MethodPost, "/api/fares/bulk", validateAPIKey(api, api.bulkFaresHandler))
	router.Handler(http.MethodGet, "/api/fares/:from/:to", validateAPIKey(api, api.fareHandler))
	router.Handler(http.MethodDelete, "/api/fares/:from/:to", validateAPIKey(api, api.deleteFareHandler))

	router.Handler(http.MethodGet, "/api/quote", validateAPIKey(api, api.quoteHandler))
	router.Handler(http.MethodGet, "/api/fare-matrix", validateAPIKey(api, api.fareMatrixHandler))

	router.Handler(http.MethodGet, "/api/export", validateAPIKey(api, api.exportHandler))
	router.Handler(http.MethodPost, "/api/import", validateAPIKey(api, api.importHandler))
}

// Routes builds the router with JSON 404 and 405 responses.
func (api *RestAPI) Routes() *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.sendResponse(w, r, models.NewResponse(http.StatusMethodNotAllowed, nil, "method not allowed"))
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		api.serverErrorResponse(w, r, fmt.Errorf("panic: %v", v))
	}
	api.SetRoutes(router)
	if api.Config.Env != appconf.Production {
		webui.New(api.Application).SetWebUIRoutes(router)
	}
	return router
}
