package webui

import (
	"net/http"

	"faregrid.ticketconsole.org/internal/app"
	"github.com/julienschmidt/httprouter"
)

// WebUI serves the HTML debug pages.
type WebUI struct {
	*app.Application
}

func New(application *app.Application) *WebUI {
	return &WebUI{Application: application}
}

// SetWebUIRoutes mounts the debug pages. They need the same ?key= as the API.
func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.requireKey(webUI.debugIndexHandler))
}

func (webUI *WebUI) requireKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if webUI.RequestHasInvalidAPIKey(r) {
			http.Error(w, "permission denied", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
