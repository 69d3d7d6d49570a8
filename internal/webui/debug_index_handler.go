package webui

import (
	"embed"
	"html/template"
	"net/http"

	"faregrid.ticketconsole.org/internal/models"
	"github.com/davecgh/go-spew/spew"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title     string
	Pre       string
	DataTypes []string
	Key       string
}

var dataTypes = []string{"stations", "lines", "fares", "groups", "hubs", "matrix_regular", "matrix_express"}

func writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := debugTemplate.Execute(w, debugData{
		Title:     title,
		Pre:       spew.Sdump(data),
		DataTypes: dataTypes,
		Key:       r.URL.Query().Get("key"),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := webUI.Store.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var data interface{}
	var title string

	switch r.URL.Query().Get("dataType") {
	case "stations":
		data = snap.Stations
		title = "Network - Stations"
	case "lines":
		data = snap.Lines
		title = "Network - Lines"
	case "fares":
		data = snap.Fares
		title = "Network - Fares"
	case "groups":
		data = webUI.NewResolver(snap).Catalog().DisplayGroups()
		title = "Catalog - Display Groups"
	case "hubs":
		data = webUI.NewResolver(snap).Catalog().TransferHubs()
		title = "Catalog - Transfer Hubs"
	case "matrix_regular":
		data = webUI.NewMatrixBuilder(snap).Build(models.TierRegular)
		title = "Fare Matrix - Regular"
	case "matrix_express":
		data = webUI.NewMatrixBuilder(snap).Build(models.TierExpress)
		title = "Fare Matrix - Express"
	default:
		data = snap.Counts()
		title = "Choose a data type"
	}

	writeDebugData(w, r, title, data)
}
