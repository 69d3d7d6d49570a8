package restapi

import (
	"encoding/json"
	"io"
	"net/http"

	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/models"
)

// maxBodyBytes bounds request bodies; a full network export fits well below.
const maxBodyBytes = 16 << 20

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	setJSONResponseType(&w)
	if response.Code != 0 && response.Code != http.StatusOK {
		w.WriteHeader(response.Code)
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(api.Logger, "failed to encode response", err)
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewResponse(http.StatusNotFound, nil, "resource not found"))
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}

// decodeJSONBody decodes the request body into dst. On failure the problem
// is returned in fieldErrors form under "body".
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) map[string][]string {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		msg := err.Error()
		if err == io.EOF {
			msg = "request body must not be empty"
		}
		return map[string][]string{"body": {msg}}
	}
	if dec.More() {
		return map[string][]string{"body": {"request body must contain a single JSON value"}}
	}
	return nil
}
