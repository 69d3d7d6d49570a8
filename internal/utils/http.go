package utils

import (
	"net/http"
	"strings"

	"faregrid.ticketconsole.org/internal/models"
	"github.com/julienschmidt/httprouter"
)

// ExtractIDFromParams retrieves a parameter value from the request context
// without its optional format suffix. ValidateID keeps the suffix out of
// stored identifiers.
func ExtractIDFromParams(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	return strings.TrimSuffix(params.ByName(paramName), models.FormatSuffix)
}
