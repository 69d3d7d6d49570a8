package utils

import (
	"fmt"
	"strings"

	"faregrid.ticketconsole.org/internal/models"
)

// ValidateSnapshot sanitizes names in place and returns every entity error
// keyed by its position, e.g. "lines[2].color". An empty map means the
// snapshot can be imported.
func ValidateSnapshot(snap *models.Snapshot) map[string][]string {
	fieldErrors := make(map[string][]string)

	for i := range snap.Stations {
		s := &snap.Stations[i]
		s.Name = SanitizeInput(s.Name)
		s.EnName = SanitizeInput(s.EnName)
		errs := ValidateStruct(*s)
		if err := ValidateID(s.Code); err != nil && len(errs["code"]) == 0 {
			errs["code"] = append(errs["code"], err.Error())
		}
		PrefixErrors(fieldErrors, fmt.Sprintf("stations[%d]", i), errs)
	}

	for i := range snap.Lines {
		l := &snap.Lines[i]
		l.DisplayName = SanitizeInput(l.DisplayName)
		l.EnName = SanitizeInput(l.EnName)
		if l.Stations == nil {
			l.Stations = []string{}
		}
		errs := ValidateStruct(*l)
		if err := ValidateID(l.ID); err != nil && len(errs["id"]) == 0 {
			errs["id"] = append(errs["id"], err.Error())
		}
		PrefixErrors(fieldErrors, fmt.Sprintf("lines[%d]", i), errs)
	}

	for i, entry := range snap.Fares {
		PrefixErrors(fieldErrors, fmt.Sprintf("fares[%d]", i), ValidateStruct(entry))
	}
	return fieldErrors
}

// PrefixErrors nests fieldErrors under prefix in dst.
func PrefixErrors(dst map[string][]string, prefix string, fieldErrors map[string][]string) {
	for k, v := range fieldErrors {
		key := prefix
		if k != "" {
			key = prefix + "." + strings.TrimPrefix(k, ".")
		}
		dst[key] = append(dst[key], v...)
	}
}
