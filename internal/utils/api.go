package utils

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"faregrid.ticketconsole.org/internal/models"
)

// ParseTierParam reads the "tier" query parameter. A missing tier means
// regular; an unknown one is recorded in fieldErrors.
func ParseTierParam(params url.Values, fieldErrors map[string][]string) (models.Tier, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	tier, err := models.ParseTier(params.Get("tier"))
	if err != nil {
		fieldErrors["tier"] = append(fieldErrors["tier"], fmt.Sprintf("Invalid field value for field %q.", "tier"))
	}
	return tier, fieldErrors
}

// ParseChoiceParam reads a query parameter that must be one of allowed,
// defaulting to def when absent.
func ParseChoiceParam(params url.Values, key, def string, allowed []string, fieldErrors map[string][]string) (string, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := strings.ToLower(strings.TrimSpace(params.Get(key)))
	if val == "" {
		return def, fieldErrors
	}
	if !slices.Contains(allowed, val) {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return def, fieldErrors
	}
	return val, fieldErrors
}

// RequireParam records a missing query parameter in fieldErrors.
func RequireParam(params url.Values, key string, fieldErrors map[string][]string) (string, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := strings.TrimSpace(params.Get(key))
	if val == "" {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Missing required field %q.", key))
		return "", fieldErrors
	}
	if err := ValidateID(val); err != nil {
		fieldErrors[key] = append(fieldErrors[key], err.Error())
	}
	return val, fieldErrors
}
