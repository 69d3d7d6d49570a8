package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"faregrid.ticketconsole.org/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	// Allow alphanumeric, underscore, hyphen, dot: station codes and line IDs
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateID validates that a station code or line ID is safe and within
// reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 64 {
		return errors.New("id too long (max 64 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	if strings.HasSuffix(id, models.FormatSuffix) {
		return errors.New("id must not end with " + models.FormatSuffix)
	}

	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace
func SanitizeInput(input string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(input, ""))
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateStruct checks the validate tags of v and returns the failures keyed
// by JSON field path, in the shape of the API's fieldErrors envelope. The
// result is empty when v is valid.
func ValidateStruct(v any) map[string][]string {
	fieldErrors := make(map[string][]string)

	err := structValidator().Struct(v)
	if err == nil {
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors["body"] = append(fieldErrors["body"], err.Error())
		return fieldErrors
	}
	for _, fe := range validationErrors {
		key := fieldPath(fe.Namespace())
		fieldErrors[key] = append(fieldErrors[key], fieldMessage(fe))
	}
	return fieldErrors
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must have at least " + fe.Param() + " entries"
	case "hexcolor":
		return "must be a hex color such as #ff0000"
	case "nefield":
		return "must differ from " + strings.ToLower(fe.Param())
	case "endsnotwith":
		return "must not end with " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
