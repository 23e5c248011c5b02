package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// ValidationDetails turns validator errors into a field -> message map,
// keyed by the json field name (see Init). Non-validator errors produce
// a single "body" entry so malformed JSON still yields a uniform shape.
func ValidationDetails(err error) map[string]string {
	details := make(map[string]string)

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		details["body"] = "Request body is malformed"
		return details
	}

	for _, e := range errs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			details[field] = formatFieldName(field) + " is required"
		case "email":
			details[field] = formatFieldName(field) + " must be a valid email address"
		case "datetime":
			details[field] = formatFieldName(field) + " must be a date in YYYY-MM-DD format"
		case "min":
			details[field] = formatFieldName(field) + " must not be empty"
		default:
			details[field] = formatFieldName(field) + " is invalid"
		}
	}

	return details
}
