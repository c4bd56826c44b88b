package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// ValidationErrors maps a struct field name to its structured error.
type ValidationErrors map[string]*Base

// ProcessValidatorErrors converts go-playground validation failures into
// structured errors. getFieldLocaleKey returns the locale key of the field
// label, or "" when the field has no translation.
func ProcessValidatorErrors(
	errs validator.ValidationErrors,
	getFieldLocaleKey func(field string) string,
) map[string]*Base {
	out := make(map[string]*Base, len(errs))
	for _, err := range errs {
		field := err.Field()
		localeKey := ""
		switch err.Tag() {
		case "required":
			localeKey = "ValidationErrors.Required"
		case "min", "gte":
			localeKey = "ValidationErrors.TooSmall"
		case "max", "lte":
			localeKey = "ValidationErrors.TooLarge"
		case "oneof":
			localeKey = "ValidationErrors.Invalid"
		default:
			localeKey = "ValidationErrors.Invalid"
		}
		out[field] = &Base{
			Code:      fmt.Sprintf("VALIDATION_%s", err.Tag()),
			Message:   err.Error(),
			LocaleKey: localeKey,
		}
		if fieldKey := getFieldLocaleKey(field); fieldKey != "" {
			out[field].Message = fmt.Sprintf("%s: %s", field, err.Tag())
		}
	}
	return out
}

// LocalizeValidationErrors renders each structured error with the given
// localizer, falling back to the raw message when no translation exists.
func LocalizeValidationErrors(errs ValidationErrors, l *i18n.Localizer) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		if err.LocaleKey == "" {
			out[field] = err.Message
			continue
		}
		localized, lerr := l.Localize(&i18n.LocalizeConfig{MessageID: err.LocaleKey})
		if lerr != nil || localized == "" {
			out[field] = err.Message
			continue
		}
		out[field] = localized
	}
	return out
}
