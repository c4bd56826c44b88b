package affectation

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fonction-publique/sigrh/pkg/constants"
	"github.com/fonction-publique/sigrh/pkg/intl"
	"github.com/fonction-publique/sigrh/pkg/serrors"
)

type TerminateDTO struct {
	Motif string `json:"motif" validate:"omitempty,max=500"`
}

func (d *TerminateDTO) Normalize() {
	d.Motif = strings.TrimSpace(d.Motif)
}

func (d *TerminateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}

	validationErrors := make(serrors.ValidationErrors)
	validatorErrs := errs.(validator.ValidationErrors)
	getFieldLocaleKey := func(field string) string {
		return fmt.Sprintf("Staffing.Fields.%s", field)
	}
	for field, err := range serrors.ProcessValidatorErrors(validatorErrs, getFieldLocaleKey) {
		validationErrors[field] = err
	}

	if l, ok := intl.UseLocalizer(ctx); ok {
		return serrors.LocalizeValidationErrors(validationErrors, l), false
	}
	out := make(map[string]string, len(validationErrors))
	for field, err := range validationErrors {
		out[field] = err.Message
	}
	return out, false
}
