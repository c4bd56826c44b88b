package organisme

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fonction-publique/sigrh/pkg/constants"
	"github.com/fonction-publique/sigrh/pkg/intl"
	"github.com/fonction-publique/sigrh/pkg/serrors"
)

type CreateDTO struct {
	Code string `json:"code" validate:"required"`
	Nom  string `json:"nom" validate:"required"`
	Type string `json:"type" validate:"required,oneof=PRINCIPAL SECONDAIRE"`
}

func (d *CreateDTO) Normalize() {
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	d.Nom = strings.TrimSpace(d.Nom)
	d.Type = strings.ToUpper(strings.TrimSpace(d.Type))
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}

	validationErrors := make(serrors.ValidationErrors)
	for field, err := range serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors), func(field string) string {
		return fmt.Sprintf("Staffing.Fields.%s", field)
	}) {
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

func (d *CreateDTO) ToEntity() Organisme {
	return New(d.Code, d.Nom, Type(d.Type))
}
