package poste

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fonction-publique/sigrh/pkg/constants"
	"github.com/fonction-publique/sigrh/pkg/intl"
	"github.com/fonction-publique/sigrh/pkg/serrors"
)

type CreateDTO struct {
	Code          string          `json:"code" validate:"required"`
	Titre         string          `json:"titre" validate:"required"`
	Niveau        int             `json:"niveau" validate:"required,min=1,max=5"`
	OrganismeCode string          `json:"organisme_code" validate:"required"`
	SalaireMin    decimal.Decimal `json:"salaire_min"`
	SalaireMax    decimal.Decimal `json:"salaire_max"`
}

func (d *CreateDTO) Normalize() {
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	d.Titre = strings.TrimSpace(d.Titre)
	d.OrganismeCode = strings.ToUpper(strings.TrimSpace(d.OrganismeCode))
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()

	out := map[string]string{}
	errs := constants.Validate.Struct(d)
	if errs != nil {
		validationErrors := make(serrors.ValidationErrors)
		for field, err := range serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors), func(field string) string {
			return fmt.Sprintf("Staffing.Fields.%s", field)
		}) {
			validationErrors[field] = err
		}
		if l, ok := intl.UseLocalizer(ctx); ok {
			out = serrors.LocalizeValidationErrors(validationErrors, l)
		} else {
			for field, err := range validationErrors {
				out[field] = err.Message
			}
		}
	}

	// salary band coherence cannot be expressed with field tags
	if d.SalaireMin.GreaterThan(d.SalaireMax) {
		out["SalaireMin"] = "salaire_min must not exceed salaire_max"
	}
	return out, len(out) == 0
}

func (d *CreateDTO) ToEntity() Poste {
	return New(d.Code, d.Titre, d.Niveau, d.OrganismeCode, d.SalaireMin, d.SalaireMax)
}
