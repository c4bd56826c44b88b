package affectation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fonction-publique/sigrh/pkg/constants"
	"github.com/fonction-publique/sigrh/pkg/intl"
	"github.com/fonction-publique/sigrh/pkg/serrors"
)

type ProposeDTO struct {
	PosteCode        string `json:"poste_code" validate:"required"`
	Matricule        string `json:"matricule" validate:"required"`
	Type             string `json:"type" validate:"omitempty,oneof=PERMANENTE DETACHEMENT TEMPORAIRE"`
	PourcentageTemps int    `json:"pourcentage_temps" validate:"required,min=1,max=100"`
	DateDebut        string `json:"date_debut" validate:"omitempty,datetime=2006-01-02"`
	Motif            string `json:"motif" validate:"omitempty,max=500"`
}

func (d *ProposeDTO) Normalize() {
	d.PosteCode = strings.ToUpper(strings.TrimSpace(d.PosteCode))
	d.Matricule = strings.ToUpper(strings.TrimSpace(d.Matricule))
	d.Type = strings.ToUpper(strings.TrimSpace(d.Type))
	if d.Type == "" {
		d.Type = string(TypePermanente)
	}
	d.Motif = strings.TrimSpace(d.Motif)
}

func (d *ProposeDTO) Ok(ctx context.Context) (map[string]string, bool) {
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

// StartDate resolves date_debut, defaulting to today when absent.
func (d *ProposeDTO) StartDate() time.Time {
	if d.DateDebut == "" {
		return time.Now().UTC().Truncate(24 * time.Hour)
	}
	t, err := time.Parse("2006-01-02", d.DateDebut)
	if err != nil {
		return time.Now().UTC().Truncate(24 * time.Hour)
	}
	return t
}

func (d *ProposeDTO) ToEntity(decidePar string) Affectation {
	return New(d.PosteCode, d.Matricule, Type(d.Type), d.PourcentageTemps, d.StartDate(), d.Motif, decidePar)
}
