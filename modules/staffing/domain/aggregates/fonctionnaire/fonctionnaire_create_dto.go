package fonctionnaire

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
	Matricule              string `json:"matricule" validate:"required"`
	NomComplet             string `json:"nom_complet" validate:"required"`
	Grade                  string `json:"grade" validate:"required"`
	Email                  string `json:"email" validate:"omitempty,email"`
	Telephone              string `json:"telephone"`
	Priorite               string `json:"priorite" validate:"omitempty,oneof=HAUTE MOYENNE BASSE"`
	RattachementPrimaire   string `json:"rattachement_primaire"`
	RattachementSecondaire string `json:"rattachement_secondaire"`
}

func (d *CreateDTO) Normalize() {
	d.Matricule = strings.ToUpper(strings.TrimSpace(d.Matricule))
	d.NomComplet = strings.TrimSpace(d.NomComplet)
	d.Grade = strings.ToUpper(strings.TrimSpace(d.Grade))
	d.Email = strings.TrimSpace(d.Email)
	d.Telephone = strings.TrimSpace(d.Telephone)
	d.Priorite = strings.ToUpper(strings.TrimSpace(d.Priorite))
	d.RattachementPrimaire = strings.ToUpper(strings.TrimSpace(d.RattachementPrimaire))
	d.RattachementSecondaire = strings.ToUpper(strings.TrimSpace(d.RattachementSecondaire))
	if d.Priorite == "" {
		d.Priorite = string(PrioriteMoyenne)
	}
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}

	validationErrors := make(serrors.ValidationErrors)
	validatorErrs := errs.(validator.ValidationErrors)
	getFieldLocaleKey := func(field string) string {
		switch field {
		case "Matricule", "NomComplet", "Grade", "Email", "Priorite":
			return fmt.Sprintf("Staffing.Fields.%s", field)
		default:
			return ""
		}
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

func (d *CreateDTO) ToEntity() Fonctionnaire {
	f := New(d.Matricule, d.NomComplet, d.Grade, Priorite(d.Priorite))
	f.email = d.Email
	f.telephone = d.Telephone
	if d.RattachementPrimaire != "" {
		v := d.RattachementPrimaire
		f.rattachementPrimaire = &v
	}
	if d.RattachementSecondaire != "" {
		v := d.RattachementSecondaire
		f.rattachementSecondaire = &v
	}
	return f
}
