package organisme

import (
	"strings"
	"time"
)

type Type string

const (
	TypePrincipal  Type = "PRINCIPAL"
	TypeSecondaire Type = "SECONDAIRE"
)

type Organisme struct {
	code      string
	nom       string
	typ       Type
	actif     bool
	createdAt time.Time
	updatedAt time.Time
}

func New(code, nom string, typ Type) Organisme {
	return Organisme{
		code:  normalizeCode(code),
		nom:   strings.TrimSpace(nom),
		typ:   typ,
		actif: true,
	}
}

func Hydrate(
	code string,
	nom string,
	typ Type,
	actif bool,
	createdAt time.Time,
	updatedAt time.Time,
) Organisme {
	return Organisme{
		code:      normalizeCode(code),
		nom:       strings.TrimSpace(nom),
		typ:       typ,
		actif:     actif,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (o Organisme) Code() string { return o.code }
func (o Organisme) Nom() string { return o.nom }
func (o Organisme) Type() Type { return o.typ }
func (o Organisme) Actif() bool { return o.actif }
func (o Organisme) CreatedAt() time.Time { return o.createdAt }
func (o Organisme) UpdatedAt() time.Time { return o.updatedAt }
func (o Organisme) IsZero() bool { return o.code == "" }

func normalizeCode(v string) string { return strings.ToUpper(strings.TrimSpace(v)) }
