package poste

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Poste struct {
	code          string
	titre         string
	niveau        int
	organismeCode string
	salaireMin    decimal.Decimal
	salaireMax    decimal.Decimal
	occupant      *string
	actif         bool
	createdAt     time.Time
	updatedAt     time.Time
}

func New(code, titre string, niveau int, organismeCode string, salaireMin, salaireMax decimal.Decimal) Poste {
	return Poste{
		code:          normalizeCode(code),
		titre:         strings.TrimSpace(titre),
		niveau:        niveau,
		organismeCode: normalizeCode(organismeCode),
		salaireMin:    salaireMin,
		salaireMax:    salaireMax,
		actif:         true,
	}
}

func Hydrate(
	code string,
	titre string,
	niveau int,
	organismeCode string,
	salaireMin decimal.Decimal,
	salaireMax decimal.Decimal,
	occupant *string,
	actif bool,
	createdAt time.Time,
	updatedAt time.Time,
) Poste {
	return Poste{
		code:          normalizeCode(code),
		titre:         strings.TrimSpace(titre),
		niveau:        niveau,
		organismeCode: normalizeCode(organismeCode),
		salaireMin:    salaireMin,
		salaireMax:    salaireMax,
		occupant:      occupant,
		actif:         actif,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p Poste) Code() string { return p.code }
func (p Poste) Titre() string { return p.titre }
func (p Poste) Niveau() int { return p.niveau }
func (p Poste) OrganismeCode() string { return p.organismeCode }
func (p Poste) SalaireMin() decimal.Decimal { return p.salaireMin }
func (p Poste) SalaireMax() decimal.Decimal { return p.salaireMax }
func (p Poste) Occupant() *string { return p.occupant }
func (p Poste) Actif() bool { return p.actif }
func (p Poste) CreatedAt() time.Time { return p.createdAt }
func (p Poste) UpdatedAt() time.Time { return p.updatedAt }
func (p Poste) IsZero() bool { return p.code == "" }

// IsVacant reports whether the poste can receive an occupant. Organisme
// activity is checked at query level, where the join is available.
func (p Poste) IsVacant() bool { return p.occupant == nil && p.actif }

func normalizeCode(v string) string { return strings.ToUpper(strings.TrimSpace(v)) }
