package affectation

import (
	"time"

	"github.com/google/uuid"
)

type Statut string

const (
	StatutProposee Statut = "PROPOSEE"
	StatutValidee  Statut = "VALIDEE"
	StatutTerminee Statut = "TERMINEE"
	StatutAnnulee  Statut = "ANNULEE"
)

type Type string

const (
	TypePermanente  Type = "PERMANENTE"
	TypeDetachement Type = "DETACHEMENT"
	TypeTemporaire  Type = "TEMPORAIRE"
)

type Affectation struct {
	id          uuid.UUID
	posteCode   string
	matricule   string
	typ         Type
	statut      Statut
	pourcentage int
	dateDebut   time.Time
	dateFin     *time.Time
	motif       string
	decidePar   string
	createdAt   time.Time
	updatedAt   time.Time
}

func New(posteCode, matricule string, typ Type, pourcentage int, dateDebut time.Time, motif, decidePar string) Affectation {
	return Affectation{
		id:          uuid.New(),
		posteCode:   posteCode,
		matricule:   matricule,
		typ:         typ,
		statut:      StatutValidee,
		pourcentage: pourcentage,
		dateDebut:   dateDebut,
		motif:       motif,
		decidePar:   decidePar,
	}
}

func Hydrate(
	id uuid.UUID,
	posteCode string,
	matricule string,
	typ Type,
	statut Statut,
	pourcentage int,
	dateDebut time.Time,
	dateFin *time.Time,
	motif string,
	decidePar string,
	createdAt time.Time,
	updatedAt time.Time,
) Affectation {
	return Affectation{
		id:          id,
		posteCode:   posteCode,
		matricule:   matricule,
		typ:         typ,
		statut:      statut,
		pourcentage: pourcentage,
		dateDebut:   dateDebut,
		dateFin:     dateFin,
		motif:       motif,
		decidePar:   decidePar,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (a Affectation) ID() uuid.UUID { return a.id }
func (a Affectation) PosteCode() string { return a.posteCode }
func (a Affectation) Matricule() string { return a.matricule }
func (a Affectation) Type() Type { return a.typ }
func (a Affectation) Statut() Statut { return a.statut }
func (a Affectation) PourcentageTemps() int { return a.pourcentage }
func (a Affectation) DateDebut() time.Time { return a.dateDebut }
func (a Affectation) DateFin() *time.Time { return a.dateFin }
func (a Affectation) Motif() string { return a.motif }
func (a Affectation) DecidePar() string { return a.decidePar }
func (a Affectation) CreatedAt() time.Time { return a.createdAt }
func (a Affectation) UpdatedAt() time.Time { return a.updatedAt }
func (a Affectation) IsZero() bool { return a.id == uuid.Nil }

func (a Affectation) EstValidee() bool { return a.statut == StatutValidee }

// Terminer closes a validated affectation at the given date. A non-empty
// motif replaces the record's motif; the previous value survives in the
// audit trail's before snapshot.
func (a Affectation) Terminer(dateFin time.Time, motif string) Affectation {
	a.statut = StatutTerminee
	a.dateFin = &dateFin
	if motif != "" {
		a.motif = motif
	}
	return a
}
