package fonctionnaire

import (
	"strings"
	"time"
)

type Statut string

const (
	StatutEnAttente Statut = "EN_ATTENTE"
	StatutAffecte   Statut = "AFFECTE"
	StatutDetache   Statut = "DETACHE"
	StatutSuspendu  Statut = "SUSPENDU"
)

type Priorite string

const (
	PrioriteHaute   Priorite = "HAUTE"
	PrioriteMoyenne Priorite = "MOYENNE"
	PrioriteBasse   Priorite = "BASSE"
)

// Weight is the flat ranking bonus applied to every proposition of this
// fonctionnaire.
func (p Priorite) Weight() int {
	switch p {
	case PrioriteHaute:
		return 2
	case PrioriteMoyenne:
		return 1
	default:
		return 0
	}
}

type Fonctionnaire struct {
	matricule              string
	nomComplet             string
	grade                  string
	email                  string
	telephone              string
	statut                 Statut
	priorite               Priorite
	rattachementPrimaire   *string
	rattachementSecondaire *string
	createdAt              time.Time
	updatedAt              time.Time
}

func New(matricule, nomComplet, grade string, priorite Priorite) Fonctionnaire {
	return Fonctionnaire{
		matricule:  normalizeMatricule(matricule),
		nomComplet: strings.TrimSpace(nomComplet),
		grade:      normalizeGrade(grade),
		statut:     StatutEnAttente,
		priorite:   priorite,
	}
}

func Hydrate(
	matricule string,
	nomComplet string,
	grade string,
	email string,
	telephone string,
	statut Statut,
	priorite Priorite,
	rattachementPrimaire *string,
	rattachementSecondaire *string,
	createdAt time.Time,
	updatedAt time.Time,
) Fonctionnaire {
	return Fonctionnaire{
		matricule:              normalizeMatricule(matricule),
		nomComplet:             strings.TrimSpace(nomComplet),
		grade:                  normalizeGrade(grade),
		email:                  strings.TrimSpace(email),
		telephone:              strings.TrimSpace(telephone),
		statut:                 statut,
		priorite:               priorite,
		rattachementPrimaire:   rattachementPrimaire,
		rattachementSecondaire: rattachementSecondaire,
		createdAt:              createdAt,
		updatedAt:              updatedAt,
	}
}

func (f Fonctionnaire) Matricule() string { return f.matricule }
func (f Fonctionnaire) NomComplet() string { return f.nomComplet }
func (f Fonctionnaire) Grade() string { return f.grade }
func (f Fonctionnaire) Email() string { return f.email }
func (f Fonctionnaire) Telephone() string { return f.telephone }
func (f Fonctionnaire) Statut() Statut { return f.statut }
func (f Fonctionnaire) Priorite() Priorite { return f.priorite }
func (f Fonctionnaire) RattachementPrimaire() *string { return f.rattachementPrimaire }
func (f Fonctionnaire) RattachementSecondaire() *string { return f.rattachementSecondaire }
func (f Fonctionnaire) CreatedAt() time.Time { return f.createdAt }
func (f Fonctionnaire) UpdatedAt() time.Time { return f.updatedAt }
func (f Fonctionnaire) IsZero() bool { return f.matricule == "" }

// GradeTier maps the grade's leading category letter to a poste niveau:
// A=1 (executive) through E=5 (entry). Unknown grades never match a niveau.
func (f Fonctionnaire) GradeTier() int {
	if f.grade == "" {
		return 0
	}
	switch f.grade[0] {
	case 'A':
		return 1
	case 'B':
		return 2
	case 'C':
		return 3
	case 'D':
		return 4
	case 'E':
		return 5
	default:
		return 0
	}
}

// EstRattacheA reports whether the organisme is the fonctionnaire's primary
// or secondary attachment.
func (f Fonctionnaire) EstRattacheA(organismeCode string) bool {
	code := strings.ToUpper(strings.TrimSpace(organismeCode))
	if f.rattachementPrimaire != nil && *f.rattachementPrimaire == code {
		return true
	}
	if f.rattachementSecondaire != nil && *f.rattachementSecondaire == code {
		return true
	}
	return false
}

func normalizeMatricule(v string) string { return strings.ToUpper(strings.TrimSpace(v)) }
func normalizeGrade(v string) string     { return strings.ToUpper(strings.TrimSpace(v)) }
