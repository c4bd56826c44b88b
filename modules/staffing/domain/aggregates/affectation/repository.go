package affectation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fonction-publique/sigrh/pkg/serrors"
)

var (
	ErrNotFound = serrors.NewError("AFFECTATION_NOT_FOUND", "affectation not found", "Staffing.Errors.AffectationNotFound")
	// ErrNotValidee is returned when terminating an affectation that is not in
	// the VALIDEE state.
	ErrNotValidee = serrors.NewError("AFFECTATION_NOT_VALIDEE", "affectation is not active", "Staffing.Errors.AffectationNotValidee")
	// ErrOverAllocated is returned when the cumulative pourcentage_temps of a
	// fonctionnaire's validated affectations would exceed 100.
	ErrOverAllocated = serrors.NewError("AFFECTATION_OVER_ALLOCATION", "cumulative working time exceeds 100%", "Staffing.Errors.OverAllocated")

	ErrPosteInactif          = serrors.NewError("POSTE_INACTIF", "poste is inactive", "Staffing.Errors.PosteInactif")
	ErrOrganismeInactif      = serrors.NewError("ORGANISME_INACTIF", "organisme is inactive", "Staffing.Errors.OrganismeInactif")
	ErrFonctionnaireSuspendu = serrors.NewError("FONCTIONNAIRE_SUSPENDU", "fonctionnaire is suspended", "Staffing.Errors.FonctionnaireSuspendu")
)

type FindParams struct {
	PosteCode string
	Matricule string
	Statut    Statut
	Limit     int
	Offset    int
}

// CompteActif is the "comptes actifs" read model: a fonctionnaire currently
// holding a validated affectation, joined with the poste they occupy.
type CompteActif struct {
	Matricule        string
	NomComplet       string
	Grade            string
	PosteCode        string
	PosteTitre       string
	OrganismeCode    string
	PourcentageTemps int
	DateDebut        time.Time
}

type ComptesActifsParams struct {
	OrganismeCode string
	Search        string
	Limit         int
	Offset        int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Affectation, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Affectation, error)
	GetValideeByPoste(ctx context.Context, posteCode string) (Affectation, error)
	GetValideesByMatricule(ctx context.Context, matricule string) ([]Affectation, error)
	// GetComptesActifs lists fonctionnaires with a VALIDEE affectation and the
	// poste each one occupies.
	GetComptesActifs(ctx context.Context, params *ComptesActifsParams) ([]CompteActif, int64, error)
	// SumPourcentageTemps totals the pourcentage_temps of the fonctionnaire's
	// VALIDEE affectations.
	SumPourcentageTemps(ctx context.Context, matricule string) (int, error)
	Create(ctx context.Context, a Affectation) (Affectation, error)
	Update(ctx context.Context, a Affectation) error
}
