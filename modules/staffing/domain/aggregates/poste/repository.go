package poste

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fonction-publique/sigrh/pkg/serrors"
)

var (
	ErrNotFound  = serrors.NewError("POSTE_NOT_FOUND", "poste not found", "Staffing.Errors.PosteNotFound")
	ErrCodeTaken = serrors.NewError("POSTE_CODE_CONFLICT", "poste code already exists", "Staffing.Errors.PosteCodeTaken")
	// ErrOccupied is returned by ClaimOccupant when the poste already has a
	// validated affectation. Exactly one of two concurrent claims wins.
	ErrOccupied = serrors.NewError("POSTE_OCCUPIED", "poste already has an active affectation", "Staffing.Errors.PosteOccupied")
)

type FindParams struct {
	OrganismeCode string
	Niveau        int
	Actif         *bool
	Search        string
	Limit         int
	Offset        int
}

// VacantParams filters the vacancy projection: postes with no occupant,
// active, in an active organisme.
type VacantParams struct {
	OrganismeCode string
	Niveau        int
	SalaireMin    *decimal.Decimal
	Search        string
	Limit         int
	Offset        int
}

// VacantPoste is the vacancy read model, carrying the organisme name for
// display and search.
type VacantPoste struct {
	Poste        Poste
	OrganismeNom string
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Poste, int64, error)
	GetByCode(ctx context.Context, code string) (Poste, error)
	GetVacant(ctx context.Context, params *VacantParams) ([]VacantPoste, int64, error)
	Create(ctx context.Context, p Poste) (Poste, error)
	SetActive(ctx context.Context, code string, actif bool) error

	// ClaimOccupant atomically sets the occupant if and only if the poste is
	// currently unoccupied; returns ErrOccupied otherwise.
	ClaimOccupant(ctx context.Context, code, matricule string) error
	// ReleaseOccupant clears the occupant reference.
	ReleaseOccupant(ctx context.Context, code string) error
}
