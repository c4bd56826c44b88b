package fonctionnaire

import (
	"context"

	"github.com/fonction-publique/sigrh/pkg/serrors"
)

var (
	ErrNotFound       = serrors.NewError("FONCTIONNAIRE_NOT_FOUND", "fonctionnaire not found", "Staffing.Errors.FonctionnaireNotFound")
	ErrMatriculeTaken = serrors.NewError("FONCTIONNAIRE_MATRICULE_CONFLICT", "matricule already exists", "Staffing.Errors.MatriculeTaken")
)

type FindParams struct {
	Statut Statut
	Grade  string
	Search string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Fonctionnaire, int64, error)
	GetByMatricule(ctx context.Context, matricule string) (Fonctionnaire, error)
	Create(ctx context.Context, f Fonctionnaire) (Fonctionnaire, error)
	UpdateStatut(ctx context.Context, matricule string, statut Statut) error

	// Lock takes a row-level lock on the fonctionnaire for the duration of
	// the ambient transaction, serializing workload checks against
	// concurrent affectations of the same person.
	Lock(ctx context.Context, matricule string) error
}
