package organisme

import (
	"context"

	"github.com/fonction-publique/sigrh/pkg/serrors"
)

var (
	ErrNotFound  = serrors.NewError("ORGANISME_NOT_FOUND", "organisme not found", "Staffing.Errors.OrganismeNotFound")
	ErrCodeTaken = serrors.NewError("ORGANISME_CODE_CONFLICT", "organisme code already exists", "Staffing.Errors.OrganismeCodeTaken")
)

type FindParams struct {
	Type   Type
	Actif  *bool
	Search string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Organisme, int64, error)
	GetByCode(ctx context.Context, code string) (Organisme, error)
	Create(ctx context.Context, o Organisme) (Organisme, error)
	SetActive(ctx context.Context, code string, actif bool) error
}
