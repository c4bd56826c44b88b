package services

import (
	"context"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/poste"
	"github.com/fonction-publique/sigrh/modules/staffing/permissions"
)

// VacancyService exposes the vacancy projection: active postes with no
// occupant whose organisme is itself active.
type VacancyService struct {
	postes poste.Repository
}

func NewVacancyService(postes poste.Repository) *VacancyService {
	return &VacancyService{postes: postes}
}

func (s *VacancyService) GetVacant(ctx context.Context, params *poste.VacantParams) ([]poste.VacantPoste, int64, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectPostes, permissions.ActionVacancies); err != nil {
		return nil, 0, err
	}
	return s.postes.GetVacant(ctx, params)
}
