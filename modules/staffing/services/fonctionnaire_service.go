package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/fonctionnaire"
	"github.com/fonction-publique/sigrh/modules/staffing/permissions"
	"github.com/fonction-publique/sigrh/pkg/eventbus"
)

type FonctionnaireService struct {
	repo      fonctionnaire.Repository
	publisher eventbus.EventBus
}

func NewFonctionnaireService(repo fonctionnaire.Repository, publisher eventbus.EventBus) *FonctionnaireService {
	return &FonctionnaireService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *FonctionnaireService) GetPaginated(ctx context.Context, params *fonctionnaire.FindParams) ([]fonctionnaire.Fonctionnaire, int64, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectFonctionnaires, permissions.ActionList); err != nil {
		return nil, 0, err
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *FonctionnaireService) GetByMatricule(ctx context.Context, matricule string) (fonctionnaire.Fonctionnaire, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectFonctionnaires, permissions.ActionList); err != nil {
		return fonctionnaire.Fonctionnaire{}, err
	}
	return s.repo.GetByMatricule(ctx, matricule)
}

func (s *FonctionnaireService) Create(ctx context.Context, f fonctionnaire.Fonctionnaire) (fonctionnaire.Fonctionnaire, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectFonctionnaires, permissions.ActionCreate); err != nil {
		return fonctionnaire.Fonctionnaire{}, err
	}
	created, err := s.repo.Create(ctx, f)
	if err != nil {
		return fonctionnaire.Fonctionnaire{}, errors.Wrap(err, "failed to create fonctionnaire")
	}
	s.publisher.Publish(fonctionnaire.CreatedEvent{Result: created})
	return created, nil
}
