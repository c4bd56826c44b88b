package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/poste"
	"github.com/fonction-publique/sigrh/modules/staffing/permissions"
	"github.com/fonction-publique/sigrh/pkg/eventbus"
)

type PosteService struct {
	repo      poste.Repository
	publisher eventbus.EventBus
}

func NewPosteService(repo poste.Repository, publisher eventbus.EventBus) *PosteService {
	return &PosteService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *PosteService) GetPaginated(ctx context.Context, params *poste.FindParams) ([]poste.Poste, int64, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectPostes, permissions.ActionList); err != nil {
		return nil, 0, err
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *PosteService) GetByCode(ctx context.Context, code string) (poste.Poste, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectPostes, permissions.ActionList); err != nil {
		return poste.Poste{}, err
	}
	return s.repo.GetByCode(ctx, code)
}

func (s *PosteService) Create(ctx context.Context, p poste.Poste) (poste.Poste, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectPostes, permissions.ActionCreate); err != nil {
		return poste.Poste{}, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return poste.Poste{}, errors.Wrap(err, "failed to create poste")
	}
	s.publisher.Publish(poste.CreatedEvent{Result: created})
	return created, nil
}

func (s *PosteService) SetActive(ctx context.Context, code string, actif bool) error {
	if err := authorizeStaffingFn(ctx, permissions.ObjectPostes, permissions.ActionUpdate); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, code, actif); err != nil {
		return errors.Wrap(err, "failed to toggle poste")
	}
	s.publisher.Publish(poste.ActiveToggledEvent{Code: code, Actif: actif})
	return nil
}
