package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/organisme"
	"github.com/fonction-publique/sigrh/modules/staffing/permissions"
	"github.com/fonction-publique/sigrh/pkg/eventbus"
)

type OrganismeService struct {
	repo      organisme.Repository
	publisher eventbus.EventBus
}

func NewOrganismeService(repo organisme.Repository, publisher eventbus.EventBus) *OrganismeService {
	return &OrganismeService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *OrganismeService) GetPaginated(ctx context.Context, params *organisme.FindParams) ([]organisme.Organisme, int64, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectOrganismes, permissions.ActionList); err != nil {
		return nil, 0, err
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *OrganismeService) GetByCode(ctx context.Context, code string) (organisme.Organisme, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectOrganismes, permissions.ActionList); err != nil {
		return organisme.Organisme{}, err
	}
	return s.repo.GetByCode(ctx, code)
}

func (s *OrganismeService) Create(ctx context.Context, o organisme.Organisme) (organisme.Organisme, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectOrganismes, permissions.ActionCreate); err != nil {
		return organisme.Organisme{}, err
	}
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return organisme.Organisme{}, errors.Wrap(err, "failed to create organisme")
	}
	s.publisher.Publish(organisme.CreatedEvent{Result: created})
	return created, nil
}

func (s *OrganismeService) SetActive(ctx context.Context, code string, actif bool) error {
	if err := authorizeStaffingFn(ctx, permissions.ObjectOrganismes, permissions.ActionUpdate); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, code, actif); err != nil {
		return errors.Wrap(err, "failed to toggle organisme")
	}
	s.publisher.Publish(organisme.ActiveToggledEvent{Code: code, Actif: actif})
	return nil
}
