package services

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/fonction-publique/sigrh/modules/audit/domain/entities/auditentry"
	"github.com/fonction-publique/sigrh/pkg/authz"
	"github.com/fonction-publique/sigrh/pkg/composables"
)

var authorizeAuditFn = func(ctx context.Context, object, action string) error {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return err
	}
	return authz.Use().Authorize(ctx, authz.NewRequest(actor.Role, object, action))
}

type AuditService struct {
	repo auditentry.Repository
}

func NewAuditService(repo auditentry.Repository) *AuditService {
	return &AuditService{repo: repo}
}

// Record writes one audit line attributed to the current actor. It runs in
// the caller's transaction so the trace commits or rolls back with the
// decision it documents.
func (s *AuditService) Record(ctx context.Context, operation, entityRef string, before, after any) error {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return err
	}

	beforeJSON, err := marshalSnapshot(before)
	if err != nil {
		return err
	}
	afterJSON, err := marshalSnapshot(after)
	if err != nil {
		return err
	}

	return s.repo.Create(ctx, auditentry.New(actor.ID, operation, entityRef, beforeJSON, afterJSON))
}

func (s *AuditService) List(ctx context.Context, params *auditentry.FindParams) ([]auditentry.Entry, int64, error) {
	if err := authorizeAuditFn(ctx, "audit.entries", "list"); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, params)
}

func marshalSnapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal audit snapshot")
	}
	return raw, nil
}
