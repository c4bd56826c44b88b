package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fonction-publique/sigrh/modules/audit/domain/entities/auditentry"
	"github.com/fonction-publique/sigrh/pkg/composables"
)

func TestMain(m *testing.M) {
	authorizeAuditFn = func(ctx context.Context, object, action string) error { return nil }
	os.Exit(m.Run())
}

type memRepository struct {
	entries []auditentry.Entry
}

func (r *memRepository) Create(_ context.Context, e auditentry.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *memRepository) List(_ context.Context, params *auditentry.FindParams) ([]auditentry.Entry, int64, error) {
	var out []auditentry.Entry
	for _, e := range r.entries {
		if params.Operation != "" && e.Operation() != params.Operation {
			continue
		}
		if params.Actor != "" && e.Actor() != params.Actor {
			continue
		}
		if params.EntityRef != "" && e.EntityRef() != params.EntityRef {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func actorCtx() context.Context {
	return composables.WithActor(context.Background(), composables.Actor{ID: "DRH-001", Role: "ADMIN"})
}

func TestAuditService_Record(t *testing.T) {
	repo := &memRepository{}
	svc := NewAuditService(repo)

	after := map[string]any{"statut": "VALIDEE", "pourcentage_temps": 80}
	require.NoError(t, svc.Record(actorCtx(), "affectation.validee", "abc-123", nil, after))

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	require.Equal(t, "DRH-001", entry.Actor())
	require.Equal(t, "affectation.validee", entry.Operation())
	require.Equal(t, "abc-123", entry.EntityRef())
	require.Nil(t, entry.Before())

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(entry.After(), &decoded))
	require.Equal(t, "VALIDEE", decoded["statut"])
}

func TestAuditService_Record_NoActor(t *testing.T) {
	svc := NewAuditService(&memRepository{})
	err := svc.Record(context.Background(), "affectation.validee", "abc-123", nil, nil)
	require.ErrorIs(t, err, composables.ErrNoActor)
}

func TestAuditService_List(t *testing.T) {
	repo := &memRepository{}
	svc := NewAuditService(repo)

	require.NoError(t, svc.Record(actorCtx(), "affectation.validee", "a-1", nil, nil))
	require.NoError(t, svc.Record(actorCtx(), "affectation.terminee", "a-1", nil, nil))

	entries, total, err := svc.List(actorCtx(), &auditentry.FindParams{Operation: "affectation.validee"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "affectation.validee", entries[0].Operation())
}

func TestAuditService_List_Denied(t *testing.T) {
	denied := errors.New("denied")
	prev := authorizeAuditFn
	authorizeAuditFn = func(ctx context.Context, object, action string) error { return denied }
	defer func() { authorizeAuditFn = prev }()

	svc := NewAuditService(&memRepository{})
	_, _, err := svc.List(actorCtx(), &auditentry.FindParams{})
	require.ErrorIs(t, err, denied)
}
