package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/fonction-publique/sigrh/modules/audit/domain/entities/auditentry"
	"github.com/fonction-publique/sigrh/pkg/composables"
)

const (
	insertEntryQuery = `
		INSERT INTO audit_entries (id, actor, operation, entity_ref, before, after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`
	selectEntryQuery = `
		SELECT id, actor, operation, entity_ref, before, after, created_at
		FROM audit_entries`
	countEntryQuery = `SELECT COUNT(*) FROM audit_entries`
)

type PgAuditRepository struct{}

func NewAuditRepository() auditentry.Repository {
	return &PgAuditRepository{}
}

func (r *PgAuditRepository) Create(ctx context.Context, e auditentry.Entry) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, insertEntryQuery, e.ID(), e.Actor(), e.Operation(), e.EntityRef(), e.Before(), e.After())
	if err != nil {
		return errors.Wrap(err, "failed to insert audit entry")
	}
	return nil
}

func (r *PgAuditRepository) List(ctx context.Context, params *auditentry.FindParams) ([]auditentry.Entry, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	var conditions []string
	var args []any
	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}
	if params.Actor != "" {
		add("actor = $%d", params.Actor)
	}
	if params.Operation != "" {
		add("operation = $%d", params.Operation)
	}
	if params.EntityRef != "" {
		add("entity_ref = $%d", params.EntityRef)
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := tx.QueryRow(ctx, countEntryQuery+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count audit entries")
	}

	query := selectEntryQuery + where + " ORDER BY created_at DESC, id"
	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", params.Limit)
	}
	if params.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to query audit entries")
	}
	defer rows.Close()

	var out []auditentry.Entry
	for rows.Next() {
		var (
			id                          uuid.UUID
			actor, operation, entityRef string
			before, after               json.RawMessage
			createdAt                   time.Time
		)
		if err := rows.Scan(&id, &actor, &operation, &entityRef, &before, &after, &createdAt); err != nil {
			return nil, 0, err
		}
		out = append(out, auditentry.Hydrate(id, actor, operation, entityRef, before, after, createdAt))
	}
	return out, total, rows.Err()
}
