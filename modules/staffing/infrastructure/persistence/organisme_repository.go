package persistence

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/organisme"
	"github.com/fonction-publique/sigrh/pkg/composables"
)

const (
	selectOrganismeQuery = `
		SELECT code, nom, type, actif, created_at, updated_at
		FROM staffing_organismes`
	countOrganismeQuery  = `SELECT COUNT(*) FROM staffing_organismes`
	insertOrganismeQuery = `
		INSERT INTO staffing_organismes (code, nom, type, actif, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING code, nom, type, actif, created_at, updated_at`
	toggleOrganismeQuery = `
		UPDATE staffing_organismes SET actif = $2, updated_at = now() WHERE code = $1`
)

type PgOrganismeRepository struct{}

func NewOrganismeRepository() organisme.Repository {
	return &PgOrganismeRepository{}
}

func (r *PgOrganismeRepository) GetPaginated(ctx context.Context, params *organisme.FindParams) ([]organisme.Organisme, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	fb := &filterBuilder{}
	if params.Type != "" {
		fb.add("type = $%d", string(params.Type))
	}
	if params.Actif != nil {
		fb.add("actif = $%d", *params.Actif)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		fb.add("(nom ILIKE $%d OR code ILIKE $%d)", pattern, pattern)
	}

	var total int64
	if err := tx.QueryRow(ctx, countOrganismeQuery+fb.where(), fb.args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count organismes")
	}

	rows, err := tx.Query(ctx, selectOrganismeQuery+fb.where()+" ORDER BY code"+limitOffset(params.Limit, params.Offset), fb.args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to query organismes")
	}
	defer rows.Close()

	var out []organisme.Organisme
	for rows.Next() {
		o, err := scanOrganisme(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *PgOrganismeRepository) GetByCode(ctx context.Context, code string) (organisme.Organisme, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organisme.Organisme{}, err
	}
	o, err := scanOrganisme(tx.QueryRow(ctx, selectOrganismeQuery+" WHERE code = $1", code))
	if errors.Is(err, pgx.ErrNoRows) {
		return organisme.Organisme{}, organisme.ErrNotFound
	}
	return o, err
}

func (r *PgOrganismeRepository) Create(ctx context.Context, o organisme.Organisme) (organisme.Organisme, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organisme.Organisme{}, err
	}
	created, err := scanOrganisme(tx.QueryRow(ctx, insertOrganismeQuery, o.Code(), o.Nom(), string(o.Type()), o.Actif()))
	if isUniqueViolation(err) {
		return organisme.Organisme{}, organisme.ErrCodeTaken
	}
	if err != nil {
		return organisme.Organisme{}, errors.Wrap(err, "failed to insert organisme")
	}
	return created, nil
}

func (r *PgOrganismeRepository) SetActive(ctx context.Context, code string, actif bool) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, toggleOrganismeQuery, code, actif)
	if err != nil {
		return errors.Wrap(err, "failed to toggle organisme")
	}
	if tag.RowsAffected() == 0 {
		return organisme.ErrNotFound
	}
	return nil
}

func scanOrganisme(row pgx.Row) (organisme.Organisme, error) {
	var (
		code, nom, typ       string
		actif                bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&code, &nom, &typ, &actif, &createdAt, &updatedAt); err != nil {
		return organisme.Organisme{}, err
	}
	return organisme.Hydrate(code, nom, organisme.Type(typ), actif, createdAt, updatedAt), nil
}
