package persistence

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/poste"
	"github.com/fonction-publique/sigrh/pkg/composables"
)

const (
	selectPosteQuery = `
		SELECT code, titre, niveau, organisme_code, salaire_min, salaire_max, occupant, actif, created_at, updated_at
		FROM staffing_postes`
	countPosteQuery  = `SELECT COUNT(*) FROM staffing_postes`
	insertPosteQuery = `
		INSERT INTO staffing_postes (code, titre, niveau, organisme_code, salaire_min, salaire_max, occupant, actif, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING code, titre, niveau, organisme_code, salaire_min, salaire_max, occupant, actif, created_at, updated_at`
	togglePosteQuery = `
		UPDATE staffing_postes SET actif = $2, updated_at = now() WHERE code = $1`

	// claimPosteQuery only succeeds when the poste is currently free, making
	// the occupancy check-and-set a single atomic statement.
	claimPosteQuery = `
		UPDATE staffing_postes SET occupant = $2, updated_at = now()
		WHERE code = $1 AND occupant IS NULL AND actif`
	releasePosteQuery = `
		UPDATE staffing_postes SET occupant = NULL, updated_at = now() WHERE code = $1`

	selectVacantQuery = `
		SELECT p.code, p.titre, p.niveau, p.organisme_code, p.salaire_min, p.salaire_max, p.occupant, p.actif, p.created_at, p.updated_at, o.nom
		FROM staffing_postes p
		JOIN staffing_organismes o ON o.code = p.organisme_code`
	countVacantQuery = `
		SELECT COUNT(*)
		FROM staffing_postes p
		JOIN staffing_organismes o ON o.code = p.organisme_code`
)

type PgPosteRepository struct{}

func NewPosteRepository() poste.Repository {
	return &PgPosteRepository{}
}

func (r *PgPosteRepository) GetPaginated(ctx context.Context, params *poste.FindParams) ([]poste.Poste, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	fb := &filterBuilder{}
	if params.OrganismeCode != "" {
		fb.add("organisme_code = $%d", params.OrganismeCode)
	}
	if params.Niveau != 0 {
		fb.add("niveau = $%d", params.Niveau)
	}
	if params.Actif != nil {
		fb.add("actif = $%d", *params.Actif)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		fb.add("(titre ILIKE $%d OR code ILIKE $%d)", pattern, pattern)
	}

	var total int64
	if err := tx.QueryRow(ctx, countPosteQuery+fb.where(), fb.args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count postes")
	}

	rows, err := tx.Query(ctx, selectPosteQuery+fb.where()+" ORDER BY code"+limitOffset(params.Limit, params.Offset), fb.args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to query postes")
	}
	defer rows.Close()

	var out []poste.Poste
	for rows.Next() {
		p, err := scanPoste(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PgPosteRepository) GetByCode(ctx context.Context, code string) (poste.Poste, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return poste.Poste{}, err
	}
	p, err := scanPoste(tx.QueryRow(ctx, selectPosteQuery+" WHERE code = $1", code))
	if errors.Is(err, pgx.ErrNoRows) {
		return poste.Poste{}, poste.ErrNotFound
	}
	return p, err
}

func (r *PgPosteRepository) GetVacant(ctx context.Context, params *poste.VacantParams) ([]poste.VacantPoste, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	fb := &filterBuilder{
		conditions: []string{"p.occupant IS NULL", "p.actif", "o.actif"},
	}
	if params.OrganismeCode != "" {
		fb.add("p.organisme_code = $%d", params.OrganismeCode)
	}
	if params.Niveau != 0 {
		fb.add("p.niveau = $%d", params.Niveau)
	}
	if params.SalaireMin != nil {
		fb.add("p.salaire_max >= $%d", *params.SalaireMin)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		fb.add("(p.titre ILIKE $%d OR p.code ILIKE $%d OR o.nom ILIKE $%d)", pattern, pattern, pattern)
	}

	var total int64
	if err := tx.QueryRow(ctx, countVacantQuery+fb.where(), fb.args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count vacant postes")
	}

	rows, err := tx.Query(ctx, selectVacantQuery+fb.where()+" ORDER BY p.code"+limitOffset(params.Limit, params.Offset), fb.args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to query vacant postes")
	}
	defer rows.Close()

	var out []poste.VacantPoste
	for rows.Next() {
		var (
			code, titre, organismeCode, organismeNom string
			niveau                                   int
			salaireMin, salaireMax                   decimal.Decimal
			occupant                                 *string
			actif                                    bool
			createdAt, updatedAt                     time.Time
		)
		if err := rows.Scan(&code, &titre, &niveau, &organismeCode, &salaireMin, &salaireMax, &occupant, &actif, &createdAt, &updatedAt, &organismeNom); err != nil {
			return nil, 0, err
		}
		out = append(out, poste.VacantPoste{
			Poste:        poste.Hydrate(code, titre, niveau, organismeCode, salaireMin, salaireMax, occupant, actif, createdAt, updatedAt),
			OrganismeNom: organismeNom,
		})
	}
	return out, total, rows.Err()
}

func (r *PgPosteRepository) Create(ctx context.Context, p poste.Poste) (poste.Poste, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return poste.Poste{}, err
	}
	created, err := scanPoste(tx.QueryRow(
		ctx, insertPosteQuery,
		p.Code(), p.Titre(), p.Niveau(), p.OrganismeCode(), p.SalaireMin(), p.SalaireMax(), p.Occupant(), p.Actif(),
	))
	if isUniqueViolation(err) {
		return poste.Poste{}, poste.ErrCodeTaken
	}
	if err != nil {
		return poste.Poste{}, errors.Wrap(err, "failed to insert poste")
	}
	return created, nil
}

func (r *PgPosteRepository) SetActive(ctx context.Context, code string, actif bool) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, togglePosteQuery, code, actif)
	if err != nil {
		return errors.Wrap(err, "failed to toggle poste")
	}
	if tag.RowsAffected() == 0 {
		return poste.ErrNotFound
	}
	return nil
}

func (r *PgPosteRepository) ClaimOccupant(ctx context.Context, code, matricule string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, claimPosteQuery, code, matricule)
	if err != nil {
		return errors.Wrap(err, "failed to claim poste")
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM staffing_postes WHERE code = $1)", code).Scan(&exists); err != nil {
		return errors.Wrap(err, "failed to check poste existence")
	}
	if !exists {
		return poste.ErrNotFound
	}
	return poste.ErrOccupied
}

func (r *PgPosteRepository) ReleaseOccupant(ctx context.Context, code string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, releasePosteQuery, code)
	if err != nil {
		return errors.Wrap(err, "failed to release poste")
	}
	if tag.RowsAffected() == 0 {
		return poste.ErrNotFound
	}
	return nil
}

func scanPoste(row pgx.Row) (poste.Poste, error) {
	var (
		code, titre, organismeCode string
		niveau                     int
		salaireMin, salaireMax     decimal.Decimal
		occupant                   *string
		actif                      bool
		createdAt, updatedAt       time.Time
	)
	if err := row.Scan(&code, &titre, &niveau, &organismeCode, &salaireMin, &salaireMax, &occupant, &actif, &createdAt, &updatedAt); err != nil {
		return poste.Poste{}, err
	}
	return poste.Hydrate(code, titre, niveau, organismeCode, salaireMin, salaireMax, occupant, actif, createdAt, updatedAt), nil
}
