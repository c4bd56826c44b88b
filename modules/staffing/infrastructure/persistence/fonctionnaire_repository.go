package persistence

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/fonctionnaire"
	"github.com/fonction-publique/sigrh/pkg/composables"
)

const (
	selectFonctionnaireQuery = `
		SELECT matricule, nom_complet, grade, email, telephone, statut, priorite, rattachement_primaire, rattachement_secondaire, created_at, updated_at
		FROM staffing_fonctionnaires`
	countFonctionnaireQuery  = `SELECT COUNT(*) FROM staffing_fonctionnaires`
	insertFonctionnaireQuery = `
		INSERT INTO staffing_fonctionnaires (matricule, nom_complet, grade, email, telephone, statut, priorite, rattachement_primaire, rattachement_secondaire, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING matricule, nom_complet, grade, email, telephone, statut, priorite, rattachement_primaire, rattachement_secondaire, created_at, updated_at`
	updateFonctionnaireStatutQuery = `
		UPDATE staffing_fonctionnaires SET statut = $2, updated_at = now() WHERE matricule = $1`
	lockFonctionnaireQuery = `
		SELECT matricule FROM staffing_fonctionnaires WHERE matricule = $1 FOR UPDATE`
)

type PgFonctionnaireRepository struct{}

func NewFonctionnaireRepository() fonctionnaire.Repository {
	return &PgFonctionnaireRepository{}
}

func (r *PgFonctionnaireRepository) GetPaginated(ctx context.Context, params *fonctionnaire.FindParams) ([]fonctionnaire.Fonctionnaire, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	fb := &filterBuilder{}
	if params.Statut != "" {
		fb.add("statut = $%d", string(params.Statut))
	}
	if params.Grade != "" {
		fb.add("grade = $%d", params.Grade)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		fb.add("(nom_complet ILIKE $%d OR matricule ILIKE $%d)", pattern, pattern)
	}

	var total int64
	if err := tx.QueryRow(ctx, countFonctionnaireQuery+fb.where(), fb.args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count fonctionnaires")
	}

	rows, err := tx.Query(ctx, selectFonctionnaireQuery+fb.where()+" ORDER BY matricule"+limitOffset(params.Limit, params.Offset), fb.args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to query fonctionnaires")
	}
	defer rows.Close()

	var out []fonctionnaire.Fonctionnaire
	for rows.Next() {
		f, err := scanFonctionnaire(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, f)
	}
	return out, total, rows.Err()
}

func (r *PgFonctionnaireRepository) GetByMatricule(ctx context.Context, matricule string) (fonctionnaire.Fonctionnaire, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return fonctionnaire.Fonctionnaire{}, err
	}
	f, err := scanFonctionnaire(tx.QueryRow(ctx, selectFonctionnaireQuery+" WHERE matricule = $1", matricule))
	if errors.Is(err, pgx.ErrNoRows) {
		return fonctionnaire.Fonctionnaire{}, fonctionnaire.ErrNotFound
	}
	return f, err
}

func (r *PgFonctionnaireRepository) Create(ctx context.Context, f fonctionnaire.Fonctionnaire) (fonctionnaire.Fonctionnaire, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return fonctionnaire.Fonctionnaire{}, err
	}
	created, err := scanFonctionnaire(tx.QueryRow(
		ctx, insertFonctionnaireQuery,
		f.Matricule(), f.NomComplet(), f.Grade(), f.Email(), f.Telephone(),
		string(f.Statut()), string(f.Priorite()), f.RattachementPrimaire(), f.RattachementSecondaire(),
	))
	if isUniqueViolation(err) {
		return fonctionnaire.Fonctionnaire{}, fonctionnaire.ErrMatriculeTaken
	}
	if err != nil {
		return fonctionnaire.Fonctionnaire{}, errors.Wrap(err, "failed to insert fonctionnaire")
	}
	return created, nil
}

func (r *PgFonctionnaireRepository) UpdateStatut(ctx context.Context, matricule string, statut fonctionnaire.Statut) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, updateFonctionnaireStatutQuery, matricule, string(statut))
	if err != nil {
		return errors.Wrap(err, "failed to update fonctionnaire statut")
	}
	if tag.RowsAffected() == 0 {
		return fonctionnaire.ErrNotFound
	}
	return nil
}

func (r *PgFonctionnaireRepository) Lock(ctx context.Context, matricule string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	var locked string
	if err := tx.QueryRow(ctx, lockFonctionnaireQuery, matricule).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fonctionnaire.ErrNotFound
		}
		return errors.Wrap(err, "failed to lock fonctionnaire")
	}
	return nil
}

func scanFonctionnaire(row pgx.Row) (fonctionnaire.Fonctionnaire, error) {
	var (
		matricule, nomComplet, grade, email, telephone string
		statut, priorite                               string
		primaire, secondaire                           *string
		createdAt, updatedAt                           time.Time
	)
	if err := row.Scan(&matricule, &nomComplet, &grade, &email, &telephone, &statut, &priorite, &primaire, &secondaire, &createdAt, &updatedAt); err != nil {
		return fonctionnaire.Fonctionnaire{}, err
	}
	return fonctionnaire.Hydrate(
		matricule, nomComplet, grade, email, telephone,
		fonctionnaire.Statut(statut), fonctionnaire.Priorite(priorite),
		primaire, secondaire, createdAt, updatedAt,
	), nil
}
