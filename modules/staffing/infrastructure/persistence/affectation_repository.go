package persistence

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/affectation"
	"github.com/fonction-publique/sigrh/pkg/composables"
)

const (
	selectAffectationQuery = `
		SELECT id, poste_code, matricule, type, statut, pourcentage_temps, date_debut, date_fin, motif, decide_par, created_at, updated_at
		FROM staffing_affectations`
	countAffectationQuery  = `SELECT COUNT(*) FROM staffing_affectations`
	insertAffectationQuery = `
		INSERT INTO staffing_affectations (id, poste_code, matricule, type, statut, pourcentage_temps, date_debut, date_fin, motif, decide_par, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING id, poste_code, matricule, type, statut, pourcentage_temps, date_debut, date_fin, motif, decide_par, created_at, updated_at`
	updateAffectationQuery = `
		UPDATE staffing_affectations
		SET statut = $2, date_fin = $3, motif = $4, updated_at = now()
		WHERE id = $1`
	sumPourcentageQuery = `
		SELECT COALESCE(SUM(pourcentage_temps), 0)
		FROM staffing_affectations
		WHERE matricule = $1 AND statut = 'VALIDEE'`
	selectComptesActifsQuery = `
		SELECT f.matricule, f.nom_complet, f.grade, p.code, p.titre, p.organisme_code, a.pourcentage_temps, a.date_debut
		FROM staffing_affectations a
		JOIN staffing_fonctionnaires f ON f.matricule = a.matricule
		JOIN staffing_postes p ON p.code = a.poste_code`
	countComptesActifsQuery = `
		SELECT COUNT(*)
		FROM staffing_affectations a
		JOIN staffing_fonctionnaires f ON f.matricule = a.matricule
		JOIN staffing_postes p ON p.code = a.poste_code`
)

type PgAffectationRepository struct{}

func NewAffectationRepository() affectation.Repository {
	return &PgAffectationRepository{}
}

func (r *PgAffectationRepository) GetPaginated(ctx context.Context, params *affectation.FindParams) ([]affectation.Affectation, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	fb := &filterBuilder{}
	if params.PosteCode != "" {
		fb.add("poste_code = $%d", params.PosteCode)
	}
	if params.Matricule != "" {
		fb.add("matricule = $%d", params.Matricule)
	}
	if params.Statut != "" {
		fb.add("statut = $%d", string(params.Statut))
	}

	var total int64
	if err := tx.QueryRow(ctx, countAffectationQuery+fb.where(), fb.args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count affectations")
	}

	rows, err := tx.Query(ctx, selectAffectationQuery+fb.where()+" ORDER BY created_at DESC, id"+limitOffset(params.Limit, params.Offset), fb.args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to query affectations")
	}
	defer rows.Close()

	var out []affectation.Affectation
	for rows.Next() {
		a, err := scanAffectation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *PgAffectationRepository) GetByID(ctx context.Context, id uuid.UUID) (affectation.Affectation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return affectation.Affectation{}, err
	}
	a, err := scanAffectation(tx.QueryRow(ctx, selectAffectationQuery+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return affectation.Affectation{}, affectation.ErrNotFound
	}
	return a, err
}

func (r *PgAffectationRepository) GetValideeByPoste(ctx context.Context, posteCode string) (affectation.Affectation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return affectation.Affectation{}, err
	}
	a, err := scanAffectation(tx.QueryRow(ctx, selectAffectationQuery+" WHERE poste_code = $1 AND statut = 'VALIDEE'", posteCode))
	if errors.Is(err, pgx.ErrNoRows) {
		return affectation.Affectation{}, affectation.ErrNotFound
	}
	return a, err
}

func (r *PgAffectationRepository) GetValideesByMatricule(ctx context.Context, matricule string) ([]affectation.Affectation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectAffectationQuery+" WHERE matricule = $1 AND statut = 'VALIDEE' ORDER BY date_debut", matricule)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query affectations")
	}
	defer rows.Close()

	var out []affectation.Affectation
	for rows.Next() {
		a, err := scanAffectation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PgAffectationRepository) GetComptesActifs(ctx context.Context, params *affectation.ComptesActifsParams) ([]affectation.CompteActif, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	fb := &filterBuilder{}
	fb.add("a.statut = $%d", string(affectation.StatutValidee))
	if params.OrganismeCode != "" {
		fb.add("p.organisme_code = $%d", params.OrganismeCode)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		fb.add("(f.nom_complet ILIKE $%d OR f.matricule ILIKE $%d OR p.titre ILIKE $%d)", pattern, pattern, pattern)
	}

	var total int64
	if err := tx.QueryRow(ctx, countComptesActifsQuery+fb.where(), fb.args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count comptes actifs")
	}

	rows, err := tx.Query(ctx, selectComptesActifsQuery+fb.where()+" ORDER BY f.nom_complet, f.matricule"+limitOffset(params.Limit, params.Offset), fb.args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to query comptes actifs")
	}
	defer rows.Close()

	var out []affectation.CompteActif
	for rows.Next() {
		var c affectation.CompteActif
		if err := rows.Scan(&c.Matricule, &c.NomComplet, &c.Grade, &c.PosteCode, &c.PosteTitre, &c.OrganismeCode, &c.PourcentageTemps, &c.DateDebut); err != nil {
			return nil, 0, errors.Wrap(err, "failed to scan compte actif")
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *PgAffectationRepository) SumPourcentageTemps(ctx context.Context, matricule string) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var total int
	if err := tx.QueryRow(ctx, sumPourcentageQuery, matricule).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "failed to sum working time")
	}
	return total, nil
}

func (r *PgAffectationRepository) Create(ctx context.Context, a affectation.Affectation) (affectation.Affectation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return affectation.Affectation{}, err
	}
	created, err := scanAffectation(tx.QueryRow(
		ctx, insertAffectationQuery,
		a.ID(), a.PosteCode(), a.Matricule(), string(a.Type()), string(a.Statut()),
		a.PourcentageTemps(), a.DateDebut(), a.DateFin(), a.Motif(), a.DecidePar(),
	))
	if err != nil {
		return affectation.Affectation{}, errors.Wrap(err, "failed to insert affectation")
	}
	return created, nil
}

func (r *PgAffectationRepository) Update(ctx context.Context, a affectation.Affectation) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, updateAffectationQuery, a.ID(), string(a.Statut()), a.DateFin(), a.Motif())
	if err != nil {
		return errors.Wrap(err, "failed to update affectation")
	}
	if tag.RowsAffected() == 0 {
		return affectation.ErrNotFound
	}
	return nil
}

func scanAffectation(row pgx.Row) (affectation.Affectation, error) {
	var (
		id                   uuid.UUID
		posteCode, matricule string
		typ, statut          string
		pourcentage          int
		dateDebut            time.Time
		dateFin              *time.Time
		motif, decidePar     string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &posteCode, &matricule, &typ, &statut, &pourcentage, &dateDebut, &dateFin, &motif, &decidePar, &createdAt, &updatedAt); err != nil {
		return affectation.Affectation{}, err
	}
	return affectation.Hydrate(
		id, posteCode, matricule,
		affectation.Type(typ), affectation.Statut(statut),
		pourcentage, dateDebut, dateFin, motif, decidePar, createdAt, updatedAt,
	), nil
}
