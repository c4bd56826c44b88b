package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/affectation"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/fonctionnaire"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/organisme"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/poste"
	"github.com/fonction-publique/sigrh/modules/staffing/permissions"
	"github.com/fonction-publique/sigrh/pkg/composables"
	"github.com/fonction-publique/sigrh/pkg/eventbus"
)

// AuditRecorder persists a trace of every staffing decision within the same
// transaction as the decision itself.
type AuditRecorder interface {
	Record(ctx context.Context, operation, entityRef string, before, after any) error
}

// AffectationService implements the assignment state machine. Propose and
// Terminate must run inside a request transaction so that the occupancy
// check-and-set, the workload check and the audit trace commit atomically.
type AffectationService struct {
	affectations   affectation.Repository
	postes         poste.Repository
	fonctionnaires fonctionnaire.Repository
	organismes     organisme.Repository
	audit          AuditRecorder
	publisher      eventbus.EventBus
}

func NewAffectationService(
	affectations affectation.Repository,
	postes poste.Repository,
	fonctionnaires fonctionnaire.Repository,
	organismes organisme.Repository,
	audit AuditRecorder,
	publisher eventbus.EventBus,
) *AffectationService {
	return &AffectationService{
		affectations:   affectations,
		postes:         postes,
		fonctionnaires: fonctionnaires,
		organismes:     organismes,
		audit:          audit,
		publisher:      publisher,
	}
}

func (s *AffectationService) GetPaginated(ctx context.Context, params *affectation.FindParams) ([]affectation.Affectation, int64, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectAffectations, permissions.ActionList); err != nil {
		return nil, 0, err
	}
	return s.affectations.GetPaginated(ctx, params)
}

func (s *AffectationService) GetByID(ctx context.Context, id uuid.UUID) (affectation.Affectation, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectAffectations, permissions.ActionList); err != nil {
		return affectation.Affectation{}, err
	}
	return s.affectations.GetByID(ctx, id)
}

// Propose validates and commits an affectation in one pass. Ordering matters:
// the fonctionnaire row lock is taken first so two concurrent proposals for
// the same person serialize on the workload check, then the poste claim is a
// conditional update so two proposals for the same poste cannot both win.
func (s *AffectationService) Propose(ctx context.Context, dto *affectation.ProposeDTO) (affectation.Affectation, error) {
	var zero affectation.Affectation
	if err := authorizeStaffingFn(ctx, permissions.ObjectAffectations, permissions.ActionCreate); err != nil {
		return zero, err
	}

	actor, err := composables.UseActor(ctx)
	if err != nil {
		return zero, err
	}

	f, err := s.fonctionnaires.GetByMatricule(ctx, dto.Matricule)
	if err != nil {
		return zero, err
	}
	if err := s.fonctionnaires.Lock(ctx, f.Matricule()); err != nil {
		return zero, errors.Wrap(err, "failed to lock fonctionnaire")
	}
	if f.Statut() == fonctionnaire.StatutSuspendu {
		return zero, affectation.ErrFonctionnaireSuspendu
	}

	p, err := s.postes.GetByCode(ctx, dto.PosteCode)
	if err != nil {
		return zero, err
	}
	if !p.Actif() {
		return zero, affectation.ErrPosteInactif
	}
	org, err := s.organismes.GetByCode(ctx, p.OrganismeCode())
	if err != nil {
		return zero, err
	}
	if !org.Actif() {
		return zero, affectation.ErrOrganismeInactif
	}

	total, err := s.affectations.SumPourcentageTemps(ctx, f.Matricule())
	if err != nil {
		return zero, errors.Wrap(err, "failed to sum working time")
	}
	if total+dto.PourcentageTemps > 100 {
		return zero, affectation.ErrOverAllocated
	}

	if err := s.postes.ClaimOccupant(ctx, p.Code(), f.Matricule()); err != nil {
		return zero, err
	}

	created, err := s.affectations.Create(ctx, dto.ToEntity(actor.ID))
	if err != nil {
		return zero, errors.Wrap(err, "failed to create affectation")
	}

	statut := fonctionnaire.StatutAffecte
	if created.Type() == affectation.TypeDetachement {
		statut = fonctionnaire.StatutDetache
	}
	if err := s.fonctionnaires.UpdateStatut(ctx, f.Matricule(), statut); err != nil {
		return zero, errors.Wrap(err, "failed to update fonctionnaire statut")
	}

	if err := s.audit.Record(ctx, "affectation.validee", created.ID().String(), nil, auditView(created)); err != nil {
		return zero, errors.Wrap(err, "failed to record audit entry")
	}

	s.publisher.Publish(affectation.ValideeEvent{Result: created, Actor: actor.ID})
	return created, nil
}

// GetComptesActifs lists fonctionnaires currently holding a validated
// affectation, with the occupied poste.
func (s *AffectationService) GetComptesActifs(ctx context.Context, params *affectation.ComptesActifsParams) ([]affectation.CompteActif, int64, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectAffectations, permissions.ActionList); err != nil {
		return nil, 0, err
	}
	return s.affectations.GetComptesActifs(ctx, params)
}

// Terminate closes a validated affectation, frees the poste and, when the
// fonctionnaire has no remaining validated affectation, returns them to the
// waiting pool.
func (s *AffectationService) Terminate(ctx context.Context, id uuid.UUID, dto *affectation.TerminateDTO) (affectation.Affectation, error) {
	var zero affectation.Affectation
	if err := authorizeStaffingFn(ctx, permissions.ObjectAffectations, permissions.ActionTerminate); err != nil {
		return zero, err
	}

	actor, err := composables.UseActor(ctx)
	if err != nil {
		return zero, err
	}

	current, err := s.affectations.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if !current.EstValidee() {
		return zero, affectation.ErrNotValidee
	}

	terminated := current.Terminer(time.Now().UTC(), dto.Motif)
	if err := s.affectations.Update(ctx, terminated); err != nil {
		return zero, errors.Wrap(err, "failed to terminate affectation")
	}
	if err := s.postes.ReleaseOccupant(ctx, current.PosteCode()); err != nil {
		return zero, errors.Wrap(err, "failed to release poste")
	}

	remaining, err := s.affectations.SumPourcentageTemps(ctx, current.Matricule())
	if err != nil {
		return zero, errors.Wrap(err, "failed to sum working time")
	}
	if remaining == 0 {
		if err := s.fonctionnaires.UpdateStatut(ctx, current.Matricule(), fonctionnaire.StatutEnAttente); err != nil {
			return zero, errors.Wrap(err, "failed to update fonctionnaire statut")
		}
	}

	if err := s.audit.Record(ctx, "affectation.terminee", current.ID().String(), auditView(current), auditView(terminated)); err != nil {
		return zero, errors.Wrap(err, "failed to record audit entry")
	}

	s.publisher.Publish(affectation.TermineeEvent{Result: terminated, Actor: actor.ID})
	return terminated, nil
}

// auditView is the snapshot serialized into the audit trail.
func auditView(a affectation.Affectation) map[string]any {
	view := map[string]any{
		"id":                a.ID().String(),
		"poste_code":        a.PosteCode(),
		"matricule":         a.Matricule(),
		"type":              string(a.Type()),
		"statut":            string(a.Statut()),
		"pourcentage_temps": a.PourcentageTemps(),
		"date_debut":        a.DateDebut().Format("2006-01-02"),
	}
	if a.Motif() != "" {
		view["motif"] = a.Motif()
	}
	if a.DateFin() != nil {
		view["date_fin"] = a.DateFin().Format("2006-01-02")
	}
	return view
}
