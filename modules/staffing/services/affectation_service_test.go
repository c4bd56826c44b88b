package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/affectation"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/fonctionnaire"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/organisme"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/poste"
)

type engineFixture struct {
	organismes     *memOrganismes
	postes         *memPostes
	fonctionnaires *memFonctionnaires
	affectations   *memAffectations
	audit          *memAudit
	service        *AffectationService
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	orgs := newMemOrganismes()
	postes := newMemPostes(orgs)
	fonctionnaires := newMemFonctionnaires()
	affectations := newMemAffectations()
	audit := &memAudit{}
	return &engineFixture{
		organismes:     orgs,
		postes:         postes,
		fonctionnaires: fonctionnaires,
		affectations:   affectations,
		audit:          audit,
		service:        NewAffectationService(affectations, postes, fonctionnaires, orgs, audit, testPublisher()),
	}
}

func (f *engineFixture) seedOrganisme(t *testing.T, code string) {
	t.Helper()
	_, err := f.organismes.Create(context.Background(), organisme.New(code, "Ministere "+code, organisme.TypePrincipal))
	require.NoError(t, err)
}

func (f *engineFixture) seedPoste(t *testing.T, code, orgCode string, niveau int) {
	t.Helper()
	p := poste.New(code, "Charge de mission", niveau, orgCode, decimal.NewFromInt(30000), decimal.NewFromInt(45000))
	_, err := f.postes.Create(context.Background(), p)
	require.NoError(t, err)
}

func (f *engineFixture) seedFonctionnaire(t *testing.T, matricule, grade string) {
	t.Helper()
	_, err := f.fonctionnaires.Create(context.Background(), fonctionnaire.New(matricule, "Agent "+matricule, grade, fonctionnaire.PrioriteMoyenne))
	require.NoError(t, err)
}

func proposeDTO(posteCode, matricule string, pct int) *affectation.ProposeDTO {
	return &affectation.ProposeDTO{
		PosteCode:        posteCode,
		Matricule:        matricule,
		Type:             string(affectation.TypePermanente),
		PourcentageTemps: pct,
	}
}

func TestAffectationService_Propose(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")

	created, err := f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-100", 100))
	require.NoError(t, err)
	require.Equal(t, affectation.StatutValidee, created.Statut())
	require.Equal(t, "DRH-001", created.DecidePar())

	p, err := f.postes.GetByCode(context.Background(), "P-001")
	require.NoError(t, err)
	require.NotNil(t, p.Occupant())
	require.Equal(t, "MAT-100", *p.Occupant())

	agent, err := f.fonctionnaires.GetByMatricule(context.Background(), "MAT-100")
	require.NoError(t, err)
	require.Equal(t, fonctionnaire.StatutAffecte, agent.Statut())

	require.Equal(t, 1, f.audit.count())
}

func TestAffectationService_Propose_DetachementStatut(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")

	dto := proposeDTO("P-001", "MAT-100", 50)
	dto.Type = string(affectation.TypeDetachement)
	_, err := f.service.Propose(testCtx(), dto)
	require.NoError(t, err)

	agent, err := f.fonctionnaires.GetByMatricule(context.Background(), "MAT-100")
	require.NoError(t, err)
	require.Equal(t, fonctionnaire.StatutDetache, agent.Statut())
}

func TestAffectationService_Propose_PosteOccupied(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")
	f.seedFonctionnaire(t, "MAT-200", "B1")

	_, err := f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-100", 100))
	require.NoError(t, err)

	_, err = f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-200", 100))
	require.ErrorIs(t, err, poste.ErrOccupied)
}

func TestAffectationService_Propose_OverAllocation(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedPoste(t, "P-002", "MIN-FIN", 2)
	f.seedPoste(t, "P-003", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")

	_, err := f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-100", 60))
	require.NoError(t, err)

	_, err = f.service.Propose(testCtx(), proposeDTO("P-002", "MAT-100", 50))
	require.ErrorIs(t, err, affectation.ErrOverAllocated)

	// 60 + 40 lands exactly on the ceiling and must pass.
	_, err = f.service.Propose(testCtx(), proposeDTO("P-003", "MAT-100", 40))
	require.NoError(t, err)
}

func TestAffectationService_Propose_Suspended(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")
	require.NoError(t, f.fonctionnaires.UpdateStatut(context.Background(), "MAT-100", fonctionnaire.StatutSuspendu))

	_, err := f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-100", 100))
	require.ErrorIs(t, err, affectation.ErrFonctionnaireSuspendu)
}

func TestAffectationService_Propose_InactivePoste(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")
	require.NoError(t, f.postes.SetActive(context.Background(), "P-001", false))

	_, err := f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-100", 100))
	require.ErrorIs(t, err, affectation.ErrPosteInactif)
}

func TestAffectationService_Propose_InactiveOrganisme(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")
	require.NoError(t, f.organismes.SetActive(context.Background(), "MIN-FIN", false))

	_, err := f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-100", 100))
	require.ErrorIs(t, err, affectation.ErrOrganismeInactif)
}

func TestAffectationService_Propose_UnknownTargets(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")

	_, err := f.service.Propose(testCtx(), proposeDTO("P-404", "MAT-100", 100))
	require.ErrorIs(t, err, poste.ErrNotFound)

	_, err = f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-404", 100))
	require.ErrorIs(t, err, fonctionnaire.ErrNotFound)
}

func TestAffectationService_Propose_Denied(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")

	prev := authorizeStaffingFn
	authorizeStaffingFn = func(ctx context.Context, object, action string) error {
		return errDenied
	}
	defer func() { authorizeStaffingFn = prev }()

	_, err := f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-100", 100))
	require.ErrorIs(t, err, errDenied)
	require.Equal(t, 0, f.audit.count())
}

func TestAffectationService_Terminate(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")

	created, err := f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-100", 100))
	require.NoError(t, err)

	terminated, err := f.service.Terminate(testCtx(), created.ID(), &affectation.TerminateDTO{Motif: "mutation interne"})
	require.NoError(t, err)
	require.Equal(t, affectation.StatutTerminee, terminated.Statut())
	require.NotNil(t, terminated.DateFin())
	require.Equal(t, "mutation interne", terminated.Motif())

	p, err := f.postes.GetByCode(context.Background(), "P-001")
	require.NoError(t, err)
	require.Nil(t, p.Occupant())

	agent, err := f.fonctionnaires.GetByMatricule(context.Background(), "MAT-100")
	require.NoError(t, err)
	require.Equal(t, fonctionnaire.StatutEnAttente, agent.Statut())

	// A freed poste is assignable again.
	_, err = f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-100", 100))
	require.NoError(t, err)
}

func TestAffectationService_Terminate_KeepsStatutWhenOtherAffectationsRemain(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedPoste(t, "P-002", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")

	first, err := f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-100", 50))
	require.NoError(t, err)
	_, err = f.service.Propose(testCtx(), proposeDTO("P-002", "MAT-100", 50))
	require.NoError(t, err)

	_, err = f.service.Terminate(testCtx(), first.ID(), &affectation.TerminateDTO{})
	require.NoError(t, err)

	agent, err := f.fonctionnaires.GetByMatricule(context.Background(), "MAT-100")
	require.NoError(t, err)
	require.Equal(t, fonctionnaire.StatutAffecte, agent.Statut())
}

func TestAffectationService_Terminate_NotValidee(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")

	created, err := f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-100", 100))
	require.NoError(t, err)

	_, err = f.service.Terminate(testCtx(), created.ID(), &affectation.TerminateDTO{})
	require.NoError(t, err)

	_, err = f.service.Terminate(testCtx(), created.ID(), &affectation.TerminateDTO{})
	require.ErrorIs(t, err, affectation.ErrNotValidee)

	_, err = f.service.Terminate(testCtx(), uuid.New(), &affectation.TerminateDTO{})
	require.ErrorIs(t, err, affectation.ErrNotFound)
}

func TestAffectationService_GetComptesActifs(t *testing.T) {
	f := newEngineFixture(t)
	f.affectations.fonctionnaires = f.fonctionnaires
	f.affectations.postes = f.postes
	f.seedOrganisme(t, "MIN-FIN")
	f.seedOrganisme(t, "AG-STAT")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedPoste(t, "P-002", "AG-STAT", 3)
	f.seedFonctionnaire(t, "MAT-100", "B2")
	f.seedFonctionnaire(t, "MAT-200", "C1")
	f.seedFonctionnaire(t, "MAT-300", "A1")

	_, err := f.service.Propose(testCtx(), proposeDTO("P-001", "MAT-100", 100))
	require.NoError(t, err)
	_, err = f.service.Propose(testCtx(), proposeDTO("P-002", "MAT-200", 80))
	require.NoError(t, err)

	comptes, total, err := f.service.GetComptesActifs(testCtx(), &affectation.ComptesActifsParams{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, comptes, 2)

	comptes, total, err = f.service.GetComptesActifs(testCtx(), &affectation.ComptesActifsParams{OrganismeCode: "AG-STAT"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "MAT-200", comptes[0].Matricule)
	require.Equal(t, "P-002", comptes[0].PosteCode)
	require.Equal(t, 80, comptes[0].PourcentageTemps)

	// the waiting agent never shows up
	for _, c := range comptes {
		require.NotEqual(t, "MAT-300", c.Matricule)
	}
}

func TestAffectationService_Propose_ConcurrentSamePoste(t *testing.T) {
	f := newEngineFixture(t)
	f.seedOrganisme(t, "MIN-FIN")
	f.seedPoste(t, "P-001", "MIN-FIN", 2)
	f.seedFonctionnaire(t, "MAT-100", "B2")
	f.seedFonctionnaire(t, "MAT-200", "B1")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, matricule := range []string{"MAT-100", "MAT-200"} {
		wg.Add(1)
		go func(i int, matricule string) {
			defer wg.Done()
			_, errs[i] = f.service.Propose(testCtx(), proposeDTO("P-001", matricule, 100))
		}(i, matricule)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, poste.ErrOccupied)
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, f.audit.count())
}
