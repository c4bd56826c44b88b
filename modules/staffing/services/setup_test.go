package services

import (
	"context"
	"errors"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/affectation"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/fonctionnaire"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/organisme"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/poste"
	"github.com/fonction-publique/sigrh/pkg/composables"
	"github.com/fonction-publique/sigrh/pkg/eventbus"
)

var errDenied = errors.New("access denied")

func TestMain(m *testing.M) {
	authorizeStaffingFn = func(ctx context.Context, object, action string) error { return nil }
	os.Exit(m.Run())
}

func testCtx() context.Context {
	return composables.WithActor(context.Background(), composables.Actor{ID: "DRH-001", Role: "ADMIN"})
}

func testPublisher() eventbus.EventBus {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.ErrorLevel)
	return eventbus.NewEventPublisher(log)
}

type memOrganismes struct {
	mu    sync.Mutex
	items map[string]organisme.Organisme
}

func newMemOrganismes() *memOrganismes {
	return &memOrganismes{items: map[string]organisme.Organisme{}}
}

func (r *memOrganismes) GetPaginated(_ context.Context, params *organisme.FindParams) ([]organisme.Organisme, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []organisme.Organisme
	for _, o := range r.items {
		if params.Type != "" && o.Type() != params.Type {
			continue
		}
		if params.Actif != nil && o.Actif() != *params.Actif {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(o.Nom()), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return paginate(out, params.Limit, params.Offset), int64(len(out)), nil
}

func (r *memOrganismes) GetByCode(_ context.Context, code string) (organisme.Organisme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[strings.ToUpper(code)]
	if !ok {
		return organisme.Organisme{}, organisme.ErrNotFound
	}
	return o, nil
}

func (r *memOrganismes) Create(_ context.Context, o organisme.Organisme) (organisme.Organisme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[o.Code()]; ok {
		return organisme.Organisme{}, organisme.ErrCodeTaken
	}
	r.items[o.Code()] = o
	return o, nil
}

func (r *memOrganismes) SetActive(_ context.Context, code string, actif bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[strings.ToUpper(code)]
	if !ok {
		return organisme.ErrNotFound
	}
	r.items[o.Code()] = organisme.Hydrate(o.Code(), o.Nom(), o.Type(), actif, o.CreatedAt(), o.UpdatedAt())
	return nil
}

type memPostes struct {
	mu    sync.Mutex
	items map[string]poste.Poste
	orgs  *memOrganismes
}

func newMemPostes(orgs *memOrganismes) *memPostes {
	return &memPostes{items: map[string]poste.Poste{}, orgs: orgs}
}

func (r *memPostes) GetPaginated(_ context.Context, params *poste.FindParams) ([]poste.Poste, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []poste.Poste
	for _, p := range r.items {
		if params.OrganismeCode != "" && p.OrganismeCode() != strings.ToUpper(params.OrganismeCode) {
			continue
		}
		if params.Niveau != 0 && p.Niveau() != params.Niveau {
			continue
		}
		if params.Actif != nil && p.Actif() != *params.Actif {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return paginate(out, params.Limit, params.Offset), int64(len(out)), nil
}

func (r *memPostes) GetByCode(_ context.Context, code string) (poste.Poste, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[strings.ToUpper(code)]
	if !ok {
		return poste.Poste{}, poste.ErrNotFound
	}
	return p, nil
}

func (r *memPostes) GetVacant(_ context.Context, params *poste.VacantParams) ([]poste.VacantPoste, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []poste.VacantPoste
	for _, p := range r.items {
		if !p.IsVacant() {
			continue
		}
		org, ok := r.orgs.items[p.OrganismeCode()]
		if !ok || !org.Actif() {
			continue
		}
		if params.OrganismeCode != "" && p.OrganismeCode() != strings.ToUpper(params.OrganismeCode) {
			continue
		}
		if params.Niveau != 0 && p.Niveau() != params.Niveau {
			continue
		}
		if params.SalaireMin != nil && p.SalaireMax().LessThan(*params.SalaireMin) {
			continue
		}
		out = append(out, poste.VacantPoste{Poste: p, OrganismeNom: org.Nom()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Poste.Code() < out[j].Poste.Code() })
	total := int64(len(out))
	if params.Limit > 0 || params.Offset > 0 {
		var trimmed []poste.VacantPoste
		for i, v := range out {
			if i < params.Offset {
				continue
			}
			if params.Limit > 0 && len(trimmed) >= params.Limit {
				break
			}
			trimmed = append(trimmed, v)
		}
		out = trimmed
	}
	return out, total, nil
}

func (r *memPostes) Create(_ context.Context, p poste.Poste) (poste.Poste, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.Code()]; ok {
		return poste.Poste{}, poste.ErrCodeTaken
	}
	r.items[p.Code()] = p
	return p, nil
}

func (r *memPostes) SetActive(_ context.Context, code string, actif bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[strings.ToUpper(code)]
	if !ok {
		return poste.ErrNotFound
	}
	r.items[p.Code()] = poste.Hydrate(p.Code(), p.Titre(), p.Niveau(), p.OrganismeCode(), p.SalaireMin(), p.SalaireMax(), p.Occupant(), actif, p.CreatedAt(), p.UpdatedAt())
	return nil
}

func (r *memPostes) ClaimOccupant(_ context.Context, code, matricule string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[strings.ToUpper(code)]
	if !ok {
		return poste.ErrNotFound
	}
	if p.Occupant() != nil {
		return poste.ErrOccupied
	}
	m := strings.ToUpper(matricule)
	r.items[p.Code()] = poste.Hydrate(p.Code(), p.Titre(), p.Niveau(), p.OrganismeCode(), p.SalaireMin(), p.SalaireMax(), &m, p.Actif(), p.CreatedAt(), p.UpdatedAt())
	return nil
}

func (r *memPostes) ReleaseOccupant(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[strings.ToUpper(code)]
	if !ok {
		return poste.ErrNotFound
	}
	r.items[p.Code()] = poste.Hydrate(p.Code(), p.Titre(), p.Niveau(), p.OrganismeCode(), p.SalaireMin(), p.SalaireMax(), nil, p.Actif(), p.CreatedAt(), p.UpdatedAt())
	return nil
}

type memFonctionnaires struct {
	mu    sync.Mutex
	items map[string]fonctionnaire.Fonctionnaire
}

func newMemFonctionnaires() *memFonctionnaires {
	return &memFonctionnaires{items: map[string]fonctionnaire.Fonctionnaire{}}
}

func (r *memFonctionnaires) GetPaginated(_ context.Context, params *fonctionnaire.FindParams) ([]fonctionnaire.Fonctionnaire, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []fonctionnaire.Fonctionnaire
	for _, f := range r.items {
		if params.Statut != "" && f.Statut() != params.Statut {
			continue
		}
		if params.Grade != "" && f.Grade() != strings.ToUpper(params.Grade) {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(f.NomComplet()), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Matricule() < out[j].Matricule() })
	return paginate(out, params.Limit, params.Offset), int64(len(out)), nil
}

func (r *memFonctionnaires) GetByMatricule(_ context.Context, matricule string) (fonctionnaire.Fonctionnaire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[strings.ToUpper(matricule)]
	if !ok {
		return fonctionnaire.Fonctionnaire{}, fonctionnaire.ErrNotFound
	}
	return f, nil
}

func (r *memFonctionnaires) Create(_ context.Context, f fonctionnaire.Fonctionnaire) (fonctionnaire.Fonctionnaire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[f.Matricule()]; ok {
		return fonctionnaire.Fonctionnaire{}, fonctionnaire.ErrMatriculeTaken
	}
	r.items[f.Matricule()] = f
	return f, nil
}

func (r *memFonctionnaires) UpdateStatut(_ context.Context, matricule string, statut fonctionnaire.Statut) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[strings.ToUpper(matricule)]
	if !ok {
		return fonctionnaire.ErrNotFound
	}
	r.items[f.Matricule()] = fonctionnaire.Hydrate(
		f.Matricule(), f.NomComplet(), f.Grade(), f.Email(), f.Telephone(),
		statut, f.Priorite(), f.RattachementPrimaire(), f.RattachementSecondaire(),
		f.CreatedAt(), f.UpdatedAt(),
	)
	return nil
}

func (r *memFonctionnaires) Lock(_ context.Context, matricule string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[strings.ToUpper(matricule)]; !ok {
		return fonctionnaire.ErrNotFound
	}
	return nil
}

type memAffectations struct {
	mu    sync.Mutex
	items map[uuid.UUID]affectation.Affectation

	// set by tests exercising the comptes-actifs join
	fonctionnaires *memFonctionnaires
	postes         *memPostes
}

func newMemAffectations() *memAffectations {
	return &memAffectations{items: map[uuid.UUID]affectation.Affectation{}}
}

func (r *memAffectations) GetPaginated(_ context.Context, params *affectation.FindParams) ([]affectation.Affectation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []affectation.Affectation
	for _, a := range r.items {
		if params.PosteCode != "" && a.PosteCode() != strings.ToUpper(params.PosteCode) {
			continue
		}
		if params.Matricule != "" && a.Matricule() != strings.ToUpper(params.Matricule) {
			continue
		}
		if params.Statut != "" && a.Statut() != params.Statut {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().String() < out[j].ID().String() })
	return paginate(out, params.Limit, params.Offset), int64(len(out)), nil
}

func (r *memAffectations) GetByID(_ context.Context, id uuid.UUID) (affectation.Affectation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return affectation.Affectation{}, affectation.ErrNotFound
	}
	return a, nil
}

func (r *memAffectations) GetValideeByPoste(_ context.Context, posteCode string) (affectation.Affectation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.PosteCode() == strings.ToUpper(posteCode) && a.EstValidee() {
			return a, nil
		}
	}
	return affectation.Affectation{}, affectation.ErrNotFound
}

func (r *memAffectations) GetValideesByMatricule(_ context.Context, matricule string) ([]affectation.Affectation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []affectation.Affectation
	for _, a := range r.items {
		if a.Matricule() == strings.ToUpper(matricule) && a.EstValidee() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAffectations) SumPourcentageTemps(_ context.Context, matricule string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, a := range r.items {
		if a.Matricule() == strings.ToUpper(matricule) && a.EstValidee() {
			total += a.PourcentageTemps()
		}
	}
	return total, nil
}

func (r *memAffectations) GetComptesActifs(_ context.Context, params *affectation.ComptesActifsParams) ([]affectation.CompteActif, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []affectation.CompteActif
	for _, a := range r.items {
		if !a.EstValidee() {
			continue
		}
		f, ok := r.fonctionnaires.items[a.Matricule()]
		if !ok {
			continue
		}
		p, ok := r.postes.items[a.PosteCode()]
		if !ok {
			continue
		}
		if params.OrganismeCode != "" && p.OrganismeCode() != strings.ToUpper(params.OrganismeCode) {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(f.NomComplet()), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, affectation.CompteActif{
			Matricule:        f.Matricule(),
			NomComplet:       f.NomComplet(),
			Grade:            f.Grade(),
			PosteCode:        p.Code(),
			PosteTitre:       p.Titre(),
			OrganismeCode:    p.OrganismeCode(),
			PourcentageTemps: a.PourcentageTemps(),
			DateDebut:        a.DateDebut(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NomComplet != out[j].NomComplet {
			return out[i].NomComplet < out[j].NomComplet
		}
		return out[i].Matricule < out[j].Matricule
	})
	return paginate(out, params.Limit, params.Offset), int64(len(out)), nil
}

func (r *memAffectations) Create(_ context.Context, a affectation.Affectation) (affectation.Affectation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID()] = a
	return a, nil
}

func (r *memAffectations) Update(_ context.Context, a affectation.Affectation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID()]; !ok {
		return affectation.ErrNotFound
	}
	r.items[a.ID()] = a
	return nil
}

type memAudit struct {
	mu      sync.Mutex
	entries []string
}

func (r *memAudit) Record(_ context.Context, operation, entityRef string, _, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, operation+":"+entityRef)
	return nil
}

func (r *memAudit) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func zeroTime() time.Time { return time.Time{} }

func paginate[T any](in []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(in) {
			return nil
		}
		in = in[offset:]
	}
	if limit > 0 && len(in) > limit {
		in = in[:limit]
	}
	return in
}
