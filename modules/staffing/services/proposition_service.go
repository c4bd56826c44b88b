package services

import (
	"context"
	"sort"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/fonctionnaire"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/poste"
	"github.com/fonction-publique/sigrh/modules/staffing/permissions"
)

// Proposition is a ranked vacancy suggestion for one fonctionnaire.
type Proposition struct {
	Poste        poste.Poste
	OrganismeNom string
	Score        int
}

// PropositionService ranks current vacancies for a fonctionnaire. Scores are
// additive: niveau fit against the grade tier (3 exact, 1 adjacent), the
// fonctionnaire's priority weight, and a bonus point when the poste belongs
// to an organisme the fonctionnaire is attached to. Ties break on ascending
// poste code so the ranking is stable across calls.
type PropositionService struct {
	fonctionnaires fonctionnaire.Repository
	postes         poste.Repository
}

func NewPropositionService(fonctionnaires fonctionnaire.Repository, postes poste.Repository) *PropositionService {
	return &PropositionService{
		fonctionnaires: fonctionnaires,
		postes:         postes,
	}
}

func (s *PropositionService) Rank(ctx context.Context, matricule string, limit int) ([]Proposition, error) {
	if err := authorizeStaffingFn(ctx, permissions.ObjectAffectations, permissions.ActionPropositions); err != nil {
		return nil, err
	}

	f, err := s.fonctionnaires.GetByMatricule(ctx, matricule)
	if err != nil {
		return nil, err
	}

	vacants, _, err := s.postes.GetVacant(ctx, &poste.VacantParams{})
	if err != nil {
		return nil, err
	}

	out := make([]Proposition, 0, len(vacants))
	for _, v := range vacants {
		out = append(out, Proposition{
			Poste:        v.Poste,
			OrganismeNom: v.OrganismeNom,
			Score:        Score(f, v.Poste),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Poste.Code() < out[j].Poste.Code()
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Score computes the ranking score of one vacancy for one fonctionnaire.
func Score(f fonctionnaire.Fonctionnaire, p poste.Poste) int {
	score := nivMatch(f.GradeTier(), p.Niveau())
	score += f.Priorite().Weight()
	if f.EstRattacheA(p.OrganismeCode()) {
		score++
	}
	return score
}

func nivMatch(tier, niveau int) int {
	if tier == 0 {
		return 0
	}
	switch {
	case tier == niveau:
		return 3
	case tier-niveau == 1 || niveau-tier == 1:
		return 1
	default:
		return 0
	}
}
