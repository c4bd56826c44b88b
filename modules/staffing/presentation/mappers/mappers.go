package mappers

import (
	"time"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/affectation"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/fonctionnaire"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/organisme"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/poste"
	"github.com/fonction-publique/sigrh/modules/staffing/presentation/viewmodels"
	"github.com/fonction-publique/sigrh/modules/staffing/services"
)

func OrganismeToViewModel(o organisme.Organisme) viewmodels.Organisme {
	return viewmodels.Organisme{
		Code:      o.Code(),
		Nom:       o.Nom(),
		Type:      string(o.Type()),
		Actif:     o.Actif(),
		CreatedAt: o.CreatedAt().Format(time.RFC3339),
		UpdatedAt: o.UpdatedAt().Format(time.RFC3339),
	}
}

func PosteToViewModel(p poste.Poste) viewmodels.Poste {
	return viewmodels.Poste{
		Code:          p.Code(),
		Titre:         p.Titre(),
		Niveau:        p.Niveau(),
		OrganismeCode: p.OrganismeCode(),
		SalaireMin:    p.SalaireMin().StringFixed(2),
		SalaireMax:    p.SalaireMax().StringFixed(2),
		Occupant:      p.Occupant(),
		Actif:         p.Actif(),
		CreatedAt:     p.CreatedAt().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt().Format(time.RFC3339),
	}
}

func VacantPosteToViewModel(v poste.VacantPoste) viewmodels.VacantPoste {
	return viewmodels.VacantPoste{
		Poste:        PosteToViewModel(v.Poste),
		OrganismeNom: v.OrganismeNom,
	}
}

func FonctionnaireToViewModel(f fonctionnaire.Fonctionnaire) viewmodels.Fonctionnaire {
	return viewmodels.Fonctionnaire{
		Matricule:              f.Matricule(),
		NomComplet:             f.NomComplet(),
		Grade:                  f.Grade(),
		Email:                  f.Email(),
		Telephone:              f.Telephone(),
		Statut:                 string(f.Statut()),
		Priorite:               string(f.Priorite()),
		RattachementPrimaire:   f.RattachementPrimaire(),
		RattachementSecondaire: f.RattachementSecondaire(),
		CreatedAt:              f.CreatedAt().Format(time.RFC3339),
		UpdatedAt:              f.UpdatedAt().Format(time.RFC3339),
	}
}

func AffectationToViewModel(a affectation.Affectation) viewmodels.Affectation {
	var dateFin *string
	if a.DateFin() != nil {
		v := a.DateFin().Format("2006-01-02")
		dateFin = &v
	}
	return viewmodels.Affectation{
		ID:               a.ID().String(),
		PosteCode:        a.PosteCode(),
		Matricule:        a.Matricule(),
		Type:             string(a.Type()),
		Statut:           string(a.Statut()),
		PourcentageTemps: a.PourcentageTemps(),
		DateDebut:        a.DateDebut().Format("2006-01-02"),
		DateFin:          dateFin,
		Motif:            a.Motif(),
		DecidePar:        a.DecidePar(),
		CreatedAt:        a.CreatedAt().Format(time.RFC3339),
	}
}

func CompteActifToViewModel(c affectation.CompteActif) viewmodels.CompteActif {
	return viewmodels.CompteActif{
		Matricule:        c.Matricule,
		NomComplet:       c.NomComplet,
		Grade:            c.Grade,
		PosteCode:        c.PosteCode,
		PosteTitre:       c.PosteTitre,
		OrganismeCode:    c.OrganismeCode,
		PourcentageTemps: c.PourcentageTemps,
		DateDebut:        c.DateDebut.Format("2006-01-02"),
	}
}

func PropositionToViewModel(p services.Proposition) viewmodels.Proposition {
	return viewmodels.Proposition{
		Poste:        PosteToViewModel(p.Poste),
		OrganismeNom: p.OrganismeNom,
		Score:        p.Score,
	}
}
