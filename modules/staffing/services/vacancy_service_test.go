package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/organisme"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/poste"
)

func TestVacancyService_GetVacant(t *testing.T) {
	orgs := newMemOrganismes()
	postes := newMemPostes(orgs)
	svc := NewVacancyService(postes)
	bg := context.Background()

	_, err := orgs.Create(bg, organisme.New("MIN-FIN", "Ministere des Finances", organisme.TypePrincipal))
	require.NoError(t, err)
	_, err = orgs.Create(bg, organisme.New("MIN-EDU", "Ministere de l'Education", organisme.TypePrincipal))
	require.NoError(t, err)

	seed := func(code, org string, niveau int, max int64) {
		p := poste.New(code, "Poste "+code, niveau, org, decimal.NewFromInt(25000), decimal.NewFromInt(max))
		_, err := postes.Create(bg, p)
		require.NoError(t, err)
	}
	seed("P-100", "MIN-FIN", 2, 45000)
	seed("P-200", "MIN-FIN", 3, 38000)
	seed("P-300", "MIN-EDU", 2, 50000)
	seed("P-400", "MIN-EDU", 2, 50000)

	// Occupied and inactive postes never appear.
	require.NoError(t, postes.ClaimOccupant(bg, "P-400", "MAT-100"))
	require.NoError(t, postes.SetActive(bg, "P-200", false))

	vacants, total, err := svc.GetVacant(testCtx(), &poste.VacantParams{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, vacants, 2)
	require.Equal(t, "P-100", vacants[0].Poste.Code())
	require.Equal(t, "Ministere des Finances", vacants[0].OrganismeNom)
	require.Equal(t, "P-300", vacants[1].Poste.Code())

	// Deactivating the organisme hides its postes from the projection.
	require.NoError(t, orgs.SetActive(bg, "MIN-EDU", false))
	vacants, total, err = svc.GetVacant(testCtx(), &poste.VacantParams{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "P-100", vacants[0].Poste.Code())
}

func TestVacancyService_GetVacant_Filters(t *testing.T) {
	orgs := newMemOrganismes()
	postes := newMemPostes(orgs)
	svc := NewVacancyService(postes)
	bg := context.Background()

	_, err := orgs.Create(bg, organisme.New("MIN-FIN", "Ministere des Finances", organisme.TypePrincipal))
	require.NoError(t, err)
	_, err = orgs.Create(bg, organisme.New("MIN-EDU", "Ministere de l'Education", organisme.TypePrincipal))
	require.NoError(t, err)

	seed := func(code, org string, niveau int, max int64) {
		p := poste.New(code, "Poste "+code, niveau, org, decimal.NewFromInt(25000), decimal.NewFromInt(max))
		_, err := postes.Create(bg, p)
		require.NoError(t, err)
	}
	seed("P-100", "MIN-FIN", 2, 45000)
	seed("P-200", "MIN-FIN", 3, 38000)
	seed("P-300", "MIN-EDU", 2, 50000)

	vacants, _, err := svc.GetVacant(testCtx(), &poste.VacantParams{OrganismeCode: "MIN-FIN"})
	require.NoError(t, err)
	require.Len(t, vacants, 2)

	vacants, _, err = svc.GetVacant(testCtx(), &poste.VacantParams{Niveau: 2})
	require.NoError(t, err)
	require.Len(t, vacants, 2)

	min := decimal.NewFromInt(40000)
	vacants, _, err = svc.GetVacant(testCtx(), &poste.VacantParams{SalaireMin: &min})
	require.NoError(t, err)
	require.Len(t, vacants, 2)
	require.Equal(t, "P-100", vacants[0].Poste.Code())
	require.Equal(t, "P-300", vacants[1].Poste.Code())

	// A page past the last vacancy comes back empty with the total unchanged.
	vacants, total, err := svc.GetVacant(testCtx(), &poste.VacantParams{Limit: 10, Offset: 10})
	require.NoError(t, err)
	require.Empty(t, vacants)
	require.EqualValues(t, 3, total)
}
