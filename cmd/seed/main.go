package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fonction-publique/sigrh/modules"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/fonctionnaire"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/organisme"
	"github.com/fonction-publique/sigrh/modules/staffing/domain/aggregates/poste"
	"github.com/fonction-publique/sigrh/modules/staffing/infrastructure/persistence"
	"github.com/fonction-publique/sigrh/pkg/application"
	"github.com/fonction-publique/sigrh/pkg/composables"
	"github.com/fonction-publique/sigrh/pkg/configuration"
	"github.com/fonction-publique/sigrh/pkg/eventbus"
)

type seedOrganisme struct {
	code string
	nom  string
	typ  organisme.Type
}

type seedPoste struct {
	code      string
	titre     string
	niveau    int
	organisme string
	min, max  int64
}

type seedFonctionnaire struct {
	matricule    string
	nom          string
	grade        string
	priorite     fonctionnaire.Priorite
	rattachement string
}

var organismes = []seedOrganisme{
	{"MIN-FIN", "Ministère des Finances", organisme.TypePrincipal},
	{"MIN-EDU", "Ministère de l'Éducation Nationale", organisme.TypePrincipal},
	{"MIN-SAN", "Ministère de la Santé", organisme.TypePrincipal},
	{"AG-STAT", "Agence Nationale de la Statistique", organisme.TypeSecondaire},
}

var postes = []seedPoste{
	{"P-1001", "Directeur du Budget", 1, "MIN-FIN", 65000, 85000},
	{"P-1002", "Chef de Service Comptabilité", 2, "MIN-FIN", 48000, 62000},
	{"P-1003", "Analyste Financier", 3, "MIN-FIN", 34000, 46000},
	{"P-2001", "Inspecteur d'Académie", 2, "MIN-EDU", 45000, 60000},
	{"P-2002", "Gestionnaire de Scolarité", 4, "MIN-EDU", 26000, 34000},
	{"P-3001", "Médecin Inspecteur", 1, "MIN-SAN", 70000, 92000},
	{"P-3002", "Agent d'Accueil", 5, "MIN-SAN", 21000, 26000},
	{"P-4001", "Statisticien Principal", 2, "AG-STAT", 42000, 56000},
}

var fonctionnaires = []seedFonctionnaire{
	{"MAT-0001", "Awa Diop", "A1", fonctionnaire.PrioriteHaute, "MIN-FIN"},
	{"MAT-0002", "Jean-Baptiste Koffi", "B3", fonctionnaire.PrioriteMoyenne, "MIN-FIN"},
	{"MAT-0003", "Fatou Ndiaye", "C2", fonctionnaire.PrioriteHaute, "MIN-EDU"},
	{"MAT-0004", "Moussa Traoré", "D1", fonctionnaire.PrioriteBasse, ""},
	{"MAT-0005", "Claire Mensah", "B1", fonctionnaire.PrioriteMoyenne, "AG-STAT"},
	{"MAT-0006", "Ibrahima Sall", "E2", fonctionnaire.PrioriteBasse, "MIN-SAN"},
}

func main() {
	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		logger.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Bundle:   application.LoadBundle(),
	})
	if err := modules.Load(app); err != nil {
		logger.WithError(err).Fatal("failed to load modules")
	}
	if err := app.Migrations().Run(ctx); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	ctx = composables.WithPool(ctx, pool)
	ctx = composables.WithActor(ctx, composables.Actor{ID: "seed", Role: "SUPER_ADMIN"})

	if err := composables.InTx(ctx, seed); err != nil {
		logger.WithError(err).Fatal("seeding failed")
	}
	logger.Info("demo dataset seeded")
}

func seed(ctx context.Context) error {
	organismeRepo := persistence.NewOrganismeRepository()
	posteRepo := persistence.NewPosteRepository()
	fonctionnaireRepo := persistence.NewFonctionnaireRepository()

	for _, o := range organismes {
		if _, err := organismeRepo.Create(ctx, organisme.New(o.code, o.nom, o.typ)); err != nil {
			return err
		}
	}
	for _, f := range fonctionnaires {
		entity := fonctionnaire.New(f.matricule, f.nom, f.grade, f.priorite)
		if f.rattachement != "" {
			entity = fonctionnaire.Hydrate(
				entity.Matricule(), entity.NomComplet(), entity.Grade(), "", "",
				entity.Statut(), entity.Priorite(), &f.rattachement, nil,
				entity.CreatedAt(), entity.UpdatedAt(),
			)
		}
		if _, err := fonctionnaireRepo.Create(ctx, entity); err != nil {
			return err
		}
	}
	for _, p := range postes {
		entity := poste.New(p.code, p.titre, p.niveau, p.organisme, decimal.NewFromInt(p.min), decimal.NewFromInt(p.max))
		if _, err := posteRepo.Create(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}
