package staffing

import (
	"embed"

	auditservices "github.com/fonction-publique/sigrh/modules/audit/services"
	"github.com/fonction-publique/sigrh/modules/staffing/infrastructure/persistence"
	"github.com/fonction-publique/sigrh/modules/staffing/presentation/controllers"
	"github.com/fonction-publique/sigrh/modules/staffing/services"
	"github.com/fonction-publique/sigrh/pkg/application"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "staffing"
}

// Register wires the staffing services. The audit module must be registered
// first because the assignment engine records its decisions through it.
func (m *Module) Register(app application.Application) error {
	organismeRepo := persistence.NewOrganismeRepository()
	posteRepo := persistence.NewPosteRepository()
	fonctionnaireRepo := persistence.NewFonctionnaireRepository()
	affectationRepo := persistence.NewAffectationRepository()

	auditSvc := app.Service(auditservices.AuditService{}).(*auditservices.AuditService)

	app.RegisterServices(
		services.NewOrganismeService(organismeRepo, app.EventPublisher()),
		services.NewPosteService(posteRepo, app.EventPublisher()),
		services.NewFonctionnaireService(fonctionnaireRepo, app.EventPublisher()),
		services.NewVacancyService(posteRepo),
		services.NewPropositionService(fonctionnaireRepo, posteRepo),
		services.NewAffectationService(
			affectationRepo,
			posteRepo,
			fonctionnaireRepo,
			organismeRepo,
			auditSvc,
			app.EventPublisher(),
		),
	)
	app.RegisterControllers(controllers.NewStaffingAPIController(app))
	app.Migrations().RegisterSchema("staffing", &persistence.SchemaFS)
	app.RegisterLocaleFiles(&LocaleFiles)
	return nil
}
