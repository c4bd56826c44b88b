package audit

import (
	"github.com/fonction-publique/sigrh/modules/audit/infrastructure/persistence"
	"github.com/fonction-publique/sigrh/modules/audit/presentation/controllers"
	"github.com/fonction-publique/sigrh/modules/audit/services"
	"github.com/fonction-publique/sigrh/pkg/application"
)

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "audit"
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(services.NewAuditService(persistence.NewAuditRepository()))
	app.RegisterControllers(controllers.NewAuditAPIController(app))
	app.Migrations().RegisterSchema("audit", &persistence.SchemaFS)
	return nil
}
