package modules

import (
	"github.com/fonction-publique/sigrh/modules/audit"
	"github.com/fonction-publique/sigrh/modules/staffing"
	"github.com/fonction-publique/sigrh/pkg/application"
)

// BuiltInModules lists every module in registration order. Audit comes first
// so dependent modules can resolve its services.
var BuiltInModules = []application.Module{
	audit.NewModule(),
	staffing.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range append(BuiltInModules, externalModules...) {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
