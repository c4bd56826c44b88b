package services

import (
	"context"

	"github.com/fonction-publique/sigrh/pkg/authz"
	"github.com/fonction-publique/sigrh/pkg/composables"
)

// authorizeStaffingFn checks the current actor against the access policy. It
// is a variable so tests can stub authorization out.
var authorizeStaffingFn = func(ctx context.Context, object, action string) error {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return err
	}
	return authz.Use().Authorize(ctx, authz.NewRequest(actor.Role, object, action))
}
