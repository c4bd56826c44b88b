package authz

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

const testPolicy = `p, USER, staffing.postes, list
p, ADMIN, staffing.affectations, create
p, SUPER_ADMIN, *, *
g, ADMIN, USER
g, SUPER_ADMIN, ADMIN
`

func newTestService(t *testing.T, mode Mode) *Service {
	t.Helper()
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.conf")
	policyPath := filepath.Join(dir, "policy.csv")
	require.NoError(t, os.WriteFile(modelPath, []byte(testModel), 0o644))
	require.NoError(t, os.WriteFile(policyPath, []byte(testPolicy), 0o644))

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc, err := NewService(modelPath, policyPath, mode, logger)
	require.NoError(t, err)
	return svc
}

func TestAuthorize_EnforceDeniesUnknownSubject(t *testing.T) {
	svc := newTestService(t, ModeEnforce)

	err := svc.Authorize(context.Background(), NewRequest("USER", "staffing.affectations", "create"))
	require.Error(t, err)

	err = svc.Authorize(context.Background(), NewRequest("ADMIN", "staffing.affectations", "create"))
	require.NoError(t, err)
}

func TestAuthorize_RoleInheritance(t *testing.T) {
	svc := newTestService(t, ModeEnforce)

	// ADMIN inherits USER read permissions.
	require.NoError(t, svc.Authorize(context.Background(), NewRequest("ADMIN", "staffing.postes", "list")))
	// SUPER_ADMIN wildcard covers everything.
	require.NoError(t, svc.Authorize(context.Background(), NewRequest("SUPER_ADMIN", "audit.entries", "list")))
}

func TestAuthorize_ShadowNeverBlocks(t *testing.T) {
	svc := newTestService(t, ModeShadow)

	err := svc.Authorize(context.Background(), NewRequest("USER", "staffing.affectations", "create"))
	require.NoError(t, err)
}

func TestNormalizeAction(t *testing.T) {
	require.Equal(t, "create", NormalizeAction(" Create "))
	require.Equal(t, "list", NewRequest("USER", "staffing.postes", "LIST").Action)
}
