package guard_test

import (
	"testing"

	"github.com/eagl/console/pkg/guard"
	"github.com/eagl/console/pkg/session"
	"github.com/stretchr/testify/require"
)

func TestResolveConsoleRoutes(t *testing.T) {
	r := guard.NewConsoleRouter()

	tests := []struct {
		name     string
		snapshot session.Snapshot
		path     string
		want     string
		page     string
		from     string
	}{
		{"root alias anonymous", anonymous, "/", "/login", "Login", ""},
		{"root alias signed in", snapshotAs(session.RoleUser), "/", "/app/painel", "Painel", ""},
		{"painel alias", snapshotAs(session.RoleUser), "/painel", "/app/painel", "Painel", ""},
		{"app alias", snapshotAs(session.RoleUser), "/app/", "/app/painel", "Painel", ""},
		{"guarded anonymous", anonymous, "/app/clientes", "/login", "Login", "/app/clientes"},
		{"admin route anonymous", anonymous, "/app/usuarios", "/login", "Login", "/app/usuarios"},
		{"admin route as user", snapshotAs(session.RoleUser), "/app/usuarios", "/app/painel", "Painel", ""},
		{"admin route as admin", snapshotAs(session.RoleAdmin), "/app/perfis", "/app/perfis", "Perfis", ""},
		{"back-office as admin", snapshotAs(session.RoleAdmin), "/admin/tenants", "/app/painel", "Painel", ""},
		{"back-office alias", snapshotAs(session.RoleSuperAdmin), "/admin", "/admin/dashboard", "AdminDashboard", ""},
		{"tenant create", snapshotAs(session.RoleLegacyADM), "/admin/tenants/new", "/admin/tenants/new", "TenantCreate", ""},
		{"unknown anonymous", anonymous, "/nope", "/login", "Login", ""},
		{"unknown signed in", snapshotAs(session.RoleUser), "/nope", "/app/painel", "Painel", ""},
		{"login bounce", snapshotAs(session.RoleUser), "/login", "/app/painel", "Painel", ""},
		{"query ignored", snapshotAs(session.RoleUser), "/app/relatorios?mes=3", "/app/relatorios", "Relatorios", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(tt.snapshot, tt.path)
			require.NoError(t, err)
			require.Equal(t, tt.want, res.Path)
			require.Equal(t, tt.page, res.Route.Page)
			require.Equal(t, tt.from, res.From)
			require.Equal(t, tt.want, res.Hops[len(res.Hops)-1])
		})
	}
}

func TestResolveParams(t *testing.T) {
	r := guard.NewConsoleRouter()

	res, err := r.Resolve(snapshotAs(session.RoleSuperAdmin), "/admin/tenants/t-42")
	require.NoError(t, err)
	require.Equal(t, "TenantDetail", res.Route.Page)
	require.Equal(t, map[string]string{"id": "t-42"}, res.Params)
}

func TestLoginRoundTripPreservesDestination(t *testing.T) {
	r := guard.NewConsoleRouter()

	res, err := r.Resolve(anonymous, "/admin/tenants/t-42")
	require.NoError(t, err)
	require.Equal(t, guard.LoginPath, res.Path)
	require.Equal(t, "/admin/tenants/t-42", res.From)

	// After signing in, the login page forwards to the preserved destination
	res, err = r.ResolveFrom(snapshotAs(session.RoleSuperAdmin), guard.LoginPath, res.From)
	require.NoError(t, err)
	require.Equal(t, "/admin/tenants/t-42", res.Path)
	require.Equal(t, []string{"/login", "/admin/tenants/t-42"}, res.Hops)

	// A destination the new session may not see still downgrades silently
	res, err = r.ResolveFrom(snapshotAs(session.RoleUser), guard.LoginPath, "/admin/tenants/t-42")
	require.NoError(t, err)
	require.Equal(t, guard.LandingPath, res.Path)
}

func TestResolveDetectsLoops(t *testing.T) {
	r, err := guard.NewRouter([]guard.Route{
		{Pattern: "/a", Alias: "/b"},
		{Pattern: "/b", Alias: "/a"},
	})
	require.NoError(t, err)

	_, err = r.Resolve(anonymous, "/a")
	require.ErrorIs(t, err, guard.ErrRedirectLoop)
}

func TestNewRouterRejectsBadTables(t *testing.T) {
	_, err := guard.NewRouter([]guard.Route{{Pattern: "login"}})
	require.Error(t, err)

	_, err = guard.NewRouter([]guard.Route{{Pattern: "/x"}, {Pattern: "/x"}})
	require.Error(t, err)
}

func TestMatch(t *testing.T) {
	r := guard.NewConsoleRouter()

	rt, _, ok := r.Match("/app/usuarios/")
	require.True(t, ok)
	require.Equal(t, guard.Admin, rt.Kind)

	_, _, ok = r.Match("/app/unknown")
	require.False(t, ok)
}
