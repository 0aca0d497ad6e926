package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

// fakeSession is a fabricated session view
type fakeSession struct {
	authenticated bool
	role          domain.Role
	reads         int
}

func (f *fakeSession) State() (bool, domain.Role) {
	f.reads++
	return f.authenticated, f.role
}

func anonymous() *fakeSession { return &fakeSession{} }

func signedIn(role domain.Role) *fakeSession {
	return &fakeSession{authenticated: true, role: role}
}

func mustResolve(t *testing.T, path string) Location {
	t.Helper()
	loc, err := Default().Resolve(path)
	require.NoError(t, err)
	return loc
}

func TestGuard_AnonymousToProtectedRedirectsToLogin(t *testing.T) {
	to := Location{Name: "secret", Path: "/secret", FullPath: "/secret?tab=2", Meta: Descriptor{RequiresAuth: true}}

	d := Guard(to, anonymous())

	assert.Equal(t, Redirect, d.Action)
	assert.Equal(t, NameLogin, d.Target.Name)
	assert.Equal(t, "/secret?tab=2", d.Target.Query.Get(RedirectQueryKey))
	assert.Equal(t, ReasonAuthRequired, d.Reason)
}

func TestGuard_AuthenticatedOnLoginGoesToRoleDashboard(t *testing.T) {
	to := mustResolve(t, "/login")

	d := Guard(to, signedIn(domain.RoleOrganizer))

	assert.Equal(t, Redirect, d.Action)
	assert.Equal(t, NameOrganizerDashboard, d.Target.Name)
	assert.Equal(t, ReasonAlreadyAuthenticated, d.Reason)
}

func TestGuard_WrongRoleFallsBackToDashboard(t *testing.T) {
	to := Location{Name: "x", Meta: Descriptor{RequiresRole: Roles(domain.RoleAdmin, domain.RoleOrganizer)}}

	d := Guard(to, signedIn(domain.RolePlayer))

	assert.Equal(t, Redirect, d.Action)
	assert.Equal(t, NameDashboard, d.Target.Name)
	assert.Empty(t, d.Target.Query)
	assert.Equal(t, ReasonRoleForbidden, d.Reason)
}

func TestGuard_DefaultTable(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		session *fakeSession
		want    string // "" means allow
	}{
		{"home is public", "/", anonymous(), ""},
		{"viewer is public", "/viewer/live-scores", anonymous(), ""},
		{"match detail is public", "/matches/12", anonymous(), ""},
		{"login for anonymous", "/login", anonymous(), ""},
		{"dashboard needs login", "/dashboard", anonymous(), NameLogin},
		{"dashboard for viewer", "/dashboard", signedIn(domain.RoleViewer), ""},
		{"admin child needs login", "/admin/users", anonymous(), NameLogin},
		{"admin for admin", "/admin/users", signedIn(domain.RoleAdmin), ""},
		{"admin for organizer", "/admin", signedIn(domain.RoleOrganizer), NameDashboard},
		{"organizer for admin", "/organizer/teams", signedIn(domain.RoleAdmin), ""},
		{"organizer for coach", "/organizer/teams", signedIn(domain.RoleCoach), NameDashboard},
		{"coach for organizer", "/coach/matches/3/live-score", signedIn(domain.RoleOrganizer), ""},
		{"coach for player", "/coach", signedIn(domain.RolePlayer), NameDashboard},
		{"player for player", "/player/statistics", signedIn(domain.RolePlayer), ""},
		{"player for admin", "/player", signedIn(domain.RoleAdmin), NameDashboard},
		{"login for admin", "/login", signedIn(domain.RoleAdmin), NameAdminDashboard},
		{"login for coach", "/login", signedIn(domain.RoleCoach), NameCoachDashboard},
		{"login for player", "/login", signedIn(domain.RolePlayer), NamePlayerDashboard},
		{"login for viewer", "/login", signedIn(domain.RoleViewer), NameDashboard},
		{"role rule with missing role", "/admin", &fakeSession{authenticated: true}, NameDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Guard(mustResolve(t, tt.path), tt.session)
			if tt.want == "" {
				assert.True(t, d.Allowed(), "expected allow, got redirect to %s", d.Target.Name)
				return
			}
			assert.Equal(t, Redirect, d.Action)
			assert.Equal(t, tt.want, d.Target.Name)
		})
	}
}

func TestGuard_AuthRuleWinsOverRoleRule(t *testing.T) {
	// anonymous on a role-restricted route goes to login, not dashboard
	d := Guard(mustResolve(t, "/organizer/sports?tab=active"), anonymous())
	assert.Equal(t, NameLogin, d.Target.Name)
	assert.Equal(t, "/organizer/sports?tab=active", d.Target.Query.Get(RedirectQueryKey))
}

func TestDashboardFor(t *testing.T) {
	assert.Equal(t, NameAdminDashboard, DashboardFor(domain.RoleAdmin))
	assert.Equal(t, NameOrganizerDashboard, DashboardFor(domain.RoleOrganizer))
	assert.Equal(t, NameCoachDashboard, DashboardFor(domain.RoleCoach))
	assert.Equal(t, NamePlayerDashboard, DashboardFor(domain.RolePlayer))
	assert.Equal(t, NameDashboard, DashboardFor(domain.RoleViewer))
	assert.Equal(t, NameDashboard, DashboardFor(""))
}

func TestGuard_ReadsSessionOnce(t *testing.T) {
	s := signedIn(domain.RoleViewer)
	d := Guard(mustResolve(t, "/admin/users"), s)
	assert.Equal(t, ReasonRoleForbidden, d.Reason)
	assert.Equal(t, 1, s.reads, "status and role come from a single read")
}
