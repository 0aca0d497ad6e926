package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tourney/internal/domain"
	terrors "github.com/felixgeelhaar/tourney/internal/errors"
	"github.com/felixgeelhaar/tourney/internal/log"
)

func newTestNavigator(s SessionView, opts ...NavigatorOption) *Navigator {
	opts = append([]NavigatorOption{WithNavigatorLogger(log.New(log.Discard()))}, opts...)
	return NewNavigator(Default(), s, opts...)
}

func TestNavigate_Allowed(t *testing.T) {
	res, err := newTestNavigator(signedIn(domain.RoleAdmin)).Navigate("/admin/users")
	require.NoError(t, err)
	assert.Equal(t, "admin-users", res.Location.Name)
	assert.False(t, res.Redirected())
	assert.Equal(t, ReasonNone, res.Reason())
}

func TestNavigate_AnonymousEndsOnLoginWithRedirect(t *testing.T) {
	res, err := newTestNavigator(anonymous()).Navigate("/organizer/teams?sport=3")
	require.NoError(t, err)

	assert.Equal(t, NameLogin, res.Location.Name)
	assert.Equal(t, "/organizer/teams?sport=3", res.Location.Query.Get(RedirectQueryKey))
	assert.True(t, res.Redirected())
	assert.Equal(t, ReasonAuthRequired, res.Reason())
	assert.Equal(t, "organizer-teams", res.Requested().Name)
}

func TestNavigate_ForbiddenEndsOnDashboard(t *testing.T) {
	res, err := newTestNavigator(signedIn(domain.RolePlayer)).Navigate("/admin")
	require.NoError(t, err)
	assert.Equal(t, NameDashboard, res.Location.Name)
	assert.Equal(t, ReasonRoleForbidden, res.Reason())
}

func TestNavigate_LoginWhileAuthenticated(t *testing.T) {
	res, err := newTestNavigator(signedIn(domain.RoleCoach)).Navigate("/login")
	require.NoError(t, err)
	assert.Equal(t, NameCoachDashboard, res.Location.Name)
	require.Len(t, res.Steps, 2)
	assert.Equal(t, NameLogin, res.Steps[0].To.Name)
}

func TestNavigateTo(t *testing.T) {
	res, err := newTestNavigator(anonymous()).NavigateTo("match-detail", map[string]string{"id": "5"})
	require.NoError(t, err)
	assert.Equal(t, "match-detail", res.Location.Name)
	assert.Equal(t, "5", res.Location.Param("id"))
}

func TestNavigate_UnknownPath(t *testing.T) {
	_, err := newTestNavigator(anonymous()).Navigate("/nope")
	assert.True(t, terrors.HasCode(err, terrors.ErrCodeRouteNotFound))
}

func TestNavigate_RedirectLoop(t *testing.T) {
	// login requires auth in this table, so anonymous users bounce forever
	table := MustNewTable([]Route{
		{Path: "/login", Name: NameLogin, Meta: Meta{RequiresAuth: On}},
		{Path: "/dashboard", Name: NameDashboard, Meta: Meta{RequiresAuth: On}},
	})
	nv := NewNavigator(table, anonymous(), WithMaxHops(3), WithNavigatorLogger(log.New(log.Discard())))

	res, err := nv.Navigate("/dashboard")
	require.Error(t, err)
	assert.True(t, terrors.HasCode(err, terrors.ErrCodeRedirectLoop))
	assert.Len(t, res.Steps, 4)
}

func TestNavigate_GuardDoesNotMutateSession(t *testing.T) {
	s := signedIn(domain.RoleOrganizer)
	_, err := newTestNavigator(s).Navigate("/player")
	require.NoError(t, err)
	assert.True(t, s.authenticated)
	assert.Equal(t, domain.RoleOrganizer, s.role)
	assert.Positive(t, s.reads)
}

func TestNavigate_OneSessionReadPerHop(t *testing.T) {
	s := anonymous()
	res, err := newTestNavigator(s).Navigate("/admin/users")
	require.NoError(t, err)
	require.Len(t, res.Steps, 2)
	assert.Equal(t, len(res.Steps), s.reads)
}
