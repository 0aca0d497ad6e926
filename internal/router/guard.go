package router

import (
	"net/url"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

// SessionView is what the guard reads from the session.
// session.Snapshot and *session.Store satisfy it. State returns both
// values from one consistent read; role is "" when no identity is present.
type SessionView interface {
	State() (authenticated bool, role domain.Role)
}

// Action is the outcome of a guard decision
type Action int

// Guard actions
const (
	Allow Action = iota
	Redirect
)

// Reason explains a redirect
type Reason string

// Redirect reasons
const (
	ReasonNone                 Reason = ""
	ReasonAuthRequired         Reason = "auth_required"
	ReasonAlreadyAuthenticated Reason = "already_authenticated"
	ReasonRoleForbidden        Reason = "role_forbidden"
)

// Target is a named redirect destination
type Target struct {
	Name  string
	Query url.Values
}

// Decision is the guard's verdict for one navigation
type Decision struct {
	Action Action
	Target Target
	Reason Reason
}

// Allowed reports whether the navigation may proceed unchanged
func (d Decision) Allowed() bool {
	return d.Action == Allow
}

// Guard decides whether the session may open to. Rules are evaluated in
// order and the first that applies wins:
//
//  1. route requires auth, session anonymous: login, with the requested
//     path in the redirect query
//  2. route redirects authenticated users, session authenticated: the
//     role's dashboard
//  3. route requires a role the session lacks: the generic dashboard
//  4. otherwise allow
//
// Guard reads s once.
func Guard(to Location, s SessionView) Decision {
	authenticated, role := s.State()

	if to.Meta.RequiresAuth && !authenticated {
		return Decision{
			Action: Redirect,
			Target: Target{Name: NameLogin, Query: url.Values{RedirectQueryKey: {to.FullPath}}},
			Reason: ReasonAuthRequired,
		}
	}

	if to.Meta.RedirectIfAuthenticated && authenticated {
		return Decision{
			Action: Redirect,
			Target: Target{Name: DashboardFor(role)},
			Reason: ReasonAlreadyAuthenticated,
		}
	}

	if len(to.Meta.RequiresRole) > 0 && !to.Meta.Allows(role) {
		return Decision{
			Action: Redirect,
			Target: Target{Name: NameDashboard},
			Reason: ReasonRoleForbidden,
		}
	}

	return Decision{Action: Allow}
}

// DashboardFor returns the default screen of a role
func DashboardFor(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return NameAdminDashboard
	case domain.RoleOrganizer:
		return NameOrganizerDashboard
	case domain.RoleCoach:
		return NameCoachDashboard
	case domain.RolePlayer:
		return NamePlayerDashboard
	default:
		return NameDashboard
	}
}
