// Package router declares the client's screens and decides, for every
// navigation, whether the current session may open the target screen.
package router

import (
	"net/url"
	"slices"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

// Flag is a tri-state meta field. Unset fields inherit from the parent
// route.
type Flag uint8

// Flag values
const (
	Unset Flag = iota
	On
	Off
)

// Meta is the authorization metadata declared on a route
type Meta struct {
	RequiresAuth            Flag
	RequiresRole            []domain.Role
	RedirectIfAuthenticated Flag
}

// Route is one entry of a route table declaration. Child paths are
// relative to the parent path; an empty child path names the parent
// location itself.
type Route struct {
	Path     string
	Name     string
	Meta     Meta
	Children []Route
}

// Descriptor is the effective authorization descriptor of a route, after
// merging the meta of its ancestors.
type Descriptor struct {
	RequiresAuth            bool          `json:"requires_auth" yaml:"requires_auth"`
	RequiresRole            []domain.Role `json:"requires_role,omitempty" yaml:"requires_role,omitempty"`
	RedirectIfAuthenticated bool          `json:"redirect_if_authenticated,omitempty" yaml:"redirect_if_authenticated,omitempty"`
}

// Allows reports whether role satisfies the role requirement. A descriptor
// without a role requirement allows every role.
func (d Descriptor) Allows(role domain.Role) bool {
	if len(d.RequiresRole) == 0 {
		return true
	}
	return role != "" && slices.Contains(d.RequiresRole, role)
}

// merge applies child meta on top of d. Set fields of the child win.
func (d Descriptor) merge(m Meta) Descriptor {
	out := Descriptor{
		RequiresAuth:            d.RequiresAuth,
		RequiresRole:            slices.Clone(d.RequiresRole),
		RedirectIfAuthenticated: d.RedirectIfAuthenticated,
	}
	switch m.RequiresAuth {
	case On:
		out.RequiresAuth = true
	case Off:
		out.RequiresAuth = false
	}
	switch m.RedirectIfAuthenticated {
	case On:
		out.RedirectIfAuthenticated = true
	case Off:
		out.RedirectIfAuthenticated = false
	}
	if m.RequiresRole != nil {
		out.RequiresRole = slices.Clone(m.RequiresRole)
	}
	return out
}

// Location is a resolved navigation target
type Location struct {
	Name     string
	Path     string
	FullPath string
	Params   map[string]string
	Query    url.Values
	Meta     Descriptor
}

// Param returns a path parameter
func (l Location) Param(name string) string {
	return l.Params[name]
}

// Roles is shorthand for a role requirement list
func Roles(roles ...domain.Role) []domain.Role {
	return roles
}
