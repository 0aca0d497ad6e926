package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/felixgeelhaar/tourney/internal/domain"
	terrors "github.com/felixgeelhaar/tourney/internal/errors"
)

// Route names the guard redirects to
const (
	NameHome      = "home"
	NameLogin     = "login"
	NameDashboard = "dashboard"

	NameAdminDashboard     = "admin-dashboard"
	NameOrganizerDashboard = "organizer-dashboard"
	NameCoachDashboard     = "coach-dashboard"
	NamePlayerDashboard    = "player-dashboard"
)

// RedirectQueryKey carries the originally requested path to the login
// screen.
const RedirectQueryKey = "redirect"

// Entry is a navigable route of a table with its effective descriptor
type Entry struct {
	Name    string     `json:"name" yaml:"name"`
	Pattern string     `json:"path" yaml:"path"`
	Meta    Descriptor `json:"meta" yaml:"meta"`

	segments []string
}

// Table is a validated, immutable route table
type Table struct {
	entries []Entry
	byName  map[string]int
}

// NewTable validates routes and flattens them into a table. Route names
// must be unique and every leaf route must be named.
func NewTable(routes []Route) (*Table, error) {
	t := &Table{byName: make(map[string]int)}
	for i, r := range routes {
		if !strings.HasPrefix(r.Path, "/") {
			return nil, tableError("top-level route %d (%q) must have an absolute path", i, r.Path)
		}
		if err := t.add(r, "", Descriptor{}); err != nil {
			return nil, err
		}
	}
	if len(t.entries) == 0 {
		return nil, tableError("route table declares no named routes")
	}
	return t, nil
}

// MustNewTable is NewTable for static declarations
func MustNewTable(routes []Route) *Table {
	t, err := NewTable(routes)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) add(r Route, parent string, inherited Descriptor) error {
	if parent != "" && strings.HasPrefix(r.Path, "/") {
		return tableError("child route %q of %s must have a relative path", r.Path, parent)
	}
	pattern := joinPath(parent, r.Path)
	meta := inherited.merge(r.Meta)

	for _, role := range meta.RequiresRole {
		if err := role.Validate(); err != nil {
			return tableError("route %s: %v", pattern, err)
		}
	}

	if len(r.Children) == 0 && r.Name == "" {
		return tableError("route %s has no name", pattern)
	}
	if r.Name != "" {
		if _, dup := t.byName[r.Name]; dup {
			return tableError("duplicate route name %q", r.Name)
		}
		t.byName[r.Name] = len(t.entries)
		t.entries = append(t.entries, Entry{
			Name:     r.Name,
			Pattern:  pattern,
			Meta:     meta,
			segments: splitPath(pattern),
		})
	}

	for _, child := range r.Children {
		if err := t.add(child, pattern, meta); err != nil {
			return err
		}
	}
	return nil
}

// Entries returns the table's named routes in declaration order
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Entry returns the named route
func (t *Table) Entry(name string) (Entry, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Resolve matches a path with an optional query string against the table.
// The first declared route that matches wins.
func (t *Table) Resolve(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, terrors.Wrap(terrors.ErrCodeRouteNotFound, fmt.Sprintf("invalid path %q", raw), err)
	}
	path := normalizePath(u.Path)
	segs := splitPath(path)

	for _, e := range t.entries {
		params, ok := match(e.segments, segs)
		if !ok {
			continue
		}
		query := u.Query()
		full := path
		if enc := query.Encode(); enc != "" {
			full += "?" + enc
		}
		return Location{
			Name:     e.Name,
			Path:     path,
			FullPath: full,
			Params:   params,
			Query:    query,
			Meta:     e.Meta,
		}, nil
	}
	return Location{}, terrors.NewRouteNotFoundError(path)
}

// Href builds the path of a named route. Every :param of the route must
// be supplied.
func (t *Table) Href(name string, params map[string]string, query url.Values) (string, error) {
	e, ok := t.Entry(name)
	if !ok {
		return "", terrors.New(terrors.ErrCodeRouteNotFound, fmt.Sprintf("no route named %q", name)).
			WithSuggestion("Run 'tourney route list' to see the declared routes")
	}

	parts := make([]string, 0, len(e.segments))
	for _, seg := range e.segments {
		if key, isParam := strings.CutPrefix(seg, ":"); isParam {
			v, ok := params[key]
			if !ok || v == "" {
				return "", terrors.New(terrors.ErrCodeRouteNotFound, fmt.Sprintf("route %q needs parameter %q", name, key))
			}
			parts = append(parts, url.PathEscape(v))
			continue
		}
		parts = append(parts, seg)
	}

	path := "/" + strings.Join(parts, "/")
	if enc := query.Encode(); enc != "" {
		path += "?" + enc
	}
	return path, nil
}

func match(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range pattern {
		if key, isParam := strings.CutPrefix(p, ":"); isParam {
			v, err := url.PathUnescape(segs[i])
			if err != nil || v == "" {
				return nil, false
			}
			params[key] = v
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

func joinPath(parent, child string) string {
	switch {
	case parent == "":
		return normalizePath(child)
	case child == "":
		return parent
	default:
		return normalizePath(strings.TrimSuffix(parent, "/") + "/" + child)
	}
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func tableError(format string, args ...any) error {
	return terrors.New(terrors.ErrCodeRouteTableInvalid, fmt.Sprintf(format, args...))
}

// DefaultRoutes is the application's route table declaration
func DefaultRoutes() []Route {
	public := Meta{RequiresAuth: Off}
	return []Route{
		{Path: "/", Name: NameHome, Meta: public},
		{Path: "/login", Name: NameLogin, Meta: Meta{RequiresAuth: Off, RedirectIfAuthenticated: On}},
		{Path: "/dashboard", Name: NameDashboard, Meta: Meta{RequiresAuth: On}},
		{
			Path: "/admin",
			Meta: Meta{RequiresAuth: On, RequiresRole: Roles(domain.RoleAdmin)},
			Children: []Route{
				{Path: "", Name: NameAdminDashboard},
				{Path: "institutions", Name: "admin-institutions"},
				{Path: "tournaments", Name: "admin-tournaments"},
				{Path: "users", Name: "admin-users"},
			},
		},
		{
			Path: "/organizer",
			Meta: Meta{RequiresAuth: On, RequiresRole: Roles(domain.RoleAdmin, domain.RoleOrganizer)},
			Children: []Route{
				{Path: "", Name: NameOrganizerDashboard},
				{Path: "institution", Name: "organizer-institution"},
				{Path: "sports", Name: "organizer-sports"},
				{Path: "teams", Name: "organizer-teams"},
				{Path: "players", Name: "organizer-players"},
				{Path: "venues", Name: "organizer-venues"},
				{Path: "tournaments", Name: "organizer-tournaments"},
				{Path: "schedules", Name: "organizer-schedules"},
			},
		},
		{
			Path: "/coach",
			Meta: Meta{RequiresAuth: On, RequiresRole: Roles(domain.RoleAdmin, domain.RoleOrganizer, domain.RoleCoach)},
			Children: []Route{
				{Path: "", Name: NameCoachDashboard},
				{Path: "matches/:id/live-score", Name: "coach-live-score"},
				{Path: "teams", Name: "coach-teams"},
				{Path: "lineups", Name: "coach-lineups"},
			},
		},
		{
			Path: "/player",
			Meta: Meta{RequiresAuth: On, RequiresRole: Roles(domain.RolePlayer)},
			Children: []Route{
				{Path: "", Name: NamePlayerDashboard},
				{Path: "profile", Name: "player-profile"},
				{Path: "matches", Name: "player-matches"},
				{Path: "statistics", Name: "player-statistics"},
			},
		},
		{
			Path: "/viewer",
			Meta: public,
			Children: []Route{
				{Path: "", Name: "viewer-home"},
				{Path: "matches", Name: "viewer-matches"},
				{Path: "tournaments", Name: "viewer-tournaments"},
				{Path: "live-scores", Name: "viewer-live-scores"},
			},
		},
		{Path: "/matches/:id", Name: "match-detail", Meta: public},
	}
}

var defaultTable = MustNewTable(DefaultRoutes())

// Default returns the application's route table
func Default() *Table {
	return defaultTable
}
