package router

import (
	"fmt"
	"strings"

	terrors "github.com/felixgeelhaar/tourney/internal/errors"
	"github.com/felixgeelhaar/tourney/internal/log"
)

// DefaultMaxHops bounds how many redirects one navigation may follow
const DefaultMaxHops = 5

// Step is one guarded hop of a navigation
type Step struct {
	To       Location
	Decision Decision
}

// Result is the outcome of a navigation
type Result struct {
	// Location is where the navigation ended
	Location Location
	Steps    []Step
}

// Requested returns the location the navigation started from
func (r Result) Requested() Location {
	if len(r.Steps) == 0 {
		return r.Location
	}
	return r.Steps[0].To
}

// Redirected reports whether the guard moved the navigation elsewhere
func (r Result) Redirected() bool {
	return len(r.Steps) > 1
}

// Reason returns why the first redirect happened
func (r Result) Reason() Reason {
	if len(r.Steps) == 0 {
		return ReasonNone
	}
	return r.Steps[0].Decision.Reason
}

// Navigator resolves paths and runs every hop through the guard
type Navigator struct {
	table   *Table
	session SessionView
	maxHops int
	logger  *log.Logger
}

// NavigatorOption configures a Navigator
type NavigatorOption func(*Navigator)

// WithMaxHops sets the redirect limit
func WithMaxHops(n int) NavigatorOption {
	return func(nv *Navigator) {
		if n > 0 {
			nv.maxHops = n
		}
	}
}

// WithNavigatorLogger sets the navigation logger
func WithNavigatorLogger(l *log.Logger) NavigatorOption {
	return func(nv *Navigator) {
		if l != nil {
			nv.logger = l
		}
	}
}

// NewNavigator creates a navigator over table that reads session state
// from s on every hop.
func NewNavigator(table *Table, s SessionView, opts ...NavigatorOption) *Navigator {
	nv := &Navigator{
		table:   table,
		session: s,
		maxHops: DefaultMaxHops,
		logger:  log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(nv)
	}
	return nv
}

// Table returns the route table
func (nv *Navigator) Table() *Table {
	return nv.table
}

// Navigate resolves path and follows guard redirects until a location is
// allowed. Every redirect target is guarded again.
func (nv *Navigator) Navigate(path string) (Result, error) {
	to, err := nv.table.Resolve(path)
	if err != nil {
		return Result{}, err
	}
	return nv.follow(to)
}

// NavigateTo navigates to a named route
func (nv *Navigator) NavigateTo(name string, params map[string]string) (Result, error) {
	href, err := nv.table.Href(name, params, nil)
	if err != nil {
		return Result{}, err
	}
	return nv.Navigate(href)
}

func (nv *Navigator) follow(to Location) (Result, error) {
	var res Result
	for hop := 0; ; hop++ {
		d := Guard(to, nv.session)
		res.Steps = append(res.Steps, Step{To: to, Decision: d})
		if d.Allowed() {
			res.Location = to
			return res, nil
		}
		if hop >= nv.maxHops {
			return res, terrors.New(terrors.ErrCodeRedirectLoop,
				fmt.Sprintf("navigation exceeded %d redirects: %s", nv.maxHops, chain(res.Steps))).
				WithSuggestion("Check the route table for routes that redirect to each other")
		}

		href, err := nv.table.Href(d.Target.Name, nil, d.Target.Query)
		if err != nil {
			return res, err
		}
		nv.logger.Debug("navigation redirected", "from", to.FullPath, "to", href, "reason", string(d.Reason))

		next, err := nv.table.Resolve(href)
		if err != nil {
			return res, err
		}
		to = next
	}
}

func chain(steps []Step) string {
	names := make([]string, 0, len(steps))
	for _, s := range steps {
		names = append(names, s.To.Name)
	}
	return strings.Join(names, " -> ")
}
