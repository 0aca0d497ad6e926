// Package tui is the interactive terminal client. Every screen change goes
// through the navigator, so the route guard decides what the user sees.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/tourney/internal/log"
	"github.com/felixgeelhaar/tourney/internal/notify"
	"github.com/felixgeelhaar/tourney/internal/platform"
	"github.com/felixgeelhaar/tourney/internal/router"
	"github.com/felixgeelhaar/tourney/internal/session"
	"github.com/felixgeelhaar/tourney/internal/ux"
)

// DefaultTimeout bounds each backend request started from the UI
const DefaultTimeout = 15 * time.Second

// Deps are the collaborators the UI drives
type Deps struct {
	Session   *session.Store
	Client    *platform.Client
	Navigator *router.Navigator
	Notices   *notify.Center
	Logger    *log.Logger
	Plain     bool
	Timeout   time.Duration
}

type mode int

const (
	modeBrowse mode = iota
	modeLogin
	modeGoTo
)

type menuItem struct {
	Name string
	Path string
}

// Model is the Bubble Tea model of the client
type Model struct {
	deps   Deps
	start  string
	keys   keyMap
	help   help.Model
	spin   spinner.Model
	styles Styles

	loc     router.Location
	history []string
	menu    []menuItem
	cursor  int

	mode  mode
	login loginForm
	goTo  textinput.Model

	loading bool
	seq     int
	body    string
	err     string

	width    int
	height   int
	quitting bool
}

type (
	navigateMsg struct {
		path string
		push bool
	}
	loadedMsg struct {
		seq     int
		content any
		err     error
	}
	loginDoneMsg struct{ err error }
	verifiedMsg  struct{ err error }
	sessionMsg   struct{}
	noticesMsg   []notify.Notification
)

// New creates the model. start is the first path to open.
func New(deps Deps, start string) Model {
	if deps.Timeout <= 0 {
		deps.Timeout = DefaultTimeout
	}
	if deps.Logger == nil {
		deps.Logger = log.DefaultLogger()
	}
	if start == "" {
		start = "/"
	}
	styles := DefaultStyles()
	if deps.Plain {
		styles = PlainStyles()
	}

	goTo := textinput.New()
	goTo.Prompt = "go to: "
	goTo.Placeholder = "/viewer/matches"

	return Model{
		deps:   deps,
		start:  start,
		keys:   defaultKeyMap(),
		help:   help.New(),
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles: styles,
		goTo:   goTo,
		login:  newLoginForm(),
	}
}

// Run starts the program and blocks until the user quits
func Run(ctx context.Context, deps Deps, start string) error {
	p := tea.NewProgram(New(deps, start), tea.WithAltScreen(), tea.WithContext(ctx))
	for _, cancel := range subscribe(deps, func(msg tea.Msg) { go p.Send(msg) }) {
		defer cancel()
	}
	_, err := p.Run()
	return err
}

// subscribe forwards session and notification changes to send. Changes
// are also made from inside Update, so send must not block the caller.
func subscribe(deps Deps, send func(tea.Msg)) []func() {
	return []func(){
		deps.Session.Subscribe(func(session.Snapshot) { send(sessionMsg{}) }),
		deps.Notices.Subscribe(func(list []notify.Notification) { send(noticesMsg(list)) }),
	}
}

// Init verifies a restored session before opening the start path
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.verify())
}

func (m Model) verify() tea.Cmd {
	store, timeout := m.deps.Session, m.deps.Timeout
	if !store.Authenticated() {
		return func() tea.Msg { return verifiedMsg{} }
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := store.FetchCurrentUser(ctx)
		return verifiedMsg{err: err}
	}
}

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case noticesMsg:
		return m, nil

	case sessionMsg:
		// a session that ended elsewhere sends a protected screen back
		// through the guard
		if !m.deps.Session.Authenticated() && m.mode == modeBrowse && m.loc.Meta.RequiresAuth {
			return m.navigate(m.loc.FullPath, false)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case verifiedMsg:
		if msg.err != nil {
			m.deps.Notices.Error(m.deps.Session.Snapshot().LastError, 0)
		}
		return m.navigate(m.start, false)

	case navigateMsg:
		return m.navigate(msg.path, msg.push)

	case loadedMsg:
		return m.loaded(msg)

	case loginDoneMsg:
		return m.loginDone(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && (msg.String() == "ctrl+c" || m.mode == modeBrowse) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeLogin:
			return m.updateLogin(msg)
		case modeGoTo:
			return m.updateGoTo(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.menu)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(m.menu) {
			return m.navigate(m.menu[m.cursor].Path, true)
		}
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.Home):
		return m.navigate("/", true)
	case key.Matches(msg, m.keys.GoTo):
		m.mode = modeGoTo
		m.goTo.SetValue("")
		cmd := m.goTo.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Login):
		return m.navigate("/login", true)
	case key.Matches(msg, m.keys.Logout):
		return m.logout()
	case key.Matches(msg, m.keys.Refresh):
		return m.load()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateGoTo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.goTo.Blur()
		return m, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.goTo.Value())
		m.mode = modeBrowse
		m.goTo.Blur()
		if path == "" {
			return m, nil
		}
		return m.navigate(path, true)
	}
	var cmd tea.Cmd
	m.goTo, cmd = m.goTo.Update(msg)
	return m, cmd
}

func (m Model) back() (Model, tea.Cmd) {
	if len(m.history) == 0 {
		return m, nil
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.navigate(prev, false)
}

// navigate runs path through the navigator and opens wherever it lands
func (m Model) navigate(path string, push bool) (Model, tea.Cmd) {
	res, err := m.deps.Navigator.Navigate(path)
	if err != nil {
		m.deps.Notices.Error(err.Error(), 0)
		return m, nil
	}
	if push && m.loc.FullPath != "" && m.loc.FullPath != res.Location.FullPath {
		m.history = append(m.history, m.loc.FullPath)
	}
	if res.Redirected() {
		m.deps.Logger.Debug("navigation redirected",
			"requested", res.Requested().FullPath,
			"to", res.Location.FullPath,
			"reason", string(res.Reason()))
	}

	m.loc = res.Location
	m.menu = m.buildMenu()
	m.cursor = 0
	m.body, m.err = "", ""

	if m.loc.Name == router.NameLogin {
		m.mode = modeLogin
		m.login = newLoginForm()
		cmd := m.login.focus()
		return m, cmd
	}
	m.mode = modeBrowse
	return m.load()
}

// load fetches the current screen's data. Stale results are dropped by
// sequence number.
func (m Model) load() (Model, tea.Cmd) {
	fn, ok := screens[m.loc.Name]
	m.seq++
	if !ok {
		m.loading = false
		return m, nil
	}
	m.loading = true
	seq, loc, snap := m.seq, m.loc, m.deps.Session.Snapshot()
	client, timeout := m.deps.Client, m.deps.Timeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		content, err := fn(ctx, client, loc, snap)
		return loadedMsg{seq: seq, content: content, err: err}
	}
}

func (m Model) loaded(msg loadedMsg) (Model, tea.Cmd) {
	if msg.seq != m.seq {
		return m, nil
	}
	m.loading = false
	if msg.err == nil {
		m.body = render(msg.content, m.deps.Plain)
		return m, nil
	}

	// A rejected credential ends the session; navigating again sends the
	// user to login with this screen as the redirect.
	if platform.IsUnauthorized(msg.err) && m.deps.Session.Authenticated() {
		if err := m.deps.Session.Logout(); err != nil {
			m.deps.Logger.WithError(err).Warn("failed to clear session")
		}
		m.deps.Notices.Error("Your session has expired. Please sign in again.", 0)
		return m.navigate(m.loc.FullPath, false)
	}

	enhanced := ux.EnhanceError(msg.err, m.deps.Client.BaseURL())
	m.err = enhanced.Error()
	m.deps.Notices.Error(m.err, 0)
	return m, nil
}

func (m Model) logout() (Model, tea.Cmd) {
	if !m.deps.Session.Authenticated() {
		return m, nil
	}
	if err := m.deps.Session.Logout(); err != nil {
		m.deps.Notices.Error("Signed out, but the saved session could not be removed", 0)
	} else {
		m.deps.Notices.Info("Signed out", 0)
	}
	m.history = nil
	return m.navigate("/", false)
}

// buildMenu lists the routes the session may open from here. On home and
// dashboards that is every section; inside a section it is the section's
// screens.
func (m Model) buildMenu() []menuItem {
	table := m.deps.Navigator.Table()
	section := firstSegment(m.loc.Path)
	top := section == "" || m.loc.Name == router.NameDashboard

	var items []menuItem
	for _, e := range table.Entries() {
		if strings.Contains(e.Pattern, ":") || e.Name == m.loc.Name {
			continue
		}
		seg := firstSegment(e.Pattern)
		if top {
			if strings.Count(strings.Trim(e.Pattern, "/"), "/") > 0 || e.Pattern == "/" {
				continue
			}
		} else if seg != section {
			continue
		}
		loc, err := table.Resolve(e.Pattern)
		if err != nil {
			continue
		}
		if !router.Guard(loc, m.deps.Session).Allowed() {
			continue
		}
		items = append(items, menuItem{Name: e.Name, Path: e.Pattern})
	}
	return items
}

func firstSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}
