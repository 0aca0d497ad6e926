package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/tourney/internal/router"
)

type loginForm struct {
	email      textinput.Model
	password   textinput.Model
	focused    int
	submitting bool
	err        string
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Prompt = "Email:    "
	email.Placeholder = "you@example.com"
	email.CharLimit = 254

	password := textinput.New()
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginForm{email: email, password: password}
}

func (f *loginForm) focus() tea.Cmd {
	if f.focused == 0 {
		f.password.Blur()
		return f.email.Focus()
	}
	f.email.Blur()
	return f.password.Focus()
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.submitting {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		return m.back()
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.login.focused = 1 - m.login.focused
		cmd := m.login.focus()
		return m, cmd
	case tea.KeyEnter:
		if m.login.focused == 0 {
			m.login.focused = 1
			cmd := m.login.focus()
			return m, cmd
		}
		return m.submitLogin()
	}

	var cmd tea.Cmd
	if m.login.focused == 0 {
		m.login.email, cmd = m.login.email.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m Model) submitLogin() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.login.email.Value())
	password := m.login.password.Value()
	if email == "" || password == "" {
		m.login.err = "Email and password are required"
		return m, nil
	}
	m.login.err = ""
	m.login.submitting = true

	store, timeout := m.deps.Session, m.deps.Timeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := store.Login(ctx, email, password)
		return loginDoneMsg{err: err}
	}
}

// loginDone continues to the redirect target, or the role's dashboard
func (m Model) loginDone(msg loginDoneMsg) (Model, tea.Cmd) {
	m.login.submitting = false
	snap := m.deps.Session.Snapshot()
	if msg.err != nil {
		m.login.err = snap.LastError
		m.login.password.SetValue("")
		m.deps.Notices.Error(snap.LastError, 0)
		return m, nil
	}

	m.deps.Notices.Success("Welcome back, "+snap.Identity.DisplayName(), 0)
	target := m.loc.Query.Get(router.RedirectQueryKey)
	if target == "" {
		href, err := m.deps.Navigator.Table().Href(router.DashboardFor(snap.Role()), nil, nil)
		if err != nil {
			href = "/dashboard"
		}
		target = href
	}
	return m.navigate(target, false)
}
