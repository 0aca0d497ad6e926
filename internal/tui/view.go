package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.mode {
	case modeLogin:
		b.WriteString(m.renderLogin())
	default:
		b.WriteString(m.renderBody())
		if len(m.menu) > 0 {
			b.WriteString("\n\n")
			b.WriteString(m.renderMenu())
		}
	}

	if m.mode == modeGoTo {
		b.WriteString("\n\n")
		b.WriteString(m.goTo.View())
	}

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n\n")
		b.WriteString(toasts)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("Tourney")
	snap := m.deps.Session.Snapshot()
	status := m.styles.Muted.Render("not signed in")
	if snap.Authenticated() {
		status = m.styles.Status.Render(fmt.Sprintf("%s (%s)", snap.Identity.DisplayName(), snap.Role()))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", status)
	return header + "\n" + m.styles.Subtitle.Render(m.loc.FullPath)
}

func (m Model) renderBody() string {
	switch {
	case m.loading:
		return m.spin.View() + " Loading..."
	case m.err != "":
		return m.styles.Error.Render("Error: ") + m.err
	case m.body != "":
		return m.body
	case m.loc.Name != "":
		return m.styles.Muted.Render(screenTitle(m.loc.Name))
	}
	return ""
}

func (m Model) renderMenu() string {
	lines := make([]string, 0, len(m.menu))
	for i, item := range m.menu {
		label := fmt.Sprintf("%-24s %s", screenTitle(item.Name), item.Path)
		if i == m.cursor {
			lines = append(lines, m.styles.Highlighted.Render(label))
		} else {
			lines = append(lines, "  "+label)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("Sign in to continue"))
	b.WriteString("\n\n")
	b.WriteString(m.login.email.View())
	b.WriteString("\n")
	b.WriteString(m.login.password.View())
	b.WriteString("\n\n")
	switch {
	case m.login.submitting:
		b.WriteString(m.spin.View() + " Signing in...")
	case m.login.err != "":
		b.WriteString(m.styles.Error.Render(m.login.err))
	default:
		b.WriteString(m.styles.Muted.Render("enter to submit, tab to switch fields, esc to go back"))
	}
	return m.styles.Border.Render(b.String())
}

func (m Model) renderToasts() string {
	list := m.deps.Notices.List()
	if len(list) == 0 {
		return ""
	}
	lines := make([]string, 0, len(list))
	for _, n := range list {
		lines = append(lines, m.styles.toast(n.Kind).Render(n.Message))
	}
	return strings.Join(lines, "\n")
}

// screenTitle turns a route name into a heading: "admin-users" becomes
// "Admin users".
func screenTitle(name string) string {
	s := strings.ReplaceAll(name, "-", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
