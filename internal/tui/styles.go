package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/tourney/internal/notify"
)

// Styles contains lipgloss styles for the TUI
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Info        lipgloss.Style
	Muted       lipgloss.Style
	Border      lipgloss.Style
	Highlighted lipgloss.Style
	Help        lipgloss.Style
	Toast       lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		Highlighted: lipgloss.NewStyle().
			Background(lipgloss.Color("63")).
			Foreground(lipgloss.Color("230")).
			Bold(true).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Toast: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			PaddingLeft(1),
	}
}

// PlainStyles drops colour and borders for dumb terminals
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{
		Title: s, Subtitle: s, Status: s, Error: s, Success: s, Info: s,
		Muted: s, Border: s, Highlighted: s.Reverse(true), Help: s, Toast: s,
	}
}

func (s Styles) toast(k notify.Kind) lipgloss.Style {
	switch k {
	case notify.KindSuccess:
		return s.Toast.Inherit(s.Success).BorderForeground(lipgloss.Color("46"))
	case notify.KindError:
		return s.Toast.Inherit(s.Error).BorderForeground(lipgloss.Color("196"))
	default:
		return s.Toast.Inherit(s.Info).BorderForeground(lipgloss.Color("39"))
	}
}
