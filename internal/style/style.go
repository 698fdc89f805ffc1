// SPDX-License-Identifier: MPL-2.0

// Package style holds the terminal styles shared by prun and pvenv.
package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette, tuned for dark terminal backgrounds.
const (
	// ColorPrimary is purple, for titles.
	ColorPrimary = lipgloss.Color("#7C3AED")
	// ColorMuted is gray, for section headers and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")
	// ColorSuccess is green.
	ColorSuccess = lipgloss.Color("#10B981")
	// ColorError is red.
	ColorError = lipgloss.Color("#EF4444")
	// ColorWarning is amber.
	ColorWarning = lipgloss.Color("#F59E0B")
	// ColorHighlight is blue, for command lines.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

// Styles renders text for one output stream. Colors are dropped when the
// stream is not a terminal.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Cmd      lipgloss.Style
}

// For returns the styles for w.
func For(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Subtitle: r.NewStyle().Foreground(ColorMuted),
		Success:  r.NewStyle().Foreground(ColorSuccess),
		Error:    r.NewStyle().Bold(true).Foreground(ColorError),
		Warning:  r.NewStyle().Foreground(ColorWarning),
		Cmd:      r.NewStyle().Foreground(ColorHighlight),
	}
}

// GlamourStyle returns the glamour style name for guides written to w.
func GlamourStyle(w io.Writer) string {
	r := lipgloss.NewRenderer(w)
	switch {
	case r.ColorProfile() == termenv.Ascii:
		return "notty"
	case r.HasDarkBackground():
		return "dark"
	default:
		return "light"
	}
}
