// Package styles provides the lipgloss styles used by the command loop.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette defines a minimal semantic theme palette (tokyo-night).
var (
	ColorPrimary = lipgloss.Color("#7aa2f7")
	ColorMuted   = lipgloss.Color("#565f89")
	ColorSuccess = lipgloss.Color("#9ece6a")
	ColorWarning = lipgloss.Color("#e0af68")
	ColorError   = lipgloss.Color("#f7768e")
)

// Styles holds the styles for one output writer. The color profile is detected
// from the writer, so output to a non-terminal is plain text.
type Styles struct {
	Prompt  lipgloss.Style
	Done    lipgloss.Style
	Pending lipgloss.Style
	ID      lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// New returns styles bound to w. When color is false every style renders plain
// text regardless of the terminal.
func New(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Prompt:  r.NewStyle().Foreground(ColorPrimary).Bold(true),
		Done:    r.NewStyle().Foreground(ColorSuccess),
		Pending: r.NewStyle().Foreground(ColorMuted),
		ID:      r.NewStyle().Foreground(ColorPrimary),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Error:   r.NewStyle().Foreground(ColorError).Bold(true),
		Muted:   r.NewStyle().Foreground(ColorMuted),
	}
}
