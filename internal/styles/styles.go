// Package styles provides the styling for lbrk's diagnostic output.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette colors, taken from the noir theme.
var (
	Primary   = lipgloss.Color("#B8860B")
	TextMuted = lipgloss.Color("#A0A0A0")
	Warning   = lipgloss.Color("#DAA520")
	Error     = lipgloss.Color("#8B0000")
)

// Styles contains the reusable styles for one output stream.
type Styles struct {
	Title   lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Trace   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// New creates styles whose color profile is detected from w, so output to
// pipes and buffers stays plain.
func New(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)

	return Styles{
		Title: r.NewStyle().
			Foreground(Primary).
			Bold(true),

		Key: r.NewStyle().
			Foreground(Primary),

		Value: r.NewStyle(),

		Trace: r.NewStyle().
			Foreground(TextMuted),

		Warning: r.NewStyle().
			Foreground(Warning).
			Bold(true),

		Error: r.NewStyle().
			Foreground(Error).
			Bold(true),
	}
}
