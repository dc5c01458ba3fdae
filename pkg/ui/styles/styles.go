// Package styles contains the colors and styles of the interactive
// workspace.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	Ellipsis = "…"
	// Missing marks a visible cell that was not rendered.
	Missing = "!"
)

// Colors.
var (
	NormalDim     = lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"}
	Gray          = lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}
	MidGray       = lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"}
	DarkGray      = lipgloss.AdaptiveColor{Light: "#DDDADA", Dark: "#3C3C3C"}
	Cream         = lipgloss.AdaptiveColor{Light: "#FFFDF5", Dark: "#FFFDF5"}
	Fuchsia       = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	DimFuchsia    = lipgloss.AdaptiveColor{Light: "#F1A8FF", Dark: "#99519E"}
	Green         = lipgloss.Color("#04B575")
	DimGreen      = lipgloss.AdaptiveColor{Light: "#72D2B0", Dark: "#0B5137"}
	Red           = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	StatusBarBg   = lipgloss.AdaptiveColor{Light: "#E6E6E6", Dark: "#242424"}
	StatusBarNote = lipgloss.AdaptiveColor{Light: "#656565", Dark: "#7D7D7D"}
)

// Group backgrounds, cycled by group index.
var GroupColors = []lipgloss.TerminalColor{
	lipgloss.AdaptiveColor{Light: "#F3E8F6", Dark: "#2A2230"},
	lipgloss.AdaptiveColor{Light: "#E6F4EE", Dark: "#1E2B26"},
	lipgloss.AdaptiveColor{Light: "#E8EEF8", Dark: "#1F2430"},
}

// Styles.
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ECFD65")).
			Background(Fuchsia).
			Bold(true)

	HeaderStyle   = lipgloss.NewStyle().Foreground(Fuchsia).Bold(true)
	RowLabelStyle = lipgloss.NewStyle().Foreground(Gray)
	AllDayStyle   = lipgloss.NewStyle().Foreground(DimFuchsia).Italic(true)
	CellStyle     = lipgloss.NewStyle().Foreground(NormalDim)
	MissingStyle  = lipgloss.NewStyle().Foreground(Cream).Background(Red).Bold(true)
	SubtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"})
	ErrorStyle    = lipgloss.NewStyle().Foreground(Cream).Background(Red).Padding(0, 1)
)

// GroupStyle returns the cell style of group g.
func GroupStyle(g int) lipgloss.Style {
	return CellStyle.Background(GroupColors[g%len(GroupColors)])
}

// Truncate cuts s to width cells, ending with [Ellipsis] when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	return ansi.Truncate(s, width, Ellipsis)
}

// Fit truncates or right-pads s to exactly width cells.
func Fit(s string, width int) string {
	s = Truncate(s, width)

	pad := width - ansi.StringWidth(s)
	if pad <= 0 {
		return s
	}

	return s + strings.Repeat(" ", pad)
}
