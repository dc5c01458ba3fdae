// Package statusbar renders the one-line status bar of the workspace.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/macropower/vscroll/pkg/ui/styles"
	"github.com/macropower/vscroll/pkg/version"
)

const (
	helpText  = " ? Help "
	errorText = " ! Error "

	// minWidth is used when the terminal width is not known yet.
	minWidth = 30
)

type StatusBarStyle int

const (
	StyleNormal StatusBarStyle = iota
	StyleSuccess
	StyleError
)

var (
	messageFg = lipgloss.AdaptiveColor{Light: "#89F0CB", Dark: "#89F0CB"}
	messageBg = lipgloss.AdaptiveColor{Light: "#1C8760", Dark: "#1C8760"}

	noteStyle = lipgloss.NewStyle().
			Foreground(styles.StatusBarNote).
			Background(styles.StatusBarBg)

	windowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#949494", Dark: "#5A5A5A"}).
			Background(styles.StatusBarBg)

	helpStyle = lipgloss.NewStyle().
			Foreground(styles.StatusBarNote).
			Background(lipgloss.AdaptiveColor{Light: "#DCDCDC", Dark: "#323232"})

	messageStyle     = lipgloss.NewStyle().Foreground(messageFg).Background(messageBg)
	messageHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B6FFE4")).Background(styles.Green)

	errorStyle     = lipgloss.NewStyle().Foreground(styles.Gray).Background(styles.Red)
	errorHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB6B6")).Background(styles.Gray)
)

// StatusBarRenderer renders the status bar.
type StatusBarRenderer struct {
	message string
	width   int
	style   StatusBarStyle
}

type StatusBarOpt func(*StatusBarRenderer)

// NewStatusBarRenderer creates a [StatusBarRenderer] for the given width.
// Non-positive widths use a minimal width.
func NewStatusBarRenderer(width int, opts ...StatusBarOpt) *StatusBarRenderer {
	if width <= 0 {
		width = minWidth
	}

	sb := &StatusBarRenderer{width: width, style: StyleNormal}
	for _, opt := range opts {
		opt(sb)
	}

	return sb
}

// WithMessage replaces the note with a success message.
func WithMessage(message string) StatusBarOpt {
	return func(r *StatusBarRenderer) {
		if message == "" {
			return
		}

		r.style = StyleSuccess
		r.message = message
	}
}

// WithError replaces the note with an error message.
func WithError(message string) StatusBarOpt {
	return func(r *StatusBarRenderer) {
		if message == "" {
			return
		}

		r.style = StyleError
		r.message = message
	}
}

// Render renders the status bar with note on the left and the window
// summaries on the right. The note is truncated to fit; the logo, windows
// and help note are not.
func (r *StatusBarRenderer) Render(note string, windows ...string) string {
	logo := r.logoView()
	help := r.helpView()

	right := ""
	for _, w := range windows {
		right += r.style3(windowStyle, messageStyle, errorStyle).Render(" " + w + " ")
	}

	if r.message != "" {
		note = r.message
	}

	note = strings.TrimSpace(strings.ReplaceAll(note, "\n", " "))

	available := max(0, r.width-ansi.StringWidth(logo)-ansi.StringWidth(right)-ansi.StringWidth(help))
	note = styles.Fit(" "+note+" ", available)

	return logo + r.style3(noteStyle, messageStyle, errorStyle).Render(note) + right + help
}

func (r *StatusBarRenderer) helpView() string {
	switch r.style {
	case StyleError:
		return errorHelpStyle.Render(errorText)
	case StyleSuccess:
		return messageHelpStyle.Render(helpText)
	default:
		return helpStyle.Render(helpText)
	}
}

func (r *StatusBarRenderer) logoView() string {
	return styles.LogoStyle.Render(fmt.Sprintf(" vscroll %s ", version.GetVersion()))
}

func (r *StatusBarRenderer) style3(normal, success, failure lipgloss.Style) lipgloss.Style {
	switch r.style {
	case StyleError:
		return failure
	case StyleSuccess:
		return success
	default:
		return normal
	}
}
