package uitest

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// SetupColorProfile forces styled output, so that styles can be asserted
// on regardless of the test environment.
func SetupColorProfile() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

// Screen returns the plain text lines of a rendered view, with trailing
// spaces removed.
func Screen(view string) []string {
	lines := strings.Split(ansi.Strip(view), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}

	return lines
}

// Run is a span of text sharing one style.
type Run struct {
	Text       string
	Bold       bool
	Italic     bool
	Foreground bool
	Background bool
}

// Runs splits styled output into runs of equal style. Colors are only
// reported as set or unset.
func Runs(output string) []Run {
	var (
		runs    []Run
		current Run
		text    strings.Builder
		state   byte
	)

	p := ansi.GetParser()
	defer ansi.PutParser(p)

	flush := func() {
		if text.Len() == 0 {
			return
		}

		current.Text = text.String()
		runs = append(runs, current)
		text.Reset()
	}

	input := []byte(output)
	for len(input) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(input, state, p)

		switch {
		case ansi.HasCsiPrefix(seq) && seq[len(seq)-1] == 'm':
			flush()

			current = applySGR(p.Params(), current)

		case width > 0:
			text.Write(seq)
		}

		input = input[n:]
		state = newState
	}

	flush()

	return runs
}

func applySGR(params ansi.Params, r Run) Run {
	if len(params) == 0 {
		return Run{}
	}

	for i := 0; i < len(params); i++ {
		switch v := params[i].Param(0); {
		case v == 0:
			r = Run{}
		case v == 1:
			r.Bold = true
		case v == 3:
			r.Italic = true
		case v == 22:
			r.Bold = false
		case v == 23:
			r.Italic = false
		case v == 39:
			r.Foreground = false
		case v == 49:
			r.Background = false
		case v == 38, v == 48:
			if v == 38 {
				r.Foreground = true
			} else {
				r.Background = true
			}

			// Skip the color arguments.
			if i+1 < len(params) && params[i+1].Param(0) == 5 {
				i += 2
			} else if i+1 < len(params) && params[i+1].Param(0) == 2 {
				i += 4
			}
		case (v >= 30 && v <= 37) || (v >= 90 && v <= 97):
			r.Foreground = true
		case (v >= 40 && v <= 47) || (v >= 100 && v <= 107):
			r.Background = true
		}
	}

	return r
}

// FindRun returns the first run containing text.
func FindRun(output, text string) (Run, bool) {
	for _, r := range Runs(output) {
		if strings.Contains(r.Text, text) {
			return r, true
		}
	}

	return Run{}, false
}
