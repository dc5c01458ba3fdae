package replay

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/macropower/vscroll/pkg/scrolling"
	"github.com/macropower/vscroll/pkg/ui/styles"
	"github.com/macropower/vscroll/pkg/yaml"
)

// ErrFailed is returned by [Result.Err] when any step failed.
var ErrFailed = errors.New("replay failed")

// Result is the outcome of a replay.
type Result struct {
	Steps []StepResult `json:"steps"`
	// Failed is the number of failed steps.
	Failed int `json:"failed"`
}

// StepResult is the outcome of one step.
type StepResult struct {
	Name   string `json:"name,omitempty"`
	Action string `json:"action"`
	Expect string `json:"expect,omitempty"`
	// Error describes why the step failed.
	Error      string `json:"error,omitempty"`
	Vertical   Window `json:"vertical"`
	Horizontal Window `json:"horizontal"`
	Index      int    `json:"index"`
	// Events is the number of scroll events the step produced.
	Events int  `json:"events"`
	Passed bool `json:"passed"`
}

// Window is the rendered window of one axis after a step.
type Window struct {
	Start             int     `json:"start"`
	End               int     `json:"end"`
	Total             int     `json:"total"`
	Renders           int     `json:"renders"`
	VirtualSizeBefore float64 `json:"virtualSizeBefore"`
	VirtualSizeAfter  float64 `json:"virtualSizeAfter"`
	// Pending is set when a debounced render is waiting.
	Pending bool `json:"pending,omitempty"`
}

func newWindow(state scrolling.WindowState, renders int, pending bool) Window {
	return Window{
		Start:             state.StartIndex,
		End:               state.EndIndex(),
		Total:             state.TotalItemCount(),
		Renders:           renders,
		VirtualSizeBefore: state.VirtualItemSizeBefore,
		VirtualSizeAfter:  state.VirtualItemSizeAfter,
		Pending:           pending,
	}
}

func (w Window) String() string {
	s := fmt.Sprintf("%d–%d/%d", w.Start, w.End, w.Total)
	if w.Pending {
		s += "*"
	}

	return s
}

// Err returns [ErrFailed] when any step failed.
func (r *Result) Err() error {
	if r.Failed == 0 {
		return nil
	}

	return fmt.Errorf("%w: %d of %d steps", ErrFailed, r.Failed, len(r.Steps))
}

// YAML renders the result as YAML.
func (r *Result) YAML() ([]byte, error) {
	b, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	return b, nil
}

// Table renders the result as a table. Pending windows are marked with "*".
func (r *Result) Table() string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.SubtleStyle).
		Headers("#", "STEP", "ACTION", "ROWS", "CELLS", "RENDERS", "RESULT").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true)
			}

			if col == 6 && row >= 0 && row < len(r.Steps) && !r.Steps[row].Passed {
				return s.Foreground(styles.Red).Bold(true)
			}

			return s
		})

	for _, s := range r.Steps {
		status := "ok"
		if !s.Passed {
			status = "FAIL: " + s.Error
		}

		t.Row(
			strconv.Itoa(s.Index),
			s.Name,
			s.Action,
			s.Vertical.String(),
			s.Horizontal.String(),
			fmt.Sprintf("%d/%d", s.Vertical.Renders, s.Horizontal.Renders),
			status,
		)
	}

	return t.String()
}
