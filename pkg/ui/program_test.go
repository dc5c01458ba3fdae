package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/vscroll/pkg/ui"
	"github.com/macropower/vscroll/pkg/uitest"
)

func TestProgramDebouncedRenders(t *testing.T) {
	t.Parallel()

	m := ui.New(nil, week, ui.WithSize(uitest.Compact.Width, uitest.Compact.Height))
	tm := uitest.NewTestModel(t, m, uitest.Compact)

	uitest.WaitForText(t, tm.Output(), "rows 0–33/48")

	tm.Send(tea.KeyMsg{Type: tea.KeyPgDown})
	uitest.WaitForText(t, tm.Output(), "rows 11–48/48")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	final := uitest.FinalModel[*ui.Model](t, tm)

	_, top := final.Offset()
	assert.InDelta(t, 22, top, 0)
	assert.True(t, final.Dispatcher().Disposed())

	rows, _ := final.Windows()
	assert.Equal(t, 11, rows.StartIndex)
}
