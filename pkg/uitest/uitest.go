package uitest

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTimeout bounds waits on program output.
const DefaultTimeout = 3 * time.Second

// BubbleModel is a bubbletea model whose Update returns its concrete type.
type BubbleModel[T any] interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (T, tea.Cmd)
	View() string
}

type modelAdapter[T BubbleModel[T]] struct {
	model T
}

func (a modelAdapter[T]) Init() tea.Cmd {
	return a.model.Init()
}

//nolint:ireturn // Must satisfy [tea.Model].
func (a modelAdapter[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.model.Update(msg)

	return modelAdapter[T]{model: m}, cmd
}

func (a modelAdapter[T]) View() string {
	return a.model.View()
}

// NewTestModel runs m under teatest with the given terminal size.
func NewTestModel[T BubbleModel[T]](tb testing.TB, m T, size Size) *teatest.TestModel {
	tb.Helper()

	return teatest.NewTestModel(
		tb, modelAdapter[T]{model: m},
		teatest.WithInitialTermSize(size.Width, size.Height),
	)
}

// WaitForText waits until the plain text of the output contains text.
func WaitForText(tb testing.TB, r io.Reader, text string) {
	tb.Helper()

	teatest.WaitFor(tb, r, func(b []byte) bool {
		return bytes.Contains([]byte(ansi.Strip(string(b))), []byte(text))
	}, teatest.WithDuration(DefaultTimeout), teatest.WithCheckInterval(10*time.Millisecond))
}

// FinalModel waits for the program to finish and returns its model.
func FinalModel[T BubbleModel[T]](tb testing.TB, tm *teatest.TestModel) T {
	tb.Helper()

	fm := tm.FinalModel(tb, teatest.WithFinalTimeout(DefaultTimeout))

	a, ok := fm.(modelAdapter[T])
	if !ok {
		tb.Fatalf("unexpected final model type %T", fm)
	}

	return a.model
}
