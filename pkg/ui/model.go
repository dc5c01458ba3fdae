// Package ui implements an interactive, virtually scrolled grid workspace.
//
// The workspace is a [scrolling.Host] measured in terminal cells. Only the
// rows and cells inside the windows computed by a [scrolling.Dispatcher] are
// drawn; visible cells outside the windows are marked with
// [styles.Missing], which only happens while a debounced render is pending.
package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/vscroll/api/v1beta1"
	"github.com/macropower/vscroll/pkg/scrolling"
	"github.com/macropower/vscroll/pkg/ui/statusbar"
	"github.com/macropower/vscroll/pkg/workspace"
	"github.com/macropower/vscroll/pkg/yaml"
)

const (
	// chromeHeight is the height of the header and status bar.
	chromeHeight = 2
	// wheelLines is the number of lines scrolled per mouse wheel event.
	wheelLines = 3
	// statusTimeout is how long status messages are shown.
	statusTimeout = 2 * time.Second
)

var ErrNoClipboard = errors.New("no clipboard available")

type (
	statusMsg struct {
		err  error
		text string
	}
	clearStatusMsg struct {
		seq int
	}
)

// Opt configures a [Model].
type Opt func(*Model)

// WithDispatcherOpts adds options to the dispatcher of the workspace.
func WithDispatcherOpts(opts ...scrolling.DispatcherOpt) Opt {
	return func(m *Model) {
		m.dispatcherOpts = append(m.dispatcherOpts, opts...)
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Opt {
	return func(m *Model) {
		m.width, m.height = width, height
	}
}

// WithClipboard replaces the clipboard writer used by the copy binding.
func WithClipboard(fn func(string) error) Opt {
	return func(m *Model) {
		m.copyFn = fn
	}
}

// Model is the workspace model.
type Model struct {
	err        error
	cfg        *Config
	ws         *workspace.Workspace
	scrollable *scrolling.ManualScrollable
	dispatcher *scrolling.Dispatcher
	scheduler  *tickScheduler
	copyFn     func(string) error
	keyMap     keyMap
	status     string

	dispatcherOpts []scrolling.DispatcherOpt
	help           help.Model

	width, height int
	top, left     float64
	statusSeq     int
	showHelp      bool
}

// New creates a [Model] showing grid.
func New(cfg *Config, grid v1beta1.Grid, opts ...Opt) *Model {
	if cfg == nil {
		cfg = NewConfig()
	}

	cfg.EnsureDefaults()

	m := &Model{
		cfg:        cfg,
		scrollable: scrolling.NewManualScrollable(),
		scheduler:  newTickScheduler(),
		copyFn:     copyToClipboard,
		keyMap:     keyMap{kb: cfg.KeyBinds},
		help:       newHelp(),
		width:      80,
		height:     24,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.ws = workspace.New(grid,
		workspace.WithElementSize(m.elementSize()),
		workspace.WithScrollable(m.scrollable),
	)

	dopts := []scrolling.DispatcherOpt{
		scrolling.WithScheduler(m.scheduler),
		scrolling.WithLogger(slog.Default()),
	}
	m.dispatcher = scrolling.NewDispatcher(m.ws, append(dopts, m.dispatcherOpts...)...)
	m.ws.RenderWindows(m.dispatcher)

	return m
}

func (m *Model) Init() tea.Cmd {
	return m.scheduler.drain()
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case renderMsg:
		m.scheduler.run(msg.id)

		return m, nil

	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg.String())
		if quit {
			m.dispose()

			return m, tea.Quit
		}

		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case statusMsg:
		m.err = msg.err
		m.status = msg.text
		m.statusSeq++

		seq := m.statusSeq
		cmds = append(cmds, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: seq}
		}))

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.err = nil
			m.status = ""
		}
	}

	cmds = append(cmds, m.scheduler.drain())

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(key string) (tea.Cmd, bool) {
	kb := m.cfg.KeyBinds
	rowHeight := m.dispatcher.RowHeight()
	cellWidth := m.dispatcher.CellWidth()
	pageHeight := max(rowHeight, m.dispatcher.ViewportHeight())
	pageWidth := max(cellWidth, m.dispatcher.ViewportWidth())

	switch {
	case kb.Quit.Match(key):
		return nil, true

	case kb.Help.Match(key):
		m.showHelp = !m.showHelp
		m.resize()

	case kb.Up.Match(key):
		m.scrollVertical(m.top - rowHeight)
	case kb.Down.Match(key):
		m.scrollVertical(m.top + rowHeight)
	case kb.PageUp.Match(key):
		m.scrollVertical(m.top - pageHeight)
	case kb.PageDown.Match(key):
		m.scrollVertical(m.top + pageHeight)

	case kb.Left.Match(key):
		m.scrollHorizontal(m.left - cellWidth)
	case kb.Right.Match(key):
		m.scrollHorizontal(m.left + cellWidth)
	case kb.PageLeft.Match(key):
		m.scrollHorizontal(m.left - pageWidth)
	case kb.PageRight.Match(key):
		m.scrollHorizontal(m.left + pageWidth)

	case kb.Home.Match(key):
		m.scrollBoth(0, 0)
	case kb.End.Match(key):
		m.scrollBoth(
			m.dispatcher.HorizontalScrolling().MaxScrollPosition(),
			m.dispatcher.VerticalScrolling().MaxScrollPosition(),
		)

	case kb.Copy.Match(key):
		return m.copyWindows(), false
	}

	return nil, false
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !*m.cfg.EnableMouse || msg.Action != tea.MouseActionPress {
		return
	}

	step := wheelLines * m.dispatcher.RowHeight()
	horizontal := wheelLines * m.dispatcher.CellWidth()

	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Shift,
		msg.Button == tea.MouseButtonWheelLeft:
		m.scrollHorizontal(m.left - horizontal)
	case msg.Button == tea.MouseButtonWheelDown && msg.Shift,
		msg.Button == tea.MouseButtonWheelRight:
		m.scrollHorizontal(m.left + horizontal)
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollVertical(m.top - step)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollVertical(m.top + step)
	}
}

func (m *Model) scrollVertical(top float64) {
	top = clamp(top, m.dispatcher.VerticalScrolling().MaxScrollPosition())
	if top == m.top {
		return
	}

	m.top = top
	m.scrollable.ScrollTo(scrolling.Vertical(top))
}

func (m *Model) scrollHorizontal(left float64) {
	left = clamp(left, m.dispatcher.HorizontalScrolling().MaxScrollPosition())
	if left == m.left {
		return
	}

	m.left = left
	m.scrollable.ScrollTo(scrolling.Horizontal(left))
}

func (m *Model) scrollBoth(left, top float64) {
	m.left = clamp(left, m.dispatcher.HorizontalScrolling().MaxScrollPosition())
	m.top = clamp(top, m.dispatcher.VerticalScrolling().MaxScrollPosition())
	m.scrollable.ScrollTo(scrolling.Both(m.left, m.top))
}

// resize recomputes the element size after a terminal resize or a help
// toggle, and keeps the offsets inside the new bounds.
func (m *Model) resize() {
	m.help.Width = m.width
	m.ws.Resize(m.elementSize())
	m.dispatcher.UpdateDimensions()

	left := clamp(m.left, m.dispatcher.HorizontalScrolling().MaxScrollPosition())
	top := clamp(m.top, m.dispatcher.VerticalScrolling().MaxScrollPosition())

	if left != m.left || top != m.top {
		m.scrollBoth(left, top)
	}
}

func (m *Model) elementSize() scrolling.Size {
	height := m.height - chromeHeight
	if m.showHelp {
		height -= lipgloss.Height(m.help.View(m.keyMap))
	}

	return scrolling.Size{
		Width:  float64(max(0, m.width-labelWidth)),
		Height: float64(max(0, height)),
	}
}

func (m *Model) dispose() {
	err := m.dispatcher.Dispose()
	if err != nil {
		slog.Debug("dispose dispatcher", slog.Any("err", err))
	}
}

// Windows returns the last rendered windows.
func (m *Model) Windows() (rows, cells scrolling.WindowState) {
	rows, _ = m.ws.Rendered(scrolling.AxisVertical)
	cells, _ = m.ws.Rendered(scrolling.AxisHorizontal)

	return rows, cells
}

// Offset returns the scroll offsets.
func (m *Model) Offset() (left, top float64) {
	return m.left, m.top
}

// Dispatcher returns the dispatcher of the workspace.
func (m *Model) Dispatcher() *scrolling.Dispatcher {
	return m.dispatcher
}

func (m *Model) copyWindows() tea.Cmd {
	rows, cells := m.Windows()

	b, err := yaml.Marshal(map[string]scrolling.WindowState{
		scrolling.AxisVertical.String():   rows,
		scrolling.AxisHorizontal.String(): cells,
	})
	if err != nil {
		return func() tea.Msg { return statusMsg{err: err, text: err.Error()} }
	}

	copyFn := m.copyFn

	return func() tea.Msg {
		err := copyFn(string(b))
		if err != nil {
			return statusMsg{err: err, text: err.Error()}
		}

		return statusMsg{text: "copied windows"}
	}
}

func (m *Model) View() string {
	rows, cells := m.Windows()
	grid := m.ws.Grid()
	size := m.ws.ElementSize()

	frame := gridFrame{
		rows:       rows,
		cells:      cells,
		grid:       grid,
		top:        int(m.top),
		left:       int(m.left),
		width:      int(size.Width),
		height:     int(size.Height),
		rowHeight:  int(m.dispatcher.RowHeight()),
		cellWidth:  int(m.dispatcher.CellWidth()),
		totalRows:  m.dispatcher.VerticalScrolling().TotalItemCount(),
		totalCells: m.dispatcher.HorizontalScrolling().TotalItemCount(),
	}

	views := []string{frame.View(), m.statusBarView(frame)}
	if m.showHelp {
		views = append(views, m.help.View(m.keyMap))
	}

	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

func (m *Model) statusBarView(f gridFrame) string {
	var opts []statusbar.StatusBarOpt
	if m.err != nil {
		opts = append(opts, statusbar.WithError(m.status))
	} else {
		opts = append(opts, statusbar.WithMessage(m.status))
	}

	note := fmt.Sprintf("%s×%s", humanize.Comma(int64(f.totalRows)), humanize.Comma(int64(f.totalCells)))

	return statusbar.NewStatusBarRenderer(m.width, opts...).Render(note,
		windowNote("rows", f.rows, f.totalRows),
		windowNote("cells", f.cells, f.totalCells),
	)
}

// windowNote summarizes a window, such as "rows 76–88/100 ↑3.8k ↓0.6k".
func windowNote(name string, s scrolling.WindowState, total int) string {
	return fmt.Sprintf("%s %s–%s/%s ↑%s ↓%s", name,
		humanize.Comma(int64(s.StartIndex)),
		humanize.Comma(int64(s.EndIndex())),
		humanize.Comma(int64(total)),
		compactSI(s.VirtualItemSizeBefore),
		compactSI(s.VirtualItemSizeAfter),
	)
}

// compactSI formats v with an SI prefix and no spaces, such as "3.8k".
func compactSI(v float64) string {
	return strings.ReplaceAll(humanize.SIWithDigits(v, 1, ""), " ", "")
}

func copyToClipboard(s string) error {
	// OSC 52 reaches the terminal's clipboard, also over SSH.
	termenv.Copy(s)

	err := clipboard.WriteAll(s)
	if err != nil && clipboard.Unsupported {
		slog.Debug("system clipboard unsupported", slog.Any("err", err))

		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoClipboard, err)
	}

	return nil
}

func clamp(v, maxV float64) float64 {
	return max(0, min(v, maxV))
}

// NewProgram returns a program running m on the alternate screen.
func NewProgram(m *Model) *tea.Program {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if *m.cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	return tea.NewProgram(program{m: m}, opts...)
}

// program adapts [Model] to [tea.Model].
type program struct {
	m *Model
}

func (p program) Init() tea.Cmd { return p.m.Init() }

//nolint:ireturn // Must satisfy [tea.Model].
func (p program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := p.m.Update(msg)

	return program{m: m}, cmd
}

func (p program) View() string { return p.m.View() }

// RenderFrame renders a single frame of grid at the given size, with
// immediate renders. It is used when no terminal is attached.
func RenderFrame(cfg *Config, grid v1beta1.Grid, width, height int, opts ...scrolling.DispatcherOpt) string {
	opts = append(opts, scrolling.WithRenderDelay(scrolling.RenderImmediately))

	m := New(cfg, grid, WithSize(width, height), WithDispatcherOpts(opts...))
	defer m.dispose()

	return m.View()
}
