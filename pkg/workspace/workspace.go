// Package workspace implements a headless [scrolling.Host] for a grid
// described by a [v1beta1.Grid].
//
// Groups repeat the grid: horizontally grouped workspaces repeat the cells of
// each row per group, vertically grouped workspaces repeat the rows per group
// and may add one all-day row per group.
package workspace

import (
	"sync"

	"github.com/macropower/vscroll/api/v1beta1"
	"github.com/macropower/vscroll/pkg/scrolling"
)

// RenderFunc observes renders delivered to a [Workspace].
type RenderFunc func(axis scrolling.Axis, state scrolling.WindowState)

// Opt configures a [Workspace].
type Opt func(*Workspace)

// WithElementSize sets the element size. Non-positive dimensions are unset
// and fall back to the ambient viewport.
func WithElementSize(size scrolling.Size) Opt {
	return func(w *Workspace) {
		w.element = size
	}
}

// WithScrollable replaces the default [scrolling.ManualScrollable].
func WithScrollable(s scrolling.Scrollable) Opt {
	return func(w *Workspace) {
		w.scrollable = s
	}
}

// WithRenderFunc registers fn to observe renders.
func WithRenderFunc(fn RenderFunc) Opt {
	return func(w *Workspace) {
		w.onRender = fn
	}
}

// Workspace is a headless grid host. It is safe for concurrent use, so that
// renders may be delivered from timer goroutines.
type Workspace struct {
	scrollable scrolling.Scrollable
	onRender   RenderFunc

	rows    scrolling.WindowState
	cells   scrolling.WindowState
	renders map[scrolling.Axis]int

	grid    v1beta1.Grid
	element scrolling.Size

	mu sync.Mutex
}

// New creates a [Workspace] for grid.
func New(grid v1beta1.Grid, opts ...Opt) *Workspace {
	w := &Workspace{
		grid:    grid,
		renders: map[scrolling.Axis]int{},
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.scrollable == nil {
		w.scrollable = scrolling.NewManualScrollable()
	}

	return w
}

// Grid returns the grid description.
func (w *Workspace) Grid() v1beta1.Grid {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.grid
}

// SetGrid replaces the grid description. Callers must ask the dispatcher to
// [scrolling.Dispatcher.UpdateDimensions] afterwards.
func (w *Workspace) SetGrid(grid v1beta1.Grid) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.grid = grid
}

// Resize changes the element size.
func (w *Workspace) Resize(size scrolling.Size) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.element = size
}

func (w *Workspace) GroupCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.grid.GroupCount
}

// TotalRowCount returns the rows of all vertically stacked groups, plus one
// all-day row per group when allDay is set.
func (w *Workspace) TotalRowCount(groupCount int, allDay bool) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows := w.grid.RowCount
	if w.grid.VerticalGrouping {
		rows *= max(1, groupCount)
	}

	if allDay {
		rows += groupCount
	}

	return rows
}

// TotalCellCount returns the cells of one row. Horizontally grouped
// workspaces repeat the cells per group.
func (w *Workspace) TotalCellCount(groupCount int, verticalGrouping bool) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if verticalGrouping {
		return w.grid.CellCount
	}

	return w.grid.CellCount * max(1, groupCount)
}

func (w *Workspace) CellSize() scrolling.Size {
	w.mu.Lock()
	defer w.mu.Unlock()

	return scrolling.Size{Width: w.grid.CellWidth, Height: w.grid.CellHeight}
}

func (w *Workspace) IsVerticalGroupedWorkSpace() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.grid.VerticalGrouping && w.grid.GroupCount > 0
}

func (w *Workspace) IsGroupedAllDayPanel() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.grid.GroupedAllDayPanel
}

func (w *Workspace) ElementSize() scrolling.Size {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.element
}

func (w *Workspace) Scrollable() scrolling.Scrollable {
	return w.scrollable
}

func (w *Workspace) RenderRows(state scrolling.WindowState) {
	w.render(scrolling.AxisVertical, state)
}

func (w *Workspace) RenderCells(state scrolling.WindowState) {
	w.render(scrolling.AxisHorizontal, state)
}

// RenderWindows renders the committed windows of both axes of d right away.
// Hosts call it once after creating the dispatcher, which only renders on
// later updates.
func (w *Workspace) RenderWindows(d *scrolling.Dispatcher) {
	w.RenderRows(d.VerticalScrolling().State())
	w.RenderCells(d.HorizontalScrolling().State())
}

// Rendered returns the last rendered window of axis and the number of
// renders so far.
func (w *Workspace) Rendered(axis scrolling.Axis) (scrolling.WindowState, int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if axis == scrolling.AxisVertical {
		return w.rows, w.renders[axis]
	}

	return w.cells, w.renders[axis]
}

func (w *Workspace) render(axis scrolling.Axis, state scrolling.WindowState) {
	w.mu.Lock()
	if axis == scrolling.AxisVertical {
		w.rows = state
	} else {
		w.cells = state
	}

	w.renders[axis]++
	fn := w.onRender
	w.mu.Unlock()

	if fn != nil {
		fn(axis, state)
	}
}
