package workspace_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vscroll/api/v1beta1"
	"github.com/macropower/vscroll/pkg/scrolling"
	"github.com/macropower/vscroll/pkg/workspace"
)

func TestWorkspaceCounts(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		grid  v1beta1.Grid
		rows  int
		cells int
	}{
		"ungrouped": {
			grid:  v1beta1.Grid{RowCount: 48, CellCount: 7},
			rows:  48,
			cells: 7,
		},
		"horizontal groups": {
			grid:  v1beta1.Grid{RowCount: 48, CellCount: 7, GroupCount: 3},
			rows:  48,
			cells: 21,
		},
		"vertical groups": {
			grid:  v1beta1.Grid{RowCount: 48, CellCount: 7, GroupCount: 3, VerticalGrouping: true},
			rows:  144,
			cells: 7,
		},
		"vertical groups with all-day panel": {
			grid: v1beta1.Grid{
				RowCount: 48, CellCount: 7, GroupCount: 3,
				VerticalGrouping: true, GroupedAllDayPanel: true,
			},
			rows:  147,
			cells: 7,
		},
		"all-day panel without vertical groups": {
			grid:  v1beta1.Grid{RowCount: 48, CellCount: 7, GroupCount: 2, GroupedAllDayPanel: true},
			rows:  48,
			cells: 14,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			w := workspace.New(tc.grid, workspace.WithElementSize(scrolling.Size{Width: 600, Height: 300}))
			d := scrolling.NewDispatcher(w, scrolling.WithRenderDelay(scrolling.RenderImmediately))

			t.Cleanup(func() { assert.NoError(t, d.Dispose()) })

			assert.Equal(t, tc.rows, d.VerticalScrolling().TotalItemCount())
			assert.Equal(t, tc.cells, d.HorizontalScrolling().TotalItemCount())
		})
	}
}

func TestWorkspaceRenders(t *testing.T) {
	t.Parallel()

	var observed []scrolling.Axis

	w := workspace.New(
		v1beta1.Grid{RowCount: 100, CellCount: 200, CellWidth: 150},
		workspace.WithElementSize(scrolling.Size{Width: 600, Height: 300}),
		workspace.WithRenderFunc(func(axis scrolling.Axis, _ scrolling.WindowState) {
			observed = append(observed, axis)
		}),
	)

	d := scrolling.NewDispatcher(w, scrolling.WithRenderDelay(scrolling.RenderImmediately))
	t.Cleanup(func() { assert.NoError(t, d.Dispose()) })

	w.Scrollable().ScrollTo(scrolling.Both(900, 3980))

	rows, n := w.Rendered(scrolling.AxisVertical)
	assert.Equal(t, 1, n)
	assert.Equal(t, 76, rows.StartIndex)

	cells, n := w.Rendered(scrolling.AxisHorizontal)
	assert.Equal(t, 1, n)
	assert.Equal(t, 4, cells.StartIndex)

	assert.Equal(t, []scrolling.Axis{scrolling.AxisVertical, scrolling.AxisHorizontal}, observed)
}

func TestWorkspaceResize(t *testing.T) {
	t.Parallel()

	w := workspace.New(v1beta1.Grid{RowCount: 100, CellCount: 10, CellWidth: 10, CellHeight: 1},
		workspace.WithElementSize(scrolling.Size{Width: 40, Height: 10}))

	d := scrolling.NewDispatcher(w, scrolling.WithRenderDelay(scrolling.RenderImmediately))
	t.Cleanup(func() { assert.NoError(t, d.Dispose()) })

	require.Equal(t, 10, d.VerticalScrolling().PageSize())

	w.Resize(scrolling.Size{Width: 40, Height: 20})
	d.UpdateDimensions()

	assert.Equal(t, 20, d.VerticalScrolling().PageSize())

	_, n := w.Rendered(scrolling.AxisVertical)
	assert.Equal(t, 1, n)

	w.SetGrid(v1beta1.Grid{RowCount: 5, CellCount: 10, CellWidth: 10, CellHeight: 1})
	d.VerticalScrolling().ForceUpdate()

	rows, _ := w.Rendered(scrolling.AxisVertical)
	require.NoError(t, rows.Validate(5))
	assert.Equal(t, 5, w.Grid().RowCount)
}

func TestWorkspaceRenderWindows(t *testing.T) {
	t.Parallel()

	w := workspace.New(v1beta1.Grid{RowCount: 100, CellCount: 200, CellWidth: 150},
		workspace.WithElementSize(scrolling.Size{Width: 600, Height: 300}))

	d := scrolling.NewDispatcher(w, scrolling.WithRenderDelay(scrolling.RenderImmediately))
	t.Cleanup(func() { assert.NoError(t, d.Dispose()) })

	_, n := w.Rendered(scrolling.AxisVertical)
	require.Zero(t, n)

	w.RenderWindows(d)

	rows, n := w.Rendered(scrolling.AxisVertical)
	assert.Equal(t, 1, n)
	assert.Equal(t, d.VerticalScrolling().State(), rows)
	assert.Equal(t, 9, rows.ItemCount)

	cells, n := w.Rendered(scrolling.AxisHorizontal)
	assert.Equal(t, 1, n)
	assert.Equal(t, 6, cells.ItemCount)
}

func TestWorkspaceTimerRenders(t *testing.T) {
	t.Parallel()

	w := workspace.New(v1beta1.Grid{RowCount: 100, CellCount: 200, CellWidth: 150},
		workspace.WithElementSize(scrolling.Size{Width: 600, Height: 300}))

	// Renders arrive on timer goroutines while the test reads the workspace.
	d := scrolling.NewDispatcher(w, scrolling.WithRenderDelay(time.Millisecond))
	t.Cleanup(func() { assert.NoError(t, d.Dispose()) })

	w.Scrollable().ScrollTo(scrolling.Both(900, 3980))

	require.Eventually(t, func() bool {
		_, rows := w.Rendered(scrolling.AxisVertical)
		_, cells := w.Rendered(scrolling.AxisHorizontal)

		return rows == 1 && cells == 1 && w.Grid().RowCount == 100
	}, time.Second, time.Millisecond)

	rows, _ := w.Rendered(scrolling.AxisVertical)
	assert.Equal(t, 76, rows.StartIndex)

	cells, _ := w.Rendered(scrolling.AxisHorizontal)
	assert.Equal(t, 4, cells.StartIndex)
}
