package scrolling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/vscroll/pkg/scrolling"
)

// fakeHost is a workspace with 100 rows and 200 cells of 150x50 in a 600x300
// element, unless overridden.
type fakeHost struct {
	scrollable *scrolling.ManualScrollable

	rowCalls  [][2]any
	cellCalls [][2]any

	rendered     map[scrolling.Axis][]scrolling.WindowState
	element      scrolling.Size
	cell         scrolling.Size
	rows         int
	cells        int
	groups       int
	verticalCall int
	allDayCall   int

	vertical bool
	allDay   bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		scrollable: scrolling.NewManualScrollable(),
		rendered:   map[scrolling.Axis][]scrolling.WindowState{},
		element:    scrolling.Size{Width: 600, Height: 300},
		cell:       scrolling.Size{Width: 150},
		rows:       100,
		cells:      200,
	}
}

func (h *fakeHost) GroupCount() int { return h.groups }

func (h *fakeHost) TotalRowCount(groupCount int, allDay bool) int {
	h.rowCalls = append(h.rowCalls, [2]any{groupCount, allDay})

	return h.rows
}

func (h *fakeHost) TotalCellCount(groupCount int, verticalGrouping bool) int {
	h.cellCalls = append(h.cellCalls, [2]any{groupCount, verticalGrouping})

	return h.cells
}

func (h *fakeHost) CellSize() scrolling.Size { return h.cell }

func (h *fakeHost) IsVerticalGroupedWorkSpace() bool {
	h.verticalCall++

	return h.vertical
}

func (h *fakeHost) IsGroupedAllDayPanel() bool {
	h.allDayCall++

	return h.allDay
}

func (h *fakeHost) ElementSize() scrolling.Size { return h.element }

func (h *fakeHost) Scrollable() scrolling.Scrollable { return h.scrollable }

func (h *fakeHost) RenderRows(state scrolling.WindowState) {
	h.rendered[scrolling.AxisVertical] = append(h.rendered[scrolling.AxisVertical], state)
}

func (h *fakeHost) RenderCells(state scrolling.WindowState) {
	h.rendered[scrolling.AxisHorizontal] = append(h.rendered[scrolling.AxisHorizontal], state)
}

func TestManualScrollable(t *testing.T) {
	t.Parallel()

	s := scrolling.NewManualScrollable()

	var got []scrolling.ScrollOffset

	unsubscribe := s.Subscribe(func(o scrolling.ScrollOffset) {
		got = append(got, o)
	})
	assert.Equal(t, 1, s.Subscribers())

	s.ScrollTo(scrolling.Vertical(120))
	s.ScrollTo(scrolling.Horizontal(40))

	left, top := s.Offset()
	assert.InDelta(t, 40, left, 0)
	assert.InDelta(t, 120, top, 0)

	unsubscribe()
	s.ScrollTo(scrolling.Both(1, 2))

	assert.Equal(t, 0, s.Subscribers())
	assert.Len(t, got, 2)
	assert.Nil(t, got[0].Left)
	assert.Nil(t, got[1].Top)
}

func TestStaticViewport(t *testing.T) {
	t.Parallel()

	v := scrolling.NewStaticViewport(scrolling.Size{Width: 1024, Height: 768})

	calls := 0
	unsubscribe := v.Subscribe(func() { calls++ })

	v.ScrollTo(5, 20)

	x, y := v.ScrollPosition()
	assert.InDelta(t, 5, x, 0)
	assert.InDelta(t, 20, y, 0)
	assert.Equal(t, 1, calls)

	v.Resize(scrolling.Size{Width: 80, Height: 24})
	assert.Equal(t, scrolling.Size{Width: 80, Height: 24}, v.InnerSize())

	unsubscribe()
	v.ScrollTo(0, 0)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, v.SubscribeCalls())
	assert.Equal(t, 0, v.Subscribers())
}
