package scrolling

import (
	"slices"
	"sync"
)

// Size is a two-dimensional extent. A non-positive dimension means the
// dimension is not set.
type Size struct {
	Width  float64 `json:"width"  yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// ScrollOffset is a scroll notification. A nil coordinate means that axis
// was not scrolled.
type ScrollOffset struct {
	Top  *float64
	Left *float64
}

// Vertical returns a [ScrollOffset] for the vertical axis only.
func Vertical(top float64) ScrollOffset {
	return ScrollOffset{Top: &top}
}

// Horizontal returns a [ScrollOffset] for the horizontal axis only.
func Horizontal(left float64) ScrollOffset {
	return ScrollOffset{Left: &left}
}

// Both returns a [ScrollOffset] for both axes.
func Both(left, top float64) ScrollOffset {
	return ScrollOffset{Top: &top, Left: &left}
}

// Host is the workspace that owns the grid being scrolled.
//
// Unless renders are immediate, RenderRows and RenderCells are called from
// the [Scheduler], which for [TimerScheduler] is another goroutine, so they
// must be safe for concurrent use with the rest of the host.
type Host interface {
	// GroupCount returns the number of resource groups.
	GroupCount() int
	// TotalRowCount returns the number of rows for the given grouping.
	TotalRowCount(groupCount int, allDay bool) int
	// TotalCellCount returns the number of cells in one row.
	TotalCellCount(groupCount int, verticalGrouping bool) int
	// CellSize returns the size of a single cell.
	CellSize() Size
	IsVerticalGroupedWorkSpace() bool
	IsGroupedAllDayPanel() bool
	// ElementSize returns the size of the host element. Unset dimensions
	// fall back to the [AmbientViewport].
	ElementSize() Size
	Scrollable() Scrollable
	RenderRows(state WindowState)
	RenderCells(state WindowState)
}

// Scrollable is the host's scrollable container.
type Scrollable interface {
	// Subscribe registers fn for scroll notifications.
	Subscribe(fn func(ScrollOffset)) (unsubscribe func())
	ScrollTo(offset ScrollOffset)
}

// AmbientViewport is the surrounding viewport (for example, a browser
// window or a terminal) used when the host has no explicit size.
type AmbientViewport interface {
	InnerSize() Size
	ScrollPosition() (x, y float64)
	// Subscribe registers fn for scroll notifications.
	Subscribe(fn func()) (unsubscribe func())
}

// ManualScrollable is an in-memory [Scrollable]. [ManualScrollable.ScrollTo]
// notifies subscribers synchronously, in subscription order.
type ManualScrollable struct {
	top         float64
	left        float64
	subscribers []*func(ScrollOffset)
	mu          sync.Mutex
}

// NewManualScrollable creates a [ManualScrollable] at offset 0.
func NewManualScrollable() *ManualScrollable {
	return &ManualScrollable{}
}

// Subscribe implements [Scrollable].
func (s *ManualScrollable) Subscribe(fn func(ScrollOffset)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &fn
	s.subscribers = append(s.subscribers, sub)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.subscribers = slices.DeleteFunc(s.subscribers, func(f *func(ScrollOffset)) bool {
			return f == sub
		})
	}
}

// ScrollTo implements [Scrollable].
func (s *ManualScrollable) ScrollTo(offset ScrollOffset) {
	s.mu.Lock()
	if offset.Top != nil {
		s.top = *offset.Top
	}
	if offset.Left != nil {
		s.left = *offset.Left
	}

	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		(*fn)(offset)
	}
}

// Offset returns the last offsets passed to [ManualScrollable.ScrollTo].
func (s *ManualScrollable) Offset() (left, top float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.left, s.top
}

// Subscribers returns the number of active subscriptions.
func (s *ManualScrollable) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.subscribers)
}

// StaticViewport is an in-memory [AmbientViewport].
type StaticViewport struct {
	subscribers []*func()
	size        Size
	x, y        float64
	subscribes  int
	mu          sync.Mutex
}

// NewStaticViewport creates a [StaticViewport] with the given inner size.
func NewStaticViewport(size Size) *StaticViewport {
	return &StaticViewport{size: size}
}

// InnerSize implements [AmbientViewport].
func (v *StaticViewport) InnerSize() Size {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.size
}

// Resize changes the inner size. It does not notify subscribers.
func (v *StaticViewport) Resize(size Size) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.size = size
}

// ScrollPosition implements [AmbientViewport].
func (v *StaticViewport) ScrollPosition() (float64, float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.x, v.y
}

// Subscribe implements [AmbientViewport].
func (v *StaticViewport) Subscribe(fn func()) func() {
	v.mu.Lock()
	defer v.mu.Unlock()

	sub := &fn
	v.subscribers = append(v.subscribers, sub)
	v.subscribes++

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		v.subscribers = slices.DeleteFunc(v.subscribers, func(f *func()) bool {
			return f == sub
		})
	}
}

// ScrollTo moves the viewport and notifies subscribers synchronously.
func (v *StaticViewport) ScrollTo(x, y float64) {
	v.mu.Lock()
	v.x, v.y = x, y
	subs := slices.Clone(v.subscribers)
	v.mu.Unlock()

	for _, fn := range subs {
		(*fn)()
	}
}

// Subscribers returns the number of active subscriptions.
func (v *StaticViewport) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.subscribers)
}

// SubscribeCalls returns how many times Subscribe was called.
func (v *StaticViewport) SubscribeCalls() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.subscribes
}
