package v1beta1

import (
	"errors"
	"fmt"

	"github.com/macropower/vscroll/pkg/scrolling"
)

var ErrInvalidGrid = errors.New("invalid grid")

// Scrolling tunes the virtual scrolling engine. Unset fields use the engine
// defaults.
type Scrolling struct {
	// RenderDelay debounces renders; "immediate" renders synchronously.
	RenderDelay *Duration `json:"renderDelay,omitempty" jsonschema:"title=Render Delay"`
	// OutlineCount is the number of extra items rendered on each side of the
	// viewport. Defaults to half a page.
	OutlineCount *int `json:"outlineCount,omitempty" jsonschema:"title=Outline Count,minimum=0"`
	// MinScrollOffset is the smallest ambient scroll offset that is handled.
	MinScrollOffset *float64 `json:"minScrollOffset,omitempty" jsonschema:"title=Minimum Scroll Offset,minimum=0"`
}

// EnsureDefaults sets unset fields.
func (s *Scrolling) EnsureDefaults() {
	if s.RenderDelay == nil {
		s.RenderDelay = NewDuration(scrolling.DefaultRenderDelay)
	}

	if s.MinScrollOffset == nil {
		v := float64(scrolling.MinScrollOffset)
		s.MinScrollOffset = &v
	}
}

// Merge returns a copy of s with the fields set in override replacing its
// own.
func (s *Scrolling) Merge(override *Scrolling) *Scrolling {
	out := &Scrolling{}
	if s != nil {
		*out = *s
	}

	if override == nil {
		return out
	}

	if override.RenderDelay != nil {
		out.RenderDelay = override.RenderDelay
	}
	if override.OutlineCount != nil {
		out.OutlineCount = override.OutlineCount
	}
	if override.MinScrollOffset != nil {
		out.MinScrollOffset = override.MinScrollOffset
	}

	return out
}

// DispatcherOpts converts the set fields to [scrolling.DispatcherOpt]s.
func (s *Scrolling) DispatcherOpts() []scrolling.DispatcherOpt {
	if s == nil {
		return nil
	}

	var opts []scrolling.DispatcherOpt
	if s.RenderDelay != nil {
		opts = append(opts, scrolling.WithRenderDelay(s.RenderDelay.Duration))
	}
	if s.OutlineCount != nil {
		opts = append(opts, scrolling.WithOutline(*s.OutlineCount))
	}
	if s.MinScrollOffset != nil {
		opts = append(opts, scrolling.WithMinScrollOffset(*s.MinScrollOffset))
	}

	return opts
}

// Grid describes a workspace grid: rows are time slots, cells are the
// columns of one row, repeated per group.
type Grid struct {
	// RowCount is the number of rows of one group.
	RowCount int `json:"rowCount" jsonschema:"title=Row Count,minimum=0"`
	// CellCount is the number of cells of one group.
	CellCount int `json:"cellCount" jsonschema:"title=Cell Count,minimum=0"`
	// GroupCount is the number of resource groups.
	GroupCount int `json:"groupCount,omitempty" jsonschema:"title=Group Count,minimum=0"`
	// CellWidth is the width of one cell.
	CellWidth float64 `json:"cellWidth" jsonschema:"title=Cell Width,minimum=0"`
	// CellHeight is the height of one row. Defaults to 50 when unset.
	CellHeight float64 `json:"cellHeight,omitempty" jsonschema:"title=Cell Height,minimum=0"`
	// VerticalGrouping stacks groups vertically instead of side by side.
	VerticalGrouping bool `json:"verticalGrouping,omitempty" jsonschema:"title=Vertical Grouping"`
	// GroupedAllDayPanel adds one all-day row per vertical group.
	GroupedAllDayPanel bool `json:"groupedAllDayPanel,omitempty" jsonschema:"title=Grouped All-Day Panel"`
}

// Validate checks that all counts and sizes are non-negative.
func (g Grid) Validate() error {
	switch {
	case g.RowCount < 0:
		return fmt.Errorf("%w: negative row count %d", ErrInvalidGrid, g.RowCount)
	case g.CellCount < 0:
		return fmt.Errorf("%w: negative cell count %d", ErrInvalidGrid, g.CellCount)
	case g.GroupCount < 0:
		return fmt.Errorf("%w: negative group count %d", ErrInvalidGrid, g.GroupCount)
	case g.CellWidth < 0 || g.CellHeight < 0:
		return fmt.Errorf("%w: negative cell size %vx%v", ErrInvalidGrid, g.CellWidth, g.CellHeight)
	}

	return nil
}
