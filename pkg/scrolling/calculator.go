package scrolling

import "math"

// AxisConfig is the input of one window computation.
type AxisConfig struct {
	// TotalItemCount is the number of logical items on the axis.
	TotalItemCount int
	// ItemSize is the size of one item, in the host's units.
	ItemSize float64
	// ViewportSize is the visible extent of the axis.
	ViewportSize float64
	// OutlineCount is the number of extra items rendered on each side of
	// the viewport. It is also the distance, in items, the offset must move
	// before the window is recomputed.
	OutlineCount int
}

// NewAxisConfig returns an [AxisConfig] using [DefaultOutlineCount].
func NewAxisConfig(totalItemCount int, itemSize, viewportSize float64) AxisConfig {
	cfg := AxisConfig{
		TotalItemCount: totalItemCount,
		ItemSize:       itemSize,
		ViewportSize:   viewportSize,
	}
	cfg.OutlineCount = DefaultOutlineCount(cfg.PageSize())

	return cfg
}

// DefaultOutlineCount returns half a page, rounded down.
func DefaultOutlineCount(pageSize int) int {
	return pageSize / 2
}

// Degenerate reports whether no item can ever be rendered.
func (c AxisConfig) Degenerate() bool {
	return c.TotalItemCount <= 0 || !(c.ItemSize > 0) || math.IsInf(c.ItemSize, 0)
}

// PageSize returns the number of items needed to fill the viewport.
func (c AxisConfig) PageSize() int {
	if !(c.ItemSize > 0) || !(c.ViewportSize > 0) || math.IsInf(c.ItemSize, 0) {
		return 0
	}

	return int(math.Ceil(c.ViewportSize / c.ItemSize))
}

// MaxScrollPosition returns the largest meaningful scroll offset.
func (c AxisConfig) MaxScrollPosition() float64 {
	if c.Degenerate() {
		return 0
	}

	viewport := c.ViewportSize
	if !(viewport > 0) {
		viewport = 0
	}

	return math.Max(0, float64(c.TotalItemCount)*c.ItemSize-viewport)
}

// ClampPosition limits position to [0, [AxisConfig.MaxScrollPosition]].
// NaN is treated as 0.
func (c AxisConfig) ClampPosition(position float64) float64 {
	if math.IsNaN(position) || position < 0 {
		return 0
	}

	return math.Min(position, c.MaxScrollPosition())
}

// ItemIndex returns the index of the item under position, without clamping
// to the item count.
func (c AxisConfig) ItemIndex(position float64) int {
	if !(c.ItemSize > 0) || math.IsInf(c.ItemSize, 0) {
		return 0
	}

	return int(math.Floor(position / c.ItemSize))
}

// Calculate returns the window for the given scroll offset.
//
// The offset is clamped first. An offset exactly on an item boundary belongs
// to the item that starts there. Degenerate configurations yield the zero
// window.
func Calculate(cfg AxisConfig, position float64) WindowState {
	if cfg.Degenerate() {
		return WindowState{}
	}

	position = cfg.ClampPosition(position)
	total := cfg.TotalItemCount
	outline := max(0, cfg.OutlineCount)

	itemCountBefore := min(cfg.ItemIndex(position), total)

	outlineBefore := min(itemCountBefore, outline)
	virtualBefore := itemCountBefore - outlineBefore

	delta := total - itemCountBefore
	withAfter := min(delta, cfg.PageSize())
	virtualAfter := delta - withAfter
	outlineAfter := min(virtualAfter, outline)
	virtualAfter -= outlineAfter

	return WindowState{
		PrevPosition:           float64(itemCountBefore) * cfg.ItemSize,
		StartIndex:             virtualBefore,
		ItemCount:              outlineBefore + withAfter + outlineAfter,
		VirtualItemCountBefore: virtualBefore,
		VirtualItemCountAfter:  virtualAfter,
		OutlineCountBefore:     outlineBefore,
		OutlineCountAfter:      outlineAfter,
		VirtualItemSizeBefore:  float64(virtualBefore) * cfg.ItemSize,
		VirtualItemSizeAfter:   float64(virtualAfter) * cfg.ItemSize,
		OutlineSizeBefore:      float64(outlineBefore) * cfg.ItemSize,
		OutlineSizeAfter:       float64(outlineAfter) * cfg.ItemSize,
	}
}
