package scrolling

import "log/slog"

// ItemCounter reports the current number of items on an axis.
// It is queried on every evaluation, so the count may change over time.
type ItemCounter interface {
	TotalItemCount() int
}

// ItemCounterFunc adapts a function to [ItemCounter].
type ItemCounterFunc func() int

// TotalItemCount implements [ItemCounter].
func (f ItemCounterFunc) TotalItemCount() int {
	return f()
}

// UpdateFunc receives every window committed by a [Controller].
type UpdateFunc func(axis Axis, state WindowState)

// ControllerOpt configures a [Controller].
type ControllerOpt func(*Controller)

// WithOutlineCount overrides [DefaultOutlineCount]. Negative values restore
// the default.
func WithOutlineCount(n int) ControllerOpt {
	return func(c *Controller) {
		c.outlineOverride = n
	}
}

// WithOnUpdate sets the hook called after each accepted update.
func WithOnUpdate(fn UpdateFunc) ControllerOpt {
	return func(c *Controller) {
		c.onUpdate = fn
	}
}

// WithControllerLogger sets the logger used for debug output.
func WithControllerLogger(logger *slog.Logger) ControllerOpt {
	return func(c *Controller) {
		c.logger = logger
	}
}

type controllerPhase int

const (
	// phaseUninitialized only exists while NewController runs.
	phaseUninitialized controllerPhase = iota
	phaseInitialized
	phaseDisposed
)

// noPosition marks that no scroll offset has been seen yet.
const noPosition = -1

// Controller owns the [WindowState] of one axis.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	counter  ItemCounter
	onUpdate UpdateFunc
	logger   *slog.Logger

	state WindowState

	itemSize     float64
	viewportSize float64

	// position is the last clamped offset passed to UpdateState.
	position float64

	outlineOverride int
	axis            Axis
	phase           controllerPhase
}

// NewController creates a [Controller] and computes its initial window at
// offset 0.
func NewController(axis Axis, counter ItemCounter, itemSize, viewportSize float64, opts ...ControllerOpt) *Controller {
	c := &Controller{
		axis:            axis,
		counter:         counter,
		itemSize:        itemSize,
		viewportSize:    viewportSize,
		position:        noPosition,
		outlineOverride: -1,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// The first update is unconditional and does not count as a seen offset,
	// so a later scroll to 0 is still evaluated.
	c.commit(c.config(), 0)
	c.phase = phaseInitialized

	return c
}

// Axis returns the axis this controller scrolls.
func (c *Controller) Axis() Axis {
	return c.axis
}

// State returns a snapshot of the committed window.
func (c *Controller) State() WindowState {
	return c.state
}

// ItemSize returns the size of one item.
func (c *Controller) ItemSize() float64 {
	return c.itemSize
}

// ViewportSize returns the visible extent of the axis.
func (c *Controller) ViewportSize() float64 {
	return c.viewportSize
}

// TotalItemCount returns the current item count of the axis.
func (c *Controller) TotalItemCount() int {
	if c.counter == nil {
		return 0
	}

	return max(0, c.counter.TotalItemCount())
}

// PageSize returns the number of items that fill the viewport.
func (c *Controller) PageSize() int {
	return c.config().PageSize()
}

// OutlineCount returns the number of outline items kept on each side.
func (c *Controller) OutlineCount() int {
	return c.config().OutlineCount
}

// MaxScrollPosition returns the largest meaningful offset.
func (c *Controller) MaxScrollPosition() float64 {
	return c.config().MaxScrollPosition()
}

// Disposed reports whether [Controller.Dispose] was called.
func (c *Controller) Disposed() bool {
	return c.phase == phaseDisposed
}

// NeedUpdateState reports whether [Controller.UpdateState] with the same
// offset would commit a new window. It never modifies the controller.
func (c *Controller) NeedUpdateState(offset float64) bool {
	return c.needUpdate(c.config(), offset)
}

func (c *Controller) needUpdate(cfg AxisConfig, offset float64) bool {
	if c.phase == phaseDisposed {
		return false
	}

	position := cfg.ClampPosition(offset)
	if position == c.position {
		return false
	}

	// Both ends always snap, even within the same page.
	if position == 0 || position == cfg.MaxScrollPosition() {
		return true
	}

	committed := cfg.ItemIndex(c.state.PrevPosition)
	current := cfg.ItemIndex(position)

	return abs(current-committed) >= cfg.OutlineCount
}

// UpdateState evaluates a new scroll offset. When the offset requires a new
// window, the window is computed, committed, and passed to the update hook.
// It returns a snapshot of the committed window and whether it changed.
func (c *Controller) UpdateState(offset float64) (WindowState, bool) {
	if c.phase == phaseDisposed {
		return c.state, false
	}

	cfg := c.config()
	need := c.needUpdate(cfg, offset)
	c.position = cfg.ClampPosition(offset)

	if !need {
		return c.state, false
	}

	c.commit(cfg, c.position)
	c.notify()

	return c.state, true
}

// ForceUpdate recomputes the window at the last seen offset (or the
// committed position, before any offset was seen), for example after the
// item count or geometry changed.
func (c *Controller) ForceUpdate() WindowState {
	if c.phase == phaseDisposed {
		return c.state
	}

	cfg := c.config()
	position := c.state.PrevPosition
	if c.position != noPosition {
		position = c.position
	}

	c.position = cfg.ClampPosition(position)
	c.commit(cfg, c.position)
	c.notify()

	return c.state
}

// SetGeometry changes the item and viewport sizes. It reports whether
// anything changed; callers decide when to [Controller.ForceUpdate].
func (c *Controller) SetGeometry(itemSize, viewportSize float64) bool {
	if c.itemSize == itemSize && c.viewportSize == viewportSize {
		return false
	}

	c.itemSize = itemSize
	c.viewportSize = viewportSize

	return true
}

// Dispose releases the counter and update hook. It is idempotent.
func (c *Controller) Dispose() {
	c.phase = phaseDisposed
	c.counter = nil
	c.onUpdate = nil
}

func (c *Controller) config() AxisConfig {
	cfg := AxisConfig{
		TotalItemCount: c.TotalItemCount(),
		ItemSize:       c.itemSize,
		ViewportSize:   c.viewportSize,
	}

	cfg.OutlineCount = DefaultOutlineCount(cfg.PageSize())
	if c.outlineOverride >= 0 {
		cfg.OutlineCount = c.outlineOverride
	}

	return cfg
}

// commit replaces the state in place.
func (c *Controller) commit(cfg AxisConfig, position float64) {
	c.state = Calculate(cfg, position)

	c.logger.Debug("commit window",
		slog.String("axis", c.axis.String()),
		slog.Float64("position", position),
		slog.Int("start", c.state.StartIndex),
		slog.Int("count", c.state.ItemCount),
		slog.Int("total", cfg.TotalItemCount),
	)
}

func (c *Controller) notify() {
	if c.onUpdate != nil {
		c.onUpdate(c.axis, c.state)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
