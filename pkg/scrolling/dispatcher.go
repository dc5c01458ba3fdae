package scrolling

import (
	"errors"
	"log/slog"
	"math"
	"time"
)

const (
	// DefaultRowHeight is used when the host reports no cell height.
	DefaultRowHeight = 50
	// MinCellWidth is the smallest cell width the horizontal axis accepts.
	MinCellWidth = 1
	// MinScrollOffset is the smallest ambient scroll offset, on either
	// axis, that is forwarded to the controllers.
	MinScrollOffset = 10
)

// ErrDisposed is returned when a [Dispatcher] is disposed twice.
var ErrDisposed = errors.New("dispatcher already disposed")

// DispatcherOpt configures a [Dispatcher].
type DispatcherOpt func(*Dispatcher)

// WithAmbientViewport sets the viewport used when the host element has no
// explicit height or width.
func WithAmbientViewport(v AmbientViewport) DispatcherOpt {
	return func(d *Dispatcher) {
		d.ambient = v
	}
}

// WithRenderDelay sets the render debounce. See [RenderImmediately].
func WithRenderDelay(delay time.Duration) DispatcherOpt {
	return func(d *Dispatcher) {
		d.renderDelay = delay
	}
}

// WithScheduler sets the [Scheduler] used for debounced renders.
func WithScheduler(s Scheduler) DispatcherOpt {
	return func(d *Dispatcher) {
		d.scheduler = s
	}
}

// WithOutline overrides the outline count of both axes. Negative values
// keep [DefaultOutlineCount].
func WithOutline(n int) DispatcherOpt {
	return func(d *Dispatcher) {
		d.outlineCount = n
	}
}

// WithMinScrollOffset overrides [MinScrollOffset].
func WithMinScrollOffset(offset float64) DispatcherOpt {
	return func(d *Dispatcher) {
		d.minScrollOffset = offset
	}
}

// WithLogger sets the logger of the dispatcher and its controllers.
func WithLogger(logger *slog.Logger) DispatcherOpt {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// Dispatcher drives the vertical and horizontal [Controller] of a [Host].
//
// A Dispatcher is not safe for concurrent use. Scroll notifications must be
// delivered from one goroutine.
type Dispatcher struct {
	host      Host
	ambient   AmbientViewport
	scheduler Scheduler
	logger    *slog.Logger
	renderer  *Renderer

	vertical   *Controller
	horizontal *Controller

	unsubscribeScroll  func()
	unsubscribeAmbient func()

	renderDelay     time.Duration
	minScrollOffset float64
	outlineCount    int
	disposed        bool
}

// NewDispatcher creates a [Dispatcher] for host and subscribes to its
// [Scrollable].
func NewDispatcher(host Host, opts ...DispatcherOpt) *Dispatcher {
	d := &Dispatcher{
		host:            host,
		renderDelay:     DefaultRenderDelay,
		minScrollOffset: MinScrollOffset,
		outlineCount:    -1,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.renderer = NewRenderer(d.renderDelay, d.scheduler)

	controllerOpts := []ControllerOpt{
		WithOutlineCount(d.outlineCount),
		WithOnUpdate(d.render),
		WithControllerLogger(d.logger),
	}

	d.vertical = NewController(AxisVertical, ItemCounterFunc(d.totalRowCount),
		d.RowHeight(), d.ViewportHeight(), controllerOpts...)
	d.horizontal = NewController(AxisHorizontal, ItemCounterFunc(d.totalCellCount),
		d.CellWidth(), d.ViewportWidth(), controllerOpts...)

	d.subscribeAmbient()

	if s := host.Scrollable(); s != nil {
		d.unsubscribeScroll = s.Subscribe(d.Process)
	}

	d.logger.Debug("dispatcher created",
		slog.Float64("viewport_height", d.vertical.ViewportSize()),
		slog.Float64("viewport_width", d.horizontal.ViewportSize()),
		slog.Int("rows", d.vertical.TotalItemCount()),
		slog.Int("cells", d.horizontal.TotalItemCount()),
	)

	return d
}

// VerticalScrolling returns the row controller.
func (d *Dispatcher) VerticalScrolling() *Controller {
	return d.vertical
}

// HorizontalScrolling returns the cell controller.
func (d *Dispatcher) HorizontalScrolling() *Controller {
	return d.horizontal
}

// Renderer returns the render debouncer.
func (d *Dispatcher) Renderer() *Renderer {
	return d.renderer
}

// ViewportHeight returns the host height, or the ambient height when the
// host height is unset.
func (d *Dispatcher) ViewportHeight() float64 {
	if h := d.host.ElementSize().Height; h > 0 {
		return h
	}

	return d.ambientSize().Height
}

// ViewportWidth returns the host width, or the ambient width when the host
// width is unset.
func (d *Dispatcher) ViewportWidth() float64 {
	if w := d.host.ElementSize().Width; w > 0 {
		return w
	}

	return d.ambientSize().Width
}

// RowHeight returns the floored cell height, or [DefaultRowHeight].
func (d *Dispatcher) RowHeight() float64 {
	h := math.Floor(d.host.CellSize().Height)
	if !(h > 0) {
		return DefaultRowHeight
	}

	return h
}

// CellWidth returns the floored cell width, at least [MinCellWidth].
func (d *Dispatcher) CellWidth() float64 {
	w := math.Floor(d.host.CellSize().Width)
	if !(w >= MinCellWidth) {
		return MinCellWidth
	}

	return w
}

// Process routes a scroll notification to the controller of each axis it
// carries.
func (d *Dispatcher) Process(offset ScrollOffset) {
	if d.disposed {
		return
	}

	if offset.Top != nil {
		d.vertical.UpdateState(*offset.Top)
	}

	if offset.Left != nil {
		d.horizontal.UpdateState(*offset.Left)
	}
}

// UpdateDimensions re-reads the host geometry. Axes whose geometry changed
// are recomputed at their current position and rendered.
func (d *Dispatcher) UpdateDimensions() {
	if d.disposed {
		return
	}

	d.subscribeAmbient()

	if d.vertical.SetGeometry(d.RowHeight(), d.ViewportHeight()) {
		d.vertical.ForceUpdate()
	}

	if d.horizontal.SetGeometry(d.CellWidth(), d.ViewportWidth()) {
		d.horizontal.ForceUpdate()
	}
}

// Dispose unsubscribes from all notifications, drops pending renders, and
// disposes both controllers. It returns [ErrDisposed] when called again.
func (d *Dispatcher) Dispose() error {
	if d.disposed {
		return ErrDisposed
	}

	d.disposed = true

	if d.unsubscribeAmbient != nil {
		d.unsubscribeAmbient()
		d.unsubscribeAmbient = nil
	}

	if d.unsubscribeScroll != nil {
		d.unsubscribeScroll()
		d.unsubscribeScroll = nil
	}

	d.renderer.Cancel()
	d.vertical.Dispose()
	d.horizontal.Dispose()

	d.logger.Debug("dispatcher disposed")

	return nil
}

// Disposed reports whether [Dispatcher.Dispose] was called.
func (d *Dispatcher) Disposed() bool {
	return d.disposed
}

func (d *Dispatcher) totalRowCount() int {
	groupCount := d.host.GroupCount()
	allDay := d.host.IsVerticalGroupedWorkSpace() && d.host.IsGroupedAllDayPanel()

	return d.host.TotalRowCount(groupCount, allDay)
}

func (d *Dispatcher) totalCellCount() int {
	return d.host.TotalCellCount(d.host.GroupCount(), d.host.IsVerticalGroupedWorkSpace())
}

func (d *Dispatcher) ambientSize() Size {
	if d.ambient == nil {
		return Size{}
	}

	return d.ambient.InnerSize()
}

// subscribeAmbient registers the ambient scroll handler when the host has
// an unset dimension. It registers at most once.
func (d *Dispatcher) subscribeAmbient() {
	if d.unsubscribeAmbient != nil || d.ambient == nil {
		return
	}

	size := d.host.ElementSize()
	if size.Height > 0 && size.Width > 0 {
		return
	}

	d.unsubscribeAmbient = d.ambient.Subscribe(d.onAmbientScroll)
}

func (d *Dispatcher) onAmbientScroll() {
	x, y := d.ambient.ScrollPosition()
	if x < d.minScrollOffset && y < d.minScrollOffset {
		return
	}

	d.Process(Both(x, y))
}

func (d *Dispatcher) render(axis Axis, state WindowState) {
	switch axis {
	case AxisVertical:
		d.renderer.Render(axis, func() { d.host.RenderRows(state) })
	case AxisHorizontal:
		d.renderer.Render(axis, func() { d.host.RenderCells(state) })
	}
}
