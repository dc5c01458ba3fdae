package replay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/vscroll/api/v1beta1/traces"
	"github.com/macropower/vscroll/pkg/expr"
	"github.com/macropower/vscroll/pkg/log"
	"github.com/macropower/vscroll/pkg/scrolling"
	"github.com/macropower/vscroll/pkg/workspace"
)

const tracerName = "github.com/macropower/vscroll/pkg/replay"

var (
	// ErrNoViewport is returned for window steps of traces without a
	// viewport.
	ErrNoViewport = errors.New("trace has no viewport")

	// ErrExpectation is returned when a step's expectation is false.
	ErrExpectation = errors.New("expectation not met")

	// ErrUnsettled is returned when a settled render differs from the
	// controller state.
	ErrUnsettled = errors.New("rendered window differs from state")
)

// Opt configures a [Replayer].
type Opt func(*Replayer)

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Opt {
	return func(r *Replayer) {
		r.tracer = tp.Tracer(tracerName)
	}
}

// WithEnvironment sets the CEL environment used for expectations. It must
// declare [expr.WindowVariables].
func WithEnvironment(env *expr.Environment) Opt {
	return func(r *Replayer) {
		r.env = env
	}
}

// Replayer replays [traces.Trace]s. It is safe for concurrent use; every
// run uses its own workspace and dispatcher.
type Replayer struct {
	tracer trace.Tracer
	env    *expr.Environment
}

// New creates a [Replayer].
func New(opts ...Opt) *Replayer {
	r := &Replayer{}
	for _, opt := range opts {
		opt(r)
	}

	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}

	if r.env == nil {
		r.env = expr.MustNewEnvironment(expr.WindowVariables())
	}

	return r
}

// run is the state of one replay.
type run struct {
	ws         *workspace.Workspace
	dispatcher *scrolling.Dispatcher
	viewport   *scrolling.StaticViewport
	scheduler  *queueScheduler
}

// Run replays tr. Step failures are reported in the [Result]; an error is
// returned only when the trace cannot be replayed at all.
func (r *Replayer) Run(ctx context.Context, tr *traces.Trace) (*Result, error) {
	err := tr.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid trace: %w", err)
	}

	expectations := make([]*expr.Expectation, len(tr.Steps))
	for i, s := range tr.Steps {
		if s.Expect == "" {
			continue
		}

		expectations[i], err = r.env.CompileExpectation(s.Expect)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	ctx, span := r.tracer.Start(ctx, "replay",
		trace.WithAttributes(
			attribute.Int("steps", len(tr.Steps)),
			attribute.Int("grid.rows", tr.Workspace.RowCount),
			attribute.Int("grid.cells", tr.Workspace.CellCount),
		),
	)
	defer span.End()

	logger := log.WithContext(ctx)

	rn := &run{scheduler: &queueScheduler{}}
	rn.ws = workspace.New(tr.Workspace.Grid, workspace.WithElementSize(tr.Workspace.ElementSize()))

	opts := []scrolling.DispatcherOpt{
		scrolling.WithScheduler(rn.scheduler),
		scrolling.WithLogger(logger),
	}
	if tr.Viewport != nil {
		rn.viewport = scrolling.NewStaticViewport(*tr.Viewport)
		opts = append(opts, scrolling.WithAmbientViewport(rn.viewport))
	}

	opts = append(opts, tr.Scrolling.DispatcherOpts()...)

	rn.dispatcher = scrolling.NewDispatcher(rn.ws, opts...)
	rn.ws.RenderWindows(rn.dispatcher)
	defer func() {
		_ = rn.dispatcher.Dispose()
	}()

	result := &Result{Steps: make([]StepResult, 0, len(tr.Steps))}

	for i, s := range tr.Steps {
		res := r.step(ctx, rn, i, s, expectations[i])
		if !res.Passed {
			result.Failed++

			logger.Warn("step failed",
				slog.Int("step", i),
				slog.String("name", s.Name),
				slog.String("error", res.Error),
			)
		}

		result.Steps = append(result.Steps, res)
	}

	if result.Failed > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d steps failed", result.Failed))
	}

	logger.Debug("replay done",
		slog.Int("steps", len(result.Steps)),
		slog.Int("failed", result.Failed),
	)

	return result, nil
}

func (r *Replayer) step(ctx context.Context, rn *run, index int, s traces.Step, x *expr.Expectation) StepResult {
	_, span := r.tracer.Start(ctx, "replay.step",
		trace.WithAttributes(
			attribute.Int("step.index", index),
			attribute.String("step.name", s.Name),
			attribute.String("step.action", s.Action()),
		),
	)
	defer span.End()

	res := StepResult{
		Index:  index,
		Name:   s.Name,
		Action: s.Action(),
		Expect: s.Expect,
	}

	events, err := rn.apply(s)
	res.Events = events

	if err == nil && x != nil {
		err = r.expect(rn, index, s, x)
	}

	res.Vertical = rn.window(scrolling.AxisVertical)
	res.Horizontal = rn.window(scrolling.AxisHorizontal)
	res.Passed = err == nil

	span.SetAttributes(
		attribute.Int("step.events", events),
		attribute.Int("vertical.start_index", res.Vertical.Start),
		attribute.Int("vertical.renders", res.Vertical.Renders),
		attribute.Int("horizontal.start_index", res.Horizontal.Start),
		attribute.Int("horizontal.renders", res.Horizontal.Renders),
	)

	if err != nil {
		res.Error = err.Error()

		span.RecordError(err)
		span.SetStatus(codes.Error, res.Error)
	}

	return res
}

// apply runs the step and checks the invariants after each event. It
// returns the number of events.
func (rn *run) apply(s traces.Step) (int, error) {
	switch s.Action() {
	case "scroll":
		rn.ws.Scrollable().ScrollTo(s.Offset())

		return 1, rn.check()

	case "window":
		if rn.viewport == nil {
			return 0, ErrNoViewport
		}

		rn.viewport.ScrollTo(s.Window.X, s.Window.Y)

		return 1, rn.check()

	case "sweep":
		axis, err := s.Sweep.ScrollAxis()
		if err != nil {
			return 0, err //nolint:wrapcheck // Already describes the step.
		}

		events := 0
		for _, v := range s.Sweep.Offsets() {
			offset := scrolling.Vertical(v)
			if axis == scrolling.AxisHorizontal {
				offset = scrolling.Horizontal(v)
			}

			rn.ws.Scrollable().ScrollTo(offset)
			events++

			err = rn.check()
			if err != nil {
				return events, fmt.Errorf("at %s offset %g: %w", axis, v, err)
			}
		}

		return events, nil

	case "resize":
		rn.ws.Resize(*s.Resize)
		rn.dispatcher.UpdateDimensions()

		return 1, rn.check()

	case "flush":
		rn.scheduler.Flush()

		return 0, rn.check()
	}

	return 0, traces.ErrInvalidStep
}

// check validates both axes.
func (rn *run) check() error {
	for _, c := range []*scrolling.Controller{
		rn.dispatcher.VerticalScrolling(),
		rn.dispatcher.HorizontalScrolling(),
	} {
		total := c.TotalItemCount()

		err := c.State().Validate(total)
		if err != nil {
			return fmt.Errorf("%s state: %w", c.Axis(), err)
		}

		rendered, renders := rn.ws.Rendered(c.Axis())
		if renders == 0 {
			continue
		}

		err = rendered.Validate(total)
		if err != nil {
			return fmt.Errorf("%s render: %w", c.Axis(), err)
		}

		if !rn.dispatcher.Renderer().Pending(c.Axis()) && rendered != c.State() {
			return fmt.Errorf("%w: %s rendered %d+%d, state %d+%d", ErrUnsettled, c.Axis(),
				rendered.StartIndex, rendered.ItemCount, c.State().StartIndex, c.State().ItemCount)
		}
	}

	return nil
}

func (r *Replayer) expect(rn *run, index int, s traces.Step, x *expr.Expectation) error {
	rows, rowRenders := rn.ws.Rendered(scrolling.AxisVertical)
	cells, cellRenders := rn.ws.Rendered(scrolling.AxisHorizontal)

	ok, err := x.Eval(map[string]any{
		expr.VarVertical:   expr.WindowValue(rows, rowRenders),
		expr.VarHorizontal: expr.WindowValue(cells, cellRenders),
		expr.VarStep: map[string]any{
			"index":  index,
			"name":   s.Name,
			"action": s.Action(),
		},
	})
	if err != nil {
		return err //nolint:wrapcheck // Already names the expression.
	}

	if !ok {
		return fmt.Errorf("%w: %s", ErrExpectation, x)
	}

	return nil
}

func (rn *run) window(axis scrolling.Axis) Window {
	state, renders := rn.ws.Rendered(axis)

	return newWindow(state, renders, rn.dispatcher.Renderer().Pending(axis))
}
